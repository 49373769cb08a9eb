package sweep

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// AccuracyCSVHeader is the column layout of the per-fraction accuracy table.
var AccuracyCSVHeader = []string{"model_fraction", "F1", "nMCC", "TN", "TP", "FN", "FP", "edge_to_area"}

// CSVWriter wraps csv.Writer with methods for sweep output.
type CSVWriter struct {
	w *csv.Writer
}

// NewCSVWriter creates a CSVWriter writing to w.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w)}
}

// WriteHeader writes the accuracy table header.
func (c *CSVWriter) WriteHeader() error {
	return c.w.Write(AccuracyCSVHeader)
}

// WriteRow writes one iteration.
func (c *CSVWriter) WriteRow(r Row) error {
	return c.w.Write([]string{
		formatFloat(r.ModelFraction),
		formatFloat(r.F1),
		formatFloat(r.NMCC),
		strconv.Itoa(r.TN),
		strconv.Itoa(r.TP),
		strconv.Itoa(r.FN),
		strconv.Itoa(r.FP),
		formatFloat(r.EdgeToArea),
	})
}

// Flush flushes buffered rows and reports any write error.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

// WriteAccuracyCSV writes the header and every row of res.
func WriteAccuracyCSV(w io.Writer, res *Result) error {
	cw := NewCSVWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range res.Rows {
		if err := cw.WriteRow(r); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	return cw.Flush()
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.6f", v)
}

// SummarySchemaVersion is bumped whenever the summary layout changes.
const SummarySchemaVersion = "1"

// Summary is the JSON document written next to the accuracy table.
type Summary struct {
	SchemaVersion string    `json:"schema_version"`
	RunID         string    `json:"run_id"`
	StartedAt     time.Time `json:"started_at"`
	CompletedAt   time.Time `json:"completed_at"`

	Scenario         string  `json:"scenario"`
	Length           int     `json:"length"`
	Scale            int     `json:"scale"`
	TruthSeed        int64   `json:"truth_seed"`
	ModelSeed        int64   `json:"model_seed"`
	ConstantFraction float64 `json:"constant_fraction"`
	Offset           int     `json:"offset"`
	ErrorRate        float64 `json:"error_rate"`
	Iterations       int     `json:"iterations"`

	RMSD       float64 `json:"rmsd"`
	F1Mean     float64 `json:"f1_mean"`
	F1Stddev   float64 `json:"f1_stddev"`
	NMCCMean   float64 `json:"nmcc_mean"`
	NMCCStddev float64 `json:"nmcc_stddev"`

	DisplayRequested float64 `json:"display_fraction_requested"`
	Display          Display `json:"display"`
	CappedTargets    int     `json:"capped_targets,omitempty"`
}

// NewSummary builds the summary for a completed run.
func NewSummary(cfg Config, res *Result) Summary {
	s := Summary{
		SchemaVersion:    SummarySchemaVersion,
		RunID:            res.RunID,
		StartedAt:        res.StartedAt,
		CompletedAt:      res.CompletedAt,
		Scenario:         res.Scenario.String(),
		Length:           cfg.Length,
		Scale:            cfg.Scale,
		TruthSeed:        cfg.TruthSeed,
		ModelSeed:        cfg.Model.Seed,
		ConstantFraction: cfg.Model.ConstantFraction,
		Offset:           cfg.Model.Offset,
		ErrorRate:        cfg.Model.ErrorRate,
		Iterations:       len(res.Rows),
		RMSD:             res.RMSD,
		F1Mean:           res.F1Mean,
		F1Stddev:         res.F1Stddev,
		NMCCMean:         res.NMCCMean,
		NMCCStddev:       res.NMCCStddev,
		DisplayRequested: cfg.DisplayFraction,
		Display:          res.Display,
	}
	for _, r := range res.Rows {
		if r.Capped {
			s.CappedTargets++
		}
	}
	return s
}

// WriteSummary encodes s as indented JSON.
func WriteSummary(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	return nil
}
