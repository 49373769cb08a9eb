package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/synthetic-bedrock/internal/bedrock"
	"github.com/banshee-data/synthetic-bedrock/internal/monitoring"
	"github.com/banshee-data/synthetic-bedrock/internal/timeutil"
)

// ErrNoFractions is returned when a sweep is started without any target
// fractions.
var ErrNoFractions = errors.New("sweep: no target fractions")

// Config holds the parameters of one accuracy sweep.
type Config struct {
	Length    int
	Scale     int
	Fractions []float64 // target bedrock fractions, one iteration each
	TruthSeed int64

	// Model is applied to every truth grid. Its Seed is reused for each
	// iteration so that only the truth grid varies across the sweep.
	Model bedrock.ErrorModel

	DisplayFraction float64
	Workers         int

	// RunID identifies the run in exported files. A random UUID is
	// assigned when empty.
	RunID string

	// Clock stamps the run; nil means the wall clock.
	Clock timeutil.Clock
}

// Row is the outcome of one iteration.
type Row struct {
	TargetFraction float64 `json:"target_fraction"`
	TruthFraction  float64 `json:"truth_fraction"`
	ModelFraction  float64 `json:"model_fraction"`
	F1             float64 `json:"f1"`
	NMCC           float64 `json:"nmcc"`
	TN             int     `json:"tn"`
	TP             int     `json:"tp"`
	FN             int     `json:"fn"`
	FP             int     `json:"fp"`
	EdgeToArea     float64 `json:"edge_to_area"`
	Capped         bool    `json:"capped,omitempty"`
}

// Display is the classified grid kept for plotting.
type Display struct {
	Index         int                `json:"index"`
	TruthFraction float64            `json:"truth_fraction"`
	Classified    *bedrock.LabelGrid `json:"-"`
}

// Result holds the rows and summary statistics of a completed sweep.
type Result struct {
	RunID       string
	Scenario    bedrock.Scenario
	Rows        []Row
	Display     Display
	RMSD        float64 // truth vs model bedrock fraction
	F1Mean      float64
	F1Stddev    float64
	NMCCMean    float64
	NMCCStddev  float64
	StartedAt   time.Time
	CompletedAt time.Time
}

// TruthFractions returns the achieved truth fraction of each row.
func (r *Result) TruthFractions() []float64 {
	out := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row.TruthFraction
	}
	return out
}

// ModelFractions returns the model bedrock fraction of each row.
func (r *Result) ModelFractions() []float64 {
	out := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row.ModelFraction
	}
	return out
}

// Validate checks the sweep parameters before any grid is generated.
func (c Config) Validate() error {
	if len(c.Fractions) == 0 {
		return ErrNoFractions
	}
	if c.Length < 1 {
		return fmt.Errorf("%w: length %d must be >= 1", bedrock.ErrInvalidParameter, c.Length)
	}
	if c.Scale < 1 || c.Scale > c.Length {
		return fmt.Errorf("%w: scale %d must be in [1, %d]", bedrock.ErrInvalidParameter, c.Scale, c.Length)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d must not be negative", bedrock.ErrInvalidParameter, c.Workers)
	}
	if math.IsNaN(c.DisplayFraction) || c.DisplayFraction < 0 || c.DisplayFraction > 1 {
		return fmt.Errorf("%w: display fraction %v must be in [0,1]", bedrock.ErrInvalidParameter, c.DisplayFraction)
	}
	return c.Model.Validate()
}

// iteration is the per-fraction output before it is flattened into a Row.
type iteration struct {
	row        Row
	classified *bedrock.LabelGrid
}

// Run executes the sweep. Iterations are independent and may run on up to
// cfg.Workers goroutines; results are stored by index so the output does not
// depend on scheduling.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	clock := cfg.Clock
	if clock == nil {
		clock = timeutil.RealClock{}
	}

	res := &Result{
		RunID:     cfg.RunID,
		Scenario:  cfg.Model.Scenario,
		StartedAt: clock.Now(),
	}
	if res.RunID == "" {
		res.RunID = uuid.NewString()
	}

	monitoring.Logf("[sweep] run %s: scenario=%s length=%d scale=%d fractions=%d workers=%d",
		res.RunID, cfg.Model.Scenario, cfg.Length, cfg.Scale, len(cfg.Fractions), workers)

	iters := make([]iteration, len(cfg.Fractions))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, frac := range cfg.Fractions {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			it, err := runIteration(cfg, frac)
			if err != nil {
				return fmt.Errorf("fraction %d (%.4f): %w", i, frac, err)
			}
			iters[i] = it
			if (i+1)%10 == 0 || i+1 == len(cfg.Fractions) {
				monitoring.Logf("[sweep] iteration %d/%d: target=%.4f truth=%.4f F1=%.4f nMCC=%.4f",
					i+1, len(cfg.Fractions), frac, it.row.TruthFraction, it.row.F1, it.row.NMCC)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Rows = make([]Row, len(iters))
	f1s := make([]float64, len(iters))
	nmccs := make([]float64, len(iters))
	for i, it := range iters {
		res.Rows[i] = it.row
		f1s[i] = it.row.F1
		nmccs[i] = it.row.NMCC
		if it.row.Capped {
			monitoring.Logf("[sweep] WARNING: target %.4f not reached, truth fraction %.4f", it.row.TargetFraction, it.row.TruthFraction)
		}
	}

	truthFracs := res.TruthFractions()
	idx := nearestIndex(truthFracs, cfg.DisplayFraction)
	res.Display = Display{
		Index:         idx,
		TruthFraction: truthFracs[idx],
		Classified:    iters[idx].classified,
	}

	rmsd, err := RMSD(truthFracs, res.ModelFractions())
	if err != nil {
		return nil, err
	}
	res.RMSD = rmsd
	res.F1Mean, res.F1Stddev = MeanStddev(f1s)
	res.NMCCMean, res.NMCCStddev = MeanStddev(nmccs)
	res.CompletedAt = clock.Now()

	monitoring.Logf("[sweep] run %s complete in %v: RMSD=%.6f F1=%.4f±%.4f nMCC=%.4f±%.4f",
		res.RunID, clock.Since(res.StartedAt).Round(time.Millisecond),
		res.RMSD, res.F1Mean, res.F1Stddev, res.NMCCMean, res.NMCCStddev)
	return res, nil
}

func runIteration(cfg Config, frac float64) (iteration, error) {
	k, err := bedrock.NewKernel(cfg.Scale)
	if err != nil {
		return iteration{}, err
	}
	placement, err := bedrock.PlaceTors(cfg.Length, frac, k, cfg.TruthSeed)
	if err != nil {
		return iteration{}, err
	}
	truth := placement.Grid

	model, modelFrac, err := cfg.Model.Apply(truth, frac)
	if err != nil {
		return iteration{}, err
	}
	acc, err := bedrock.AccuracyMetrics(truth, model)
	if err != nil {
		return iteration{}, err
	}

	return iteration{
		row: Row{
			TargetFraction: frac,
			TruthFraction:  placement.Fraction,
			ModelFraction:  modelFrac,
			F1:             acc.F1,
			NMCC:           acc.NMCC,
			TN:             acc.TN,
			TP:             acc.TP,
			FN:             acc.FN,
			FP:             acc.FP,
			EdgeToArea:     bedrock.EdgeToArea(model),
			Capped:         placement.Capped,
		},
		classified: acc.Classified,
	}, nil
}
