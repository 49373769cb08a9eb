package bedrock

import "math"

// Class is the per-cell confusion category of a model cell against truth.
// The numeric codes are fixed; plot legends index them verbatim.
type Class uint8

const (
	ClassTN Class = 1 // truth 0, model 0
	ClassFP Class = 2 // truth 0, model 1
	ClassFN Class = 3 // truth 1, model 0
	ClassTP Class = 4 // truth 1, model 1
)

// Classes lists the confusion classes in code order.
var Classes = []Class{ClassTN, ClassFP, ClassFN, ClassTP}

// String returns "TN", "FP", "FN" or "TP".
func (c Class) String() string {
	switch c {
	case ClassTN:
		return "TN"
	case ClassFP:
		return "FP"
	case ClassFN:
		return "FN"
	case ClassTP:
		return "TP"
	}
	return "?"
}

// classify maps a (truth, model) pair to its Class.
// The codes are 1 + 2*truth + model.
func classify(truth, model uint8) Class {
	return Class(1 + 2*truth + model)
}

// LabelGrid holds one Class per cell.
type LabelGrid struct {
	n     int
	cells []Class
}

// Len returns the side length.
func (l *LabelGrid) Len() int { return l.n }

// At returns the class at row r, column c.
func (l *LabelGrid) At(r, c int) Class { return l.cells[r*l.n+c] }

// Confusion holds the four confusion-matrix counts.
type Confusion struct {
	TN int
	TP int
	FN int
	FP int
}

// Total returns TN+TP+FN+FP.
func (c Confusion) Total() int { return c.TN + c.TP + c.FN + c.FP }

// Accuracy is the result of AccuracyMetrics.
type Accuracy struct {
	Confusion

	F1   float64
	MCC  float64
	NMCC float64 // (MCC+1)/2, in [0,1]

	Precision float64
	Recall    float64

	Classified *LabelGrid
}

// AccuracyMetrics compares model against truth cell by cell.
// It fails with ErrShapeMismatch before doing any work if the grids differ
// in size.
func AccuracyMetrics(truth, model *Grid) (Accuracy, error) {
	if err := sameShape(truth, model); err != nil {
		return Accuracy{}, err
	}

	labels := &LabelGrid{n: truth.n, cells: make([]Class, len(truth.cells))}
	var cm Confusion
	for i, t := range truth.cells {
		cls := classify(t, model.cells[i])
		labels.cells[i] = cls
		switch cls {
		case ClassTN:
			cm.TN++
		case ClassFP:
			cm.FP++
		case ClassFN:
			cm.FN++
		case ClassTP:
			cm.TP++
		}
	}

	mcc := MCC(cm)
	acc := Accuracy{
		Confusion:  cm,
		F1:         F1(cm),
		MCC:        mcc,
		NMCC:       (mcc + 1) / 2,
		Classified: labels,
	}
	if cm.TP+cm.FP > 0 {
		acc.Precision = float64(cm.TP) / float64(cm.TP+cm.FP)
	}
	if cm.TP+cm.FN > 0 {
		acc.Recall = float64(cm.TP) / float64(cm.TP+cm.FN)
	}
	return acc, nil
}

// F1 returns 2TP / (2TP+FP+FN), or 0 when the denominator is 0.
func F1(cm Confusion) float64 {
	den := 2*cm.TP + cm.FP + cm.FN
	if den == 0 {
		return 0
	}
	return float64(2*cm.TP) / float64(den)
}

// MCC returns the Matthews correlation coefficient, or 0 when any marginal
// is 0. The denominator is sqrt(a*b)*sqrt(c*d) so the four-way product never
// has to be formed, and the result is clamped to [-1,1].
func MCC(cm Confusion) float64 {
	tp, tn := float64(cm.TP), float64(cm.TN)
	fp, fn := float64(cm.FP), float64(cm.FN)

	a, b, c, d := tp+fp, tp+fn, tn+fp, tn+fn
	if a == 0 || b == 0 || c == 0 || d == 0 {
		return 0
	}
	den := math.Sqrt(a*b) * math.Sqrt(c*d)
	mcc := (tp*tn - fp*fn) / den
	return math.Max(-1, math.Min(1, mcc))
}
