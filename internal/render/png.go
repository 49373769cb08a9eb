package render

import (
	"errors"
	"fmt"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/banshee-data/synthetic-bedrock/internal/bedrock"
	"github.com/banshee-data/synthetic-bedrock/internal/sweep"
)

// ErrNothingToDraw is returned when a result has no rows or no classified
// display grid.
var ErrNothingToDraw = errors.New("render: nothing to draw")

// Figure size of the two-panel PNG.
const (
	FigureWidth  = 14 * vg.Inch
	FigureHeight = 6 * vg.Inch
)

// labelGridXYZ adapts a LabelGrid to plotter.GridXYZ. Row 0 is drawn at
// the top.
type labelGridXYZ struct {
	g *bedrock.LabelGrid
}

func (l labelGridXYZ) Dims() (c, r int) { return l.g.Len(), l.g.Len() }
func (l labelGridXYZ) Z(c, r int) float64 {
	return float64(l.g.At(l.g.Len()-1-r, c))
}
func (l labelGridXYZ) X(c int) float64 { return float64(c) }
func (l labelGridXYZ) Y(r int) float64 { return float64(r) }

// swatch is a filled legend thumbnail.
type swatch struct {
	class bedrock.Class
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(classColor(s.class), pts)
}

// ClassifiedPlot builds the heat map of a classified grid with a TN/FP/FN/TP
// legend.
func ClassifiedPlot(lbl *bedrock.LabelGrid, title string) (*plot.Plot, error) {
	if lbl == nil || lbl.Len() == 0 {
		return nil, ErrNothingToDraw
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row (inverted)"

	hm := plotter.NewHeatMap(labelGridXYZ{g: lbl}, classPalette{})
	// Pin the range so a grid missing some classes keeps the same colours.
	hm.Min = float64(bedrock.ClassTN)
	hm.Max = float64(bedrock.ClassTP)
	p.Add(hm)

	for _, c := range bedrock.Classes {
		p.Legend.Add(c.String(), swatch{class: c})
	}
	p.Legend.Top = true
	p.Legend.Left = false
	return p, nil
}

// ScorePlot builds the F1 (black) and nMCC (red) curves against the
// achieved truth fraction.
func ScorePlot(rows []sweep.Row, title string) (*plot.Plot, error) {
	if len(rows) == 0 {
		return nil, ErrNothingToDraw
	}

	f1Pts := make(plotter.XYs, len(rows))
	nmccPts := make(plotter.XYs, len(rows))
	for i, r := range rows {
		f1Pts[i] = plotter.XY{X: r.TruthFraction, Y: r.F1}
		nmccPts[i] = plotter.XY{X: r.TruthFraction, Y: r.NMCC}
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "bedrock fraction"
	p.Y.Label.Text = "score"
	p.X.Min, p.X.Max = 0, 1
	p.Y.Min, p.Y.Max = 0, 1
	p.Add(plotter.NewGrid())

	f1Line, err := plotter.NewLine(f1Pts)
	if err != nil {
		return nil, fmt.Errorf("F1 line: %w", err)
	}
	f1Line.Width = vg.Points(2)
	f1Line.Color = mustHex("#000000")
	p.Add(f1Line)
	p.Legend.Add("F1", f1Line)

	nmccLine, err := plotter.NewLine(nmccPts)
	if err != nil {
		return nil, fmt.Errorf("nMCC line: %w", err)
	}
	nmccLine.Width = vg.Points(2)
	nmccLine.Color = mustHex("#ff0000")
	p.Add(nmccLine)
	p.Legend.Add("nMCC", nmccLine)

	p.Legend.Left = false
	p.Legend.Top = false
	return p, nil
}

// WritePNG draws the classified grid and the score curves side by side and
// writes the PNG to w.
func WritePNG(w io.Writer, res *sweep.Result) error {
	if res == nil {
		return ErrNothingToDraw
	}
	grid, err := ClassifiedPlot(res.Display.Classified,
		fmt.Sprintf("%s: classified map at fraction %.2f", res.Scenario, res.Display.TruthFraction))
	if err != nil {
		return err
	}
	scores, err := ScorePlot(res.Rows, fmt.Sprintf("%s: accuracy vs bedrock fraction", res.Scenario))
	if err != nil {
		return err
	}

	img := vgimg.New(FigureWidth, FigureHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      1,
		Cols:      2,
		PadX:      vg.Millimeter * 10,
		PadTop:    vg.Millimeter * 4,
		PadBottom: vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 4,
		PadRight:  vg.Millimeter * 4,
	}
	plots := [][]*plot.Plot{{grid, scores}}
	canvases := plot.Align(plots, tiles, dc)
	for j, p := range plots[0] {
		p.Draw(canvases[0][j])
	}

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}
