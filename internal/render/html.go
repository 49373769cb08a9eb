package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/synthetic-bedrock/internal/bedrock"
	"github.com/banshee-data/synthetic-bedrock/internal/sweep"
)

// AssetsHost is where the rendered page loads the echarts scripts from.
var AssetsHost = "https://go-echarts.github.io/go-echarts-assets/assets/"

// ClassifiedChart builds an echarts heat map of a classified grid. Row 0 is
// drawn at the top.
func ClassifiedChart(lbl *bedrock.LabelGrid, title string) (*charts.HeatMap, error) {
	if lbl == nil || lbl.Len() == 0 {
		return nil, ErrNothingToDraw
	}
	n := lbl.Len()

	axis := make([]string, n)
	for i := range axis {
		axis[i] = strconv.Itoa(i)
	}
	data := make([]opts.HeatMapData, 0, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			data = append(data, opts.HeatMapData{Value: []interface{}{c, r, int(lbl.At(r, c))}})
		}
	}

	pieces := make([]opts.Piece, len(bedrock.Classes))
	for i, c := range bedrock.Classes {
		pieces[i] = opts.Piece{Min: float32(c), Max: float32(c), Color: classHex[i]}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "700px", Height: "700px", AssetsHost: AssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: title, Subtitle: "1=TN 2=FP 3=FN 4=TP"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: axis, Name: "column"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: axis, Name: "row", Inverse: opts.Bool(true)}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Type:   "piecewise",
			Show:   opts.Bool(true),
			Min:    float32(bedrock.ClassTN),
			Max:    float32(bedrock.ClassTP),
			Pieces: pieces,
			Orient: "horizontal",
			Left:   "center",
			Bottom: "0",
		}),
	)
	hm.AddSeries("class", data)
	return hm, nil
}

// ScoreChart builds an echarts line chart of F1 and nMCC against truth
// fraction.
func ScoreChart(rows []sweep.Row, title string) (*charts.Line, error) {
	if len(rows) == 0 {
		return nil, ErrNothingToDraw
	}

	f1 := make([]opts.LineData, len(rows))
	nmcc := make([]opts.LineData, len(rows))
	for i, r := range rows {
		f1[i] = opts.LineData{Value: []interface{}{r.TruthFraction, r.F1}}
		nmcc[i] = opts.LineData{Value: []interface{}{r.TruthFraction, r.NMCC}}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "600px", AssetsHost: AssetsHost}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: 0, Max: 1, Name: "bedrock fraction", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: 0, Max: 1, Name: "score"}),
	)
	line.AddSeries("F1", f1,
		charts.WithLineStyleOpts(opts.LineStyle{Color: "#000000", Width: 2}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#000000"}))
	line.AddSeries("nMCC", nmcc,
		charts.WithLineStyleOpts(opts.LineStyle{Color: "#ff0000", Width: 2}),
		charts.WithItemStyleOpts(opts.ItemStyle{Color: "#ff0000"}))
	return line, nil
}

// WriteHTML renders both charts for res on one page.
func WriteHTML(w io.Writer, res *sweep.Result) error {
	if res == nil {
		return ErrNothingToDraw
	}
	hm, err := ClassifiedChart(res.Display.Classified,
		fmt.Sprintf("%s: classified map at fraction %.2f", res.Scenario, res.Display.TruthFraction))
	if err != nil {
		return err
	}
	line, err := ScoreChart(res.Rows, fmt.Sprintf("%s: accuracy vs bedrock fraction", res.Scenario))
	if err != nil {
		return err
	}

	page := components.NewPage()
	page.SetPageTitle(fmt.Sprintf("Bedrock accuracy sweep %s", res.RunID))
	page.SetAssetsHost(AssetsHost)
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(hm, line)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	return nil
}
