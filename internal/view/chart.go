package view

import (
	"math"
	"strconv"
	"strings"

	"terrarium_dashboard/internal/models"
)

// Default chart size and margins, in SVG user units.
const (
	ChartWidth  = 720
	ChartHeight = 200

	marginTop    = 5
	marginRight  = 30
	marginBottom = 5
	marginLeft   = 20
	yAxisWidth   = 60
	xAxisHeight  = 30

	yTickCount = 5
)

// Tick is an axis label at a position along the axis.
type Tick struct {
	Pos   float64
	Label string
}

// PlotPoint is one data point in SVG coordinates.
type PlotPoint struct {
	X, Y  float64
	Label string
	Value float64
	Title string // tooltip text
}

// ChartView is the render model of one SVG line chart.
type ChartView struct {
	Name    string
	DataKey string
	Width   int
	Height  int

	// plot area
	Left, Right, Top, Bottom float64

	XTicks   []Tick
	YTicks   []Tick
	Points   []PlotPoint
	Polyline string // empty when the chart has no points
}

// Layout maps a chart onto a width x height canvas.
func Layout(ch models.Chart, width, height int) ChartView {
	v := ChartView{
		Name:    ch.Name,
		DataKey: ch.DataKey,
		Width:   width,
		Height:  height,
		Left:    marginLeft + yAxisWidth,
		Right:   float64(width - marginRight),
		Top:     marginTop,
		Bottom:  float64(height - marginBottom - xAxisHeight),
	}
	if len(ch.Points) == 0 {
		return v
	}

	lo, hi := valueDomain(ch.Points)
	step := niceStep((hi - lo) / float64(yTickCount-1))
	lo = math.Floor(lo/step) * step
	hi = math.Ceil(hi/step) * step
	if hi == lo {
		hi = lo + step
	}

	yPos := func(val float64) float64 {
		return round2(v.Bottom - (val-lo)/(hi-lo)*(v.Bottom-v.Top))
	}
	for i, k := 0, int(math.Round((hi-lo)/step)); i <= k; i++ {
		val := lo + float64(i)*step
		v.YTicks = append(v.YTicks, Tick{Pos: yPos(val), Label: formatNumber(round2(val))})
	}

	n := len(ch.Points)
	coords := make([]string, 0, n)
	for i, p := range ch.Points {
		x := (v.Left + v.Right) / 2
		if n > 1 {
			x = v.Left + float64(i)*(v.Right-v.Left)/float64(n-1)
		}
		x = round2(x)
		y := yPos(p.Value)
		v.XTicks = append(v.XTicks, Tick{Pos: x, Label: p.Label})
		v.Points = append(v.Points, PlotPoint{
			X:     x,
			Y:     y,
			Label: p.Label,
			Value: p.Value,
			Title: p.Label + " " + ch.DataKey + ": " + formatNumber(p.Value),
		})
		coords = append(coords, formatNumber(x)+","+formatNumber(y))
	}
	v.Polyline = strings.Join(coords, " ")
	return v
}

// valueDomain returns the value range, always including zero.
func valueDomain(points []models.ChartPoint) (float64, float64) {
	lo, hi := 0.0, 0.0
	for _, p := range points {
		lo = math.Min(lo, p.Value)
		hi = math.Max(hi, p.Value)
	}
	return lo, hi
}

// niceStep rounds raw up to 1, 2, 2.5 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	exp := math.Pow(10, math.Floor(math.Log10(raw)))
	f := raw / exp
	switch {
	case f <= 1:
		f = 1
	case f <= 2:
		f = 2
	case f <= 2.5:
		f = 2.5
	case f <= 5:
		f = 5
	default:
		f = 10
	}
	return f * exp
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
