package service

import "terrarium_dashboard/internal/models"

// Mock series shown on the dashboard until real sensor history is charted.
var (
	humiditySeries = models.MetricSeries{
		{Label: "Jan", Values: map[string]float64{"humidity": 40}},
		{Label: "Feb", Values: map[string]float64{"humidity": 55}},
		{Label: "Mar", Values: map[string]float64{"humidity": 62}},
		{Label: "Apr", Values: map[string]float64{"humidity": 58}},
		{Label: "May", Values: map[string]float64{"humidity": 70}},
		{Label: "Jun", Values: map[string]float64{"humidity": 66}},
	}
	temperatureSeries = models.MetricSeries{
		{Label: "Jan", Values: map[string]float64{"temp": 72}},
		{Label: "Feb", Values: map[string]float64{"temp": 74}},
		{Label: "Mar", Values: map[string]float64{"temp": 77}},
		{Label: "Apr", Values: map[string]float64{"temp": 79}},
		{Label: "May", Values: map[string]float64{"temp": 81}},
		{Label: "Jun", Values: map[string]float64{"temp": 78}},
	}
)

type chartDef struct {
	series  models.MetricSeries
	name    string
	dataKey string
}

// BuildChart selects dataKey from every record that carries it, keeping order
// and values as they are.
func BuildChart(series models.MetricSeries, name, dataKey string) models.Chart {
	points := make([]models.ChartPoint, 0, len(series))
	for _, p := range series {
		v, ok := p.Value(dataKey)
		if !ok {
			continue
		}
		points = append(points, models.ChartPoint{Label: p.Label, Value: v})
	}
	return models.Chart{Name: name, DataKey: dataKey, Points: points}
}

// ChartsService holds the fixed set of charts rendered by the dashboard.
type ChartsService struct {
	defs []chartDef
}

func NewChartsService() *ChartsService {
	return &ChartsService{defs: []chartDef{
		{series: humiditySeries, name: "Humidity", dataKey: "humidity"},
		{series: temperatureSeries, name: "Temperature", dataKey: "temp"},
		{series: humiditySeries, name: "Humidity", dataKey: "humidity"},
	}}
}

// All builds every chart from a copy of its series.
func (s *ChartsService) All() []models.Chart {
	out := make([]models.Chart, 0, len(s.defs))
	for _, d := range s.defs {
		out = append(out, BuildChart(d.series.Clone(), d.name, d.dataKey))
	}
	return out
}
