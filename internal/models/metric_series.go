package models

// MetricPoint is one labeled record of a series, e.g. {"Jan", humidity: 40}.
type MetricPoint struct {
	Label  string             `json:"name"`
	Values map[string]float64 `json:"values"`
}

// Value returns the field selected by key and whether the record carries it.
func (p MetricPoint) Value(key string) (float64, bool) {
	v, ok := p.Values[key]
	return v, ok
}

// MetricSeries is an ordered, build-time sequence of points.
type MetricSeries []MetricPoint

// Clone returns a deep copy so callers can't mutate a shared definition.
func (s MetricSeries) Clone() MetricSeries {
	if s == nil {
		return nil
	}
	out := make(MetricSeries, len(s))
	for i, p := range s {
		vals := make(map[string]float64, len(p.Values))
		for k, v := range p.Values {
			vals[k] = v
		}
		out[i] = MetricPoint{Label: p.Label, Values: vals}
	}
	return out
}

// ChartPoint is a single plotted value.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Chart is the render model for one line chart.
type Chart struct {
	Name    string       `json:"name"`
	DataKey string       `json:"data_key"`
	Points  []ChartPoint `json:"points"`
}
