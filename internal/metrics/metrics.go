package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"terrarium_dashboard/internal/models"
)

// Toggle outcomes used as the "result" label.
const (
	ResultOK       = "ok"
	ResultFailed   = "failed"
	ResultRejected = "rejected"
)

// Metrics groups the dashboard's Prometheus collectors.
type Metrics struct {
	actuatorState  *prometheus.GaugeVec
	deviceSwitch   *prometheus.GaugeVec
	sensorReading  *prometheus.GaugeVec
	toggleRequests *prometheus.CounterVec
	statusFetches  *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		actuatorState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "terrarium_actuator_state",
				Help: "Last confirmed state of a control button (1 = on).",
			},
			[]string{"id"},
		),
		deviceSwitch: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "terrarium_device_switch_state",
				Help: "Actuator state as reported by the controller status (1 = on).",
			},
			[]string{"id"},
		),
		sensorReading: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "terrarium_sensor_reading",
				Help: "Latest sensor reading reported by the controller.",
			},
			[]string{"sensor"},
		),
		toggleRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "terrarium_toggle_requests_total",
				Help: "Control requests sent to the controller by outcome.",
			},
			[]string{"id", "result"},
		),
		statusFetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "terrarium_status_fetches_total",
				Help: "Status fetches from the controller by outcome.",
			},
			[]string{"result"},
		),
	}
	reg.MustRegister(m.actuatorState)
	reg.MustRegister(m.deviceSwitch)
	reg.MustRegister(m.sensorReading)
	reg.MustRegister(m.toggleRequests)
	reg.MustRegister(m.statusFetches)
	return m
}

// ObserveActuator records the confirmed state of a button.
func (m *Metrics) ObserveActuator(id string, on bool) {
	if m == nil {
		return
	}
	m.actuatorState.WithLabelValues(id).Set(boolToFloat(on))
}

// ObserveToggle counts a control request outcome.
func (m *Metrics) ObserveToggle(id, result string) {
	if m == nil {
		return
	}
	m.toggleRequests.WithLabelValues(id, result).Inc()
}

// ObserveStatus counts a status fetch and, on success, exports its readings.
func (m *Metrics) ObserveStatus(st *models.DeviceStatus) {
	if m == nil {
		return
	}
	if st == nil {
		m.statusFetches.WithLabelValues(ResultFailed).Inc()
		return
	}
	m.statusFetches.WithLabelValues(ResultOK).Inc()

	for id, on := range st.ActuatorStates() {
		m.deviceSwitch.WithLabelValues(id).Set(boolToFloat(on))
	}
	for sensor, r := range map[string]*models.Reading{
		"water_level":          st.WaterLevel,
		"temperature_humidity": st.TemperatureHumidity,
		"humidity":             st.Humidity,
		"temperature_f":        st.TemperatureF,
	} {
		if r == nil {
			continue
		}
		// non-numeric text is shown on the page but not exported
		if v, ok := r.Float64(); ok {
			m.sensorReading.WithLabelValues(sensor).Set(v)
		}
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
