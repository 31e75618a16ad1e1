package models

import "time"

// DeviceStatus is the JSON object served by the controller at GET /.
// Every field is optional: a missing or null field decodes to nil and renders
// as its zero presentation.
type DeviceStatus struct {
	Fan1Status          *Flag    `json:"fan1_status,omitempty"`
	Fan2Status          *Flag    `json:"fan2_status,omitempty"`
	Light1Status        *Flag    `json:"light1_status,omitempty"`
	Light2Status        *Flag    `json:"light2_status,omitempty"`
	PumpStatus          *Flag    `json:"pump_status,omitempty"`
	WaterLevel          *Reading `json:"water_level,omitempty"`
	TemperatureHumidity *Reading `json:"temperature_humidity,omitempty"`
	Humidity            *Reading `json:"humidity,omitempty"`
	TemperatureF        *Reading `json:"temperatureF,omitempty"`
}

// StatusSnapshot is a fetched DeviceStatus with its fetch time.
type StatusSnapshot struct {
	ID        int64        `json:"id,omitempty"`
	Status    DeviceStatus `json:"status"`
	FetchedAt time.Time    `json:"fetched_at"`
}

// Lines renders the labeled read-only values in display order.
func (s DeviceStatus) Lines() []string {
	return []string{
		"Fan 1 Status: " + StateLabel(boolOr(s.Fan1Status)),
		"Fan 2 Status: " + StateLabel(boolOr(s.Fan2Status)),
		"Light 1 Status: " + StateLabel(boolOr(s.Light1Status)),
		"Light 2 Status: " + StateLabel(boolOr(s.Light2Status)),
		"Pump Status: " + StateLabel(boolOr(s.PumpStatus)),
		"Water Level: " + formatReading(s.WaterLevel),
		"Temperature & Humidity: " + formatReading(s.TemperatureHumidity),
		"Humidity: " + formatReading(s.Humidity) + "%",
		"Temperature: " + formatReading(s.TemperatureF) + "°F",
	}
}

// ActuatorStates returns the reported on/off state per actuator id, skipping absent fields.
func (s DeviceStatus) ActuatorStates() map[string]bool {
	out := make(map[string]bool, 5)
	for id, v := range map[string]*Flag{
		"fan1":   s.Fan1Status,
		"fan2":   s.Fan2Status,
		"light1": s.Light1Status,
		"light2": s.Light2Status,
		"pump":   s.PumpStatus,
	} {
		if v != nil {
			out[id] = bool(*v)
		}
	}
	return out
}

func boolOr(f *Flag) bool {
	return f != nil && bool(*f)
}

func formatReading(r *Reading) string {
	if r == nil {
		return ""
	}
	return r.String()
}
