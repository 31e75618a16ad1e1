package models

// Actions understood by the controller firmware.
const (
	ActionTurnOn  = "turn_on"
	ActionTurnOff = "turn_off"
)

// Actuator is a controllable device (fan, light, pump) as displayed by a control button.
type Actuator struct {
	ID   string `json:"id"`   // fan1 | fan2 | light1 | light2 | pump
	Name string `json:"name"` // human-readable
	On   bool   `json:"on"`
}

// ActionFor maps a requested target state to the firmware action.
func ActionFor(on bool) string {
	if on {
		return ActionTurnOn
	}
	return ActionTurnOff
}

// StateLabel renders a binary state the way the dashboard shows it.
func StateLabel(on bool) string {
	if on {
		return "On"
	}
	return "Off"
}
