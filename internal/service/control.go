package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"terrarium_dashboard/internal/device"
	"terrarium_dashboard/internal/models"
)

// ErrToggleInFlight is returned when the in-flight guard rejects an activation.
var ErrToggleInFlight = errors.New("toggle already in flight")

// Button is a binary control bound to one actuator. The displayed state only
// changes once the controller acknowledged the command.
type Button struct {
	id    string
	name  string
	ctrl  device.Controller
	guard bool

	mu       sync.Mutex
	on       bool
	inFlight bool
}

// NewButton creates a button in the given initial state.
func NewButton(id, name string, initial bool, ctrl device.Controller, guard bool) *Button {
	return &Button{id: id, name: name, on: initial, ctrl: ctrl, guard: guard}
}

func (b *Button) ID() string { return b.id }

// State returns the current displayed state.
func (b *Button) State() models.Actuator {
	b.mu.Lock()
	defer b.mu.Unlock()
	return models.Actuator{ID: b.id, Name: b.name, On: b.on}
}

// Toggle sends the command for the opposite of the displayed state and commits
// it on success. On failure the displayed state is left as is and the error
// wraps device.ErrRequestFailed. The lock is not held during the call, so
// overlapping toggles commit in the order their responses arrive.
func (b *Button) Toggle(ctx context.Context) (models.Actuator, string, error) {
	b.mu.Lock()
	if b.guard && b.inFlight {
		b.mu.Unlock()
		return b.State(), "", ErrToggleInFlight
	}
	target := !b.on
	b.inFlight = true
	b.mu.Unlock()

	action := models.ActionFor(target)
	err := b.ctrl.SendAction(ctx, b.id, action)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.inFlight = false
	if err != nil {
		if !errors.Is(err, device.ErrRequestFailed) {
			err = fmt.Errorf("%w: %w", device.ErrRequestFailed, err)
		}
		return models.Actuator{ID: b.id, Name: b.name, On: b.on}, action, err
	}
	b.on = target
	return models.Actuator{ID: b.id, Name: b.name, On: b.on}, action, nil
}
