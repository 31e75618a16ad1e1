package simulator

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"sync"
	"time"

	"terrarium_dashboard/internal/logger"
	"terrarium_dashboard/internal/models"
)

// ----------- Simulation constants -----------
const (
	WaterLevelBase   = 512.0 // raw analog reading, 0..1023
	AnalogTHBase     = 300.0 // raw analog reading of the temperature/humidity pin
	HumidityBase     = 55.0  // % relative humidity
	TemperatureFBase = 77.0  // °F

	DriftPerSec     = 0.5 // reading units per second toward the baseline
	PumpDrainPerSec = 8.0 // water level drop per second while the pump runs

	LightsOnHour  = 6
	LightsOffHour = 18
	WaterHour     = 7
	WaterDuration = 1500 * time.Millisecond
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidAction = errors.New("invalid action")
)

type switchDef struct {
	id   string
	name string
}

// Switch order and names as exposed by the firmware.
var switches = []switchDef{
	{"fan1", "Fan 1"},
	{"fan2", "Fan 2"},
	{"light1", "Light 1"},
	{"light2", "Light 2"},
	{"pump", "Pump"},
}

// Options configures a Device.
type Options struct {
	AutoMode bool
	Noise    float64 // max random offset added to each baseline per tick; 0 = none
	Seed     int64
	Clock    func() time.Time
	Log      *logger.Logger
}

// Device is an in-memory terrarium controller: five switches, four sensors
// and the firmware's auto mode.
type Device struct {
	mu       sync.Mutex
	on       map[string]bool
	water    float64
	analogTH float64
	humidity float64
	tempF    float64
	watering bool

	autoMode bool
	noise    float64
	rnd      *rand.Rand
	clock    func() time.Time
	after    func(time.Duration, func()) *time.Timer
	log      *logger.Logger
}

// NewDevice returns a device with every switch off and sensors at their baselines.
func NewDevice(opts Options) *Device {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	d := &Device{
		on:       make(map[string]bool, len(switches)),
		water:    WaterLevelBase,
		analogTH: AnalogTHBase,
		humidity: HumidityBase,
		tempF:    TemperatureFBase,
		autoMode: opts.AutoMode,
		noise:    opts.Noise,
		rnd:      rand.New(rand.NewSource(opts.Seed)),
		clock:    clock,
		after:    time.AfterFunc,
		log:      opts.Log,
	}
	for _, s := range switches {
		d.on[s.id] = false
	}
	return d
}

// Status returns the payload of GET /.
func (d *Device) Status() models.DeviceStatus {
	d.mu.Lock()
	defer d.mu.Unlock()
	return models.DeviceStatus{
		Fan1Status:          models.Bool(d.on["fan1"]),
		Fan2Status:          models.Bool(d.on["fan2"]),
		Light1Status:        models.Bool(d.on["light1"]),
		Light2Status:        models.Bool(d.on["light2"]),
		PumpStatus:          models.Bool(d.on["pump"]),
		WaterLevel:          models.Float(math.Round(d.water)),
		TemperatureHumidity: models.Float(math.Round(d.analogTH)),
		Humidity:            models.Float(round1(d.humidity)),
		TemperatureF:        models.Float(round1(d.tempF)),
	}
}

// Switch reports the name and state of one switch.
func (d *Device) Switch(id string) (string, bool, error) {
	name, ok := switchName(id)
	if !ok {
		return "", false, ErrNotFound
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return name, d.on[id], nil
}

// Apply executes turn_on/turn_off and returns the firmware's confirmation text.
func (d *Device) Apply(id, action string) (string, error) {
	name, ok := switchName(id)
	if !ok {
		return "", ErrNotFound
	}
	var on bool
	switch action {
	case models.ActionTurnOn:
		on = true
	case models.ActionTurnOff:
		on = false
	default:
		return "", ErrInvalidAction
	}

	d.mu.Lock()
	d.on[id] = on
	d.mu.Unlock()

	msg := name + " turned " + onOff(on)
	if d.log != nil {
		d.log.Infow("switch", "id", id, "on", on)
	}
	return msg, nil
}

// Run ticks at the given interval until ctx is canceled.
func (d *Device) Run(ctx context.Context, tick time.Duration) {
	t := time.NewTicker(tick)
	defer t.Stop()
	last := d.clock()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			now := d.clock()
			d.step(now, now.Sub(last).Seconds())
			last = now
		}
	}
}

// step applies auto mode and sensor drift for elapsed seconds ending at now.
func (d *Device) step(now time.Time, elapsed float64) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.autoMode {
		d.applyAutoMode(now.Hour())
	}
	if elapsed <= 0 {
		return
	}

	if d.on["pump"] {
		d.water = math.Max(d.water-PumpDrainPerSec*elapsed, 0)
	} else {
		d.water = driftToward(d.water, WaterLevelBase+d.jitter(), elapsed)
	}
	d.analogTH = driftToward(d.analogTH, AnalogTHBase+d.jitter(), elapsed)

	humTarget, tempTarget := HumidityBase, TemperatureFBase
	if d.on["fan1"] || d.on["fan2"] {
		humTarget -= 5
		tempTarget -= 3
	}
	if d.on["light1"] || d.on["light2"] {
		tempTarget += 4
	}
	d.humidity = driftToward(d.humidity, humTarget+d.jitter(), elapsed)
	d.tempF = driftToward(d.tempF, tempTarget+d.jitter(), elapsed)
}

// applyAutoMode switches the lights by hour and waters at WaterHour.
// Caller holds d.mu.
func (d *Device) applyAutoMode(hour int) {
	lights := hour >= LightsOnHour && hour < LightsOffHour
	d.on["light1"] = lights
	d.on["light2"] = lights

	if hour == WaterHour && !d.on["pump"] && !d.watering {
		d.watering = true
		d.on["pump"] = true
		if d.log != nil {
			d.log.Infow("water_plants", "duration", WaterDuration)
		}
		d.after(WaterDuration, func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			d.on["pump"] = false
			d.watering = false
		})
	}
}

func (d *Device) jitter() float64 {
	if d.noise <= 0 {
		return 0
	}
	return (d.rnd.Float64()*2 - 1) * d.noise
}

// driftToward moves cur toward target by DriftPerSec*elapsed without overshooting.
func driftToward(cur, target, elapsed float64) float64 {
	delta := DriftPerSec * elapsed
	switch {
	case cur < target:
		return math.Min(cur+delta, target)
	case cur > target:
		return math.Max(cur-delta, target)
	}
	return cur
}

func switchName(id string) (string, bool) {
	for _, s := range switches {
		if s.id == id {
			return s.name, true
		}
	}
	return "", false
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
