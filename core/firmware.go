package core

import "segmux/statusline"

// Hardware gathers the drivers the display core runs on
type Hardware struct {
	GPIO  GPIODriver
	ADC   ADCDriver
	Timer TickTimer
	Clock Clock
}

// RegisteredHardware uses the GPIO and ADC drivers registered by the target
func RegisteredHardware(timer TickTimer, clock Clock) Hardware {
	return Hardware{
		GPIO:  MustGPIO(),
		ADC:   MustADC(),
		Timer: timer,
		Clock: clock,
	}
}

// Firmware wires the edge detector, the worker and the multiplexer around
// one DisplayState and one Signal.
type Firmware struct {
	Params  Params
	HW      Hardware
	State   *DisplayState
	Signal  *Signal
	Sensor  *AnalogSensor
	Mux     *Multiplexer
	Sampler *Sampler
	Edge    *EdgeDetector
	// nil unless Params.HeartbeatLED is enabled
	Heartbeat *Heartbeat

	done chan error
}

// NewFirmware validates params and builds every component
func NewFirmware(p Params, hw Hardware) (*Firmware, error) {
	if hw.GPIO == nil || hw.ADC == nil || hw.Timer == nil || hw.Clock == nil {
		return nil, ErrMissingDriver
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	f := &Firmware{
		Params: p,
		HW:     hw,
		State:  &DisplayState{},
		Signal: NewSignal(),
		done:   make(chan error, 1),
	}
	f.Sensor = NewAnalogSensor(hw.ADC, p.ADCChannel, hw.Clock, p.ADCPollInterval, p.ADCMaxPolls)
	f.Mux = NewMultiplexer(f.State, hw.GPIO, hw.Timer, hw.Clock, p.Display, p.PhasesPerDigit)
	f.Sampler = NewSampler(f.Signal, f.Sensor, f.State, hw.Timer, hw.Clock, p)
	f.Edge = NewEdgeDetector(hw.GPIO, p.SensorPin, f.Signal, hw.Clock, p.RearmInterval)
	if p.StatusLED.Enabled {
		f.Sampler.SetStatusLED(hw.GPIO, p.StatusLED.Pin)
	}
	if p.HeartbeatLED.Enabled {
		f.Heartbeat = NewHeartbeat(hw.GPIO, p.HeartbeatLED.Pin, hw.Clock, p.HeartbeatPeriod)
	}
	return f, nil
}

// Configure sets up pins and the ADC channel and registers the tick handler.
// The display starts blank.
func (f *Firmware) Configure() error {
	gpio := f.HW.GPIO
	pins := f.Params.Display

	for _, pin := range pins.Segments {
		if err := gpio.ConfigureOutput(pin); err != nil {
			return err
		}
	}
	for _, pin := range pins.Digits {
		if err := gpio.ConfigureOutput(pin); err != nil {
			return err
		}
	}
	if pins.Point != NoPin {
		if err := gpio.ConfigureOutput(pins.Point); err != nil {
			return err
		}
	}
	f.Mux.Off()

	for _, led := range []Indicator{f.Params.StatusLED, f.Params.HeartbeatLED} {
		if !led.Enabled {
			continue
		}
		if err := gpio.ConfigureOutput(led.Pin); err != nil {
			return err
		}
		gpio.SetPin(led.Pin, false)
	}

	if err := gpio.ConfigureInput(f.Params.SensorPin, f.Params.SensorPull); err != nil {
		return err
	}
	if err := f.HW.ADC.ConfigureChannel(f.Params.ADCChannel); err != nil {
		return err
	}

	f.HW.Timer.Disable()
	f.HW.Timer.SetHandler(f.Mux.Tick)
	return nil
}

// Start configures the hardware and launches the worker goroutine
func (f *Firmware) Start() error {
	if err := f.Configure(); err != nil {
		return err
	}
	Logln(statusline.Banner)

	go func() {
		f.done <- f.Sampler.Run()
	}()
	return nil
}

// EdgeHandler returns the callback to register on the sensor pin interrupt
func (f *Firmware) EdgeHandler() func() {
	return f.Edge.HandleEdge
}

// Stop ends the worker. The display blanks on its own when the frame expires.
func (f *Firmware) Stop() {
	f.Signal.Close()
}

// Done delivers the worker's exit error
func (f *Firmware) Done() <-chan error {
	return f.done
}
