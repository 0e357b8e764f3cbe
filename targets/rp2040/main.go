//go:build rp2040 || rp2350

package main

import (
	"machine"
	"time"

	"segmux/config"
	"segmux/core"
)

// The RP ADC is 12 bits wide; the reference threshold is for 10 bits
const threshold12 = config.DefaultThreshold << 2

var (
	// Debug counters
	ticksDispatched uint32
	loopPanics      uint32
)

func main() {
	// Disable watchdog on boot to clear any previous state
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	machine.Serial.Configure(machine.UARTConfig{BaudRate: 115200})
	core.SetLogWriter(func(msg string) {
		machine.Serial.Write([]byte(msg))
		machine.Serial.Write([]byte("\r\n"))
	})
	core.InitAsyncLog(16)

	UpdateSystemTime()

	core.SetGPIODriver(NewRPGPIODriver())
	core.SetADCDriver(NewRPADCDriver())

	cfg := config.Default()
	threshold := uint16(threshold12)
	cfg.Threshold = &threshold
	params := cfg.Params()

	sched := core.NewScheduler()
	clock := core.SystemClock{}
	refresh := core.NewPeriodicTimer(sched, clock, params.RefreshPeriod)

	fw, err := core.NewFirmware(params, core.RegisteredHardware(refresh, clock))
	if err != nil {
		halt("firmware: " + err.Error())
	}
	if err := fw.Start(); err != nil {
		halt("firmware: start: " + err.Error())
	}

	if fw.Heartbeat != nil {
		fw.Heartbeat.Start(sched)
	}

	edge := fw.EdgeHandler()
	sensor := machine.Pin(params.SensorPin)
	if err := sensor.SetInterrupt(machine.PinRising, func(machine.Pin) {
		edge()
	}); err != nil {
		halt("sensor: interrupt: " + err.Error())
	}

	// Main loop: publish time, run the refresh timer
	for {
		func() {
			defer func() {
				if r := recover(); r != nil {
					loopPanics++
				}
			}()

			UpdateSystemTime()
			ticksDispatched += uint32(sched.Dispatch(core.GetTime()))

			select {
			case err := <-fw.Done():
				fw.Mux.Off()
				core.DumpEvents()
				halt("sampler stopped: " + err.Error())
			default:
			}
		}()

		// Yield to the sampler and the log worker
		time.Sleep(10 * time.Microsecond)
	}
}

// halt reports a fatal error and parks the board
func halt(msg string) {
	core.Logln(msg)
	for {
		time.Sleep(time.Second)
	}
}
