//go:build linux

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"segmux/config"
	"segmux/core"
	"segmux/host/serial"
)

var (
	configPath = flag.String("config", "", "JSON device configuration (default: built-in Pi wiring)")
	statusPort = flag.String("status-port", "", "Mirror status lines to this serial device")
	debug      = flag.Bool("debug", false, "Enable debug output and dump the event trace on exit")

	adcClk  = flag.Int("adc-clk", 11, "MCP3008 CLK (BCM)")
	adcCS   = flag.Int("adc-cs", 8, "MCP3008 CS (BCM)")
	adcDin  = flag.Int("adc-din", 10, "MCP3008 DIN (BCM)")
	adcDout = flag.Int("adc-dout", 9, "MCP3008 DOUT (BCM)")
)

// piDefault keeps the display, sensor and LEDs off the SPI0 pins used by the
// ADC and off the UART pins
func piDefault() *config.DeviceConfig {
	point, status, heartbeat := 26, 23, 24
	cfg := config.Default()
	cfg.Segments = [7]int{17, 27, 22, 5, 6, 13, 19}
	cfg.Point = &point
	cfg.StatusLED = &status
	cfg.HeartbeatLED = &heartbeat
	cfg.Digits = [core.DigitCount]int{12, 16, 20, 21}
	cfg.Sensor = 4
	return cfg
}

func loadConfig() (*config.DeviceConfig, error) {
	if *configPath == "" {
		return piDefault(), nil
	}
	data, err := os.ReadFile(*configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return config.LoadConfig(data)
}

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	params := cfg.Params()

	var mirror *serial.Mirror
	if *statusPort != "" {
		port, err := serial.Open(serial.DefaultConfig(*statusPort))
		if err != nil {
			return err
		}
		defer port.Close()
		mirror = serial.NewMirror(port)
	}
	core.SetLogWriter(func(msg string) {
		fmt.Println(msg)
		if mirror != nil {
			mirror.WriteLine(msg)
		}
	})
	core.SetDebugEnabled(*debug)
	core.InitAsyncLog(64)

	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph init: %w", err)
	}

	gpioDriver := NewPeriphGPIODriver()
	core.SetGPIODriver(gpioDriver)
	defer gpioDriver.Halt()

	adc, err := newADC()
	if err != nil {
		return err
	}
	core.SetADCDriver(adc)
	defer adc.Halt()

	sched := core.NewScheduler()
	clock := core.SystemClock{}
	refresh := core.NewPeriodicTimer(sched, clock, params.RefreshPeriod)

	fw, err := core.NewFirmware(params, core.RegisteredHardware(refresh, clock))
	if err != nil {
		return err
	}
	if err := fw.Start(); err != nil {
		return err
	}

	if fw.Heartbeat != nil {
		fw.Heartbeat.Start(sched)
	}

	stop := make(chan struct{})
	go sched.Run(clock, params.RefreshPeriod/4, stop)
	go watchEdges(gpioDriver, params.SensorPin, fw.EdgeHandler(), stop)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigs:
		fw.Stop()
		err = <-fw.Done()
		if errors.Is(err, core.ErrSignalClosed) {
			err = nil
		}
	case err = <-fw.Done():
	}

	refresh.Disable()
	close(stop)
	if fw.Heartbeat != nil {
		fw.Heartbeat.Stop()
	}
	// One period for an in-flight tick to finish
	time.Sleep(params.RefreshPeriod)
	fw.Mux.Off()
	if *debug {
		core.DumpEvents()
	}
	// Let the log worker drain
	time.Sleep(50 * time.Millisecond)
	return err
}

func newADC() (*MCP3008, error) {
	name := func(n int) string { return fmt.Sprintf("GPIO%d", n) }
	clk := gpioreg.ByName(name(*adcClk))
	cs := gpioreg.ByName(name(*adcCS))
	din := gpioreg.ByName(name(*adcDin))
	dout := gpioreg.ByName(name(*adcDout))
	if clk == nil || cs == nil || din == nil || dout == nil {
		return nil, fmt.Errorf("mcp3008: unknown pin")
	}
	return NewMCP3008(time.Microsecond, clk, cs, din, dout)
}

// watchEdges stands in for the sensor interrupt: it waits for rising edges
// and hands each one to the edge handler.
func watchEdges(d *PeriphGPIODriver, pin core.GPIOPin, handle func(), stop <-chan struct{}) {
	p := d.Pin(pin)
	for {
		select {
		case <-stop:
			return
		default:
		}
		if p.WaitForEdge(100 * time.Millisecond) {
			handle()
		}
	}
}
