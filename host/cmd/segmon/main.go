package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"segmux/config"
	"segmux/host/serial"
)

var (
	device    = flag.String("device", "/dev/ttyACM0", "Serial device path")
	baud      = flag.Int("baud", serial.DefaultBaud, "Baud rate")
	threshold = flag.Uint("threshold", config.DefaultThreshold, "Long-hold threshold for readings without a hold field (raw ADC counts)")
	shortHold = flag.Duration("short-hold", config.DefaultShortHoldMS*time.Millisecond, "Short hold configured on the device")
	verbose   = flag.Bool("verbose", false, "Print non-reading console lines")
	keys      = flag.Bool("keys", true, "Read s/c/q keypresses from the terminal")
)

func main() {
	flag.Parse()

	fmt.Println("segmon - display console monitor")
	fmt.Println("================================")

	cfg := serial.DefaultConfig(*device)
	cfg.Baud = *baud

	fmt.Printf("Opening %s at %d baud...\n", cfg.Device, cfg.Baud)
	port, err := serial.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var once sync.Once
	quit := func() { once.Do(func() { port.Close() }) }

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		quit()
	}()

	tally := newTally(uint16(*threshold), *shortHold)
	if *keys {
		go watchKeys(tally, quit)
	}
	lines := serial.NewLineReader(port, 256)
	for {
		line, err := lines.ReadLine()
		if errors.Is(err, io.EOF) {
			// Read timeout
			continue
		}
		if err != nil {
			break
		}
		if msg, ok := tally.observe(line); ok {
			fmt.Println(msg)
		} else if *verbose {
			fmt.Println("  " + line)
		}
	}

	fmt.Println()
	fmt.Print(tally.summary())
}
