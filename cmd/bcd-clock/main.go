// Command bcd-clock keeps a BCD time-of-day counter, polls debounced
// buttons, and reports both over MQTT and HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/sweeney/bcd-clock/internal/adjust"
	"github.com/sweeney/bcd-clock/internal/button"
	"github.com/sweeney/bcd-clock/internal/gpio"
	"github.com/sweeney/bcd-clock/internal/logger"
	"github.com/sweeney/bcd-clock/internal/metrics"
	"github.com/sweeney/bcd-clock/internal/mqtt"
	"github.com/sweeney/bcd-clock/internal/schedule"
	"github.com/sweeney/bcd-clock/internal/status"
	"github.com/sweeney/bcd-clock/internal/web"
)

type config struct {
	poll       time.Duration
	debounce   time.Duration
	pins       string
	pull       string
	chip       string
	broker     string
	heartbeat  string
	resync     string
	httpAddr   string
	logFile    string
	logLevel   string
	printState bool
}

func main() {
	var cfg config
	flag.DurationVar(&cfg.poll, "poll", 10*time.Millisecond, "Button polling interval")
	flag.DurationVar(&cfg.debounce, "debounce", 50*time.Millisecond, "Debounce duration")
	flag.StringVar(&cfg.pins, "pins", gpio.DefaultPins, "Buttons as name:offset pairs")
	flag.StringVar(&cfg.pull, "pull", "up", "Button wiring: up (pressed=LOW) or down (pressed=HIGH)")
	flag.StringVar(&cfg.chip, "chip", gpio.DefaultChip, "GPIO chip")
	flag.StringVar(&cfg.broker, "broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	flag.StringVar(&cfg.heartbeat, "heartbeat", "@every 15m", "Heartbeat schedule (cron, empty to disable)")
	flag.StringVar(&cfg.resync, "resync", "", `Resync clock from system time (cron, e.g. "0 3 * * *"; empty to disable)`)
	flag.StringVar(&cfg.httpAddr, "http", ":80", "HTTP status address (empty to disable)")
	flag.StringVar(&cfg.logFile, "log-file", "", "Also log to this file, rotated (empty for stdout only)")
	flag.StringVar(&cfg.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.BoolVar(&cfg.printState, "print-state", false, "Print current button levels and exit")

	flag.Parse()

	logger.SetLevel(cfg.logLevel)
	if err := logger.Init(cfg.logFile); err != nil {
		log.Fatalf("fatal: init logging: %v", err)
	}
	defer logger.Close()

	if err := run(cfg); err != nil {
		logger.Errorf("fatal: %v", err)
		logger.Close()
		os.Exit(1)
	}
}

func run(cfg config) error {
	polarity, err := button.ParsePolarity(cfg.pull)
	if err != nil {
		return err
	}
	specs, err := gpio.ParsePins(cfg.pins)
	if err != nil {
		return fmt.Errorf("parse pins: %w", err)
	}
	heartbeat, err := schedule.New(cfg.heartbeat)
	if err != nil {
		return fmt.Errorf("heartbeat: %w", err)
	}
	resync, err := schedule.New(cfg.resync)
	if err != nil {
		return fmt.Errorf("resync: %w", err)
	}

	// Initialize GPIO
	pins := make([]gpio.Pin, 0, len(specs))
	defer func() {
		for _, p := range pins {
			if err := p.Close(); err != nil {
				logger.Warnf("close gpio: %v", err)
			}
		}
	}()
	for _, s := range specs {
		p, err := gpio.NewRealPin(cfg.chip, s.Offset, polarity == button.PullUp)
		if err != nil {
			return fmt.Errorf("init gpio %s: %w", s.Name, err)
		}
		pins = append(pins, p)
	}

	// Print state mode
	if cfg.printState {
		for i, s := range specs {
			level, err := pins[i].Level()
			if err != nil {
				return fmt.Errorf("read gpio %s: %w", s.Name, err)
			}
			fmt.Printf("%s (pin %d): %s, %s\n", s.Name, s.Offset, levelString(level), pressedString(polarity.Pressed(level)))
		}
		return nil
	}

	buttons := make([]*button.Button, len(specs))
	for i, s := range specs {
		buttons[i] = button.New(s.Name, pins[i], cfg.debounce, polarity, nil)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	// Initialize MQTT. Broker I/O runs off the main loop; Close drains the
	// queue (SHUTDOWN included) before disconnecting.
	broker := mqtt.NewRealPublisher(cfg.broker)
	publisher := mqtt.NewAsyncPublisher(broker, mqtt.DefaultQueueSize, func(kind string, _ error) {
		m.PublishError(kind)
	})
	defer publisher.Close()

	tracker := status.NewTracker(time.Now(), status.Config{
		PollMs:     cfg.poll.Milliseconds(),
		DebounceMs: cfg.debounce.Milliseconds(),
		Pins:       cfg.pins,
		Pull:       polarity.String(),
		Heartbeat:  cfg.heartbeat,
		Resync:     cfg.resync,
		Broker:     cfg.broker,
		HTTPAddr:   cfg.httpAddr,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	d := newDaemon(buttons, publisher, broker, tracker, m, time.Now)

	// Publish startup event with full status snapshot
	d.publishStatus("STARTUP", "", true)

	adjustCh := make(chan adjust.Request)

	// Start HTTP status server
	if cfg.httpAddr != "" {
		srv := web.New(cfg.httpAddr, tracker, adjustCh, m.Handler())
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Errorf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		logger.Infof("http status server listening on %s", cfg.httpAddr)
	}

	heartbeat.Start()
	defer heartbeat.Stop()
	resync.Start()
	defer resync.Stop()

	logger.Infof("started: clock=%s poll=%v debounce=%v pins=%s pull=%s broker=%s heartbeat=%q resync=%q",
		d.clock.String(), cfg.poll, cfg.debounce, cfg.pins, polarity, cfg.broker, cfg.heartbeat, cfg.resync)

	second := time.NewTicker(time.Second)
	defer second.Stop()
	poll := time.NewTicker(cfg.poll)
	defer poll.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(d, loopInputs{
		second:    second.C,
		poll:      poll.C,
		heartbeat: heartbeat.C(),
		resync:    resync.C(),
		adjust:    adjustCh,
		sig:       sigCh,
	})
}

func levelString(high bool) string {
	if high {
		return "HIGH"
	}
	return "LOW"
}

func pressedString(pressed bool) string {
	if pressed {
		return "pressed"
	}
	return "released"
}
