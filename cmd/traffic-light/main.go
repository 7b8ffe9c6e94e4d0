// Command traffic-light cycles three LEDs red → yellow → green from a
// repeating timer and prints a heartbeat line once per second.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/pico-lights/internal/config"
	"github.com/sweeney/pico-lights/internal/gpio"
	"github.com/sweeney/pico-lights/internal/lights"
	"github.com/sweeney/pico-lights/internal/logic"
	"github.com/sweeney/pico-lights/internal/sched"
	"github.com/sweeney/pico-lights/internal/status"
)

const programName = "traffic-light"

func main() {
	cfg, printStatus, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if err := run(cfg, printStatus); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// parseFlags builds the config from defaults, an optional YAML board profile,
// then any flags set explicitly on the command line.
func parseFlags(args []string) (config.Config, bool, error) {
	def := config.Default()

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML board profile (explicit flags override it)")
	chip := fs.String("chip", def.Chip, "GPIO chip name")
	pinRed := fs.Int("pin-red", def.Traffic.Red, "GPIO pin for the red LED")
	pinYellow := fs.Int("pin-yellow", def.Traffic.Yellow, "GPIO pin for the yellow LED")
	pinGreen := fs.Int("pin-green", def.Traffic.Green, "GPIO pin for the green LED")
	period := fs.Duration("period", def.Traffic.Period, "Time each light stays on")
	heartbeat := fs.Duration("heartbeat", def.Traffic.Heartbeat, "Heartbeat message interval")
	printStatus := fs.Bool("print-status", false, "Start the light, print its status as JSON and exit")

	if err := fs.Parse(args); err != nil {
		return def, false, err
	}

	cfg := def
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return def, false, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "chip":
			cfg.Chip = *chip
		case "pin-red":
			cfg.Traffic.Red = *pinRed
		case "pin-yellow":
			cfg.Traffic.Yellow = *pinYellow
		case "pin-green":
			cfg.Traffic.Green = *pinGreen
		case "period":
			cfg.Traffic.Period = *period
		case "heartbeat":
			cfg.Traffic.Heartbeat = *heartbeat
		}
	})

	if err := cfg.ValidateTraffic(); err != nil {
		return cfg, false, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, *printStatus, nil
}

func run(cfg config.Config, printStatus bool) error {
	tc := cfg.Traffic

	out, err := gpio.NewRealOutputs(cfg.Chip, []int{tc.Red, tc.Yellow, tc.Green})
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer out.Close()

	s := sched.NewRealScheduler()
	defer s.Stop()

	tracker, err := start(cfg, out, s, time.Now())
	if err != nil {
		return err
	}

	// Print status mode
	if printStatus {
		return writeStatus(os.Stdout, tracker)
	}

	log.Printf("started: chip=%s red=%d yellow=%d green=%d period=%v", cfg.Chip, tc.Red, tc.Yellow, tc.Green, tc.Period)
	log.Printf("status: %s", status.FormatStatusEvent(tracker.Snapshot(), "STARTUP", ""))

	heartbeat := time.NewTicker(tc.Heartbeat)
	defer heartbeat.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(s.Fired(), heartbeat.C, os.Stdout, tracker, sigCh)
}

// start builds the traffic light on out and s, lights the first light and
// arms the repeating timer.
func start(cfg config.Config, out gpio.Outputs, s sched.Scheduler, now time.Time) (*status.Tracker, error) {
	tc := cfg.Traffic

	tracker := status.NewTracker(programName, now, status.Config{
		Chip:        cfg.Chip,
		IntervalMs:  tc.Period.Milliseconds(),
		HeartbeatMs: tc.Heartbeat.Milliseconds(),
		ButtonPin:   -1,
	})

	fsm := logic.NewTrafficLight(
		logic.Light{Name: "RED", Pin: tc.Red},
		logic.Light{Name: "YELLOW", Pin: tc.Yellow},
		logic.Light{Name: "GREEN", Pin: tc.Green},
		tc.Period,
	)
	ctrl := lights.NewTrafficController(fsm, out, s, tracker)
	if err := ctrl.Start(); err != nil {
		return nil, fmt.Errorf("start traffic light: %w", err)
	}
	return tracker, nil
}

func writeStatus(w io.Writer, tracker *status.Tracker) error {
	if _, err := fmt.Fprintf(w, "%s\n", status.FormatJSON(tracker.Snapshot())); err != nil {
		return fmt.Errorf("write status: %w", err)
	}
	return nil
}

func writeHeartbeat(w io.Writer) {
	if _, err := fmt.Fprintln(w, logic.HeartbeatMessage); err != nil {
		log.Printf("heartbeat write error: %v", err)
	}
}

// runLoop runs timer callbacks and the heartbeat on one goroutine until a
// signal arrives. The heartbeat is printed once on entry, then on every
// heartbeat tick; it never touches the state machine.
func runLoop(fired <-chan func(), heartbeat <-chan time.Time, stdout io.Writer, tracker *status.Tracker, sig <-chan os.Signal) error {
	writeHeartbeat(stdout)

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			if tracker != nil {
				log.Printf("status: %s", status.FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN", signalName(s)))
			}
			return nil

		case fn := <-fired:
			fn()

		case <-heartbeat:
			writeHeartbeat(stdout)
		}
	}
}

func signalName(s os.Signal) string {
	switch s {
	case syscall.SIGINT:
		return "SIGINT"
	case syscall.SIGTERM:
		return "SIGTERM"
	}
	return "UNKNOWN"
}
