// Command sequential-flasher lights three LEDs when a button is pressed, then
// turns them off one at a time. Presses during a sequence are ignored.
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

const programName = "sequential-flasher"

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
	pinBlue := fs.Int("pin-blue", def.Flasher.Blue, "GPIO pin for the blue LED (turned off first)")
	pinRed := fs.Int("pin-red", def.Flasher.Red, "GPIO pin for the red LED (turned off second)")
	pinGreen := fs.Int("pin-green", def.Flasher.Green, "GPIO pin for the green LED (turned off last)")
	pinButton := fs.Int("pin-button", def.Flasher.Button, "GPIO pin for the active-low button")
	delay := fs.Duration("delay", def.Flasher.Delay, "Delay between stages")
	debounce := fs.Duration("debounce", def.Flasher.Debounce, "Kernel debounce period for the button (0 to disable)")
	printStatus := fs.Bool("print-status", false, "Start the flasher, print its status as JSON and exit")

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
		case "pin-blue":
			cfg.Flasher.Blue = *pinBlue
		case "pin-red":
			cfg.Flasher.Red = *pinRed
		case "pin-green":
			cfg.Flasher.Green = *pinGreen
		case "pin-button":
			cfg.Flasher.Button = *pinButton
		case "delay":
			cfg.Flasher.Delay = *delay
		case "debounce":
			cfg.Flasher.Debounce = *debounce
		}
	})

	if err := cfg.ValidateFlasher(); err != nil {
		return cfg, false, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, *printStatus, nil
}

func run(cfg config.Config, printStatus bool) error {
	fc := cfg.Flasher

	out, err := gpio.NewRealOutputs(cfg.Chip, []int{fc.Blue, fc.Red, fc.Green})
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer out.Close()

	button, err := gpio.NewRealButton(cfg.Chip, fc.Button, fc.Debounce)
	if err != nil {
		return fmt.Errorf("init button: %w", err)
	}
	defer button.Close()

	s := sched.NewRealScheduler()
	defer s.Stop()

	ctrl, tracker, err := start(cfg, out, s, time.Now())
	if err != nil {
		return err
	}

	// Print status mode
	if printStatus {
		return writeStatus(os.Stdout, tracker)
	}

	log.Printf("started: chip=%s blue=%d red=%d green=%d button=%d delay=%v debounce=%v",
		cfg.Chip, fc.Blue, fc.Red, fc.Green, fc.Button, fc.Delay, fc.Debounce)
	log.Printf("status: %s", status.FormatStatusEvent(tracker.Snapshot(), "STARTUP", ""))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(ctrl, button.Edges(), s.Fired(), tracker, sigCh)
}

// start builds the flasher on out and s and drives every light low.
func start(cfg config.Config, out gpio.Outputs, s sched.Scheduler, now time.Time) (*lights.FlasherController, *status.Tracker, error) {
	fc := cfg.Flasher

	tracker := status.NewTracker(programName, now, status.Config{
		Chip:       cfg.Chip,
		IntervalMs: fc.Delay.Milliseconds(),
		ButtonPin:  fc.Button,
	})

	fsm := logic.NewFlasher(
		logic.Light{Name: "BLUE", Pin: fc.Blue},
		logic.Light{Name: "RED", Pin: fc.Red},
		logic.Light{Name: "GREEN", Pin: fc.Green},
		fc.Delay,
	)
	ctrl := lights.NewFlasherController(fsm, out, s, tracker)
	if err := ctrl.Start(); err != nil {
		return nil, nil, fmt.Errorf("start flasher: %w", err)
	}
	return ctrl, tracker, nil
}

func writeStatus(w io.Writer, tracker *status.Tracker) error {
	if _, err := fmt.Fprintf(w, "%s\n", status.FormatJSON(tracker.Snapshot())); err != nil {
		return fmt.Errorf("write status: %w", err)
	}
	return nil
}

// runLoop delivers button edges and alarm callbacks to the controller on one
// goroutine until a signal arrives.
func runLoop(ctrl *lights.FlasherController, edges <-chan gpio.Edge, fired <-chan func(), tracker *status.Tracker, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			if tracker != nil {
				log.Printf("status: %s", status.FormatStatusEvent(tracker.Snapshot(), "SHUTDOWN", signalName(s)))
			}
			return nil

		case e := <-edges:
			if ctrl.Press() {
				log.Printf("button pin %d: sequence started", e.Pin)
			} else {
				log.Printf("button pin %d: ignored, sequence in progress", e.Pin)
			}

		case fn := <-fired:
			fn()
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
