package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"unios/app"
	"unios/hal"
	"unios/sparkos/console"
)

func main() {
	var cfg hal.HeadlessConfig
	var headless, stdin bool
	var align string
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.BoolVar(&stdin, "stdin", false, "Read keystrokes from stdin in headless mode.")
	flag.StringVar(&align, "align", "left", "Console alignment: left, right or center.")
	flag.Parse()

	appCfg := app.Config{}
	switch align {
	case "left":
		appCfg.Align = console.AlignLeft
	case "right":
		appCfg.Align = console.AlignRight
	case "center":
		appCfg.Align = console.AlignCenter
	default:
		fmt.Fprintf(os.Stderr, "unknown -align %q\n", align)
		os.Exit(2)
	}
	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, appCfg)
	}

	if headless {
		if stdin {
			cfg.Stdin = os.Stdin
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := hal.RunHeadless(ctx, newApp, cfg); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := hal.RunWindow(newApp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
