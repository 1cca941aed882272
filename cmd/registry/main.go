// Command registry lists the globals the wayland server advertises.
package main

import (
	"fmt"
	"os"

	"github.com/waydemo/waydemo/event"
	"github.com/waydemo/waydemo/wl"
)

func main() {
	os.Exit(run())
}

func printGlobal(_ interface{}, ev event.Event) bool {
	switch ev.Kind {
	case event.GlobalAdded:
		fmt.Printf("[registry_add] name: %d interface: %s version: %d\n", ev.Name, ev.Interface, ev.Version)
	case event.GlobalRemoved:
		fmt.Printf("[registry_remove] name: %d\n", ev.Name)
	}
	return true
}

func run() int {
	cfg := wl.DefaultConfig()
	d, err := wl.Connect(cfg)
	if err != nil {
		cfg.Logger.WithError(err).Error("unable to connect")
		return 1
	}
	defer d.Close()

	d.Watch(&event.Watcher{Callback: printGlobal})
	if err := d.Discover(); err != nil {
		cfg.Logger.WithError(err).Error("unable to list globals")
		return 1
	}
	cfg.Logger.WithField("count", len(d.Globals())).Info("registry listed")
	return 0
}
