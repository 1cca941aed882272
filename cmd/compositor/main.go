// Command compositor binds the wayland server's wl_compositor global.
package main

import (
	"os"

	"github.com/waydemo/waydemo/wl"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := wl.DefaultConfig()
	d, err := wl.Connect(cfg)
	if err != nil {
		cfg.Logger.WithError(err).Error("unable to connect")
		return 1
	}
	defer d.Close()

	if err := d.Discover("wl_compositor"); err != nil {
		cfg.Logger.WithError(err).Error("error binding to compositor interface")
		return 1
	}
	cfg.Logger.WithField("id", d.Compositor.ID()).Info("found compositor")
	return 0
}
