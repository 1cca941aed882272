// Command simpleclient connects to the wayland server and disconnects.
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
	if err := d.Close(); err != nil {
		cfg.Logger.WithError(err).Error("unable to disconnect")
		return 1
	}
	return 0
}
