// Command rendershared shows a window animated by a software renderer
// painting into shared memory, one frame per compositor frame callback.
//
// It runs until the connection to the server is lost or it receives
// SIGINT or SIGTERM.
package main

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"github.com/waydemo/waydemo/wl"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := wl.DefaultConfig()
	log := cfg.Logger

	d, err := wl.Connect(cfg)
	if err != nil {
		log.WithError(err).Error("unable to connect")
		return 1
	}
	defer d.Close()

	if err := d.Discover("wl_compositor", "wl_shell", "wl_shm"); err != nil {
		log.WithError(err).Error("startup failed")
		return 1
	}

	w, err := wl.NewWindow(d, cfg.Width, cfg.Height)
	if err != nil {
		log.WithError(err).Error("unable to create window")
		return 1
	}
	defer func() {
		if err := w.Destroy(); err != nil {
			log.WithError(err).Debug("window teardown incomplete")
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, unix.SIGTERM)
	defer signal.Stop(sigs)
	go func() {
		sig := <-sigs
		log.WithField("signal", sig).Info("shutting down")
		d.Close()
	}()

	if err := d.Roundtrip(); err != nil {
		log.WithError(err).Error("round-trip failed")
		return 1
	}
	if err := w.Start(); err != nil {
		log.WithError(err).Error("unable to start rendering")
		return 1
	}
	err = d.Run()
	log.WithError(err).Info("dispatch loop ended")
	return 0
}
