package wl

import (
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Config struct {
	// Socket is the compositor socket name or absolute path. Empty means
	// WAYLAND_SOCKET, then WAYLAND_DISPLAY, then wayland-0.
	Socket string

	Width   int
	Height  int
	Padding int
	// Buffers is how many shared buffers a window paints into in turn.
	Buffers int
	Title   string

	Logger *logrus.Logger
}

func DefaultConfig() Config {
	return Config{
		Width:   300,
		Height:  300,
		Padding: 20,
		Buffers: 1,
		Title:   "waydemo",
		Logger:  NewLogger(),
	}
}

// NewLogger returns a logger writing to stderr. Wire traces are enabled by
// setting WAYLAND_DEBUG to 1 or client.
func NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.Out = os.Stderr
	switch os.Getenv("WAYLAND_DEBUG") {
	case "1", "client":
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func (c Config) validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Errorf("invalid window size %dx%d", c.Width, c.Height)
	case c.Padding < 0 || 2*c.Padding >= c.Width || 2*c.Padding >= c.Height:
		return errors.Errorf("padding %d does not fit a %dx%d window", c.Padding, c.Width, c.Height)
	case c.Buffers < 1:
		return errors.Errorf("at least one buffer is needed, got %d", c.Buffers)
	}
	_, _, err := bufferSize(c.Width, c.Height)
	return err
}

func (c Config) logger() *logrus.Logger {
	if c.Logger == nil {
		return logrus.StandardLogger()
	}
	return c.Logger
}
