// Package wl is a small wayland client: it connects to a compositor, binds
// the globals needed to show a window, and drives a frame-synchronized
// software renderer into shared memory buffers.
package wl

import (
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"github.com/waydemo/waydemo/event"
	"github.com/waydemo/waydemo/ticker"
	"github.com/waydemo/waydemo/wl/wlp"
)

// Global is an object advertised by the compositor's registry.
type Global struct {
	Name      uint32
	Interface string
	Version   uint32
}

// Display is a connection to a compositor. It is owned by one goroutine;
// only Close may be called from another.
type Display struct {
	Capabilities

	cfg   Config
	log   *logrus.Entry
	ctx   *wlp.Context
	queue *event.Queue

	registry *wlp.Registry
	globals  []Global
	formats  []uint32
	syncs    map[uint32]bool
	bindErr  error
	windows  []*Window

	closeOnce sync.Once
	closeErr  error
}

// Connect opens the compositor socket named by cfg.Socket or the
// environment.
func Connect(cfg Config) (*Display, error) {
	conn, err := dial(cfg.Socket)
	if err != nil {
		return nil, errors.Wrap(err, "error connecting to the wayland server")
	}
	d := NewDisplay(conn, cfg)
	d.log.Info("connected to the wayland server")
	return d, nil
}

// NewDisplay uses an already connected socket.
func NewDisplay(conn wlp.Conn, cfg Config) *Display {
	logger := cfg.logger()
	return &Display{
		cfg:   cfg,
		log:   logger.WithField("component", "display"),
		ctx:   wlp.NewContext(conn, logger),
		queue: event.NewQueue(ticker.New()),
		syncs: make(map[uint32]bool),
	}
}

func dial(name string) (*net.UnixConn, error) {
	if name == "" {
		if s, ok := os.LookupEnv("WAYLAND_SOCKET"); ok {
			return inheritSocket(s)
		}
	}
	path, err := socketPath(name)
	if err != nil {
		return nil, err
	}
	addr, err := net.ResolveUnixAddr("unix", path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to resolve unix socket address (%s)", path)
	}
	conn, err := net.DialUnix("unix", nil, addr)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to connect to wayland server at (%s)", path)
	}
	return conn, nil
}

// socketPath resolves a socket name the way libwayland does.
func socketPath(name string) (string, error) {
	if name == "" {
		name = os.Getenv("WAYLAND_DISPLAY")
	}
	if name == "" {
		name = "wayland-0"
	}
	if filepath.IsAbs(name) {
		return name, nil
	}
	runtimeDir := os.Getenv("XDG_RUNTIME_DIR")
	if runtimeDir == "" {
		return "", errors.New("XDG_RUNTIME_DIR is not set in environment")
	}
	return filepath.Join(runtimeDir, name), nil
}

// inheritSocket takes over the connected socket a parent passed in
// WAYLAND_SOCKET. The variable is cleared so children do not reuse it.
func inheritSocket(s string) (*net.UnixConn, error) {
	os.Unsetenv("WAYLAND_SOCKET")
	fd, err := strconv.Atoi(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid WAYLAND_SOCKET %q", s)
	}
	unix.CloseOnExec(fd)
	f := os.NewFile(uintptr(fd), "wayland-socket")
	defer f.Close()
	c, err := net.FileConn(f)
	if err != nil {
		return nil, errors.Wrap(err, "unable to use WAYLAND_SOCKET")
	}
	uc, ok := c.(*net.UnixConn)
	if !ok {
		c.Close()
		return nil, errors.New("WAYLAND_SOCKET is not a unix socket")
	}
	return uc, nil
}

// Discover fetches the registry, binds the known globals during one
// round-trip and fails if any of the required interfaces was not bound.
func (d *Display) Discover(required ...string) error {
	if d.registry == nil {
		reg, err := d.ctx.Display.GetRegistry(&registryListener{d.pusher("registry")})
		if err != nil {
			return errors.Wrap(err, "error getting registry")
		}
		d.registry = reg
		d.log.WithField("id", reg.ID()).Info("registry created")
	}
	if err := d.Roundtrip(); err != nil {
		return errors.Wrap(err, "registry round-trip failed")
	}
	if d.bindErr != nil {
		return d.bindErr
	}
	if missing := d.Capabilities.Missing(required...); len(missing) > 0 {
		return errors.Errorf("unable to bind %s", strings.Join(missing, ", "))
	}
	return nil
}

// Roundtrip blocks until the compositor has handled every request sent so
// far and all events it sent in response have been handled.
func (d *Display) Roundtrip() error {
	cb, err := d.ctx.Display.Sync(&syncListener{d.pusher("sync")})
	if err != nil {
		return errors.Wrap(err, "unable to create display sync")
	}
	id := cb.ID()
	d.syncs[id] = false
	defer delete(d.syncs, id)
	for !d.syncs[id] {
		if err := d.Dispatch(); err != nil {
			return err
		}
	}
	return nil
}

// Dispatch blocks for one batch of events from the compositor and handles
// them in order.
func (d *Display) Dispatch() error {
	if _, err := d.ctx.Dispatch(); err != nil {
		return errors.Wrap(err, "dispatch failed")
	}
	for {
		ev, ok := d.queue.Poll()
		if !ok {
			return nil
		}
		if err := d.handle(ev); err != nil {
			return errors.Wrapf(err, "handling %s", ev.Kind)
		}
	}
}

// Run dispatches until the connection fails or is closed.
func (d *Display) Run() error {
	for {
		if err := d.Dispatch(); err != nil {
			return err
		}
	}
}

func (d *Display) handle(ev event.Event) error {
	switch ev.Kind {
	case event.GlobalAdded:
		d.globalAdded(ev)
	case event.GlobalRemoved:
		d.globalRemoved(ev)
	case event.SyncDone:
		if _, ok := d.syncs[ev.Object]; ok {
			d.syncs[ev.Object] = true
		}
	case event.Format:
		d.formats = append(d.formats, ev.Data)
		d.log.WithField("format", ev.Data).Debug("shm format supported")
	default:
		for _, w := range d.windows {
			if handled, err := w.handle(ev); handled {
				return err
			}
		}
		d.log.WithFields(logrus.Fields{
			"kind": ev.Kind,
			"id":   ev.Object,
		}).Debug("stale event ignored")
	}
	return nil
}

// Close disconnects. It is safe to call more than once and from another
// goroutine, which makes a blocked Dispatch return.
func (d *Display) Close() error {
	d.closeOnce.Do(func() {
		d.closeErr = errors.Wrap(d.ctx.Close(), "unable to close connection")
		d.log.Info("disconnected from the wayland server")
	})
	return d.closeErr
}

// Globals lists every global advertised so far, in order.
func (d *Display) Globals() []Global {
	return append([]Global(nil), d.globals...)
}

// Formats lists the wl_shm pixel formats the compositor announced.
func (d *Display) Formats() []uint32 {
	return append([]uint32(nil), d.formats...)
}

// Watch registers a watcher that sees every event as it is received,
// before the display handles it.
func (d *Display) Watch(w *event.Watcher) {
	d.queue.AddWatch(w)
}

func (d *Display) Unwatch(w *event.Watcher) {
	d.queue.DelWatch(w)
}

func (d *Display) pusher(component string) pusher {
	return pusher{q: d.queue, log: d.cfg.logger().WithField("component", component)}
}
