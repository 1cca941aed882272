package wl

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/waydemo/waydemo/event"
	"github.com/waydemo/waydemo/wl/wlp"
)

// Window is a toplevel wl_shell surface showing one of its shared buffers.
type Window struct {
	d   *Display
	log *logrus.Entry

	surface      *wlp.Surface
	shellSurface *wlp.ShellSurface
	buffers      []*Buffer
	callback     *wlp.Callback
	frame        *frameListener

	width, height, padding int

	stalled  bool
	lastTime uint32
	frames   int
}

// NewWindow creates the surface, gives it the shell surface role and
// allocates the buffers. On failure everything already created is
// released.
func NewWindow(d *Display, width, height int) (*Window, error) {
	cfg := d.cfg
	cfg.Width, cfg.Height = width, height
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if missing := d.Capabilities.Missing("wl_compositor", "wl_shell", "wl_shm"); len(missing) > 0 {
		return nil, errors.Errorf("%s not bound", missing[0])
	}

	w := &Window{
		d:       d,
		log:     d.log.WithField("component", "window"),
		frame:   &frameListener{d.pusher("frame")},
		width:   width,
		height:  height,
		padding: cfg.Padding,
	}

	var err error
	w.surface, err = d.Compositor.CreateSurface(&surfaceListener{d.pusher("surface")})
	if err != nil {
		return nil, errors.Wrap(err, "error creating surface")
	}
	w.log = w.log.WithField("surface", w.surface.ID())
	w.log.Info("surface created")

	w.shellSurface, err = d.Shell.GetShellSurface(&shellSurfaceListener{d.pusher("shell_surface")}, w.surface.ID())
	if err != nil {
		w.Destroy()
		return nil, errors.Wrap(err, "error creating shell surface")
	}
	w.log.Info("shell surface created")
	if cfg.Title != "" {
		if err := w.shellSurface.SetTitle(cfg.Title); err != nil {
			w.Destroy()
			return nil, errors.Wrap(err, "unable to set title")
		}
	}

	for i := 0; i < cfg.Buffers; i++ {
		b, err := NewBuffer(d.Shm, width, height, &bufferListener{d.pusher("buffer")})
		if err != nil {
			w.Destroy()
			return nil, errors.Wrap(err, "error creating buffer")
		}
		w.buffers = append(w.buffers, b)
	}

	d.windows = append(d.windows, w)
	return w, nil
}

// Destroy releases the buffers, the pending frame callback, the shell
// surface and the surface, in that order. The Display is left open.
func (w *Window) Destroy() error {
	ids := w.objectIDs()

	var err error
	keep := func(e error) {
		if err == nil {
			err = e
		}
	}
	for _, b := range w.buffers {
		keep(b.Destroy())
	}
	w.buffers = nil
	if w.callback != nil {
		keep(w.callback.Destroy())
		w.callback = nil
	}
	if w.shellSurface != nil {
		keep(w.shellSurface.Destroy())
		w.shellSurface = nil
	}
	if w.surface != nil {
		keep(w.surface.Destroy())
		w.surface = nil
	}

	for i, o := range w.d.windows {
		if o == w {
			w.d.windows = append(w.d.windows[:i], w.d.windows[i+1:]...)
			break
		}
	}
	w.d.queue.Filter(func(_ interface{}, ev event.Event) bool {
		return ev.Object == 0 || !ids[ev.Object]
	}, nil)
	return errors.Wrap(err, "unable to destroy window")
}

func (w *Window) objectIDs() map[uint32]bool {
	ids := make(map[uint32]bool)
	for _, b := range w.buffers {
		ids[b.ID()] = true
	}
	if w.callback != nil {
		ids[w.callback.ID()] = true
	}
	if w.shellSurface != nil {
		ids[w.shellSurface.ID()] = true
	}
	return ids
}

func (w *Window) Buffers() []*Buffer {
	return w.buffers
}

// Frames is the number of frames painted and committed so far.
func (w *Window) Frames() int {
	return w.frames
}

// Armed reports whether a frame callback is outstanding.
func (w *Window) Armed() bool {
	return w.callback != nil
}

// Stalled reports whether a frame was skipped because no buffer was free.
func (w *Window) Stalled() bool {
	return w.stalled
}
