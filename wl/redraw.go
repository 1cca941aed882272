package wl

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/waydemo/waydemo/event"
	"github.com/waydemo/waydemo/video"
)

// Start maps the window and paints the first frame, which arms the first
// frame callback. After that the window redraws itself from Display.Run.
func (w *Window) Start() error {
	if err := w.shellSurface.SetToplevel(); err != nil {
		return errors.Wrap(err, "unable to map window")
	}
	if err := w.surface.Damage(0, 0, int32(w.width), int32(w.height)); err != nil {
		return errors.Wrap(err, "unable to damage window")
	}
	return w.redraw(0)
}

// handle applies an event addressed to one of the window's objects. It
// reports false for events that belong to someone else.
func (w *Window) handle(ev event.Event) (bool, error) {
	switch ev.Kind {
	case event.FrameReady:
		if w.callback == nil || w.callback.ID() != ev.Object {
			return false, nil
		}
		return true, w.frameDone(ev.Data)
	case event.BufferReleased:
		for _, b := range w.buffers {
			if b.ID() == ev.Object {
				return true, w.bufferReleased(b)
			}
		}
	case event.Ping:
		if w.shellSurface != nil && w.shellSurface.ID() == ev.Object {
			return true, errors.Wrap(w.shellSurface.Pong(ev.Data), "unable to answer ping")
		}
	}
	return false, nil
}

func (w *Window) frameDone(t uint32) error {
	w.callback.Destroy()
	w.callback = nil
	return w.redraw(t)
}

func (w *Window) bufferReleased(b *Buffer) error {
	b.release()
	if w.stalled && w.callback == nil {
		w.log.WithField("time", w.lastTime).Debug("buffer released, painting skipped frame")
		return w.redraw(w.lastTime)
	}
	return nil
}

func (w *Window) nextFree() *Buffer {
	for _, b := range w.buffers {
		if !b.Busy() {
			return b
		}
	}
	return nil
}

// redraw paints a free buffer for time t, attaches and commits it together
// with a new frame callback. With every buffer busy the frame is skipped
// and no callback is armed; the next release paints it.
func (w *Window) redraw(t uint32) error {
	w.lastTime = t
	b := w.nextFree()
	if b == nil {
		w.stalled = true
		w.log.WithField("time", t).Debug("no free buffer, frame skipped")
		return nil
	}
	w.stalled = false

	surf, err := b.Surface()
	if err != nil {
		return err
	}
	video.PaintRings(surf.Pixels(), w.padding, w.width, w.height, t)

	if err := w.surface.Attach(b.ID(), 0, 0); err != nil {
		return errors.Wrap(err, "unable to attach buffer")
	}
	damage := surf.Bounds().Inset(w.padding)
	if err := w.surface.Damage(int32(damage.X), int32(damage.Y), int32(damage.W), int32(damage.H)); err != nil {
		return errors.Wrap(err, "unable to damage surface")
	}
	cb, err := w.surface.Frame(w.frame)
	if err != nil {
		return errors.Wrap(err, "unable to request frame callback")
	}
	w.callback = cb
	if err := w.surface.Commit(); err != nil {
		return errors.Wrap(err, "unable to commit surface")
	}
	b.attached()
	w.frames++

	w.log.WithFields(logrus.Fields{
		"time":     t,
		"buffer":   b.ID(),
		"callback": cb.ID(),
	}).Debug("frame committed")
	return nil
}
