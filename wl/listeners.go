package wl

import (
	"github.com/sirupsen/logrus"

	"github.com/waydemo/waydemo/event"
	"github.com/waydemo/waydemo/wl/wlp"
)

// Listeners only translate protocol events into queued events. All state
// changes happen when the Display drains the queue.

type pusher struct {
	q   *event.Queue
	log *logrus.Entry
}

func (p pusher) push(ev event.Event) {
	if err := p.q.Push(ev); err != nil {
		p.log.WithError(err).Error("event dropped")
	}
}

type registryListener struct{ pusher }

func (l *registryListener) Global(_ *wlp.Registry, name uint32, iface string, version uint32) {
	l.push(event.Event{Kind: event.GlobalAdded, Name: name, Interface: iface, Version: version})
}

func (l *registryListener) GlobalRemove(_ *wlp.Registry, name uint32) {
	l.push(event.Event{Kind: event.GlobalRemoved, Name: name})
}

type syncListener struct{ pusher }

func (l *syncListener) Done(cb *wlp.Callback, data uint32) {
	l.push(event.Event{Kind: event.SyncDone, Object: cb.ID(), Data: data})
}

type frameListener struct{ pusher }

func (l *frameListener) Done(cb *wlp.Callback, time uint32) {
	l.push(event.Event{Kind: event.FrameReady, Object: cb.ID(), Data: time})
}

type bufferListener struct{ pusher }

func (l *bufferListener) Release(b *wlp.Buffer) {
	l.push(event.Event{Kind: event.BufferReleased, Object: b.ID()})
}

type shmListener struct{ pusher }

func (l *shmListener) Format(_ *wlp.Shm, format uint32) {
	l.push(event.Event{Kind: event.Format, Data: format})
}

type shellSurfaceListener struct{ pusher }

func (l *shellSurfaceListener) Ping(ss *wlp.ShellSurface, serial uint32) {
	l.push(event.Event{Kind: event.Ping, Object: ss.ID(), Data: serial})
}

// Configure is a resize hint. Windows have a fixed size, so it is ignored.
func (l *shellSurfaceListener) Configure(_ *wlp.ShellSurface, edges uint32, width int32, height int32) {
	l.log.WithFields(logrus.Fields{"width": width, "height": height}).Debug("configure ignored")
}

func (l *shellSurfaceListener) PopupDone(_ *wlp.ShellSurface) {}

type surfaceListener struct{ pusher }

func (l *surfaceListener) Enter(_ *wlp.Surface, output uint32) {
	l.log.WithField("output", output).Debug("surface entered output")
}

func (l *surfaceListener) Leave(_ *wlp.Surface, output uint32) {
	l.log.WithField("output", output).Debug("surface left output")
}
