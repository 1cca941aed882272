package wl

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/waydemo/waydemo/event"
	"github.com/waydemo/waydemo/wl/wlp"
)

// bindVersion is the interface version requested for every bound global.
const bindVersion = 1

// Capabilities holds the globals a Display has bound. A nil field means the
// compositor did not advertise the interface.
type Capabilities struct {
	Compositor *wlp.Compositor
	Shell      *wlp.Shell
	Shm        *wlp.Shm
}

// Missing returns the interfaces among ifaces that are not bound.
// Interfaces the binder does not know about are always missing.
func (c *Capabilities) Missing(ifaces ...string) []string {
	var missing []string
	for _, iface := range ifaces {
		var bound bool
		switch iface {
		case "wl_compositor":
			bound = c.Compositor != nil
		case "wl_shell":
			bound = c.Shell != nil
		case "wl_shm":
			bound = c.Shm != nil
		}
		if !bound {
			missing = append(missing, iface)
		}
	}
	return missing
}

func (d *Display) globalAdded(ev event.Event) {
	d.globals = append(d.globals, Global{Name: ev.Name, Interface: ev.Interface, Version: ev.Version})
	log := d.log.WithFields(logrus.Fields{
		"name":      ev.Name,
		"interface": ev.Interface,
		"version":   ev.Version,
	})
	log.Debug("global advertised")

	var (
		o   wlp.Object
		err error
	)
	switch ev.Interface {
	case "wl_compositor":
		if d.Compositor != nil {
			break
		}
		if o, err = d.bind(ev, nil); err == nil {
			d.Compositor = o.(*wlp.Compositor)
		}
	case "wl_shell":
		if d.Shell != nil {
			break
		}
		if o, err = d.bind(ev, nil); err == nil {
			d.Shell = o.(*wlp.Shell)
		}
	case "wl_shm":
		if d.Shm != nil {
			break
		}
		if o, err = d.bind(ev, &shmListener{d.pusher("shm")}); err == nil {
			d.Shm = o.(*wlp.Shm)
		}
	default:
		return
	}
	switch {
	case err != nil:
		log.WithError(err).Error("bind failed")
		if d.bindErr == nil {
			d.bindErr = errors.Wrapf(err, "unable to bind %s", ev.Interface)
		}
	case o == nil:
		log.Debug("duplicate global ignored")
	default:
		log.WithField("id", o.ID()).Infof("bound to %s interface", ev.Interface)
	}
}

func (d *Display) bind(ev event.Event, listener interface{}) (wlp.Object, error) {
	return d.ctx.Bind(d.registry, ev.Name, ev.Interface, bindVersion, listener)
}

// globalRemoved only logs: the bound objects stay valid until the client
// destroys them.
func (d *Display) globalRemoved(ev event.Event) {
	d.log.WithField("name", ev.Name).Info("global removed")
}
