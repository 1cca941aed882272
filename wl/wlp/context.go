package wlp

import (
	"net"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"
)

// maxMessageSize bounds a single message: the size field is 16 bits wide.
const maxMessageSize = 1 << 16

type constructor func(*Context) Object

var constructors map[string]constructor

func registerConstructor(iface string, fn constructor) {
	if constructors == nil {
		constructors = make(map[string]constructor)
	}
	constructors[iface] = fn
}

type Object interface {
	ID() uint32
	Type() string
	dispatch(opCode uint16, payload []byte) error
	setListener(listener interface{}) error
}

// Conn is the part of *net.UnixConn used by a Context.
type Conn interface {
	ReadMsgUnix(b, oob []byte) (n, oobn, flags int, addr *net.UnixAddr, err error)
	WriteMsgUnix(b, oob []byte, addr *net.UnixAddr) (n, oobn int, err error)
	Close() error
}

// Context is the client side of one wayland connection. It owns the object
// table and decodes incoming events, handing each to the listener of the
// object it is addressed to. All dispatch happens synchronously inside
// Dispatch, on the caller's goroutine.
type Context struct {
	*Display

	mu   sync.Mutex
	c    Conn
	obj  map[uint32]Object
	last uint32
	free []uint32

	in    []byte
	inLen int
	oob   []byte

	log *logrus.Entry
	Err error
}

// NewContext wraps conn and creates the wl_display object, which always has
// id 1.
func NewContext(conn Conn, logger logrus.FieldLogger) *Context {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	c := &Context{
		c:   conn,
		obj: make(map[uint32]Object),
		in:  make([]byte, maxMessageSize),
		oob: make([]byte, unix.CmsgSpace(28*4)),
		log: logger.WithField("component", "wlp"),
	}
	c.Display = newDisplay(c).(*Display)
	c.Display.l = c
	return c
}

func (c *Context) next() uint32 {
	if n := len(c.free); n > 0 {
		id := c.free[n-1]
		c.free = c.free[:n-1]
		return id
	}
	c.last++
	return c.last
}

func (c *Context) register(o Object) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.obj[o.ID()] = o
}

// discard releases an id that was allocated but never sent to the server.
func (c *Context) discard(id uint32) {
	c.forget(id)
	c.free = append(c.free, id)
}

// forget drops an object from the table without telling the server. Events
// still in flight for it are discarded.
func (c *Context) forget(id uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.obj, id)
}

// Object returns the live object with the given id.
func (c *Context) Object(id uint32) (Object, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, ok := c.obj[id]
	return o, ok
}

// newObject allocates the next id for a protocol object of the given
// interface, before the request creating it is sent.
func (c *Context) newObject(iface string) (Object, error) {
	if c.Err != nil {
		return nil, errors.Wrap(c.Err, "global wayland error")
	}
	ctor, ok := constructors[iface]
	if !ok {
		return nil, errors.Errorf("unknown interface %s", iface)
	}
	return ctor(c), nil
}

func (c *Context) request(sender Object, opcode uint16, name string, fd *os.File, args ...interface{}) error {
	if c.Err != nil {
		return errors.Wrap(c.Err, "global wayland error")
	}
	msg, err := Marshal(sender.ID(), opcode, args...)
	if err != nil {
		return errors.Wrapf(err, "unable to encode %s", name)
	}
	var oob []byte
	if fd != nil {
		oob = unix.UnixRights(int(fd.Fd()))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.obj[sender.ID()]; !exists {
		return errors.Errorf("%s: object %d has been deleted", name, sender.ID())
	}
	c.log.WithFields(logrus.Fields{
		"id":     sender.ID(),
		"opcode": opcode,
		"size":   len(msg),
	}).Debugf("-> %s", name)
	if _, _, err := c.c.WriteMsgUnix(msg, oob, nil); err != nil {
		return errors.Wrapf(err, "unable to send %s", name)
	}
	return nil
}

// closeFDs closes any file descriptors the server passed along with a batch
// of events. None of the interfaces used here receive fds.
func (c *Context) closeFDs(oob []byte) error {
	scms, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return errors.Wrap(err, "ParseSocketControlMessage failed")
	}
	for i := range scms {
		fds, err := unix.ParseUnixRights(&scms[i])
		if err != nil {
			return errors.Wrap(err, "ParseUnixRights failed")
		}
		for _, fd := range fds {
			c.log.WithField("fd", fd).Debug("closing unexpected fd")
			unix.Close(fd)
		}
	}
	return nil
}

// Dispatch blocks until the server sends data, then decodes and dispatches
// every complete message received. Incomplete trailing data is kept for the
// next call. A read failure or a wl_display.error event is returned and
// remembered in Err.
func (c *Context) Dispatch() (int, error) {
	if c.Err != nil {
		return 0, c.Err
	}
	n, oobn, _, _, err := c.c.ReadMsgUnix(c.in[c.inLen:], c.oob)
	if err != nil {
		c.Err = errors.Wrap(err, "unable to read from wayland socket")
		return 0, c.Err
	}
	if n == 0 && oobn == 0 {
		c.Err = errors.New("wayland server closed the connection")
		return 0, c.Err
	}
	if oobn > 0 {
		if err := c.closeFDs(c.oob[:oobn]); err != nil {
			c.log.WithError(err).Warn("unable to decode ancillary data")
		}
	}
	c.inLen += n

	dispatched := 0
	off := 0
	for c.inLen-off >= HeaderSize {
		id, opcode, size := DecodeHeader(c.in[off:])
		if size < HeaderSize {
			c.Err = errors.Errorf("malformed message for object %d: size %d", id, size)
			return dispatched, c.Err
		}
		if c.inLen-off < size {
			break
		}
		payload := make([]byte, size-HeaderSize)
		copy(payload, c.in[off+HeaderSize:off+size])
		off += size

		obj, ok := c.Object(id)
		if !ok {
			c.log.WithFields(logrus.Fields{"id": id, "opcode": opcode}).Debug("event for unknown object dropped")
			continue
		}
		c.log.WithFields(logrus.Fields{
			"id":        id,
			"interface": obj.Type(),
			"opcode":    opcode,
		}).Debug("<- event")
		if err := obj.dispatch(opcode, payload); err != nil {
			c.Err = errors.Wrapf(err, "unable to dispatch %s event %d", obj.Type(), opcode)
			return dispatched, c.Err
		}
		dispatched++
		if c.Err != nil {
			return dispatched, c.Err
		}
	}
	copy(c.in, c.in[off:c.inLen])
	c.inLen -= off
	return dispatched, nil
}

// Close closes the underlying connection. A Dispatch blocked in another
// goroutine returns with an error.
func (c *Context) Close() error {
	return c.c.Close()
}

// Error is the DisplayListener implementation; a protocol error is fatal for
// the connection.
func (c *Context) Error(_ *Display, objectID uint32, code uint32, message string) {
	iface := "unknown"
	if o, ok := c.Object(objectID); ok {
		iface = o.Type()
	}
	c.Err = errors.Errorf("obj: %d (%s), code: %d -> %s", objectID, iface, code, message)
}

// DeleteID is the DisplayListener implementation. The server has released
// the id, so it can be handed out again.
func (c *Context) DeleteID(_ *Display, id uint32) {
	c.mu.Lock()
	delete(c.obj, id)
	c.mu.Unlock()
	c.free = append(c.free, id)
}

// Bind creates a client object for the global advertised as name and binds
// it with the given version.
func (c *Context) Bind(registry *Registry, name uint32, iface string, version uint32, listener interface{}) (Object, error) {
	o, err := c.newObject(iface)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to bind %s", iface)
	}
	if listener != nil {
		if err := o.setListener(listener); err != nil {
			c.discard(o.ID())
			return nil, errors.Wrapf(err, "invalid listener")
		}
	}
	if err := registry.Bind(name, iface, version, o.ID()); err != nil {
		c.discard(o.ID())
		return nil, errors.Wrapf(err, "unable to bind object: %s", iface)
	}
	return o, nil
}
