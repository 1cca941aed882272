// Package wlptest provides a scripted stand-in for a wayland compositor
// socket, for testing code built on wlp without a running server.
package wlptest

import (
	"bytes"
	"io"
	"net"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/waydemo/waydemo/wl/wlp"
)

// Message is one request written by the client.
type Message struct {
	Sender  uint32
	Opcode  uint16
	Payload []byte
	HasFD   bool
}

// Args returns a decoder over the request arguments.
func (m Message) Args() *wlp.Decoder {
	return wlp.NewDecoder(m.Payload)
}

// Global is a global advertised in reply to wl_display.get_registry.
type Global struct {
	Name      uint32
	Interface string
	Version   uint32
}

// Conn implements wlp.Conn. Requests are recorded, and the Reply hook
// decides which events the fake server sends back. Once every queued event
// has been read, reads fail with io.EOF.
type Conn struct {
	// Reply is called for every request. When nil, DefaultReply is used.
	Reply func(m Message) [][]byte
	// Globals are announced on get_registry by DefaultReply.
	Globals []Global

	mu       sync.Mutex
	requests []Message
	out      bytes.Buffer
	closed   bool
}

func NewConn(globals ...Global) *Conn {
	return &Conn{Globals: globals}
}

// Event encodes a server event. It panics on argument types wlp cannot
// encode, which is a bug in the test.
func Event(sender uint32, opcode uint16, args ...interface{}) []byte {
	msg, err := wlp.Marshal(sender, opcode, args...)
	if err != nil {
		panic(err)
	}
	return msg
}

// DefaultReply answers wl_display.sync with wl_callback.done followed by
// wl_display.delete_id, and wl_display.get_registry with one
// wl_registry.global per entry in Globals. Every other request gets no
// reply.
func (c *Conn) DefaultReply(m Message) [][]byte {
	if m.Sender != 1 {
		return nil
	}
	switch m.Opcode {
	case 0: // sync
		id := m.Args().Uint32()
		return [][]byte{
			Event(id, 0, uint32(0)),
			Event(1, 1, id),
		}
	case 1: // get_registry
		id := m.Args().Uint32()
		var events [][]byte
		for _, g := range c.Globals {
			events = append(events, Event(id, 0, g.Name, g.Interface, g.Version))
		}
		return events
	}
	return nil
}

// Send queues events to be read by the client.
func (c *Conn) Send(events ...[]byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ev := range events {
		c.out.Write(ev)
	}
}

// Requests returns every request received so far.
func (c *Conn) Requests() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.requests...)
}

// Sent returns the requests sent by object sender with the given opcode.
func (c *Conn) Sent(sender uint32, opcode uint16) []Message {
	var ret []Message
	for _, m := range c.Requests() {
		if m.Sender == sender && m.Opcode == opcode {
			ret = append(ret, m)
		}
	}
	return ret
}

// Reset forgets the recorded requests.
func (c *Conn) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = nil
}

func (c *Conn) ReadMsgUnix(b, oob []byte) (n, oobn, flags int, addr *net.UnixAddr, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, 0, 0, nil, errors.New("use of closed connection")
	}
	if c.out.Len() == 0 {
		return 0, 0, 0, nil, io.EOF
	}
	n, _ = c.out.Read(b)
	return n, 0, 0, nil, nil
}

func (c *Conn) WriteMsgUnix(b, oob []byte, addr *net.UnixAddr) (n, oobn int, err error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return 0, 0, errors.New("use of closed connection")
	}
	c.mu.Unlock()

	var msgs []Message
	for off := 0; len(b)-off >= wlp.HeaderSize; {
		id, opcode, size := wlp.DecodeHeader(b[off:])
		if size < wlp.HeaderSize || off+size > len(b) {
			return off, 0, errors.Errorf("malformed request at offset %d", off)
		}
		msgs = append(msgs, Message{
			Sender:  id,
			Opcode:  opcode,
			Payload: append([]byte(nil), b[off+wlp.HeaderSize:off+size]...),
		})
		off += size
	}
	if len(oob) > 0 && len(msgs) > 0 {
		scms, err := unix.ParseSocketControlMessage(oob)
		if err != nil {
			return 0, 0, errors.Wrap(err, "bad ancillary data")
		}
		msgs[len(msgs)-1].HasFD = len(scms) > 0
	}

	reply := c.Reply
	if reply == nil {
		reply = c.DefaultReply
	}
	for _, m := range msgs {
		c.mu.Lock()
		c.requests = append(c.requests, m)
		c.mu.Unlock()
		c.Send(reply(m)...)
	}
	return len(b), len(oob), nil
}

func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}
