package wlp

import (
	"bytes"
	"encoding/binary"
	"unsafe"

	"github.com/pkg/errors"
)

// HeaderSize is the length of the sender id and size/opcode words that start
// every message.
const HeaderSize = 8

// hostByteOrder is the byte order used on the wire, which is always the
// byte order of the machine.
var hostByteOrder binary.ByteOrder

func init() {
	var endianCheck uint32 = 0x1
	b := (*[4]byte)(unsafe.Pointer(&endianCheck))
	if b[0] == 1 {
		hostByteOrder = binary.LittleEndian
	} else {
		hostByteOrder = binary.BigEndian
	}
}

func DecodeHeader(buf []byte) (id uint32, opcode uint16, size int) {
	id = hostByteOrder.Uint32(buf[:4])
	arg2 := hostByteOrder.Uint32(buf[4:8])
	opcode = uint16(arg2 & 0xFFFF)
	size = int(arg2 >> 16)
	return
}

// Marshal encodes a single message. Supported argument types are uint32,
// int32 and string; object and new_id arguments are passed as uint32.
func Marshal(sender uint32, opcode uint16, args ...interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	binary.Write(buf, hostByteOrder, sender)
	binary.Write(buf, hostByteOrder, uint32(0))
	for i, arg := range args {
		switch v := arg.(type) {
		case uint32:
			binary.Write(buf, hostByteOrder, v)
		case int32:
			binary.Write(buf, hostByteOrder, v)
		case string:
			binary.Write(buf, hostByteOrder, uint32(len(v)+1))
			buf.WriteString(v)
			buf.WriteByte(0)
			if pad := (len(v) + 1) % 4; pad != 0 {
				buf.Write(make([]byte, 4-pad))
			}
		default:
			return nil, errors.Errorf("argument %d: unsupported type %T", i, arg)
		}
	}
	if buf.Len() > 0xFFFF {
		return nil, errors.Errorf("message size %d exceeds protocol limit", buf.Len())
	}
	msg := buf.Bytes()
	hostByteOrder.PutUint32(msg[4:8], uint32(len(msg))<<16|uint32(opcode))
	return msg, nil
}

// Decoder reads event arguments from a message payload. The first failure
// is sticky and reported by Err.
type Decoder struct {
	buf *bytes.Buffer
	err error
}

func NewDecoder(payload []byte) *Decoder {
	return &Decoder{buf: bytes.NewBuffer(payload)}
}

func (d *Decoder) Uint32() uint32 {
	if d.err != nil {
		return 0
	}
	if d.buf.Len() < 4 {
		d.err = errors.New("payload too short for uint")
		return 0
	}
	return hostByteOrder.Uint32(d.buf.Next(4))
}

func (d *Decoder) Int32() int32 {
	return int32(d.Uint32())
}

func (d *Decoder) String() string {
	n := int(d.Uint32())
	if d.err != nil {
		return ""
	}
	if n == 0 {
		return ""
	}
	padded := n
	if padded%4 != 0 {
		padded += 4 - padded%4
	}
	if d.buf.Len() < padded {
		d.err = errors.Errorf("payload too short for string of length %d", n)
		return ""
	}
	raw := d.buf.Next(padded)
	return string(raw[:n-1])
}

func (d *Decoder) Err() error {
	return d.err
}
