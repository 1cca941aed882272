package wlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_Header(t *testing.T) {
	msg, err := Marshal(3, 2, uint32(7), int32(-1))
	require.NoError(t, err)
	require.Len(t, msg, 16)

	id, opcode, size := DecodeHeader(msg)
	assert.Equal(t, uint32(3), id)
	assert.Equal(t, uint16(2), opcode)
	assert.Equal(t, 16, size)
}

func TestMarshal_StringPadding(t *testing.T) {
	tests := []struct {
		s    string
		size int
	}{
		{"", 8 + 4 + 4},
		{"abc", 8 + 4 + 4},
		{"abcd", 8 + 4 + 8},
		{"wl_compositor", 8 + 4 + 16},
	}
	for _, tt := range tests {
		msg, err := Marshal(1, 0, tt.s)
		require.NoError(t, err)
		assert.Len(t, msg, tt.size, "string %q", tt.s)
		assert.Equal(t, uint32(len(tt.s)+1), hostByteOrder.Uint32(msg[8:12]))

		d := NewDecoder(msg[HeaderSize:])
		assert.Equal(t, tt.s, d.String())
		assert.NoError(t, d.Err())
	}
}

func TestMarshal_UnsupportedType(t *testing.T) {
	_, err := Marshal(1, 0, 1.5)
	assert.Error(t, err)
}

func TestDecoder_ShortPayload(t *testing.T) {
	d := NewDecoder([]byte{1, 2})
	assert.Equal(t, uint32(0), d.Uint32())
	assert.Error(t, d.Err())

	msg, err := Marshal(1, 0, uint32(2), "wl_shm", uint32(1))
	require.NoError(t, err)
	d = NewDecoder(msg[HeaderSize : len(msg)-8])
	d.Uint32()
	assert.Equal(t, "", d.String())
	assert.Error(t, d.Err())
	assert.Equal(t, uint32(0), d.Uint32(), "errors are sticky")
}
