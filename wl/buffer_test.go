package wl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waydemo/waydemo/video"
	"github.com/waydemo/waydemo/wl/wlp"
)

func TestNewBuffer(t *testing.T) {
	w, d, conn := newTestWindow(t, testConfig())
	require.Len(t, w.Buffers(), 1)
	b := w.Buffers()[0]

	pools := conn.Sent(d.Shm.ID(), 0)
	require.Len(t, pools, 1)
	assert.True(t, pools[0].HasFD)
	args := pools[0].Args()
	poolID := args.Uint32()
	assert.Equal(t, int32(300*1200), args.Int32())

	creates := conn.Sent(poolID, 0)
	require.Len(t, creates, 1)
	args = creates[0].Args()
	assert.Equal(t, b.ID(), args.Uint32())
	assert.Equal(t, int32(0), args.Int32(), "offset")
	assert.Equal(t, int32(300), args.Int32(), "width")
	assert.Equal(t, int32(300), args.Int32(), "height")
	assert.Equal(t, int32(1200), args.Int32(), "stride")
	assert.Equal(t, uint32(wlp.ShmFormatXrgb8888), args.Uint32())
	require.NoError(t, args.Err())

	assert.Len(t, conn.Sent(poolID, 1), 1, "pool destroyed after creating the buffer")
	assert.Nil(t, b.seg.File(), "descriptor closed after creating the pool")

	surf, err := b.Surface()
	require.NoError(t, err)
	assert.Equal(t, 1200, surf.Pitch)
	assert.Equal(t, 360000, surf.Size())
	for i, v := range surf.Bytes() {
		require.Equal(t, byte(0xFF), v, "byte %d", i)
	}
	assert.False(t, b.Busy())
}

func TestNewBuffer_NoShm(t *testing.T) {
	_, err := NewBuffer(nil, 300, 300, nil)
	assert.Error(t, err)
}

func TestNewBuffer_TooLarge(t *testing.T) {
	_, d, conn := newTestWindow(t, testConfig())
	conn.Reset()

	_, err := NewBuffer(d.Shm, 40000, 40000, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pool size limit")
	assert.Empty(t, conn.Requests(), "nothing sent for an oversized buffer")

	stride, size, err := bufferSize(300, 300)
	require.NoError(t, err)
	assert.Equal(t, 1200, stride)
	assert.Equal(t, 360000, size)
}

func TestConfig_RejectsOversizedWindow(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 40000, 40000
	assert.Error(t, cfg.validate())
	cfg.Width, cfg.Height = 32768, 16384
	assert.Error(t, cfg.validate(), "exactly 2^31 bytes")
	cfg.Width, cfg.Height = 8192, 8192
	assert.NoError(t, cfg.validate())
}

func TestBuffer_States(t *testing.T) {
	w, _, _ := newTestWindow(t, testConfig())
	b := w.Buffers()[0]

	b.attached()
	assert.True(t, b.Busy())
	assert.Equal(t, "busy", b.state.String())
	_, err := b.Surface()
	assert.Equal(t, ErrBufferBusy, err)

	b.release()
	assert.False(t, b.Busy())
	_, err = b.Surface()
	assert.NoError(t, err)
}

func TestBuffer_Destroy(t *testing.T) {
	w, _, conn := newTestWindow(t, testConfig())
	b := w.Buffers()[0]
	id := b.ID()

	require.NoError(t, b.Destroy())
	assert.Len(t, conn.Sent(id, 0), 1)
	assert.Equal(t, uint32(0), b.ID())
	assert.Nil(t, b.seg)
	_, err := b.Surface()
	assert.Error(t, err)
	assert.NoError(t, b.Destroy())
}

func TestPixelFormatMatchesShm(t *testing.T) {
	assert.Equal(t, uint32(wlp.ShmFormatXrgb8888), video.XRGB8888.Format)
}
