package wl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waydemo/waydemo/event"
	"github.com/waydemo/waydemo/video"
	"github.com/waydemo/waydemo/wl/wlp/wlptest"
)

const (
	opSurfaceDestroy = 0
	opSurfaceAttach  = 1
	opSurfaceDamage  = 2
	opSurfaceFrame   = 3
	opSurfaceCommit  = 6

	opShellSurfacePong        = 0
	opShellSurfaceSetToplevel = 3
	opShellSurfaceSetTitle    = 8
)

type call struct {
	sender uint32
	opcode uint16
}

func calls(msgs []wlptest.Message) []call {
	var ret []call
	for _, m := range msgs {
		ret = append(ret, call{m.Sender, m.Opcode})
	}
	return ret
}

func rect(m wlptest.Message) [4]int32 {
	args := m.Args()
	return [4]int32{args.Int32(), args.Int32(), args.Int32(), args.Int32()}
}

func TestNewWindow(t *testing.T) {
	w, d, conn := newTestWindow(t, testConfig())
	assert.NotNil(t, w.surface)
	assert.NotNil(t, w.shellSurface)
	assert.False(t, w.Armed())
	assert.Equal(t, []*Window{w}, d.windows)

	gets := conn.Sent(d.Shell.ID(), 0)
	require.Len(t, gets, 1)
	args := gets[0].Args()
	assert.Equal(t, w.shellSurface.ID(), args.Uint32())
	assert.Equal(t, w.surface.ID(), args.Uint32())

	titles := conn.Sent(w.shellSurface.ID(), opShellSurfaceSetTitle)
	require.Len(t, titles, 1)
	assert.Equal(t, "waydemo", titles[0].Args().String())
}

func TestNewWindow_InvalidSize(t *testing.T) {
	d, _ := newTestDisplay(t, testConfig(), rendererGlobals...)
	require.NoError(t, d.Discover())
	_, err := NewWindow(d, 30, 30)
	assert.Error(t, err, "padding does not fit")
	_, err = NewWindow(d, 0, 300)
	assert.Error(t, err)
}

func TestStart_PrimesOneFrame(t *testing.T) {
	w, _, conn := newTestWindow(t, testConfig())
	sid, ssid := w.surface.ID(), w.shellSurface.ID()
	b := w.Buffers()[0]

	conn.Reset()
	require.NoError(t, w.Start())

	reqs := conn.Requests()
	assert.Equal(t, []call{
		{ssid, opShellSurfaceSetToplevel},
		{sid, opSurfaceDamage},
		{sid, opSurfaceAttach},
		{sid, opSurfaceDamage},
		{sid, opSurfaceFrame},
		{sid, opSurfaceCommit},
	}, calls(reqs))

	damage := conn.Sent(sid, opSurfaceDamage)
	assert.Equal(t, [4]int32{0, 0, 300, 300}, rect(damage[0]))
	assert.Equal(t, [4]int32{20, 20, 260, 260}, rect(damage[1]))

	args := conn.Sent(sid, opSurfaceAttach)[0].Args()
	assert.Equal(t, b.ID(), args.Uint32())
	assert.Equal(t, int32(0), args.Int32())
	assert.Equal(t, int32(0), args.Int32())

	assert.True(t, w.Armed())
	assert.True(t, b.Busy())
	assert.Equal(t, 1, w.Frames())
	assert.Equal(t, w.callback.ID(), conn.Sent(sid, opSurfaceFrame)[0].Args().Uint32())

	want := make([]uint32, 300*300)
	for i := range want {
		want[i] = 0xFFFFFFFF
	}
	video.PaintRings(want, 20, 300, 300, 0)
	assert.Equal(t, want, b.surf.Pixels())
}

func TestFrameDone_BusyBufferSkipsFrame(t *testing.T) {
	w, d, conn := newTestWindow(t, testConfig())
	require.NoError(t, w.Start())
	b := w.Buffers()[0]
	sid := w.surface.ID()

	conn.Reset()
	conn.Send(wlptest.Event(w.callback.ID(), 0, uint32(100)))
	require.NoError(t, d.Dispatch())

	assert.Empty(t, conn.Requests(), "nothing painted or committed")
	assert.False(t, w.Armed(), "no callback armed while stalled")
	assert.True(t, w.Stalled())
	assert.Equal(t, 1, w.Frames())
	assert.True(t, b.Busy())

	// the release resumes the loop with the skipped frame's time
	conn.Send(wlptest.Event(b.ID(), 0))
	require.NoError(t, d.Dispatch())

	assert.Len(t, conn.Sent(sid, opSurfaceFrame), 1)
	assert.Len(t, conn.Sent(sid, opSurfaceCommit), 1)
	assert.False(t, w.Stalled())
	assert.True(t, w.Armed())
	assert.True(t, b.Busy())
	assert.Equal(t, 2, w.Frames())

	want := make([]uint32, 300*300)
	video.PaintRings(want, 20, 300, 300, 100)
	assert.Equal(t, want[150*300+150], b.surf.Pixels()[150*300+150])
}

func TestRelease_ThenFrameDone(t *testing.T) {
	w, d, conn := newTestWindow(t, testConfig())
	require.NoError(t, w.Start())
	b := w.Buffers()[0]
	sid := w.surface.ID()
	first := w.callback

	conn.Reset()
	conn.Send(wlptest.Event(b.ID(), 0))
	require.NoError(t, d.Dispatch())
	assert.Empty(t, conn.Requests(), "a release alone does not redraw")
	assert.False(t, b.Busy())
	_, err := b.Surface()
	assert.NoError(t, err)
	assert.True(t, w.Armed())

	conn.Send(wlptest.Event(first.ID(), 0, uint32(640)))
	require.NoError(t, d.Dispatch())

	assert.Len(t, conn.Sent(sid, opSurfaceFrame), 1)
	assert.Equal(t, 2, w.Frames())
	assert.True(t, b.Busy())
	require.True(t, w.Armed())
	assert.NotEqual(t, first.ID(), w.callback.ID())
	_, ok := d.ctx.Object(first.ID())
	assert.False(t, ok, "fired callback destroyed")

	want := make([]uint32, 300*300)
	video.PaintRings(want, 20, 300, 300, 640)
	assert.Equal(t, want[30*300+30], b.surf.Pixels()[30*300+30])
	assert.Equal(t, want[150*300+150], b.surf.Pixels()[150*300+150])
}

func TestStaleFrameIgnored(t *testing.T) {
	w, d, conn := newTestWindow(t, testConfig())
	require.NoError(t, w.Start())
	w.Buffers()[0].release()

	conn.Reset()
	require.NoError(t, d.handle(event.Event{Kind: event.FrameReady, Object: w.callback.ID() + 100, Data: 5}))
	assert.Empty(t, conn.Requests())
	assert.Equal(t, 1, w.Frames())
}

func TestPing(t *testing.T) {
	w, d, conn := newTestWindow(t, testConfig())
	ssid := w.shellSurface.ID()

	conn.Send(wlptest.Event(ssid, 0, uint32(77)))
	require.NoError(t, d.Dispatch())

	pongs := conn.Sent(ssid, opShellSurfacePong)
	require.Len(t, pongs, 1)
	assert.Equal(t, uint32(77), pongs[0].Args().Uint32())
}

func TestMultiBuffering(t *testing.T) {
	cfg := testConfig()
	cfg.Buffers = 2
	w, d, conn := newTestWindow(t, cfg)
	require.Len(t, w.Buffers(), 2)
	b0, b1 := w.Buffers()[0], w.Buffers()[1]
	sid := w.surface.ID()

	require.NoError(t, w.Start())
	assert.True(t, b0.Busy())
	assert.False(t, b1.Busy())

	conn.Send(wlptest.Event(w.callback.ID(), 0, uint32(16)))
	require.NoError(t, d.Dispatch())
	assert.True(t, b1.Busy())
	assert.Equal(t, 2, w.Frames())
	attaches := conn.Sent(sid, opSurfaceAttach)
	require.Len(t, attaches, 2)
	assert.Equal(t, b1.ID(), attaches[1].Args().Uint32())

	conn.Send(wlptest.Event(w.callback.ID(), 0, uint32(32)))
	require.NoError(t, d.Dispatch())
	assert.True(t, w.Stalled())

	conn.Send(wlptest.Event(b0.ID(), 0))
	require.NoError(t, d.Dispatch())
	assert.False(t, w.Stalled())
	assert.Equal(t, 3, w.Frames())
	attaches = conn.Sent(sid, opSurfaceAttach)
	require.Len(t, attaches, 3)
	assert.Equal(t, b0.ID(), attaches[2].Args().Uint32())
}

func TestWindow_Destroy(t *testing.T) {
	w, d, conn := newTestWindow(t, testConfig())
	require.NoError(t, w.Start())
	sid := w.surface.ID()
	bid := w.Buffers()[0].ID()
	cbid := w.callback.ID()

	conn.Reset()
	require.NoError(t, w.Destroy())
	assert.Equal(t, []call{
		{bid, 0},
		{sid, opSurfaceDestroy},
	}, calls(conn.Requests()))
	assert.Empty(t, d.windows)
	_, ok := d.ctx.Object(cbid)
	assert.False(t, ok)
}

func TestRun_EndsWhenConnectionCloses(t *testing.T) {
	w, d, _ := newTestWindow(t, testConfig())
	require.NoError(t, w.Start())
	assert.Error(t, d.Run())

	assert.Error(t, w.Destroy(), "requests fail once the connection is gone")
	assert.Empty(t, d.windows)
	assert.NoError(t, d.Close())
	assert.NoError(t, d.Close())
}
