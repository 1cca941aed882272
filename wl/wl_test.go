package wl

import (
	"io/ioutil"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/waydemo/waydemo/wl/wlp/wlptest"
)

var rendererGlobals = []wlptest.Global{
	{Name: 1, Interface: "wl_compositor", Version: 4},
	{Name: 2, Interface: "wl_shell", Version: 1},
	{Name: 3, Interface: "wl_shm", Version: 1},
	{Name: 4, Interface: "wl_seat", Version: 5},
}

func testConfig() Config {
	cfg := DefaultConfig()
	logger := logrus.New()
	logger.Out = ioutil.Discard
	cfg.Logger = logger
	return cfg
}

func newTestDisplay(t *testing.T, cfg Config, globals ...wlptest.Global) (*Display, *wlptest.Conn) {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())
	conn := wlptest.NewConn(globals...)
	return NewDisplay(conn, cfg), conn
}

// newTestWindow returns a window on a display where every global needed by
// the renderer has been bound.
func newTestWindow(t *testing.T, cfg Config) (*Window, *Display, *wlptest.Conn) {
	t.Helper()
	d, conn := newTestDisplay(t, cfg, rendererGlobals...)
	require.NoError(t, d.Discover("wl_compositor", "wl_shell", "wl_shm"))
	w, err := NewWindow(d, cfg.Width, cfg.Height)
	require.NoError(t, err)
	return w, d, conn
}
