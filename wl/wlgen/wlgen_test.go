package main

import (
	"io/ioutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadCore(t *testing.T) *Protocol {
	t.Helper()
	data, err := ioutil.ReadFile("testdata/core.xml")
	require.NoError(t, err)
	p, err := parse(data)
	require.NoError(t, err)
	return p
}

func findInterface(t *testing.T, f *File, name string) *GenInterface {
	t.Helper()
	for _, g := range f.Interfaces {
		if g.Name == name {
			return g
		}
	}
	t.Fatalf("interface %s not generated", name)
	return nil
}

func requestNames(g *GenInterface) []string {
	var names []string
	for _, rq := range g.Requests {
		names = append(names, rq.Name)
	}
	return names
}

func TestParse(t *testing.T) {
	p := loadCore(t)
	assert.Equal(t, "core_subset", p.Name)
	var names []string
	for _, i := range p.Interfaces {
		names = append(names, i.Name)
	}
	assert.Equal(t, []string{"wl_display", "wl_registry", "wl_callback", "wl_shm_pool", "wl_shm", "wl_buffer"}, names)

	shm := p.Interfaces[4]
	assert.Equal(t, "2", shm.Version)
	require.Len(t, shm.Requests, 2)
	assert.Equal(t, "destructor", shm.Requests[1].Type)
	assert.Equal(t, "2", shm.Requests[1].Since)
	assert.Equal(t, "fd", shm.Requests[0].Args[1].Type)
}

func TestParseInvalid(t *testing.T) {
	_, err := parse([]byte("<protocol><interface"))
	assert.Error(t, err)
}

func TestInterfaceName(t *testing.T) {
	assert.Equal(t, "Display", InterfaceName("wl_display"))
	assert.Equal(t, "ShmPool", InterfaceName("wl_shm_pool"))
	assert.Equal(t, "ShellSurface", InterfaceName("wl_shell_surface"))
}

func TestArgName(t *testing.T) {
	assert.Equal(t, "iface", ArgName(&Arg{Name: "interface"}))
	assert.Equal(t, "type_", ArgName(&Arg{Name: "type"}))
	assert.Equal(t, "callbackData", ArgName(&Arg{Name: "callback_data"}))
	assert.Equal(t, "objectID", ArgName(&Arg{Name: "object_id"}))
}

func TestDescriptionToComment(t *testing.T) {
	assert.Equal(t, "", DescriptionToComment(nil))
	desc := &Description{Text: `
      First paragraph
      continues here.

      Second paragraph.
    `}
	assert.Equal(t, "// First paragraph\n// continues here.\n//\n// Second paragraph.\n", DescriptionToComment(desc))
}

func TestBuildSince(t *testing.T) {
	p := loadCore(t)

	f, err := Build(p, Options{Since: 1})
	require.NoError(t, err)
	display := findInterface(t, f, "wl_display")
	require.Len(t, display.Enums, 1)
	assert.Len(t, display.Enums[0], 3)
	assert.Equal(t, "DisplayErrorInvalidObject", display.Enums[0][0].Const)
	shm := findInterface(t, f, "wl_shm")
	assert.Equal(t, []string{"CreatePool"}, requestNames(shm))
	assert.True(t, shm.LocalDestroy)

	f, err = Build(p, Options{})
	require.NoError(t, err)
	display = findInterface(t, f, "wl_display")
	assert.Len(t, display.Enums[0], 4)
	shm = findInterface(t, f, "wl_shm")
	assert.Equal(t, []string{"CreatePool", "Release"}, requestNames(shm))
	assert.False(t, shm.LocalDestroy)
	assert.Equal(t, 1, shm.Requests[1].Opcode)
}

func TestBuildSkipsUngeneratedInterfaces(t *testing.T) {
	p := loadCore(t)
	f, err := Build(p, Options{Interfaces: []string{"wl_display", "wl_callback"}, Since: 1})
	require.NoError(t, err)
	require.Len(t, f.Interfaces, 2)
	display := findInterface(t, f, "wl_display")
	assert.Equal(t, []string{"Sync"}, requestNames(display))
	assert.False(t, display.LocalDestroy)
	assert.False(t, f.NeedsOS)
}

func TestBuildKeepsRequestsForEarlierInterfaces(t *testing.T) {
	p := loadCore(t)
	f, err := Build(p, Options{Interfaces: []string{"wl_shm_pool", "wl_shm"}, Since: 1})
	require.NoError(t, err)

	var names []string
	for _, g := range f.Interfaces {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"wl_shm_pool", "wl_shm"}, names, "nothing after the last requested interface")

	shm := findInterface(t, f, "wl_shm")
	assert.Equal(t, []string{"CreatePool"}, requestNames(shm))
	pool := findInterface(t, f, "wl_shm_pool")
	assert.Equal(t, []string{"Destroy", "Resize"}, requestNames(pool), "CreateBuffer needs wl_buffer")
}

func TestBuildMissingInterface(t *testing.T) {
	p := loadCore(t)
	_, err := Build(p, Options{Interfaces: []string{"wl_display", "wl_surface"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wl_surface")
}

func TestBuildRequests(t *testing.T) {
	p := loadCore(t)
	f, err := Build(p, Options{Since: 1})
	require.NoError(t, err)
	assert.True(t, f.NeedsOS)

	registry := findInterface(t, f, "wl_registry")
	require.Len(t, registry.Requests, 1)
	bind := registry.Requests[0]
	assert.Equal(t, "name uint32, iface string, version uint32, id uint32", bind.Params)
	assert.Equal(t, "name, iface, version, id", bind.Args)
	assert.Empty(t, bind.NewType)

	pool := findInterface(t, f, "wl_shm_pool")
	create := pool.Requests[0]
	assert.Equal(t, "Buffer", create.NewType)
	assert.True(t, create.NewHasListener)
	assert.Equal(t, "l BufferListener, offset int32, width int32, height int32, stride int32, format uint32", create.Params)
	assert.Equal(t, "ret.i, offset, width, height, stride, format", create.Args)
	assert.True(t, pool.Requests[1].Destructor)
	assert.False(t, pool.LocalDestroy)

	shm := findInterface(t, f, "wl_shm")
	createPool := shm.Requests[0]
	assert.False(t, createPool.NewHasListener)
	assert.Equal(t, "fd", createPool.FD)
	assert.Equal(t, "fd *os.File, size int32", createPool.Params)
	assert.Equal(t, "ret.i, size", createPool.Args)
}

func TestBuildEvents(t *testing.T) {
	p := loadCore(t)
	f, err := Build(p, Options{Since: 1})
	require.NoError(t, err)

	display := findInterface(t, f, "wl_display")
	require.Len(t, display.Events, 2)
	assert.Equal(t, "display *Display, objectID uint32, code uint32, message string", display.Events[0].Params)
	assert.Equal(t, "this, objectID, code, message", display.Events[0].Call)
	assert.True(t, display.EventsHaveArgs)
	assert.Contains(t, display.ListenerDoc, "// Display Events\n")
	assert.Contains(t, display.ListenerDoc, "// DeleteID\n")

	buffer := findInterface(t, f, "wl_buffer")
	require.Len(t, buffer.Events, 1)
	assert.Equal(t, "buffer *Buffer", buffer.Events[0].Params)
	assert.False(t, buffer.EventsHaveArgs)

	callback := findInterface(t, f, "wl_callback")
	assert.Empty(t, callback.Requests)
	assert.True(t, callback.LocalDestroy)
}

func TestBuildUnsupportedEventArg(t *testing.T) {
	p, err := parse([]byte(`<protocol name="x">
  <interface name="wl_keyboard" version="1">
    <event name="enter">
      <arg name="keys" type="array"/>
    </event>
  </interface>
</protocol>`))
	require.NoError(t, err)
	_, err = Build(p, Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wl_keyboard.enter")
}

func TestGenerate(t *testing.T) {
	p := loadCore(t)
	src, err := Generate(p, Options{Source: "core.xml", Since: 1})
	require.NoError(t, err)
	out := string(src)

	assert.Contains(t, out, "// Code generated by wlgen from core.xml. DO NOT EDIT.")
	assert.Contains(t, out, "\t\"os\"\n")
	assert.Contains(t, out, "type DisplayListener interface {")
	assert.Contains(t, out, "Error(display *Display, objectID uint32, code uint32, message string)")
	assert.Contains(t, out, "Done(callback *Callback, callbackData uint32)")
	assert.Contains(t, out, "func (this *Display) Sync(l CallbackListener) (*Callback, error) {")
	assert.Contains(t, out, "func (this *Registry) Bind(name uint32, iface string, version uint32, id uint32) error {")
	assert.Contains(t, out, "func (this *Shm) CreatePool(fd *os.File, size int32) (*ShmPool, error) {")
	assert.Contains(t, out, "func (this *ShmPool) CreateBuffer(l BufferListener, offset int32, width int32, height int32, stride int32, format uint32) (*Buffer, error) {")
	assert.Contains(t, out, "func (this *Shm) Destroy() error {")
	assert.Contains(t, out, "registerConstructor(\"wl_shm_pool\", newShmPool)")
	assert.NotContains(t, out, "Release() error")
	assert.NotContains(t, out, "Implementation")
}

func TestGenerateSubsetWithoutOS(t *testing.T) {
	p := loadCore(t)
	src, err := Generate(p, Options{Source: "core.xml", Interfaces: []string{"wl_display", "wl_callback"}, Since: 1})
	require.NoError(t, err)
	out := string(src)
	assert.NotContains(t, out, "\"os\"")
	assert.NotContains(t, out, "GetRegistry")
	assert.Contains(t, out, "func (this *Callback) Destroy() error {")
}
