// Package event carries protocol notifications from object listeners to the
// single loop that owns client state.
package event

// Kind identifies what happened.
type Kind uint32

// Protocol Events
const (
	GlobalAdded Kind = 0x100 + iota
	GlobalRemoved
	BufferReleased
	FrameReady
	SyncDone
	Ping
	Format
)

var kindNames = map[Kind]string{
	GlobalAdded:    "GlobalAdded",
	GlobalRemoved:  "GlobalRemoved",
	BufferReleased: "BufferReleased",
	FrameReady:     "FrameReady",
	SyncDone:       "SyncDone",
	Ping:           "Ping",
	Format:         "Format",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

// Event is a single notification. Which fields are set depends on Kind:
//
//	GlobalAdded     Name, Interface, Version
//	GlobalRemoved   Name
//	BufferReleased  Object (the wl_buffer)
//	FrameReady      Object (the wl_callback), Data (frame time in ms)
//	SyncDone        Object (the wl_callback), Data (callback data)
//	Ping            Object (the wl_shell_surface), Data (serial)
//	Format          Data (wl_shm format code)
type Event struct {
	Kind      Kind
	Timestamp uint32

	Object    uint32
	Name      uint32
	Interface string
	Version   uint32
	Data      uint32
}
