// Package wlp is a small wayland client protocol layer. A Context owns the
// connection and the object table; the typed objects in wayland.go are
// generated from the core protocol and send requests through it.
//
// Events are read and dispatched synchronously by Context.Dispatch, on the
// caller's goroutine.
package wlp

//go:generate go run ../wlgen -in /usr/share/wayland/wayland.xml -out wayland.go -interfaces wl_display,wl_registry,wl_callback,wl_compositor,wl_shm_pool,wl_shm,wl_buffer,wl_shell,wl_shell_surface,wl_surface -since 1
