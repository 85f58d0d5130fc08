package netsvr

import (
	"net/http"

	"github.com/zintix-labs/dwsampler/server/app"
)

// NetSvr bundles routing behavior with start/stop control.
//   - Exposed only to the outermost main; every other layer depends on
//     NetRouter instead.
//   - Dependency inversion: swapping the underlying HTTP framework only
//     requires a new implementation of this interface.
//   - The current implementation is net/http plus the chi router; it does
//     not support non-net/http-compatible frameworks like fasthttp.
//   - NetSvr implements app.Component, so it can be handed to app.App
//     directly for lifecycle management.
type NetSvr interface {
	NetRouter
	app.Component
}

// NetRouter is pure routing behavior, so subpackages can register routes
// without holding start/stop control. Group's callback only receives a
// NetRouter, never Run/Shutdown, so nothing registered under a group can
// accidentally control the server's lifecycle.
type NetRouter interface {
	// middleware
	Use(middleware func(http.Handler) http.Handler)

	// route registration
	Get(path string, h http.HandlerFunc)
	Post(path string, h http.HandlerFunc)
	Put(path string, h http.HandlerFunc)
	Delete(path string, h http.HandlerFunc)

	// route grouping
	Group(path string, fn func(NetRouter))
}
