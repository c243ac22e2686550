package api

import (
	"context"
	"net/http"

	"github.com/Mantelijo/whale-alert/internal/chain"
	"github.com/Mantelijo/whale-alert/internal/whale"
)

// Server is the API layer serving recent whale events, the token registry,
// the network status and the live push channel.
type Server interface {
	// Serve starts the API server. Serve blocks until the server is stopped or
	// an error is encoutered.
	Serve() error

	// Shutdown stops accepting connections and waits for in-flight requests
	// until ctx is done.
	Shutdown(ctx context.Context) error

	// Close stops the server and cleans up any resources.
	Close() error
}

// EventReader is the read side of the recent event history.
type EventReader interface {
	Snapshot() []*whale.WhaleEvent
	FilterByAsset(symbol string) []*whale.WhaleEvent
}

type StatusReader interface {
	Status(ctx context.Context) (chain.NetworkStatus, error)
}

// Streamer serves live events to push subscribers.
type Streamer interface {
	Count() int
	ServeWS(w http.ResponseWriter, r *http.Request)
}
