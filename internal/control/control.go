// Package control serves a read-only HTTP API over the manager's state
// snapshots so scripts and status tools can inspect the running manager.
package control

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/sse"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/zlateski/zwm/internal/build"
	"github.com/zlateski/zwm/internal/bus"
	"github.com/zlateski/zwm/internal/wm"
	"github.com/zlateski/zwm/pkg/chiext"
)

type Server struct {
	addr string
	hub  *bus.Hub[wm.Snapshot]
}

func NewServer(host string, port int, hub *bus.Hub[wm.Snapshot]) Server {
	return Server{
		addr: fmt.Sprintf("%s:%d", host, port),
		hub:  hub,
	}
}

func (Server) String() string {
	return "control.Server"
}

type stateOutput struct {
	Body wm.Snapshot
}

type versionOutput struct {
	Body build.Build
}

func (s Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chiext.Logger())

	api := humachi.New(r, huma.DefaultConfig("zwm", build.Current.Version))

	huma.Register(api, huma.Operation{
		OperationID: "get-state",
		Method:      http.MethodGet,
		Path:        "/api/state",
		Summary:     "Get the current window manager state",
	}, func(ctx context.Context, _ *struct{}) (*stateOutput, error) {
		snap, ok := s.hub.Latest()
		if !ok {
			return nil, huma.Error503ServiceUnavailable("no state published yet")
		}
		return &stateOutput{Body: snap}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-version",
		Method:      http.MethodGet,
		Path:        "/api/version",
		Summary:     "Get build information",
	}, func(ctx context.Context, _ *struct{}) (*versionOutput, error) {
		return &versionOutput{Body: build.Current}, nil
	})

	sse.Register(api, huma.Operation{
		OperationID: "get-events",
		Method:      http.MethodGet,
		Path:        "/api/events",
		Summary:     "Stream state snapshots as they change",
	}, map[string]any{
		"snapshot": wm.Snapshot{},
	}, func(ctx context.Context, _ *struct{}, send sse.Sender) {
		events, cancel := s.hub.Subscribe(ctx)
		defer cancel()

		if snap, ok := s.hub.Latest(); ok {
			if err := send.Data(snap); err != nil {
				return
			}
		}
		for {
			select {
			case <-ctx.Done():
				return
			case snap := <-events:
				if err := send.Data(snap); err != nil {
					return
				}
			}
		}
	})

	return r
}

// Serve runs the HTTP server until the context is cancelled.
func (s Server) Serve(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errC := make(chan error, 1)
	go func() { errC <- server.ListenAndServe() }()

	select {
	case err := <-errC:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errC; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
