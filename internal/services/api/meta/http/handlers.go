// Package http provides liveness and readiness endpoints
package http

import (
	stdhttp "net/http"
	"runtime/debug"

	phttp "telar/internal/platform/net/http"
	"telar/internal/platform/store"
)

// Register mounts meta endpoints on the given router
func Register(r phttp.Router, st *store.Store) {
	h := &handlers{st: st}

	phttp.GetJSON(r, "/healthz", h.healthz)
	phttp.GetJSON(r, "/version", h.version)
}

type handlers struct{ st *store.Store }

type health struct {
	Status string `json:"status"`
}

func (h *handlers) healthz(r *stdhttp.Request) (any, error) {
	if err := h.st.Guard(r.Context()); err != nil {
		return nil, err
	}
	return health{Status: "ok"}, nil
}

type version struct {
	Revision string `json:"revision"`
	Go       string `json:"go"`
}

func (h *handlers) version(_ *stdhttp.Request) (any, error) {
	v := version{Revision: "unknown"}
	if bi, ok := debug.ReadBuildInfo(); ok {
		v.Go = bi.GoVersion
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				v.Revision = s.Value
			}
		}
	}
	return v, nil
}
