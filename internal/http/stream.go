package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	applog "github.com/HeitorVic/my-wallet/internal/log"
)

// handleStream serves the owner's transaction list as server-sent events:
// one snapshot event immediately, then one after every change.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	sub, err := s.store.Subscribe(r.Context(), owner(r))
	if err != nil {
		s.storeError(w, r, err, "subscribe")
		return
	}
	defer sub.Stop()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	// Heartbeat keeps proxies from closing an idle stream
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return

		case <-heartbeat.C:
			if _, err := fmt.Fprint(w, ": heartbeat\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case snapshot, open := <-sub.Snapshots():
			if !open {
				return
			}
			data, err := json.Marshal(snapshot)
			if err != nil {
				slog.ErrorContext(r.Context(), "marshal snapshot", applog.FieldError, err)
				return
			}
			if _, err := fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
