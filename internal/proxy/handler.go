// Package proxy implements the capability-scoped reverse-proxy handler. It
// forwards an inbound request to the orchestration backend (path rewritten,
// query preserved byte-for-byte) and relays the backend's response without
// interpreting it.
package proxy

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/capgate/capgate/internal/capability"
	"github.com/capgate/capgate/internal/envelope"
	"github.com/capgate/capgate/internal/server"
	"github.com/capgate/capgate/internal/storage"
)

// Doer issues a single HTTP request. The handler depends on this interface so
// the transport can be substituted in tests and so timeout policy lives with
// the injected client, not here.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// AccessRecorder persists one record per relayed request. Recording errors
// are logged and dropped; they never fail the relay.
type AccessRecorder interface {
	RecordAccess(ctx context.Context, rec *storage.AccessRecord) error
}

// Option configures the handler.
type Option func(*Handler)

// WithAccessStore enables access recording.
func WithAccessStore(store AccessRecorder) Option {
	return func(h *Handler) {
		h.store = store
	}
}

// Handler proxies capability-scoped requests to the backend.
type Handler struct {
	baseURL string
	client  Doer
	logger  *slog.Logger
	store   AccessRecorder
}

// NewHandler creates a proxy handler targeting the backend at baseURL.
func NewHandler(baseURL string, client Doer, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleOrchestration relays GET /api/capability/{key}/orchestration to the
// backend's /r/{key}/orchestration. The inbound raw query is appended
// verbatim: no re-parsing, no re-ordering, duplicate keys and empty values
// survive intact. Exactly one outbound call is made per inbound request, and
// none at all when validation fails.
func (h *Handler) HandleOrchestration(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	// chi hands back the escaped segment when the inbound path carried
	// percent-encoding. Decode so re-encoding below cannot double-escape.
	if decoded, err := url.PathUnescape(key); err == nil {
		key = decoded
	}
	if key == "" {
		envelope.Write(w, http.StatusBadRequest, "INVALID_KEY", "Missing capability key")
		return
	}
	server.AddLogField(r.Context(), "capability_key", key)

	target := h.baseURL + capability.BackendPath(key, capability.OrchestrationResource)
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, target, nil)
	if err != nil {
		server.AddError(r.Context(), err)
		http.Error(w, "failed to build upstream request", http.StatusInternalServerError)
		return
	}
	// The only header that crosses this proxy. Inbound cookies and
	// authorization never reach the backend.
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		server.AddError(r.Context(), err)
		http.Error(w, "upstream request failed", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		server.AddError(r.Context(), err)
		http.Error(w, "failed to read upstream response", http.StatusBadGateway)
		return
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	w.Write(body)

	h.record(r.Context(), key, resp.StatusCode, time.Since(start))
}

func (h *Handler) record(ctx context.Context, key string, backendStatus int, duration time.Duration) {
	if h.store == nil {
		return
	}
	rec := &storage.AccessRecord{
		CapabilityKey: key,
		Resource:      capability.OrchestrationResource,
		BackendStatus: backendStatus,
		Duration:      duration,
	}
	if err := h.store.RecordAccess(ctx, rec); err != nil {
		h.logger.Error("failed to record access",
			slog.String("capability_key", key),
			slog.String("error", err.Error()),
		)
	}
}
