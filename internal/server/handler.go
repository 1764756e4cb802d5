package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/openlegis/legis-gateway/internal/domain"
)

// Resolver is the pipeline contract the handler depends on.
type Resolver interface {
	Resolve(ctx context.Context, identifier string) (*domain.Envelope, error)
}

// Handler serves the resource resolution route.
type Handler struct {
	resolver Resolver
}

// NewHandler creates the handler over the given pipeline.
func NewHandler(resolver Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// HandleResolve answers GET /v1/resource?identifier=congress-gov://...
// with the envelope on success and a taxonomy error body otherwise.
func (h *Handler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	identifier := r.URL.Query().Get("identifier")
	if identifier == "" {
		WriteError(w, domain.NewResolveError(domain.ErrorKindInvalidIdentifier,
			"missing identifier query parameter"))
		return
	}

	env, err := h.resolver.Resolve(r.Context(), identifier)
	if err != nil {
		WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(env)
}

// HandleHealth answers the liveness probe.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// WriteError translates any error into the HTTP error representation. Errors
// outside the taxonomy surface as internal_unexpected.
func WriteError(w http.ResponseWriter, err error) {
	re := domain.ToResolveError(err)

	body, _ := json.Marshal(map[string]any{
		"error": re,
	})

	w.Header().Set("Content-Type", "application/json")
	if re.Kind == domain.ErrorKindRateLimitExceeded {
		w.Header().Set("Retry-After", "3600")
	}
	w.WriteHeader(re.HTTPStatusCode())
	w.Write(body)
}
