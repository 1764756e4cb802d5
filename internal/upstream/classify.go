package upstream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/openlegis/legis-gateway/internal/domain"
)

// errorBody is the upstream error shape. The message field moves around
// between endpoints, so every known location is tried.
type errorBody struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

type nestedError struct {
	Message string `json:"message"`
}

// upstreamMessage extracts the human message from an upstream error body,
// falling back to the raw body when it is not recognizable JSON.
func upstreamMessage(body string) string {
	var eb errorBody
	if err := json.Unmarshal([]byte(body), &eb); err == nil {
		if len(eb.Error) > 0 {
			var nested nestedError
			if err := json.Unmarshal(eb.Error, &nested); err == nil && nested.Message != "" {
				return nested.Message
			}
			var flat string
			if err := json.Unmarshal(eb.Error, &flat); err == nil && flat != "" {
				return flat
			}
		}
		if eb.Message != "" {
			return eb.Message
		}
	}
	return body
}

// classifyStatus translates a non-2xx upstream response into the error
// taxonomy. The upstream service reports some absent resources as server
// errors whose message says "not found"; those are reclassified.
func classifyStatus(status int, body string) *domain.ResolveError {
	msg := upstreamMessage(body)

	switch {
	case status == http.StatusNotFound:
		return domain.ErrNotFound("upstream resource not found").WithUpstream(status, body)

	case status == http.StatusTooManyRequests:
		return domain.ErrRateLimitExceeded("upstream rate limit exceeded").WithUpstream(status, body)

	case status == http.StatusInternalServerError &&
		strings.Contains(strings.ToLower(msg), "not found"):
		return domain.ErrNotFound("upstream resource not found").WithUpstream(status, body)

	default:
		return domain.ErrUpstreamAPI(
			fmt.Sprintf("upstream request failed with status %d", status)).
			WithUpstream(status, body)
	}
}

// classifyTransportFailure covers calls that produced no response at all.
// The synthetic zero status distinguishes them from upstream rejections.
func classifyTransportFailure(msg string) *domain.ResolveError {
	return domain.ErrUpstreamAPI("no response from upstream: " + msg)
}
