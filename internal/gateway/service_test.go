package gateway

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/openlegis/legis-gateway/internal/domain"
	"github.com/openlegis/legis-gateway/internal/ratelimit"
	"github.com/openlegis/legis-gateway/internal/upstream"
)

type recordingCaller struct {
	lastPath  string
	lastQuery url.Values
	body      []byte
	err       error
}

func (c *recordingCaller) Get(_ context.Context, path string, query url.Values) ([]byte, error) {
	c.lastPath = path
	c.lastQuery = query
	if c.err != nil {
		return nil, c.err
	}
	return c.body, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolveWrapsPayload(t *testing.T) {
	caller := &recordingCaller{body: []byte(`{"bill":{"number":"1"}}`)}
	svc := NewService(caller, testLogger())

	env, err := svc.Resolve(context.Background(), "congress-gov://bill/118/hr/1/actions")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if caller.lastPath != "/bill/118/hr/1/actions" {
		t.Fatalf("unexpected upstream path: %s", caller.lastPath)
	}
	if env.Identifier != "congress-gov://bill/118/hr/1/actions" {
		t.Fatalf("unexpected identifier: %s", env.Identifier)
	}
	if env.MediaType != domain.MediaTypeJSON {
		t.Fatalf("unexpected media type: %s", env.MediaType)
	}
	if string(env.Body) != `{"bill":{"number":"1"}}` {
		t.Fatalf("unexpected body: %s", env.Body)
	}
}

func TestResolveRejectsBeforeUpstream(t *testing.T) {
	caller := &recordingCaller{body: []byte(`{}`)}
	svc := NewService(caller, testLogger())

	cases := []struct {
		identifier string
		kind       domain.ErrorKind
	}{
		{"congress-gov://gazette/1", domain.ErrorKindInvalidIdentifier},
		{"congress-gov://nomination/50/1", domain.ErrorKindInvalidParameter},
		{"congress-gov://member/state/XX", domain.ErrorKindInvalidParameter},
	}

	for _, tc := range cases {
		t.Run(tc.identifier, func(t *testing.T) {
			caller.lastPath = ""
			_, err := svc.Resolve(context.Background(), tc.identifier)
			if !domain.IsKind(err, tc.kind) {
				t.Fatalf("expected %s, got %v", tc.kind, err)
			}
			if caller.lastPath != "" {
				t.Fatal("rejected identifiers must not reach the upstream")
			}
		})
	}
}

func TestResolvePropagatesUpstreamErrors(t *testing.T) {
	caller := &recordingCaller{err: domain.ErrNotFound("upstream resource not found")}
	svc := NewService(caller, testLogger())

	_, err := svc.Resolve(context.Background(), "congress-gov://bill/118/hr/1")
	if !domain.IsKind(err, domain.ErrorKindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

type panickyCaller struct{}

func (panickyCaller) Get(context.Context, string, url.Values) ([]byte, error) {
	panic("boom")
}

func TestResolveRecoversPanics(t *testing.T) {
	svc := NewService(panickyCaller{}, testLogger())

	_, err := svc.Resolve(context.Background(), "congress-gov://bill/118/hr/1")
	if !domain.IsKind(err, domain.ErrorKindInternal) {
		t.Fatalf("expected internal_unexpected, got %v", err)
	}
	re := domain.ToResolveError(err)
	if re.Message != "unexpected failure during resolution" {
		t.Fatalf("panic details must not leak: %s", re.Message)
	}
}

// End to end: two admitted calls exhaust a budget of two; the third resolution
// fails before any network activity.
func TestResolveEndToEndAdmissionControl(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"bill":{}}`))
	}))
	defer srv.Close()

	limiter, err := ratelimit.New(ratelimit.NewMemoryStore(),
		ratelimit.Config{MaxRequests: 2, Window: time.Hour})
	if err != nil {
		t.Fatalf("failed to create limiter: %v", err)
	}
	client := upstream.NewClient("test-key", limiter,
		upstream.WithBaseURL(srv.URL), upstream.WithLogger(testLogger()))
	svc := NewService(client, testLogger())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Resolve(ctx, "congress-gov://bill/118/hr/1"); err != nil {
			t.Fatalf("call %d: unexpected error: %v", i+1, err)
		}
	}

	_, err = svc.Resolve(ctx, "congress-gov://bill/118/hr/1")
	if !domain.IsKind(err, domain.ErrorKindRateLimitExceeded) {
		t.Fatalf("expected rate_limit_exceeded, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("third call must not reach the network, server saw %d calls", calls)
	}
}
