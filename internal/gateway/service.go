// Package gateway wires the resolution pipeline together: identifier in,
// envelope or taxonomy error out.
package gateway

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/openlegis/legis-gateway/internal/domain"
	"github.com/openlegis/legis-gateway/internal/resolve"
)

// Caller performs the rate-limited upstream call for a resolved request.
type Caller interface {
	Get(ctx context.Context, path string, query url.Values) ([]byte, error)
}

// Service runs the identifier-resolution pipeline.
type Service struct {
	resolver *resolve.Resolver
	caller   Caller
	logger   *slog.Logger
}

// NewService creates the pipeline over the given upstream caller.
func NewService(caller Caller, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		resolver: resolve.NewResolver(),
		caller:   caller,
		logger:   logger,
	}
}

// Resolve parses and validates the identifier, executes the upstream call
// under admission control, and wraps the payload. Any error is a taxonomy
// error; an unexpected panic surfaces as InternalUnexpected with no stack in
// the message.
func (s *Service) Resolve(ctx context.Context, identifier string) (env *domain.Envelope, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic during resolution",
				slog.String("identifier", identifier),
				slog.Any("panic", r),
			)
			env = nil
			err = domain.ErrInternal("unexpected failure during resolution")
		}
	}()

	res, err := s.resolver.Resolve(identifier)
	if err != nil {
		s.logger.Info("identifier rejected",
			slog.String("identifier", identifier),
			slog.String("kind", string(domain.ToResolveError(err).Kind)),
		)
		return nil, err
	}

	body, err := s.caller.Get(ctx, res.Request.Path(), res.Query)
	if err != nil {
		return nil, err
	}

	s.logger.Info("identifier resolved",
		slog.String("identifier", identifier),
		slog.String("collection", res.Request.Collection()),
		slog.String("path", res.Request.Path()),
	)

	return domain.Wrap(identifier, body), nil
}
