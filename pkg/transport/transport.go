package transport

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	gql "github.com/raywall/users-service/pkg/graphql"
	"github.com/raywall/users-service/pkg/metrics"
	"github.com/raywall/users-service/pkg/users"
)

const (
	HeaderCorrelationID = "x-correlation-id"
	HeaderLatency       = "x-latency-ms"
	ContextKeyCorrID    = contextKey("correlation_id")

	contentTypeJSON = "application/json"
)

type contextKey string

// Dispatcher é o ponto de entrada do CRUD (users.Handler).
type Dispatcher interface {
	Dispatch(ctx context.Context, req users.Request) users.Response
}

type settings struct {
	graphql      *gql.GraphQLEngine
	graphqlRoute string
	metrics      *metrics.Recorder
	timeout      time.Duration
}

// Option configura os transportes Lambda e HTTP.
type Option func(*settings)

// WithGraphQL expõe o engine GraphQL na rota informada.
func WithGraphQL(engine *gql.GraphQLEngine, route string) Option {
	return func(s *settings) {
		s.graphql = engine
		s.graphqlRoute = route
	}
}

// WithMetrics registra contagem e latência por operação.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *settings) { s.metrics = rec }
}

// WithTimeout aplica um deadline por requisição.
func WithTimeout(d time.Duration) Option {
	return func(s *settings) { s.timeout = d }
}

func newSettings(opts []Option) settings {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s settings) graphqlEnabled(path string) bool {
	return s.graphql != nil && s.graphqlRoute != "" && path == s.graphqlRoute
}

// withTimeout devolve o ctx com deadline quando configurado.
func (s settings) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s settings) observe(ctx context.Context, op string, status int, start time.Time) {
	if err := s.metrics.ObserveRequest(op, status, time.Since(start)); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to emit request metrics")
	}
}

// encodeResponse serializa o corpo do Response. Uma falha de serialização
// vira o 500 do catch-all.
func encodeResponse(resp users.Response) (int, []byte) {
	body, err := resp.JSON()
	if err != nil {
		fallback := users.Response{
			StatusCode: http.StatusInternalServerError,
			Body:       users.DispatchBody{Message: "Internal server error: " + err.Error()},
		}
		body, _ = fallback.JSON()
		return fallback.StatusCode, body
	}
	return resp.StatusCode, body
}

// correlationID busca o header sem diferenciar maiúsculas, ou gera um novo.
func correlationID(headers map[string]string) string {
	if id := headers[HeaderCorrelationID]; id != "" {
		return id
	}
	for k, v := range headers {
		if strings.EqualFold(k, HeaderCorrelationID) && v != "" {
			return v
		}
	}
	return uuid.NewString()
}
