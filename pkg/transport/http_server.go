package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	gql "github.com/raywall/users-service/pkg/graphql"
	"github.com/raywall/users-service/pkg/users"
)

type httpHandler struct {
	users Dispatcher
	settings
}

// NewRouter monta o roteador local: /users, /users/{user_id} e a rota GraphQL.
// Qualquer método chega ao Dispatcher, que decide o que é inválido.
func NewRouter(d Dispatcher, opts ...Option) http.Handler {
	h := &httpHandler{users: d, settings: newSettings(opts)}

	r := mux.NewRouter()
	if h.graphql != nil && h.graphqlRoute != "" {
		log.Info().Msgf("Registrando GraphQL em %s", h.graphqlRoute)
		r.HandleFunc(h.graphqlRoute, h.serveGraphQL).Methods(http.MethodPost)
	}
	r.HandleFunc("/users", h.serveUsers)
	r.HandleFunc("/users/{user_id}", h.serveUsers)

	return ObservabilityMiddleware(r)
}

func (h *httpHandler) serveUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	userID := mux.Vars(r)["user_id"]

	var body *string
	raw, err := io.ReadAll(r.Body)
	defer r.Body.Close()
	if err == nil && len(raw) > 0 {
		s := string(raw)
		body = &s
	}

	status, payload := encodeResponse(h.users.Dispatch(ctx, users.Request{
		Method: r.Method,
		UserID: userID,
		Body:   body,
	}))
	h.observe(ctx, string(users.Route(r.Method, userID)), status, start)

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func (h *httpHandler) serveGraphQL(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	raw, err := io.ReadAll(r.Body)
	defer r.Body.Close()
	if err != nil {
		http.Error(w, "Invalid JSON Body", http.StatusBadRequest)
		return
	}
	p, err := gql.ParseRequest(raw)
	if err != nil {
		http.Error(w, "Invalid JSON Body", http.StatusBadRequest)
		h.observe(ctx, "graphql", http.StatusBadRequest, start)
		return
	}

	result := h.graphql.Execute(ctx, p)
	h.observe(ctx, "graphql", http.StatusOK, start)

	w.Header().Set("Content-Type", contentTypeJSON)
	_ = json.NewEncoder(w).Encode(result)
}

// StartHTTPServer sobe o servidor local e faz shutdown gracioso quando o
// ctx é cancelado.
func StartHTTPServer(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Msgf("Servidor HTTP ouvindo em %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("erro no shutdown do servidor: %w", err)
		}
		return nil
	}
}

// --- MIDDLEWARE DE OBSERVABILIDADE ---
type responseWriterWrapper struct {
	http.ResponseWriter
	statusCode  int
	startTime   time.Time
	wroteHeader bool
}

func (rw *responseWriterWrapper) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}
	rw.statusCode = code
	duration := time.Since(rw.startTime)
	rw.Header().Set(HeaderLatency, fmt.Sprintf("%d", duration.Milliseconds()))
	rw.ResponseWriter.WriteHeader(code)
	rw.wroteHeader = true
}

func (rw *responseWriterWrapper) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func ObservabilityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		corrID := r.Header.Get(HeaderCorrelationID)
		if corrID == "" {
			corrID = uuid.NewString()
		}
		w.Header().Set(HeaderCorrelationID, corrID)

		logger := log.With().Str("correlation_id", corrID).Logger()
		ctx := logger.WithContext(r.Context())
		ctx = context.WithValue(ctx, ContextKeyCorrID, corrID)

		wrapper := &responseWriterWrapper{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			startTime:      start,
		}

		next.ServeHTTP(wrapper, r.WithContext(ctx))

		logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", wrapper.statusCode).
			Int64("latency_ms", time.Since(start).Milliseconds()).
			Msg("request completed")
	})
}
