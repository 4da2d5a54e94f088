package transport

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"

	gql "github.com/raywall/users-service/pkg/graphql"
	"github.com/raywall/users-service/pkg/users"
)

// LambdaHandler adapta eventos do API Gateway para o Dispatcher
type LambdaHandler struct {
	users Dispatcher
	settings
}

// NewLambdaHandler cria uma nova instância do adaptador
func NewLambdaHandler(d Dispatcher, opts ...Option) *LambdaHandler {
	return &LambdaHandler{users: d, settings: newSettings(opts)}
}

// Handle processa a requisição Lambda. Erros nunca sobem para o runtime:
// toda falha vira uma resposta HTTP.
func (h *LambdaHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	start := time.Now()

	corrID := correlationID(req.Headers)

	logger := log.With().Str("correlation_id", corrID).Logger()
	ctx = logger.WithContext(ctx)
	ctx = context.WithValue(ctx, ContextKeyCorrID, corrID)

	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	var (
		response events.APIGatewayProxyResponse
		op       string
	)
	body, err := requestBody(req)
	switch {
	case err != nil:
		op = string(users.OpInvalid)
		logger.Warn().Err(err).Msg("invalid base64 body")
		status, payload := encodeResponse(users.Response{
			StatusCode: http.StatusBadRequest,
			Body:       users.ErrorBody{Error: msgInvalidBase64},
		})
		response = jsonResponse(status, string(payload))
	case h.graphqlEnabled(req.Path):
		op = "graphql"
		response = h.handleGraphQL(ctx, req.HTTPMethod, body)
	default:
		userID := req.PathParameters["user_id"]
		op = string(users.Route(req.HTTPMethod, userID))
		response = h.handleREST(ctx, req.HTTPMethod, userID, body)
	}

	h.observe(ctx, op, response.StatusCode, start)

	logger.Info().
		Str("method", req.HTTPMethod).
		Str("path", req.Path).
		Str("operation", op).
		Int("status", response.StatusCode).
		Int64("latency_ms", time.Since(start).Milliseconds()).
		Msg("lambda request completed")

	response.Headers[HeaderCorrelationID] = corrID
	return response, nil
}

const msgInvalidBase64 = "Invalid base64 body"

// requestBody devolve o corpo já decodificado; nil significa corpo ausente.
func requestBody(req events.APIGatewayProxyRequest) (*string, error) {
	if req.Body == "" {
		return nil, nil
	}
	if !req.IsBase64Encoded {
		return &req.Body, nil
	}
	decoded, err := base64.StdEncoding.DecodeString(req.Body)
	if err != nil {
		return nil, fmt.Errorf("decode base64 body: %w", err)
	}
	raw := string(decoded)
	return &raw, nil
}

func jsonResponse(status int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": contentTypeJSON},
		Body:       body,
	}
}

func (h *LambdaHandler) handleREST(ctx context.Context, method, userID string, body *string) events.APIGatewayProxyResponse {
	status, payload := encodeResponse(h.users.Dispatch(ctx, users.Request{
		Method: method,
		UserID: userID,
		Body:   body,
	}))
	return jsonResponse(status, string(payload))
}

func (h *LambdaHandler) handleGraphQL(ctx context.Context, method string, body *string) events.APIGatewayProxyResponse {
	if method != http.MethodPost {
		return jsonResponse(http.StatusMethodNotAllowed, `{"error": "method not allowed"}`)
	}

	var raw []byte
	if body != nil {
		raw = []byte(*body)
	}
	p, err := gql.ParseRequest(raw)
	if err != nil {
		return jsonResponse(http.StatusBadRequest, `{"error": "Invalid JSON Body"}`)
	}

	result := h.graphql.Execute(ctx, p)
	responseBody, _ := json.Marshal(result)

	return jsonResponse(http.StatusOK, string(responseBody))
}
