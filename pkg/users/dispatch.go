package users

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"
)

// Operation identifica a operação escolhida pelo roteamento.
type Operation string

const (
	OpList    Operation = "list"
	OpGet     Operation = "get"
	OpCreate  Operation = "create"
	OpUpdate  Operation = "update"
	OpDelete  Operation = "delete"
	OpInvalid Operation = "invalid"
)

// Request é a forma neutra de transporte de uma chamada ao serviço.
// Body nil significa corpo ausente.
type Request struct {
	Method string
	UserID string
	Body   *string
}

// Route decide a operação a partir do método e da presença do user_id.
// A comparação do método é exata.
func Route(method, userID string) Operation {
	hasID := userID != ""
	switch {
	case method == http.MethodGet && !hasID:
		return OpList
	case method == http.MethodGet:
		return OpGet
	case method == http.MethodPost:
		return OpCreate
	case method == http.MethodPut && hasID:
		return OpUpdate
	case method == http.MethodDelete && hasID:
		return OpDelete
	}
	return OpInvalid
}

// Dispatch roteia a requisição para a operação correspondente. Qualquer
// panic é convertido em 500 com a descrição no corpo.
func (h *Handler) Dispatch(ctx context.Context, req Request) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			zerolog.Ctx(ctx).Error().Interface("panic", r).Msg("request dispatch panicked")
			resp = Response{
				StatusCode: http.StatusInternalServerError,
				Body:       DispatchBody{Message: fmt.Sprintf("Internal server error: %v", r)},
			}
		}
	}()

	switch Route(req.Method, req.UserID) {
	case OpList:
		return h.List(ctx)
	case OpGet:
		return h.Get(ctx, req.UserID)
	case OpCreate:
		return h.Create(ctx, req.Body)
	case OpUpdate:
		return h.Update(ctx, req.UserID, req.Body)
	case OpDelete:
		return h.Delete(ctx, req.UserID)
	}

	return Response{
		StatusCode: http.StatusBadRequest,
		Body:       DispatchBody{Message: msgInvalidRequest},
	}
}
