package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Handler implementa as cinco operações sobre a tabela Users.
type Handler struct {
	repo     Repository
	validate *validator.Validate
	idLength int
	newID    func(length int) (string, error)
}

// Option configura o Handler
type Option func(*Handler)

// WithIDLength define o tamanho dos IDs gerados no POST.
func WithIDLength(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.idLength = n
		}
	}
}

// WithIDGenerator troca o gerador de IDs (usado em testes).
func WithIDGenerator(fn func(length int) (string, error)) Option {
	return func(h *Handler) {
		if fn != nil {
			h.newID = fn
		}
	}
}

// NewHandler cria o Handler sobre um Repository.
func NewHandler(repo Repository, opts ...Option) *Handler {
	h := &Handler{
		repo:     repo,
		validate: newValidator(),
		idLength: DefaultIDLength,
		newID:    GenerateShortID,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// List devolve todos os usuários com o dob normalizado. Tabela vazia
// devolve [] e nunca null.
func (h *Handler) List(ctx context.Context) Response {
	items, err := h.repo.Scan(ctx)
	if err != nil {
		return h.storeFailure(ctx, OpList, err)
	}

	out := make([]User, 0, len(items))
	for _, u := range items {
		out = append(out, u.normalized())
	}
	return ok(out)
}

// Get busca um usuário pelo id.
func (h *Handler) Get(ctx context.Context, id string) Response {
	u, err := h.repo.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return errorResponse(http.StatusNotFound, msgGetNotFound)
	}
	if err != nil {
		return h.storeFailure(ctx, OpGet, err)
	}
	return ok(u.normalized())
}

// Create valida o corpo, gera um id e grava o usuário.
//
// A ordem das checagens é: corpo ausente, JSON inválido, campos obrigatórios,
// email, telefone e dob. Nada é gravado se alguma falhar.
func (h *Handler) Create(ctx context.Context, body *string) Response {
	if body == nil || *body == "" {
		return errorResponse(http.StatusBadRequest, msgBodyMissing)
	}

	var req CreateRequest
	if err := decodeObject(*body, &req); err != nil {
		return errorResponse(http.StatusBadRequest, msgInvalidJSON)
	}

	if resp, valid := h.validateCreate(req); !valid {
		return resp
	}

	dob, _ := ParseDate(req.DOB)

	id, err := h.newID(h.idLength)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to generate user id")
		return errorResponse(http.StatusInternalServerError, "Internal error: "+err.Error())
	}

	user := User{
		ID:       id,
		Lastname: req.Lastname,
		DOB:      FormatDate(dob),
		Address:  req.Address,
		Gender:   req.Gender,
		Email:    req.Email,
		PhoneNo:  req.PhoneNo,
	}
	if err := h.repo.Put(ctx, user); err != nil {
		return h.storeFailure(ctx, OpCreate, err)
	}

	zerolog.Ctx(ctx).Info().Str("user_id", id).Msg("user created")
	return Response{StatusCode: http.StatusCreated, Body: user}
}

func (h *Handler) validateCreate(req CreateRequest) (Response, bool) {
	err := h.validate.Struct(req)
	if err == nil {
		return Response{}, true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errorResponse(http.StatusInternalServerError, "Internal error: "+err.Error()), false
	}

	var missing []string
	failed := make(map[string]bool)
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			missing = append(missing, fe.Field())
			continue
		}
		failed[fe.Tag()] = true
	}

	if len(missing) > 0 {
		return Response{
			StatusCode: http.StatusBadRequest,
			Body:       MissingFieldsBody{Error: msgMissingFields, MissingFields: missing},
		}, false
	}
	for _, rule := range createRules {
		if failed[rule.tag] {
			return errorResponse(http.StatusBadRequest, rule.message), false
		}
	}
	return Response{}, true
}

// Update aplica uma atualização parcial e devolve o registro relido.
//
// A existência do usuário é checada antes do corpo. Os campos são validados
// na ordem de Fields e a primeira falha interrompe a operação sem gravar
// nada. O dob é gravado na forma canônica.
func (h *Handler) Update(ctx context.Context, id string, body *string) Response {
	_, err := h.repo.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return errorResponse(http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return h.storeFailure(ctx, OpUpdate, err)
	}

	if body == nil || *body == "" {
		return errorResponse(http.StatusBadRequest, msgBodyMissing)
	}

	var patch Patch
	if err := decodeObject(*body, &patch); err != nil {
		return errorResponse(http.StatusBadRequest, msgInvalidJSON)
	}

	for _, f := range patch.Touched() {
		rule, has := updateRules[f]
		if !has {
			continue
		}
		v, _ := patch.Get(f)
		if err := h.validate.Var(v, rule.tag); err != nil {
			return errorResponse(http.StatusBadRequest, rule.message)
		}
		if f == FieldDOB {
			t, _ := ParseDate(v)
			patch.Set(FieldDOB, FormatDate(t))
		}
	}

	if patch.IsEmpty() {
		return errorResponse(http.StatusBadRequest, msgNoFieldsToUpdate)
	}

	if err := h.repo.Update(ctx, id, patch); err != nil {
		return h.storeFailure(ctx, OpUpdate, err)
	}

	u, err := h.repo.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return errorResponse(http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return h.storeFailure(ctx, OpUpdate, err)
	}

	zerolog.Ctx(ctx).Info().Str("user_id", id).Strs("fields", fieldNames(patch.Touched())).Msg("user updated")
	return ok(u.normalized())
}

// Delete remove o usuário. Um id inexistente devolve 404 e não chama o delete.
func (h *Handler) Delete(ctx context.Context, id string) Response {
	_, err := h.repo.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return errorResponse(http.StatusNotFound, msgNotFound)
	}
	if err != nil {
		return h.storeFailure(ctx, OpDelete, err)
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		return h.storeFailure(ctx, OpDelete, err)
	}

	zerolog.Ctx(ctx).Info().Str("user_id", id).Msg("user deleted")
	return ok(MessageBody{Message: msgDeleted})
}

func (h *Handler) storeFailure(ctx context.Context, op Operation, err error) Response {
	zerolog.Ctx(ctx).Error().Err(err).Str("operation", string(op)).Msg("store operation failed")
	return errorResponse(http.StatusInternalServerError, StoreMessage(err))
}

// decodeObject só aceita um objeto JSON. Arrays, null e escalares são
// tratados como JSON inválido.
//
// Somente as chaves exatas de Fields chegam ao struct: o encoding/json
// casaria "EMAIL" ou "Gender" sem diferenciar maiúsculas.
func decodeObject(body string, v any) error {
	trimmed := strings.TrimSpace(body)
	if !strings.HasPrefix(trimmed, "{") {
		return fmt.Errorf("body is not a JSON object")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return err
	}

	known := make(map[string]json.RawMessage, len(Fields))
	for _, f := range Fields {
		if msg, ok := raw[string(f)]; ok {
			known[string(f)] = msg
		}
	}

	exact, err := json.Marshal(known)
	if err != nil {
		return err
	}
	return json.Unmarshal(exact, v)
}

func fieldNames(fields []Field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return names
}
