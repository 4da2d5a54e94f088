package users

import (
	"context"
	"errors"

	"github.com/aws/smithy-go"
)

// ErrNotFound é devolvido pelo Repository quando não existe usuário com o ID.
var ErrNotFound = errors.New("users: user not found")

// errEmptyPatch protege os backends contra um update sem campos.
var errEmptyPatch = errors.New("users: patch has no fields")

// Repository é o armazenamento chave-valor da tabela Users, indexado por id.
//
// Put é um upsert. Update grava somente os campos tocados pelo patch e não
// exige que o usuário exista.
type Repository interface {
	Get(ctx context.Context, id string) (*User, error)
	Put(ctx context.Context, user User) error
	Update(ctx context.Context, id string, patch Patch) error
	Delete(ctx context.Context, id string) error
	Scan(ctx context.Context) ([]User, error)
}

// StoreMessage extrai a mensagem do backend que é repassada ao cliente nas
// respostas 500. Para erros da AWS usa a mensagem do serviço; para os demais,
// a mensagem da causa mais interna.
func StoreMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && apiErr.ErrorMessage() != "" {
		return apiErr.ErrorMessage()
	}

	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
