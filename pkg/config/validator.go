package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ConfigValidator struct {
	validate *validator.Validate
}

// NewValidator cria uma nova instância do validador
func NewValidator() *ConfigValidator {
	return &ConfigValidator{
		validate: validator.New(),
	}
}

// Validate realiza validações estruturais (tags) e semânticas (lógica)
func (cv *ConfigValidator) Validate(cfg *Config) error {
	// 1. Validação Estrutural (Tags do struct: required, oneof, etc)
	if err := cv.validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var errMsgs []string
			for _, e := range validationErrors {
				errMsgs = append(errMsgs, fmt.Sprintf("Campo '%s' falhou na regra '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("erros de validação estrutural:\n- %s", strings.Join(errMsgs, "\n- "))
		}
		return fmt.Errorf("erro de validação estrutural: %w", err)
	}

	// 2. Validação Semântica
	if err := cv.validateSemantics(cfg); err != nil {
		return fmt.Errorf("erro de validação semântica: %w", err)
	}

	return nil
}

func (cv *ConfigValidator) validateSemantics(cfg *Config) error {
	// A rota GraphQL não pode sombrear a rota REST.
	if strings.HasPrefix(cfg.GraphQL.Route, "/users") {
		return fmt.Errorf("rota graphql '%s' conflita com /users", cfg.GraphQL.Route)
	}

	// O endpoint customizado só faz sentido para o backend DynamoDB.
	if cfg.Store.DynamoDB.Endpoint != "" && cfg.Store.Driver != "dynamodb" {
		return fmt.Errorf("dynamodb.endpoint definido, mas o driver é '%s'", cfg.Store.Driver)
	}

	return nil
}
