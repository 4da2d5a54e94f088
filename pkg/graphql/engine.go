package graphql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/graphql-go/graphql"
)

// Request é o corpo padrão de uma chamada GraphQL via HTTP.
type Request struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// ParseRequest decodifica o corpo JSON de uma requisição GraphQL.
func ParseRequest(body []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return Request{}, fmt.Errorf("invalid graphql request body: %w", err)
	}
	if req.Query == "" {
		return Request{}, fmt.Errorf("invalid graphql request body: query is empty")
	}
	return req, nil
}

// GraphQLEngine executa consultas somente-leitura sobre os usuários.
type GraphQLEngine struct {
	Schema graphql.Schema
}

// NewGraphQLEngine monta o schema com os resolvers ligados ao reader.
func NewGraphQLEngine(reader UserReader) (*GraphQLEngine, error) {
	schema, err := buildSchema(reader)
	if err != nil {
		return nil, fmt.Errorf("erro ao montar schema graphql: %w", err)
	}
	return &GraphQLEngine{Schema: schema}, nil
}

func (ge *GraphQLEngine) Execute(ctx context.Context, req Request) *graphql.Result {
	params := graphql.Params{
		Schema:         ge.Schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	}
	return graphql.Do(params)
}
