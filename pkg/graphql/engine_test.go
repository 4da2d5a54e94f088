package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raywall/users-service/pkg/users"
)

type failingRepo struct{ *users.MemoryRepository }

func (failingRepo) Scan(context.Context) ([]users.User, error) {
	return nil, errors.New("Requested resource not found")
}

func newEngine(t *testing.T, repo users.Repository) *GraphQLEngine {
	t.Helper()
	engine, err := NewGraphQLEngine(users.NewHandler(repo))
	require.NoError(t, err)
	return engine
}

func resultJSON(t *testing.T, v interface{}) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestNewGraphQLEngine_Schema(t *testing.T) {
	engine := newEngine(t, users.NewMemoryRepository())

	assert.NotNil(t, engine.Schema.Type("User"), "Tipo 'User' não foi criado no schema")

	fields := engine.Schema.QueryType().Fields()
	assert.Contains(t, fields, "users")
	assert.Contains(t, fields, "user")
	assert.Nil(t, engine.Schema.MutationType(), "schema deve ser somente-leitura")
}

func TestExecute_Users(t *testing.T) {
	repo := users.NewMemoryRepository(
		users.User{ID: "b2", Lastname: "Roe", DOB: "1985-1-2"},
		users.User{ID: "a1", Lastname: "Doe", DOB: "1990-05-01", PhoneNo: "5551234567"},
	)

	result := newEngine(t, repo).Execute(context.Background(), Request{
		Query: `{ users { id lastname dob phone_no } }`,
	})

	require.Empty(t, result.Errors)
	assert.JSONEq(t, `{"users":[
		{"id":"a1","lastname":"Doe","dob":"1990-05-01","phone_no":"5551234567"},
		{"id":"b2","lastname":"Roe","dob":"1985-01-02","phone_no":""}
	]}`, resultJSON(t, result.Data))
}

func TestExecute_UserByID(t *testing.T) {
	engine := newEngine(t, users.NewMemoryRepository(users.User{ID: "a1", Email: "jane@doe.com"}))

	result := engine.Execute(context.Background(), Request{
		Query:     `query One($id: ID!) { user(id: $id) { id email } }`,
		Variables: map[string]interface{}{"id": "a1"},
	})
	require.Empty(t, result.Errors)
	assert.JSONEq(t, `{"user":{"id":"a1","email":"jane@doe.com"}}`, resultJSON(t, result.Data))

	result = engine.Execute(context.Background(), Request{Query: `{ user(id: "zz") { id } }`})
	require.Empty(t, result.Errors)
	assert.JSONEq(t, `{"user":null}`, resultJSON(t, result.Data))
}

func TestExecute_StoreError(t *testing.T) {
	engine := newEngine(t, failingRepo{users.NewMemoryRepository()})

	result := engine.Execute(context.Background(), Request{Query: `{ users { id } }`})

	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Requested resource not found", result.Errors[0].Message)
}

func TestExecute_InvalidQuery(t *testing.T) {
	result := newEngine(t, users.NewMemoryRepository()).Execute(context.Background(), Request{Query: `{ nope }`})
	assert.NotEmpty(t, result.Errors)
}

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest([]byte(`{"query":"{ users { id } }","variables":{"id":"a1"}}`))
	require.NoError(t, err)
	assert.Equal(t, "{ users { id } }", req.Query)
	assert.Equal(t, "a1", req.Variables["id"])

	_, err = ParseRequest([]byte(`not json`))
	assert.Error(t, err)

	_, err = ParseRequest([]byte(`{"variables":{}}`))
	assert.Error(t, err)
}
