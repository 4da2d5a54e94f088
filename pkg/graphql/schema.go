package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/raywall/users-service/pkg/users"
)

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name:        "User",
	Description: "Registro da tabela Users",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"lastname": &graphql.Field{Type: graphql.String},
		"dob":      &graphql.Field{Type: graphql.String, Description: "YYYY-MM-DD"},
		"address":  &graphql.Field{Type: graphql.String},
		"gender":   &graphql.Field{Type: graphql.String},
		"email":    &graphql.Field{Type: graphql.String},
		"phone_no": &graphql.Field{Type: graphql.String},
	},
})

// buildSchema constrói o objeto Schema do GraphQL
func buildSchema(reader UserReader) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type:        graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Description: "Todos os usuários",
				Resolve:     listResolver(reader),
			},
			"user": &graphql.Field{
				Type:        userType,
				Description: "Usuário pelo id; null quando não existe",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: getResolver(reader),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}

func userMap(u users.User) map[string]interface{} {
	return map[string]interface{}{
		"id":       u.ID,
		"lastname": u.Lastname,
		"dob":      u.DOB,
		"address":  u.Address,
		"gender":   u.Gender,
		"email":    u.Email,
		"phone_no": u.PhoneNo,
	}
}
