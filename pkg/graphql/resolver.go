package graphql

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/raywall/users-service/pkg/users"
)

// UserReader é o subconjunto do users.Handler usado pelos resolvers.
type UserReader interface {
	List(ctx context.Context) users.Response
	Get(ctx context.Context, id string) users.Response
}

func listResolver(reader UserReader) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		resp := reader.List(p.Context)
		if resp.StatusCode != http.StatusOK {
			return nil, responseError(resp)
		}

		items, ok := resp.Body.([]users.User)
		if !ok {
			return nil, fmt.Errorf("unexpected list body %T", resp.Body)
		}
		out := make([]map[string]interface{}, 0, len(items))
		for _, u := range items {
			out = append(out, userMap(u))
		}
		return out, nil
	}
}

func getResolver(reader UserReader) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		id, _ := p.Args["id"].(string)

		resp := reader.Get(p.Context, id)
		switch resp.StatusCode {
		case http.StatusOK:
		case http.StatusNotFound:
			return nil, nil
		default:
			return nil, responseError(resp)
		}

		u, ok := resp.Body.(users.User)
		if !ok {
			return nil, fmt.Errorf("unexpected user body %T", resp.Body)
		}
		return userMap(u), nil
	}
}

// responseError converte um Response de erro em erro GraphQL com a mensagem original.
func responseError(resp users.Response) error {
	switch body := resp.Body.(type) {
	case users.ErrorBody:
		return errors.New(body.Error)
	case users.DispatchBody:
		return errors.New(body.Message)
	}
	return fmt.Errorf("request failed with status %d", resp.StatusCode)
}
