package users

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"

	"github.com/raywall/users-service/dyndb"
)

// DynamoRepository grava os usuários em uma tabela DynamoDB com hash key "id".
type DynamoRepository struct {
	store    dyndb.Store[User]
	pageSize int32
}

// DynamoOption ajusta o DynamoRepository
type DynamoOption func(*DynamoRepository)

// WithScanPageSize limita os itens lidos por página no Scan.
func WithScanPageSize(n int32) DynamoOption {
	return func(r *DynamoRepository) { r.pageSize = n }
}

// NewDynamoRepository cria o repositório sobre o cliente do SDK.
func NewDynamoRepository(client dyndb.DynamoDBClient, tableName string, opts ...DynamoOption) *DynamoRepository {
	store := dyndb.New(client, dyndb.TableConfig[User]{TableName: tableName, HashKey: "id"})
	return NewDynamoRepositoryWithStore(store, opts...)
}

// NewDynamoRepositoryWithStore permite injetar um dyndb.Store, útil com o dyndb.MockStore.
func NewDynamoRepositoryWithStore(store dyndb.Store[User], opts ...DynamoOption) *DynamoRepository {
	r := &DynamoRepository{store: store}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *DynamoRepository) Get(ctx context.Context, id string) (*User, error) {
	u, err := r.store.Get(ctx, id)
	if errors.Is(err, dyndb.ErrNotFound) {
		return nil, ErrNotFound
	}
	return u, err
}

func (r *DynamoRepository) Put(ctx context.Context, user User) error {
	return r.store.Put(ctx, user)
}

// Update monta um único SET com os campos tocados, na ordem de Fields.
func (r *DynamoRepository) Update(ctx context.Context, id string, patch Patch) error {
	update, err := updateExpression(patch)
	if err != nil {
		return err
	}
	return r.store.Update(ctx, id, update)
}

func (r *DynamoRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}

func (r *DynamoRepository) Scan(ctx context.Context) ([]User, error) {
	var opts []dyndb.ScanOption
	if r.pageSize > 0 {
		opts = append(opts, dyndb.WithPageSize(r.pageSize))
	}
	return r.store.Scan(ctx, opts...)
}

func updateExpression(patch Patch) (expression.UpdateBuilder, error) {
	var (
		update expression.UpdateBuilder
		empty  = true
	)
	for _, f := range patch.Touched() {
		v, _ := patch.Get(f)
		update = update.Set(expression.Name(string(f)), expression.Value(v))
		empty = false
	}
	if empty {
		return update, errEmptyPatch
	}
	return update, nil
}
