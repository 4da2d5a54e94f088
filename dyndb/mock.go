package dyndb

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
)

// MockStore é um mock completo e fácil de usar para testes da interface Store[T].
//
// Ele expõe campos de função (`GetFn`, `PutFn`, etc.) que podem ser definidos
// para simular o comportamento desejado do DynamoDB durante os testes.
type MockStore[T any] struct {
	GetFn    func(ctx context.Context, hashKey any) (*T, error)
	PutFn    func(ctx context.Context, item T) error
	UpdateFn func(ctx context.Context, hashKey any, update expression.UpdateBuilder) error
	DeleteFn func(ctx context.Context, hashKey any) error
	ScanFn   func(ctx context.Context, opts ...ScanOption) ([]T, error)
}

var _ Store[struct{}] = (*MockStore[struct{}])(nil)

func (m *MockStore[T]) Get(ctx context.Context, hashKey any) (*T, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, hashKey)
	}
	return nil, ErrNotFound
}

func (m *MockStore[T]) Put(ctx context.Context, item T) error {
	if m.PutFn != nil {
		return m.PutFn(ctx, item)
	}
	return nil
}

func (m *MockStore[T]) Update(ctx context.Context, hashKey any, update expression.UpdateBuilder) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, hashKey, update)
	}
	return nil
}

func (m *MockStore[T]) Delete(ctx context.Context, hashKey any) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, hashKey)
	}
	return nil
}

func (m *MockStore[T]) Scan(ctx context.Context, opts ...ScanOption) ([]T, error) {
	if m.ScanFn != nil {
		return m.ScanFn(ctx, opts...)
	}
	return []T{}, nil
}
