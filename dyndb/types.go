// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package dyndb

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ErrNotFound – erro padrão retornado quando GetItem não encontra o item.
var ErrNotFound = errors.New("dyndb: item not found")

// DynamoDBClient interface para abstrair o cliente DynamoDB do SDK da AWS.
//
// O *dynamodb.Client satisfaz esta interface; nos testes ela é substituída
// por um mock.
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}

// Store é a interface principal e genérica para interagir com uma tabela.
//
// O tipo genérico `T` é a struct Go que representa o item da tabela.
type Store[T any] interface {
	// Get item pela chave de partição.
	Get(ctx context.Context, hashKey any) (*T, error)
	// Put item (upsert). Sobrescreve qualquer item com a mesma chave.
	Put(ctx context.Context, item T) error
	// Update aplica um SET/REMOVE parcial no item identificado pela chave.
	Update(ctx context.Context, hashKey any, update expression.UpdateBuilder) error
	// Delete item pela chave de partição.
	Delete(ctx context.Context, hashKey any) error
	// Scan percorre a tabela inteira, página por página.
	Scan(ctx context.Context, opts ...ScanOption) ([]T, error)
}

// TableConfig descreve a tabela. Somente tabelas com chave de partição
// simples (sem sort key) são suportadas.
type TableConfig[T any] struct {
	TableName string `env:"DYNAMODB_TABLE_NAME"`
	HashKey   string `env:"DYNAMODB_HASH_KEY" envDefault:"id"`
}

// ScanOption ajusta um scan antes da execução
type ScanOption func(*scanSettings)

type scanSettings struct {
	pageSize *int32
}

// WithPageSize limita a quantidade de itens avaliados por chamada ao DynamoDB.
// O resultado final continua contendo a tabela inteira.
func WithPageSize(n int32) ScanOption {
	return func(s *scanSettings) {
		if n > 0 {
			s.pageSize = &n
		}
	}
}
