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
//
// Package dyndb fornece uma abstração genérica e fortemente tipada sobre o
// AWS DynamoDB Go SDK (v2).
//
// Visão Geral:
// O pacote `dyndb` oferece a interface `Store[T]`, que cobre as operações de
// item único (`Get`, `Put`, `Update`, `Delete`) e a varredura completa da
// tabela (`Scan`), sem expor os tipos de baixo nível do SDK (AttributeValue).
//
// Funcionalidades Principais:
//   - CRUD Tipado: `Get`, `Put` e `Delete` usando tipos Go nativos.
//   - Update Parcial: `Update` recebe um `expression.UpdateBuilder` e grava
//     somente os atributos informados.
//   - Scan Completo: `Scan` segue o `LastEvaluatedKey` até o fim da tabela.
//   - Mocks Integrados: `MockStore` para testes unitários de quem consome o Store.
//
// Exemplo Básico:
//
//	type User struct {
//		ID    string `dynamodbav:"id"`
//		Email string `dynamodbav:"email"`
//	}
//
//	cfg := dyndb.TableConfig[User]{TableName: "Users", HashKey: "id"}
//	users := dyndb.New(dynamodb.NewFromConfig(awsCfg), cfg)
//
//	_ = users.Put(ctx, User{ID: "u1", Email: "a@b.com"})
//
//	user, err := users.Get(ctx, "u1")
//	if errors.Is(err, dyndb.ErrNotFound) { /* ... */ }
//
//	upd := expression.Set(expression.Name("email"), expression.Value("c@d.com"))
//	_ = users.Update(ctx, "u1", upd)
//
//	all, err := users.Scan(ctx, dyndb.WithPageSize(100))
//
// Configuração:
// Quando `TableConfig.TableName` está vazio, `New` tenta preencher a
// configuração a partir das variáveis de ambiente (`DYNAMODB_TABLE_NAME`,
// `DYNAMODB_HASH_KEY`). Apenas chaves de partição simples são suportadas.
package dyndb
