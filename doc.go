// Package usersservice reúne o serviço de cadastro de usuários: um handler
// CRUD sobre uma tabela chave-valor, exposto como função Lambda atrás do API
// Gateway ou como servidor HTTP local.
//
// Visão Geral:
// O módulo é dividido em pacotes pequenos e testáveis:
//
// 1. pkg/users:
//   - Regras de negócio (validação, normalização de datas, geração de IDs).
//   - Dispatcher que roteia método + user_id para list/get/create/update/delete.
//   - Repositórios DynamoDB, Redis e memória atrás da interface Repository.
//
// 2. dyndb:
//   - Store[T] genérico e tipado sobre o DynamoDB (Get, Put, Update, Delete, Scan).
//
// 3. envloader e pkg/config:
//   - Configuração via YAML (arquivo local ou s3://), variáveis de ambiente e
//     referências ${env.X}, ${ssm.X} e ${secret.X}.
//
// 4. pkg/transport, pkg/graphql, pkg/logger, pkg/observability:
//   - Adaptadores Lambda e HTTP, consulta GraphQL somente leitura, zerolog e
//     métricas no Datadog.
//
// Exemplo de Início Rápido:
//
//	repo := users.NewMemoryRepository()
//	h := users.NewHandler(repo)
//
//	body := `{"lastname":"Doe","dob":"1990-01-01","address":"x","gender":"M","email":"a@b.co","phone_no":"5551234567"}`
//	resp := h.Dispatch(ctx, users.Request{Method: "POST", Body: &body})
//	// resp.StatusCode == 201
//
// O binário fica em cmd/users; USERS_RUNTIME=local sobe o servidor HTTP.
package usersservice
