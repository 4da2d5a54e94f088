// Package users implementa o CRUD da tabela Users.
//
// O Handler expõe as operações List, Get, Create, Update e Delete, cada uma
// devolvendo um Response (status mais corpo JSON). Dispatch escolhe a
// operação a partir do método HTTP e do user_id, e é o ponto de entrada
// usado pelo transporte Lambda e pelo servidor HTTP local.
//
// O armazenamento fica atrás da interface Repository, com três backends:
// DynamoDB (via dyndb.Store), Redis (um hash por usuário) e memória.
//
// Regras de validação:
//   - email precisa conter "@" e ".";
//   - phone_no precisa ter exatamente 10 dígitos;
//   - dob aceita YYYY-MM-DD (dia e mês com um ou dois dígitos) ou HTTP-date,
//     e é sempre gravado e devolvido como YYYY-MM-DD.
package users
