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
// Package envloader carrega variáveis de ambiente diretamente para campos de
// uma struct Go, usando as tags `env` e `envDefault`.
//
// Visão Geral:
// O `envloader` usa reflection para mapear variáveis de ambiente para campos
// tipados. Suporta string, int, uint, bool, float, time.Duration e structs
// aninhadas (incluindo ponteiros para structs).
//
// Precedência:
//  1. Variável de ambiente definida e não vazia.
//  2. Valor já presente no campo (por exemplo, lido de um YAML antes do Load).
//  3. `envDefault`, aplicado somente quando o campo ainda está com valor zero.
//
// Exemplo:
//
//	type StoreConfig struct {
//		TableName string        `env:"USERS_TABLE_NAME" envDefault:"Users"`
//		Timeout   time.Duration `env:"USERS_TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg StoreConfig
//	if err := envloader.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
// Erros:
// `InvalidConfigError` quando o argumento não é ponteiro para struct,
// `FieldError` quando a conversão de um valor falha e `UnsupportedTypeError`
// para tipos sem conversão (map, slice, interface).
package envloader
