package config

import "time"

// Config é a raiz da configuração do serviço. Cada campo pode vir do YAML
// (CONFIG_FILE_PATH), de variáveis de ambiente (tag env) ou do default
// (tag envDefault), nessa ordem inversa de precedência: o ambiente vence.
type Config struct {
	Service ServiceConf `yaml:"service"`
	Store   StoreConf   `yaml:"store"`
	Logging LoggingConf `yaml:"logging"`
	Metrics MetricsConf `yaml:"metrics"`
	GraphQL GraphQLConf `yaml:"graphql"`
}

// ServiceConf contém os metadados e configurações de runtime do serviço.
type ServiceConf struct {
	Name     string        `yaml:"name" env:"USERS_SERVICE_NAME" envDefault:"users" validate:"required,hostname_rfc1123"`
	Runtime  string        `yaml:"runtime" env:"USERS_RUNTIME" envDefault:"lambda" validate:"required,oneof=lambda local"`
	Port     int           `yaml:"port" env:"USERS_PORT" envDefault:"8080" validate:"min=1,max=65535"`
	Timeout  time.Duration `yaml:"timeout" env:"USERS_TIMEOUT" envDefault:"30s" validate:"gte=0"`
	IDLength int           `yaml:"id_length" env:"USERS_ID_LENGTH" envDefault:"3" validate:"min=1,max=32"`
}

// StoreConf escolhe o backend da tabela Users.
type StoreConf struct {
	Driver   string       `yaml:"driver" env:"USERS_STORE" envDefault:"dynamodb" validate:"oneof=dynamodb redis memory"`
	Region   string       `yaml:"region" env:"AWS_REGION" envDefault:"us-east-1" validate:"required"`
	DynamoDB DynamoDBConf `yaml:"dynamodb"`
	Redis    RedisConf    `yaml:"redis"`
}

type DynamoDBConf struct {
	TableName    string `yaml:"table_name" env:"USERS_TABLE_NAME" envDefault:"Users" validate:"required"`
	Endpoint     string `yaml:"endpoint" env:"DYNAMODB_ENDPOINT" validate:"omitempty,url"` // dynamodb-local, localstack
	ScanPageSize int32  `yaml:"scan_page_size" env:"DYNAMODB_SCAN_PAGE_SIZE" validate:"gte=0"`
}

type RedisConf struct {
	Addr      string `yaml:"addr" env:"REDIS_ADDR" envDefault:"localhost:6379" validate:"required"`
	Password  string `yaml:"password" env:"REDIS_PASSWORD"`
	DB        int    `yaml:"db" env:"REDIS_DB" validate:"gte=0"`
	KeyPrefix string `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" envDefault:"users:"`
}

// LoggingConf: level "disabled" desliga o log.
type LoggingConf struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error disabled"`
	Format string `yaml:"format" env:"LOG_FORMAT" envDefault:"json" validate:"oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf `yaml:"datadog"`
}

type DatadogConf struct {
	Enabled   bool   `yaml:"enabled" env:"DD_ENABLED"`
	Addr      string `yaml:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string `yaml:"namespace" env:"DD_NAMESPACE" envDefault:"users."`
}

type GraphQLConf struct {
	Route string `yaml:"route" env:"USERS_GRAPHQL_ROUTE" envDefault:"/graphql" validate:"required,startswith=/"`
}
