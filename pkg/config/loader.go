package config

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"gopkg.in/yaml.v3"

	"github.com/raywall/users-service/envloader"
	"github.com/raywall/users-service/pkg/awsclient"
	"github.com/raywall/users-service/pkg/config/injector"
)

// EnvConfigFilePath aponta para o YAML opcional (caminho local ou s3://bucket/key).
const EnvConfigFilePath = "CONFIG_FILE_PATH"

// Loader monta a Config: YAML opcional, ambiente e defaults, interpolação de
// placeholders e validação.
type Loader struct {
	s3        awsclient.S3Client
	injector  *injector.Injector
	validator *ConfigValidator
	readFile  func(string) ([]byte, error)
}

// LoaderOption configura o Loader
type LoaderOption func(*Loader)

// WithS3Client injeta o cliente usado para caminhos s3://.
func WithS3Client(c awsclient.S3Client) LoaderOption {
	return func(l *Loader) { l.s3 = c }
}

// WithInjector troca o injector de placeholders.
func WithInjector(i *injector.Injector) LoaderOption {
	return func(l *Loader) { l.injector = i }
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		validator: NewValidator(),
		readFile:  os.ReadFile,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.injector == nil {
		l.injector = injector.New()
	}
	return l
}

// Load usa um Loader padrão.
func Load(ctx context.Context, path string) (*Config, error) {
	return NewLoader().Load(ctx, path)
}

// Load carrega a configuração. Com path vazio a configuração vem apenas do
// ambiente e dos defaults.
func (l *Loader) Load(ctx context.Context, path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := l.fetch(ctx, path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("erro ao parsear config %s: %w", path, err)
		}
	}

	if err := envloader.Load(cfg); err != nil {
		return nil, fmt.Errorf("erro ao carregar variáveis de ambiente: %w", err)
	}

	if err := l.injector.Inject(ctx, cfg); err != nil {
		return nil, fmt.Errorf("erro ao resolver placeholders: %w", err)
	}

	if err := l.validator.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l *Loader) fetch(ctx context.Context, path string) ([]byte, error) {
	if !awsclient.IsS3URI(path) {
		data, err := l.readFile(path)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler config %s: %w", path, err)
		}
		return data, nil
	}

	bucket, key, err := awsclient.ParseS3URI(path)
	if err != nil {
		return nil, err
	}
	if l.s3 == nil {
		awsCfg, err := awsclient.Config(ctx, os.Getenv("AWS_REGION"))
		if err != nil {
			return nil, fmt.Errorf("erro ao carregar aws config: %w", err)
		}
		l.s3 = s3.NewFromConfig(awsCfg)
	}
	return awsclient.GetObject(ctx, l.s3, bucket, key)
}
