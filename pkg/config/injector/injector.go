// Package injector resolve placeholders ${tipo.chave} nos campos string de
// uma struct de configuração.
//
// Tipos suportados:
//   - ${env.NOME}: variável de ambiente (vazia quando não definida);
//   - ${ssm./caminho}: parâmetro do SSM Parameter Store, com decrypt;
//   - ${secret.id} ou ${secret.id#campo}: Secrets Manager.
package injector

import (
	"context"
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/raywall/users-service/pkg/awsclient"
)

// Ex: ${env.API_KEY}, ${ssm./users/table}, ${secret.users/redis#password}
var pattern = regexp.MustCompile(`\$\{(env|ssm|secret)\.([^}]+)\}`)

type Injector struct {
	region  string
	ssm     awsclient.SSMClient
	secrets awsclient.SecretsClient
	cache   map[string]string
}

// Option configura o Injector
type Option func(*Injector)

// WithRegion define a região usada pelos clientes reais da AWS.
func WithRegion(region string) Option {
	return func(i *Injector) { i.region = region }
}

// WithSSMClient substitui o cliente do SSM (testes ou endpoint customizado).
func WithSSMClient(c awsclient.SSMClient) Option {
	return func(i *Injector) { i.ssm = c }
}

// WithSecretsClient substitui o cliente do Secrets Manager.
func WithSecretsClient(c awsclient.SecretsClient) Option {
	return func(i *Injector) { i.secrets = c }
}

func New(opts ...Option) *Injector {
	i := &Injector{region: os.Getenv("AWS_REGION")}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Inject percorre target (ponteiro para struct) e substitui os placeholders.
// Cada referência é buscada uma única vez por chamada.
func (i *Injector) Inject(ctx context.Context, target interface{}) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("target deve ser um ponteiro para struct não nulo")
	}
	i.cache = make(map[string]string)
	return i.injectRecursive(ctx, v.Elem())
}

func (i *Injector) injectRecursive(ctx context.Context, v reflect.Value) error {
	switch v.Kind() {
	case reflect.Struct:
		for k := 0; k < v.NumField(); k++ {
			value := v.Field(k)
			if !value.CanSet() {
				continue
			}
			if err := i.injectRecursive(ctx, value); err != nil {
				return fmt.Errorf("%s: %w", v.Type().Field(k).Name, err)
			}
		}

	case reflect.String:
		if !v.CanSet() {
			return nil
		}
		newValue, err := i.interpolateString(ctx, v.String())
		if err != nil {
			return err
		}
		v.SetString(newValue)

	case reflect.Map:
		if v.Type().Key().Kind() == reflect.String && !v.IsNil() {
			return i.injectMap(ctx, v)
		}

	case reflect.Ptr:
		if !v.IsNil() {
			return i.injectRecursive(ctx, v.Elem())
		}

	case reflect.Slice:
		for j := 0; j < v.Len(); j++ {
			if err := i.injectRecursive(ctx, v.Index(j)); err != nil {
				return err
			}
		}
	}
	return nil
}

// interpolateString substitui todos os placeholders da string. O primeiro
// erro de resolução é devolvido e o placeholder fica intacto.
func (i *Injector) interpolateString(ctx context.Context, input string) (string, error) {
	if !strings.Contains(input, "${") {
		return input, nil
	}

	var firstErr error
	result := pattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := pattern.FindStringSubmatch(match)
		val, err := i.fetchValue(ctx, groups[1], groups[2])
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return match
		}
		return val
	})

	return result, firstErr
}

// injectMap lida com mapas dinâmicos (map[string]string e map[string]interface{})
func (i *Injector) injectMap(ctx context.Context, v reflect.Value) error {
	iter := v.MapRange()
	updates := make(map[string]reflect.Value)

	for iter.Next() {
		elem := iter.Value()
		if elem.Kind() == reflect.Interface {
			elem = elem.Elem()
		}
		if !elem.IsValid() {
			continue
		}

		switch elem.Kind() {
		case reflect.String:
			newVal, err := i.interpolateString(ctx, elem.String())
			if err != nil {
				return err
			}
			updates[iter.Key().String()] = reflect.ValueOf(newVal).Convert(v.Type().Elem())
		case reflect.Map:
			if err := i.injectMap(ctx, elem); err != nil {
				return err
			}
		}
	}

	for k, val := range updates {
		v.SetMapIndex(reflect.ValueOf(k).Convert(v.Type().Key()), val)
	}
	return nil
}

// fetchValue centraliza a busca de dados
func (i *Injector) fetchValue(ctx context.Context, sourceType, key string) (string, error) {
	if sourceType == "env" {
		return os.Getenv(key), nil
	}

	cacheKey := sourceType + "." + key
	if val, ok := i.cache[cacheKey]; ok {
		return val, nil
	}

	var (
		val string
		err error
	)
	switch sourceType {
	case "ssm":
		var client awsclient.SSMClient
		if client, err = i.ssmClient(ctx); err == nil {
			val, err = awsclient.GetParameter(ctx, client, key, true)
		}
	case "secret":
		var client awsclient.SecretsClient
		if client, err = i.secretsClient(ctx); err == nil {
			val, err = awsclient.GetSecret(ctx, client, key)
		}
	default:
		return "", fmt.Errorf("tipo de placeholder desconhecido: %s", sourceType)
	}
	if err != nil {
		return "", err
	}

	i.cache[cacheKey] = val
	return val, nil
}

func (i *Injector) ssmClient(ctx context.Context) (awsclient.SSMClient, error) {
	if i.ssm == nil {
		cfg, err := awsclient.Config(ctx, i.region)
		if err != nil {
			return nil, err
		}
		i.ssm = ssm.NewFromConfig(cfg)
	}
	return i.ssm, nil
}

func (i *Injector) secretsClient(ctx context.Context) (awsclient.SecretsClient, error) {
	if i.secrets == nil {
		cfg, err := awsclient.Config(ctx, i.region)
		if err != nil {
			return nil, err
		}
		i.secrets = secretsmanager.NewFromConfig(cfg)
	}
	return i.secrets, nil
}
