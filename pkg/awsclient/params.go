package awsclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// SSMClient abstrai o cliente do Parameter Store (permite mocking).
type SSMClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SecretsClient abstrai o cliente do Secrets Manager.
type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// GetParameter lê um parâmetro do SSM, com decrypt para SecureString.
func GetParameter(ctx context.Context, client SSMClient, name string, decrypt bool) (string, error) {
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(decrypt),
	})
	if err != nil {
		return "", fmt.Errorf("ssm get parameter %s: %w", name, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("ssm get parameter %s: empty value", name)
	}
	return *out.Parameter.Value, nil
}

// GetSecret lê um segredo do Secrets Manager. A referência aceita o formato
// "id#campo": quando o segredo é um objeto JSON, devolve apenas o campo.
func GetSecret(ctx context.Context, client SecretsClient, ref string) (string, error) {
	id, field, _ := strings.Cut(ref, "#")

	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		return "", fmt.Errorf("secretsmanager get %s: %w", id, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secretsmanager get %s: secret has no string value", id)
	}

	val := *out.SecretString
	if field == "" {
		return val, nil
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return "", fmt.Errorf("secretsmanager get %s: secret is not a JSON object: %w", id, err)
	}
	v, ok := data[field]
	if !ok {
		return "", fmt.Errorf("secretsmanager get %s: field %q not found", id, field)
	}
	return fmt.Sprintf("%v", v), nil
}
