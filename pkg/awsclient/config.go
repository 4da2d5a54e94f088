// Package awsclient concentra o acesso compartilhado à AWS: a aws.Config
// carregada uma única vez por processo e as leituras de SSM Parameter Store,
// Secrets Manager e S3 usadas na carga de configuração.
package awsclient

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
)

var (
	awsCfg  aws.Config
	awsOnce sync.Once
	awsErr  error
)

// Config carrega a configuração da AWS (env vars, profile, IAM role) de forma
// lazy-singleton. A região só é considerada na primeira chamada.
func Config(ctx context.Context, region string) (aws.Config, error) {
	awsOnce.Do(func() {
		opts := []func(*config.LoadOptions) error{}
		if region != "" {
			opts = append(opts, config.WithRegion(region))
		}
		awsCfg, awsErr = config.LoadDefaultConfig(ctx, opts...)
	})
	return awsCfg, awsErr
}
