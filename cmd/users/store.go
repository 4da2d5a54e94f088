package main

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/redis/go-redis/v9"

	"github.com/raywall/users-service/pkg/awsclient"
	"github.com/raywall/users-service/pkg/config"
	"github.com/raywall/users-service/pkg/users"
)

func noopClose() error { return nil }

// newRepository cria o backend escolhido em store.driver. O func devolvido
// libera as conexões no encerramento.
func newRepository(ctx context.Context, cfg config.StoreConf) (users.Repository, func() error, error) {
	switch cfg.Driver {
	case "memory":
		return users.NewMemoryRepository(), noopClose, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return users.NewRedisRepository(client, cfg.Redis.KeyPrefix), client.Close, nil

	case "dynamodb", "":
		awsCfg, err := awsclient.Config(ctx, cfg.Region)
		if err != nil {
			return nil, nil, fmt.Errorf("erro ao carregar aws config: %w", err)
		}
		client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
			if cfg.DynamoDB.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.DynamoDB.Endpoint)
			}
		})
		repo := users.NewDynamoRepository(client, cfg.DynamoDB.TableName,
			users.WithScanPageSize(cfg.DynamoDB.ScanPageSize))
		return repo, noopClose, nil
	}

	return nil, nil, fmt.Errorf("store desconhecido: %s", cfg.Driver)
}
