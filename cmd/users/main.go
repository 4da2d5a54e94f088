package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/raywall/users-service/pkg/config"
	gql "github.com/raywall/users-service/pkg/graphql"
	"github.com/raywall/users-service/pkg/logger"
	"github.com/raywall/users-service/pkg/metrics"
	"github.com/raywall/users-service/pkg/observability"
	"github.com/raywall/users-service/pkg/transport"
	"github.com/raywall/users-service/pkg/users"
)

var (
	configPath string
	// Variáveis injetáveis para mocking
	serverStarter = transport.StartHTTPServer
	lambdaStarter = lambda.Start
)

func init() {
	configPath = os.Getenv(config.EnvConfigFilePath)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configPath); err != nil {
		log.Fatal().Err(err).Msg("falha ao iniciar o serviço")
	}
}

// run contém a lógica principal testável
func run(ctx context.Context, cfgPath string) error {
	cfg, err := config.Load(ctx, cfgPath)
	if err != nil {
		return err
	}

	log.Logger = logger.Configure(cfg.Logging).With().Str("service", cfg.Service.Name).Logger()
	zerolog.DefaultContextLogger = &log.Logger

	provider, err := observability.SetupMetrics(cfg.Metrics, cfg.Service.Name)
	if err != nil {
		return err
	}
	defer provider.Close()

	repo, closeRepo, err := newRepository(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer closeRepo()

	handler := users.NewHandler(repo, users.WithIDLength(cfg.Service.IDLength))

	engine, err := gql.NewGraphQLEngine(handler)
	if err != nil {
		return err
	}

	opts := []transport.Option{
		transport.WithGraphQL(engine, cfg.GraphQL.Route),
		transport.WithMetrics(metrics.NewRecorder(provider)),
		transport.WithTimeout(cfg.Service.Timeout),
	}

	log.Info().
		Str("runtime", cfg.Service.Runtime).
		Str("store", cfg.Store.Driver).
		Msg("serviço inicializado")

	switch cfg.Service.Runtime {
	case "local":
		addr := fmt.Sprintf(":%d", cfg.Service.Port)
		return serverStarter(ctx, addr, transport.NewRouter(handler, opts...))
	case "lambda":
		lambdaStarter(transport.NewLambdaHandler(handler, opts...).Handle)
		return nil
	default:
		return fmt.Errorf("runtime desconhecido: %s", cfg.Service.Runtime)
	}
}
