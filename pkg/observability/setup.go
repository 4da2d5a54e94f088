package observability

import (
	"fmt"
	"net"

	"github.com/DataDog/datadog-go/v5/statsd"

	"github.com/raywall/users-service/pkg/config"
	"github.com/raywall/users-service/pkg/metrics"
)

// Porta padrão do DogStatsD quando DD_AGENT_HOST vem sem porta.
const defaultStatsdPort = "8125"

// NoopProvider é um placeholder para quando métricas estão desabilitadas.
type NoopProvider struct{}

func (n *NoopProvider) Count(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Gauge(name string, value float64, tags []string) error     { return nil }
func (n *NoopProvider) Histogram(name string, value float64, tags []string) error { return nil }
func (n *NoopProvider) Close() error                                              { return nil }

// DatadogProvider adapta a lib oficial do Datadog para nossa interface.
type DatadogProvider struct {
	client *statsd.Client
}

func (d *DatadogProvider) Count(name string, value float64, tags []string) error {
	return d.client.Count(name, int64(value), tags, 1)
}

func (d *DatadogProvider) Gauge(name string, value float64, tags []string) error {
	return d.client.Gauge(name, value, tags, 1)
}

func (d *DatadogProvider) Histogram(name string, value float64, tags []string) error {
	return d.client.Histogram(name, value, tags, 1)
}

// Close descarrega o buffer do statsd.
func (d *DatadogProvider) Close() error {
	return d.client.Close()
}

// Provider com Close, devolvido pelo SetupMetrics.
type Provider interface {
	metrics.Provider
	Close() error
}

// SetupMetrics inicializa o provedor correto baseado na configuração.
func SetupMetrics(cfg config.MetricsConf, serviceName string) (Provider, error) {
	if !cfg.Datadog.Enabled {
		return &NoopProvider{}, nil
	}

	opts := []statsd.Option{
		statsd.WithNamespace(cfg.Datadog.Namespace),
	}
	if serviceName != "" {
		opts = append(opts, statsd.WithTags([]string{"service:" + serviceName}))
	}

	client, err := statsd.New(agentAddr(cfg.Datadog.Addr), opts...)
	if err != nil {
		return nil, fmt.Errorf("falha ao conectar no datadog statsd: %w", err)
	}

	return &DatadogProvider{client: client}, nil
}

func agentAddr(addr string) string {
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, defaultStatsdPort)
}
