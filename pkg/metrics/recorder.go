package metrics

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Recorder envia métricas pelas suas definições.
type Recorder struct {
	provider Provider
}

// NewRecorder cria um Recorder; provider nil descarta tudo.
func NewRecorder(p Provider) *Recorder {
	return &Recorder{provider: p}
}

// Emit despacha o valor para o método do provider correspondente ao tipo.
func (r *Recorder) Emit(def MetricDefinition, value float64, tags []string) error {
	if r == nil || r.provider == nil {
		return nil
	}

	switch def.Type {
	case TypeCount:
		return r.provider.Count(def.Name, value, tags)
	case TypeGauge:
		return r.provider.Gauge(def.Name, value, tags)
	case TypeHistogram:
		return r.provider.Histogram(def.Name, value, tags)
	default:
		return fmt.Errorf("tipo de métrica desconhecido: %s", def.Type)
	}
}

// ObserveRequest registra contagem e latência de uma requisição, com tags de
// operação e status.
func (r *Recorder) ObserveRequest(operation string, status int, latency time.Duration) error {
	tags := []string{
		"operation:" + operation,
		"status:" + strconv.Itoa(status),
	}
	return errors.Join(
		r.Emit(RequestCount, 1, tags),
		r.Emit(RequestLatency, float64(latency.Milliseconds()), tags),
	)
}
