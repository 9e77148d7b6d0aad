package batch

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/OCAP2/ttkplot/internal/batch"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
