package telemetry

import (
	"time"

	hostmetrics "go.opentelemetry.io/contrib/instrumentation/host"
	"go.opentelemetry.io/contrib/instrumentation/runtime"
)

// StartRuntimeMetrics starts ambient process metrics collection: Go runtime
// stats (memory, GC) and host stats (CPU, memory, network, disk). It has no
// dependency on the order book itself; it runs once per process.
func StartRuntimeMetrics() error {
	// Start runtime metrics collection (memory, GC, etc)
	if err := runtime.Start(
		runtime.WithMinimumReadMemStatsInterval(time.Second*30),
	); err != nil {
		return err
	}

	// Start host metrics collection (CPU, memory, network, disk)
	if err := hostmetrics.Start(); err != nil {
		return err
	}

	return nil
}
