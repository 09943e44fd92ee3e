package flowbuf

// Metrics holds a snapshot of a stream's delivery counters. A snapshot
// is taken after every delivered signal, so collectors observe the
// stream's progress in delivery order.
type Metrics struct {
	// Stream is the ID of the stream the snapshot belongs to.
	Stream string
	// Chunks is the number of data chunks delivered so far.
	Chunks int
	// Bytes is the total canonical byte count delivered so far.
	Bytes int
	// Queued is the byte count still buffered at snapshot time.
	Queued int
	// Errors is the number of error signals delivered so far.
	Errors int
	// Ended reports whether the terminal signal has been delivered.
	Ended bool
}

// MetricsCollector defines a function that collects stream metrics.
// Collectors run on the stream's delivery goroutine and are never
// invoked concurrently for the same stream.
type MetricsCollector func(metrics *Metrics)

// WithMetricsCollector adds a metrics collector to the stream.
// Can be used multiple times to add multiple collectors.
func WithMetricsCollector(collector MetricsCollector) Option {
	return func(cfg *config) {
		cfg.collectors = append(cfg.collectors, collector)
	}
}

func (s *Stream) metricsLocked() *Metrics {
	return &Metrics{
		Stream: s.id,
		Chunks: s.deliveredChunks,
		Bytes:  s.deliveredBytes,
		Queued: s.queue.size,
		Errors: s.deliveredErrs,
		Ended:  s.endEmitted,
	}
}

func (s *Stream) collect(m *Metrics) {
	for _, c := range s.collectors {
		c(m)
	}
}
