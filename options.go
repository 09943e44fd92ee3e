package flowbuf

// Option configures behavior of a Stream.
type Option func(*config)

type config struct {
	maxSize    int
	encoding   Encoding
	logger     Logger
	collectors []MetricsCollector
}

func parseConfig(opts []Option) config {
	c := config{
		maxSize:  0,
		encoding: Raw,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = logger
	}
	return c
}

// WithMaxSize sets the buffered byte count at which the stream reports
// itself full and Write starts returning a false advisory. A maxSize
// of 0 (the default) means the stream is never full.
func WithMaxSize(n int) Option {
	return func(cfg *config) {
		cfg.maxSize = n
	}
}

// WithEncoding sets the stream's output encoding at construction,
// equivalent to calling SetEncoding before any delivery. An encoding
// the codec does not recognize is ignored.
func WithEncoding(enc Encoding) Option {
	return func(cfg *config) {
		if validEncoding(enc) {
			cfg.encoding = enc
		}
	}
}

// WithLogger overrides the default logger for the stream.
func WithLogger(l Logger) Option {
	return func(cfg *config) {
		cfg.logger = l
	}
}
