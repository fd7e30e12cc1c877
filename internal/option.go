package internal

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config    *Config
	watchMode bool
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithWatchMode keeps the process alive and rebuilds the corpus whenever the
// content directory changes.
func WithWatchMode(enabled bool) Option {
	return func(a *application) {
		a.watchMode = enabled
	}
}
