package api

import (
	"fmt"

	"github.com/rs/zerolog"
)

// New creates the production Client from configuration, wrapped with retry
// and logging middleware: caller → retry → logging → HTTP.
func New(cfg Config, recorder CallRecorder, log zerolog.Logger) (Client, error) {
	base, err := NewHTTPClient(cfg.BaseURL, WithTimeout(cfg.Timeout))
	if err != nil {
		return nil, fmt.Errorf("initializing API client: %w", err)
	}

	logged := WithLogging(base, recorder, log)
	return WithRetry(logged, cfg.Retry), nil
}
