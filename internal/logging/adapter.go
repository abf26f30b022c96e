package logging

import (
	"github.com/rs/zerolog"
)

// Adapter exposes a zerolog.Logger through the map-of-fields logger
// interface used by the client packages.
type Adapter struct {
	logger zerolog.Logger
}

// NewAdapter wraps logger.
func NewAdapter(logger zerolog.Logger) *Adapter {
	return &Adapter{logger: logger}
}

// Nop returns an adapter that discards everything.
func Nop() *Adapter {
	return &Adapter{logger: zerolog.Nop()}
}

// Debug logs at debug level.
func (a *Adapter) Debug(msg string, fields map[string]interface{}) {
	a.logger.Debug().Fields(fields).Msg(msg)
}

// Info logs at info level.
func (a *Adapter) Info(msg string, fields map[string]interface{}) {
	a.logger.Info().Fields(fields).Msg(msg)
}

// Warn logs at warn level.
func (a *Adapter) Warn(msg string, fields map[string]interface{}) {
	a.logger.Warn().Fields(fields).Msg(msg)
}

// Error logs at error level. An "error" field holding an error value is
// rendered with zerolog's error formatting.
func (a *Adapter) Error(msg string, fields map[string]interface{}) {
	event := a.logger.Error()

	if err, ok := fields["error"].(error); ok {
		event = event.Err(err)
		rest := make(map[string]interface{}, len(fields))

		for k, v := range fields {
			if k != "error" {
				rest[k] = v
			}
		}

		fields = rest
	}

	event.Fields(fields).Msg(msg)
}
