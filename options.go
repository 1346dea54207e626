package lanes

import (
	"github.com/pipelined/lanes/log"
)

// Option provides a way to set ambient collaborators of the engine.
type Option func(*settings)

type settings struct {
	name string
	log  log.Logger
}

// WithLogger sets logger to engine. If this option is not provided, silent
// logger is used.
func WithLogger(logger log.Logger) Option {
	return func(s *settings) {
		s.log = logger
	}
}

// WithName sets name to engine.
func WithName(n string) Option {
	return func(s *settings) {
		s.name = n
	}
}
