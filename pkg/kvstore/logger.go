package kvstore

import (
	"strings"

	"github.com/rs/zerolog"
)

// badgerLogger 将 badger 日志转发到 zerolog
type badgerLogger struct {
	l zerolog.Logger
}

func (b *badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Error().Str("log_type", "badger").Msgf(strings.TrimSpace(format), args...)
}

func (b *badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Warn().Str("log_type", "badger").Msgf(strings.TrimSpace(format), args...)
}

func (b *badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Info().Str("log_type", "badger").Msgf(strings.TrimSpace(format), args...)
}

func (b *badgerLogger) Debugf(format string, args ...interface{}) {
	b.l.Debug().Str("log_type", "badger").Msgf(strings.TrimSpace(format), args...)
}
