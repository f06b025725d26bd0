// Package status publishes selection changes to whoever is listening.
package status

import "github.com/rs/zerolog"

const (
	TopicMode          = "mode"
	TopicAnimation     = "animation"
	TopicColor         = "color"
	TopicBrightness    = "brightness"
	TopicConfiguration = "config"
)

// Sink receives (topic, payload) pairs. Publish must not block.
type Sink interface {
	Publish(topic, payload string)
}

type Nop struct{}

func (Nop) Publish(string, string) {}

// Log writes every status message to a zerolog logger.
type Log struct {
	Logger zerolog.Logger
}

func (l Log) Publish(topic, payload string) {
	l.Logger.Info().Str("topic", topic).Str("payload", payload).Msg("status")
}

// Multi fans a message out to several sinks in order.
type Multi []Sink

func (m Multi) Publish(topic, payload string) {
	for _, s := range m {
		if s != nil {
			s.Publish(topic, payload)
		}
	}
}
