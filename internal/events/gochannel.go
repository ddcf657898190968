package events

import (
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// NewGoChannelPublisher returns an in-process publisher. Used in development
// and tests, and as the fallback when no broker is configured.
func NewGoChannelPublisher(logger *slog.Logger) EventPublisher {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
	return newWatermillPublisher(pubSub)
}
