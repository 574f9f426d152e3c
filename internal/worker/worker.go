package worker

import (
	"context"
	"log/slog"

	domain "pdfshrink/internal/domain/compression"
)

// Worker runs compression requests in isolated background goroutines.
// Each request owns its document graph; nothing is shared between
// concurrent requests, and a request's goroutine lives exactly as long
// as the request.
type Worker struct {
	service domain.Service
	logger  *slog.Logger
}

// New creates a new worker instance
func New(service domain.Service, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{service: service, logger: logger}
}

// Submit starts one compression request and returns its message
// channel. The channel carries progress messages followed by exactly
// one terminal message and is then closed. Cancelling ctx discards the
// request's document graph and suppresses any further messages.
func (w *Worker) Submit(ctx context.Context, request domain.Request) <-chan Message {
	messages := make(chan Message)

	go func() {
		defer close(messages)

		send := func(m Message) {
			select {
			case messages <- m:
			case <-ctx.Done():
			}
		}

		emit := func(update domain.ProgressUpdate) {
			u := update
			send(Message{Progress: &u})
		}

		result, err := w.service.Compress(ctx, request, emit)
		if ctx.Err() != nil {
			// Cancelled: no partial result is salvageable.
			return
		}
		if err != nil {
			w.logger.Error("compression request failed", "error", err)
			send(Message{Error: err.Error()})
			return
		}
		send(Message{Result: result})
	}()

	return messages
}
