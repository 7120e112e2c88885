package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoopSender satisfies the sender interface without delivering anything.
// Local development runs with it so no Resend key is needed; each would-be
// send still shows up in the log.
type NoopSender struct{}

// NewNoopSender returns a sender that only logs.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send records the email in the log and reports success.
// POST: no delivery happens; the MessageID is synthetic
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	slog.Info("noop_email_send", "to", req.To, "subject", req.Subject)
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}

// SendBatch records each email in the log and reports success.
// POST: no delivery happens; one synthetic result per request
func (s *NoopSender) SendBatch(_ context.Context, reqs []SendRequest) ([]SendResult, error) {
	var results []SendResult
	for i, req := range reqs {
		slog.Info("noop_email_batch", "index", i, "to", req.To, "subject", req.Subject)
		results = append(results, SendResult{
			MessageID: fmt.Sprintf("noop-batch-%d-%d", time.Now().UnixNano(), i),
			SentAt:    time.Now(),
		})
	}
	return results, nil
}
