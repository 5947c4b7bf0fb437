package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the payload of QueueEmail jobs.
type EmailJobPayload struct {
	To         []string `json:"to"`
	Subject    string   `json:"subject"`
	Body       string   `json:"body"`
	AttachPath string   `json:"attach_path,omitempty"`
}

// Sender is satisfied by *infra.Mailer.
type Sender interface {
	Send(to []string, subject, body, attachPath string) error
}

type EmailWorker struct {
	mailer Sender
}

func NewEmailWorker(mailer Sender) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var p EmailJobPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("%w: email payload: %v", ErrPermanent, err)
	}
	if len(p.To) == 0 {
		log.Warn().Str("job", JobEmail).Msg("email_worker: no recipients, skipping")
		return nil
	}
	if err := w.mailer.Send(p.To, p.Subject, p.Body, p.AttachPath); err != nil {
		return err
	}
	log.Info().Str("job", JobEmail).Strs("to", p.To).Str("subject", p.Subject).Msg("email_worker: sent")
	return nil
}
