package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"autocenter/internal/infra"
	"autocenter/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// OrdemConcluidaPayload is the payload of QueueOrdemConcluida jobs.
type OrdemConcluidaPayload struct {
	OrdemID      string  `json:"ordem_id"`
	ClienteEmail *string `json:"cliente_email,omitempty"`
}

// OrdemLoader loads an order with customer, vehicle and items.
type OrdemLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrdemServico, error)
}

// EmailEnqueuer is satisfied by *Dispatcher.
type EmailEnqueuer interface {
	EnqueueEmail(ctx context.Context, payload EmailJobPayload) error
}

// OrdemWorker renders the PDF of a completed order and, when the customer has
// an email, queues it as an attachment.
type OrdemWorker struct {
	ordens   OrdemLoader
	emails   EmailEnqueuer
	pdfPath  string
	shopName string
	gerarPDF func(o *model.OrdemServico, shopName, storagePath string) (string, error)
}

func NewOrdemWorker(ordens OrdemLoader, emails EmailEnqueuer, pdfPath, shopName string) *OrdemWorker {
	return &OrdemWorker{
		ordens:   ordens,
		emails:   emails,
		pdfPath:  pdfPath,
		shopName: shopName,
		gerarPDF: infra.GenerateOrdemPDF,
	}
}

func (w *OrdemWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var p OrdemConcluidaPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return fmt.Errorf("%w: ordem payload: %v", ErrPermanent, err)
	}
	id, err := uuid.Parse(p.OrdemID)
	if err != nil {
		return fmt.Errorf("%w: ordem_id %q", ErrPermanent, p.OrdemID)
	}

	o, err := w.ordens.FindByID(ctx, id)
	if err != nil {
		return err
	}
	path, err := w.gerarPDF(o, w.shopName, w.pdfPath)
	if err != nil {
		return err
	}
	log.Info().Str("job", JobOrdemConcluida).Str("numero", o.Numero).Str("pdf", path).Msg("ordem_worker: PDF generated")

	if p.ClienteEmail == nil || *p.ClienteEmail == "" {
		return nil
	}
	nome := "cliente"
	if o.Cliente != nil {
		nome = o.Cliente.Nome
	}
	job := EmailJobPayload{
		To:      []string{*p.ClienteEmail},
		Subject: fmt.Sprintf("%s - Ordem de Serviço %s concluída", w.shopName, o.Numero),
		Body: fmt.Sprintf("Olá %s,\n\nSua ordem de serviço %s foi concluída.\nValor total: R$ %s\n\nSegue em anexo o documento da ordem.\n\n%s",
			nome, o.Numero, o.ValorTotal.StringFixed(2), w.shopName),
		AttachPath: path,
	}
	if err := w.emails.EnqueueEmail(ctx, job); err != nil {
		return err
	}
	log.Info().Str("job", JobOrdemConcluida).Str("numero", o.Numero).Msg("ordem_worker: email enqueued")
	return nil
}
