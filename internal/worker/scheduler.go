package worker

// scheduler.go
// Ticker-driven sweeps: low stock, mileage alerts and birthdays.
// Each sweep runs under a Redis lock so only one replica executes it per tick.

import (
	"context"
	"fmt"
	"strings"
	"time"

	"autocenter/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	SweepEstoqueBaixo = "estoque_baixo"
	SweepAlertasKm    = "alertas_km"
	SweepAniversarios = "aniversarios"

	intervaloEstoqueBaixo = 6 * time.Hour
	intervaloAlertasKm    = time.Hour
	intervaloAniversarios = 24 * time.Hour

	sweepLockTTL = 5 * time.Minute

	// An alert fires once the vehicle is this close to the due mileage.
	margemAlertaKm = 1000
)

type ProdutoBaixoEstoqueLister interface {
	ListBaixoEstoque(ctx context.Context) ([]model.Produto, error)
}

type AlertaKmStore interface {
	ListAlertasPendentes(ctx context.Context) ([]model.AlertaKm, error)
	MarcarNotificado(ctx context.Context, id uuid.UUID, prioridade string) error
}

type AniversarianteLister interface {
	ListAniversariantes(ctx context.Context, dia time.Time) ([]model.Cliente, error)
}

// SweepLocker is satisfied by *infra.RedisLocker.
type SweepLocker interface {
	TryObtain(ctx context.Context, key string, ttl time.Duration) (release func(), ok bool, err error)
}

// SchedulerConfig holds all dependencies for the sweeps.
type SchedulerConfig struct {
	Produtos   ProdutoBaixoEstoqueLister
	Alertas    AlertaKmStore
	Clientes   AniversarianteLister
	Emails     EmailEnqueuer
	Locker     SweepLocker // nil runs sweeps unguarded (single replica)
	AlertEmail string
	ShopName   string
	Location   *time.Location
}

type Scheduler struct {
	cfg SchedulerConfig
	now func() time.Time
}

func NewScheduler(cfg SchedulerConfig) *Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.ShopName == "" {
		cfg.ShopName = "AutoCenter"
	}
	return &Scheduler{cfg: cfg, now: time.Now}
}

// Start launches one goroutine per sweep. They stop when ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.every(ctx, SweepEstoqueBaixo, intervaloEstoqueBaixo, s.EstoqueBaixo)
	s.every(ctx, SweepAlertasKm, intervaloAlertasKm, s.AlertasKm)
	s.every(ctx, SweepAniversarios, intervaloAniversarios, s.Aniversarios)
	log.Info().Msg("scheduler: started")
}

func (s *Scheduler) every(ctx context.Context, name string, interval time.Duration, sweep func(context.Context) (int, error)) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Str("sweep", name).Msg("scheduler: shutting down")
				return
			case <-ticker.C:
				s.RunLocked(ctx, name, sweep)
			}
		}
	}()
}

// RunLocked runs a sweep under lock:sweep:<name>. Returns false when another
// replica holds the lock or the sweep failed.
func (s *Scheduler) RunLocked(ctx context.Context, name string, sweep func(context.Context) (int, error)) bool {
	if s.cfg.Locker != nil {
		release, ok, err := s.cfg.Locker.TryObtain(ctx, "lock:sweep:"+name, sweepLockTTL)
		if err != nil {
			log.Error().Err(err).Str("sweep", name).Msg("scheduler: lock failed")
			return false
		}
		if !ok {
			log.Debug().Str("sweep", name).Msg("scheduler: lock held elsewhere, skipping tick")
			return false
		}
		defer release()
	}

	n, err := sweep(ctx)
	if err != nil {
		log.Error().Err(err).Str("sweep", name).Msg("scheduler: sweep failed")
		return false
	}
	log.Info().Str("sweep", name).Int("processados", n).Msg("scheduler: sweep done")
	return true
}

// ── Sweeps ───────────────────────────────────────────────────────────────────

// EstoqueBaixo mails the list of products at or below their minimum to
// AlertEmail. Returns the number of products listed.
func (s *Scheduler) EstoqueBaixo(ctx context.Context) (int, error) {
	produtos, err := s.cfg.Produtos.ListBaixoEstoque(ctx)
	if err != nil {
		return 0, err
	}
	if len(produtos) == 0 {
		return 0, nil
	}
	if s.cfg.AlertEmail == "" {
		log.Warn().Int("produtos", len(produtos)).Msg("scheduler: low stock found but ALERT_EMAIL is not set")
		return len(produtos), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d produto(s) com estoque baixo:\n\n", len(produtos))
	for _, p := range produtos {
		fmt.Fprintf(&b, "- %s (%s): %d/%d %s\n", p.Nome, p.Codigo, p.QuantidadeAtual, p.QuantidadeMinima, p.Unidade)
	}
	job := EmailJobPayload{
		To:      []string{s.cfg.AlertEmail},
		Subject: fmt.Sprintf("%s - Estoque baixo (%d)", s.cfg.ShopName, len(produtos)),
		Body:    b.String(),
	}
	if err := s.cfg.Emails.EnqueueEmail(ctx, job); err != nil {
		return 0, err
	}
	return len(produtos), nil
}

// AlertasKm marks every pending alert whose vehicle is within margemAlertaKm
// of the due mileage. Overdue alerts get priority ALTA, the rest MEDIA.
// Customers with an email get a reminder.
func (s *Scheduler) AlertasKm(ctx context.Context) (int, error) {
	alertas, err := s.cfg.Alertas.ListAlertasPendentes(ctx)
	if err != nil {
		return 0, err
	}

	processados := 0
	for _, a := range alertas {
		v := a.Veiculo
		if v == nil || v.KmAtual < a.KmProximoServico-margemAlertaKm {
			continue
		}
		restante := a.KmProximoServico - v.KmAtual
		prioridade := "MEDIA"
		if restante <= 0 {
			prioridade = "ALTA"
		}
		if err := s.cfg.Alertas.MarcarNotificado(ctx, a.ID, prioridade); err != nil {
			log.Error().Err(err).Str("alerta_id", a.ID.String()).Msg("scheduler: failed to mark alert")
			continue
		}
		processados++

		c := v.Cliente
		if c == nil || c.Email == nil || *c.Email == "" {
			continue
		}
		job := EmailJobPayload{
			To:      []string{*c.Email},
			Subject: fmt.Sprintf("%s - Lembrete de manutenção: %s", s.cfg.ShopName, a.TipoServico),
			Body:    s.corpoLembrete(c.Nome, v, a, restante),
		}
		if err := s.cfg.Emails.EnqueueEmail(ctx, job); err != nil {
			log.Error().Err(err).Str("alerta_id", a.ID.String()).Msg("scheduler: failed to enqueue reminder")
		}
	}
	return processados, nil
}

func (s *Scheduler) corpoLembrete(nome string, v *model.Veiculo, a model.AlertaKm, restante int) string {
	situacao := fmt.Sprintf("faltam %d km para o serviço", restante)
	if restante <= 0 {
		situacao = fmt.Sprintf("o serviço está vencido há %d km", -restante)
	}
	return fmt.Sprintf("Olá %s,\n\nSeu %s %s está com %d km e %s de %s (previsto para %d km).\n\nAgende uma visita.\n\n%s",
		nome, v.Marca, v.Modelo, v.KmAtual, situacao, a.TipoServico, a.KmProximoServico, s.cfg.ShopName)
}

// Aniversarios sends a greeting to active customers born on today's day and
// month. Customers without email are counted but not mailed.
func (s *Scheduler) Aniversarios(ctx context.Context) (int, error) {
	hoje := s.now().In(s.cfg.Location)
	clientes, err := s.cfg.Clientes.ListAniversariantes(ctx, hoje)
	if err != nil {
		return 0, err
	}
	for _, c := range clientes {
		if c.Email == nil || *c.Email == "" {
			continue
		}
		job := EmailJobPayload{
			To:      []string{*c.Email},
			Subject: "Feliz Aniversário!",
			Body: fmt.Sprintf("Olá %s!\n\nA equipe da %s deseja um Feliz Aniversário!\n\nEstamos sempre à disposição para cuidar do seu veículo.\n\nAtenciosamente,\nEquipe %s",
				c.Nome, s.cfg.ShopName, s.cfg.ShopName),
		}
		if err := s.cfg.Emails.EnqueueEmail(ctx, job); err != nil {
			log.Error().Err(err).Str("cliente_id", c.ID.String()).Msg("scheduler: failed to enqueue birthday email")
		}
	}
	return len(clientes), nil
}
