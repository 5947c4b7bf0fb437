package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueOrdemConcluida = "jobs:ordem_concluida"
	QueueEmail          = "jobs:email"

	JobOrdemConcluida = "ordem_concluida"
	JobEmail          = "email"

	// MaxJobAttempts counts the first run; a job failing this many times
	// goes to the DLQ.
	MaxJobAttempts = 3
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueOrdemConcluida schedules PDF generation and the customer email for a
// completed order.
func (d *Dispatcher) EnqueueOrdemConcluida(ctx context.Context, payload OrdemConcluidaPayload) error {
	return d.enqueue(ctx, QueueOrdemConcluida, JobOrdemConcluida, payload)
}

func (d *Dispatcher) EnqueueEmail(ctx context.Context, payload EmailJobPayload) error {
	return d.enqueue(ctx, QueueEmail, JobEmail, payload)
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: jobType, Payload: data})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// Handler processes one job payload. A returned error triggers a retry.
type Handler func(ctx context.Context, payload json.RawMessage) error

// ErrPermanent marks failures that retrying cannot fix (bad payloads).
var ErrPermanent = errors.New("permanent job failure")

// Pool consumes every registered queue with a fixed number of goroutines.
type Pool struct {
	rdb      *redis.Client
	handlers map[string]Handler // keyed by queue
	backoff  func(attempt int) time.Duration
	toDLQ    func(ctx context.Context, queue string, job Job, reason string, attempts int)
	pop      func(ctx context.Context, queues []string) ([]string, error)
	// popRetry is the pause after a failed BRPOP (Redis down, bad auth).
	popRetry time.Duration
}

func NewPool(rdb *redis.Client) *Pool {
	p := &Pool{
		rdb:      rdb,
		handlers: make(map[string]Handler),
		backoff:  func(attempt int) time.Duration { return time.Duration(1<<uint(attempt-1)) * time.Second },
		popRetry: 2 * time.Second,
	}
	p.pop = func(ctx context.Context, queues []string) ([]string, error) {
		// Waits up to 5s then loops to check ctx.
		return p.rdb.BRPop(ctx, 5*time.Second, queues...).Result()
	}
	p.toDLQ = func(ctx context.Context, queue string, job Job, reason string, attempts int) {
		SendToDLQ(ctx, p.rdb, queue, job.Type, job.Payload, reason, attempts)
	}
	return p
}

// Register binds a handler to a queue. Call before Start.
func (p *Pool) Register(queue string, h Handler) {
	p.handlers[queue] = h
}

// Start launches numWorkers goroutines consuming every registered queue.
// Each goroutine blocks on BRPOP, so idle workers cost nothing.
func (p *Pool) Start(ctx context.Context, numWorkers int) {
	queues := make([]string, 0, len(p.handlers))
	for q := range p.handlers {
		queues = append(queues, q)
	}
	for i := 0; i < numWorkers; i++ {
		go p.run(ctx, i, queues)
	}
	log.Info().Int("workers", numWorkers).Strs("queues", queues).Msg("worker pool started")
}

func (p *Pool) run(ctx context.Context, id int, queues []string) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Msg("worker shutting down")
			return
		default:
			result, err := p.pop(ctx, queues)
			if err != nil && !errors.Is(err, redis.Nil) {
				if ctx.Err() != nil {
					continue
				}
				log.Warn().Err(err).Int("worker", id).Msg("worker: BRPOP failed, backing off")
				select {
				case <-ctx.Done():
				case <-time.After(p.popRetry):
				}
				continue
			}
			if len(result) < 2 {
				continue
			}
			p.process(ctx, result[0], result[1])
		}
	}
}

// process runs a raw job through its handler with retries. It reports
// whether the job finally succeeded.
func (p *Pool) process(ctx context.Context, queue, raw string) bool {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("worker: failed to unmarshal job")
		quoted, _ := json.Marshal(raw)
		p.toDLQ(ctx, queue, Job{Type: "desconhecido", Payload: quoted}, err.Error(), 0)
		return false
	}
	h, ok := p.handlers[queue]
	if !ok {
		log.Error().Str("queue", queue).Msg("worker: no handler registered")
		return false
	}

	var lastErr error
	attempts := 0
	for attempts < MaxJobAttempts {
		if attempts > 0 {
			select {
			case <-ctx.Done():
				return false
			case <-time.After(p.backoff(attempts)):
			}
		}
		attempts++
		if lastErr = h(ctx, job.Payload); lastErr == nil {
			return true
		}
		log.Warn().Err(lastErr).Str("job", job.Type).Int("attempt", attempts).Msg("worker: job failed")
		if errors.Is(lastErr, ErrPermanent) {
			break
		}
	}
	p.toDLQ(ctx, queue, job, lastErr.Error(), attempts)
	return false
}
