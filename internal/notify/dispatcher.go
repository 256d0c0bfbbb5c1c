package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/amvenit/amvenit/internal/adapter/mailer"
)

// Dispatcher delivers admin notification emails in the background. Email is
// best-effort: a full queue or a provider failure never blocks or fails the
// originating request.
type Dispatcher struct {
	client  mailer.Client
	to      string
	workers int
	logger  *slog.Logger

	jobs   chan mailer.Message
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDispatcher constructs the email worker pool.
func NewDispatcher(client mailer.Client, to string, workers, queueSize int, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Dispatcher{
		client:  client,
		to:      to,
		workers: workers,
		logger:  logger,
		jobs:    make(chan mailer.Message, queueSize),
	}
}

// Start launches background delivery workers.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop drains in-flight deliveries and waits for workers to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Enqueue schedules a message for the configured admin address. It never
// blocks: when the queue is full the message is dropped with a warning.
func (d *Dispatcher) Enqueue(msg mailer.Message) bool {
	if d.to == "" {
		d.logger.Warn("admin email not configured, notification dropped", slog.String("subject", msg.Subject))
		return false
	}
	msg.To = d.to

	select {
	case d.jobs <- msg:
		return true
	default:
		d.logger.Warn("notification queue full, message dropped", slog.String("subject", msg.Subject))
		return false
	}
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-d.jobs:
			if !ok {
				return
			}
			if err := d.client.Send(ctx, msg); err != nil {
				d.logger.Error("notification send failed",
					slog.String("subject", msg.Subject),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}
