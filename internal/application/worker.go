package application

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"patriot-buddy/internal/domain"
)

var ErrQueueFull = domain.ErrQueueFull

// Task is the pending result of a submitted utterance.
type Task struct {
	ID   string
	Text string

	ctx  context.Context
	done chan struct{}
	ex   domain.Exchange
}

// Done is closed once the exchange is available.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Exchange must only be called after Done is closed.
func (t *Task) Exchange() domain.Exchange {
	return t.ex
}

func (t *Task) Wait(ctx context.Context) (domain.Exchange, error) {
	select {
	case <-ctx.Done():
		return domain.Exchange{}, ctx.Err()
	case <-t.done:
		return t.ex, nil
	}
}

// Worker owns the routing pipeline: one goroutine handles submitted
// utterances in order.
type Worker struct {
	router  *Router
	history History
	metrics Metrics
	logger  *slog.Logger
	tasks   chan *Task
	now     func() time.Time
}

func NewWorker(router *Router, history History, metrics Metrics, logger *slog.Logger, queueSize int) *Worker {
	if history == nil {
		history = NoopHistory{}
	}
	if metrics == nil {
		metrics = NoopMetrics{}
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Worker{
		router:  router,
		history: history,
		metrics: metrics,
		logger:  logger,
		tasks:   make(chan *Task, queueSize),
		now:     time.Now,
	}
}

func (w *Worker) Submit(ctx context.Context, text string) (*Task, error) {
	t := &Task{
		ID:   uuid.NewString(),
		Text: text,
		ctx:  ctx,
		done: make(chan struct{}),
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case w.tasks <- t:
		return t, nil
	default:
		return nil, ErrQueueFull
	}
}

// Ask submits text and blocks until its exchange is ready.
func (w *Worker) Ask(ctx context.Context, text string) (domain.Exchange, error) {
	t, err := w.Submit(ctx, text)
	if err != nil {
		return domain.Exchange{}, err
	}
	return t.Wait(ctx)
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case t := <-w.tasks:
			w.process(t)
		}
	}
}

func (w *Worker) process(t *Task) {
	start := w.now()
	res := w.router.Handle(t.ctx, t.Text)
	elapsed := w.now().Sub(start)

	t.ex = domain.Exchange{
		ID:         t.ID,
		Utterance:  res.Text,
		Intent:     res.Intent,
		Overridden: res.Overridden,
		Response:   res.Response,
		Duration:   elapsed,
		CreatedAt:  start,
	}
	close(t.done)

	w.metrics.ObserveRoute(res.Intent, res.Overridden, elapsed)
	if err := w.history.Record(context.WithoutCancel(t.ctx), t.ex); err != nil {
		w.logger.Error("recording exchange", "error", err, "id", t.ID)
	}
}
