package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/jobdeck-dev/jobdeck/internal/logger"
)

const (
	maxAttempts  = 3
	retryBackoff = 60 * time.Second
	moveInterval = 5 * time.Second
)

// Transport delivers a rendered message to an external mail relay.
type Transport interface {
	Send(to, subject, htmlBody, textBody string) error
}

// Dispatcher owns the worker pool that drains the queue. Enqueue never blocks
// on mail delivery; workers process jobs independently and in parallel with
// no ordering guarantee. There is no cancel-in-flight: an enqueued job runs
// to terminal success or exhausted retries.
type Dispatcher struct {
	queue     Queue
	transport Transport
	workers   int

	wg sync.WaitGroup
}

func New(queue Queue, transport Transport, workers int) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	return &Dispatcher{queue: queue, transport: transport, workers: workers}
}

// Enqueue places a job on the queue and returns its handle immediately.
// It fails only when the queue itself is unreachable.
func (d *Dispatcher) Enqueue(ctx context.Context, templateId string, params map[string]string, recipient string) (string, error) {
	job := NewJob(templateId, params, recipient)
	if err := d.queue.Enqueue(ctx, job); err != nil {
		logger.Log.Error("failed to enqueue dispatch job", "template", templateId, "recipient", recipient, "error", err)
		return "", err
	}
	jobsEnqueued.Inc()
	logger.Log.Info("dispatch job enqueued", "job_id", job.Id, "template", templateId, "recipient", recipient)
	return job.Id, nil
}

// Run starts the worker pool and the delayed-job mover, then blocks until ctx
// is cancelled and all workers have drained.
func (d *Dispatcher) Run(ctx context.Context) {
	logger.Log.Info("dispatcher started", "workers", d.workers)

	d.wg.Add(1)
	go d.moveDueLoop(ctx)

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}

	d.wg.Wait()
	logger.Log.Info("dispatcher stopped")
}

func (d *Dispatcher) moveDueLoop(ctx context.Context) {
	defer d.wg.Done()
	ticker := time.NewTicker(moveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := d.queue.MoveDue(ctx); err != nil {
				logger.Log.Error("failed to promote delayed jobs", "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()

	for {
		if ctx.Err() != nil {
			return
		}
		job, err := d.queue.Dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Log.Error("failed to dequeue job", "worker", id, "error", err)
			time.Sleep(time.Second)
			continue
		}
		if job == nil {
			continue // poll timeout
		}
		d.attemptDelivery(ctx, *job)
	}
}

// attemptDelivery renders and sends one job. A render failure will not
// succeed on retry, so the job is dropped immediately. A transport failure
// reschedules the job with a fixed backoff until the attempt budget runs out.
func (d *Dispatcher) attemptDelivery(ctx context.Context, job Job) {
	subject, htmlBody, textBody, err := render(job.Template, job.Params)
	if err != nil {
		logger.Log.Error("template render failed, dropping job", "job_id", job.Id, "template", job.Template, "error", err)
		jobsDropped.Inc()
		return
	}

	if err := d.transport.Send(job.Recipient, subject, htmlBody, textBody); err != nil {
		job.Attempts++
		if job.Attempts >= maxAttempts {
			logger.Log.Error("dispatch job failed permanently", "job_id", job.Id, "recipient", job.Recipient, "attempts", job.Attempts, "error", err)
			jobsDropped.Inc()
			return
		}
		logger.Log.Warn("delivery failed, rescheduling", "job_id", job.Id, "attempts", job.Attempts, "backoff", retryBackoff, "error", err)
		if err := d.queue.EnqueueDelayed(ctx, job, retryBackoff); err != nil {
			logger.Log.Error("failed to reschedule job", "job_id", job.Id, "error", err)
			jobsDropped.Inc()
			return
		}
		jobsRetried.Inc()
		return
	}

	jobsSent.Inc()
	logger.Log.Info("email sent", "job_id", job.Id, "template", job.Template, "recipient", job.Recipient)
}
