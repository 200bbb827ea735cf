package main

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nats-io/nats.go"
)

// Job is one delivered generation event. Ack and Nak settle it with the
// broker.
type Job struct {
	Subject string
	Data    []byte
	Ack     func() error
	Nak     func() error
}

func JobFromMsg(msg *nats.Msg) Job {
	return Job{
		Subject: msg.Subject,
		Data:    msg.Data,
		Ack:     func() error { return msg.Ack() },
		Nak:     func() error { return msg.Nak() },
	}
}

// RecordFunc persists one encoded generation event.
type RecordFunc func(ctx context.Context, data []byte) error

// WorkerPool records generation events on a fixed number of goroutines fed
// from a bounded queue.
type WorkerPool struct {
	queue  chan Job
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
	record RecordFunc
}

func NewWorkerPool(ctx context.Context, workers, queueSize int, record RecordFunc) *WorkerPool {
	if workers < 1 {
		workers = 2
	}
	if queueSize < 1 {
		queueSize = 100
	}

	poolCtx, cancel := context.WithCancel(ctx)

	pool := &WorkerPool{
		queue:  make(chan Job, queueSize),
		ctx:    poolCtx,
		cancel: cancel,
		record: record,
	}

	pool.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go pool.run(i)
	}

	return pool
}

func (w *WorkerPool) run(id int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case job := <-w.queue:
			w.settle(id, job)
		}
	}
}

func (w *WorkerPool) settle(worker int, job Job) {
	err := w.record(w.ctx, job.Data)
	if err == nil {
		if err := job.Ack(); err != nil {
			slog.Error("failed to ack generation event", "worker", worker, "subject", job.Subject, "err", err)
		}
		return
	}

	slog.Error("failed to record generation event", "worker", worker, "subject", job.Subject, "err", err)
	if err := job.Nak(); err != nil {
		slog.Error("failed to return generation event for redelivery", "worker", worker, "subject", job.Subject, "err", err)
	}
}

// Submit queues a job, blocking while the queue is full. It reports false
// once ctx or the pool is done.
func (w *WorkerPool) Submit(ctx context.Context, job Job) bool {
	select {
	case w.queue <- job:
		return true
	case <-ctx.Done():
		return false
	case <-w.ctx.Done():
		return false
	}
}

// Stop cancels the workers. Jobs still queued stay unacked and the broker
// redelivers them.
func (w *WorkerPool) Stop() {
	w.cancel()
}

func (w *WorkerPool) Wait() {
	w.wg.Wait()
}
