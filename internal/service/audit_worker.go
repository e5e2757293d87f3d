package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/leadvaulthq/leadvault/internal/domain"
	"github.com/leadvaulthq/leadvault/internal/metrics"
)

// Auditor is an alias for the canonical domain.Auditor interface.
type Auditor = domain.Auditor

// AuditJob represents a single audit entry to be recorded.
type AuditJob struct {
	Action  string
	BuyerID *uuid.UUID
	Actor   uuid.UUID
	Detail  map[string]any
}

// AuditEnqueuer enqueues audit jobs.
type AuditEnqueuer interface {
	Enqueue(job *AuditJob)
}

// auditAsync enqueues an audit entry when a worker is configured.
func auditAsync(w AuditEnqueuer, action string, buyerID *uuid.UUID, actor uuid.UUID, detail map[string]any) {
	if w != nil {
		w.Enqueue(&AuditJob{Action: action, BuyerID: buyerID, Actor: actor, Detail: detail})
	}
}

// AuditWorker buffers audit entries and writes them via a single worker
// goroutine, keeping the audit log off the request path.
type AuditWorker struct {
	auditor Auditor
	log     *logrus.Logger
	jobs    chan *AuditJob
}

// NewAuditWorker creates an AuditWorker with the given queue capacity.
func NewAuditWorker(auditor Auditor, log *logrus.Logger, queueSize int) *AuditWorker {
	if queueSize <= 0 {
		queueSize = 1000
	}

	return &AuditWorker{
		auditor: auditor,
		log:     log,
		jobs:    make(chan *AuditJob, queueSize),
	}
}

// Enqueue adds an audit job. Non-blocking; drops the job if the queue is full.
func (w *AuditWorker) Enqueue(job *AuditJob) {
	select {
	case w.jobs <- job:
		metrics.AuditQueueDepth.Set(float64(len(w.jobs)))
	default:
		w.log.WithField("action", job.Action).Warn("audit queue full, dropping entry")
	}
}

// Run processes audit jobs until the context is cancelled, then drains
// remaining jobs.
func (w *AuditWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case job := <-w.jobs:
			w.process(job)
		}
	}
}

func (w *AuditWorker) drain() {
	for {
		select {
		case job := <-w.jobs:
			w.process(job)
		default:
			return
		}
	}
}

func (w *AuditWorker) process(job *AuditJob) {
	metrics.AuditQueueDepth.Set(float64(len(w.jobs)))

	if err := w.auditor.RecordAudit(
		context.Background(), job.Action, job.BuyerID, job.Actor, job.Detail,
	); err != nil {
		w.log.WithError(err).WithField("action", job.Action).Warn("audit record failed")
	}
}
