package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAuditWorker_ProcessesJob(t *testing.T) {
	auditor := &mockAuditor{}
	aw := NewAuditWorker(auditor, testLogger(), 10)
	ctx, cancel := context.WithCancel(context.Background())
	go aw.Run(ctx)

	buyerID := uuid.New()
	actorID := uuid.New()
	aw.Enqueue(&AuditJob{
		Action:  "buyer.create",
		BuyerID: &buyerID,
		Actor:   actorID,
		Detail:  map[string]any{"fullName": "Asha Rao"},
	})

	time.Sleep(50 * time.Millisecond)
	cancel()

	calls := auditor.getCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 audit call, got %d", len(calls))
	}
	if calls[0].Action != "buyer.create" {
		t.Errorf("action = %q, want buyer.create", calls[0].Action)
	}
	if calls[0].BuyerID == nil || *calls[0].BuyerID != buyerID {
		t.Errorf("buyer_id = %v, want %s", calls[0].BuyerID, buyerID)
	}
	if calls[0].Actor != actorID {
		t.Errorf("actor = %s, want %s", calls[0].Actor, actorID)
	}
}

func TestAuditWorker_DropsWhenFull(t *testing.T) {
	auditor := &mockAuditor{}

	// Queue size 2, don't start the worker so it can't drain.
	aw := NewAuditWorker(auditor, testLogger(), 2)

	aw.Enqueue(&AuditJob{Action: "a"})
	aw.Enqueue(&AuditJob{Action: "b"})

	// This one must be dropped without blocking.
	done := make(chan struct{})
	go func() {
		aw.Enqueue(&AuditJob{Action: "c"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Enqueue blocked when queue was full")
	}

	if len(aw.jobs) != 2 {
		t.Errorf("queue len = %d, want 2", len(aw.jobs))
	}
}

func TestAuditWorker_CancelDrains(t *testing.T) {
	auditor := &mockAuditor{}
	aw := NewAuditWorker(auditor, testLogger(), 100)

	// Enqueue before the worker starts, then cancel immediately: Run must
	// drain the backlog before returning.
	for i := 0; i < 5; i++ {
		aw.Enqueue(&AuditJob{Action: "buyer.update"})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		aw.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if got := len(auditor.getCalls()); got != 5 {
		t.Errorf("processed = %d, want 5 (drain on shutdown)", got)
	}
}
