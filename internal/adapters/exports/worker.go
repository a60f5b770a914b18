// Package exports produces plan artifacts (JSON, SVG, CSV) through an
// asynchronous worker and exposes the HTTP surface for plans, live results,
// and export jobs.
package exports

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"plancore/internal/blob"
	"plancore/pkg/domain"
)

// Format identifies one artifact serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatSVG  Format = "svg"
	FormatCSV  Format = "csv"
)

// ParseFormat maps a user-supplied format name onto a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatSVG:
		return FormatSVG, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// ContentType returns the MIME type served for artifacts of this format.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatCSV:
		return "text/csv"
	default:
		return "application/json"
	}
}

// Status describes the lifecycle stage of an export job.
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Artifact captures one stored export output.
type Artifact struct {
	ID          string    `json:"id"`
	Format      Format    `json:"format"`
	Key         string    `json:"key"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Record tracks an export job and its resulting artifacts.
type Record struct {
	ID          string     `json:"id"`
	PlanID      string     `json:"plan_id"`
	Formats     []Format   `json:"formats"`
	Status      Status     `json:"status"`
	Error       string     `json:"error,omitempty"`
	Artifacts   []Artifact `json:"artifacts,omitempty"`
	RequestedBy string     `json:"requested_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (r Record) copy() Record {
	dup := r
	dup.Formats = append([]Format(nil), r.Formats...)
	if len(r.Artifacts) > 0 {
		dup.Artifacts = append([]Artifact(nil), r.Artifacts...)
	}
	return dup
}

// Input is an enqueue request.
type Input struct {
	PlanID      string
	Formats     []Format
	RequestedBy string
}

// PlanEvaluator is the slice of the plan service the worker consumes.
type PlanEvaluator interface {
	GetPlan(ctx context.Context, id string) (domain.Plan, error)
	Evaluate(ctx context.Context, id string) (domain.Evaluation, error)
}

// Scheduler queues export jobs and exposes their status.
type Scheduler interface {
	EnqueueExport(ctx context.Context, input Input) (Record, error)
	GetExport(id string) (Record, bool)
}

// Worker renders export jobs asynchronously into a blob store.
type Worker struct {
	svc    PlanEvaluator
	ref    domain.ReferenceData
	store  blob.Store
	logger *slog.Logger

	queue chan task
	mu    sync.RWMutex
	jobs  map[string]*Record

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type task struct {
	id string
}

// NewWorker constructs an export worker. A nil logger discards output.
func NewWorker(svc PlanEvaluator, ref domain.ReferenceData, store blob.Store, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		svc:    svc,
		ref:    ref,
		store:  store,
		logger: logger,
		queue:  make(chan task, 32),
		jobs:   make(map[string]*Record),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins processing queued jobs.
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.loop()
}

// Stop halts the worker and waits for the in-flight job to finish.
func (w *Worker) Stop(ctx context.Context) error {
	w.cancel()
	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *Worker) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case t := <-w.queue:
			w.process(t.id)
		}
	}
}

// EnqueueExport validates the request and schedules a job.
func (w *Worker) EnqueueExport(ctx context.Context, input Input) (Record, error) {
	if strings.TrimSpace(input.PlanID) == "" {
		return Record{}, fmt.Errorf("plan id required")
	}
	if _, err := w.svc.GetPlan(ctx, input.PlanID); err != nil {
		return Record{}, err
	}

	formats := input.Formats
	if len(formats) == 0 {
		formats = []Format{FormatJSON, FormatSVG, FormatCSV}
	}
	uniq := make([]Format, 0, len(formats))
	seen := make(map[Format]struct{})
	for _, f := range formats {
		if _, err := ParseFormat(string(f)); err != nil {
			return Record{}, err
		}
		if _, dup := seen[f]; dup {
			continue
		}
		uniq = append(uniq, f)
		seen[f] = struct{}{}
	}

	now := time.Now().UTC()
	record := Record{
		ID:          uuid.NewString(),
		PlanID:      input.PlanID,
		Formats:     uniq,
		Status:      StatusQueued,
		RequestedBy: input.RequestedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	w.mu.Lock()
	w.jobs[record.ID] = &record
	snapshot := record.copy()
	w.mu.Unlock()

	select {
	case w.queue <- task{id: record.ID}:
	default:
		w.fail(record.ID, "export queue full")
		return Record{}, fmt.Errorf("export queue full")
	}

	w.logger.Info("export queued", "export_id", record.ID, "plan_id", input.PlanID, "formats", len(uniq))
	return snapshot, nil
}

// GetExport returns a snapshot of one export job.
func (w *Worker) GetExport(id string) (Record, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	record, ok := w.jobs[id]
	if !ok {
		return Record{}, false
	}
	return record.copy(), true
}

// ListExports returns snapshots of every known job, newest first.
func (w *Worker) ListExports() []Record {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Record, 0, len(w.jobs))
	for _, record := range w.jobs {
		out = append(out, record.copy())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (w *Worker) process(id string) {
	record, ok := w.GetExport(id)
	if !ok {
		return
	}
	w.setStatus(id, StatusRunning)

	plan, err := w.svc.GetPlan(w.ctx, record.PlanID)
	if err != nil {
		w.fail(id, fmt.Sprintf("load plan: %v", err))
		return
	}
	ev, err := w.svc.Evaluate(w.ctx, record.PlanID)
	if err != nil {
		w.fail(id, fmt.Sprintf("evaluate plan: %v", err))
		return
	}

	artifacts := make([]Artifact, 0, len(record.Formats))
	for _, format := range record.Formats {
		payload, err := w.render(format, plan, ev)
		if err != nil {
			w.fail(id, err.Error())
			return
		}
		artifactID := uuid.NewString()
		key := fmt.Sprintf("exports/%s/%s.%s", id, artifactID, format)
		info, err := w.store.Put(w.ctx, key, bytes.NewReader(payload), blob.PutOptions{
			ContentType: format.ContentType(),
			Metadata:    map[string]string{"plan_id": plan.ID, "export_id": id},
		})
		if err != nil {
			w.fail(id, fmt.Sprintf("store artifact: %v", err))
			return
		}
		artifacts = append(artifacts, Artifact{
			ID:          artifactID,
			Format:      format,
			Key:         key,
			ContentType: info.ContentType,
			SizeBytes:   info.Size,
			URL:         info.URL,
			CreatedAt:   info.LastModified,
		})
	}
	w.complete(id, artifacts)
}

func (w *Worker) render(format Format, plan domain.Plan, ev domain.Evaluation) ([]byte, error) {
	return Render(format, plan, ev, w.ref)
}

func (w *Worker) setStatus(id string, status Status) {
	w.mu.Lock()
	if record, ok := w.jobs[id]; ok {
		record.Status = status
		record.UpdatedAt = time.Now().UTC()
	}
	w.mu.Unlock()
}

func (w *Worker) complete(id string, artifacts []Artifact) {
	now := time.Now().UTC()
	w.mu.Lock()
	if record, ok := w.jobs[id]; ok {
		record.Status = StatusSucceeded
		record.Error = ""
		record.Artifacts = artifacts
		record.UpdatedAt = now
		record.CompletedAt = &now
	}
	w.mu.Unlock()
	w.logger.Info("export finished", "export_id", id, "artifacts", len(artifacts))
}

func (w *Worker) fail(id, reason string) {
	now := time.Now().UTC()
	w.mu.Lock()
	if record, ok := w.jobs[id]; ok {
		record.Status = StatusFailed
		record.Error = reason
		record.UpdatedAt = now
		record.CompletedAt = &now
	}
	w.mu.Unlock()
	w.logger.Warn("export failed", "export_id", id, "reason", reason)
}
