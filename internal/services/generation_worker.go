package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"travelguide/internal/models/response_models"
	"travelguide/pkg/utils"
)

type GenerationJob struct {
	TripID   uuid.UUID
	UserID   uuid.UUID
	Feedback string
}

type GenerationResult struct {
	TripID    uuid.UUID
	Itinerary *response_models.ItineraryResponse
	Err       error
}

// ItineraryGenerator is the slice of ItineraryServiceInterface the worker needs.
type ItineraryGenerator interface {
	GenerateItinerary(ctx context.Context, userID, tripID uuid.UUID, feedback string) (*response_models.ItineraryResponse, error)
}

type GenerationQueue interface {
	Enqueue(job GenerationJob) (<-chan GenerationResult, error)
}

type queuedJob struct {
	job    GenerationJob
	result chan GenerationResult
}

// GenerationWorker runs itinerary generation off the request goroutine.
type GenerationWorker struct {
	generator ItineraryGenerator
	workers   int
	jobs      chan queuedJob
	logger    *zap.Logger

	mu      sync.RWMutex
	stopped bool
	started bool
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewGenerationWorker(generator ItineraryGenerator, workers, queueSize int, logger *zap.Logger) *GenerationWorker {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &GenerationWorker{
		generator: generator,
		workers:   workers,
		jobs:      make(chan queuedJob, queueSize),
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (w *GenerationWorker) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started || w.stopped {
		return
	}
	w.started = true

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go w.loop(i)
	}
	w.logger.Info("Generation worker started", zap.Int("workers", w.workers), zap.Int("queue_size", cap(w.jobs)))
}

// Enqueue never blocks. The returned channel receives exactly one result.
func (w *GenerationWorker) Enqueue(job GenerationJob) (<-chan GenerationResult, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.stopped {
		return nil, utils.ErrWorkerStopped
	}

	q := queuedJob{job: job, result: make(chan GenerationResult, 1)}
	select {
	case w.jobs <- q:
		return q.result, nil
	default:
		return nil, utils.ErrQueueFull
	}
}

// Stop refuses new jobs and waits for queued ones to finish. When ctx expires first,
// in-flight generations are cancelled.
func (w *GenerationWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.stopped = true
	close(w.jobs)
	started := w.started
	w.mu.Unlock()

	if !started {
		for q := range w.jobs {
			q.result <- GenerationResult{TripID: q.job.TripID, Err: utils.ErrWorkerStopped}
		}
		w.cancel()
		return nil
	}

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.cancel()
		w.logger.Info("Generation worker stopped")
		return nil
	case <-ctx.Done():
		w.cancel()
		<-done
		return ctx.Err()
	}
}

func (w *GenerationWorker) loop(id int) {
	defer w.wg.Done()
	for q := range w.jobs {
		w.run(id, q)
	}
}

func (w *GenerationWorker) run(id int, q queuedJob) {
	log := w.logger.With(zap.Int("worker", id), zap.String("trip_id", q.job.TripID.String()))

	defer func() {
		if r := recover(); r != nil {
			log.Error("Generation job panicked", zap.Any("panic", r))
			q.result <- GenerationResult{TripID: q.job.TripID, Err: fmt.Errorf("generation panicked: %v", r)}
		}
	}()

	itinerary, err := w.generator.GenerateItinerary(w.ctx, q.job.UserID, q.job.TripID, q.job.Feedback)
	if err != nil {
		log.Warn("Background generation failed", zap.Error(err))
	} else {
		log.Info("Background generation finished", zap.Int("version", itinerary.Version))
	}
	q.result <- GenerationResult{TripID: q.job.TripID, Itinerary: itinerary, Err: err}
}
