package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"dealscope/server/config"
	"dealscope/server/internal/models"
	"dealscope/server/internal/queue"
	"dealscope/server/internal/store"
)

// BatchProcessor drains listing batches off the queue and replaces the
// snapshot store with each one, retrying on failure.
type BatchProcessor struct {
	store     *store.Store
	logger    *logrus.Logger
	config    *config.Config
	queue     *queue.ListingQueue
	waitGroup sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewBatchProcessor creates a new batch processor instance.
func NewBatchProcessor(st *store.Store, q *queue.ListingQueue, cfg *config.Config, logger *logrus.Logger) *BatchProcessor {
	ctx, cancel := context.WithCancel(context.Background())
	return &BatchProcessor{
		store:  st,
		queue:  q,
		config: cfg,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins processing batches from the queue.
func (p *BatchProcessor) Start() {
	for i := 0; i < p.config.Ingest.ProcessorCount; i++ {
		p.waitGroup.Add(1)
		go p.processLoop()
	}
}

// Stop gracefully shuts down the processor.
func (p *BatchProcessor) Stop() {
	p.cancel()
	p.waitGroup.Wait()
}

func (p *BatchProcessor) processLoop() {
	defer p.waitGroup.Done()

	p.queue.Subscribe(func(batch []models.Property) error {
		return p.processBatch(batch)
	})
}

// processBatch replaces the snapshot with a single batch, with retry logic.
func (p *BatchProcessor) processBatch(batch []models.Property) error {
	var err error
	for attempt := 0; attempt <= p.config.Ingest.MaxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying batch processing, attempt %d of %d", attempt, p.config.Ingest.MaxRetries)
			time.Sleep(time.Duration(p.config.Ingest.RetryDelay) * time.Second)
		}

		err = p.store.ReplaceProperties(batch)
		if err == nil {
			p.logger.Infof("Successfully stored snapshot of %d properties", len(batch))
			return nil
		}

		p.logger.Errorf("Batch processing failed: %v", err)
	}

	return fmt.Errorf("failed to process batch after %d attempts: %w", p.config.Ingest.MaxRetries, err)
}
