package kafka

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pinkcart/go-backend/internal/usecase"
	"github.com/pinkcart/go-backend/pkg/logger"
)

// Listener будит воркер, когда в outbox появились события.
type Listener interface {
	Listen(ctx context.Context, wake chan<- struct{}) error
}

// OutboxWorker переносит события из outbox в Kafka.
// Событие помечается processed только после успешной отправки; при ошибке возвращается в pending.
type OutboxWorker struct {
	repo         usecase.OutboxRepository
	logger       logger.Logger
	producer     usecase.MessageProducer
	listener     Listener
	batchSize    int
	pollInterval time.Duration
	wake         chan struct{}
	stop         chan struct{}
	stopOnce     sync.Once
	wg           sync.WaitGroup
}

// NewOutboxWorker создаёт воркер. listener может быть nil: тогда события забираются только по таймеру.
func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	listener Listener,
	batchSize int,
	pollInterval time.Duration,
) *OutboxWorker {
	if batchSize <= 0 {
		batchSize = 10
	}
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}

	return &OutboxWorker{
		repo:         repo,
		logger:       logger,
		producer:     producer,
		listener:     listener,
		batchSize:    batchSize,
		pollInterval: pollInterval,
		wake:         make(chan struct{}, 1),
		stop:         make(chan struct{}),
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer cancel()
		w.run(ctx)
	}()

	if w.listener != nil {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			if err := w.listener.Listen(ctx, w.wake); err != nil {
				w.logger.Warnf("outbox listener stopped: %v", err)
			}
		}()
	}
}

// Stop останавливает воркер и ждёт завершения горутин. Повторный вызов безопасен.
func (w *OutboxWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	w.wg.Wait()
}

// Wake просит воркер разобрать outbox вне очереди.
func (w *OutboxWorker) Wake() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *OutboxWorker) run(ctx context.Context) {
	// Обрабатываем "остатки" при старте
	w.logger.Infof("Draining pending outbox events on startup...")
	w.drain(ctx)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Infof("Outbox worker stopped by context cancellation")
			return
		case <-w.stop:
			w.logger.Infof("Outbox worker stopped")
			return
		case <-w.wake:
			w.logger.Debugf("Received outbox notification, draining outbox events")
			w.drain(ctx)
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// drain обрабатывает пачки, пока они не кончатся или отправка не начнёт падать.
func (w *OutboxWorker) drain(ctx context.Context) {
	for {
		hasMore, err := w.processBatch(ctx)
		if err != nil {
			w.logger.Warnf("Batch processing failed: %v", err)
			return
		}
		if !hasMore {
			return
		}
	}
}

// processBatch возвращает true, если стоит сразу взять следующую пачку.
func (w *OutboxWorker) processBatch(ctx context.Context) (bool, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, w.batchSize)
	if err != nil {
		return false, err
	}

	if len(events) == 0 {
		return false, nil
	}

	failed := false
	for _, event := range events {
		if err := w.producer.WriteMessage(ctx, usecase.NewWriteMessageReq(event.AggregateID, event.Payload)); err != nil {
			failed = true
			if isRetryableError(err) {
				w.logger.Warnf("Temporary Kafka failure for event %s, will retry: %v", event.ID, err)
			} else {
				w.logger.Errorf(err, "Kafka failure for event %s, returned to pending", event.ID)
			}

			if err := w.repo.MarkAsPending(context.WithoutCancel(ctx), event.ID); err != nil {
				w.logger.Warnf("mark pending failed: %v", err)
			}
			continue
		}

		if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
			w.logger.Warnf("mark processed failed: %v", err)
		}
	}

	// после ошибки ждём следующего тика, чтобы не крутить отправку вхолостую
	return !failed && len(events) == w.batchSize, nil
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"connection reset",
		"broken pipe",
		"no such host",
		"leader not available",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
