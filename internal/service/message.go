package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/oggyb/zensend-gateway/internal/cache"
	domain "github.com/oggyb/zensend-gateway/internal/domain/message"
	"github.com/oggyb/zensend-gateway/internal/sms"
)

// sentMessageTTL is how long the txguid → sent-at index is kept in the cache.
const sentMessageTTL = 24 * time.Hour

// outcomeWriteTimeout bounds recording a send outcome. The write must not
// share the send's deadline: an unrecorded outcome leaves the row PENDING
// and the message would be sent and billed again.
const outcomeWriteTimeout = 5 * time.Second

type MessageService interface {
	Queue(ctx context.Context, d domain.Draft) (*domain.Message, error)
	GetSent(ctx context.Context, page, limit int) ([]*domain.Message, int64, error)
	ProcessBatch(ctx context.Context) error
}

type messageService struct {
	repo     domain.Repository
	provider sms.Provider
	cache    cache.Cache
	log      *zap.Logger

	// Batch processing configuration, injected from config at startup.
	batchSize         int
	maxWorkers        int
	perMessageTimeout time.Duration
}

// NewMessageService creates a message service with the given dependencies
// and batch processing settings. The config values are passed explicitly
// from the caller (e.g. main) so this package does not depend on env.
// cache may be nil, in which case the sent-message index is not written.
func NewMessageService(
	repo domain.Repository,
	provider sms.Provider,
	c cache.Cache,
	batchSize int,
	maxWorkers int,
	perMessageTimeout time.Duration,
) MessageService {
	if batchSize <= 0 {
		batchSize = 100
	}
	if maxWorkers <= 0 {
		maxWorkers = 4
	}
	if perMessageTimeout <= 0 {
		perMessageTimeout = 5 * time.Second
	}

	return &messageService{
		repo:              repo,
		provider:          provider,
		cache:             c,
		log:               zap.L().With(zap.String("component", "message_service")),
		batchSize:         batchSize,
		maxWorkers:        maxWorkers,
		perMessageTimeout: perMessageTimeout,
	}
}

// Queue validates the draft and stores it as a pending message.
// Domain validation errors are returned unwrapped so callers can match them.
func (s *messageService) Queue(ctx context.Context, d domain.Draft) (*domain.Message, error) {
	msg, err := domain.NewMessage(d)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, msg); err != nil {
		return nil, fmt.Errorf("save message: %w", err)
	}

	s.log.Debug("[Service] Message queued",
		zap.String("id", msg.ID.String()),
		zap.Int("numbers", len(msg.Numbers)),
	)
	return msg, nil
}

func (s *messageService) GetSent(ctx context.Context, page, limit int) ([]*domain.Message, int64, error) {
	return s.repo.GetSent(ctx, page, limit)
}

// ProcessBatch pulls a batch of pending messages from the repository and
// processes them using a small worker pool. The batch size, worker count
// and per-message timeout are provided at construction time.
func (s *messageService) ProcessBatch(ctx context.Context) error {
	messages, err := s.repo.ClaimPending(ctx, s.batchSize)
	if err != nil {
		return fmt.Errorf("failed to fetch pending messages: %w", err)
	}

	if len(messages) == 0 {
		s.log.Debug("[Service] No pending messages to process.")
		return nil
	}

	s.log.Info("[Service] Processing batch",
		zap.Int("messages", len(messages)),
		zap.Int("batchSize", s.batchSize),
		zap.Int("maxWorkers", s.maxWorkers),
	)

	workerCount := len(messages)
	if workerCount > s.maxWorkers {
		workerCount = s.maxWorkers
	}

	var wg sync.WaitGroup

	// Each worker processes a stride of the batch: worker w handles
	// indices w, w+workerCount, w+2*workerCount, ...
	for w := 0; w < workerCount; w++ {
		wg.Add(1)

		go func(workerID, start int) {
			defer wg.Done()

			for i := start; i < len(messages); i += workerCount {
				if ctx.Err() != nil {
					s.log.Warn("[Worker] Context cancelled, stopping worker", zap.Int("worker", workerID))
					for j := i; j < len(messages); j += workerCount {
						s.release(ctx, messages[j])
					}
					return
				}

				msg := messages[i]
				msgCtx, cancel := context.WithTimeout(ctx, s.perMessageTimeout)

				if err := s.processMessage(msgCtx, msg); err != nil {
					s.log.Warn("[Worker] Failed to process message",
						zap.Int("worker", workerID),
						zap.String("id", msg.ID.String()),
						zap.Error(err),
					)
				}

				cancel()
			}
		}(w+1, w)
	}

	wg.Wait()

	s.log.Info("[Service] Batch worker pool completed.")
	return nil
}

// release hands a claimed but unsent message back to the pending queue.
func (s *messageService) release(ctx context.Context, msg *domain.Message) {
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), outcomeWriteTimeout)
	defer cancel()

	msg.Release()
	if err := s.repo.UpdateStatus(writeCtx, msg); err != nil {
		s.log.Error("[Service] Failed to release claimed message", zap.String("id", msg.ID.String()), zap.Error(err))
	}
}

// processMessage sends a single pending message and records the outcome.
// A rejected or failed send is persisted as FAILED, with any provider fail
// code and billing kept, and is not retried.
func (s *messageService) processMessage(ctx context.Context, msg *domain.Message) error {
	id := msg.ID.String()

	res, err := s.provider.SendSMS(ctx, msg.SMS())

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), outcomeWriteTimeout)
	defer cancel()

	if err != nil {
		msg.MarkFailed(err)

		if uErr := s.repo.UpdateStatus(writeCtx, msg); uErr != nil {
			s.log.Error("[Service] Failed to persist FAILED status", zap.String("id", id), zap.Error(uErr))
		}

		return fmt.Errorf("send message %s: %w", id, err)
	}

	msg.MarkSent(res)
	if err := s.repo.UpdateStatus(writeCtx, msg); err != nil {
		return fmt.Errorf("update status for %s: %w", id, err)
	}

	s.log.Info("[Service] Message sent",
		zap.String("id", id),
		zap.String("txguid", res.TxGUID),
		zap.Int("smsParts", res.SMSParts),
		zap.String("cost", res.CostInPence.String()),
		zap.String("newBalance", res.NewBalanceInPence.String()),
	)

	if s.cache != nil && res.TxGUID != "" {
		key := cache.SentMessages.Key(res.TxGUID)
		if err := s.cache.Set(writeCtx, key, msg.SentAt.Format(time.RFC3339), sentMessageTTL); err != nil {
			s.log.Warn("[Service] Failed to cache sent message", zap.String("txguid", res.TxGUID), zap.Error(err))
		}
	}

	return nil
}
