package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"todo-api/internal/domain/usecase/attachment"
	"todo-api/pkg/log"
	"todo-api/pkg/msg"
	"todo-api/pkg/redis"
)

const cleanupLockKey = "attachment_cleanup_scheduler"

// FileCleanupSchedulerConfig holds configuration for the attachment cleanup scheduler
type FileCleanupSchedulerConfig struct {
	CronExpression string
	LockTTL        time.Duration
}

// FileCleanupScheduler retries pending attachment file removals. When a Redis client is
// present only the instance holding the lock runs a given tick.
type FileCleanupScheduler struct {
	cron        *cron.Cron
	useCase     attachment.CleanupUseCase
	redisClient *redis.Client
	config      FileCleanupSchedulerConfig
}

func NewFileCleanupScheduler(useCase attachment.CleanupUseCase, redisClient *redis.Client, config FileCleanupSchedulerConfig) *FileCleanupScheduler {
	if config.LockTTL <= 0 {
		config.LockTTL = 2 * time.Minute
	}
	return &FileCleanupScheduler{
		cron:        cron.New(),
		useCase:     useCase,
		redisClient: redisClient,
		config:      config,
	}
}

// InitFileCleanupScheduleTasks registers the cleanup job and starts the cron
func (s *FileCleanupScheduler) InitFileCleanupScheduleTasks(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.config.CronExpression, func() { s.ExecuteScheduledTask(ctx) })
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Infof("Attachment cleanup scheduler started with cron expression: %s", s.config.CronExpression)
	return nil
}

// ExecuteScheduledTask runs one cleanup pass, under the distributed lock when Redis is enabled
func (s *FileCleanupScheduler) ExecuteScheduledTask(ctx context.Context) {
	requestID := uuid.NewString()

	if s.redisClient == nil {
		s.runCleanup(ctx, requestID)
		return
	}

	opts := redis.NewLockOptions().WithTTL(s.config.LockTTL).WithLockNamespace("schedules")
	err := redis.LockWithFunc(ctx, s.redisClient, cleanupLockKey, opts, func() error {
		s.runCleanup(ctx, requestID)
		return nil
	})
	if errors.Is(err, redis.ErrLockNotAcquired) {
		log.Debug("Attachment cleanup skipped, another instance holds the lock", zap.String("request_id", requestID))
		return
	}
	if err != nil {
		log.Error(msg.GetMessage("attachment.cleanup.failed", err.Error()), zap.String("request_id", requestID), zap.Error(err))
	}
}

func (s *FileCleanupScheduler) runCleanup(ctx context.Context, requestID string) {
	log.Info(msg.GetMessage("attachment.cleanup.start"), zap.String("request_id", requestID))

	report, err := s.useCase.RetryPending(ctx)
	if err != nil {
		log.Error(msg.GetMessage("attachment.cleanup.failed", err.Error()), zap.String("request_id", requestID), zap.Error(err))
		return
	}

	log.Info(msg.GetMessage("attachment.cleanup.end", report.Removed, report.Pending, report.Dropped),
		zap.String("request_id", requestID))
}

// Stop gracefully stops the scheduler, waiting for a running pass to finish
func (s *FileCleanupScheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
}
