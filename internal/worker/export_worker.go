package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AykutYamak/MyGuestRooms/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const TaskRebuildReport = "rebuild_report"

// TaskQueue persists export tasks so a restart never loses queued work.
type TaskQueue interface {
	CreateExportTask(ctx context.Context, task *models.ExportTask) error
	GetPendingExportTasks(ctx context.Context, limit int) ([]models.ExportTask, error)
	UpdateExportTaskStatus(ctx context.Context, id int64, status, errMsg string, nextRetryAt *time.Time) error
}

// ReportBuilder produces the occupancy report file for a date range.
type ReportBuilder interface {
	BuildReport(ctx context.Context, from, to time.Time) (string, error)
}

// rebuildPayload is persisted in ExportTask.Payload as JSON.
type rebuildPayload struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// ExportWorker consumes export_queue tasks and rebuilds the occupancy
// report. Tasks reach the worker through an in-memory channel, a Redis
// list when available, or the database poll as the slow path.
type ExportWorker struct {
	tasks         TaskQueue
	builder       ReportBuilder
	redis         *redis.Client
	retryPolicy   RetryPolicy
	queue         chan models.ExportTask
	redisQueueKey string
	deadLetterKey string
	pollInterval  time.Duration
	batchSize     int
	logger        *zerolog.Logger
}

// NewExportWorker builds a worker with sane defaults.
func NewExportWorker(tasks TaskQueue, builder ReportBuilder, redisClient *redis.Client, retry RetryPolicy, logger *zerolog.Logger) *ExportWorker {
	def := DefaultRetryPolicy()
	if retry.MaxRetries == 0 {
		retry.MaxRetries = def.MaxRetries
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = def.InitialDelay
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = def.MaxDelay
	}
	if retry.BackoffFactor == 0 {
		retry.BackoffFactor = def.BackoffFactor
	}

	return &ExportWorker{
		tasks:         tasks,
		builder:       builder,
		redis:         redisClient,
		retryPolicy:   retry,
		queue:         make(chan models.ExportTask, models.ExportQueueSize),
		redisQueueKey: "exports:queue",
		deadLetterKey: "exports:deadletter",
		pollInterval:  2 * time.Second,
		batchSize:     20,
		logger:        logger,
	}
}

// EnqueueRebuild persists a rebuild task and schedules it via Redis or
// the in-memory queue.
func (w *ExportWorker) EnqueueRebuild(ctx context.Context, from, to time.Time) error {
	if !to.After(from) {
		return errors.New("export range end must be after start")
	}

	payloadBytes, err := json.Marshal(rebuildPayload{From: from, To: to})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	task := models.ExportTask{
		TaskType:  TaskRebuildReport,
		Payload:   string(payloadBytes),
		Status:    "pending",
		CreatedAt: time.Now(),
	}

	if err := w.tasks.CreateExportTask(ctx, &task); err != nil {
		return fmt.Errorf("persist export task: %w", err)
	}

	// Try redis first for durability.
	if w.redis != nil {
		if err := w.pushRedis(ctx, task); err != nil {
			w.logger.Warn().Err(err).Msg("export_worker: redis push failed, fallback to memory queue")
		} else {
			return nil
		}
	}

	// Fallback to in-memory queue if redis missing or failed.
	select {
	case w.queue <- task:
	default:
		w.logger.Warn().Int64("task_id", task.ID).Msg("export_worker: in-memory queue full, task left to polling")
	}

	return nil
}

// Start launches the main loop; stops when ctx is done.
func (w *ExportWorker) Start(ctx context.Context) {
	w.logger.Info().Msg("export_worker: started")
	defer w.logger.Info().Msg("export_worker: stopped")

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if t, ok := w.tryLocalQueue(); ok {
			w.processTask(ctx, &t)
			continue
		}

		if t, ok := w.tryRedis(ctx); ok {
			w.processTask(ctx, &t)
			continue
		}

		tasks, err := w.tasks.GetPendingExportTasks(ctx, w.batchSize)
		if err != nil {
			w.logger.Error().Err(err).Msg("export_worker: fetch pending")
			time.Sleep(w.pollInterval)
			continue
		}
		if len(tasks) == 0 {
			time.Sleep(w.pollInterval)
			continue
		}

		for i := range tasks {
			w.processTask(ctx, &tasks[i])
		}
	}
}

func (w *ExportWorker) tryLocalQueue() (models.ExportTask, bool) {
	select {
	case t := <-w.queue:
		return t, true
	default:
		return models.ExportTask{}, false
	}
}

func (w *ExportWorker) tryRedis(ctx context.Context) (models.ExportTask, bool) {
	if w.redis == nil {
		return models.ExportTask{}, false
	}
	res, err := w.redis.BRPop(ctx, time.Second, w.redisQueueKey).Result()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, redis.Nil) {
			return models.ExportTask{}, false
		}
		w.logger.Error().Err(err).Msg("export_worker: redis BRPOP error")
		return models.ExportTask{}, false
	}
	if len(res) != 2 {
		return models.ExportTask{}, false
	}
	var task models.ExportTask
	if err := json.Unmarshal([]byte(res[1]), &task); err != nil {
		w.logger.Error().Err(err).Msg("export_worker: decode redis task")
		return models.ExportTask{}, false
	}
	return task, true
}

func (w *ExportWorker) processTask(ctx context.Context, task *models.ExportTask) {
	if task.TaskType != TaskRebuildReport {
		w.failTask(ctx, task, fmt.Errorf("unknown task type: %s", task.TaskType))
		return
	}

	var payload rebuildPayload
	if err := json.Unmarshal([]byte(task.Payload), &payload); err != nil {
		w.failTask(ctx, task, fmt.Errorf("decode payload: %w", err))
		return
	}

	path, err := w.builder.BuildReport(ctx, payload.From, payload.To)
	if err != nil {
		w.retryOrFail(ctx, task, err)
		return
	}

	w.logger.Info().Int64("task_id", task.ID).Str("path", path).Msg("export_worker: report rebuilt")
	if err := w.tasks.UpdateExportTaskStatus(ctx, task.ID, "completed", "", nil); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("export_worker: mark completed")
	}
}

func (w *ExportWorker) retryOrFail(ctx context.Context, task *models.ExportTask, cause error) {
	attempt := task.RetryCount + 1
	if attempt >= w.retryPolicy.MaxRetries {
		if err := w.tasks.UpdateExportTaskStatus(ctx, task.ID, "failed", cause.Error(), nil); err != nil {
			w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("export_worker: mark failed")
		}
		w.pushDeadLetter(ctx, task)
		return
	}

	nextTime := time.Now().Add(w.retryPolicy.NextDelay(attempt))
	if err := w.tasks.UpdateExportTaskStatus(ctx, task.ID, "retry", cause.Error(), &nextTime); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("export_worker: mark retry")
	}
}

func (w *ExportWorker) failTask(ctx context.Context, task *models.ExportTask, cause error) {
	if err := w.tasks.UpdateExportTaskStatus(ctx, task.ID, "failed", cause.Error(), nil); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("export_worker: mark failed")
	}
	w.pushDeadLetter(ctx, task)
}

func (w *ExportWorker) pushRedis(ctx context.Context, task models.ExportTask) error {
	if w.redis == nil {
		return errors.New("redis client is nil")
	}
	data, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return w.redis.LPush(ctx, w.redisQueueKey, data).Err()
}

func (w *ExportWorker) pushDeadLetter(ctx context.Context, task *models.ExportTask) {
	if w.redis == nil {
		return
	}
	data, err := json.Marshal(task)
	if err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("export_worker: encode deadletter")
		return
	}
	if err := w.redis.LPush(ctx, w.deadLetterKey, data).Err(); err != nil {
		w.logger.Error().Err(err).Int64("task_id", task.ID).Msg("export_worker: deadletter push")
	}
}
