// Package job runs background work on Asynq, a Redis-backed task queue.
//
// The API process is both producer (Client) and consumer (server). Tasks
// currently cover the welcome email sent after registration.
package job

import (
	"context"
	"fmt"

	"github.com/deppfellow/jobly/internal/config"
	"github.com/deppfellow/jobly/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// WelcomeSender delivers the welcome email. *email.Client implements it.
type WelcomeSender interface {
	SendWelcomeEmail(to, firstName string) error
}

// JobService holds the Asynq client used to enqueue and the server that
// processes tasks.
type JobService struct {
	Client *asynq.Client

	server *asynq.Server
	mailer WelcomeSender
	logger *zerolog.Logger
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client: asynq.NewClient(redisOpt),
		server: server,
		mailer: email.NewClient(cfg, logger),
		logger: logger,
	}
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	return mux
}

// Start launches the worker goroutines and returns; it does not block.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(j.Mux()); err != nil {
		return fmt.Errorf("failed to start job server: %w", err)
	}
	return nil
}

// EnqueueWelcomeEmail schedules the welcome email for a new user.
func (j *JobService) EnqueueWelcomeEmail(ctx context.Context, to, firstName string) error {
	task, err := NewWelcomeEmailTask(to, firstName)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue welcome email: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Msg("welcome email enqueued")

	return nil
}

// Stop waits for running tasks and releases the Redis connections.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// asynqLogger routes Asynq's internal logs into zerolog.
type asynqLogger struct {
	logger zerolog.Logger
}

func newAsynqLogger(logger *zerolog.Logger) *asynqLogger {
	return &asynqLogger{logger: logger.With().Str("component", "asynq").Logger()}
}

func (l *asynqLogger) Debug(args ...any) { l.logger.Debug().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...any)  { l.logger.Info().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...any)  { l.logger.Warn().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...any) { l.logger.Error().Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Fatal(args ...any) { l.logger.Fatal().Msg(fmt.Sprint(args...)) }
