package job

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A malformed payload will never succeed; do not retry it.
		return fmt.Errorf("failed to unmarshal welcome email payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", "welcome").
		Str("to", p.To).
		Logger()

	log.Info().Msg("processing welcome email task")

	if err := j.mailer.SendWelcomeEmail(p.To, p.FirstName); err != nil {
		log.Error().Err(err).Msg("failed to send welcome email")
		return err
	}

	log.Info().Msg("sent welcome email")
	return nil
}
