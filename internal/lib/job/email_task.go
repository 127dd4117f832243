package job

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
)

// TaskWelcome is the Asynq task type of the welcome email.
const TaskWelcome = "email:welcome"

type WelcomeEmailPayload struct {
	To        string `json:"to"`
	FirstName string `json:"first_name"`
}

// NewWelcomeEmailTask builds a welcome email task on the default queue,
// retried up to 3 times.
func NewWelcomeEmailTask(to, firstName string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:        to,
		FirstName: firstName,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
