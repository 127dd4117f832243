package job

import (
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	to, firstName string
	err           error
}

func (r *recordingSender) SendWelcomeEmail(to, firstName string) error {
	r.to, r.firstName = to, firstName
	return r.err
}

func newTestService(sender WelcomeSender) *JobService {
	logger := zerolog.Nop()
	return &JobService{mailer: sender, logger: &logger}
}

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("u1@email.com", "U1F")
	require.NoError(t, err)

	assert.Equal(t, TaskWelcome, task.Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, WelcomeEmailPayload{To: "u1@email.com", FirstName: "U1F"}, p)
}

func TestHandleWelcomeEmailTask(t *testing.T) {
	t.Run("sends", func(t *testing.T) {
		sender := &recordingSender{}
		task, err := NewWelcomeEmailTask("u1@email.com", "U1F")
		require.NoError(t, err)

		require.NoError(t, newTestService(sender).handleWelcomeEmailTask(context.Background(), task))
		assert.Equal(t, "u1@email.com", sender.to)
		assert.Equal(t, "U1F", sender.firstName)
	})

	t.Run("send failure is retried", func(t *testing.T) {
		boom := errors.New("boom")
		task, err := NewWelcomeEmailTask("u1@email.com", "U1F")
		require.NoError(t, err)

		err = newTestService(&recordingSender{err: boom}).handleWelcomeEmailTask(context.Background(), task)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("bad payload is not retried", func(t *testing.T) {
		task := asynq.NewTask(TaskWelcome, []byte("{"))

		err := newTestService(&recordingSender{}).handleWelcomeEmailTask(context.Background(), task)
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})
}
