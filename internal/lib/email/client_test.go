package email

import (
	"testing"

	"github.com/deppfellow/jobly/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome(t *testing.T) {
	html, err := Render(TemplateWelcome, map[string]string{"UserFirstName": "<Aliya>"})
	require.NoError(t, err)

	assert.Contains(t, html, "Welcome to Jobly, &lt;Aliya&gt;!")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := Render(Template("missing"), nil)
	assert.Error(t, err)
}

func TestSendWithoutAPIKeyIsSkipped(t *testing.T) {
	logger := zerolog.Nop()
	c := NewClient(&config.Config{}, &logger)

	assert.False(t, c.Enabled())
	assert.NoError(t, c.SendWelcomeEmail("u1@email.com", "U1F"))
}
