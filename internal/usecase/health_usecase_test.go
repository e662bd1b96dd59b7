package usecase_test

import (
	"context"
	"testing"

	"portfolio-contact-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck(t *testing.T) {
	t.Run("configured transport", func(t *testing.T) {
		sender := new(MockEmailSender)
		sender.On("IsConfigured").Return(true)

		got := usecase.NewHealthUsecase(sender).Check(context.Background())
		assert.Equal(t, map[string]string{"status": "ok", "email": "configured"}, got)
	})

	t.Run("missing transport settings", func(t *testing.T) {
		sender := new(MockEmailSender)
		sender.On("IsConfigured").Return(false)

		got := usecase.NewHealthUsecase(sender).Check(context.Background())
		assert.Equal(t, "ok", got["status"])
		assert.Equal(t, "not_configured", got["email"])
	})

	t.Run("nil transport", func(t *testing.T) {
		got := usecase.NewHealthUsecase(nil).Check(context.Background())
		assert.Equal(t, "not_configured", got["email"])
	})
}
