package usecase

import "context"

type HealthUsecase interface {
	Check(ctx context.Context) map[string]string
}

// configuredChecker is satisfied by the email transport.
type configuredChecker interface {
	IsConfigured() bool
}

type healthUsecase struct {
	emailService configuredChecker
}

func NewHealthUsecase(emailService configuredChecker) HealthUsecase {
	return &healthUsecase{emailService: emailService}
}

// Check reports process liveness and whether the mail transport has the
// settings it needs. It never dials the SMTP server.
func (u *healthUsecase) Check(ctx context.Context) map[string]string {
	status := map[string]string{
		"status": "ok",
		"email":  "configured",
	}
	if u.emailService == nil || !u.emailService.IsConfigured() {
		status["email"] = "not_configured"
	}
	return status
}
