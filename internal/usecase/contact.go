package usecase

import (
	"context"
	"fmt"
	"strings"

	"portfolio-contact-backend/internal/domain"
	"portfolio-contact-backend/pkg/email"
	"portfolio-contact-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// EmailSender is the outbound mail transport used by the contact usecase.
type EmailSender interface {
	SendContactEmail(ctx context.Context, data email.ContactEmailData) error
	IsConfigured() bool
}

type contactUsecase struct {
	emailService EmailSender
	validate     *validator.Validate
}

// NewContactUsecase creates a new contact usecase. validate must have the
// custom tags from validation.RegisterValidators.
func NewContactUsecase(emailService EmailSender, validate *validator.Validate) domain.ContactUsecase {
	return &contactUsecase{
		emailService: emailService,
		validate:     validate,
	}
}

// SendContactMessage validates the contact request and sends the email.
// Nothing is sent unless validation passes.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactSubmission) error {
	if req == nil {
		return domain.ErrMissingFields
	}
	sub := req.Normalized()

	if err := uc.validate.StructCtx(ctx, sub); err != nil {
		details := strings.Join(validation.FormatValidationErrors(err), "; ")
		if validation.HasTag(err, "contact_service") && !validation.HasTag(err, "not_blank") {
			return fmt.Errorf("%w: %s", domain.ErrInvalidService, details)
		}
		return fmt.Errorf("%w: %s", domain.ErrMissingFields, details)
	}

	if !uc.emailService.IsConfigured() {
		return fmt.Errorf("%w: %w", domain.ErrTransport, email.ErrNotConfigured)
	}

	phone := sub.Phone
	if phone == "" {
		phone = domain.PhonePlaceholder
	}

	emailData := email.ContactEmailData{
		SenderName:  sub.Name,
		SenderEmail: sub.Email,
		Phone:       phone,
		Service:     sub.Service,
		Message:     sub.Message,
	}

	if err := uc.emailService.SendContactEmail(ctx, emailData); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	return nil
}

func (uc *contactUsecase) Services(_ context.Context) []domain.Service {
	out := make([]domain.Service, len(domain.ServiceCatalog))
	copy(out, domain.ServiceCatalog)
	return out
}
