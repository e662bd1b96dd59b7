package domain

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrMissingFields means name, email, service or message was empty.
	ErrMissingFields = errors.New("missing required fields")
	// ErrInvalidService means service is set but not in ServiceCatalog.
	ErrInvalidService = errors.New("invalid service")
	// ErrTransport wraps every failure to hand the message to the mail transport.
	ErrTransport = errors.New("failed to send email")
)

// PhonePlaceholder replaces an empty phone in the outbound message.
const PhonePlaceholder = "-"

// ServiceType identifies one of the services offered on the site.
type ServiceType string

const (
	ServiceFactory    ServiceType = "factory"
	ServiceConsulting ServiceType = "consulting"
	ServiceMentoring  ServiceType = "mentoring"
	ServiceTalk       ServiceType = "talk"
)

type Service struct {
	ID    ServiceType `json:"id"`
	Label string      `json:"label"`
}

// ServiceCatalog lists the services in display order.
var ServiceCatalog = []Service{
	{ID: ServiceFactory, Label: "GM Factory - Desenvolvimento Sob Medida"},
	{ID: ServiceConsulting, Label: "GM Consulting - Consultoria"},
	{ID: ServiceMentoring, Label: "GM Mentoring - Mentoria e Aulas"},
	{ID: ServiceTalk, Label: "GM Talk - Palestras"},
}

// LookupService finds a catalog entry by id.
func LookupService(id string) (Service, bool) {
	for _, s := range ServiceCatalog {
		if string(s.ID) == id {
			return s, true
		}
	}
	return Service{}, false
}

// ContactSubmission represents a contact form submission
type ContactSubmission struct {
	Name    string `json:"name" validate:"not_blank"`
	Email   string `json:"email" validate:"not_blank"`
	Phone   string `json:"phone"`
	Service string `json:"service" validate:"not_blank,contact_service"`
	Message string `json:"message" validate:"not_blank"`
}

// Normalized returns a copy with surrounding whitespace removed from every field.
func (s ContactSubmission) Normalized() ContactSubmission {
	return ContactSubmission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Phone:   strings.TrimSpace(s.Phone),
		Service: strings.TrimSpace(s.Service),
		Message: strings.TrimSpace(s.Message),
	}
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates the submission and relays it by email.
	// Errors wrap ErrMissingFields, ErrInvalidService or ErrTransport.
	SendContactMessage(ctx context.Context, req *ContactSubmission) error
	// Services returns the catalog accepted in ContactSubmission.Service.
	Services(ctx context.Context) []Service
}
