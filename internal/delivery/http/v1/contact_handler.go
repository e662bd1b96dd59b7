package v1

import (
	"errors"
	"io"
	"net/http"

	"portfolio-contact-backend/internal/delivery/http/middleware"
	"portfolio-contact-backend/internal/delivery/http/response"
	"portfolio-contact-backend/internal/domain"
	"portfolio-contact-backend/pkg/apperror"
	"portfolio-contact-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

// maxContactBodyBytes caps the JSON body of a contact submission.
const maxContactBodyBytes = 64 << 10

const (
	msgMissingFields  = "Missing required fields"
	msgInvalidService = "Invalid service"
	msgInvalidBody    = "Invalid request body"
	msgSendFailed     = "Failed to send email"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// ServiceListResponse is the body of GET /services.
type ServiceListResponse struct {
	OK       bool             `json:"ok"`
	Services []domain.Service `json:"services"`
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", handler.SubmitContact)
	public.GET("/services", handler.ListServices)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Relays a contact form submission to the site owner by email. Duplicate submissions send duplicate emails.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactSubmission  true  "Contact Form Data"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      405      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxContactBodyBytes)

	var req domain.ContactSubmission
	// An empty body decodes as {} and fails validation below.
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(apperror.New(http.StatusBadRequest, msgInvalidBody, err))
		return
	}

	if err := h.contactUC.SendContactMessage(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			_ = c.Error(apperror.New(http.StatusBadRequest, msgMissingFields, err))
		case errors.Is(err, domain.ErrInvalidService):
			_ = c.Error(apperror.New(http.StatusBadRequest, msgInvalidService, err))
		default:
			_ = c.Error(apperror.New(http.StatusInternalServerError, msgSendFailed, err))
		}
		return
	}

	logger.Log.Info("Contact message relayed",
		"request_id", c.GetString(middleware.RequestIDKey),
		"service", req.Service,
	)
	response.Success(c, http.StatusOK)
}

// ListServices godoc
// @Summary      List Services
// @Description  Services accepted in the contact form "service" field.
// @Tags         contact
// @Produce      json
// @Success      200  {object}  ServiceListResponse
// @Router       /services [get]
func (h *ContactHandler) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, ServiceListResponse{
		OK:       true,
		Services: h.contactUC.Services(c.Request.Context()),
	})
}
