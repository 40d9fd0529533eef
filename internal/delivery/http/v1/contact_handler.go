package v1

import (
	"errors"

	"github.com/gin-gonic/gin"

	"go-wellness-backend/config"
	"go-wellness-backend/internal/delivery/http/middleware"
	"go-wellness-backend/internal/delivery/http/response"
	"go-wellness-backend/internal/domain"
	"go-wellness-backend/pkg/logger"
	"go-wellness-backend/pkg/validation"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
	cfg       *config.Config
}

// NewContactHandler registers the contact route (public, no auth required).
// The chain runs environment precheck, then rate limiting, then intake.
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase, cfg *config.Config) {
	handler := &ContactHandler{
		contactUC: contactUC,
		cfg:       cfg,
	}

	rateLimit := middleware.RateLimit(middleware.ContactRateLimitConfig(
		cfg.RateLimitContactThreshold,
		cfg.RateLimitWindowSeconds,
	))

	public.POST("/contact", handler.requireEmailConfig, rateLimit, handler.Submit)
}

// requireEmailConfig fails the whole request before any other work when the
// dispatch credentials are missing. Fatal misconfiguration, not a
// per-request condition.
func (h *ContactHandler) requireEmailConfig(c *gin.Context) {
	if !h.cfg.EmailConfigured() {
		logger.L().Error("contact endpoint misconfigured: missing email credential or destination")
		response.Internal(c, "An error occurred. Please try again later.")
		c.Abort()
		return
	}
	c.Next()
}

// Submit godoc
// @Summary      Submit Contact Form
// @Description  Send a message to the practitioner through the contact form. This is a public endpoint.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactSubmission  true  "Contact Form Data"
// @Success      200      {object}  response.SuccessBody
// @Failure      400      {object}  response.ErrorBody
// @Failure      429      {object}  response.ErrorBody
// @Failure      500      {object}  response.ErrorBody
// @Router       /contact [post]
func (h *ContactHandler) Submit(c *gin.Context) {
	var req domain.ContactSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationFailed(c, "Invalid request body", nil)
		return
	}

	receipt, err := h.contactUC.Submit(c.Request.Context(), &req, middleware.ClientKey(c))
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			response.ValidationFailed(c, "Invalid submission", verrs)
			return
		}
		// Dispatch failures and anything unexpected share the generic
		// shape; the cause stays in the logs.
		logger.L().Error("contact submission failed", "error", err)
		response.Internal(c, "An error occurred. Please try again later.")
		return
	}

	response.Success(c, receipt.Message, receipt.Timestamp)
}
