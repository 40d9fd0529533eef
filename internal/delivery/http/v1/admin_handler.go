package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-wellness-backend/internal/delivery/http/response"
	"go-wellness-backend/internal/domain"
	"go-wellness-backend/pkg/apperror"
)

type AdminHandler struct {
	submissionRepo domain.SubmissionRepository
}

// NewAdminHandler registers the practitioner's routes on an authenticated group.
func NewAdminHandler(protected *gin.RouterGroup, submissionRepo domain.SubmissionRepository) {
	handler := &AdminHandler{
		submissionRepo: submissionRepo,
	}

	protected.GET("/submissions", handler.ListSubmissions)
}

// ListSubmissions godoc
// @Summary      List archived submissions
// @Description  Returns the most recent contact submissions, newest first.
// @Tags         admin
// @Produce      json
// @Param        limit  query     int  false  "Maximum rows to return (default 50)"
// @Success      200    {object}  map[string]interface{}
// @Failure      401    {object}  response.ErrorBody
// @Failure      503    {object}  response.ErrorBody
// @Security     BearerAuth
// @Router       /admin/submissions [get]
func (h *AdminHandler) ListSubmissions(c *gin.Context) {
	if h.submissionRepo == nil {
		c.JSON(http.StatusServiceUnavailable, response.ErrorBody{
			Error: "Submission archive is not configured",
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	subs, err := h.submissionRepo.List(c.Request.Context(), limit)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"submissions": subs})
}
