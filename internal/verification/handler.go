package verification

import (
	"bytes"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"alimentary/brrp/carbon-backend/internal/emissions"
)

// Handler exposes the verification workflow to the surrounding application
// layer. Authorization (who may initiate or attest) is the caller's concern.
type Handler struct {
	service   *Service
	emissions *emissions.Service
}

// NewHandler creates a new verification handler
func NewHandler(service *Service, emissionsService *emissions.Service) *Handler {
	return &Handler{service: service, emissions: emissionsService}
}

// RegisterRoutes registers verification routes on the router group
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.Initiate)
	r.GET("/:id", h.Get)
	r.PATCH("/:id/status", h.UpdateStatus)
	r.GET("/:id/report", h.Report)
	r.GET("/due", h.ListDue)
	r.GET("/requirements/:standard", h.Requirements)
}

type initiateRequest struct {
	EmissionsRecordID uuid.UUID `json:"emissions_record_id" binding:"required"`
	Standard          Standard  `json:"standard" binding:"required"`
	Verifier          string    `json:"verifier" binding:"required"`
}

// Initiate handles POST /verifications
func (h *Handler) Initiate(c *gin.Context) {
	var req initiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The emissions record must exist before verification can start
	if _, err := h.emissions.Get(c.Request.Context(), req.EmissionsRecordID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "emissions record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.service.Initiate(c.Request.Context(), req.EmissionsRecordID, req.Standard, req.Verifier)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// Get handles GET /verifications/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid verification id"})
		return
	}

	rec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "verification record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rec)
}

type updateStatusRequest struct {
	Status         Status  `json:"status" binding:"required"`
	CertificateURL *string `json:"certificate_url,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// UpdateStatus handles PATCH /verifications/:id/status
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid verification id"})
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status, req.CertificateURL, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrMissingCertificate):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "verification record not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, rec)
}

// Report handles GET /verifications/:id/report and returns a PDF
func (h *Handler) Report(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid verification id"})
		return
	}

	rec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "verification record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	em, err := h.emissions.Get(c.Request.Context(), rec.EmissionsRecordID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	report := BuildReport(rec, em)

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, report)
		return
	}

	var buf bytes.Buffer
	if err := WriteReportPDF(&buf, report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="verification-report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// ListDue handles GET /verifications/due
func (h *Handler) ListDue(c *gin.Context) {
	records, err := h.service.ListDue(c.Request.Context(), time.Now().UTC(), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"due": records, "count": len(records)})
}

// Requirements handles GET /verifications/requirements/:standard
func (h *Handler) Requirements(c *gin.Context) {
	standard := Standard(c.Param("standard"))
	if !standard.IsKnown() {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown verification standard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"standard": standard, "requirements": Requirements(standard)})
}
