package scada

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"alimentary/brrp/carbon-backend/internal/emissions"
)

// Handler exposes the SCADA ingestion boundary over HTTP
type Handler struct {
	service *Service
}

// NewHandler creates a new SCADA handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers SCADA routes on the router group
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/measurements", h.RecordMeasurement)
	r.GET("/measurements", h.ListMeasurements)
	r.GET("/measurements/:id", h.GetMeasurement)
}

type recordResponse struct {
	*Measurement
	EmissionsRecordID uuid.UUID `json:"emissions_record_id"`
}

// RecordMeasurement handles POST /measurements
func (h *Handler) RecordMeasurement(c *gin.Context) {
	var req RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "detail": err.Error()})
		return
	}

	standard := emissions.Standard(c.Query("standard"))

	m, rec, err := h.service.Record(c.Request.Context(), &req, standard)
	if err != nil {
		var verrs ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verrs})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, recordResponse{Measurement: m, EmissionsRecordID: rec.ID})
}

// ListMeasurements handles GET /measurements?facility_id=&from=&to=
func (h *Handler) ListMeasurements(c *gin.Context) {
	facilityID := c.Query("facility_id")
	if facilityID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "facility_id is required"})
		return
	}

	from, to, err := parseTimeRange(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	measurements, err := h.service.Measurements(c.Request.Context(), facilityID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"measurements": measurements, "count": len(measurements)})
}

// GetMeasurement handles GET /measurements/:id
func (h *Handler) GetMeasurement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid measurement id"})
		return
	}

	m, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "measurement not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, m)
}

func parseTimeRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from := time.Time{}
	to := time.Now().UTC()

	if fromStr != "" {
		parsed, err := time.Parse(time.RFC3339, fromStr)
		if err != nil {
			return from, to, errors.New("from must be RFC3339")
		}
		from = parsed
	}
	if toStr != "" {
		parsed, err := time.Parse(time.RFC3339, toStr)
		if err != nil {
			return from, to, errors.New("to must be RFC3339")
		}
		to = parsed
	}
	return from, to, nil
}
