package emissions

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Handler exposes emissions queries to the surrounding application layer
type Handler struct {
	service *Service
}

// NewHandler creates a new emissions handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers emissions routes on the router group
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/records/:id", h.GetRecord)
	r.GET("/records/:id/validation", h.ValidateRecord)
	r.GET("/measurements/:measurementId/record", h.GetRecordForMeasurement)
	r.GET("/facilities/:facilityId/aggregate", h.GetAggregate)
	r.GET("/facilities/:facilityId/export", h.ExportFacilityReport)
}

// GetRecord handles GET /records/:id
func (h *Handler) GetRecord(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	rec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "emissions record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// ValidateRecord handles GET /records/:id/validation?standard=
func (h *Handler) ValidateRecord(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid record id"})
		return
	}

	rec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "emissions record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	standard := rec.StandardUsed
	if s := c.Query("standard"); s != "" {
		standard = Standard(s)
	}

	c.JSON(http.StatusOK, ValidateAgainstStandard(rec, standard))
}

// GetRecordForMeasurement handles GET /measurements/:measurementId/record
func (h *Handler) GetRecordForMeasurement(c *gin.Context) {
	measurementID, err := uuid.Parse(c.Param("measurementId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid measurement id"})
		return
	}

	rec, err := h.service.GetForMeasurement(c.Request.Context(), measurementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "emissions record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rec)
}

// GetAggregate handles GET /facilities/:facilityId/aggregate?from=&to=
func (h *Handler) GetAggregate(c *gin.Context) {
	facilityID := c.Param("facilityId")

	from, to, err := parseTimeRange(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agg, err := h.service.AggregateByFacility(c.Request.Context(), facilityID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, agg)
}

// ExportFacilityReport handles GET /facilities/:facilityId/export?from=&to=
// and returns an Excel workbook.
func (h *Handler) ExportFacilityReport(c *gin.Context) {
	facilityID := c.Param("facilityId")

	from, to, err := parseTimeRange(c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agg, err := h.service.AggregateByFacility(c.Request.Context(), facilityID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	records, err := h.service.RecordsByFacility(c.Request.Context(), facilityID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	report := FacilityReport{FacilityID: facilityID, From: from, To: to, Aggregate: *agg, Records: records}
	if err := WriteFacilityReport(&buf, report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("emissions-%s-%s.xlsx", facilityID, time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
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
