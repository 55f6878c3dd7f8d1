package credits

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"alimentary/brrp/carbon-backend/internal/emissions"
	"alimentary/brrp/carbon-backend/internal/verification"
)

// Handler exposes the credit lifecycle to the surrounding application layer.
// Authorization (who may mint or sell) is the caller's concern.
type Handler struct {
	service       *Service
	emissions     *emissions.Service
	verifications *verification.Service
}

// NewHandler creates a new credits handler
func NewHandler(service *Service, emissionsService *emissions.Service, verificationService *verification.Service) *Handler {
	return &Handler{service: service, emissions: emissionsService, verifications: verificationService}
}

// RegisterRoutes registers credit lifecycle routes on the router group
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/mint", h.Mint)
	r.GET("/:id", h.Get)
	r.POST("/:id/validate-budget", h.ValidateBudget)
	r.POST("/:id/list", h.MakeAvailable)
	r.POST("/:id/sell", h.Sell)
	r.POST("/:id/offset", h.OffsetAndDestroy)
	r.POST("/:id/sync-registry", h.SyncRegistry)
	r.GET("/:id/transactions", h.Transactions)
}

type mintRequest struct {
	EmissionsRecordID    uuid.UUID `json:"emissions_record_id" binding:"required"`
	VerificationRecordID uuid.UUID `json:"verification_record_id" binding:"required"`
}

// Mint handles POST /credits/mint
func (h *Handler) Mint(c *gin.Context) {
	var req mintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	em, err := h.emissions.Get(c.Request.Context(), req.EmissionsRecordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "emissions record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	vr, err := h.verifications.Get(c.Request.Context(), req.VerificationRecordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "verification record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	credit, err := h.service.Mint(c.Request.Context(), em, vr)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotVerified), errors.Is(err, ErrVerificationMismatch):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrDuplicateMint):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, credit)
}

// Get handles GET /credits/:id
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseCreditID(c)
	if !ok {
		return
	}

	credit, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "carbon credit not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, credit)
}

// ValidateBudget handles POST /credits/:id/validate-budget
func (h *Handler) ValidateBudget(c *gin.Context) {
	id, ok := parseCreditID(c)
	if !ok {
		return
	}

	valid, message, err := h.service.ValidateAgainstNationalBudget(c.Request.Context(), id)
	if err != nil {
		var syncErr *ExternalSyncError
		if errors.As(err, &syncErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": syncErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": valid, "message": message})
}

type listRequest struct {
	MarketValue float64 `json:"market_value" binding:"required"`
	Currency    string  `json:"currency"`
}

// MakeAvailable handles POST /credits/:id/list
func (h *Handler) MakeAvailable(c *gin.Context) {
	id, ok := parseCreditID(c)
	if !ok {
		return
	}

	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	credit, err := h.service.MakeAvailable(c.Request.Context(), id, req.MarketValue, req.Currency)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, credit)
}

type sellRequest struct {
	BuyerID string  `json:"buyer_id" binding:"required"`
	Amount  float64 `json:"amount" binding:"required"`
}

// Sell handles POST /credits/:id/sell
func (h *Handler) Sell(c *gin.Context) {
	id, ok := parseCreditID(c)
	if !ok {
		return
	}

	var req sellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.service.Sell(c.Request.Context(), id, req.BuyerID, req.Amount)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tx)
}

type offsetRequest struct {
	BuyerID string `json:"buyer_id" binding:"required"`
}

// OffsetAndDestroy handles POST /credits/:id/offset
func (h *Handler) OffsetAndDestroy(c *gin.Context) {
	id, ok := parseCreditID(c)
	if !ok {
		return
	}

	var req offsetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.service.OffsetAndDestroy(c.Request.Context(), id, req.BuyerID)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tx)
}

// SyncRegistry handles POST /credits/:id/sync-registry
func (h *Handler) SyncRegistry(c *gin.Context) {
	id, ok := parseCreditID(c)
	if !ok {
		return
	}

	registryURL, err := h.service.SyncToGlobalRegistry(c.Request.Context(), id)
	if err != nil {
		var syncErr *ExternalSyncError
		if errors.As(err, &syncErr) {
			c.JSON(http.StatusBadGateway, gin.H{"error": syncErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "registry_url": registryURL})
}

// Transactions handles GET /credits/:id/transactions
func (h *Handler) Transactions(c *gin.Context) {
	id, ok := parseCreditID(c)
	if !ok {
		return
	}

	transactions, err := h.service.TransactionHistory(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions, "count": len(transactions)})
}

func parseCreditID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid credit id"})
		return uuid.Nil, false
	}
	return id, true
}

func respondLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidState),
		errors.Is(err, ErrBudgetNotValidated),
		errors.Is(err, ErrNotAvailable),
		errors.Is(err, ErrAlreadyDestroyed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "carbon credit not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
