package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmledger/internal/service/ledger"
)

// LedgerHandler exposes herd, vaccination, milk and finance records.
type LedgerHandler struct {
	ledger *ledger.Ledger
	logger *zap.Logger
}

// NewLedgerHandler constructs the HTTP handler adapter.
func NewLedgerHandler(l *ledger.Ledger, logger *zap.Logger) *LedgerHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerHandler{ledger: l, logger: logger}
}

// Farms lists the farms records can be assigned to.
func (h *LedgerHandler) Farms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"farms": h.ledger.Farms()})
}

// FinancialSummary reports purchases and sales overall and per species.
func (h *LedgerHandler) FinancialSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledger.FinancialSummary())
}

func (h *LedgerHandler) bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.logger.Warn("invalid request body", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return false
	}
	return true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}
