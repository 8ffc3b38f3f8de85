package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/farmledger/internal/domain/models"
)

// ListMilkProductions returns the live production entries.
func (h *LedgerHandler) ListMilkProductions(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledger.MilkProductions())
}

// CreateMilkProduction records a day's production.
func (h *LedgerHandler) CreateMilkProduction(c *gin.Context) {
	var p models.MilkProduction
	if !h.bind(c, &p) {
		return
	}
	created, err := h.ledger.AddMilkProduction(p)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// AddMilkExpense attaches an expense to a production entry.
func (h *LedgerHandler) AddMilkExpense(c *gin.Context) {
	var e models.MilkExpense
	if !h.bind(c, &e) {
		return
	}
	created, ok, err := h.ledger.AddMilkExpense(c.Param("id"), e)
	if !ok {
		notFound(c, "milk production")
		return
	}
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateMilkProduction applies a partial update.
func (h *LedgerHandler) UpdateMilkProduction(c *gin.Context) {
	var patch models.MilkProductionPatch
	if !h.bind(c, &patch) {
		return
	}
	updated, ok, err := h.ledger.UpdateMilkProduction(c.Param("id"), patch)
	if !ok {
		notFound(c, "milk production")
		return
	}
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteMilkProduction removes an entry.
func (h *LedgerHandler) DeleteMilkProduction(c *gin.Context) {
	if !h.ledger.DeleteMilkProduction(c.Param("id")) {
		notFound(c, "milk production")
		return
	}
	c.Status(http.StatusNoContent)
}

// MilkSummary aggregates the current year. Prior-year entries still live
// are archived first.
func (h *LedgerHandler) MilkSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledger.MilkSummary())
}

// ListArchives returns every yearly archive in creation order.
func (h *LedgerHandler) ListArchives(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledger.Archives())
}

// HistoricalMonth looks up an archived month.
func (h *LedgerHandler) HistoricalMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a number"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be between 1 and 12"})
		return
	}

	agg, ok := h.ledger.HistoricalMonth(year, time.Month(month))
	if !ok {
		notFound(c, "archived month")
		return
	}
	c.JSON(http.StatusOK, agg)
}
