package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/farmledger/internal/domain/models"
)

// ListVaccinations returns every vaccination record.
func (h *LedgerHandler) ListVaccinations(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledger.Vaccinations())
}

// UpcomingVaccinations returns records due within the next 30 days.
func (h *LedgerHandler) UpcomingVaccinations(c *gin.Context) {
	c.JSON(http.StatusOK, h.ledger.UpcomingVaccinations())
}

// CreateVaccination registers a vaccine schedule.
func (h *LedgerHandler) CreateVaccination(c *gin.Context) {
	var v models.VaccinationRecord
	if !h.bind(c, &v) {
		return
	}
	created, err := h.ledger.AddVaccination(v)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateVaccination applies a partial update.
func (h *LedgerHandler) UpdateVaccination(c *gin.Context) {
	var patch models.VaccinationPatch
	if !h.bind(c, &patch) {
		return
	}
	updated, ok, err := h.ledger.UpdateVaccination(c.Param("id"), patch)
	if !ok {
		notFound(c, "vaccination")
		return
	}
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteVaccination removes a record.
func (h *LedgerHandler) DeleteVaccination(c *gin.Context) {
	if !h.ledger.DeleteVaccination(c.Param("id")) {
		notFound(c, "vaccination")
		return
	}
	c.Status(http.StatusNoContent)
}
