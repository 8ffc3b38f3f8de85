package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmledger/internal/domain/models"
)

// ListAnimals returns the herd. ?status=active narrows to active animals.
func (h *LedgerHandler) ListAnimals(c *gin.Context) {
	if c.Query("status") == string(models.StatusActive) {
		c.JSON(http.StatusOK, h.ledger.ActiveAnimals())
		return
	}
	c.JSON(http.StatusOK, h.ledger.Animals())
}

// ActiveCounts returns the number of active animals per species.
func (h *LedgerHandler) ActiveCounts(c *gin.Context) {
	counts := make(map[models.Species]int, len(models.AllSpecies))
	for _, s := range models.AllSpecies {
		counts[s] = h.ledger.CountActive(s)
	}
	c.JSON(http.StatusOK, counts)
}

// CreateAnimal registers a new animal.
func (h *LedgerHandler) CreateAnimal(c *gin.Context) {
	var a models.Animal
	if !h.bind(c, &a) {
		return
	}
	created, err := h.ledger.AddAnimal(a)
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetAnimal returns a single animal.
func (h *LedgerHandler) GetAnimal(c *gin.Context) {
	a, ok := h.ledger.Animal(c.Param("id"))
	if !ok {
		notFound(c, "animal")
		return
	}
	c.JSON(http.StatusOK, a)
}

// UpdateAnimal applies a partial update.
func (h *LedgerHandler) UpdateAnimal(c *gin.Context) {
	var patch models.AnimalPatch
	if !h.bind(c, &patch) {
		return
	}

	updated, ok, err := h.ledger.UpdateAnimal(c.Param("id"), patch)
	if !ok {
		notFound(c, "animal")
		return
	}
	if err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteAnimal removes an animal.
func (h *LedgerHandler) DeleteAnimal(c *gin.Context) {
	id := c.Param("id")
	if !h.ledger.DeleteAnimal(id) {
		h.logger.Warn("delete animal failed", zap.String("id", id))
		notFound(c, "animal")
		return
	}
	c.Status(http.StatusNoContent)
}

// AnimalAge renders the animal's age as of today.
func (h *LedgerHandler) AnimalAge(c *gin.Context) {
	age, ok := h.ledger.AgeOf(c.Param("id"))
	if !ok {
		notFound(c, "animal")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"years":  age.Years,
		"months": age.Months,
		"label":  age.String(),
	})
}
