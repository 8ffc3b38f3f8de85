package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmledger/internal/server/handlers"
)

// SessionChecker reports whether the dashboard session is signed in.
type SessionChecker interface {
	IsAuthenticated() bool
}

// Handlers groups the HTTP adapters mounted on the engine.
type Handlers struct {
	Ledger *handlers.LedgerHandler
	Access *handlers.AccessHandler
	Report *handlers.ReportHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, session SessionChecker, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/auth/login", h.Access.Login)

	api := r.Group("/", requireSession(session))
	{
		api.POST("/auth/logout", h.Access.Logout)
		api.GET("/auth/session", h.Access.Session)

		api.GET("/users", h.Access.ListUsers)
		api.POST("/users", h.Access.CreateUser)
		api.PUT("/users/:id", h.Access.UpdateUser)
		api.DELETE("/users/:id", h.Access.DeleteUser)
		api.POST("/users/:id/toggle", h.Access.ToggleUser)

		api.GET("/animals", h.Ledger.ListAnimals)
		api.POST("/animals", h.Ledger.CreateAnimal)
		api.GET("/animals/counts", h.Ledger.ActiveCounts)
		api.GET("/animals/:id", h.Ledger.GetAnimal)
		api.PATCH("/animals/:id", h.Ledger.UpdateAnimal)
		api.DELETE("/animals/:id", h.Ledger.DeleteAnimal)
		api.GET("/animals/:id/age", h.Ledger.AnimalAge)

		api.GET("/vaccinations", h.Ledger.ListVaccinations)
		api.POST("/vaccinations", h.Ledger.CreateVaccination)
		api.GET("/vaccinations/upcoming", h.Ledger.UpcomingVaccinations)
		api.PATCH("/vaccinations/:id", h.Ledger.UpdateVaccination)
		api.DELETE("/vaccinations/:id", h.Ledger.DeleteVaccination)

		api.GET("/milk", h.Ledger.ListMilkProductions)
		api.POST("/milk", h.Ledger.CreateMilkProduction)
		api.GET("/milk/summary", h.Ledger.MilkSummary)
		api.GET("/milk/archives", h.Ledger.ListArchives)
		api.GET("/milk/archives/:year/:month", h.Ledger.HistoricalMonth)
		api.PATCH("/milk/:id", h.Ledger.UpdateMilkProduction)
		api.DELETE("/milk/:id", h.Ledger.DeleteMilkProduction)
		api.POST("/milk/:id/expenses", h.Ledger.AddMilkExpense)

		api.GET("/finance/summary", h.Ledger.FinancialSummary)
		api.GET("/farms", h.Ledger.Farms)

		api.GET("/reports/digest", h.Report.Digest)
		api.POST("/reports/digest/send", h.Report.SendDigest)
	}

	logger.Info("router initialized")
	return r
}

func requireSession(session SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.IsAuthenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
