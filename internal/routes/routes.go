package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	handler "freelance-marketplace-backend/internal/handlers"
	"freelance-marketplace-backend/internal/middleware"
	"freelance-marketplace-backend/internal/repository"
	"freelance-marketplace-backend/internal/services/calendar"
	"freelance-marketplace-backend/internal/services/escrow"
	"freelance-marketplace-backend/internal/services/paymentstatus"
	"freelance-marketplace-backend/internal/services/proposals"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	transactionRepo := repository.NewTransactionRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	eventRepo := repository.NewEventRepository(db)

	calendarSvc := calendar.NewService(eventRepo)
	escrowSvc := escrow.NewService(transactionRepo, projectRepo, proposalRepo)
	proposalSvc := proposals.NewService(proposalRepo, projectRepo, calendarSvc, escrowSvc)
	statusSvc := paymentstatus.NewService(projectRepo, proposalRepo, transactionRepo)

	paymentHandler := handler.NewPaymentHandler(escrowSvc, statusSvc)
	proposalHandler := handler.NewProposalHandler(proposalSvc)
	projectHandler := handler.NewProjectHandler(projectRepo, calendarSvc)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	authed := api.Group("")
	authed.Use(middleware.Auth())

	projects := authed.Group("/projects")
	projects.POST("", projectHandler.Create)
	projects.GET("/:id", projectHandler.Get)
	projects.GET("/:id/events", projectHandler.ListEvents)
	projects.GET("/:id/proposals", proposalHandler.ListByProject)
	projects.GET("/:id/payment-status", paymentHandler.GetProjectPaymentStatus)
	projects.POST("/:id/escrow/deposit", paymentHandler.Deposit)
	projects.POST("/:id/escrow/release", paymentHandler.Release)

	props := authed.Group("/proposals")
	props.POST("", proposalHandler.Create)
	props.POST("/:id/accept", proposalHandler.Accept)
	props.POST("/:id/reject", proposalHandler.Reject)

	authed.GET("/payments/pending", paymentHandler.GetPendingPayments)
	authed.GET("/transactions", paymentHandler.ListTransactions)
}
