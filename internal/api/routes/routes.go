// internal/api/routes/routes.go
package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/abhinav21769/abros-healthcare-backend/internal/api/handlers"
	"github.com/abhinav21769/abros-healthcare-backend/internal/api/middleware"
	"github.com/abhinav21769/abros-healthcare-backend/internal/models"
	"github.com/abhinav21769/abros-healthcare-backend/internal/repository"
)

// SetupRouter wires the repositories into handlers and registers all routes.
func SetupRouter(
	medicines repository.MedicineRepository,
	customers repository.CustomerRepository,
) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("packaging", models.PackagingValidator)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Something went wrong!",
			"error":   fmt.Sprint(recovered),
		})
	}))
	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	medicineHandler := &handlers.MedicineHandler{Medicines: medicines}
	customerHandler := &handlers.CustomerHandler{Customers: customers}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Abros Healthcare - Medicine Inventory Management System",
			"version": "1.0.0",
			"endpoints": gin.H{
				"medicines": "/api/medicines",
				"customers": "/api/customers",
			},
		})
	})

	api := router.Group("/api")
	{
		// Literal routes go before the :id routes so "stats" and friends
		// are never captured as an identifier.
		medicineRoutes := api.Group("/medicines")
		{
			medicineRoutes.POST("/", medicineHandler.CreateMedicine)
			medicineRoutes.GET("/", medicineHandler.GetAllMedicines)
			medicineRoutes.GET("/stats", medicineHandler.GetInventoryStats)
			medicineRoutes.GET("/expiring-soon", medicineHandler.GetMedicinesExpiringSoon)
			medicineRoutes.GET("/expired", medicineHandler.GetExpiredMedicines)
			medicineRoutes.GET("/:id", medicineHandler.GetMedicineByID)
			medicineRoutes.PUT("/:id", medicineHandler.UpdateMedicine)
			medicineRoutes.DELETE("/:id", medicineHandler.DeleteMedicine)
		}

		customerRoutes := api.Group("/customers")
		{
			customerRoutes.POST("/", customerHandler.CreateCustomer)
			customerRoutes.GET("/", customerHandler.GetAllCustomers)
			customerRoutes.GET("/stats", customerHandler.GetCustomerStats)
			customerRoutes.GET("/dl/:dlNo", customerHandler.GetCustomerByDlNo)
			customerRoutes.GET("/:id", customerHandler.GetCustomerByID)
			customerRoutes.PUT("/:id", customerHandler.UpdateCustomer)
			customerRoutes.DELETE("/:id", customerHandler.DeleteCustomer)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Route not found",
		})
	})

	return router
}
