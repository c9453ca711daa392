// internal/api/handlers/medicine_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhinav21769/abros-healthcare-backend/internal/models"
	"github.com/abhinav21769/abros-healthcare-backend/internal/repository"
)

const lowStockThreshold = 10

type MedicineHandler struct {
	Medicines repository.MedicineRepository
}

type CreateMedicineRequest struct {
	Name          string    `json:"name" binding:"required"`
	ExpiryDate    time.Time `json:"expiryDate" binding:"required"`
	PackagingType string    `json:"packagingType" binding:"required,packaging"`
	MRP           *float64  `json:"mrp" binding:"required,gte=0"`
	Quantity      *int      `json:"quantity" binding:"omitempty,gte=0"`
	BatchNumber   string    `json:"batchNumber"`
	Manufacturer  string    `json:"manufacturer"`
	Description   string    `json:"description"`
}

type UpdateMedicineRequest struct {
	Name          *string    `json:"name"`
	ExpiryDate    *time.Time `json:"expiryDate"`
	PackagingType *string    `json:"packagingType" binding:"omitempty,packaging"`
	MRP           *float64   `json:"mrp" binding:"omitempty,gte=0"`
	Quantity      *int       `json:"quantity" binding:"omitempty,gte=0"`
	BatchNumber   *string    `json:"batchNumber"`
	Manufacturer  *string    `json:"manufacturer"`
	Description   *string    `json:"description"`
}

// CreateMedicine validates and inserts a new medicine record.
func (h *MedicineHandler) CreateMedicine(c *gin.Context) {
	var req CreateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to create medicine", "error": err.Error()})
		return
	}

	if !req.ExpiryDate.After(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to create medicine", "error": "Expiry date must be in the future"})
		return
	}

	medicine := models.Medicine{
		Name:          strings.TrimSpace(req.Name),
		ExpiryDate:    req.ExpiryDate,
		PackagingType: req.PackagingType,
		MRP:           *req.MRP,
		BatchNumber:   strings.TrimSpace(req.BatchNumber),
		Manufacturer:  strings.TrimSpace(req.Manufacturer),
		Description:   strings.TrimSpace(req.Description),
	}
	if req.Quantity != nil {
		medicine.Quantity = *req.Quantity
	}

	if err := h.Medicines.Insert(context.Background(), &medicine); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to create medicine", "error": err.Error()})
		return
	}

	medicine.Derive(time.Now())
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Medicine created successfully", "data": medicine})
}

// GetAllMedicines lists medicines with optional filters, sorting and pagination.
func (h *MedicineHandler) GetAllMedicines(c *gin.Context) {
	opts := listOptionsFromQuery(c)

	filter := repository.MedicineFilter{
		Name:          c.Query("name"),
		PackagingType: c.Query("packagingType"),
	}

	// Evaluated once so the page and the count agree on "now".
	now := time.Now()
	switch c.Query("expired") {
	case "true":
		filter.ExpiresBefore = &now
	case "false":
		filter.ExpiresOnOrAfter = &now
	}

	medicines, err := h.Medicines.Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch medicines", "error": err.Error()})
		return
	}

	total, err := h.Medicines.Count(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch medicines", "error": err.Error()})
		return
	}

	for i := range medicines {
		medicines[i].Derive(now)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       medicines,
		"pagination": paginationMeta(opts, total),
	})
}

// GetMedicineByID returns a single medicine record.
func (h *MedicineHandler) GetMedicineByID(c *gin.Context) {
	medicine, err := h.Medicines.FindByID(context.Background(), c.Param("id"))
	if err == repository.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Medicine not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch medicine", "error": err.Error()})
		return
	}

	medicine.Derive(time.Now())
	c.JSON(http.StatusOK, gin.H{"success": true, "data": medicine})
}

// UpdateMedicine merge-updates a medicine; only fields present in the body
// are validated and written.
func (h *MedicineHandler) UpdateMedicine(c *gin.Context) {
	var req UpdateMedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to update medicine", "error": err.Error()})
		return
	}

	set := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to update medicine", "error": "Medicine name is required"})
			return
		}
		set["name"] = name
	}
	if req.ExpiryDate != nil {
		if !req.ExpiryDate.After(time.Now()) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to update medicine", "error": "Expiry date must be in the future"})
			return
		}
		set["expiryDate"] = *req.ExpiryDate
	}
	if req.PackagingType != nil {
		set["packagingType"] = *req.PackagingType
	}
	if req.MRP != nil {
		set["mrp"] = *req.MRP
	}
	if req.Quantity != nil {
		set["quantity"] = *req.Quantity
	}
	if req.BatchNumber != nil {
		set["batchNumber"] = strings.TrimSpace(*req.BatchNumber)
	}
	if req.Manufacturer != nil {
		set["manufacturer"] = strings.TrimSpace(*req.Manufacturer)
	}
	if req.Description != nil {
		set["description"] = strings.TrimSpace(*req.Description)
	}

	medicine, err := h.Medicines.UpdateByID(context.Background(), c.Param("id"), set)
	if err == repository.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Medicine not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to update medicine", "error": err.Error()})
		return
	}

	medicine.Derive(time.Now())
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Medicine updated successfully", "data": medicine})
}

// DeleteMedicine removes a medicine and returns the deleted record.
func (h *MedicineHandler) DeleteMedicine(c *gin.Context) {
	medicine, err := h.Medicines.DeleteByID(context.Background(), c.Param("id"))
	if err == repository.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Medicine not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete medicine", "error": err.Error()})
		return
	}

	medicine.Derive(time.Now())
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Medicine deleted successfully", "data": medicine})
}

// GetMedicinesExpiringSoon lists stock expiring within the requested window,
// soonest first.
func (h *MedicineHandler) GetMedicinesExpiringSoon(c *gin.Context) {
	days := daysWindow(c)
	now := time.Now()
	future := now.AddDate(0, 0, days)

	medicines, err := h.Medicines.Find(
		context.Background(),
		repository.MedicineFilter{ExpiresOnOrAfter: &now, ExpiresOnOrBefore: &future},
		repository.ListOptions{SortBy: "expiryDate", Order: "asc"},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch expiring medicines", "error": err.Error()})
		return
	}

	for i := range medicines {
		medicines[i].Derive(now)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Medicines expiring within %d days", days),
		"count":   len(medicines),
		"data":    medicines,
	})
}

// GetExpiredMedicines lists already-expired stock, most recently expired first.
func (h *MedicineHandler) GetExpiredMedicines(c *gin.Context) {
	now := time.Now()

	medicines, err := h.Medicines.Find(
		context.Background(),
		repository.MedicineFilter{ExpiresBefore: &now},
		repository.ListOptions{SortBy: "expiryDate", Order: "desc"},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch expired medicines", "error": err.Error()})
		return
	}

	for i := range medicines {
		medicines[i].Derive(now)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(medicines), "data": medicines})
}

// GetInventoryStats computes the dashboard counts, totals and the two
// short report lists in one request.
func (h *MedicineHandler) GetInventoryStats(c *gin.Context) {
	days := daysWindow(c)
	now := time.Now()
	future := now.AddDate(0, 0, days)
	ctx := context.Background()

	expiredFilter := repository.MedicineFilter{ExpiresBefore: &now}
	expiringFilter := repository.MedicineFilter{ExpiresOnOrAfter: &now, ExpiresOnOrBefore: &future}
	low := lowStockThreshold

	totalStock, err := h.Medicines.Count(ctx, repository.MedicineFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch inventory stats", "error": err.Error()})
		return
	}
	expiredStock, err := h.Medicines.Count(ctx, expiredFilter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch inventory stats", "error": err.Error()})
		return
	}
	expiringStock, err := h.Medicines.Count(ctx, expiringFilter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch inventory stats", "error": err.Error()})
		return
	}
	activeStock, err := h.Medicines.Count(ctx, repository.MedicineFilter{ExpiresOnOrAfter: &now})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch inventory stats", "error": err.Error()})
		return
	}
	lowStockCount, err := h.Medicines.Count(ctx, repository.MedicineFilter{QuantityBelow: &low})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch inventory stats", "error": err.Error()})
		return
	}

	totals, err := h.Medicines.Totals(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch inventory stats", "error": err.Error()})
		return
	}

	expiredList, err := h.Medicines.FindSummaries(ctx, expiredFilter,
		repository.ListOptions{SortBy: "expiryDate", Order: "desc", Limit: 10})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch inventory stats", "error": err.Error()})
		return
	}
	expiringList, err := h.Medicines.FindSummaries(ctx, expiringFilter,
		repository.ListOptions{SortBy: "expiryDate", Order: "asc", Limit: 10})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch inventory stats", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Inventory statistics",
		"stats": gin.H{
			"totalStock":          totalStock,
			"activeStock":         activeStock,
			"expiredStock":        expiredStock,
			"expiringStock":       expiringStock,
			"expiringWithinDays":  days,
			"lowStockCount":       lowStockCount,
			"totalQuantity":       totals.TotalQuantity,
			"totalInventoryValue": fmt.Sprintf("%.2f", totals.TotalValue),
		},
		"expiredMedicines": gin.H{
			"count": expiredStock,
			"list":  expiredList,
		},
		"expiringMedicines": gin.H{
			"count":      expiringStock,
			"withinDays": days,
			"list":       expiringList,
		},
	})
}

// daysWindow reads the "days" query param, falling back to 30.
func daysWindow(c *gin.Context) int {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days <= 0 {
		return 30
	}
	return days
}
