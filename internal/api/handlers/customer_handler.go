// internal/api/handlers/customer_handler.go
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abhinav21769/abros-healthcare-backend/internal/models"
	"github.com/abhinav21769/abros-healthcare-backend/internal/repository"
)

type CustomerHandler struct {
	Customers repository.CustomerRepository
}

type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Contact string `json:"contact" binding:"required"`
	GSTIN   string `json:"gstin" binding:"required"`
	DlNo    string `json:"dlNo" binding:"required"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Contact *string `json:"contact"`
	GSTIN   *string `json:"gstin"`
	DlNo    *string `json:"dlNo"`
}

// conflictMessage mirrors the duplicate-key wording the API has always used,
// e.g. "Customer with this GSTIN already exists".
func conflictMessage(conflict repository.ConflictError) string {
	return fmt.Sprintf("Customer with this %s already exists", strings.ToUpper(conflict.Field))
}

// CreateCustomer validates and inserts a new customer.
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to create customer", "error": err.Error()})
		return
	}

	customer := models.Customer{
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		Contact: strings.TrimSpace(req.Contact),
		GSTIN:   strings.ToUpper(strings.TrimSpace(req.GSTIN)),
		DlNo:    strings.ToUpper(strings.TrimSpace(req.DlNo)),
	}

	if err := h.Customers.Insert(context.Background(), &customer); err != nil {
		var conflict repository.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": conflictMessage(conflict), "error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to create customer", "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Customer created successfully", "data": customer})
}

// GetAllCustomers lists customers with optional substring filters,
// sorting and pagination.
func (h *CustomerHandler) GetAllCustomers(c *gin.Context) {
	opts := listOptionsFromQuery(c)

	filter := repository.CustomerFilter{
		Name:    c.Query("name"),
		Contact: c.Query("contact"),
		DlNo:    c.Query("dlNo"),
		GSTIN:   c.Query("gstin"),
	}

	customers, err := h.Customers.Find(context.Background(), filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch customers", "error": err.Error()})
		return
	}

	total, err := h.Customers.Count(context.Background(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch customers", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       customers,
		"pagination": paginationMeta(opts, total),
	})
}

// GetCustomerByID returns a single customer.
func (h *CustomerHandler) GetCustomerByID(c *gin.Context) {
	customer, err := h.Customers.FindByID(context.Background(), c.Param("id"))
	if err == repository.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Customer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch customer", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": customer})
}

// GetCustomerByDlNo looks a customer up by drug-license number. Input is
// upper-cased before matching against the stored value.
func (h *CustomerHandler) GetCustomerByDlNo(c *gin.Context) {
	customer, err := h.Customers.FindByDlNo(context.Background(), c.Param("dlNo"))
	if err == repository.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Customer not found with this DL NO"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch customer", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": customer})
}

// UpdateCustomer merge-updates a customer; unspecified fields keep their
// prior value.
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var req UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to update customer", "error": err.Error()})
		return
	}

	set := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to update customer", "error": "Customer name is required"})
			return
		}
		set["name"] = name
	}
	if req.Address != nil {
		address := strings.TrimSpace(*req.Address)
		if address == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to update customer", "error": "Address is required"})
			return
		}
		set["address"] = address
	}
	if req.Contact != nil {
		set["contact"] = strings.TrimSpace(*req.Contact)
	}
	if req.GSTIN != nil {
		set["gstin"] = strings.ToUpper(strings.TrimSpace(*req.GSTIN))
	}
	if req.DlNo != nil {
		set["dlNo"] = strings.ToUpper(strings.TrimSpace(*req.DlNo))
	}

	customer, err := h.Customers.UpdateByID(context.Background(), c.Param("id"), set)
	if err == repository.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Customer not found"})
		return
	}
	if err != nil {
		var conflict repository.ConflictError
		if errors.As(err, &conflict) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": conflictMessage(conflict), "error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to update customer", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Customer updated successfully", "data": customer})
}

// DeleteCustomer removes a customer and returns the deleted record.
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	customer, err := h.Customers.DeleteByID(context.Background(), c.Param("id"))
	if err == repository.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Customer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete customer", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Customer deleted successfully", "data": customer})
}

// GetCustomerStats reports the total customer count.
func (h *CustomerHandler) GetCustomerStats(c *gin.Context) {
	total, err := h.Customers.Count(context.Background(), repository.CustomerFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch customer stats", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Customer statistics",
		"stats": gin.H{
			"totalCustomers": total,
		},
	})
}
