// internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhinav21769/abros-healthcare-backend/internal/models"
)

// ErrNotFound is returned when a lookup matches no document.
var ErrNotFound = errors.New("document not found")

// ConflictError reports which unique field an insert or update collided on.
type ConflictError struct {
	Field string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("duplicate value for unique field %q", e.Field)
}

// ListOptions carries pagination and sorting for list queries.
// A Limit <= 0 means no pagination.
type ListOptions struct {
	Page   int
	Limit  int
	SortBy string
	Order  string // "asc" or "desc"
}

func (o ListOptions) Skip() int {
	if o.Page < 1 || o.Limit <= 0 {
		return 0
	}
	return (o.Page - 1) * o.Limit
}

func (o ListOptions) Descending() bool {
	return !strings.EqualFold(o.Order, "asc")
}

// MedicineFilter is a conjunctive set of optional criteria; zero values
// mean "no constraint".
type MedicineFilter struct {
	Name              string // case-insensitive substring
	PackagingType     string // exact match
	ExpiresBefore     *time.Time
	ExpiresOnOrAfter  *time.Time
	ExpiresOnOrBefore *time.Time
	QuantityBelow     *int
}

// CustomerFilter holds case-insensitive substring criteria.
type CustomerFilter struct {
	Name    string
	Contact string
	DlNo    string
	GSTIN   string
}

// InventoryTotals aggregates quantity and value over the whole collection.
type InventoryTotals struct {
	TotalQuantity int64   `bson:"totalQuantity"`
	TotalValue    float64 `bson:"totalValue"`
}

type MedicineRepository interface {
	Insert(ctx context.Context, medicine *models.Medicine) error
	Find(ctx context.Context, filter MedicineFilter, opts ListOptions) ([]models.Medicine, error)
	Count(ctx context.Context, filter MedicineFilter) (int64, error)
	FindByID(ctx context.Context, id string) (*models.Medicine, error)
	UpdateByID(ctx context.Context, id string, set map[string]interface{}) (*models.Medicine, error)
	DeleteByID(ctx context.Context, id string) (*models.Medicine, error)
	FindSummaries(ctx context.Context, filter MedicineFilter, opts ListOptions) ([]models.MedicineSummary, error)
	Totals(ctx context.Context) (InventoryTotals, error)
}

type CustomerRepository interface {
	Insert(ctx context.Context, customer *models.Customer) error
	Find(ctx context.Context, filter CustomerFilter, opts ListOptions) ([]models.Customer, error)
	Count(ctx context.Context, filter CustomerFilter) (int64, error)
	FindByID(ctx context.Context, id string) (*models.Customer, error)
	FindByDlNo(ctx context.Context, dlNo string) (*models.Customer, error)
	UpdateByID(ctx context.Context, id string, set map[string]interface{}) (*models.Customer, error)
	DeleteByID(ctx context.Context, id string) (*models.Customer, error)
}
