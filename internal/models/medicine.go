// internal/models/medicine.go
package models

import (
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PackagingTypes is the set of accepted values for Medicine.PackagingType.
var PackagingTypes = []string{
	"Tablet", "Capsule", "Syrup", "Injection", "Cream",
	"Ointment", "Drops", "Powder", "Other",
}

func IsValidPackagingType(value string) bool {
	for _, t := range PackagingTypes {
		if t == value {
			return true
		}
	}
	return false
}

// PackagingValidator is registered on gin's binding engine under the
// "packaging" tag so requests fail binding with a 400 instead of reaching
// the store with a bad enum value.
func PackagingValidator(fl validator.FieldLevel) bool {
	return IsValidPackagingType(fl.Field().String())
}

type Medicine struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	ExpiryDate    time.Time          `bson:"expiryDate" json:"expiryDate"`
	PackagingType string             `bson:"packagingType" json:"packagingType"`
	MRP           float64            `bson:"mrp" json:"mrp"`
	Quantity      int                `bson:"quantity" json:"quantity"`
	BatchNumber   string             `bson:"batchNumber,omitempty" json:"batchNumber,omitempty"`
	Manufacturer  string             `bson:"manufacturer,omitempty" json:"manufacturer,omitempty"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Derived per request, never persisted.
	IsExpired       bool `bson:"-" json:"isExpired"`
	DaysUntilExpiry int  `bson:"-" json:"daysUntilExpiry"`
}

// Derive fills the computed fields relative to now.
func (m *Medicine) Derive(now time.Time) {
	m.IsExpired = m.ExpiryDate.Before(now)
	m.DaysUntilExpiry = int(math.Ceil(m.ExpiryDate.Sub(now).Hours() / 24))
}

// MedicineSummary is the projection used by inventory reports.
type MedicineSummary struct {
	Name         string    `bson:"name" json:"name"`
	ExpiryDate   time.Time `bson:"expiryDate" json:"expiryDate"`
	Quantity     int       `bson:"quantity" json:"quantity"`
	MRP          float64   `bson:"mrp" json:"mrp"`
	Manufacturer string    `bson:"manufacturer,omitempty" json:"manufacturer,omitempty"`
}
