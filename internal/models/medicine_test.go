// internal/models/medicine_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPackagingType(t *testing.T) {
	for _, value := range PackagingTypes {
		assert.True(t, IsValidPackagingType(value), value)
	}

	assert.False(t, IsValidPackagingType("tablet"))
	assert.False(t, IsValidPackagingType("Pill"))
	assert.False(t, IsValidPackagingType(""))
}

func TestDerive(t *testing.T) {
	now := time.Now()

	fresh := Medicine{ExpiryDate: now.Add(48*time.Hour + time.Minute)}
	fresh.Derive(now)
	assert.False(t, fresh.IsExpired)
	assert.Equal(t, 3, fresh.DaysUntilExpiry, "partial days round up")

	expired := Medicine{ExpiryDate: now.Add(-time.Second)}
	expired.Derive(now)
	assert.True(t, expired.IsExpired)
	assert.LessOrEqual(t, expired.DaysUntilExpiry, 0)

	exact := Medicine{ExpiryDate: now.Add(24 * time.Hour)}
	exact.Derive(now)
	assert.False(t, exact.IsExpired)
	assert.Equal(t, 1, exact.DaysUntilExpiry)
}
