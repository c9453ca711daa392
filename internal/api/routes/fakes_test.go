// internal/api/routes/fakes_test.go
package routes

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhinav21769/abros-healthcare-backend/internal/models"
	"github.com/abhinav21769/abros-healthcare-backend/internal/repository"
)

// In-memory repositories mirroring the mongo implementations' semantics,
// so the full router can be exercised without a database.

type fakeMedicineRepo struct {
	medicines []models.Medicine
}

func (f *fakeMedicineRepo) Insert(_ context.Context, m *models.Medicine) error {
	now := time.Now()
	m.ID = primitive.NewObjectID()
	m.CreatedAt = now
	m.UpdatedAt = now
	f.medicines = append(f.medicines, *m)
	return nil
}

func medicineMatches(filter repository.MedicineFilter, m models.Medicine) bool {
	if filter.Name != "" && !strings.Contains(strings.ToLower(m.Name), strings.ToLower(filter.Name)) {
		return false
	}
	if filter.PackagingType != "" && m.PackagingType != filter.PackagingType {
		return false
	}
	if filter.ExpiresBefore != nil && !m.ExpiryDate.Before(*filter.ExpiresBefore) {
		return false
	}
	if filter.ExpiresOnOrAfter != nil && m.ExpiryDate.Before(*filter.ExpiresOnOrAfter) {
		return false
	}
	if filter.ExpiresOnOrBefore != nil && m.ExpiryDate.After(*filter.ExpiresOnOrBefore) {
		return false
	}
	if filter.QuantityBelow != nil && m.Quantity >= *filter.QuantityBelow {
		return false
	}
	return true
}

func compareMedicines(a, b models.Medicine, sortBy string) int {
	switch sortBy {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "expiryDate":
		return a.ExpiryDate.Compare(b.ExpiryDate)
	case "quantity":
		return a.Quantity - b.Quantity
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func (f *fakeMedicineRepo) filtered(filter repository.MedicineFilter, opts repository.ListOptions) []models.Medicine {
	var out []models.Medicine
	for _, m := range f.medicines {
		if medicineMatches(filter, m) {
			out = append(out, m)
		}
	}
	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = "createdAt"
	}
	sort.SliceStable(out, func(i, j int) bool {
		c := compareMedicines(out[i], out[j], sortBy)
		if opts.Descending() {
			return c > 0
		}
		return c < 0
	})
	return out
}

func (f *fakeMedicineRepo) Find(_ context.Context, filter repository.MedicineFilter, opts repository.ListOptions) ([]models.Medicine, error) {
	out := f.filtered(filter, opts)
	if opts.Limit > 0 {
		skip := opts.Skip()
		if skip >= len(out) {
			return []models.Medicine{}, nil
		}
		out = out[skip:]
		if len(out) > opts.Limit {
			out = out[:opts.Limit]
		}
	}
	if out == nil {
		out = []models.Medicine{}
	}
	return out, nil
}

func (f *fakeMedicineRepo) Count(_ context.Context, filter repository.MedicineFilter) (int64, error) {
	var n int64
	for _, m := range f.medicines {
		if medicineMatches(filter, m) {
			n++
		}
	}
	return n, nil
}

func (f *fakeMedicineRepo) FindByID(_ context.Context, id string) (*models.Medicine, error) {
	for _, m := range f.medicines {
		if m.ID.Hex() == id {
			found := m
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMedicineRepo) UpdateByID(_ context.Context, id string, set map[string]interface{}) (*models.Medicine, error) {
	for i := range f.medicines {
		if f.medicines[i].ID.Hex() != id {
			continue
		}
		m := &f.medicines[i]
		for k, v := range set {
			switch k {
			case "name":
				m.Name = v.(string)
			case "expiryDate":
				m.ExpiryDate = v.(time.Time)
			case "packagingType":
				m.PackagingType = v.(string)
			case "mrp":
				m.MRP = v.(float64)
			case "quantity":
				m.Quantity = v.(int)
			case "batchNumber":
				m.BatchNumber = v.(string)
			case "manufacturer":
				m.Manufacturer = v.(string)
			case "description":
				m.Description = v.(string)
			}
		}
		m.UpdatedAt = time.Now()
		found := *m
		return &found, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMedicineRepo) DeleteByID(_ context.Context, id string) (*models.Medicine, error) {
	for i, m := range f.medicines {
		if m.ID.Hex() == id {
			f.medicines = append(f.medicines[:i], f.medicines[i+1:]...)
			found := m
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMedicineRepo) FindSummaries(_ context.Context, filter repository.MedicineFilter, opts repository.ListOptions) ([]models.MedicineSummary, error) {
	out := f.filtered(filter, opts)
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	summaries := make([]models.MedicineSummary, 0, len(out))
	for _, m := range out {
		summaries = append(summaries, models.MedicineSummary{
			Name:         m.Name,
			ExpiryDate:   m.ExpiryDate,
			Quantity:     m.Quantity,
			MRP:          m.MRP,
			Manufacturer: m.Manufacturer,
		})
	}
	return summaries, nil
}

func (f *fakeMedicineRepo) Totals(_ context.Context) (repository.InventoryTotals, error) {
	var totals repository.InventoryTotals
	for _, m := range f.medicines {
		totals.TotalQuantity += int64(m.Quantity)
		totals.TotalValue += m.MRP * float64(m.Quantity)
	}
	return totals, nil
}

type fakeCustomerRepo struct {
	customers []models.Customer
}

func (f *fakeCustomerRepo) conflict(gstin, dlNo, excludeID string) error {
	for _, c := range f.customers {
		if c.ID.Hex() == excludeID {
			continue
		}
		if gstin != "" && c.GSTIN == gstin {
			return repository.ConflictError{Field: "gstin"}
		}
		if dlNo != "" && c.DlNo == dlNo {
			return repository.ConflictError{Field: "dlNo"}
		}
	}
	return nil
}

func (f *fakeCustomerRepo) Insert(_ context.Context, c *models.Customer) error {
	if err := f.conflict(c.GSTIN, c.DlNo, ""); err != nil {
		return err
	}
	now := time.Now()
	c.ID = primitive.NewObjectID()
	c.CreatedAt = now
	c.UpdatedAt = now
	f.customers = append(f.customers, *c)
	return nil
}

func customerMatches(filter repository.CustomerFilter, c models.Customer) bool {
	contains := func(value, sub string) bool {
		return sub == "" || strings.Contains(strings.ToLower(value), strings.ToLower(sub))
	}
	return contains(c.Name, filter.Name) &&
		contains(c.Contact, filter.Contact) &&
		contains(c.DlNo, filter.DlNo) &&
		contains(c.GSTIN, filter.GSTIN)
}

func (f *fakeCustomerRepo) Find(_ context.Context, filter repository.CustomerFilter, opts repository.ListOptions) ([]models.Customer, error) {
	var out []models.Customer
	for _, c := range f.customers {
		if customerMatches(filter, c) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		var c int
		if opts.SortBy == "name" {
			c = strings.Compare(out[i].Name, out[j].Name)
		} else {
			c = out[i].CreatedAt.Compare(out[j].CreatedAt)
		}
		if opts.Descending() {
			return c > 0
		}
		return c < 0
	})
	if opts.Limit > 0 {
		skip := opts.Skip()
		if skip >= len(out) {
			return []models.Customer{}, nil
		}
		out = out[skip:]
		if len(out) > opts.Limit {
			out = out[:opts.Limit]
		}
	}
	if out == nil {
		out = []models.Customer{}
	}
	return out, nil
}

func (f *fakeCustomerRepo) Count(_ context.Context, filter repository.CustomerFilter) (int64, error) {
	var n int64
	for _, c := range f.customers {
		if customerMatches(filter, c) {
			n++
		}
	}
	return n, nil
}

func (f *fakeCustomerRepo) FindByID(_ context.Context, id string) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.ID.Hex() == id {
			found := c
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCustomerRepo) FindByDlNo(_ context.Context, dlNo string) (*models.Customer, error) {
	upper := strings.ToUpper(dlNo)
	for _, c := range f.customers {
		if c.DlNo == upper {
			found := c
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCustomerRepo) UpdateByID(_ context.Context, id string, set map[string]interface{}) (*models.Customer, error) {
	var gstin, dlNo string
	if v, ok := set["gstin"]; ok {
		gstin = v.(string)
	}
	if v, ok := set["dlNo"]; ok {
		dlNo = v.(string)
	}
	for i := range f.customers {
		if f.customers[i].ID.Hex() != id {
			continue
		}
		if err := f.conflict(gstin, dlNo, id); err != nil {
			return nil, err
		}
		c := &f.customers[i]
		for k, v := range set {
			switch k {
			case "name":
				c.Name = v.(string)
			case "address":
				c.Address = v.(string)
			case "contact":
				c.Contact = v.(string)
			case "gstin":
				c.GSTIN = v.(string)
			case "dlNo":
				c.DlNo = v.(string)
			}
		}
		c.UpdatedAt = time.Now()
		found := *c
		return &found, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCustomerRepo) DeleteByID(_ context.Context, id string) (*models.Customer, error) {
	for i, c := range f.customers {
		if c.ID.Hex() == id {
			f.customers = append(f.customers[:i], f.customers[i+1:]...)
			found := c
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}
