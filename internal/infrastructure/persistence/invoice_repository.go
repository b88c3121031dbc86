package persistence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/printshop/backend/internal/domain/invoicing"
	"github.com/printshop/backend/internal/domain/shared"
	"github.com/printshop/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Save inserts the aggregate, or fully updates it replacing item rows.
// Payments are append-only: existing rows are never touched, new ones
// are inserted.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *invoicing.Invoice) error {
	db := dbFromContext(ctx, r.db)
	model := models.InvoiceModelFromDomain(invoice)

	var existing models.InvoiceModel
	err := db.Select("id").First(&existing, "id = ?", invoice.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if cerr := db.Create(model).Error; cerr != nil {
			return translateDuplicate(cerr)
		}
		return nil
	}
	if err != nil {
		return err
	}

	if err := db.Model(&models.InvoiceModel{}).Where("id = ?", invoice.ID).
		Omit(clause.Associations).
		Select("*").Omit("id", "created_at").
		Updates(scalarInvoiceColumns(model)).Error; err != nil {
		return translateDuplicate(err)
	}
	return r.saveChildren(db, model)
}

// SaveWithLock updates the aggregate guarded by the version column,
// replacing item rows and appending any new payment rows. Returns
// ErrConcurrencyConflict when another writer won.
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, invoice *invoicing.Invoice, expectedVersion int) error {
	db := dbFromContext(ctx, r.db)
	model := models.InvoiceModelFromDomain(invoice)

	result := db.Model(&models.InvoiceModel{}).
		Where("id = ? AND version = ?", invoice.ID, expectedVersion).
		Updates(scalarInvoiceColumns(model))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return r.saveChildren(db, model)
}

// saveChildren replaces the item (and cost) rows wholesale and inserts
// any payment rows not yet stored. Payments are append-only.
func (r *GormInvoiceRepository) saveChildren(db *gorm.DB, model *models.InvoiceModel) error {
	var itemIDs []uuid.UUID
	if err := db.Model(&models.InvoiceItemModel{}).
		Where("invoice_id = ?", model.ID).
		Pluck("id", &itemIDs).Error; err != nil {
		return err
	}
	if len(itemIDs) > 0 {
		if err := db.Where("invoice_item_id IN ?", itemIDs).Delete(&models.ItemCostModel{}).Error; err != nil {
			return err
		}
		if err := db.Where("invoice_id = ?", model.ID).Delete(&models.InvoiceItemModel{}).Error; err != nil {
			return err
		}
	}
	if len(model.Items) > 0 {
		if err := db.Create(&model.Items).Error; err != nil {
			return err
		}
	}
	if len(model.Payments) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.Payments).Error; err != nil {
			return err
		}
	}
	return nil
}

// FindByID loads the full aggregate with items, costs and payments
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.Invoice, error) {
	db := dbFromContext(ctx, r.db)

	var model models.InvoiceModel
	err := db.Preload("Items.Costs").Preload("Payments").
		First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber loads the full aggregate by its invoice number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*invoicing.Invoice, error) {
	db := dbFromContext(ctx, r.db)

	var model models.InvoiceModel
	err := db.Preload("Items.Costs").Preload("Payments").
		First(&model, "invoice_number = ?", invoiceNumber).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByNumber checks whether an invoice number is already taken
func (r *GormInvoiceRepository) ExistsByNumber(ctx context.Context, invoiceNumber string) (bool, error) {
	db := dbFromContext(ctx, r.db)

	var count int64
	err := db.Model(&models.InvoiceModel{}).
		Where("invoice_number = ?", invoiceNumber).
		Count(&count).Error
	return count > 0, err
}

// FindAll returns invoices matching the filter, newest first unless a
// sort is requested, without child rows (list views need only the
// header figures)
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter invoicing.InvoiceFilter) ([]invoicing.Invoice, error) {
	db := dbFromContext(ctx, r.db)

	sortField := ValidateSortField(filter.SortBy, InvoiceSortFields, "invoice_date")
	sortOrder := ValidateSortOrder(filter.SortOrder)

	var modelList []models.InvoiceModel
	query := r.applyFilter(db.Model(&models.InvoiceModel{}), filter).
		Order(sortField + " " + sortOrder + ", created_at DESC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&modelList).Error; err != nil {
		return nil, err
	}

	invoices := make([]invoicing.Invoice, 0, len(modelList))
	for i := range modelList {
		invoices = append(invoices, *modelList[i].ToDomain())
	}
	return invoices, nil
}

// Count returns the number of invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter invoicing.InvoiceFilter) (int64, error) {
	db := dbFromContext(ctx, r.db)

	var count int64
	err := r.applyFilter(db.Model(&models.InvoiceModel{}), filter).Count(&count).Error
	return count, err
}

// Delete removes the invoice with its items, costs and payments
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := dbFromContext(ctx, r.db)

	var itemIDs []uuid.UUID
	if err := db.Model(&models.InvoiceItemModel{}).
		Where("invoice_id = ?", id).
		Pluck("id", &itemIDs).Error; err != nil {
		return err
	}
	if len(itemIDs) > 0 {
		if err := db.Where("invoice_item_id IN ?", itemIDs).Delete(&models.ItemCostModel{}).Error; err != nil {
			return err
		}
	}
	if err := db.Where("invoice_id = ?", id).Delete(&models.InvoiceItemModel{}).Error; err != nil {
		return err
	}
	if err := db.Where("invoice_id = ?", id).Delete(&models.InvoicePaymentModel{}).Error; err != nil {
		return err
	}

	result := db.Delete(&models.InvoiceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// NextSequence returns the next per-day sequence number for invoice
// number generation (INV-YYYYMMDD-NNNNN). It is derived from the
// highest existing suffix for the day, not the row count, so numbers
// freed by deletes are never re-issued while a later one survives.
// The suffix is zero-padded, so the lexicographic max is the numeric max.
func (r *GormInvoiceRepository) NextSequence(ctx context.Context, day time.Time) (int64, error) {
	db := dbFromContext(ctx, r.db)

	prefix := fmt.Sprintf("INV-%s-%%", day.Format("20060102"))
	var numbers []string
	err := db.Model(&models.InvoiceModel{}).
		Where("invoice_number LIKE ?", prefix).
		Order("invoice_number DESC").
		Limit(1).
		Pluck("invoice_number", &numbers).Error
	if err != nil {
		return 0, err
	}
	if len(numbers) == 0 {
		return 1, nil
	}

	suffix := numbers[0][strings.LastIndex(numbers[0], "-")+1:]
	seq, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed invoice number %q: %w", numbers[0], err)
	}
	return seq + 1, nil
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter invoicing.InvoiceFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("invoice_number LIKE ? OR customer_name LIKE ?", pattern, pattern)
	}
	if filter.FromDate != nil {
		query = query.Where("invoice_date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("invoice_date <= ?", *filter.ToDate)
	}
	if filter.UnpaidOnly {
		query = query.Where("remaining_amount > 0 AND status <> ?", invoicing.StatusCancelled)
	}
	return query
}

// scalarInvoiceColumns builds the update map for the invoice header row
func scalarInvoiceColumns(m *models.InvoiceModel) map[string]any {
	return map[string]any{
		"invoice_number":   m.InvoiceNumber,
		"customer_id":      m.CustomerID,
		"customer_name":    m.CustomerName,
		"status":           m.Status,
		"discount":         m.Discount,
		"subtotal":         m.Subtotal,
		"total":            m.Total,
		"total_cost":       m.TotalCost,
		"profit":           m.Profit,
		"paid_amount":      m.PaidAmount,
		"remaining_amount": m.RemainingAmount,
		"invoice_date":     m.InvoiceDate,
		"delivery_date":    m.DeliveryDate,
		"notes":            m.Notes,
		"cancelled_at":     m.CancelledAt,
		"version":          m.Version,
		"updated_at":       time.Now(),
	}
}

// translateDuplicate maps duplicate-key violations onto the domain's
// AlreadyExists error so callers can retry number generation
func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.ErrAlreadyExists
	}
	return err
}
