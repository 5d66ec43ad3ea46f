package leads

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tentenco/stellantis/pkg/db/models"
	"github.com/tentenco/stellantis/pkg/enums"
	pkgerrors "github.com/tentenco/stellantis/pkg/errors"
	"github.com/tentenco/stellantis/pkg/pagination"
)

// ListFilter narrows lead listings.
type ListFilter struct {
	Brand      enums.Brand
	DealerName string
	Status     enums.LeadStatus
}

// Repository is the persistence surface for submitted leads.
type Repository interface {
	Create(ctx context.Context, lead *models.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (models.Lead, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Lead, string, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.LeadStatus) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, lead *models.Lead) error {
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(lead).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert lead")
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (models.Lead, error) {
	var lead models.Lead
	err := r.db.WithContext(ctx).First(&lead, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Lead{}, pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
	}
	if err != nil {
		return models.Lead{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load lead")
	}
	return lead, nil
}

// List pages newest-first with a (created_at, id) keyset cursor.
func (r *repository) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Lead, string, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse cursor")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	query := r.db.WithContext(ctx).Model(&models.Lead{})

	if filter.Brand != "" {
		query = query.Where("brand = ?", filter.Brand)
	}
	if filter.DealerName != "" {
		query = query.Where("dealer_name = ?", filter.DealerName)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if cursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.Lead
	err = query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list leads")
	}

	nextCursor := ""
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, nextCursor, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.LeadStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Lead{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "update lead status")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")
	}
	return nil
}
