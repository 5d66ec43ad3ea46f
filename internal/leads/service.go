package leads

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/tentenco/stellantis/internal/session"
	"github.com/tentenco/stellantis/pkg/db/models"
	"github.com/tentenco/stellantis/pkg/enums"
	pkgerrors "github.com/tentenco/stellantis/pkg/errors"
	"github.com/tentenco/stellantis/pkg/pagination"
)

// Service persists submitted orders and serves the dealer-facing listing.
// Record satisfies the session layer's lead sink.
type Service interface {
	Record(ctx context.Context, record session.SubmitRecord) error
	Get(ctx context.Context, id uuid.UUID) (models.Lead, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Lead, string, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.LeadStatus) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, record session.SubmitRecord) error {
	lead := models.Lead{
		SessionID:  record.SessionID,
		Brand:      record.Brand,
		ModelSlug:  record.ModelSlug,
		ModelName:  record.ModelName,
		ModelsCode: record.ModelsCode,

		EngineID:   record.EngineID,
		EngineName: record.EngineName,
		TrimID:     record.TrimID,
		TrimName:   record.TrimName,
		YearCode:   record.YearCode,
		ColorName:  record.ColorName,
		ColorCode:  record.ColorCode,

		AccessoryIDs:    pq.Int64Array(record.AccessoryIDs),
		AccessoriesText: record.AccessoriesText,

		TotalPrice:         record.TotalPrice,
		PaymentMode:        record.PaymentMode,
		DownPaymentPercent: record.DownPaymentPercent,
		DownPayment:        record.DownPayment,
		InstallmentMonths:  record.InstallmentMonths,
		MonthlyPayment:     record.MonthlyPayment,

		Area:       record.Area,
		DealerName: record.DealerName,

		BuyerName:  record.BuyerName,
		BuyerPhone: record.BuyerPhone,
		BuyerEmail: record.BuyerEmail,

		Status: enums.LeadStatusNew,
	}
	return s.repo.Create(ctx, &lead)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (models.Lead, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Lead, string, error) {
	if filter.Brand != "" && !filter.Brand.IsValid() {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "unknown brand filter")
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "unknown status filter")
	}
	return s.repo.List(ctx, filter, params)
}

func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.LeadStatus) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown lead status")
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
