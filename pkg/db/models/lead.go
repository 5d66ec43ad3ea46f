package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/tentenco/stellantis/pkg/enums"
)

// Lead is one submitted order: the full configuration denormalized at submit
// time together with the buyer's contact details.
type Lead struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SessionID string    `gorm:"column:session_id;not null"`

	Brand      enums.Brand `gorm:"column:brand;type:text;not null"`
	ModelSlug  string      `gorm:"column:model_slug;not null"`
	ModelName  string      `gorm:"column:model_name;not null"`
	ModelsCode string      `gorm:"column:models_code"`

	EngineID   int64  `gorm:"column:engine_id;not null"`
	EngineName string `gorm:"column:engine_name"`
	TrimID     int64  `gorm:"column:trim_id;not null"`
	TrimName   string `gorm:"column:trim_name"`
	YearCode   string `gorm:"column:year_code"`
	ColorName  string `gorm:"column:color_name;not null"`
	ColorCode  string `gorm:"column:color_code"`

	AccessoryIDs    pq.Int64Array `gorm:"column:accessory_ids;type:bigint[]"`
	AccessoriesText string        `gorm:"column:accessories_text"`

	TotalPrice         int64             `gorm:"column:total_price;not null"`
	PaymentMode        enums.PaymentMode `gorm:"column:payment_mode;type:text;not null;default:'cash'"`
	DownPaymentPercent int               `gorm:"column:down_payment_percent;not null;default:0"`
	DownPayment        int64             `gorm:"column:down_payment;not null;default:0"`
	InstallmentMonths  int               `gorm:"column:installment_months;not null;default:0"`
	MonthlyPayment     int64             `gorm:"column:monthly_payment;not null;default:0"`

	Area       string `gorm:"column:area"`
	DealerName string `gorm:"column:dealer_name;not null"`

	BuyerName  string `gorm:"column:buyer_name;not null"`
	BuyerPhone string `gorm:"column:buyer_phone;not null"`
	BuyerEmail string `gorm:"column:buyer_email"`

	Status enums.LeadStatus `gorm:"column:status;type:text;not null;default:'new'"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table for GORM.
func (Lead) TableName() string { return "leads" }
