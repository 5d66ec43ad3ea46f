package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tentenco/stellantis/api/responses"
	"github.com/tentenco/stellantis/api/validators"
	"github.com/tentenco/stellantis/internal/session"
	"github.com/tentenco/stellantis/pkg/enums"
	pkgerrors "github.com/tentenco/stellantis/pkg/errors"
	"github.com/tentenco/stellantis/pkg/logger"
	"github.com/tentenco/stellantis/pkg/metrics"
)

type sessionCreateRequest struct {
	Brand string `json:"brand" validate:"required"`
	Model string `json:"model" validate:"required"`
}

// SessionCreate boots a configurator session for one brand and model.
func SessionCreate(svc session.Service, m *metrics.ConfiguratorMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session service unavailable"))
			return
		}

		var payload sessionCreateRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		brand, err := enums.ParseBrand(payload.Brand)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown brand"))
			return
		}

		snap, err := svc.Create(r.Context(), brand, strings.TrimSpace(payload.Model))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncSessionsCreated()
		responses.WriteSuccessStatus(w, http.StatusCreated, snap)
	}
}

// SessionFetch returns the current snapshot without mutating anything.
func SessionFetch(svc session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.Snapshot(sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

type engineSelectRequest struct {
	EngineID int64 `json:"engine_id" validate:"required"`
}

// SessionSelectEngine picks an engine and re-cascades dependent options.
func SessionSelectEngine(svc session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload engineSelectRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.SelectEngine(sessionID, payload.EngineID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

type trimSelectRequest struct {
	TrimID int64 `json:"trim_id" validate:"required"`
}

func SessionSelectTrim(svc session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload trimSelectRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.SelectTrim(sessionID, payload.TrimID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

type yearSelectRequest struct {
	YearCode string `json:"year_code" validate:"required"`
}

func SessionSelectYear(svc session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload yearSelectRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.SelectYear(sessionID, payload.YearCode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

type colorSelectRequest struct {
	ColorName string `json:"color_name" validate:"required"`
}

func SessionSelectColor(svc session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload colorSelectRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.SelectColor(sessionID, payload.ColorName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

type accessoryToggleRequest struct {
	AccessoryID int64 `json:"accessory_id" validate:"required"`
}

// SessionToggleAccessory flips one optional extra on or off.
func SessionToggleAccessory(svc session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload accessoryToggleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.ToggleAccessory(sessionID, payload.AccessoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

type areaSelectRequest struct {
	Area string `json:"area" validate:"required"`
}

func SessionSelectArea(svc session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload areaSelectRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.SelectArea(sessionID, payload.Area)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

type dealerSelectRequest struct {
	DealerName string `json:"dealer_name" validate:"required"`
}

func SessionSelectDealer(svc session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload dealerSelectRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.SelectDealer(sessionID, payload.DealerName)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

type paymentRequest struct {
	Mode               string `json:"mode" validate:"required,oneof=cash installment"`
	DownPaymentPercent int    `json:"down_payment_percent"`
	InstallmentMonths  int    `json:"installment_months"`
}

// SessionSetPayment switches between cash and installment financing.
func SessionSetPayment(svc session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload paymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mode, err := enums.ParsePaymentMode(payload.Mode)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown payment mode"))
			return
		}

		snap, err := svc.SetPayment(sessionID, mode, payload.DownPaymentPercent, payload.InstallmentMonths)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

// SessionRefreshStock reloads dealer stock for the selected dealer. The
// response always reflects the newest refresh even when requests overlap.
func SessionRefreshStock(svc session.Service, m *metrics.ConfiguratorMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncStockRefreshes()
		snap, err := svc.RefreshStock(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, snap)
	}
}

type submitResponse struct {
	SessionID          string            `json:"session_id"`
	Brand              enums.Brand       `json:"brand"`
	ModelName          string            `json:"model_name"`
	EngineName         string            `json:"engine_name"`
	TrimName           string            `json:"trim_name"`
	YearCode           string            `json:"year_code"`
	ColorName          string            `json:"color_name"`
	AccessoriesText    string            `json:"accessories_text"`
	TotalPrice         int64             `json:"total_price"`
	PaymentMode        enums.PaymentMode `json:"payment_mode"`
	DownPaymentPercent int               `json:"down_payment_percent,omitempty"`
	DownPayment        int64             `json:"down_payment,omitempty"`
	InstallmentMonths  int               `json:"installment_months,omitempty"`
	MonthlyPayment     int64             `json:"monthly_payment,omitempty"`
	Area               string            `json:"area"`
	DealerName         string            `json:"dealer_name"`
}

// SessionSubmit finalizes the configuration into an order lead.
func SessionSubmit(svc session.Service, m *metrics.ConfiguratorMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload session.SubmitInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Submit(r.Context(), sessionID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		m.IncLeadsSubmitted()
		responses.WriteSuccessStatus(w, http.StatusCreated, submitResponse{
			SessionID:          record.SessionID,
			Brand:              record.Brand,
			ModelName:          record.ModelName,
			EngineName:         record.EngineName,
			TrimName:           record.TrimName,
			YearCode:           record.YearCode,
			ColorName:          record.ColorName,
			AccessoriesText:    record.AccessoriesText,
			TotalPrice:         record.TotalPrice,
			PaymentMode:        record.PaymentMode,
			DownPaymentPercent: record.DownPaymentPercent,
			DownPayment:        record.DownPayment,
			InstallmentMonths:  record.InstallmentMonths,
			MonthlyPayment:     record.MonthlyPayment,
			Area:               record.Area,
			DealerName:         record.DealerName,
		})
	}
}

func sessionIDParam(r *http.Request) (string, error) {
	sessionID := strings.TrimSpace(chi.URLParam(r, "sessionId"))
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeMissingParameter, "session id is required")
	}
	return sessionID, nil
}
