package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tentenco/stellantis/api/responses"
	"github.com/tentenco/stellantis/api/validators"
	"github.com/tentenco/stellantis/internal/leads"
	"github.com/tentenco/stellantis/pkg/enums"
	pkgerrors "github.com/tentenco/stellantis/pkg/errors"
	"github.com/tentenco/stellantis/pkg/logger"
	"github.com/tentenco/stellantis/pkg/pagination"
)

type leadListResponse struct {
	Leads      any    `json:"leads"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// LeadList pages submitted leads newest-first for the dealer back office.
func LeadList(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := leads.ListFilter{
			Brand:      enums.Brand(validators.QueryString(r, "brand")),
			DealerName: validators.QueryString(r, "dealer"),
			Status:     enums.LeadStatus(validators.QueryString(r, "status")),
		}
		params := pagination.Params{
			Limit:  limit,
			Cursor: validators.QueryString(r, "cursor"),
		}

		rows, nextCursor, err := svc.List(r.Context(), filter, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, leadListResponse{Leads: rows, NextCursor: nextCursor})
	}
}

// LeadDetail returns one submitted lead by id.
func LeadDetail(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := leadIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lead, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lead)
	}
}

type leadStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted closed"`
}

// LeadUpdateStatus moves a lead through its follow-up lifecycle.
func LeadUpdateStatus(svc leads.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := leadIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload leadStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseLeadStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown lead status"))
			return
		}

		if err := svc.UpdateStatus(r.Context(), id, status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": status.String()})
	}
}

func leadIDParam(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "leadId")
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeMissingParameter, "lead id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid lead id")
	}
	return id, nil
}
