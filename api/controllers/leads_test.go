package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tentenco/stellantis/internal/leads"
	"github.com/tentenco/stellantis/internal/session"
	"github.com/tentenco/stellantis/pkg/db/models"
	"github.com/tentenco/stellantis/pkg/enums"
	pkgerrors "github.com/tentenco/stellantis/pkg/errors"
	"github.com/tentenco/stellantis/pkg/pagination"
)

type stubLeadService struct {
	rows       []models.Lead
	lead       models.Lead
	nextCursor string
	err        error

	listFilter   leads.ListFilter
	listParams   pagination.Params
	updatedID    uuid.UUID
	updatedState enums.LeadStatus
}

func (s *stubLeadService) Record(context.Context, session.SubmitRecord) error {
	return s.err
}

func (s *stubLeadService) Get(_ context.Context, id uuid.UUID) (models.Lead, error) {
	return s.lead, s.err
}

func (s *stubLeadService) List(_ context.Context, filter leads.ListFilter, params pagination.Params) ([]models.Lead, string, error) {
	s.listFilter = filter
	s.listParams = params
	return s.rows, s.nextCursor, s.err
}

func (s *stubLeadService) UpdateStatus(_ context.Context, id uuid.UUID, status enums.LeadStatus) error {
	s.updatedID = id
	s.updatedState = status
	return s.err
}

func leadRequest(method, target string, body []byte, leadID string) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if leadID != "" {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("leadId", leadID)
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}
	return req
}

func TestLeadListAppliesFilters(t *testing.T) {
	svc := &stubLeadService{
		rows:       []models.Lead{{ID: uuid.New(), DealerName: "台北旗艦店"}},
		nextCursor: "next-token",
	}
	handler := LeadList(svc, nil)

	req := leadRequest(http.MethodGet, "/api/v1/leads?brand=peugeot&dealer=台北旗艦店&status=new&limit=10", nil, "")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.listFilter.Brand != enums.BrandPeugeot || svc.listFilter.DealerName != "台北旗艦店" || svc.listFilter.Status != enums.LeadStatusNew {
		t.Fatalf("unexpected filter %+v", svc.listFilter)
	}
	if svc.listParams.Limit != 10 {
		t.Fatalf("expected limit 10 got %d", svc.listParams.Limit)
	}

	var envelope struct {
		Data struct {
			Leads      []models.Lead `json:"leads"`
			NextCursor string        `json:"next_cursor"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Leads) != 1 || envelope.Data.NextCursor != "next-token" {
		t.Fatalf("unexpected listing %+v", envelope.Data)
	}
}

func TestLeadListRejectsBadLimit(t *testing.T) {
	handler := LeadList(&stubLeadService{}, nil)

	req := leadRequest(http.MethodGet, "/api/v1/leads?limit=9999", nil, "")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestLeadDetailSuccess(t *testing.T) {
	id := uuid.New()
	svc := &stubLeadService{lead: models.Lead{ID: id, BuyerName: "王小明"}}
	handler := LeadDetail(svc, nil)

	req := leadRequest(http.MethodGet, "/api/v1/leads/"+id.String(), nil, id.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data models.Lead `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ID != id {
		t.Fatalf("expected id %s got %s", id, envelope.Data.ID)
	}
}

func TestLeadDetailInvalidID(t *testing.T) {
	handler := LeadDetail(&stubLeadService{}, nil)

	req := leadRequest(http.MethodGet, "/api/v1/leads/not-a-uuid", nil, "not-a-uuid")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestLeadUpdateStatusSuccess(t *testing.T) {
	id := uuid.New()
	svc := &stubLeadService{}
	handler := LeadUpdateStatus(svc, nil)

	req := leadRequest(http.MethodPatch, "/api/v1/leads/"+id.String()+"/status", []byte(`{"status":"contacted"}`), id.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.updatedID != id || svc.updatedState != enums.LeadStatusContacted {
		t.Fatalf("unexpected update %s %s", svc.updatedID, svc.updatedState)
	}
}

func TestLeadUpdateStatusRejectsUnknownStatus(t *testing.T) {
	id := uuid.New()
	handler := LeadUpdateStatus(&stubLeadService{}, nil)

	req := leadRequest(http.MethodPatch, "/api/v1/leads/"+id.String()+"/status", []byte(`{"status":"ghosted"}`), id.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestLeadUpdateStatusNotFound(t *testing.T) {
	id := uuid.New()
	svc := &stubLeadService{err: pkgerrors.New(pkgerrors.CodeNotFound, "lead not found")}
	handler := LeadUpdateStatus(svc, nil)

	req := leadRequest(http.MethodPatch, "/api/v1/leads/"+id.String()+"/status", []byte(`{"status":"closed"}`), id.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}
