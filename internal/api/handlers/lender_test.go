package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lenderdesk/lenderdesk/internal/domain"
	"github.com/lenderdesk/lenderdesk/internal/repository"
	"github.com/lenderdesk/lenderdesk/internal/service"
)

var lenderRows = []string{
	"id", "name", "contact_name", "contact_email", "contact_phone", "website", "country",
	"status", "min_amount", "max_amount", "funding_speed", "submission_method",
	"submission_email", "api_url", "api_token", "version", "created_at", "updated_at",
}

func newLenderTestRouter(t *testing.T) (chi.Router, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := repository.NewLenderRepositoryWithDB(db)
	svc := service.NewLenderService(repo, nil)
	h := NewLenderHandler(svc)

	r := chi.NewRouter()
	r.Post("/lenders", h.Create)
	r.Get("/lenders/{id}", h.Get)
	r.Put("/lenders/{id}", h.Update)
	r.Delete("/lenders/{id}", h.Delete)
	r.Post("/lenders/import", h.Import)
	return r, mock
}

func TestLenderCreateReconcilesLegacyAliases(t *testing.T) {
	router, mock := newLenderTestRouter(t)

	mock.ExpectExec(`INSERT INTO lenders`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// Legacy shape: company_name for the display name, min_loan_amount
	// outranking min_amount.
	body := map[string]interface{}{
		"company_name":    "Acme Capital",
		"min_loan_amount": 5000,
		"min_amount":      9999,
		"max_loan_amount": 250000,
		"contact_email":   "deals@acme.example",
		"country":         "Canada",
	}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/lenders", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var lender domain.Lender
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lender))
	assert.NotEmpty(t, lender.ID)
	assert.Equal(t, "Acme Capital", lender.Name)
	require.NotNil(t, lender.LoanRange.Min)
	assert.Equal(t, 5000.0, *lender.LoanRange.Min)
	require.NotNil(t, lender.Contact.Email)
	assert.Equal(t, "deals@acme.example", *lender.Contact.Email)
	assert.Equal(t, domain.StatusActive, lender.Status)
	assert.Equal(t, int64(1), lender.Version)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLenderGetNotFound(t *testing.T) {
	router, mock := newLenderTestRouter(t)

	mock.ExpectQuery(`SELECT (.+) FROM lenders WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(lenderRows))

	req := httptest.NewRequest(http.MethodGet, "/lenders/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLenderUpdateStaleVersionConflicts(t *testing.T) {
	router, mock := newLenderTestRouter(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT (.+) FROM lenders WHERE id = \$1`).
		WithArgs("lender_1").
		WillReturnRows(sqlmock.NewRows(lenderRows).AddRow(
			"lender_1", "Acme Capital", nil, nil, nil, nil, "Canada",
			"active", 5000.0, 250000.0, "2-3 Days", nil,
			nil, nil, nil, int64(3), now, now,
		))

	// Version 2 against stored version 3: zero rows updated.
	mock.ExpectExec(`UPDATE lenders`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	body := map[string]interface{}{"name": "Acme Capital Inc", "version": 2}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPut, "/lenders/lender_1", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLenderDeletePurgeMarksForRemoval(t *testing.T) {
	router, mock := newLenderTestRouter(t)

	mock.ExpectExec(`UPDATE lenders SET status = \$2`).
		WithArgs("lender_1", domain.StatusPurgedPendingDelete).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest(http.MethodDelete, "/lenders/lender_1?purge=true", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "purged_pending_deletion", resp["status"])
}

func TestLenderImportMixedRecords(t *testing.T) {
	router, mock := newLenderTestRouter(t)

	// Only the record with an id gets inserted; the other is rejected
	// before any persistence.
	mock.ExpectExec(`INSERT INTO lenders`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	body := map[string]interface{}{
		"records": []map[string]interface{}{
			{"id": "legacy_9", "name": "Legacy Lender", "minimum_amount": 1000},
			{"company_name": "No Identity Capital"},
		},
	}
	payload, _ := json.Marshal(body)

	req := httptest.NewRequest(http.MethodPost, "/lenders/import", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Imported int                     `json:"imported"`
		Failed   int                     `json:"failed"`
		Outcomes []service.ImportOutcome `json:"outcomes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Imported)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Outcomes, 2)
	assert.Equal(t, "legacy_9", resp.Outcomes[0].LenderID)
	assert.NotEmpty(t, resp.Outcomes[1].Error)

	require.NoError(t, mock.ExpectationsWereMet())
}
