package admin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"
	"tratrouble_server/api/middleware"
	"tratrouble_server/database"
	"tratrouble_server/lib"
	"tratrouble_server/services"
	"tratrouble_server/structs"
	"tratrouble_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticVerificationLister struct {
	records []tables.EmailVerification
}

func (l *staticVerificationLister) ListVerifications(ctx context.Context, page, pageSize int) (*database.PaginationResult[tables.EmailVerification], error) {
	return &database.PaginationResult[tables.EmailVerification]{
		Data: l.records,
		Pagination: database.Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    len(l.records),
		},
	}, nil
}

type staticFeedbackStore struct {
	records []tables.Feedback
}

func (s *staticFeedbackStore) Insert(ctx context.Context, record *tables.Feedback) (*tables.Feedback, error) {
	s.records = append(s.records, *record)
	return record, nil
}

func (s *staticFeedbackStore) Get(ctx context.Context, id uuid.UUID) (*tables.Feedback, error) {
	for i := range s.records {
		if s.records[i].Id == id {
			return &s.records[i], nil
		}
	}
	return nil, nil
}

func (s *staticFeedbackStore) List(ctx context.Context, page, pageSize int) (*database.PaginationResult[tables.Feedback], error) {
	return &database.PaginationResult[tables.Feedback]{
		Data: s.records,
		Pagination: database.Pagination{
			Page:     page,
			PageSize: pageSize,
			Total:    len(s.records),
		},
	}, nil
}

const adminPassword = "test-admin-password"

var seededFeedbackID = uuid.MustParse("6f1e8c1a-9b3d-4f6e-8a2b-0c5d7e9f1a3b")

func newAdminHarness(t *testing.T) chi.Router {
	t.Helper()

	hash, err := lib.HashPassword(adminPassword, lib.DefaultArgonParams)
	require.NoError(t, err)

	cfg := &structs.Config{
		Admin: &structs.AdminConfig{
			PasswordHash: hash,
			TokenSecret:  "admin-test-secret",
			TokenExpiry:  time.Hour,
		},
	}
	logger := gecho.NewDefaultLogger()

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	lister := &staticVerificationLister{
		records: []tables.EmailVerification{{
			Email:     "rider@example.com",
			Token:     strings.Repeat("ab", 32),
			Verified:  true,
			CreatedAt: now,
			ExpiresAt: now.Add(time.Hour),
		}},
	}
	feedback := &staticFeedbackStore{records: []tables.Feedback{{
		Id:          seededFeedbackID,
		Token:       strings.Repeat("cd", 32),
		Line:        "12",
		Destination: "Central Station",
		GeoLocation: "52.0907,5.1214",
		Timestamp:   now,
	}}}
	feedbackService := services.NewFeedbackService(logger, feedback, services.SystemClock())
	mw := middleware.NewMiddleware(cfg, logger, nil, nil)

	r := chi.NewRouter()
	NewAdminRoutesManager(logger, lister, feedbackService, cfg, mw).RegisterRoutes(r)
	return r
}

func loginToken(t *testing.T, router chi.Router) string {
	t.Helper()

	r := httptest.NewRequest("POST", "/admin/login", strings.NewReader(`{"password":"`+adminPassword+`"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Pull the JWT out of the response without assuming the envelope shape
	jwtPattern := regexp.MustCompile(`[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`)
	token := jwtPattern.FindString(w.Body.String())
	require.NotEmpty(t, token)
	return token
}

func TestAdminLoginWrongPassword(t *testing.T) {
	router := newAdminHarness(t)

	r := httptest.NewRequest("POST", "/admin/login", strings.NewReader(`{"password":"wrong"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminListingsRequireAuth(t *testing.T) {
	router := newAdminHarness(t)

	for _, target := range []string{"/admin/feedback", "/admin/verifications"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", target, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)

		r := httptest.NewRequest("GET", target, nil)
		r.Header.Set("Authorization", "Bearer not-a-jwt")
		w = httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code, target)
	}
}

func TestAdminListVerificationsRedactsTokens(t *testing.T) {
	router := newAdminHarness(t)
	token := loginToken(t, router)

	r := httptest.NewRequest("GET", "/admin/verifications", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := w.Body.String()
	assert.Contains(t, body, "rider@example.com")
	assert.Contains(t, body, "abababab")
	assert.NotContains(t, body, strings.Repeat("ab", 32), "full token must not be exposed")
}

func TestAdminListFeedback(t *testing.T) {
	router := newAdminHarness(t)
	token := loginToken(t, router)

	r := httptest.NewRequest("GET", "/admin/feedback?page=2&page_size=10", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Contains(t, w.Body.String(), `"page":2`)
	assert.Contains(t, w.Body.String(), `"page_size":10`)
}

func TestAdminListFeedbackClampsPageSize(t *testing.T) {
	router := newAdminHarness(t)
	token := loginToken(t, router)

	r := httptest.NewRequest("GET", "/admin/feedback?page_size=500", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Contains(t, w.Body.String(), `"page_size":100`)
}

func TestAdminGetFeedback(t *testing.T) {
	router := newAdminHarness(t)
	token := loginToken(t, router)

	r := httptest.NewRequest("GET", "/admin/feedback/"+seededFeedbackID.String(), nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := w.Body.String()
	assert.Contains(t, body, seededFeedbackID.String())
	assert.Contains(t, body, "Central Station")
}

func TestAdminGetFeedbackNotFound(t *testing.T) {
	router := newAdminHarness(t)
	token := loginToken(t, router)

	r := httptest.NewRequest("GET", "/admin/feedback/"+uuid.NewString(), nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminGetFeedbackRejectsBadId(t *testing.T) {
	router := newAdminHarness(t)
	token := loginToken(t, router)

	r := httptest.NewRequest("GET", "/admin/feedback/not-a-uuid", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
