package verification

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
	"tratrouble_server/lib"
	"tratrouble_server/services"
	"tratrouble_server/structs"
	"tratrouble_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *memClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *memClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type memStore struct {
	mu      sync.Mutex
	records map[string]*tables.EmailVerification
}

func newMemStore() *memStore {
	return &memStore{records: map[string]*tables.EmailVerification{}}
}

func (s *memStore) FindByToken(ctx context.Context, token string) (*tables.EmailVerification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[token]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (s *memStore) Save(ctx context.Context, record *tables.EmailVerification) (*tables.EmailVerification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, rec := range s.records {
		if rec.Email == record.Email {
			if rec.Verified {
				return nil, lib.ErrAlreadyVerified
			}
			delete(s.records, token)
		}
	}
	cp := *record
	s.records[record.Token] = &cp
	return record, nil
}

func (s *memStore) MarkVerified(ctx context.Context, token string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[token]
	if !ok || rec.Verified {
		return 0, nil
	}
	rec.Verified = true
	return 1, nil
}

func (s *memStore) lastToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token := range s.records {
		return token
	}
	return ""
}

type memMailer struct {
	mu   sync.Mutex
	sent int
}

func (m *memMailer) SendVerificationEmail(to, link string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent++
	return nil
}

type verificationHarness struct {
	router chi.Router
	store  *memStore
	mailer *memMailer
	clock  *memClock
}

func newVerificationHarness(t *testing.T) *verificationHarness {
	t.Helper()

	cfg := &structs.Config{
		Verification: &structs.VerificationConfig{
			SecretKey:     "handler-test-secret",
			TokenTTL:      time.Hour,
			DeviceBinding: true,
		},
		Email: &structs.EmailConfig{VerificationBaseURL: "https://example.com"},
	}

	store := newMemStore()
	mailer := &memMailer{}
	clock := &memClock{now: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
	logger := gecho.NewDefaultLogger()

	service := services.NewVerificationService(cfg, logger, store, mailer, clock, nil)

	r := chi.NewRouter()
	NewVerificationRoutesManager(logger, service, cfg).RegisterRoutes(r)

	return &verificationHarness{router: r, store: store, mailer: mailer, clock: clock}
}

func (h *verificationHarness) do(method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, r)
	return w
}

func TestSubmitEmailEndpoint(t *testing.T) {
	h := newVerificationHarness(t)

	w := h.do("POST", "/submit-email", `{"email":"rider@example.com","platform":"ios"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token := h.store.lastToken()
	require.NotEmpty(t, token)
	assert.NotContains(t, w.Body.String(), token, "issued token must never appear in the response")
	assert.Equal(t, 1, h.mailer.sent)
}

func TestSubmitEmailEndpointRejectsBadBody(t *testing.T) {
	h := newVerificationHarness(t)

	for _, body := range []string{
		`{"platform":"web"}`,
		`{"email":"not-an-email"}`,
		`{"email":`,
		``,
	} {
		w := h.do("POST", "/submit-email", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
	}

	assert.Equal(t, 0, h.mailer.sent)
}

func TestVerifyEmailLinkFlow(t *testing.T) {
	h := newVerificationHarness(t)

	require.Equal(t, http.StatusOK, h.do("POST", "/submit-email", `{"email":"rider@example.com"}`).Code)
	token := h.store.lastToken()

	w := h.do("GET", "/verify-email?token="+token, "")
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Replaying the link conflicts
	w = h.do("GET", "/verify-email?token="+token, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestVerifyEmailPostBody(t *testing.T) {
	h := newVerificationHarness(t)

	require.Equal(t, http.StatusOK, h.do("POST", "/submit-email", `{"email":"rider@example.com"}`).Code)
	token := h.store.lastToken()

	w := h.do("POST", "/verify-email", fmt.Sprintf(`{"token":%q}`, token))
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestVerifyEmailMalformedToken(t *testing.T) {
	h := newVerificationHarness(t)

	w := h.do("GET", "/verify-email?token=zzz", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyEmailUnknownToken(t *testing.T) {
	h := newVerificationHarness(t)

	unknown := strings.Repeat("ab", 32)
	w := h.do("GET", "/verify-email?token="+unknown, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	h := newVerificationHarness(t)

	require.Equal(t, http.StatusOK, h.do("POST", "/submit-email", `{"email":"rider@example.com"}`).Code)
	token := h.store.lastToken()

	h.clock.Advance(2 * time.Hour)

	w := h.do("GET", "/verify-email?token="+token, "")
	assert.Equal(t, http.StatusGone, w.Code)
}

func TestVerifyEmailDeviceMismatch(t *testing.T) {
	h := newVerificationHarness(t)

	// Issue with an explicit device id
	r := httptest.NewRequest("POST", "/submit-email", strings.NewReader(`{"email":"rider@example.com","device_id":"phone-1"}`))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)
	token := h.store.lastToken()

	// Confirm from a different device
	r = httptest.NewRequest("GET", "/verify-email?token="+token, nil)
	r.Header.Set("X-Device-Id", "phone-2")
	w = httptest.NewRecorder()
	h.router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// And from the issuing device
	r = httptest.NewRequest("GET", "/verify-email?token="+token, nil)
	r.Header.Set("X-Device-Id", "phone-1")
	w = httptest.NewRecorder()
	h.router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitEmailAfterVerificationConflicts(t *testing.T) {
	h := newVerificationHarness(t)

	require.Equal(t, http.StatusOK, h.do("POST", "/submit-email", `{"email":"rider@example.com"}`).Code)
	token := h.store.lastToken()
	require.Equal(t, http.StatusOK, h.do("GET", "/verify-email?token="+token, "").Code)

	w := h.do("POST", "/submit-email", `{"email":"rider@example.com"}`)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// The verified token keeps working for the status probe
	assert.Equal(t, http.StatusOK, h.do("GET", "/check-token?token="+token, "").Code)
	assert.Equal(t, 1, h.mailer.sent, "no second email goes out")
}

func TestCheckTokenEndpoint(t *testing.T) {
	h := newVerificationHarness(t)

	// Missing token
	assert.Equal(t, http.StatusBadRequest, h.do("GET", "/check-token", "").Code)

	// Unknown token
	unknown := strings.Repeat("cd", 32)
	assert.Equal(t, http.StatusNotFound, h.do("GET", "/check-token?token="+unknown, "").Code)

	require.Equal(t, http.StatusOK, h.do("POST", "/submit-email", `{"email":"rider@example.com"}`).Code)
	token := h.store.lastToken()

	// Pending token
	assert.Equal(t, http.StatusForbidden, h.do("GET", "/check-token?token="+token, "").Code)

	require.Equal(t, http.StatusOK, h.do("GET", "/verify-email?token="+token, "").Code)

	// Verified, via query and via body
	assert.Equal(t, http.StatusOK, h.do("GET", "/check-token?token="+token, "").Code)
	assert.Equal(t, http.StatusOK, h.do("POST", "/check-token", fmt.Sprintf(`{"token":%q}`, token)).Code)
}
