package http

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-pet-life/internal/config"
	"github.com/MKhiriev/go-pet-life/internal/logger"
	"github.com/MKhiriev/go-pet-life/internal/metrics"
	"github.com/MKhiriev/go-pet-life/internal/service"
	"github.com/MKhiriev/go-pet-life/models"
	"github.com/go-chi/chi/v5"
)

const testCookieName = "petlife_session"

func testConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		Server: config.Server{
			HTTPAddress:    "localhost:0",
			AllowedOrigins: []string{"https://petlife.test"},
		},
		Session: config.Session{
			CookieName:        testCookieName,
			Lifetime:          24 * time.Hour,
			PermanentLifetime: 31 * 24 * time.Hour,
		},
	}
}

// fakeSessions keeps sessions in memory and hands out sequential ids.
type fakeSessions struct {
	mu      sync.Mutex
	next    int
	stored  map[string]models.Session
	loadErr error
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{stored: make(map[string]models.Session)}
}

func (f *fakeSessions) Load(_ context.Context, id string) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.loadErr != nil {
		return models.NewAnonymousSession(), f.loadErr
	}
	if sess, ok := f.stored[id]; ok {
		return &sess, nil
	}
	return models.NewAnonymousSession(), nil
}

func (f *fakeSessions) Start(_ context.Context, sess *models.Session, userID int64, remember bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.stored, sess.ID)
	f.next++
	sess.ID = fmt.Sprintf("sid-%d", f.next)
	sess.UserID = userID
	sess.Permanent = remember
	f.stored[sess.ID] = *sess
	return nil
}

func (f *fakeSessions) Clear(_ context.Context, sess *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.stored, sess.ID)
	sess.Reset()
	return nil
}

func (f *fakeSessions) Lifetime(sess *models.Session) time.Duration {
	if sess.Permanent {
		return 31 * 24 * time.Hour
	}
	return 24 * time.Hour
}

// signIn stores an authenticated session and returns its cookie.
func (f *fakeSessions) signIn(t *testing.T, userID int64) *http.Cookie {
	t.Helper()
	sess := models.NewAnonymousSession()
	if err := f.Start(context.Background(), sess, userID, false); err != nil {
		t.Fatalf("start session: %v", err)
	}
	return &http.Cookie{Name: testCookieName, Value: sess.ID}
}

type fakeAccounts struct {
	registerFn       func(models.RegisterRequest) (models.Outcome, error)
	confirmFn        func(*models.Session, string) (models.Outcome, error)
	resendFn         func(string) (models.Outcome, error)
	loginFn          func(*models.Session, models.LoginRequest) (models.Outcome, error)
	logoutFn         func(*models.Session) (models.Outcome, error)
	changePasswordFn func(*models.Session, models.ChangePasswordRequest) (models.Outcome, error)
	requestResetFn   func(string) (models.Outcome, error)
	resetFn          func(*models.Session, models.ResetPasswordRequest) (models.Outcome, error)
	externalFn       func(*models.Session, models.ExternalIdentity) (models.Outcome, error)
	currentFn        func(*models.Session) (models.Account, error)
}

func (f *fakeAccounts) Register(_ context.Context, req models.RegisterRequest) (models.Outcome, error) {
	return f.registerFn(req)
}

func (f *fakeAccounts) ConfirmEmail(_ context.Context, sess *models.Session, token string) (models.Outcome, error) {
	return f.confirmFn(sess, token)
}

func (f *fakeAccounts) ResendConfirmation(_ context.Context, email string) (models.Outcome, error) {
	return f.resendFn(email)
}

func (f *fakeAccounts) Login(_ context.Context, sess *models.Session, req models.LoginRequest) (models.Outcome, error) {
	return f.loginFn(sess, req)
}

func (f *fakeAccounts) Logout(_ context.Context, sess *models.Session) (models.Outcome, error) {
	return f.logoutFn(sess)
}

func (f *fakeAccounts) ChangePassword(_ context.Context, sess *models.Session, req models.ChangePasswordRequest) (models.Outcome, error) {
	return f.changePasswordFn(sess, req)
}

func (f *fakeAccounts) RequestPasswordReset(_ context.Context, email string) (models.Outcome, error) {
	return f.requestResetFn(email)
}

func (f *fakeAccounts) ResetPassword(_ context.Context, sess *models.Session, req models.ResetPasswordRequest) (models.Outcome, error) {
	return f.resetFn(sess, req)
}

func (f *fakeAccounts) ExternalLogin(_ context.Context, sess *models.Session, identity models.ExternalIdentity) (models.Outcome, error) {
	return f.externalFn(sess, identity)
}

func (f *fakeAccounts) CurrentAccount(_ context.Context, sess *models.Session) (models.Account, error) {
	return f.currentFn(sess)
}

type fakePets struct {
	createFn func(*models.Session, models.Pet) (models.Pet, error)
	listFn   func(*models.Session) ([]models.Pet, error)
	getFn    func(*models.Session, int64) (models.Pet, error)
	updateFn func(*models.Session, models.PetTrackerUpdate) error
}

func (f *fakePets) CreatePet(_ context.Context, sess *models.Session, pet models.Pet) (models.Pet, error) {
	return f.createFn(sess, pet)
}

func (f *fakePets) ListPets(_ context.Context, sess *models.Session) ([]models.Pet, error) {
	return f.listFn(sess)
}

func (f *fakePets) GetPet(_ context.Context, sess *models.Session, petID int64) (models.Pet, error) {
	return f.getFn(sess, petID)
}

func (f *fakePets) UpdateTracker(_ context.Context, sess *models.Session, update models.PetTrackerUpdate) error {
	return f.updateFn(sess, update)
}

type fakeOAuth struct {
	authURLFn  func(provider, state string) (string, error)
	callbackFn func(*models.Session, string, string) (models.Outcome, error)
}

func (f *fakeOAuth) AuthCodeURL(provider, state string) (string, error) {
	return f.authURLFn(provider, state)
}

func (f *fakeOAuth) Callback(_ context.Context, sess *models.Session, provider, code string) (models.Outcome, error) {
	return f.callbackFn(sess, provider, code)
}

type fakeAppInfo struct {
	version models.AppVersion
}

func (f *fakeAppInfo) GetAppVersion(context.Context) models.AppVersion {
	return f.version
}

// testServer bundles a router with the fakes behind it.
type testServer struct {
	handler  *Handler
	router   *chi.Mux
	sessions *fakeSessions
	accounts *fakeAccounts
	pets     *fakePets
	oauth    *fakeOAuth
	metrics  *metrics.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{
		sessions: newFakeSessions(),
		accounts: &fakeAccounts{},
		pets:     &fakePets{},
		oauth:    &fakeOAuth{},
		metrics:  metrics.New(),
	}
	services := &service.Services{
		AccountService: ts.accounts,
		SessionService: ts.sessions,
		PetService:     ts.pets,
		OAuthService:   ts.oauth,
		AppInfoService: &fakeAppInfo{version: models.AppVersion{Version: "1.2.3"}},
	}
	ts.handler = NewHandler(services, testConfig(), ts.metrics, logger.Nop())
	ts.router = ts.handler.Init()
	return ts
}

func (ts *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// sessionCookie returns the session cookie set on rec, or nil.
func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == testCookieName {
			return c
		}
	}
	return nil
}
