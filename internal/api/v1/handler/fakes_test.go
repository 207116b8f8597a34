package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"app/internal/middleware"
	"app/internal/model"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

// Fake services with injectable results, used to drive the handlers.

type fakeAuthService struct {
	registerResult *service.AuthResult
	registerErr    error
	loginResult    *service.AuthResult
	loginErr       error
	verifyUID      string
	verifyEmail    string
	verifyErr      error
}

func (f *fakeAuthService) Register(_ context.Context, _, _ string, _ *string) (*service.AuthResult, error) {
	return f.registerResult, f.registerErr
}

func (f *fakeAuthService) Login(_ context.Context, _, _ string) (*service.AuthResult, error) {
	return f.loginResult, f.loginErr
}

func (f *fakeAuthService) VerifyToken(_ string) (string, string, error) {
	return f.verifyUID, f.verifyEmail, f.verifyErr
}

type fakeUsageService struct {
	recorded    []model.Module
	recordOut   *model.Usage
	recordErr   error
	listOut     []model.Usage
	listErr     error
	listModules []model.Module
}

func (f *fakeUsageService) Record(_ context.Context, _ string, module model.Module) (*model.Usage, error) {
	if f.recordErr != nil {
		return nil, f.recordErr
	}
	f.recorded = append(f.recorded, module)
	return f.recordOut, nil
}

func (f *fakeUsageService) List(_ context.Context, _ string) ([]model.Usage, error) {
	return f.listOut, f.listErr
}

func (f *fakeUsageService) ListByModule(_ context.Context, _ string, module model.Module) ([]model.Usage, error) {
	f.listModules = append(f.listModules, module)
	return f.listOut, f.listErr
}

type fakeScoreService struct {
	recorded  []float64
	recordOut *model.Score
	recordErr error
	listOut   []model.Score
	listErr   error
}

func (f *fakeScoreService) Record(_ context.Context, _ string, _ model.Module, score float64) (*model.Score, error) {
	if f.recordErr != nil {
		return nil, f.recordErr
	}
	f.recorded = append(f.recorded, score)
	return f.recordOut, nil
}

func (f *fakeScoreService) List(_ context.Context, _ string) ([]model.Score, error) {
	return f.listOut, f.listErr
}

func (f *fakeScoreService) ListByModule(_ context.Context, _ string, _ model.Module) ([]model.Score, error) {
	return f.listOut, f.listErr
}

type fakeStatsService struct {
	stats *model.Stats
	err   error
}

func (f *fakeStatsService) GetAllStats(_ context.Context) (*model.Stats, error) {
	return f.stats, f.err
}

type fakeUserService struct {
	user      *model.User
	getErr    error
	updateErr error
	deleteErr error
	upload    *service.PhotoUpload
	uploadErr error
}

func (f *fakeUserService) Get(_ context.Context, _ string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.user, nil
}

func (f *fakeUserService) UpdateProfile(_ context.Context, _ string, displayName, photoURL *string) (*model.User, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	if displayName != nil {
		f.user.DisplayName = displayName
	}
	if photoURL != nil {
		f.user.PhotoURL = photoURL
	}
	return f.user, nil
}

func (f *fakeUserService) Delete(_ context.Context, _ string) error {
	return f.deleteErr
}

func (f *fakeUserService) PhotoUploadURL(_ context.Context, _ string) (*service.PhotoUpload, error) {
	return f.upload, f.uploadErr
}

// envelope mirrors the response wrapper for assertions.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// asUser injects an authenticated user ID the way the auth middleware does.
func asUser(r *http.Request, userID string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserContextKey, userID)
	return r.WithContext(ctx)
}
