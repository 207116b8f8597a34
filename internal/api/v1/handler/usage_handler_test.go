package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"app/internal/api/v1/dto"
	"app/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUsageHandler(svc *fakeUsageService) *UsageHandler {
	return NewUsageHandler(svc, newValidator(), zerolog.Nop())
}

func TestCreateUsageEndpoint(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := &fakeUsageService{recordOut: &model.Usage{
		ID: "usage-1", UserID: "u1", Module: model.ModuleRCP, Timestamp: ts,
	}}
	h := newUsageHandler(svc)

	req := asUser(httptest.NewRequest(http.MethodPost, "/usage", strings.NewReader(`{"module":"rcp"}`)), "u1")
	rec := httptest.NewRecorder()
	h.handleUsage(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.JSONEq(t, `{"id":"usage-1","userId":"u1","module":"rcp","timestamp":"2026-03-01T12:00:00Z"}`, string(env.Data))
	assert.Equal(t, []model.Module{model.ModuleRCP}, svc.recorded)
}

func TestCreateUsageEndpointInvalidModule(t *testing.T) {
	svc := &fakeUsageService{}
	h := newUsageHandler(svc)

	req := asUser(httptest.NewRequest(http.MethodPost, "/usage", strings.NewReader(`{"module":"cpr"}`)), "u1")
	rec := httptest.NewRecorder()
	h.handleUsage(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.CodeValidationError, env.Error.Code)
	assert.Empty(t, svc.recorded)
}

func TestCreateUsageEndpointWithoutContextUser(t *testing.T) {
	h := newUsageHandler(&fakeUsageService{})

	req := httptest.NewRequest(http.MethodPost, "/usage", strings.NewReader(`{"module":"rcp"}`))
	rec := httptest.NewRecorder()
	h.handleUsage(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.CodeAuthenticationError, env.Error.Code)
}

func TestListUsageEndpoint(t *testing.T) {
	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := &fakeUsageService{listOut: []model.Usage{
		{ID: "usage-2", UserID: "u1", Module: model.ModuleNose, Timestamp: ts.Add(time.Minute)},
		{ID: "usage-1", UserID: "u1", Module: model.ModuleRCP, Timestamp: ts},
	}}
	h := newUsageHandler(svc)

	req := asUser(httptest.NewRequest(http.MethodGet, "/usage", nil), "u1")
	rec := httptest.NewRecorder()
	h.handleUsage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"usage-2"`)
}

func TestListUsageEndpointEmpty(t *testing.T) {
	h := newUsageHandler(&fakeUsageService{})

	req := asUser(httptest.NewRequest(http.MethodGet, "/usage", nil), "u1")
	rec := httptest.NewRecorder()
	h.handleUsage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	// Empty list encodes as [], not null.
	assert.Equal(t, "[]", strings.TrimSpace(string(env.Data)))
}

func TestListUsageEndpointModuleFilter(t *testing.T) {
	svc := &fakeUsageService{}
	h := newUsageHandler(svc)

	req := asUser(httptest.NewRequest(http.MethodGet, "/usage?module=nose", nil), "u1")
	rec := httptest.NewRecorder()
	h.handleUsage(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []model.Module{model.ModuleNose}, svc.listModules)

	req = asUser(httptest.NewRequest(http.MethodGet, "/usage?module=bogus", nil), "u1")
	rec = httptest.NewRecorder()
	h.handleUsage(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.CodeValidationError, env.Error.Code)
}

func TestUsageEndpointUnknownMethod(t *testing.T) {
	h := newUsageHandler(&fakeUsageService{})

	req := asUser(httptest.NewRequest(http.MethodDelete, "/usage", nil), "u1")
	rec := httptest.NewRecorder()
	h.handleUsage(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.CodeNotFound, env.Error.Code)
}
