package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/swinglens/swinglens-api/internal/domain"
)

// --- mock ---

type mockAuthSvc struct{ mock.Mock }

func (m *mockAuthSvc) SendPlayerOTP(ctx context.Context, phone string) error {
	return m.Called(ctx, phone).Error(0)
}

func (m *mockAuthSvc) VerifyPlayerOTP(ctx context.Context, phone, code string) (string, *domain.Player, error) {
	args := m.Called(ctx, phone, code)
	if p, _ := args.Get(1).(*domain.Player); p != nil {
		return args.String(0), p, args.Error(2)
	}
	return args.String(0), nil, args.Error(2)
}

func (m *mockAuthSvc) CoachLogin(ctx context.Context, email, password string) (string, *domain.Coach, error) {
	args := m.Called(ctx, email, password)
	if c, _ := args.Get(1).(*domain.Coach); c != nil {
		return args.String(0), c, args.Error(2)
	}
	return args.String(0), nil, args.Error(2)
}

// --- helpers ---

func postJSON(t *testing.T, h http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// --- SendOTP ---

func TestSendOTP_Success(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("SendPlayerOTP", mock.Anything, "+919100000001").Return(nil)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.SendOTP, "/api/v1/auth/player/otp/send", map[string]string{
		"phone": "+919100000001",
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true}`, rr.Body.String())
}

func TestSendOTP_ShortPhoneRejected(t *testing.T) {
	svc := &mockAuthSvc{}
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.SendOTP, "/api/v1/auth/player/otp/send", map[string]string{
		"phone": "12345",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	svc.AssertNotCalled(t, "SendPlayerOTP", mock.Anything, mock.Anything)
}

func TestSendOTP_StoreDown(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("SendPlayerOTP", mock.Anything, "+919100000001").
		Return(domain.Storage("credential store unavailable"))
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.SendOTP, "/api/v1/auth/player/otp/send", map[string]string{
		"phone": "+919100000001",
	})

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.JSONEq(t, `{"detail":"credential store unavailable"}`, rr.Body.String())
}

// --- VerifyOTP ---

func TestVerifyOTP_Success(t *testing.T) {
	player := &domain.Player{ID: "p1", Phone: "+919100000001", SkillLevel: "beginner", DominantHand: "right"}
	svc := &mockAuthSvc{}
	svc.On("VerifyPlayerOTP", mock.Anything, "+919100000001", "123456").Return("tok", player, nil)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.VerifyOTP, "/api/v1/auth/player/otp/verify", map[string]string{
		"phone": "+919100000001",
		"otp":   "123456",
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp PlayerAuthEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, "p1", resp.Player.ID)
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyPlayerOTP", mock.Anything, "+919100000001", "999999").
		Return("", nil, domain.Unauthorized("Invalid OTP"))
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.VerifyOTP, "/api/v1/auth/player/otp/verify", map[string]string{
		"phone": "+919100000001",
		"otp":   "999999",
	})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"detail":"Invalid OTP"}`, rr.Body.String())
}

func TestVerifyOTP_Expired(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("VerifyPlayerOTP", mock.Anything, "+919100000001", "123456").
		Return("", nil, domain.Unauthorized("OTP expired or not requested"))
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.VerifyOTP, "/api/v1/auth/player/otp/verify", map[string]string{
		"phone": "+919100000001",
		"otp":   "123456",
	})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"detail":"OTP expired or not requested"}`, rr.Body.String())
}

func TestVerifyOTP_CodeLengthValidated(t *testing.T) {
	svc := &mockAuthSvc{}
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.VerifyOTP, "/api/v1/auth/player/otp/verify", map[string]string{
		"phone": "+919100000001",
		"otp":   "1234",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	svc.AssertNotCalled(t, "VerifyPlayerOTP", mock.Anything, mock.Anything, mock.Anything)
}

// --- CoachLogin ---

func TestCoachLogin_Success(t *testing.T) {
	coach := &domain.Coach{ID: "c1", Email: "coach@tsg.com", IsActive: true}
	svc := &mockAuthSvc{}
	svc.On("CoachLogin", mock.Anything, "coach@tsg.com", "test1234").Return("coach-tok", coach, nil)
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.CoachLogin, "/api/v1/auth/coach/login", map[string]string{
		"email":    "coach@tsg.com",
		"password": "test1234",
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp CoachAuthEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "coach-tok", resp.Token)
	assert.Equal(t, "c1", resp.Coach.ID)
}

func TestCoachLogin_UnknownEmail(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("CoachLogin", mock.Anything, "nobody@tsg.com", "test1234").
		Return("", nil, domain.NotFound("Coach not found"))
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.CoachLogin, "/api/v1/auth/coach/login", map[string]string{
		"email":    "nobody@tsg.com",
		"password": "test1234",
	})

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"detail":"Coach not found"}`, rr.Body.String())
}

func TestCoachLogin_WrongPassword(t *testing.T) {
	svc := &mockAuthSvc{}
	svc.On("CoachLogin", mock.Anything, "coach@tsg.com", "wrong").
		Return("", nil, domain.Unauthorized("Invalid password"))
	h := NewAuthHandler(svc)

	rr := postJSON(t, h.CoachLogin, "/api/v1/auth/coach/login", map[string]string{
		"email":    "coach@tsg.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.JSONEq(t, `{"detail":"Invalid password"}`, rr.Body.String())
}

func TestCoachLogin_MalformedBody(t *testing.T) {
	svc := &mockAuthSvc{}
	h := NewAuthHandler(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/coach/login", bytes.NewReader([]byte("{not json")))
	rr := httptest.NewRecorder()
	h.CoachLogin(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}
