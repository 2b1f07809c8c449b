package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/emekaobi/jollofkitchen-backend/api/middleware"
	"github.com/emekaobi/jollofkitchen-backend/internal/auth"
	"github.com/emekaobi/jollofkitchen-backend/internal/users"
)

type stubAuthService struct {
	registerErr error
	confirmErr  error
	loginResp   *auth.LoginResponse
	loginErr    error
	adminResp   *auth.AdminLoginResponse
	adminErr    error
	refreshResp *auth.RefreshResponse
	refreshErr  error
	logoutErr   error

	gotRegister auth.RegisterRequest
	gotConfirm  string
	gotLogin    auth.LoginRequest
	gotLogout   struct {
		userID     uuid.UUID
		accessID   string
		guestToken string
	}
}

func (s *stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) error {
	s.gotRegister = req
	return s.registerErr
}

func (s *stubAuthService) ConfirmAccount(ctx context.Context, token string) error {
	s.gotConfirm = token
	return s.confirmErr
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	s.gotLogin = req
	return s.loginResp, s.loginErr
}

func (s *stubAuthService) AdminLogin(ctx context.Context, req auth.LoginRequest) (*auth.AdminLoginResponse, error) {
	s.gotLogin = req
	return s.adminResp, s.adminErr
}

func (s *stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return s.refreshResp, s.refreshErr
}

func (s *stubAuthService) Logout(ctx context.Context, userID uuid.UUID, accessID, guestToken string) error {
	s.gotLogout.userID = userID
	s.gotLogout.accessID = accessID
	s.gotLogout.guestToken = guestToken
	return s.logoutErr
}

func TestAuthRegisterAccepted(t *testing.T) {
	svc := &stubAuthService{}
	handler := AuthRegister(svc, nil)

	body := `{"first_name":"Ada","last_name":"Obi","email":"ada@example.com","password":"Secret#12"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusAccepted {
		t.Fatalf("expected 202 got %d", resp.Code)
	}
	if svc.gotRegister.Email != "ada@example.com" {
		t.Fatalf("expected register payload forwarded, got %+v", svc.gotRegister)
	}
}

func TestAuthRegisterInvalidPayload(t *testing.T) {
	handler := AuthRegister(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte(`{"email":"ada@example.com"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAuthConfirmFromQuery(t *testing.T) {
	svc := &stubAuthService{}
	handler := AuthConfirm(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/confirm?token=abc123", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotConfirm != "abc123" {
		t.Fatalf("expected token forwarded, got %q", svc.gotConfirm)
	}
}

func TestAuthConfirmFromBody(t *testing.T) {
	svc := &stubAuthService{}
	handler := AuthConfirm(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/confirm", bytes.NewReader([]byte(`{"token":"abc123"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotConfirm != "abc123" {
		t.Fatalf("expected token forwarded, got %q", svc.gotConfirm)
	}
}

func TestAuthLoginSetsTokenHeaderAndForwardsGuestToken(t *testing.T) {
	userID := uuid.New()
	svc := &stubAuthService{
		loginResp: &auth.LoginResponse{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			User:         &users.UserDTO{ID: userID, Email: "ada@example.com"},
		},
	}
	handler := AuthLogin(svc, nil)

	body := `{"email":"ada@example.com","password":"Secret#12"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.GuestTokenHeader, "device-token")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get(AccessTokenHeader); got != "access-token" {
		t.Fatalf("expected access token header, got %q", got)
	}
	if svc.gotLogin.GuestToken != "device-token" {
		t.Fatalf("expected guest token forwarded, got %q", svc.gotLogin.GuestToken)
	}

	var envelope struct {
		Data struct {
			AccessToken string         `json:"access_token"`
			User        *users.UserDTO `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.User == nil || envelope.Data.User.ID != userID {
		t.Fatalf("expected user in payload got %+v", envelope.Data.User)
	}
}

func TestAdminAuthLoginSetsTokenHeader(t *testing.T) {
	svc := &stubAuthService{
		adminResp: &auth.AdminLoginResponse{
			AccessToken:  "admin-token",
			RefreshToken: "refresh-token",
			User:         &users.UserDTO{ID: uuid.New(), Email: "boss@example.com"},
		},
	}
	handler := AdminAuthLogin(svc, nil)

	body := `{"email":"boss@example.com","password":"Secret#12"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get(AccessTokenHeader); got != "admin-token" {
		t.Fatalf("expected access token header, got %q", got)
	}
}

func TestAuthRefreshReturnsRotatedPair(t *testing.T) {
	svc := &stubAuthService{
		refreshResp: &auth.RefreshResponse{AccessToken: "new-access", RefreshToken: "new-refresh"},
	}
	handler := AuthRefresh(svc, nil)

	body := `{"access_token":"old-access","refresh_token":"old-refresh"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get(AccessTokenHeader); got != "new-access" {
		t.Fatalf("expected rotated access token header, got %q", got)
	}
}

func TestAuthLogoutRevokesSession(t *testing.T) {
	userID := uuid.New()
	svc := &stubAuthService{}
	handler := AuthLogout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set(middleware.GuestTokenHeader, "device-token")
	ctx := middleware.WithUserID(req.Context(), userID.String())
	ctx = middleware.WithAccessID(ctx, "access-id")
	req = req.WithContext(ctx)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotLogout.userID != userID || svc.gotLogout.accessID != "access-id" || svc.gotLogout.guestToken != "device-token" {
		t.Fatalf("unexpected logout call: %+v", svc.gotLogout)
	}
}

func TestAuthLogoutWithoutSessionRejected(t *testing.T) {
	handler := AuthLogout(&stubAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	resp := httptest.NewRecorder()

	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
