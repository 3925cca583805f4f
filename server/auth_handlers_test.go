package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jxeer/Harmonia/config"
	apiError "github.com/jxeer/Harmonia/errors"
	"github.com/jxeer/Harmonia/models"
	"github.com/jxeer/Harmonia/realtime"
)

type fakeAuthService struct {
	signupErr error
	loginErr  *apiError.Error
}

func (f *fakeAuthService) SignupUser(request *models.SignupRequest) (*models.User, error) {
	if f.signupErr != nil {
		return nil, f.signupErr
	}
	return &models.User{
		Model: models.Model{ID: "user-1"},
		Email: request.Email,
		Role:  models.RolePatient,
	}, nil
}

func (f *fakeAuthService) LoginUser(loginRequest *models.LoginRequest) (*models.LoginResponse, *apiError.Error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.LoginResponse{
		UserResponse: models.UserResponse{ID: "user-1", Email: loginRequest.Email},
		AccessToken:  "access",
		RefreshToken: "refresh",
	}, nil
}

func (f *fakeAuthService) LogoutUser(email, accessToken string) error { return nil }
func (f *fakeAuthService) GetUserProfile(userID string) (*models.User, error) {
	return nil, apiError.ErrNotFound
}
func (f *fakeAuthService) GeneratePasswordResetToken(request *models.ForgotPassword) (string, *apiError.Error) {
	return "reset-token", nil
}
func (f *fakeAuthService) ResetPassword(request *models.ResetPassword, token string) *apiError.Error {
	return nil
}
func (f *fakeAuthService) GetAllUsers() ([]models.User, error) { return nil, nil }

type fakeMailer struct {
	welcomeTo []string
	resetTo   []string
}

func (f *fakeMailer) SendWelcomeMessage(recipient, subject string) (string, error) {
	f.welcomeTo = append(f.welcomeTo, recipient)
	return "queued", nil
}

func (f *fakeMailer) SendResetPasswordMessage(recipient, resetLink string) (string, error) {
	f.resetTo = append(f.resetTo, recipient)
	return "queued", nil
}

func newTestRouter(t *testing.T, auth *fakeAuthService, mail *fakeMailer) *gin.Engine {
	t.Helper()
	os.Setenv("GIN_MODE", "test")
	gin.SetMode(gin.TestMode)

	s := &Server{
		Config:      &config.Config{JWTSecret: "test-secret", BaseUrl: "http://localhost:3000"},
		Mail:        mail,
		Bridge:      realtime.NewBridge(),
		AuthService: auth,
	}
	return s.setupRouter()
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSignupHandler(t *testing.T) {
	mail := &fakeMailer{}
	router := newTestRouter(t, &fakeAuthService{}, mail)

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", models.SignupRequest{
		Email:    "new@example.com",
		Password: "longenough1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	if len(mail.welcomeTo) != 1 || mail.welcomeTo[0] != "new@example.com" {
		t.Errorf("welcome mail sent to %v, want [new@example.com]", mail.welcomeTo)
	}
}

func TestSignupHandlerRejectsBadEmail(t *testing.T) {
	router := newTestRouter(t, &fakeAuthService{}, &fakeMailer{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", map[string]string{
		"email":    "not-an-email",
		"password": "longenough1",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", w.Code, w.Body.String())
	}
}

func TestSignupHandlerConflict(t *testing.T) {
	auth := &fakeAuthService{signupErr: apiError.New("user already exists with this email", http.StatusConflict)}
	router := newTestRouter(t, auth, &fakeMailer{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/signup", models.SignupRequest{
		Email:    "dup@example.com",
		Password: "longenough1",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409: %s", w.Code, w.Body.String())
	}
}

func TestLoginHandler(t *testing.T) {
	router := newTestRouter(t, &fakeAuthService{}, &fakeMailer{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{
		Email:    "pat@example.com",
		Password: "longenough1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Data models.LoginResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data.AccessToken == "" {
		t.Error("expected access token in response data")
	}
}

func TestLoginHandlerRejectsBadCredentials(t *testing.T) {
	auth := &fakeAuthService{loginErr: apiError.New("invalid email or password", http.StatusUnauthorized)}
	router := newTestRouter(t, auth, &fakeMailer{})

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", models.LoginRequest{
		Email:    "pat@example.com",
		Password: "wrongpassword",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401: %s", w.Code, w.Body.String())
	}
}

func TestForgotPasswordHandler(t *testing.T) {
	mail := &fakeMailer{}
	router := newTestRouter(t, &fakeAuthService{}, mail)

	w := doJSON(t, router, http.MethodPost, "/api/v1/password/forgot", models.ForgotPassword{
		Email: "pat@example.com",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if len(mail.resetTo) != 1 || mail.resetTo[0] != "pat@example.com" {
		t.Errorf("reset mail sent to %v, want [pat@example.com]", mail.resetTo)
	}
}
