package handler_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/naemfares/weathermail/internal/domain"
	"github.com/naemfares/weathermail/internal/transport/http/handler"
	"github.com/naemfares/weathermail/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAuthUsecase implements the unexported authUsecaser interface via method matching.
type fakeAuthUsecase struct {
	register    func(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	login       func(ctx context.Context, email, password string) (string, error)
	currentUser func(ctx context.Context, email string) (*domain.User, error)
}

func (f *fakeAuthUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error) {
	return f.register(ctx, input)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, email, password string) (string, error) {
	return f.login(ctx, email, password)
}

func (f *fakeAuthUsecase) CurrentUser(ctx context.Context, email string) (*domain.User, error) {
	return f.currentUser(ctx, email)
}

func newTestEngine(uc *fakeAuthUsecase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewAuthHandler(uc, logger)

	r := gin.New()
	r.POST("/register", h.Register)
	r.POST("/token", h.Token)
	r.GET("/me", func(c *gin.Context) {
		c.Set("email", "a@x.com") // stands in for the auth middleware
		h.Me(c)
	})
	return r
}

var storedUser = &domain.User{
	FirstName:  "John",
	LastName:   "Doe",
	Email:      "a@x.com",
	City:       "Berlin",
	Subscribed: true,
}

const registerBody = `{"first_name":"John","last_name":"Doe","email":"a@x.com",
	"password":"securepassword","city_name":"Berlin"}`

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

// ---- Register ----

func TestRegister_Success_ReturnsUserWithoutPassword(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, _ usecase.RegisterInput) (*domain.User, error) {
			u := *storedUser
			u.PasswordHash = "$2a$10$secret"
			return &u, nil
		},
	}

	w := postJSON(newTestEngine(uc), "/register", registerBody)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `"city_name":"Berlin"`) {
		t.Errorf("body %q missing city", body)
	}
	if strings.Contains(body, "secret") || strings.Contains(body, "password") {
		t.Errorf("body %q leaks password material", body)
	}
}

func TestRegister_DuplicateEmail_Returns400(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, _ usecase.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrDuplicateEmail
		},
	}

	w := postJSON(newTestEngine(uc), "/register", registerBody)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Email already registered") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestRegister_InvalidJSON_Returns400(t *testing.T) {
	w := postJSON(newTestEngine(&fakeAuthUsecase{}), "/register", `{bad json}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_MissingCity_Returns400(t *testing.T) {
	body := `{"first_name":"John","last_name":"Doe","email":"a@x.com","password":"securepassword"}`
	w := postJSON(newTestEngine(&fakeAuthUsecase{}), "/register", body)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

// ---- Token ----

func TestToken_ValidCredentials_ReturnsBearerToken(t *testing.T) {
	const fakeJWT = "header.payload.signature"
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, email, password string) (string, error) {
			if email != "a@x.com" || password != "securepassword" {
				return "", domain.ErrInvalidCredentials
			}
			return fakeJWT, nil
		},
	}

	w := postForm(newTestEngine(uc), "/token",
		url.Values{"username": {"a@x.com"}, "password": {"securepassword"}})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), fakeJWT) {
		t.Errorf("body %q missing access token", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"token_type":"bearer"`) {
		t.Errorf("body %q missing token_type", w.Body.String())
	}
}

func TestToken_WrongPassword_Returns401(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}

	w := postForm(newTestEngine(uc), "/token",
		url.Values{"username": {"a@x.com"}, "password": {"wrongpassword"}})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestToken_MissingForm_Returns401(t *testing.T) {
	w := postForm(newTestEngine(&fakeAuthUsecase{}), "/token", url.Values{})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

// ---- Me ----

func TestMe_ReturnsCurrentUser(t *testing.T) {
	uc := &fakeAuthUsecase{
		currentUser: func(_ context.Context, email string) (*domain.User, error) {
			if email != "a@x.com" {
				return nil, domain.ErrUserNotFound
			}
			return storedUser, nil
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	newTestEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"city_name":"Berlin"`) {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestMe_UserGone_Returns404(t *testing.T) {
	uc := &fakeAuthUsecase{
		currentUser: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	newTestEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestMe_InternalError_Returns500(t *testing.T) {
	uc := &fakeAuthUsecase{
		currentUser: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, errors.New("db down")
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	newTestEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
