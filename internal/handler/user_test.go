package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/rosterd/rosterd/internal/handler/dto"
	"github.com/rosterd/rosterd/internal/model"
	"github.com/rosterd/rosterd/internal/repository"
	"github.com/rosterd/rosterd/internal/service"
)

// mockUserService is a hand-rolled UserService for handler tests.
type mockUserService struct {
	createFn func(ctx context.Context, input service.CreateUserInput) (*model.User, error)
	getFn    func(ctx context.Context, id string) (*model.User, bool, error)
}

func (m *mockUserService) CreateUser(ctx context.Context, input service.CreateUserInput) (*model.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, input)
	}
	return model.NewUser(input.Email, "hash"), nil
}

func (m *mockUserService) GetUser(ctx context.Context, id string) (*model.User, bool, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, false, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newUserRouter(svc UserService) http.Handler {
	h := NewUserHandler(svc, testLogger())
	r := chi.NewRouter()
	r.Post("/users", h.Create)
	r.Get("/users/{id}", h.Get)
	return r
}

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	return body
}

func TestUserHandler_Create_Success(t *testing.T) {
	t.Parallel()

	router := newUserRouter(&mockUserService{})

	req := httptest.NewRequest(http.MethodPost, "/users",
		strings.NewReader(`{"email":"a@b.com","password":"a strong password"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rec.Code)
	}

	var body dto.UserResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.ID == "" {
		t.Error("expected non-empty id")
	}
	if body.Email != "a@b.com" {
		t.Errorf("expected email a@b.com, got %q", body.Email)
	}
}

func TestUserHandler_Create_StripsCredentials(t *testing.T) {
	t.Parallel()

	router := newUserRouter(&mockUserService{
		createFn: func(ctx context.Context, input service.CreateUserInput) (*model.User, error) {
			return model.NewUser(input.Email, "$argon2id$top-secret"), nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/users",
		strings.NewReader(`{"email":"a@b.com","password":"a strong password"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	raw := rec.Body.String()
	if strings.Contains(raw, "top-secret") || strings.Contains(raw, "password") {
		t.Errorf("credentials leaked into response: %s", raw)
	}
}

func TestUserHandler_Create_MalformedJSON(t *testing.T) {
	t.Parallel()

	router := newUserRouter(&mockUserService{})

	req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"email":`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	body := decodeErrorBody(t, rec)
	if body.StatusCode != http.StatusBadRequest {
		t.Errorf("expected statusCode 400, got %d", body.StatusCode)
	}
	if body.Error != "Bad Request" {
		t.Errorf("expected error %q, got %q", "Bad Request", body.Error)
	}
}

func TestUserHandler_Create_ValidationFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{"missing email", `{"password":"a strong password"}`},
		{"bad email format", `{"email":"not-an-email","password":"a strong password"}`},
		{"password too short", `{"email":"a@b.com","password":"short"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var createCalled bool
			router := newUserRouter(&mockUserService{
				createFn: func(ctx context.Context, input service.CreateUserInput) (*model.User, error) {
					createCalled = true
					return model.NewUser(input.Email, "hash"), nil
				},
			})

			req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", rec.Code)
			}
			if createCalled {
				t.Error("expected the service not to be called for an invalid request")
			}
		})
	}
}

func TestUserHandler_Create_Conflict(t *testing.T) {
	t.Parallel()

	router := newUserRouter(&mockUserService{
		createFn: func(ctx context.Context, input service.CreateUserInput) (*model.User, error) {
			return nil, &service.Error{
				Code:    http.StatusConflict,
				Message: "User with this email already exists.",
			}
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/users",
		strings.NewReader(`{"email":"a@b.com","password":"a strong password"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rec.Code)
	}

	body := decodeErrorBody(t, rec)
	if body.StatusCode != http.StatusConflict {
		t.Errorf("expected statusCode 409, got %d", body.StatusCode)
	}
	if body.Error != "Conflict" {
		t.Errorf("expected error %q, got %q", "Conflict", body.Error)
	}
	if body.Message != "User with this email already exists." {
		t.Errorf("unexpected message: %q", body.Message)
	}
}

func TestUserHandler_Create_InternalError(t *testing.T) {
	t.Parallel()

	router := newUserRouter(&mockUserService{
		createFn: func(ctx context.Context, input service.CreateUserInput) (*model.User, error) {
			return nil, &service.Error{
				Code:    http.StatusInternalServerError,
				Message: "Failed to create user.",
				Err: &repository.StorageError{
					Kind: repository.KindUnknown,
					Op:   "create user",
				},
			}
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/users",
		strings.NewReader(`{"email":"a@b.com","password":"a strong password"}`))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}

	body := decodeErrorBody(t, rec)
	if body.Message != "An internal error occurred." {
		t.Errorf("expected generic message, got %q", body.Message)
	}
	if strings.Contains(rec.Body.String(), "storage") {
		t.Errorf("storage internals leaked into response: %s", rec.Body.String())
	}
}

func TestUserHandler_Get_Success(t *testing.T) {
	t.Parallel()

	stored := model.NewUser("a@b.com", "hash")
	router := newUserRouter(&mockUserService{
		getFn: func(ctx context.Context, id string) (*model.User, bool, error) {
			if id != stored.ID {
				t.Errorf("expected id %q, got %q", stored.ID, id)
			}
			return stored, true, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/users/"+stored.ID, nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var body dto.UserResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Email != "a@b.com" {
		t.Errorf("expected email a@b.com, got %q", body.Email)
	}
}

func TestUserHandler_Get_NotFound(t *testing.T) {
	t.Parallel()

	router := newUserRouter(&mockUserService{})

	req := httptest.NewRequest(http.MethodGet,
		"/users/00000000-0000-0000-0000-000000000000", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}

	body := decodeErrorBody(t, rec)
	if body.Message != "User not found." {
		t.Errorf("unexpected message: %q", body.Message)
	}
}

func TestUserHandler_Get_MalformedID(t *testing.T) {
	t.Parallel()

	router := newUserRouter(&mockUserService{
		getFn: func(ctx context.Context, id string) (*model.User, bool, error) {
			return nil, false, &service.Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid user ID format.",
			}
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/users/not-a-uuid", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	body := decodeErrorBody(t, rec)
	if body.Message != "Invalid user ID format." {
		t.Errorf("unexpected message: %q", body.Message)
	}
}

func TestUserHandler_Get_StorageErrorLeak(t *testing.T) {
	t.Parallel()

	// A StorageError escaping the service layer must still come out as
	// a generic 500 body.
	router := newUserRouter(&mockUserService{
		getFn: func(ctx context.Context, id string) (*model.User, bool, error) {
			return nil, false, &repository.StorageError{
				Kind: repository.KindUnknown,
				Op:   "find user by id",
			}
		},
	})

	req := httptest.NewRequest(http.MethodGet,
		"/users/6ba7b810-9dad-11d1-80b4-00c04fd430c8", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}

	body := decodeErrorBody(t, rec)
	if body.Message != "An internal error occurred." {
		t.Errorf("expected generic message, got %q", body.Message)
	}
}
