package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rosterd/rosterd/internal/handler/dto"
	"github.com/rosterd/rosterd/internal/model"
	"github.com/rosterd/rosterd/internal/repository"
	"github.com/rosterd/rosterd/internal/service"
)

// UserService is the use-case surface the handler depends on.
type UserService interface {
	CreateUser(ctx context.Context, input service.CreateUserInput) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, bool, error)
}

// UserHandler handles HTTP requests for user operations.
type UserHandler struct {
	svc    UserService
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(svc UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := decodeValid(r, &req); err != nil {
		h.logger.Warn("user_create_rejected",
			"error", err.Error(),
			"email", req.Email,
		)
		writeError(w, http.StatusBadRequest, requestMessage(err))
		return
	}

	user, err := h.svc.CreateUser(r.Context(), service.CreateUserInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleServiceError(w, err, slog.String("email", req.Email))
		return
	}

	h.logger.Info("user_created",
		"user_id", user.ID,
		"email", user.Email,
	)

	writeJSON(w, http.StatusCreated, dto.ToUserResponse(user))
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, found, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, slog.String("user_id", id))
		return
	}
	if !found {
		h.logger.Warn("user_not_found", "user_id", id)
		writeError(w, http.StatusNotFound, "User not found.")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserResponse(user))
}

// requestMessage renders a decode/validation failure for the client.
func requestMessage(err error) string {
	if errors.Is(err, errMalformedBody) {
		return "Invalid request body."
	}
	return "Validation error: " + err.Error()
}

// handleServiceError maps service errors to HTTP responses. Client
// errors (400, 409) pass the service's message through; everything
// else, including a storage error leaking past the service layer,
// becomes a generic 500. The original error is logged with the
// triggering input, never surfaced.
func (h *UserHandler) handleServiceError(w http.ResponseWriter, err error, input ...any) {
	var svcErr *service.Error
	if errors.As(err, &svcErr) {
		switch svcErr.Code {
		case http.StatusBadRequest, http.StatusConflict:
			h.logger.Warn("request_rejected",
				append([]any{"error", err.Error(), "status", svcErr.Code}, input...)...)
			writeError(w, svcErr.Code, svcErr.Message)
			return
		default:
			h.logger.Error("internal_error",
				append([]any{"error", err.Error(), "status", svcErr.Code}, input...)...)
			writeError(w, http.StatusInternalServerError, "An internal error occurred.")
			return
		}
	}

	var storageErr *repository.StorageError
	if errors.As(err, &storageErr) {
		// Should have been reclassified by the service layer; treat a
		// leak the same as any unclassified failure.
		h.logger.Error("storage_error_leaked",
			append([]any{"error", err.Error(), "kind", storageErr.Kind.String()}, input...)...)
		writeError(w, http.StatusInternalServerError, "An internal error occurred.")
		return
	}

	h.logger.Error("internal_error", append([]any{"error", err.Error()}, input...)...)
	writeError(w, http.StatusInternalServerError, "An internal error occurred.")
}
