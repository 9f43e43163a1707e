package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"api_ledger/internal/api/middlew"
	"api_ledger/internal/custom_err"
	"api_ledger/internal/models"
	"api_ledger/internal/service"
	"api_ledger/pkg/response"
)

type UserHandler struct {
	service service.UserServicer
}

func NewUserHandler(service service.UserServicer) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

func (h *UserHandler) Onboard(w http.ResponseWriter, r *http.Request) {
	const op = "handler.Onboard"
	log := middlew.GetLogger(r.Context())

	defer r.Body.Close()
	var req models.OnboardUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("failed to decode JSON", slog.String("op", op), slog.String("error", err.Error()))
		response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_json", "Invalid JSON body")
		return
	}

	user, err := h.service.OnboardUser(r.Context(), req)
	if err != nil {
		var ve *custom_err.ValidationError
		switch {
		case errors.As(err, &ve):
			log.Warn("validation failed", slog.String("op", op), slog.String("reason", ve.Message))
			response.WriteJSONError(w, log, http.StatusBadRequest, "invalid_field", ve.Message)
		case errors.Is(err, custom_err.ErrBlacklisted):
			log.Info("blacklisted user rejected", slog.String("op", op))
			response.WriteJSONError(w, log, http.StatusForbidden, "blacklisted", "User is blacklisted")
		case errors.Is(err, custom_err.ErrUserExists):
			log.Info("duplicate email", slog.String("op", op))
			response.WriteJSONError(w, log, http.StatusBadRequest, "user_exists", "User with this email already exists")
		default:
			log.Error("onboarding failed", slog.String("op", op), slog.String("error", err.Error()))
			response.WriteJSONError(w, log, http.StatusInternalServerError, "internal_error", "An internal error occurred")
		}
		return
	}

	response.WriteJSONSuccess(w, log, http.StatusCreated, user)
}
