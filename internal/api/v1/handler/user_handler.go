package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"app/internal/api/v1/dto"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type UserHandler struct {
	userService service.UserService
	validate    *validator.Validate
	logger      zerolog.Logger
	prod        bool
}

func NewUserHandler(userService service.UserService, v *validator.Validate, logger zerolog.Logger, prod bool) *UserHandler {
	return &UserHandler{userService: userService, validate: v, logger: logger, prod: prod}
}

// RegisterRoutes mounts profile routes behind the auth middleware.
func (h *UserHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/users/me", authMw(http.HandlerFunc(h.handleProfile)))
	mux.Handle("/users/me/photo-upload", authMw(http.HandlerFunc(h.photoUpload)))
}

func (h *UserHandler) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getProfile(w, r)
	case http.MethodPut:
		h.updateProfile(w, r)
	case http.MethodDelete:
		h.deleteProfile(w, r)
	default:
		writeNotFound(w)
	}
}

func (h *UserHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r, w)
	if !ok {
		return
	}

	user, err := h.userService.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, dto.CodeNotFound, "User not found")
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to get user")
		writeInternalError(w, err, h.prod)
		return
	}

	writeSuccess(w, http.StatusOK, dto.NewUserResponse(user))
}

func (h *UserHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r, w)
	if !ok {
		return
	}

	var req dto.UserUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, dto.CodeValidationError, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, dto.CodeValidationError, "Validation failed: "+err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), userID, req.DisplayName, req.PhotoURL)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, dto.CodeNotFound, "User not found")
			return
		}
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to update user")
		writeInternalError(w, err, h.prod)
		return
	}

	writeSuccess(w, http.StatusOK, dto.NewUserResponse(user))
}

func (h *UserHandler) deleteProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFromContext(r, w)
	if !ok {
		return
	}

	if err := h.userService.Delete(r.Context(), userID); err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to delete user")
		writeInternalError(w, err, h.prod)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

func (h *UserHandler) photoUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeNotFound(w)
		return
	}
	userID, ok := userIDFromContext(r, w)
	if !ok {
		return
	}

	upload, err := h.userService.PhotoUploadURL(r.Context(), userID)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to create photo upload URL")
		writeInternalError(w, err, h.prod)
		return
	}

	writeSuccess(w, http.StatusOK, dto.PhotoUploadResponse{
		UploadURL: upload.UploadURL,
		PhotoURL:  upload.PhotoURL,
	})
}
