package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"app/internal/api/v1/dto"
	"app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type AuthHandler struct {
	authService service.AuthService
	validate    *validator.Validate
	logger      zerolog.Logger
	prod        bool
}

func NewAuthHandler(authService service.AuthService, v *validator.Validate, logger zerolog.Logger, prod bool) *AuthHandler {
	return &AuthHandler{authService: authService, validate: v, logger: logger, prod: prod}
}

// RegisterRoutes mounts auth routes. None of them require the auth
// middleware; verify-token inspects the Bearer token itself.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/auth/register", h.register)
	mux.HandleFunc("/auth/login", h.login)
	mux.HandleFunc("/auth/verify-token", h.verifyToken)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeNotFound(w)
		return
	}

	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, dto.CodeValidationError, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, dto.CodeValidationError, "Validation failed: "+err.Error())
		return
	}

	result, err := h.authService.Register(r.Context(), req.Email, req.Password, req.DisplayName)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyRegistered) {
			writeError(w, http.StatusBadRequest, dto.CodeRegistrationError, "Email is already registered")
			return
		}
		h.logger.Error().Err(err).Msg("Registration failed")
		writeInternalError(w, err, h.prod)
		return
	}

	writeSuccess(w, http.StatusCreated, dto.AuthResponse{
		UID:         result.UID,
		Email:       result.Email,
		DisplayName: result.DisplayName,
		Token:       result.Token,
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeNotFound(w)
		return
	}

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, dto.CodeValidationError, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, dto.CodeValidationError, "Validation failed: "+err.Error())
		return
	}

	result, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Unknown email and wrong password get the same response.
			writeError(w, http.StatusUnauthorized, dto.CodeLoginError, "Invalid email or password")
			return
		}
		h.logger.Error().Err(err).Msg("Login failed")
		writeInternalError(w, err, h.prod)
		return
	}

	writeSuccess(w, http.StatusOK, dto.AuthResponse{
		UID:         result.UID,
		Email:       result.Email,
		DisplayName: result.DisplayName,
		Token:       result.Token,
	})
}

func (h *AuthHandler) verifyToken(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeNotFound(w)
		return
	}

	authHeader := r.Header.Get("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if authHeader == "" || len(parts) != 2 || parts[0] != "Bearer" {
		writeError(w, http.StatusUnauthorized, dto.CodeTokenVerificationError, "Bearer token missing")
		return
	}

	uid, email, err := h.authService.VerifyToken(parts[1])
	if err != nil {
		writeError(w, http.StatusUnauthorized, dto.CodeTokenVerificationError, "Token is invalid or expired")
		return
	}

	writeSuccess(w, http.StatusOK, dto.VerifyTokenResponse{UID: uid, Email: email, Valid: true})
}
