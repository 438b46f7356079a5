package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"csi-membership/internal/domain"
	"csi-membership/internal/infra/logging"
)

type sendOTPRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type emailRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleSendOTP(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid request body"})
		return
	}
	l := logging.With(r.Context(), s.log)
	l.Debug().Str("email", logging.Redact(req.Email, s.cfg.Runtime.Dev)).Msg("otp send requested")
	if err := s.admin.SendOTP(r.Context(), req.Email, req.Name); err != nil {
		s.writeAdminError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "otp sent"})
}

func (s *Server) handleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid request body"})
		return
	}
	if err := s.admin.VerifyOTP(r.Context(), req.Email, req.OTP); err != nil {
		s.writeAdminError(w, r, err)
		return
	}

	token, err := s.auth.Mint(w, req.Email)
	if err != nil {
		l := logging.With(r.Context(), s.log)
		l.Error().Err(err).Msg("failed to mint admin session")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "token": token})
}

func (s *Server) handleResendOTP(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid request body"})
		return
	}
	if err := s.admin.ResendOTP(r.Context(), req.Email); err != nil {
		s.writeAdminError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "otp sent"})
}

func (s *Server) handleValidateEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid request body"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "allowed": s.admin.IsWhitelisted(req.Email)})
}

func (s *Server) handleAdminMe(w http.ResponseWriter, r *http.Request) {
	claims, err := s.auth.ParseFromRequest(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "unauthorized"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "email": claims.Subject, "role": claims.Role})
}

func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	s.auth.Clear(w)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// writeAdminError maps domain errors to the admin API's {success,error}
// shape. Authorization failures stay deliberately vague.
func (s *Server) writeAdminError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, map[string]any{"success": false, "error": "not authorized"})
	case errors.Is(err, domain.ErrInvalidArgument):
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid request"})
	case errors.Is(err, domain.ErrOTPMismatch):
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "invalid code"})
	case errors.Is(err, domain.ErrOTPExpired):
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "code expired or not issued"})
	case errors.Is(err, domain.ErrTooManyAttempts):
		writeJSON(w, http.StatusTooManyRequests, map[string]any{"success": false, "error": "too many attempts"})
	default:
		l := logging.With(r.Context(), s.log)
		l.Error().Err(err).Msg("admin endpoint failure")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "internal error"})
	}
}
