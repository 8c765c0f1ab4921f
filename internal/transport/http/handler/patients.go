package handler

import (
	"encoding/json"
	"net/http"

	"github.com/manoj7417/doctor-appointment-25-sub001/internal/application/patient"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/domain"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/pkg/validate"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/transport/http/middleware"
)

// PatientHandler handles patient account endpoints.
type PatientHandler struct {
	svc     patient.Service
	cookies CookieSettings
}

func NewPatientHandler(svc patient.Service, cookies CookieSettings) *PatientHandler {
	return &PatientHandler{svc: svc, cookies: cookies}
}

func (h *PatientHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.svc.Register(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	token, _, err := h.svc.Login(r.Context(), patient.LoginRequest{Identifier: p.Phone, Password: req.Password})
	if err != nil {
		// account exists; client can log in explicitly
		writeJSON(w, http.StatusCreated, AuthEnvelope{Patient: p, Message: "registered"})
		return
	}
	setAuthCookie(w, h.cookies, middleware.PatientCookie, token)
	writeJSON(w, http.StatusCreated, AuthEnvelope{Bearer: token, Patient: p, Message: "registered"})
}

func (h *PatientHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req patient.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	token, p, err := h.svc.Login(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	setAuthCookie(w, h.cookies, middleware.PatientCookie, token)
	writeJSON(w, http.StatusOK, AuthEnvelope{Bearer: token, Patient: p})
}

func (h *PatientHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	clearAuthCookie(w, h.cookies, middleware.PatientCookie)
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "logged out"})
}

func (h *PatientHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	p, err := h.svc.Get(r.Context(), claims.SubjectID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	p, err := h.svc.Update(r.Context(), claims.SubjectID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
