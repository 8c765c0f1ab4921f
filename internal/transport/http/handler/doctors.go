package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/application/doctor"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/application/file"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/domain"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/pkg/validate"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/transport/http/middleware"
)

// maxPhotoSize bounds profile photo uploads.
const maxPhotoSize = 5 << 20

// DoctorHandler handles doctor account and directory endpoints.
type DoctorHandler struct {
	svc     doctor.Service
	files   file.Service
	cookies CookieSettings
}

func NewDoctorHandler(svc doctor.Service, files file.Service, cookies CookieSettings) *DoctorHandler {
	return &DoctorHandler{svc: svc, files: files, cookies: cookies}
}

func (h *DoctorHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := h.svc.Register(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	token, _, err := h.svc.Login(r.Context(), doctor.LoginRequest{Email: d.Email, Password: req.Password})
	if err != nil {
		writeJSON(w, http.StatusCreated, AuthEnvelope{Doctor: d, Message: "registered"})
		return
	}
	setAuthCookie(w, h.cookies, middleware.DoctorCookie, token)
	writeJSON(w, http.StatusCreated, AuthEnvelope{Bearer: token, Doctor: d, Message: "registered"})
}

func (h *DoctorHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req doctor.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	token, d, err := h.svc.Login(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	setAuthCookie(w, h.cookies, middleware.DoctorCookie, token)
	writeJSON(w, http.StatusOK, AuthEnvelope{Bearer: token, Doctor: d})
}

func (h *DoctorHandler) Logout(w http.ResponseWriter, _ *http.Request) {
	clearAuthCookie(w, h.cookies, middleware.DoctorCookie)
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "logged out"})
}

func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.svc.List(r.Context(), r.URL.Query().Get("specialty"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doctors)
}

func (h *DoctorHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DoctorHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	d, err := h.svc.Get(r.Context(), claims.SubjectID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.UpdateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := h.svc.Update(r.Context(), claims.SubjectID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *DoctorHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	f, header, err := r.FormFile("photo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "photo file is required")
		return
	}
	defer f.Close()

	rec, err := h.files.UploadPhoto(r.Context(), claims.SubjectID, f, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		httpError(w, err)
		return
	}
	if err := h.svc.SetPhotoURL(r.Context(), claims.SubjectID, rec.URL); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *DoctorHandler) BackfillSlugs(w http.ResponseWriter, r *http.Request) {
	updated, err := h.svc.BackfillSlugs(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"updated": updated})
}
