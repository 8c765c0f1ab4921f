package handler

import (
	"encoding/json"
	"net/http"

	"github.com/manoj7417/doctor-appointment-25-sub001/internal/application/otp"
	"github.com/manoj7417/doctor-appointment-25-sub001/internal/pkg/validate"
)

// OTPHandler handles phone verification code endpoints.
type OTPHandler struct {
	svc otp.Service
}

func NewOTPHandler(svc otp.Service) *OTPHandler { return &OTPHandler{svc: svc} }

type sendOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
}

type verifyOTPRequest struct {
	Phone string `json:"phone" validate:"required"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

func (h *OTPHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req sendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	messageID, err := h.svc.Issue(r.Context(), req.Phone)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, OTPEnvelope{Message: "verification code sent", MessageID: messageID})
}

func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := h.svc.Verify(r.Context(), req.Phone, req.OTP)
	if err != nil {
		httpError(w, err)
		return
	}
	switch res {
	case otp.Verified:
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "phone verified"})
	case otp.Mismatch:
		writeError(w, http.StatusBadRequest, "incorrect verification code")
	default:
		writeError(w, http.StatusBadRequest, "verification code not found or expired")
	}
}
