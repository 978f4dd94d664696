package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clinicdesk/clinic-backend/internal/clinic"
	redisclient "github.com/clinicdesk/clinic-backend/internal/redis"
)

func registerPatientHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterPatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeFailure(w, http.StatusBadRequest, "could not parse JSON")
			return
		}

		patient := clinic.Patient{
			UserID:           req.UserID,
			FullName:         req.FullName,
			Age:              req.Age,
			Gender:           req.Gender,
			Phone:            req.Phone,
			Email:            req.Email,
			Address:          req.Address,
			EmergencyContact: req.EmergencyContact,
			MedicalNotes:     req.MedicalNotes,
			FirstVisit:       req.FirstVisit,
		}

		if err := svc.RegisterPatient(r.Context(), patient); err != nil {
			handlePatientError(w, err)
			return
		}

		writeSuccess(w, "Patient Registered Successfully")
	}
}

func listPatientsHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patients, err := svc.Patients(r.Context())
		if err != nil {
			handlePatientError(w, err)
			return
		}

		writeData(w, toPatientPayloads(patients))
	}
}

func deletePatientHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DeleteByIDRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeFailure(w, http.StatusBadRequest, "could not parse JSON")
			return
		}
		if req.ID == 0 {
			writeFailure(w, http.StatusBadRequest, "Patient ID is required")
			return
		}

		if err := svc.DeletePatient(r.Context(), req.ID); err != nil {
			handlePatientError(w, err)
			return
		}

		writeSuccess(w, "Patient Deleted Successfully")
	}
}

func handlePatientError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, clinic.ErrPatientMissingFields):
		writeFailure(w, http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, clinic.ErrPatientExists):
		writeFailure(w, http.StatusConflict, "Patient profile already exists for this user")
	case errors.Is(err, redisclient.ErrLockNotAcquired):
		writeFailure(w, http.StatusConflict, "Registration already in progress, please retry")
	default:
		writeServerError(w, err)
	}
}
