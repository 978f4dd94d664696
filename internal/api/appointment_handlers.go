package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/clinicdesk/clinic-backend/internal/clinic"
)

func bookAppointmentHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeFailure(w, http.StatusBadRequest, "could not parse JSON")
			return
		}

		_, err := svc.BookAppointment(r.Context(), clinic.BookingInput{
			UserID:     req.PatientID,
			Name:       req.Name,
			Email:      req.Email,
			Phone:      req.Phone,
			DoctorID:   req.DoctorID,
			DoctorName: req.DoctorName,
			Date:       req.Date,
			Issue:      req.Issue,
		})
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeSuccess(w, "Appointment Booked Successfully")
	}
}

func doctorAppointmentsHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawID := r.URL.Query().Get("userId")
		if rawID == "" {
			writeFailure(w, http.StatusBadRequest, "User ID is required")
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			writeFailure(w, http.StatusBadRequest, "User ID must be a number")
			return
		}

		appointments, err := svc.DoctorAppointments(r.Context(), userID)
		if err != nil {
			handleBookingError(w, err)
			return
		}

		writeData(w, toDoctorAppointmentPayloads(appointments))
	}
}

func handleBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, clinic.ErrBookingMissingFields):
		writeFailure(w, http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, clinic.ErrPatientNotFound):
		writeFailure(w, http.StatusNotFound, "Patient profile not found. Please complete your profile first.")
	case errors.Is(err, clinic.ErrDoctorNotFound):
		writeFailure(w, http.StatusNotFound, "Doctor profile not found")
	default:
		writeServerError(w, err)
	}
}
