package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clinicdesk/clinic-backend/internal/clinic"
	redisclient "github.com/clinicdesk/clinic-backend/internal/redis"
)

func registerDoctorHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterDoctorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeFailure(w, http.StatusBadRequest, "could not parse JSON")
			return
		}

		doctor := clinic.Doctor{
			UserID:           req.UserID,
			Name:             req.Name,
			Email:            req.Email,
			Phone:            req.Phone,
			Gender:           req.Gender,
			DOB:              req.DOB,
			Specialization:   req.Specialization,
			Qualification:    req.Qualification,
			Experience:       req.Experience,
			RegNumber:        req.RegNumber,
			RegCouncil:       req.RegCouncil,
			ClinicName:       req.ClinicName,
			Address:          req.Address,
			City:             req.City,
			State:            req.State,
			Pincode:          req.Pincode,
			ConsultationType: req.ConsultationType,
			Availability: clinic.Availability{
				Days:  req.AvailableDays,
				Slots: req.TimeSlots,
			},
			SlotDuration:    req.SlotDuration,
			MaxPatients:     req.MaxPatients,
			ConsultationFee: req.ConsultationFee,
			FollowUpFee:     req.FollowUpFee,
			OnlineFee:       req.OnlineFee,
		}

		if err := svc.RegisterDoctor(r.Context(), doctor); err != nil {
			handleDoctorError(w, err)
			return
		}

		writeSuccess(w, "Registration Successful! Application under review.")
	}
}

func updateDoctorStatusHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateDoctorStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeFailure(w, http.StatusBadRequest, "could not parse JSON")
			return
		}

		if err := svc.UpdateDoctorStatus(r.Context(), req.ID, req.Status); err != nil {
			handleDoctorError(w, err)
			return
		}

		writeSuccess(w, "Updated Successfully")
	}
}

func deleteDoctorHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DeleteByIDRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeFailure(w, http.StatusBadRequest, "could not parse JSON")
			return
		}

		if err := svc.DeleteDoctor(r.Context(), req.ID); err != nil {
			handleDoctorError(w, err)
			return
		}

		writeSuccess(w, "Deleted Successfully")
	}
}

func approvedDoctorsHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctors, err := svc.ApprovedDoctors(r.Context())
		if err != nil {
			handleDoctorError(w, err)
			return
		}

		writeData(w, toDoctorPayloads(doctors))
	}
}

func allDoctorsHandler(svc *clinic.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doctors, err := svc.AllDoctors(r.Context())
		if err != nil {
			handleDoctorError(w, err)
			return
		}

		writeData(w, toDoctorPayloads(doctors))
	}
}

func handleDoctorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, clinic.ErrDoctorMissingFields):
		writeFailure(w, http.StatusBadRequest,
			"Please fill in all required fields (Name, Email, Phone, Specialization, Experience, Reg Number)")
	case errors.Is(err, clinic.ErrDoctorConflict):
		writeFailure(w, http.StatusConflict, "Doctor with this Email, Phone or Reg Number already exists.")
	case errors.Is(err, clinic.ErrInvalidStatus):
		writeFailure(w, http.StatusBadRequest, "Status must be PENDING or APPROVED")
	case errors.Is(err, clinic.ErrDoctorNotFound):
		writeFailure(w, http.StatusNotFound, "Doctor profile not found")
	case errors.Is(err, redisclient.ErrLockNotAcquired):
		writeFailure(w, http.StatusConflict, "Registration already in progress, please retry")
	default:
		writeServerError(w, err)
	}
}
