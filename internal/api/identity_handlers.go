package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/clinicdesk/clinic-backend/internal/identity"
	redisclient "github.com/clinicdesk/clinic-backend/internal/redis"
)

func registerUserHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeFailure(w, http.StatusBadRequest, "could not parse JSON")
			return
		}

		err := svc.Register(r.Context(), identity.RegisterInput{
			Name:     req.Name,
			Email:    req.Mail,
			Password: req.Password,
			Role:     req.Role,
		})
		if err != nil {
			handleIdentityError(w, err)
			return
		}

		writeSuccess(w, "Register Successfully...")
	}
}

func loginHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeFailure(w, http.StatusBadRequest, "could not parse JSON")
			return
		}

		user, err := svc.Login(r.Context(), req.Mail, req.Password)
		if err != nil {
			handleIdentityError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{
			Success: true,
			Message: "Login Successfull...",
			UserID:  user.ID,
			User:    toUserPayload(*user),
		})
	}
}

func getProfileHandler(svc *identity.Service) http.HandlerFunc {
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

		users, err := svc.GetProfile(r.Context(), userID)
		if err != nil {
			handleIdentityError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ProfileResponse{
			Success: true,
			User:    toUserPayloads(users),
		})
	}
}

func updateProfileHandler(svc *identity.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeFailure(w, http.StatusBadRequest, "could not parse JSON")
			return
		}

		err := svc.UpdateProfile(r.Context(), identity.ProfileUpdate{
			ID:         req.ID,
			Name:       req.Name,
			Age:        req.Age,
			Email:      req.Email,
			PhoneNo:    req.PhoneNo,
			City:       req.City,
			Country:    req.Country,
			ProfilePic: req.ProfilePic,
		})
		if err != nil {
			handleIdentityError(w, err)
			return
		}

		writeSuccess(w, "Profile Updated Successfully")
	}
}

func handleIdentityError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, identity.ErrMissingFields):
		writeFailure(w, http.StatusBadRequest, "All fields including Role are Required...")
	case errors.Is(err, identity.ErrPasswordTooShort):
		writeFailure(w, http.StatusBadRequest, "Use Atleast Password of length 8...")
	case errors.Is(err, identity.ErrEmailTaken):
		writeFailure(w, http.StatusConflict, "User Already Exist...")
	case errors.Is(err, identity.ErrInvalidCredentials):
		writeFailure(w, http.StatusUnauthorized, "Username Doesn't Exist or Password not matching...")
	case errors.Is(err, identity.ErrInvalidName):
		writeFailure(w, http.StatusBadRequest, "Enter valid Name")
	case errors.Is(err, identity.ErrInvalidAge):
		writeFailure(w, http.StatusBadRequest, "Enter valid Age")
	case errors.Is(err, identity.ErrInvalidPhone):
		writeFailure(w, http.StatusBadRequest, "Enter valid Phone Number")
	case errors.Is(err, identity.ErrUserNotFound):
		writeFailure(w, http.StatusNotFound, "User not found")
	case errors.Is(err, redisclient.ErrLockNotAcquired):
		writeFailure(w, http.StatusConflict, "Registration already in progress, please retry")
	default:
		writeServerError(w, err)
	}
}
