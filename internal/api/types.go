package api

import (
	"time"

	"github.com/clinicdesk/clinic-backend/internal/clinic"
	"github.com/clinicdesk/clinic-backend/internal/identity"
)

// Requests. Field names mirror the frontend's payloads, including the "mail"
// key on the auth forms and the "patient_id" booking field that actually
// carries a user id.

type RegisterUserRequest struct {
	Name     string `json:"name"`
	Mail     string `json:"mail"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Mail     string `json:"mail"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Age        int    `json:"age"`
	Email      string `json:"email"`
	PhoneNo    string `json:"phone_no"`
	City       string `json:"city"`
	Country    string `json:"country"`
	ProfilePic string `json:"profile_pic"`
}

type RegisterDoctorRequest struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Gender string `json:"gender"`
	DOB    string `json:"dob"`

	Specialization string `json:"specialization"`
	Qualification  string `json:"qualification"`
	Experience     string `json:"experience"`
	RegNumber      string `json:"reg_number"`
	RegCouncil     string `json:"reg_council"`

	ClinicName       string `json:"clinic_name"`
	Address          string `json:"address"`
	City             string `json:"city"`
	State            string `json:"state"`
	Pincode          string `json:"pincode"`
	ConsultationType string `json:"consultation_type"`

	AvailableDays []clinic.Weekday   `json:"available_days"`
	TimeSlots     []clinic.TimeRange `json:"time_slots"`
	SlotDuration  string             `json:"slot_duration"`
	MaxPatients   string             `json:"max_patients"`

	ConsultationFee string `json:"consultation_fee"`
	FollowUpFee     string `json:"follow_up_fee"`
	OnlineFee       string `json:"online_fee"`
}

type UpdateDoctorStatusRequest struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

type DeleteByIDRequest struct {
	ID int64 `json:"id"`
}

type RegisterPatientRequest struct {
	UserID           int64  `json:"user_id"`
	FullName         string `json:"full_name"`
	Age              *int   `json:"age"`
	Gender           string `json:"gender"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	Address          string `json:"address"`
	EmergencyContact string `json:"emergency_contact"`
	MedicalNotes     string `json:"medical_notes"`
	FirstVisit       bool   `json:"first_visit"`
}

type BookAppointmentRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Issue      string `json:"issue"`
	DoctorName string `json:"doctor_name"`
	DoctorID   int64  `json:"doctor_id"`
	Date       string `json:"date"`
	PatientID  int64  `json:"patient_id"` // user id of the booking patient
}

// Responses

type UserPayload struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	Age        *int    `json:"age"`
	PhoneNo    *string `json:"phone_no"`
	City       *string `json:"city"`
	Country    *string `json:"country"`
	ProfilePic *string `json:"profile_pic"`
}

type LoginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	UserID  int64       `json:"userId"`
	User    UserPayload `json:"user"`
}

// ProfileResponse returns a collection under "user": the id is unique in
// practice but the endpoint's contract has always been a list.
type ProfileResponse struct {
	Success bool          `json:"success"`
	User    []UserPayload `json:"user"`
}

type DoctorPayload struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Gender string `json:"gender"`
	DOB    string `json:"dob"`

	Specialization string `json:"specialization"`
	Qualification  string `json:"qualification"`
	Experience     string `json:"experience"`
	RegNumber      string `json:"reg_number"`
	RegCouncil     string `json:"reg_council"`

	ClinicName       string `json:"clinic_name"`
	Address          string `json:"address"`
	City             string `json:"city"`
	State            string `json:"state"`
	Pincode          string `json:"pincode"`
	ConsultationType string `json:"consultation_type"`

	AvailableDays []clinic.Weekday   `json:"available_days"`
	TimeSlots     []clinic.TimeRange `json:"time_slots"`
	SlotDuration  string             `json:"slot_duration"`
	MaxPatients   string             `json:"max_patients"`

	ConsultationFee string `json:"consultation_fee"`
	FollowUpFee     string `json:"follow_up_fee"`
	OnlineFee       string `json:"online_fee"`

	Status string `json:"status"`
}

type PatientPayload struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	FullName         string    `json:"full_name"`
	Age              *int      `json:"age"`
	Gender           string    `json:"gender"`
	Phone            string    `json:"phone"`
	Email            string    `json:"email"`
	Address          string    `json:"address"`
	EmergencyContact string    `json:"emergency_contact"`
	MedicalNotes     string    `json:"medical_notes"`
	FirstVisit       bool      `json:"first_visit"`
	CreatedAt        time.Time `json:"created_at"`
}

type DoctorAppointmentPayload struct {
	AppointmentID    int64  `json:"appointment_id"`
	AppointmentDate  string `json:"appointment_date"`
	TimeSlot         string `json:"time_slot"`
	Issue            string `json:"issue"`
	Status           string `json:"status"`
	FullName         string `json:"full_name"`
	Age              *int   `json:"age"`
	Gender           string `json:"gender"`
	Phone            string `json:"phone"`
	PatientEmail     string `json:"patient_email"`
	Address          string `json:"address"`
	MedicalNotes     string `json:"medical_notes"`
	EmergencyContact string `json:"emergency_contact"`
}

// Payload mappers

func toUserPayload(u identity.User) UserPayload {
	return UserPayload{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role),
		Age:        u.Age,
		PhoneNo:    u.PhoneNo,
		City:       u.City,
		Country:    u.Country,
		ProfilePic: u.ProfilePic,
	}
}

func toUserPayloads(users []identity.User) []UserPayload {
	out := make([]UserPayload, 0, len(users))
	for _, u := range users {
		out = append(out, toUserPayload(u))
	}
	return out
}

func toDoctorPayload(d clinic.Doctor) DoctorPayload {
	return DoctorPayload{
		ID:               d.ID,
		UserID:           d.UserID,
		Name:             d.Name,
		Email:            d.Email,
		Phone:            d.Phone,
		Gender:           d.Gender,
		DOB:              d.DOB,
		Specialization:   d.Specialization,
		Qualification:    d.Qualification,
		Experience:       d.Experience,
		RegNumber:        d.RegNumber,
		RegCouncil:       d.RegCouncil,
		ClinicName:       d.ClinicName,
		Address:          d.Address,
		City:             d.City,
		State:            d.State,
		Pincode:          d.Pincode,
		ConsultationType: d.ConsultationType,
		AvailableDays:    d.Availability.Days,
		TimeSlots:        d.Availability.Slots,
		SlotDuration:     d.SlotDuration,
		MaxPatients:      d.MaxPatients,
		ConsultationFee:  d.ConsultationFee,
		FollowUpFee:      d.FollowUpFee,
		OnlineFee:        d.OnlineFee,
		Status:           string(d.Status),
	}
}

func toDoctorPayloads(doctors []clinic.Doctor) []DoctorPayload {
	out := make([]DoctorPayload, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, toDoctorPayload(d))
	}
	return out
}

func toPatientPayloads(patients []clinic.Patient) []PatientPayload {
	out := make([]PatientPayload, 0, len(patients))
	for _, p := range patients {
		out = append(out, PatientPayload{
			ID:               p.ID,
			UserID:           p.UserID,
			FullName:         p.FullName,
			Age:              p.Age,
			Gender:           p.Gender,
			Phone:            p.Phone,
			Email:            p.Email,
			Address:          p.Address,
			EmergencyContact: p.EmergencyContact,
			MedicalNotes:     p.MedicalNotes,
			FirstVisit:       p.FirstVisit,
			CreatedAt:        p.CreatedAt,
		})
	}
	return out
}

func toDoctorAppointmentPayloads(appts []clinic.DoctorAppointment) []DoctorAppointmentPayload {
	out := make([]DoctorAppointmentPayload, 0, len(appts))
	for _, a := range appts {
		out = append(out, DoctorAppointmentPayload{
			AppointmentID:    a.AppointmentID,
			AppointmentDate:  a.AppointmentDate,
			TimeSlot:         a.TimeSlot,
			Issue:            a.Issue,
			Status:           string(a.Status),
			FullName:         a.FullName,
			Age:              a.Age,
			Gender:           a.Gender,
			Phone:            a.Phone,
			PatientEmail:     a.PatientEmail,
			Address:          a.Address,
			MedicalNotes:     a.MedicalNotes,
			EmergencyContact: a.EmergencyContact,
		})
	}
	return out
}
