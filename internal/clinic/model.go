package clinic

import (
	"time"
)

type DoctorStatus string

const (
	DoctorPending  DoctorStatus = "PENDING"
	DoctorApproved DoctorStatus = "APPROVED"
)

// ParseDoctorStatus rejects anything outside the closed status set; rejected
// applications are removed rather than given a status of their own.
func ParseDoctorStatus(raw string) (DoctorStatus, error) {
	switch DoctorStatus(raw) {
	case DoctorPending, DoctorApproved:
		return DoctorStatus(raw), nil
	default:
		return "", ErrInvalidStatus
	}
}

type AppointmentStatus string

// PENDING is the only state an appointment ever reaches; no endpoint
// transitions it further.
const (
	AppointmentPending AppointmentStatus = "PENDING"
)

type Doctor struct {
	ID     int64
	UserID int64

	// Personal
	Name   string
	Email  string
	Phone  string
	Gender string
	DOB    string

	// Professional
	Specialization string
	Qualification  string
	Experience     string
	RegNumber      string
	RegCouncil     string

	// Clinic
	ClinicName       string
	Address          string
	City             string
	State            string
	Pincode          string
	ConsultationType string

	// Availability
	Availability Availability
	SlotDuration string
	MaxPatients  string

	// Fees
	ConsultationFee string
	FollowUpFee     string
	OnlineFee       string

	Status DoctorStatus
}

type Patient struct {
	ID               int64
	UserID           int64
	FullName         string
	Age              *int
	Gender           string
	Phone            string
	Email            string
	Address          string
	EmergencyContact string
	MedicalNotes     string
	FirstVisit       bool
	CreatedAt        time.Time
}

type Appointment struct {
	ID              int64
	PatientID       int64
	DoctorID        int64
	AppointmentDate string
	TimeSlot        string
	Issue           string
	Status          AppointmentStatus
}

// DoctorAppointment is the join of an appointment with the demographic and
// medical fields of its patient, as shown on the doctor's worklist.
type DoctorAppointment struct {
	AppointmentID    int64
	AppointmentDate  string
	TimeSlot         string
	Issue            string
	Status           AppointmentStatus
	FullName         string
	Age              *int
	Gender           string
	Phone            string
	PatientEmail     string
	Address          string
	MedicalNotes     string
	EmergencyContact string
}
