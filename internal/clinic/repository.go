package clinic

import (
	"context"
	"errors"
)

var (
	ErrDoctorConflict  = errors.New("doctor with this email, phone or registration number already exists")
	ErrDoctorNotFound  = errors.New("doctor profile not found")
	ErrPatientExists   = errors.New("patient profile already exists for this user")
	ErrPatientNotFound = errors.New("patient profile not found")
	ErrInvalidStatus   = errors.New("invalid doctor status")
)

// Repository contains all DB interactions needed by the service. Methods that
// depend on a prior check run check and write inside one transaction.
type Repository interface {
	// Doctor workflow
	CreateDoctor(ctx context.Context, d Doctor) error
	UpdateDoctorStatus(ctx context.Context, id int64, status DoctorStatus) error
	DeleteDoctor(ctx context.Context, id int64) error
	ListDoctorsByStatus(ctx context.Context, status DoctorStatus) ([]Doctor, error)
	ListAllDoctors(ctx context.Context) ([]Doctor, error)
	GetDoctorIDByUserID(ctx context.Context, userID int64) (int64, error)

	// Patient workflow
	CreatePatient(ctx context.Context, p Patient) error
	ListPatients(ctx context.Context) ([]Patient, error)
	DeletePatient(ctx context.Context, id int64) error

	// Booking
	CreateAppointmentForUser(ctx context.Context, userID int64, a Appointment) (*Appointment, error)
	ListAppointmentsForDoctor(ctx context.Context, doctorID int64) ([]DoctorAppointment, error)
}
