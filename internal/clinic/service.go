package clinic

import (
	"context"
	"errors"
	"fmt"

	redisclient "github.com/clinicdesk/clinic-backend/internal/redis"
)

// DefaultTimeSlot is the placeholder slot every booking is created with; slot
// negotiation happens out of band between clinic and patient.
const DefaultTimeSlot = "09:00:00"

var (
	ErrDoctorMissingFields  = errors.New("name, email, phone, specialization, experience and reg_number are required")
	ErrPatientMissingFields = errors.New("user_id, full_name and phone are required")
	ErrBookingMissingFields = errors.New("name, email, phone, doctor_name and date are required")
)

// BookingInput carries the booking form. Name, Email and Phone are accepted
// for validation only; the patient row resolved from UserID is what gets
// persisted.
type BookingInput struct {
	UserID     int64
	Name       string
	Email      string
	Phone      string
	DoctorID   int64
	DoctorName string
	Date       string
	Issue      string
}

type Service struct {
	repo   Repository
	locker redisclient.Locker
}

func NewService(repo Repository, locker redisclient.Locker) *Service {
	return &Service{
		repo:   repo,
		locker: locker,
	}
}

// RegisterDoctor files a doctor application. The row always starts PENDING;
// only an administrator moves it to APPROVED. The uniqueness check and insert
// run in one transaction, under a lock keyed by registration number so two
// instances cannot both pass the check.
func (s *Service) RegisterDoctor(ctx context.Context, d Doctor) error {
	if d.Name == "" || d.Email == "" || d.Phone == "" ||
		d.Specialization == "" || d.Experience == "" || d.RegNumber == "" {
		return ErrDoctorMissingFields
	}

	d.Status = DoctorPending

	return s.locker.WithLock(ctx, "doctor:reg:"+d.RegNumber, func(lockCtx context.Context) error {
		return s.repo.CreateDoctor(lockCtx, d)
	})
}

func (s *Service) UpdateDoctorStatus(ctx context.Context, id int64, rawStatus string) error {
	status, err := ParseDoctorStatus(rawStatus)
	if err != nil {
		return err
	}
	return s.repo.UpdateDoctorStatus(ctx, id, status)
}

func (s *Service) DeleteDoctor(ctx context.Context, id int64) error {
	return s.repo.DeleteDoctor(ctx, id)
}

// ApprovedDoctors is the patient-facing directory: only rows whose status is
// exactly APPROVED.
func (s *Service) ApprovedDoctors(ctx context.Context) ([]Doctor, error) {
	doctors, err := s.repo.ListDoctorsByStatus(ctx, DoctorApproved)
	if err != nil {
		return nil, fmt.Errorf("list approved doctors: %w", err)
	}
	return doctors, nil
}

// AllDoctors is the unfiltered administrative listing.
func (s *Service) AllDoctors(ctx context.Context) ([]Doctor, error) {
	doctors, err := s.repo.ListAllDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	return doctors, nil
}

// RegisterPatient creates the one patient profile a user may have. The
// existence gate and insert share a transaction, guarded by a per-user lock.
func (s *Service) RegisterPatient(ctx context.Context, p Patient) error {
	if p.UserID == 0 || p.FullName == "" || p.Phone == "" {
		return ErrPatientMissingFields
	}

	return s.locker.WithLock(ctx, fmt.Sprintf("patient:user:%d", p.UserID), func(lockCtx context.Context) error {
		return s.repo.CreatePatient(lockCtx, p)
	})
}

func (s *Service) Patients(ctx context.Context) ([]Patient, error) {
	patients, err := s.repo.ListPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

func (s *Service) DeletePatient(ctx context.Context, id int64) error {
	return s.repo.DeletePatient(ctx, id)
}

// BookAppointment creates a PENDING appointment for the patient profile of
// the requesting user. The patient lookup and the insert run in a single
// transaction, so a profile deleted mid-request cannot leave an orphaned row.
func (s *Service) BookAppointment(ctx context.Context, in BookingInput) (*Appointment, error) {
	if in.Name == "" || in.Email == "" || in.Phone == "" || in.DoctorName == "" || in.Date == "" {
		return nil, ErrBookingMissingFields
	}

	appt := Appointment{
		DoctorID:        in.DoctorID,
		AppointmentDate: in.Date,
		TimeSlot:        DefaultTimeSlot,
		Issue:           in.Issue,
		Status:          AppointmentPending,
	}

	created, err := s.repo.CreateAppointmentForUser(ctx, in.UserID, appt)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("book appointment: %w", err)
	}

	return created, nil
}

// DoctorAppointments resolves a user to their doctor profile and returns the
// joined worklist, newest date first.
func (s *Service) DoctorAppointments(ctx context.Context, userID int64) ([]DoctorAppointment, error) {
	doctorID, err := s.repo.GetDoctorIDByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrDoctorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve doctor: %w", err)
	}

	appointments, err := s.repo.ListAppointmentsForDoctor(ctx, doctorID)
	if err != nil {
		return nil, fmt.Errorf("list doctor appointments: %w", err)
	}

	return appointments, nil
}
