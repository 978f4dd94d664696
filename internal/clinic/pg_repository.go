package clinic

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Helpers

const doctorColumns = `id, user_id, name, email, phone, gender, dob,
	specialization, qualification, experience, reg_number, reg_council,
	clinic_name, address, city, state, pincode, consultation_type,
	available_days, time_slots, slot_duration, max_patients,
	consultation_fee, follow_up_fee, online_fee, status`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	var rawDays, rawSlots string

	err := row.Scan(
		&d.ID,
		&d.UserID,
		&d.Name,
		&d.Email,
		&d.Phone,
		&d.Gender,
		&d.DOB,
		&d.Specialization,
		&d.Qualification,
		&d.Experience,
		&d.RegNumber,
		&d.RegCouncil,
		&d.ClinicName,
		&d.Address,
		&d.City,
		&d.State,
		&d.Pincode,
		&d.ConsultationType,
		&rawDays,
		&rawSlots,
		&d.SlotDuration,
		&d.MaxPatients,
		&d.ConsultationFee,
		&d.FollowUpFee,
		&d.OnlineFee,
		&d.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDoctorNotFound
		}
		return nil, err
	}

	if d.Availability.Days, err = decodeDays(rawDays); err != nil {
		return nil, err
	}
	if d.Availability.Slots, err = decodeSlots(rawSlots); err != nil {
		return nil, err
	}

	return &d, nil
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	var firstVisit int

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.FullName,
		&p.Age,
		&p.Gender,
		&p.Phone,
		&p.Email,
		&p.Address,
		&p.EmergencyContact,
		&p.MedicalNotes,
		&firstVisit,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}

	p.FirstVisit = firstVisit != 0
	return &p, nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment

	err := row.Scan(
		&a.ID,
		&a.PatientID,
		&a.DoctorID,
		&a.AppointmentDate,
		&a.TimeSlot,
		&a.Issue,
		&a.Status,
	)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// Doctor workflow

func (r *PgRepository) CreateDoctor(ctx context.Context, d Doctor) error {
	rawDays, err := encodeDays(d.Availability.Days)
	if err != nil {
		return err
	}
	rawSlots, err := encodeSlots(d.Availability.Slots)
	if err != nil {
		return err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create doctor: %w", err)
	}
	defer tx.Rollback(ctx)

	var existing int64
	err = tx.QueryRow(ctx, `
		SELECT id FROM doctors
		WHERE email = $1 OR phone = $2 OR reg_number = $3
	`, d.Email, d.Phone, d.RegNumber).Scan(&existing)
	if err == nil {
		return ErrDoctorConflict
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check doctor uniqueness: %w", err)
	}

	// Status is forced to PENDING regardless of what the caller supplied.
	_, err = tx.Exec(ctx, `
		INSERT INTO doctors (
			user_id, name, email, phone, gender, dob,
			specialization, qualification, experience, reg_number, reg_council,
			clinic_name, address, city, state, pincode, consultation_type,
			available_days, time_slots, slot_duration, max_patients,
			consultation_fee, follow_up_fee, online_fee, status
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17,
			$18, $19, $20, $21,
			$22, $23, $24, 'PENDING'
		)
	`, d.UserID, d.Name, d.Email, d.Phone, d.Gender, d.DOB,
		d.Specialization, d.Qualification, d.Experience, d.RegNumber, d.RegCouncil,
		d.ClinicName, d.Address, d.City, d.State, d.Pincode, d.ConsultationType,
		rawDays, rawSlots, d.SlotDuration, d.MaxPatients,
		d.ConsultationFee, d.FollowUpFee, d.OnlineFee)
	if err != nil {
		return fmt.Errorf("insert doctor: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PgRepository) UpdateDoctorStatus(ctx context.Context, id int64, status DoctorStatus) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE doctors SET status = $2 WHERE id = $1
	`, id, status)
	if err != nil {
		return fmt.Errorf("update doctor status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ErrDoctorNotFound
	}

	return nil
}

func (r *PgRepository) DeleteDoctor(ctx context.Context, id int64) error {
	// Unconditional; appointments referencing the doctor are left in place.
	_, err := r.pool.Exec(ctx, `
		DELETE FROM doctors WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	return nil
}

func (r *PgRepository) ListDoctorsByStatus(ctx context.Context, status DoctorStatus) ([]Doctor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+doctorColumns+`
		FROM doctors
		WHERE status = $1
	`, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDoctors(rows)
}

func (r *PgRepository) ListAllDoctors(ctx context.Context) ([]Doctor, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+doctorColumns+`
		FROM doctors
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDoctors(rows)
}

func collectDoctors(rows pgx.Rows) ([]Doctor, error) {
	var result []Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) GetDoctorIDByUserID(ctx context.Context, userID int64) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		SELECT id FROM doctors WHERE user_id = $1
	`, userID).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrDoctorNotFound
		}
		return 0, err
	}
	return id, nil
}

// Patient workflow

func (r *PgRepository) CreatePatient(ctx context.Context, p Patient) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create patient: %w", err)
	}
	defer tx.Rollback(ctx)

	var existing int64
	err = tx.QueryRow(ctx, `
		SELECT id FROM patients WHERE user_id = $1
	`, p.UserID).Scan(&existing)
	if err == nil {
		return ErrPatientExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("check patient profile: %w", err)
	}

	firstVisit := 0
	if p.FirstVisit {
		firstVisit = 1
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO patients (
			user_id, full_name, age, gender, phone, email,
			address, emergency_contact, medical_notes, first_visit
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, p.UserID, p.FullName, p.Age, p.Gender, p.Phone, p.Email,
		p.Address, p.EmergencyContact, p.MedicalNotes, firstVisit)
	if err != nil {
		return fmt.Errorf("insert patient: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *PgRepository) ListPatients(ctx context.Context) ([]Patient, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, full_name, age, gender, phone, email,
		       address, emergency_contact, medical_notes, first_visit, created_at
		FROM patients
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) DeletePatient(ctx context.Context, id int64) error {
	// Deleting an unknown id is a silent success, matching the endpoint
	// contract.
	_, err := r.pool.Exec(ctx, `
		DELETE FROM patients WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	return nil
}

// Booking

func (r *PgRepository) CreateAppointmentForUser(ctx context.Context, userID int64, a Appointment) (*Appointment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin book appointment: %w", err)
	}
	defer tx.Rollback(ctx)

	var patientID int64
	err = tx.QueryRow(ctx, `
		SELECT id FROM patients WHERE user_id = $1
	`, userID).Scan(&patientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("resolve patient: %w", err)
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO appointments (patient_id, doctor_id, appointment_date, time_slot, issue, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, patient_id, doctor_id, appointment_date, time_slot, issue, status
	`, patientID, a.DoctorID, a.AppointmentDate, a.TimeSlot, a.Issue, a.Status)

	created, err := scanAppointment(row)
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit book appointment: %w", err)
	}

	return created, nil
}

func (r *PgRepository) ListAppointmentsForDoctor(ctx context.Context, doctorID int64) ([]DoctorAppointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT
			a.id,
			a.appointment_date,
			a.time_slot,
			a.issue,
			a.status,
			p.full_name,
			p.age,
			p.gender,
			p.phone,
			p.email,
			p.address,
			p.medical_notes,
			p.emergency_contact
		FROM appointments a
		JOIN patients p ON a.patient_id = p.id
		WHERE a.doctor_id = $1
		ORDER BY a.appointment_date DESC, a.time_slot ASC
	`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []DoctorAppointment
	for rows.Next() {
		var da DoctorAppointment
		err := rows.Scan(
			&da.AppointmentID,
			&da.AppointmentDate,
			&da.TimeSlot,
			&da.Issue,
			&da.Status,
			&da.FullName,
			&da.Age,
			&da.Gender,
			&da.Phone,
			&da.PatientEmail,
			&da.Address,
			&da.MedicalNotes,
			&da.EmergencyContact,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, da)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
