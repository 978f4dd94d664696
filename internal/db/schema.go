package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// The original deployment created its tables inline on boot; keeping that
// behavior means a fresh database needs no migration step for local dev.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id           BIGSERIAL PRIMARY KEY,
		name         TEXT NOT NULL,
		email        TEXT NOT NULL,
		password     TEXT NOT NULL,
		role         TEXT NOT NULL DEFAULT 'PATIENT',
		age          INT,
		phone_no     TEXT,
		city         TEXT,
		country      TEXT,
		profile_pic  TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS doctors (
		id                BIGSERIAL PRIMARY KEY,
		user_id           BIGINT,
		name              TEXT,
		email             TEXT,
		phone             TEXT,
		gender            TEXT,
		dob               TEXT,
		specialization    TEXT,
		qualification     TEXT,
		experience        TEXT,
		reg_number        TEXT,
		reg_council       TEXT,
		clinic_name       TEXT,
		address           TEXT,
		city              TEXT,
		state             TEXT,
		pincode           TEXT,
		consultation_type TEXT,
		available_days    TEXT,
		time_slots        TEXT,
		slot_duration     TEXT,
		max_patients      TEXT,
		consultation_fee  TEXT,
		follow_up_fee     TEXT,
		online_fee        TEXT,
		status            TEXT NOT NULL DEFAULT 'PENDING'
	)`,
	`CREATE TABLE IF NOT EXISTS patients (
		id                BIGSERIAL PRIMARY KEY,
		user_id           BIGINT,
		full_name         TEXT,
		age               INT,
		gender            TEXT,
		phone             TEXT,
		email             TEXT,
		address           TEXT,
		emergency_contact TEXT,
		medical_notes     TEXT,
		first_visit       INT NOT NULL DEFAULT 1,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id               BIGSERIAL PRIMARY KEY,
		patient_id       BIGINT NOT NULL,
		doctor_id        BIGINT,
		appointment_date TEXT,
		time_slot        TEXT,
		issue            TEXT,
		status           TEXT NOT NULL DEFAULT 'PENDING'
	)`,
}

// EnsureSchema creates the four clinic tables when they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
