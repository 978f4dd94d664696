package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicdesk/clinic-backend/internal/clinic"
	"github.com/clinicdesk/clinic-backend/internal/config"
	"github.com/clinicdesk/clinic-backend/internal/db"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}

	gofakeit.Seed(time.Now().UnixNano())

	userIDs, err := seedUsers(context.Background(), pool, 50)
	if err != nil {
		log.Fatalf("seed users: %v", err)
	}
	if err := seedDoctors(context.Background(), pool, userIDs[:10]); err != nil {
		log.Fatalf("seed doctors: %v", err)
	}
	if err := seedPatients(context.Background(), pool, userIDs[10:30]); err != nil {
		log.Fatalf("seed patients: %v", err)
	}

	log.Println("seed complete")
}

// seedUsers inserts users with a bcrypt-hashed shared dev password and
// returns the new ids.
func seedUsers(ctx context.Context, pool *pgxpool.Pool, count int) ([]int64, error) {
	log.Printf("seeding %d users", count)

	hash, err := bcrypt.GenerateFromPassword([]byte("localdev-password"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	roles := []string{"PATIENT", "PATIENT", "PATIENT", "DOCTOR", "ADMIN"}

	ids := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		var id int64
		err := pool.QueryRow(ctx, `
			INSERT INTO users (name, email, password, role, age, phone_no, city, country)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`,
			gofakeit.Name(),
			fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			string(hash),
			roles[i%len(roles)],
			gofakeit.Number(18, 90),
			gofakeit.Numerify("##########"),
			gofakeit.City(),
			gofakeit.Country(),
		).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func seedDoctors(ctx context.Context, pool *pgxpool.Pool, userIDs []int64) error {
	log.Printf("seeding %d doctors", len(userIDs))

	specialties := []string{
		"Dermatology",
		"Cardiology",
		"General Practice",
		"Orthopedics",
		"Endocrinology",
		"Neurology",
		"Pediatrics",
		"Psychiatry",
		"Ophthalmology",
		"ENT",
	}

	days := []clinic.Weekday{clinic.Monday, clinic.Wednesday, clinic.Friday}
	slots := []clinic.TimeRange{
		{Start: "09:00", End: "12:00"},
		{Start: "14:00", End: "17:00"},
	}

	repo := clinic.NewPgRepository(pool)

	for i, userID := range userIDs {
		doctor := clinic.Doctor{
			UserID:           userID,
			Name:             "Dr. " + gofakeit.Name(),
			Email:            fmt.Sprintf("doc%d.%s", i, gofakeit.Email()),
			Phone:            gofakeit.Numerify("##########"),
			Gender:           gofakeit.Gender(),
			DOB:              gofakeit.Date().Format("2006-01-02"),
			Specialization:   specialties[i%len(specialties)],
			Qualification:    "MBBS",
			Experience:       fmt.Sprintf("%d", gofakeit.Number(1, 30)),
			RegNumber:        gofakeit.Numerify("REG-######"),
			RegCouncil:       gofakeit.State() + " Medical Council",
			ClinicName:       gofakeit.Company() + " Clinic",
			Address:          gofakeit.Street(),
			City:             gofakeit.City(),
			State:            gofakeit.State(),
			Pincode:          gofakeit.Zip(),
			ConsultationType: "IN_PERSON",
			Availability:     clinic.Availability{Days: days, Slots: slots},
			SlotDuration:     "15",
			MaxPatients:      "20",
			ConsultationFee:  fmt.Sprintf("%d", gofakeit.Number(200, 2000)),
			FollowUpFee:      fmt.Sprintf("%d", gofakeit.Number(100, 500)),
			OnlineFee:        fmt.Sprintf("%d", gofakeit.Number(100, 1000)),
		}

		if err := repo.CreateDoctor(ctx, doctor); err != nil {
			return err
		}

		// Approve roughly half so the public directory has entries.
		if i%2 == 0 {
			_, err := pool.Exec(ctx, `
				UPDATE doctors SET status = 'APPROVED' WHERE email = $1
			`, doctor.Email)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, userIDs []int64) error {
	log.Printf("seeding %d patients", len(userIDs))

	repo := clinic.NewPgRepository(pool)

	for _, userID := range userIDs {
		age := gofakeit.Number(1, 95)
		patient := clinic.Patient{
			UserID:           userID,
			FullName:         gofakeit.Name(),
			Age:              &age,
			Gender:           gofakeit.Gender(),
			Phone:            gofakeit.Numerify("##########"),
			Email:            gofakeit.Email(),
			Address:          gofakeit.Street(),
			EmergencyContact: gofakeit.Numerify("##########"),
			MedicalNotes:     gofakeit.Sentence(8),
			FirstVisit:       gofakeit.Bool(),
		}

		if err := repo.CreatePatient(ctx, patient); err != nil {
			return err
		}
	}

	return nil
}
