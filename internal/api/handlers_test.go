package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/clinicdesk/clinic-backend/internal/clinic"
	"github.com/clinicdesk/clinic-backend/internal/identity"
)

// ---------- Fakes ----------

type passLocker struct{}

func (passLocker) WithLock(ctx context.Context, resource string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeIdentityRepo struct {
	users  []identity.User
	nextID int64
}

func (f *fakeIdentityRepo) CreateUser(_ context.Context, u identity.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return identity.ErrEmailTaken
		}
	}
	f.nextID++
	u.ID = f.nextID
	f.users = append(f.users, u)
	return nil
}

func (f *fakeIdentityRepo) GetUserByEmail(_ context.Context, email string) (*identity.User, error) {
	for i := range f.users {
		if f.users[i].Email == email {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, identity.ErrUserNotFound
}

func (f *fakeIdentityRepo) ListUsersByID(_ context.Context, id int64) ([]identity.User, error) {
	var result []identity.User
	for _, u := range f.users {
		if u.ID == id {
			result = append(result, u)
		}
	}
	return result, nil
}

func (f *fakeIdentityRepo) UpdateProfile(_ context.Context, p identity.ProfileUpdate) error {
	for i := range f.users {
		if f.users[i].ID == p.ID {
			f.users[i].Name = p.Name
			return nil
		}
	}
	return identity.ErrUserNotFound
}

type fakeClinicRepo struct {
	doctors      []clinic.Doctor
	patients     []clinic.Patient
	appointments []clinic.Appointment
	nextID       int64
}

func (f *fakeClinicRepo) CreateDoctor(_ context.Context, d clinic.Doctor) error {
	for _, existing := range f.doctors {
		if existing.Email == d.Email || existing.Phone == d.Phone || existing.RegNumber == d.RegNumber {
			return clinic.ErrDoctorConflict
		}
	}
	f.nextID++
	d.ID = f.nextID
	f.doctors = append(f.doctors, d)
	return nil
}

func (f *fakeClinicRepo) UpdateDoctorStatus(_ context.Context, id int64, status clinic.DoctorStatus) error {
	for i := range f.doctors {
		if f.doctors[i].ID == id {
			f.doctors[i].Status = status
			return nil
		}
	}
	return clinic.ErrDoctorNotFound
}

func (f *fakeClinicRepo) DeleteDoctor(_ context.Context, id int64) error {
	for i := range f.doctors {
		if f.doctors[i].ID == id {
			f.doctors = append(f.doctors[:i], f.doctors[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeClinicRepo) ListDoctorsByStatus(_ context.Context, status clinic.DoctorStatus) ([]clinic.Doctor, error) {
	var result []clinic.Doctor
	for _, d := range f.doctors {
		if d.Status == status {
			result = append(result, d)
		}
	}
	return result, nil
}

func (f *fakeClinicRepo) ListAllDoctors(_ context.Context) ([]clinic.Doctor, error) {
	return append([]clinic.Doctor(nil), f.doctors...), nil
}

func (f *fakeClinicRepo) GetDoctorIDByUserID(_ context.Context, userID int64) (int64, error) {
	for _, d := range f.doctors {
		if d.UserID == userID {
			return d.ID, nil
		}
	}
	return 0, clinic.ErrDoctorNotFound
}

func (f *fakeClinicRepo) CreatePatient(_ context.Context, p clinic.Patient) error {
	for _, existing := range f.patients {
		if existing.UserID == p.UserID {
			return clinic.ErrPatientExists
		}
	}
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	f.patients = append(f.patients, p)
	return nil
}

func (f *fakeClinicRepo) ListPatients(_ context.Context) ([]clinic.Patient, error) {
	return append([]clinic.Patient(nil), f.patients...), nil
}

func (f *fakeClinicRepo) DeletePatient(_ context.Context, id int64) error {
	for i := range f.patients {
		if f.patients[i].ID == id {
			f.patients = append(f.patients[:i], f.patients[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeClinicRepo) CreateAppointmentForUser(_ context.Context, userID int64, a clinic.Appointment) (*clinic.Appointment, error) {
	var patientID int64
	for _, p := range f.patients {
		if p.UserID == userID {
			patientID = p.ID
			break
		}
	}
	if patientID == 0 {
		return nil, clinic.ErrPatientNotFound
	}

	f.nextID++
	a.ID = f.nextID
	a.PatientID = patientID
	f.appointments = append(f.appointments, a)
	return &a, nil
}

func (f *fakeClinicRepo) ListAppointmentsForDoctor(_ context.Context, doctorID int64) ([]clinic.DoctorAppointment, error) {
	var result []clinic.DoctorAppointment
	for _, a := range f.appointments {
		if a.DoctorID == doctorID {
			result = append(result, clinic.DoctorAppointment{
				AppointmentID:   a.ID,
				AppointmentDate: a.AppointmentDate,
				TimeSlot:        a.TimeSlot,
				Issue:           a.Issue,
				Status:          a.Status,
			})
		}
	}
	return result, nil
}

// ---------- Helpers ----------

func newTestRouter() (http.Handler, *fakeIdentityRepo, *fakeClinicRepo) {
	idRepo := &fakeIdentityRepo{}
	clRepo := &fakeClinicRepo{}

	router := NewRouter(RouterConfig{
		Identity: identity.NewService(idRepo, passLocker{}),
		Clinic:   clinic.NewService(clRepo, passLocker{}),
		Env:      "test",
		Version:  "test",
	})

	return router, idRepo, clRepo
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("decode response %q: %v", rec.Body.String(), err)
		}
	}

	return rec, decoded
}

func wantSuccess(t *testing.T, resp map[string]any, want bool) {
	t.Helper()
	if got, _ := resp["success"].(bool); got != want {
		t.Fatalf("want success=%v, got %v (resp=%v)", want, got, resp)
	}
}

// ---------- Identity endpoints ----------

func TestRegisterAndLoginScenario(t *testing.T) {
	router, _, _ := newTestRouter()

	register := map[string]any{"name": "A", "mail": "a@x.com", "password": "longpass1", "role": "PATIENT"}

	rec, resp := doJSON(t, router, http.MethodPost, "/register", register)
	if rec.Code != http.StatusOK {
		t.Fatalf("register: want 200, got %d", rec.Code)
	}
	wantSuccess(t, resp, true)

	// Same email again, different name and password.
	register["name"] = "B"
	register["password"] = "otherpass9"
	rec, resp = doJSON(t, router, http.MethodPost, "/register", register)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: want 409, got %d", rec.Code)
	}
	wantSuccess(t, resp, false)
	if resp["message"] != "User Already Exist..." {
		t.Fatalf("unexpected message %q", resp["message"])
	}

	rec, resp = doJSON(t, router, http.MethodPost, "/login", map[string]any{"mail": "a@x.com", "password": "longpass1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: want 200, got %d", rec.Code)
	}
	wantSuccess(t, resp, true)
	if userID, _ := resp["userId"].(float64); userID == 0 {
		t.Fatalf("login must return userId, resp=%v", resp)
	}
	if user, ok := resp["user"].(map[string]any); !ok || user["email"] != "a@x.com" {
		t.Fatalf("login must return the user row, resp=%v", resp)
	}

	rec, resp = doJSON(t, router, http.MethodPost, "/login", map[string]any{"mail": "a@x.com", "password": "wrongpass1"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: want 401, got %d", rec.Code)
	}
	wantSuccess(t, resp, false)
}

func TestRegisterValidation(t *testing.T) {
	router, _, _ := newTestRouter()

	rec, resp := doJSON(t, router, http.MethodPost, "/register",
		map[string]any{"name": "A", "mail": "a@x.com", "password": "short", "role": "PATIENT"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("short password: want 400, got %d", rec.Code)
	}
	wantSuccess(t, resp, false)

	rec, resp = doJSON(t, router, http.MethodPost, "/register",
		map[string]any{"mail": "a@x.com", "password": "longpass1", "role": "PATIENT"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing name: want 400, got %d", rec.Code)
	}
	wantSuccess(t, resp, false)
}

func TestLoginDoesNotLeakPasswordHash(t *testing.T) {
	router, idRepo, _ := newTestRouter()

	hash, _ := bcrypt.GenerateFromPassword([]byte("longpass1"), bcrypt.MinCost)
	idRepo.users = append(idRepo.users, identity.User{
		ID: 1, Name: "A", Email: "a@x.com", PasswordHash: string(hash), Role: identity.RolePatient,
	})

	rec, resp := doJSON(t, router, http.MethodPost, "/login", map[string]any{"mail": "a@x.com", "password": "longpass1"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: want 200, got %d", rec.Code)
	}

	user := resp["user"].(map[string]any)
	for key := range user {
		if key == "password" || key == "password_hash" {
			t.Fatalf("response leaks %s", key)
		}
	}
}

func TestUserProfile(t *testing.T) {
	router, idRepo, _ := newTestRouter()

	idRepo.users = append(idRepo.users, identity.User{ID: 1, Name: "A", Email: "a@x.com", Role: identity.RolePatient})
	idRepo.nextID = 1

	rec, resp := doJSON(t, router, http.MethodGet, "/userProfile?userId=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}
	users, ok := resp["user"].([]any)
	if !ok || len(users) != 1 {
		t.Fatalf("profile must be a collection, resp=%v", resp)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/userProfile", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing userId: want 400, got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodGet, "/userProfile?userId=42", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown user: want 404, got %d", rec.Code)
	}
}

// ---------- Doctor endpoints ----------

func validDoctorRequest() map[string]any {
	return map[string]any{
		"user_id":        int64(5),
		"name":           "Dr. House",
		"email":          "house@clinic.test",
		"phone":          "0123456789",
		"specialization": "Diagnostics",
		"experience":     "15",
		"reg_number":     "R1",
		"available_days": []string{"Monday", "Friday"},
		"time_slots":     []map[string]string{{"start": "09:00", "end": "12:00"}},
	}
}

func TestRegisterDoctor_DuplicateRegNumberConflict(t *testing.T) {
	router, _, _ := newTestRouter()

	rec, resp := doJSON(t, router, http.MethodPost, "/registerDoc", validDoctorRequest())
	if rec.Code != http.StatusOK {
		t.Fatalf("first register: want 200, got %d (resp=%v)", rec.Code, resp)
	}
	wantSuccess(t, resp, true)

	// Same reg number, different email and phone.
	second := validDoctorRequest()
	second["email"] = "other@clinic.test"
	second["phone"] = "0987654321"
	rec, resp = doJSON(t, router, http.MethodPost, "/registerDoc", second)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate reg number: want 409, got %d", rec.Code)
	}
	wantSuccess(t, resp, false)
}

func TestRegisterDoctor_MissingFields(t *testing.T) {
	router, _, clRepo := newTestRouter()

	req := validDoctorRequest()
	delete(req, "specialization")

	rec, resp := doJSON(t, router, http.MethodPost, "/registerDoc", req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", rec.Code)
	}
	wantSuccess(t, resp, false)
	if len(clRepo.doctors) != 0 {
		t.Fatal("validation failure must not insert")
	}
}

func TestDoctorStatusLifecycle(t *testing.T) {
	router, _, clRepo := newTestRouter()

	rec, _ := doJSON(t, router, http.MethodPost, "/registerDoc", validDoctorRequest())
	if rec.Code != http.StatusOK {
		t.Fatalf("register: want 200, got %d", rec.Code)
	}
	id := clRepo.doctors[0].ID

	// Directory is empty while the application is pending.
	rec, resp := doJSON(t, router, http.MethodGet, "/doctors-panel-info", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("panel info: want 200, got %d", rec.Code)
	}
	if resp["data"] != nil {
		if data := resp["data"].([]any); len(data) != 0 {
			t.Fatalf("pending doctor must not be listed, got %v", data)
		}
	}

	rec, _ = doJSON(t, router, http.MethodPut, "/updateDoc", map[string]any{"id": id, "status": "APPROVED"})
	if rec.Code != http.StatusOK {
		t.Fatalf("approve: want 200, got %d", rec.Code)
	}

	rec, resp = doJSON(t, router, http.MethodGet, "/doctors-panel-info", nil)
	data, _ := resp["data"].([]any)
	if rec.Code != http.StatusOK || len(data) != 1 {
		t.Fatalf("approved doctor must be listed, status=%d data=%v", rec.Code, resp["data"])
	}

	// Arbitrary status strings are rejected.
	rec, resp = doJSON(t, router, http.MethodPut, "/updateDoc", map[string]any{"id": id, "status": "SHADOWBANNED"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad status: want 400, got %d", rec.Code)
	}
	wantSuccess(t, resp, false)

	rec, _ = doJSON(t, router, http.MethodPut, "/updateDoc", map[string]any{"id": 999, "status": "APPROVED"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown doctor: want 404, got %d", rec.Code)
	}

	rec, _ = doJSON(t, router, http.MethodDelete, "/deleteDoc", map[string]any{"id": id})
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: want 200, got %d", rec.Code)
	}
	if len(clRepo.doctors) != 0 {
		t.Fatal("doctor row must be gone after delete")
	}
}

// ---------- Patient endpoints ----------

func validPatientRequest() map[string]any {
	return map[string]any{
		"user_id":     int64(7),
		"full_name":   "Jane Roe",
		"phone":       "0123456789",
		"first_visit": true,
	}
}

func TestRegisterPatient_Gate(t *testing.T) {
	router, _, clRepo := newTestRouter()

	rec, resp := doJSON(t, router, http.MethodPost, "/registerPatient", validPatientRequest())
	if rec.Code != http.StatusOK {
		t.Fatalf("first register: want 200, got %d", rec.Code)
	}
	wantSuccess(t, resp, true)

	rec, resp = doJSON(t, router, http.MethodPost, "/registerPatient", validPatientRequest())
	if rec.Code != http.StatusConflict {
		t.Fatalf("second register: want 409, got %d", rec.Code)
	}
	wantSuccess(t, resp, false)
	if len(clRepo.patients) != 1 {
		t.Fatalf("want exactly one patient row, got %d", len(clRepo.patients))
	}
}

func TestDeletePatient(t *testing.T) {
	router, _, _ := newTestRouter()

	rec, _ := doJSON(t, router, http.MethodDelete, "/deletePatient", map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing id: want 400, got %d", rec.Code)
	}

	// Unknown id deletes silently.
	rec, resp := doJSON(t, router, http.MethodDelete, "/deletePatient", map[string]any{"id": 12345})
	if rec.Code != http.StatusOK {
		t.Fatalf("unknown id: want 200, got %d", rec.Code)
	}
	wantSuccess(t, resp, true)
}

// ---------- Booking endpoints ----------

func validBookingRequest() map[string]any {
	return map[string]any{
		"name":        "Jane Roe",
		"email":       "jane@x.com",
		"phone":       "0123456789",
		"doctor_name": "Dr. House",
		"doctor_id":   int64(1),
		"date":        "2026-09-15",
		"issue":       "checkup",
		"patient_id":  int64(7),
	}
}

func TestBookAppointment_NoProfileIs404(t *testing.T) {
	router, _, clRepo := newTestRouter()

	rec, resp := doJSON(t, router, http.MethodPost, "/book-appointment", validBookingRequest())
	if rec.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", rec.Code)
	}
	wantSuccess(t, resp, false)
	if len(clRepo.appointments) != 0 {
		t.Fatal("no appointment row may be created")
	}
}

func TestBookAppointment_Success(t *testing.T) {
	router, _, clRepo := newTestRouter()

	if rec, _ := doJSON(t, router, http.MethodPost, "/registerPatient", validPatientRequest()); rec.Code != http.StatusOK {
		t.Fatalf("register patient failed: %d", rec.Code)
	}

	rec, resp := doJSON(t, router, http.MethodPost, "/book-appointment", validBookingRequest())
	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d (resp=%v)", rec.Code, resp)
	}
	wantSuccess(t, resp, true)

	if len(clRepo.appointments) != 1 {
		t.Fatalf("want 1 appointment, got %d", len(clRepo.appointments))
	}
	appt := clRepo.appointments[0]
	if appt.Status != clinic.AppointmentPending || appt.TimeSlot != clinic.DefaultTimeSlot {
		t.Fatalf("unexpected appointment %+v", appt)
	}
}

func TestDoctorAppointments_NoProfileIs404(t *testing.T) {
	router, _, _ := newTestRouter()

	rec, resp := doJSON(t, router, http.MethodGet, "/doctor-appointments?userId=42", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", rec.Code)
	}
	wantSuccess(t, resp, false)
}
