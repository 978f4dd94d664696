package identity

type Role string

const (
	RolePatient Role = "PATIENT"
	RoleDoctor  Role = "DOCTOR"
	RoleAdmin   Role = "ADMIN"
)

// CoerceRole maps anything outside the recognized set to PATIENT.
func CoerceRole(raw string) Role {
	switch Role(raw) {
	case RolePatient, RoleDoctor, RoleAdmin:
		return Role(raw)
	default:
		return RolePatient
	}
}

type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Age          *int
	PhoneNo      *string
	City         *string
	Country      *string
	ProfilePic   *string
}

// ProfileUpdate carries the full set of profile columns; the update endpoint
// overwrites all of them at once.
type ProfileUpdate struct {
	ID         int64
	Name       string
	Age        int
	Email      string
	PhoneNo    string
	City       string
	Country    string
	ProfilePic string
}
