package domain

// DocumentType enumerates the identity documents accepted at registration.
type DocumentType string

const (
	DocumentTypeCitizenID    DocumentType = "Cédula de ciudadanía"
	DocumentTypeForeignID    DocumentType = "Cédula extranjera"
	DocumentTypeIdentityCard DocumentType = "Tarjeta de identidad"
	DocumentTypePassport     DocumentType = "Pasaporte"
)

// CountryColombia selects the department/municipality branch of the
// location invariant; every other country uses the state branch.
const CountryColombia = "Colombia"

// User mirrors the persisted representation in the users table.
// Email is stored lowercased; email and document are unique.
type User struct {
	ID           string
	Firstname    string
	Lastname     string
	Country      string
	Department   string
	Municipality string
	State        string
	DocumentType string
	Document     string
	Email        string
	PasswordHash string
	Avatar       string
	Role         string
	Active       bool
}

// PublicView strips credential material from the record. API responses
// must never carry the password hash.
func (u User) PublicView() User {
	u.PasswordHash = ""
	return u
}
