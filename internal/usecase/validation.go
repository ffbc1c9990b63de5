package usecase

import (
	"errors"
	"strings"

	"github.com/ValentinaMarinG/react-project-backend/internal/core/domain"
	"github.com/ValentinaMarinG/react-project-backend/internal/infra/config"
)

var (
	// ErrInvalidDocumentType indicates the document type is outside the allowed enum.
	ErrInvalidDocumentType = errors.New("invalid document type")
	// ErrColombiaLocationRequired indicates department or municipality are missing for Colombia.
	ErrColombiaLocationRequired = errors.New("department and municipality are required for Colombia")
	// ErrStateNotAllowed indicates the state field must be empty for Colombia.
	ErrStateNotAllowed = errors.New("state field is not required for Colombia")
	// ErrLocationNotAllowed indicates department or municipality were provided for a country other than Colombia.
	ErrLocationNotAllowed = errors.New("department and municipality are not valid for another country")
	// ErrStateRequired indicates the state field is missing for a country other than Colombia.
	ErrStateRequired = errors.New("state field is required for a country other than Colombia")
	// ErrEmailRequired indicates the email field is missing.
	ErrEmailRequired = errors.New("email is required")
	// ErrInvalidEmailDomain indicates the email domain is outside the allow-list.
	ErrInvalidEmailDomain = errors.New("email domain is not valid")
	// ErrPasswordRequired indicates the password field is missing.
	ErrPasswordRequired = errors.New("password is required")
)

// FieldValidator holds the configured allow-lists for registration input.
// All checks are pure and side-effect free.
type FieldValidator struct {
	emailDomains  []string
	documentTypes map[string]struct{}
}

// NewFieldValidator builds a validator from configuration, falling back to
// the built-in allow-lists when a list is empty.
func NewFieldValidator(cfg config.ValidationSettings) *FieldValidator {
	domains := cfg.AllowedEmailDomains
	if len(domains) == 0 {
		domains = []string{"gmail.com", "outlook.com"}
	}

	normalized := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			normalized = append(normalized, d)
		}
	}

	types := cfg.AllowedDocumentTypes
	if len(types) == 0 {
		types = []string{
			string(domain.DocumentTypeCitizenID),
			string(domain.DocumentTypeForeignID),
			string(domain.DocumentTypeIdentityCard),
			string(domain.DocumentTypePassport),
		}
	}

	typeSet := make(map[string]struct{}, len(types))
	for _, t := range types {
		typeSet[t] = struct{}{}
	}

	return &FieldValidator{
		emailDomains:  normalized,
		documentTypes: typeSet,
	}
}

// ValidateEmailDomain reports whether the address ends in one of the
// allow-listed domains. This is a deliberate allow-list, not syntax
// validation: a well-formed address on any other domain is rejected.
func (v *FieldValidator) ValidateEmailDomain(email string) bool {
	email = strings.ToLower(email)
	for _, d := range v.emailDomains {
		if strings.HasSuffix(email, "@"+d) {
			return true
		}
	}
	return false
}

// ValidateDocumentType reports whether the value is one of the accepted
// document types.
func (v *FieldValidator) ValidateDocumentType(value string) bool {
	_, ok := v.documentTypes[value]
	return ok
}

// ValidateLocation enforces the country-conditional location rule: Colombia
// requires department and municipality and forbids state; any other country
// forbids department and municipality and requires state. The two branches
// are intentionally asymmetric, one checks presence, the other absence.
func (v *FieldValidator) ValidateLocation(country, department, municipality, state string) error {
	if country == domain.CountryColombia {
		if department == "" || municipality == "" {
			return ErrColombiaLocationRequired
		}
		if state != "" {
			return ErrStateNotAllowed
		}
		return nil
	}

	if department != "" || municipality != "" {
		return ErrLocationNotAllowed
	}
	if state == "" {
		return ErrStateRequired
	}
	return nil
}

// ValidateRegistration runs the field checks in the fixed order document
// type, location, email, password, and stops at the first failure.
func (v *FieldValidator) ValidateRegistration(documentType, country, department, municipality, state, email, password string) error {
	if !v.ValidateDocumentType(documentType) {
		return ErrInvalidDocumentType
	}
	if err := v.ValidateLocation(country, department, municipality, state); err != nil {
		return err
	}
	if email == "" {
		return ErrEmailRequired
	}
	if !v.ValidateEmailDomain(email) {
		return ErrInvalidEmailDomain
	}
	if password == "" {
		return ErrPasswordRequired
	}
	return nil
}
