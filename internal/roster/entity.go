// Package roster holds the doctor and patient records shown by clinicdash
// and the immutable collection type that backs each list.
package roster

import "github.com/google/uuid"

// Kind identifies which list an entity belongs to.
type Kind int

const (
	KindDoctors Kind = iota
	KindPatients
)

func (k Kind) String() string {
	switch k {
	case KindDoctors:
		return "doctors"
	case KindPatients:
		return "patients"
	default:
		return "unknown"
	}
}

// Title returns the heading shown above the list.
func (k Kind) Title() string {
	switch k {
	case KindDoctors:
		return "Doctors List"
	case KindPatients:
		return "Patients List"
	default:
		return "List"
	}
}

// Entity is the summary record shown in a list (doctor or patient).
type Entity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DoctorDetail is the extended record fetched lazily for one doctor.
type DoctorDetail struct {
	DOB       string `json:"dob"`
	Specialty string `json:"specialty"`
	Address   string `json:"address"`
}

// Expansion is the result of expanding one list entry.
// Doctors fill Detail; patients fill Related with their doctors.
type Expansion struct {
	Detail  *DoctorDetail
	Related []Entity
}

// Empty reports whether there is nothing to render.
func (e Expansion) Empty() bool {
	return e.Detail == nil && len(e.Related) == 0
}

// NewID returns a time-ordered unique identifier (UUIDv7) for a locally
// created entity. Falls back to a random UUID if the clock-based variant
// cannot be generated.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
