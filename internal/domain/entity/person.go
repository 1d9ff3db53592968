package entity

import "github.com/google/uuid"

// PersonKind distinguishes the two billing contact roles a property may have.
type PersonKind string

const (
	PersonKindOwner       PersonKind = "owner"
	PersonKindResponsible PersonKind = "responsible_person"
)

// String returns the string representation of the PersonKind.
func (k PersonKind) String() string {
	return string(k)
}

// Person holds the contact data shared by owners and responsible persons.
type Person struct {
	Base
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	NationalID string `json:"national_id"`
	Address    string `json:"address"`
}

// FullName joins the first and last name.
func (p *Person) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}

	return p.FirstName + " " + p.LastName
}

// Owner is the legal owner of one or more properties.
type Owner struct {
	Person
	PropertyIDs []uuid.UUID `json:"property_ids,omitempty"`
}

// ResponsiblePerson is billed in place of an owner, e.g. a tenant or a caretaker.
type ResponsiblePerson struct {
	Person
	Relationship string      `json:"relationship"`
	PropertyIDs  []uuid.UUID `json:"property_ids,omitempty"`
}
