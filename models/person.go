package models

// Person is a member of the team.
type Person struct {
	ID    int    `json:"id" bson:"id"`
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Role  string `json:"role" bson:"role"`
}

func (p Person) RecordID() int { return p.ID }

// PersonPatch carries the fields of a create or update request. Nil fields
// were not supplied by the client; a JSON null also decodes to nil, so it
// leaves the stored value alone.
type PersonPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

func (p PersonPatch) NewRecord(id int) Person {
	return p.ApplyTo(Person{ID: id})
}

func (p PersonPatch) ApplyTo(person Person) Person {
	if p.Name != nil {
		person.Name = *p.Name
	}
	if p.Email != nil {
		person.Email = *p.Email
	}
	if p.Role != nil {
		person.Role = *p.Role
	}
	return person
}
