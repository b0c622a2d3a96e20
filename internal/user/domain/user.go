// Package domain defines the core user domain entities and types.
package domain

// User represents one person's profile. Every field is optional at the type level so
// partial updates can tell "absent" (nil) from "set"; the Validator decides which
// fields a complete record requires.
type User struct {
	// ID is assigned by the repository on creation and is not part of equality.
	ID          int64
	Email       *string
	FirstName   *string
	LastName    *string
	BirthDate   *Date
	Address     *string
	PhoneNumber *string
}

// Equal reports whether u and other hold the same six profile fields.
func (u *User) Equal(other *User) bool {
	if u == nil || other == nil {
		return u == other
	}
	return equalString(u.Email, other.Email) &&
		equalString(u.FirstName, other.FirstName) &&
		equalString(u.LastName, other.LastName) &&
		equalDate(u.BirthDate, other.BirthDate) &&
		equalString(u.Address, other.Address) &&
		equalString(u.PhoneNumber, other.PhoneNumber)
}

// Clone returns a deep copy of u.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:          u.ID,
		Email:       cloneString(u.Email),
		FirstName:   cloneString(u.FirstName),
		LastName:    cloneString(u.LastName),
		BirthDate:   cloneDate(u.BirthDate),
		Address:     cloneString(u.Address),
		PhoneNumber: cloneString(u.PhoneNumber),
	}
}

// Merge overwrites the fields of u that are set in partial. Nil fields in partial
// leave u unchanged, so Merge can never clear a field.
func (u *User) Merge(partial *User) {
	if partial == nil {
		return
	}
	if partial.Email != nil {
		u.Email = cloneString(partial.Email)
	}
	if partial.FirstName != nil {
		u.FirstName = cloneString(partial.FirstName)
	}
	if partial.LastName != nil {
		u.LastName = cloneString(partial.LastName)
	}
	if partial.BirthDate != nil {
		u.BirthDate = cloneDate(partial.BirthDate)
	}
	if partial.Address != nil {
		u.Address = cloneString(partial.Address)
	}
	if partial.PhoneNumber != nil {
		u.PhoneNumber = cloneString(partial.PhoneNumber)
	}
}

// Replace overwrites all six fields of u with those of full, nils included.
func (u *User) Replace(full *User) {
	if full == nil {
		full = &User{}
	}
	u.Email = cloneString(full.Email)
	u.FirstName = cloneString(full.FirstName)
	u.LastName = cloneString(full.LastName)
	u.BirthDate = cloneDate(full.BirthDate)
	u.Address = cloneString(full.Address)
	u.PhoneNumber = cloneString(full.PhoneNumber)
}

// BornBetween reports whether the birth date lies strictly between from and to.
// Users without a birth date never match.
func (u *User) BornBetween(from, to Date) bool {
	if u.BirthDate == nil {
		return false
	}
	return u.BirthDate.After(from) && u.BirthDate.Before(to)
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// DatePtr returns a pointer to d.
func DatePtr(d Date) *Date {
	return &d
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalDate(a, b *Date) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneDate(d *Date) *Date {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
