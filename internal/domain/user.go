package domain

import "strings"

// Gender is the normalized gender classification of a user record.
type Gender int

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

// MaleCode is the raw dataset code recognised as male. Every other code,
// including empty and unrecognised values, is displayed as female.
const MaleCode = "M"

const femaleCode = "F"

// String returns the enumeration name.
func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "male"
	case GenderFemale:
		return "female"
	default:
		return "unknown"
	}
}

// ParseGender maps a raw dataset code onto the explicit enumeration. Unlike
// GenderLabel it keeps unrecognised codes as GenderUnknown.
func ParseGender(code string) Gender {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case MaleCode:
		return GenderMale
	case femaleCode:
		return GenderFemale
	default:
		return GenderUnknown
	}
}

// GenderLabel returns the display label used by the demo UI: "Male" for
// MaleCode and "Female" for anything else.
func GenderLabel(code string) string {
	if code == MaleCode {
		return "Male"
	}
	return "Female"
}

// UserProfile holds the descriptive metadata of a user.
type UserProfile struct {
	ID int64
	// Age is kept as given by the dataset; it may be numeric ("34") or a
	// bucket ("25-34").
	Age         string
	GenderCode  string
	Gender      Gender
	GenderLabel string
}

// NewUserProfile builds a profile from raw dataset values.
func NewUserProfile(id int64, age, genderCode string) UserProfile {
	return UserProfile{
		ID:          id,
		Age:         age,
		GenderCode:  genderCode,
		Gender:      ParseGender(genderCode),
		GenderLabel: GenderLabel(genderCode),
	}
}
