package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenderLabel(t *testing.T) {
	assert.Equal(t, "Male", GenderLabel("M"))
	for _, code := range []string{"F", "", "X", "m", " M"} {
		assert.Equal(t, "Female", GenderLabel(code), "code %q", code)
	}
}

func TestParseGender(t *testing.T) {
	cases := map[string]Gender{
		"M":  GenderMale,
		"m ": GenderMale,
		"F":  GenderFemale,
		"":   GenderUnknown,
		"X":  GenderUnknown,
	}
	for code, want := range cases {
		assert.Equal(t, want, ParseGender(code), "code %q", code)
	}
}

func TestNewUserProfile(t *testing.T) {
	p := NewUserProfile(5, "25-34", "X")

	assert.Equal(t, int64(5), p.ID)
	assert.Equal(t, "25-34", p.Age)
	assert.Equal(t, "Female", p.GenderLabel)
	assert.Equal(t, GenderUnknown, p.Gender)
}
