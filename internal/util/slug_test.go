package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Handwoven Bags":      "handwoven-bags",
		"  Beads & Jewellery": "beads-jewellery",
		"ACCRA!!":             "accra",
		"---":                 "category",
		"":                    "category",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestGenerateOTP6(t *testing.T) {
	for i := 0; i < 50; i++ {
		otp, err := GenerateOTP6()
		assert.NoError(t, err)
		assert.Len(t, otp, 6)
		for _, r := range otp {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}
