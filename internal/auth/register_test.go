package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NaaAyeley-design/E-Commerce-sub003/internal/domain/user"
)

func TestRegistrationRole(t *testing.T) {
	tests := []struct {
		requested string
		want      string
		ok        bool
	}{
		{"", user.RoleCustomer, true},
		{"customer", user.RoleCustomer, true},
		{"producer", user.RoleProducer, true},
		{"admin", "", false},
		{"superuser", "", false},
		{"Customer", "", false},
	}
	for _, tt := range tests {
		got, ok := registrationRole(tt.requested)
		assert.Equal(t, tt.ok, ok, "requested %q", tt.requested)
		assert.Equal(t, tt.want, got, "requested %q", tt.requested)
	}
}
