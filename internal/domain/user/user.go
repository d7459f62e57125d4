package user

import "time"

const (
	RoleCustomer = "customer"
	RoleProducer = "producer"
	RoleAdmin    = "admin"
)

type User struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          string    `json:"role"`
	IsActive      bool      `json:"is_active"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ValidRole(r string) bool {
	return r == RoleCustomer || r == RoleProducer
}
