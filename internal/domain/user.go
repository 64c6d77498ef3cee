package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

type User struct {
	ID           uint
	Username     string
	PasswordHash []byte
	Role         string
	CreatedAt    time.Time
}
