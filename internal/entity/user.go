package entity

import "github.com/gofrs/uuid/v5"

type UserRole struct {
	ID   uuid.UUID `json:"role_id"`
	Name string    `json:"role_name"`
}

type User struct {
	ID        uuid.UUID `json:"id"`
	LastName  string    `json:"lastName"`
	FirstName string    `json:"firstName"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	IsBlocked bool      `json:"isBlocked"`
}
