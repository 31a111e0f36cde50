package models

import "time"

// Customer is a directory entry. Orders copy the identity fields at creation
// time rather than referencing this record.
type Customer struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" binding:"required"`
	Rut       *string   `json:"rut,omitempty" db:"rut"`
	Telefono  *string   `json:"telefono,omitempty" db:"telefono"`
	Email     *string   `json:"email,omitempty" db:"email"`
	Address   *string   `json:"address,omitempty" db:"address"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
