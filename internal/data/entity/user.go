package entity

import "time"

// User maps the usuario table. IDs are database-generated surrogate keys.
type User struct {
	ID           int64     `db:"id"`
	Name         string    `db:"nombre"`
	Email        string    `db:"correo"`
	RegisteredAt time.Time `db:"fecha_registro"`
}
