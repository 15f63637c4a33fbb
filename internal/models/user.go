package models

import "time"

// User is the directory record shape. Records are immutable once seeded;
// there are no update or delete operations anywhere in the system.
type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	LastLogin time.Time `json:"lastLogin"`
}

// Session pairs an opaque token with the user it was issued for. The server
// keeps no registry of these; the client is the sole holder of record.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
