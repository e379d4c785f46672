package domain

import "time"

// Setting is an admin-writable, publicly readable key/value pair.
type Setting struct {
	Key   string `db:"key" json:"key"`
	Value string `db:"value" json:"value"`
}

// Notice is an append-only broadcast message shown newest-first.
type Notice struct {
	ID        int64     `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
