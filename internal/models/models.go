package models

import (
	"time"
)

type Post struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Content   *string   `json:"content" db:"content"`
	IsDeleted bool      `json:"isDeleted" db:"is_deleted"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// File is the metadata of one stored upload. Base64 duplicates the stored
// bytes.
type File struct {
	ID        string    `json:"id" db:"id"`
	Filename  string    `json:"filename" db:"filename"`
	Type      string    `json:"type" db:"type"`
	Size      int64     `json:"size" db:"size"`
	Path      string    `json:"path" db:"path"`
	Base64    string    `json:"base64" db:"base64"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type Stats struct {
	Posts int `json:"posts" db:"posts"`
	Files int `json:"files" db:"files"`
}
