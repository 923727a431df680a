package store

import (
	"time"

	"github.com/strandworks/genchat/core/content"
)

// Record is a persisted chat transcript.
type Record struct {
	ID        string             `bson:"_id" json:"id"`
	Model     string             `bson:"model" json:"model"`
	Contents  []*content.Content `bson:"contents" json:"contents"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
