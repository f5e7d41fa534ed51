package entity

import (
	"github.com/google/uuid"
)

// Title's category link is nullable: deleting a category sets
// category_id to NULL on its titles instead of cascading.
type Title struct {
	Base
	Name        string     `db:"name"`
	Year        int        `db:"year"`
	Description *string    `db:"description"`
	CategoryID  *uuid.UUID `db:"category_id"`
}
