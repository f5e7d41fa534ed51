package entity

import (
	"github.com/google/uuid"
)

// Review holds a user's opinion on a title. Scores run 1-10 and a
// user gets at most one review per title (unique index on title_id,
// author_id backs this up).
type Review struct {
	BaseSimple
	TitleID  uuid.UUID `db:"title_id"`
	AuthorID uuid.UUID `db:"author_id"`
	Text     string    `db:"text"`
	Score    int       `db:"score"`
}
