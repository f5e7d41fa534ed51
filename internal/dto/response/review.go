package response

import (
	"time"

	"github.com/LordKisik/yamdb-final/internal/data/entity"
)

type ReviewResponse struct {
	ID      string    `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
	TitleID string    `json:"title"`
}

func ReviewToResponse(review *entity.Review, author string) ReviewResponse {
	return ReviewResponse{
		ID:      review.ID.String(),
		Text:    review.Text,
		Author:  author,
		Score:   review.Score,
		PubDate: review.CreatedAt,
		TitleID: review.TitleID.String(),
	}
}
