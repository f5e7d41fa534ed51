package response

import (
	"math"

	"github.com/LordKisik/yamdb-final/internal/data/entity"
)

type TitleResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Year        int              `json:"year"`
	Rating      *float64         `json:"rating"`
	Description *string          `json:"description,omitempty"`
	Category    CategoryResponse `json:"category"`
	Genre       []GenreResponse  `json:"genre"`
}

// TitleToResponse assembles a title with its category, genres and the
// averaged review score. Rating stays null until the first review.
func TitleToResponse(title *entity.Title, category *entity.Category, genres []*entity.Genre, rating *float64) TitleResponse {
	genreResponses := make([]GenreResponse, len(genres))
	for i, genre := range genres {
		genreResponses[i] = GenreToResponse(genre)
	}

	if rating != nil {
		rounded := math.Round(*rating*100) / 100
		rating = &rounded
	}

	resp := TitleResponse{
		ID:          title.ID.String(),
		Name:        title.Name,
		Year:        title.Year,
		Rating:      rating,
		Description: title.Description,
		Genre:       genreResponses,
	}

	if category != nil {
		resp.Category = CategoryToResponse(category)
	}

	return resp
}
