package request

type TitleRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=256"`
	Year        int      `json:"year" validate:"required,min=1,max=9999"`
	Description *string  `json:"description,omitempty"`
	Category    string   `json:"category" validate:"required"`
	Genre       []string `json:"genre,omitempty" validate:"omitempty,dive,required"`
}

type TitleUpdateRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=256"`
	Year        *int     `json:"year,omitempty" validate:"omitempty,min=1,max=9999"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty" validate:"omitempty"`
	Genre       []string `json:"genre,omitempty" validate:"omitempty,dive,required"`
}

// TitleFilterRequest carries the list query parameters.
type TitleFilterRequest struct {
	Category string `json:"category"`
	Genre    string `json:"genre"`
	Name     string `json:"name"`
	Year     *int   `json:"year"`
}
