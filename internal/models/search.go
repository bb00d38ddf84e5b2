package models

const (
	SortTitle           = "title"
	SortAuthor          = "author"
	SortPublicationYear = "publicationYear"
	SortGenre           = "genre"
	SortRating          = "rating"

	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// BookQuery is a fully validated catalog search: zero-value string fields and
// nil numeric fields mean "no filter", Sort/Order/Page/Limit are always set.
type BookQuery struct {
	Title           string
	Author          string
	Genre           string
	Tags            []string
	PublicationYear *int
	Rating          *float64
	Sort            string
	Order           string
	Page            int
	Limit           int
}

func (q BookQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

type BookPage struct {
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	Results    []Book `json:"results"`
}
