// model/bookModel.go
package model

// Book mirrors the remote record. Nullable columns stay pointers so a
// fetched null is written back as null.
type Book struct {
	ID              int64    `json:"id,omitempty"`
	Title           string   `json:"title"`
	Author          string   `json:"author"`
	PublicationYear int      `json:"publication_year"`
	ISBN10          *string  `json:"isbn10"`
	ISBN13          *string  `json:"isbn13"`
	CoverImage      *string  `json:"cover_image"`
	Synopsis        *string  `json:"synopsis"`
	Category        *string  `json:"category"`
	Language        *string  `json:"language"`
	Available       bool     `json:"available"`
	Reviews         []Review `json:"reviews,omitempty"`
}

// Str returns a pointer to s, for filling nullable fields.
func Str(s string) *string { return &s }

// Val returns the value behind p, "" for null.
func Val(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Review is embedded in book payloads and posted through add_review.
type Review struct {
	ID      int64  `json:"id,omitempty"`
	User    string `json:"user"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

const (
	MinRating = 1
	MaxRating = 5
)
