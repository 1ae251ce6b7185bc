package book

import "libraryfront/model"

type BookReq struct {
	Title           string  `json:"title" validate:"required"`
	Author          string  `json:"author" validate:"required"`
	PublicationYear int     `json:"publication_year" validate:"gte=0"`
	ISBN10          *string `json:"isbn10" validate:"omitempty,len=10"`
	ISBN13          *string `json:"isbn13" validate:"omitempty,len=13"`
	CoverImage      *string `json:"cover_image" validate:"omitempty,url"`
	Synopsis        *string `json:"synopsis"`
	Category        *string `json:"category" validate:"omitempty,max=100"`
	Language        *string `json:"language" validate:"omitempty,max=50"`
	Available       *bool   `json:"available"`
}

func (r BookReq) toModel() *model.Book {
	b := &model.Book{
		Title:           r.Title,
		Author:          r.Author,
		PublicationYear: r.PublicationYear,
		ISBN10:          r.ISBN10,
		ISBN13:          r.ISBN13,
		CoverImage:      r.CoverImage,
		Synopsis:        r.Synopsis,
		Category:        r.Category,
		Language:        r.Language,
		Available:       true,
	}
	if r.Available != nil {
		b.Available = *r.Available
	}
	return b
}

// ReviewReq: User falls back to the session's display name.
type ReviewReq struct {
	User    string `json:"user"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}
