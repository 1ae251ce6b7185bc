// model/rentalModel.go
package model

type Rental struct {
	ID        int64  `json:"id,omitempty"`
	BookID    int64  `json:"book"`
	BookTitle string `json:"book_title,omitempty"`
	UserID    string `json:"user"`
	UserName  string `json:"user_name,omitempty"`
	StartDate Date   `json:"start_date"`
	EndDate   Date   `json:"end_date"`
	Returned  bool   `json:"returned"`
	Extended  bool   `json:"extended"`
}

// Active reports whether the rental still holds its book.
func (r Rental) Active() bool { return !r.Returned }

// HeldBy reports whether r is userID's open rental of bookID.
func (r Rental) HeldBy(userID string, bookID int64) bool {
	return r.BookID == bookID && r.UserID == userID && !r.Returned
}
