package booksvc

import (
	"strings"

	"libraryfront/model"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Query narrows the catalog. Term is matched case-insensitively as a substring
// of title, author, ISBN-10, ISBN-13 or synopsis. Filter must equal the book's
// category or its language; the catalog offers both in one dropdown.
type Query struct {
	Term   string `query:"q"`
	Filter string `query:"filter"`
}

func (q Query) Empty() bool { return q.Term == "" && q.Filter == "" }

type matcher struct {
	fold   cases.Caser
	term   string
	filter string
}

// newMatcher is not safe for concurrent use; build one per request.
func newMatcher(q Query) *matcher {
	m := &matcher{fold: cases.Fold(), filter: q.Filter}
	m.term = m.normalize(q.Term)
	return m
}

func (m *matcher) normalize(s string) string {
	return m.fold.String(norm.NFC.String(s))
}

// contains never matches a null or empty field.
func (m *matcher) contains(field *string) bool {
	if field == nil || *field == "" {
		return false
	}
	return strings.Contains(m.normalize(*field), m.term)
}

func (m *matcher) Match(b Book) bool {
	if m.term != "" {
		if !(m.contains(&b.Title) ||
			m.contains(&b.Author) ||
			m.contains(b.ISBN10) ||
			m.contains(b.ISBN13) ||
			m.contains(b.Synopsis)) {
			return false
		}
	}
	if m.filter != "" && model.Val(b.Category) != m.filter && model.Val(b.Language) != m.filter {
		return false
	}
	return true
}
