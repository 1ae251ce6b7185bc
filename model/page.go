package model

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Page holds a list response. The remote service answers list calls either
// with a bare JSON array or with a paginated envelope carrying "results".
type Page[T any] struct {
	Items []T
	Count int
}

func (p *Page[T]) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*p = Page[T]{}
		return nil
	}

	if b[0] == '[' {
		var items []T
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		*p = Page[T]{Items: items, Count: len(items)}
		return nil
	}

	var env struct {
		Count   *int            `json:"count"`
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}
	if env.Results == nil {
		return errors.New("list response has neither an array nor results")
	}
	var items []T
	if err := json.Unmarshal(env.Results, &items); err != nil {
		return err
	}
	p.Items = items
	p.Count = len(items)
	if env.Count != nil {
		p.Count = *env.Count
	}
	return nil
}
