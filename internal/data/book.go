// Package data provides the data models and database interaction logic
// for the books service.
package data

import (
	"fmt"
	"math"
	"math/big"
)

// Book represents a single book record stored in the database.
// It maps directly to a row in the "books" table.
type Book struct {
	ISBN      string `json:"isbn"`       // Primary key, immutable once created
	AmazonURL string `json:"amazon_url"` // Link to the Amazon listing
	Author    string `json:"author"`
	Language  string `json:"language"`
	Pages     int    `json:"pages"`
	Publisher string `json:"publisher"`
	Title     string `json:"title"`
	Year      int    `json:"year"` // Publication year
}

// CreateBookInput holds the fields a client must supply when creating a new book.
// The request body has already been checked against the new-book schema by the
// time it is decoded into this struct, so every field is present.
type CreateBookInput struct {
	ISBN      string  `json:"isbn"`
	AmazonURL string  `json:"amazon_url"`
	Author    string  `json:"author"`
	Language  string  `json:"language"`
	Pages     Integer `json:"pages"`
	Publisher string  `json:"publisher"`
	Title     string  `json:"title"`
	Year      Integer `json:"year"`
}

// UpdateBookInput holds the fields a client may supply when updating a book.
// Every field is a pointer so we can distinguish between "not provided" (nil)
// and "intentionally set to zero/empty". Only non-nil fields are applied.
//
// ISBN is accepted so that full book bodies decode cleanly, but it is never
// written: the isbn in the URL path identifies the record.
type UpdateBookInput struct {
	ISBN      *string  `json:"isbn"`
	AmazonURL *string  `json:"amazon_url"`
	Author    *string  `json:"author"`
	Language  *string  `json:"language"`
	Pages     *Integer `json:"pages"`
	Publisher *string  `json:"publisher"`
	Title     *string  `json:"title"`
	Year      *Integer `json:"year"`
}

// Integer is an int decoded from any integral JSON number, including forms
// such as 264.0 or 2.64e2 that JSON schema treats as integers.
type Integer int

// UnmarshalJSON accepts a JSON number with no fractional part that fits
// in 32 bits.
func (n *Integer) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	r, ok := new(big.Rat).SetString(string(b))
	if !ok || !r.IsInt() {
		return fmt.Errorf("%s is not an integer", b)
	}
	num := r.Num()
	if !num.IsInt64() || num.Int64() > math.MaxInt32 || num.Int64() < math.MinInt32 {
		return fmt.Errorf("%s is out of range", b)
	}
	*n = Integer(num.Int64())
	return nil
}

// intOrNil returns the value behind p as an int, or nil so the column keeps
// its stored value.
func intOrNil(p *Integer) any {
	if p == nil {
		return nil
	}
	return int(*p)
}
