package store

import "ACB/configs"

// Pure validation predicates. Every entry point runs all of its validation
// before the first mutation, so a rejected call leaves the catalog untouched.
// The caller holds the envelope that protects the presence checks.

func isInvalidISBN(isbn int32) bool {
	return isbn <= 0
}

func validateNewBook(books map[int32]*StockRecord, b StockRecord) error {
	if isInvalidISBN(b.ISBN) {
		return Errorf(InvalidArgument, "invalid ISBN %d", b.ISBN)
	}
	if b.Title == "" {
		return Errorf(InvalidArgument, "empty title for ISBN %d", b.ISBN)
	}
	if b.Author == "" {
		return Errorf(InvalidArgument, "empty author for ISBN %d", b.ISBN)
	}
	if b.Price < 0 {
		return Errorf(InvalidArgument, "negative price %v for ISBN %d", b.Price, b.ISBN)
	}
	if b.NumCopies < 0 {
		return Errorf(InvalidArgument, "negative copy count %d for ISBN %d", b.NumCopies, b.ISBN)
	}
	if _, ok := books[b.ISBN]; ok {
		return Errorf(Duplicate, "ISBN %d already in the catalog", b.ISBN)
	}
	return nil
}

func validateISBNInStock(books map[int32]*StockRecord, isbn int32) error {
	if isInvalidISBN(isbn) {
		return Errorf(InvalidArgument, "invalid ISBN %d", isbn)
	}
	if _, ok := books[isbn]; !ok {
		return Errorf(NotInStock, "ISBN %d not in stock", isbn)
	}
	return nil
}

func validateCopy(books map[int32]*StockRecord, c BookCopy) error {
	if err := validateISBNInStock(books, c.ISBN); err != nil {
		return err
	}
	if c.NumCopies < 0 {
		return Errorf(InvalidArgument, "negative copy count %d for ISBN %d", c.NumCopies, c.ISBN)
	}
	return nil
}

func validateRating(books map[int32]*StockRecord, r BookRating) error {
	if err := validateISBNInStock(books, r.ISBN); err != nil {
		return err
	}
	if r.Rating < 0 || r.Rating > configs.MaxRating {
		return Errorf(InvalidArgument, "rating %d out of range for ISBN %d", r.Rating, r.ISBN)
	}
	return nil
}

func validateNumBooks(num int) error {
	if num < 0 {
		return Errorf(InvalidArgument, "numBooks = %d, but it must not be negative", num)
	}
	return nil
}

// markISBN rejects a second occurrence of the same ISBN inside one request;
// request inputs are sets keyed by ISBN.
func markISBN(seen map[int32]bool, isbn int32) error {
	if seen[isbn] {
		return Errorf(InvalidArgument, "duplicate ISBN %d in request", isbn)
	}
	seen[isbn] = true
	return nil
}
