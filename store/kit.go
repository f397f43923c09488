package store

import (
	"fmt"

	"ACB/configs"
)

// GenTestBook builds a deterministic stocked record for kits and tests.
func GenTestBook(isbn int32) StockRecord {
	return StockRecord{
		Book: Book{
			ISBN:   isbn,
			Title:  fmt.Sprintf("Book %d", isbn),
			Author: fmt.Sprintf("Author %d", isbn%97),
			Price:  10.0 + float64(isbn%90),
		},
		NumCopies:  10,
		EditorPick: isbn%2 == 0,
	}
}

// Testkit builds an engine pair for the configured discipline, seeded with n
// sequentially numbered books.
func Testkit(n int) (BookStore, StockManager) {
	bs, sm := NewBookStore()
	books := make([]StockRecord, 0, n)
	for i := 0; i < n; i++ {
		books = append(books, GenTestBook(int32(i+1)))
	}
	configs.CheckError(sm.AddBooks(books))
	return bs, sm
}
