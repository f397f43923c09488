package store

import "ACB/configs"

// BookStore is the customer-facing contract of the catalog engine.
type BookStore interface {
	// BuyBooks purchases the given copies all-or-nothing. A shortfall on any
	// ISBN aborts the whole request with OutOfStock after recording the miss
	// amounts on the shortfalled records.
	BuyBooks(books []BookCopy) error
	// GetBooks returns the identity snapshots for the given ISBNs in
	// ascending ISBN order.
	GetBooks(isbns []int32) ([]Book, error)
	// GetEditorPicks returns up to num editor-picked books sampled uniformly.
	GetEditorPicks(num int) ([]Book, error)
	// GetTopRatedBooks returns the num rated books with the highest average
	// rating; ties break on more ratings, then lower ISBN.
	GetTopRatedBooks(num int) ([]Book, error)
	// RateBooks applies one 0-5 rating per ISBN.
	RateBooks(ratings []BookRating) error
}

// StockManager is the operator-facing contract of the catalog engine.
type StockManager interface {
	AddBooks(books []StockRecord) error
	AddCopies(copies []BookCopy) error
	// GetBooks returns a snapshot of the entire stock.
	GetBooks() ([]StockRecord, error)
	GetBooksByISBN(isbns []int32) ([]StockRecord, error)
	UpdateEditorPicks(picks []EditorPick) error
	RemoveBooks(isbns []int32) error
	RemoveAllBooks() error
	// GetBooksInDemand returns every record that has missed at least one sale.
	GetBooksInDemand() ([]StockRecord, error)
}

// engine is the full operation set a locking discipline implements. Method
// names are unique so one concrete type can carry both contracts; the two
// public facades below are stateless adapters over it.
type engine interface {
	BuyBooks(books []BookCopy) error
	ProjectBooks(isbns []int32) ([]Book, error)
	EditorPicks(num int) ([]Book, error)
	TopRatedBooks(num int) ([]Book, error)
	RateBooks(ratings []BookRating) error
	AddBooks(books []StockRecord) error
	AddCopies(copies []BookCopy) error
	ListStock() ([]StockRecord, error)
	StockByISBN(isbns []int32) ([]StockRecord, error)
	UpdateEditorPicks(picks []EditorPick) error
	RemoveBooks(isbns []int32) error
	RemoveAllBooks() error
	BooksInDemand() ([]StockRecord, error)
}

type bookStoreView struct {
	eng engine
}

func (v bookStoreView) BuyBooks(books []BookCopy) error          { return v.eng.BuyBooks(books) }
func (v bookStoreView) GetBooks(isbns []int32) ([]Book, error)   { return v.eng.ProjectBooks(isbns) }
func (v bookStoreView) GetEditorPicks(num int) ([]Book, error)   { return v.eng.EditorPicks(num) }
func (v bookStoreView) GetTopRatedBooks(num int) ([]Book, error) { return v.eng.TopRatedBooks(num) }
func (v bookStoreView) RateBooks(ratings []BookRating) error     { return v.eng.RateBooks(ratings) }

type stockManagerView struct {
	eng engine
}

func (v stockManagerView) AddBooks(books []StockRecord) error  { return v.eng.AddBooks(books) }
func (v stockManagerView) AddCopies(copies []BookCopy) error   { return v.eng.AddCopies(copies) }
func (v stockManagerView) GetBooks() ([]StockRecord, error)    { return v.eng.ListStock() }
func (v stockManagerView) UpdateEditorPicks(p []EditorPick) error {
	return v.eng.UpdateEditorPicks(p)
}
func (v stockManagerView) GetBooksByISBN(isbns []int32) ([]StockRecord, error) {
	return v.eng.StockByISBN(isbns)
}
func (v stockManagerView) RemoveBooks(isbns []int32) error { return v.eng.RemoveBooks(isbns) }
func (v stockManagerView) RemoveAllBooks() error           { return v.eng.RemoveAllBooks() }
func (v stockManagerView) GetBooksInDemand() ([]StockRecord, error) {
	return v.eng.BooksInDemand()
}

// NewBookStore builds the catalog engine with the locking discipline selected
// by configs.SingleLock. Both views share one catalog.
func NewBookStore() (BookStore, StockManager) {
	var eng engine
	if configs.SingleLock {
		eng = NewSingleLockStore()
	} else {
		eng = NewTwoLevelStore()
	}
	return bookStoreView{eng}, stockManagerView{eng}
}
