package store

import (
	"ACB/configs"
	"ACB/locks"
)

// SingleLockStore serializes every mutation behind one global reader-writer
// lock; reads run concurrently in shared mode. Full-catalog snapshots taken
// here are linearizable. The rating operations and the telemetry reads are
// not implemented by this discipline.
type SingleLockStore struct {
	latch   *locks.RWLock
	cat     *catalog
	journal *Journal
}

func NewSingleLockStore() *SingleLockStore {
	return &SingleLockStore{
		latch:   locks.NewLocker(),
		cat:     newCatalog(false),
		journal: NewJournal("catalog"),
	}
}

func (c *SingleLockStore) AddBooks(books []StockRecord) error {
	c.latch.Lock()
	defer c.latch.Unlock()
	if books == nil {
		return Errorf(NullInput, "null book set")
	}
	seen := make(map[int32]bool)
	for _, b := range books {
		if err := markISBN(seen, b.ISBN); err != nil {
			return err
		}
		if err := validateNewBook(c.cat.books, b); err != nil {
			return err
		}
	}
	c.cat.insert(books)
	return nil
}

func (c *SingleLockStore) AddCopies(copies []BookCopy) error {
	c.latch.Lock()
	defer c.latch.Unlock()
	if copies == nil {
		return Errorf(NullInput, "null book copy set")
	}
	seen := make(map[int32]bool)
	for _, cp := range copies {
		if err := markISBN(seen, cp.ISBN); err != nil {
			return err
		}
		if err := validateCopy(c.cat.books, cp); err != nil {
			return err
		}
	}
	for _, cp := range copies {
		c.cat.books[cp.ISBN].addCopies(cp.NumCopies)
	}
	return nil
}

func (c *SingleLockStore) ListStock() ([]StockRecord, error) {
	c.latch.RLock()
	defer c.latch.RUnlock()
	out := make([]StockRecord, 0, len(c.cat.books))
	for _, rec := range c.cat.books {
		out = append(out, rec.snapshot())
	}
	return out, nil
}

func (c *SingleLockStore) StockByISBN(isbns []int32) ([]StockRecord, error) {
	c.latch.RLock()
	defer c.latch.RUnlock()
	if isbns == nil {
		return nil, Errorf(NullInput, "null ISBN set")
	}
	seen := make(map[int32]bool)
	for _, isbn := range isbns {
		if err := markISBN(seen, isbn); err != nil {
			return nil, err
		}
		if err := validateISBNInStock(c.cat.books, isbn); err != nil {
			return nil, err
		}
	}
	out := make([]StockRecord, 0, len(isbns))
	for _, isbn := range sortedISBNs(isbns) {
		out = append(out, c.cat.books[isbn].snapshot())
	}
	return out, nil
}

func (c *SingleLockStore) UpdateEditorPicks(picks []EditorPick) error {
	c.latch.Lock()
	defer c.latch.Unlock()
	if picks == nil {
		return Errorf(NullInput, "null editor pick set")
	}
	seen := make(map[int32]bool)
	for _, p := range picks {
		if err := markISBN(seen, p.ISBN); err != nil {
			return err
		}
		if err := validateISBNInStock(c.cat.books, p.ISBN); err != nil {
			return err
		}
	}
	for _, p := range picks {
		c.cat.books[p.ISBN].EditorPick = p.Pick
	}
	return nil
}

func (c *SingleLockStore) RemoveBooks(isbns []int32) error {
	c.latch.Lock()
	defer c.latch.Unlock()
	if isbns == nil {
		return Errorf(NullInput, "null ISBN set")
	}
	seen := make(map[int32]bool)
	for _, isbn := range isbns {
		if err := markISBN(seen, isbn); err != nil {
			return err
		}
		if err := validateISBNInStock(c.cat.books, isbn); err != nil {
			return err
		}
	}
	c.cat.remove(isbns)
	return nil
}

func (c *SingleLockStore) RemoveAllBooks() error {
	c.latch.Lock()
	defer c.latch.Unlock()
	c.cat.removeAll()
	return nil
}

func (c *SingleLockStore) BuyBooks(books []BookCopy) error {
	c.latch.Lock()
	defer c.latch.Unlock()
	if books == nil {
		return Errorf(NullInput, "null book copy set")
	}
	seen := make(map[int32]bool)
	for _, b := range books {
		if err := markISBN(seen, b.ISBN); err != nil {
			return err
		}
		if err := validateCopy(c.cat.books, b); err != nil {
			return err
		}
	}
	// Collect the shortfall over the whole request before deciding.
	misses := make(map[int32]int)
	for _, b := range books {
		rec := c.cat.books[b.ISBN]
		if !rec.copiesInStore(b.NumCopies) {
			misses[b.ISBN] = b.NumCopies - rec.NumCopies
		}
	}
	if len(misses) > 0 {
		for isbn, n := range misses {
			c.cat.books[isbn].addSaleMiss(n)
		}
		c.journal.LogSaleMiss(misses)
		return Errorf(OutOfStock, "%d of the requested books are short on stock", len(misses))
	}
	for _, b := range books {
		c.cat.books[b.ISBN].buyCopies(b.NumCopies)
	}
	c.journal.LogPurchase(books)
	configs.TPrintf("purchase of %d titles committed", len(books))
	return nil
}

func (c *SingleLockStore) ProjectBooks(isbns []int32) ([]Book, error) {
	c.latch.RLock()
	defer c.latch.RUnlock()
	if isbns == nil {
		return nil, Errorf(NullInput, "null ISBN set")
	}
	seen := make(map[int32]bool)
	for _, isbn := range isbns {
		if err := markISBN(seen, isbn); err != nil {
			return nil, err
		}
		if err := validateISBNInStock(c.cat.books, isbn); err != nil {
			return nil, err
		}
	}
	out := make([]Book, 0, len(isbns))
	for _, isbn := range sortedISBNs(isbns) {
		out = append(out, c.cat.books[isbn].Book)
	}
	return out, nil
}

func (c *SingleLockStore) EditorPicks(num int) ([]Book, error) {
	c.latch.RLock()
	defer c.latch.RUnlock()
	if err := validateNumBooks(num); err != nil {
		return nil, err
	}
	picks := make([]Book, 0)
	for _, rec := range c.cat.books {
		if rec.EditorPick {
			picks = append(picks, rec.Book)
		}
	}
	return samplePicks(picks, num), nil
}

func (c *SingleLockStore) TopRatedBooks(num int) ([]Book, error) {
	return nil, Errorf(Unsupported, "getTopRatedBooks is not implemented by the single lock discipline")
}

func (c *SingleLockStore) BooksInDemand() ([]StockRecord, error) {
	return nil, Errorf(Unsupported, "getBooksInDemand is not implemented by the single lock discipline")
}

func (c *SingleLockStore) RateBooks(ratings []BookRating) error {
	return Errorf(Unsupported, "rateBooks is not implemented by the single lock discipline")
}
