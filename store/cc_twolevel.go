package store

import (
	"ACB/configs"
	"ACB/locks"
)

// TwoLevelStore runs structural changes under a global exclusive lock and
// everything else under the global lock in shared (intention) mode plus
// per-record locks. Per-record locks are always taken in ascending ISBN
// order, so no acquisition cycle can form, and released LIFO.
//
// Full-catalog reads hold the global shared lock and snapshot records one at
// a time, each under its own shared lock: the snapshot is per-record
// consistent, not point-in-time consistent across records.
type TwoLevelStore struct {
	global  *locks.RWLock
	cat     *catalog
	journal *Journal
}

func NewTwoLevelStore() *TwoLevelStore {
	return &TwoLevelStore{
		global:  locks.NewLocker(),
		cat:     newCatalog(true),
		journal: NewJournal("catalog"),
	}
}

// acquireRecords locks the records of the given ascending ISBN list. The
// caller holds the global lock in shared mode, so the lock table cannot
// change underneath.
func (c *TwoLevelStore) acquireRecords(isbns []int32, exclusive bool) []*locks.RWLock {
	acquired := make([]*locks.RWLock, 0, len(isbns))
	for _, isbn := range isbns {
		l := c.cat.recordLocks[isbn]
		configs.Assert(l != nil, "record lock missing for a stocked ISBN")
		if exclusive {
			l.Lock()
		} else {
			l.RLock()
		}
		acquired = append(acquired, l)
	}
	return acquired
}

func releaseRecords(acquired []*locks.RWLock, exclusive bool) {
	for i := len(acquired) - 1; i >= 0; i-- {
		if exclusive {
			acquired[i].Unlock()
		} else {
			acquired[i].RUnlock()
		}
	}
}

func (c *TwoLevelStore) AddBooks(books []StockRecord) error {
	c.global.Lock()
	defer c.global.Unlock()
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

func (c *TwoLevelStore) AddCopies(copies []BookCopy) error {
	c.global.RLock()
	defer c.global.RUnlock()
	if copies == nil {
		return Errorf(NullInput, "null book copy set")
	}
	seen := make(map[int32]bool)
	isbns := make([]int32, 0, len(copies))
	for _, cp := range copies {
		if err := markISBN(seen, cp.ISBN); err != nil {
			return err
		}
		if err := validateCopy(c.cat.books, cp); err != nil {
			return err
		}
		isbns = append(isbns, cp.ISBN)
	}
	acquired := c.acquireRecords(sortedISBNs(isbns), true)
	defer releaseRecords(acquired, true)
	for _, cp := range copies {
		c.cat.books[cp.ISBN].addCopies(cp.NumCopies)
	}
	return nil
}

func (c *TwoLevelStore) ListStock() ([]StockRecord, error) {
	c.global.RLock()
	defer c.global.RUnlock()
	return c.scanStock(), nil
}

// scanStock snapshots every record one at a time under its shared lock. The
// caller holds global shared, which keeps the maps stable.
func (c *TwoLevelStore) scanStock() []StockRecord {
	out := make([]StockRecord, 0, len(c.cat.books))
	for isbn, rec := range c.cat.books {
		l := c.cat.recordLocks[isbn]
		l.RLock()
		out = append(out, rec.snapshot())
		l.RUnlock()
	}
	return out
}

func (c *TwoLevelStore) StockByISBN(isbns []int32) ([]StockRecord, error) {
	c.global.RLock()
	defer c.global.RUnlock()
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
	sorted := sortedISBNs(isbns)
	acquired := c.acquireRecords(sorted, false)
	defer releaseRecords(acquired, false)
	out := make([]StockRecord, 0, len(sorted))
	for _, isbn := range sorted {
		out = append(out, c.cat.books[isbn].snapshot())
	}
	return out, nil
}

func (c *TwoLevelStore) UpdateEditorPicks(picks []EditorPick) error {
	c.global.RLock()
	defer c.global.RUnlock()
	if picks == nil {
		return Errorf(NullInput, "null editor pick set")
	}
	seen := make(map[int32]bool)
	isbns := make([]int32, 0, len(picks))
	for _, p := range picks {
		if err := markISBN(seen, p.ISBN); err != nil {
			return err
		}
		if err := validateISBNInStock(c.cat.books, p.ISBN); err != nil {
			return err
		}
		isbns = append(isbns, p.ISBN)
	}
	acquired := c.acquireRecords(sortedISBNs(isbns), true)
	defer releaseRecords(acquired, true)
	for _, p := range picks {
		c.cat.books[p.ISBN].EditorPick = p.Pick
	}
	return nil
}

func (c *TwoLevelStore) RemoveBooks(isbns []int32) error {
	c.global.Lock()
	defer c.global.Unlock()
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

func (c *TwoLevelStore) RemoveAllBooks() error {
	c.global.Lock()
	defer c.global.Unlock()
	c.cat.removeAll()
	return nil
}

func (c *TwoLevelStore) BuyBooks(books []BookCopy) error {
	c.global.RLock()
	defer c.global.RUnlock()
	if books == nil {
		return Errorf(NullInput, "null book copy set")
	}
	seen := make(map[int32]bool)
	isbns := make([]int32, 0, len(books))
	for _, b := range books {
		if err := markISBN(seen, b.ISBN); err != nil {
			return err
		}
		if err := validateCopy(c.cat.books, b); err != nil {
			return err
		}
		isbns = append(isbns, b.ISBN)
	}
	acquired := c.acquireRecords(sortedISBNs(isbns), true)
	defer releaseRecords(acquired, true)
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

func (c *TwoLevelStore) ProjectBooks(isbns []int32) ([]Book, error) {
	c.global.RLock()
	defer c.global.RUnlock()
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
	sorted := sortedISBNs(isbns)
	acquired := c.acquireRecords(sorted, false)
	defer releaseRecords(acquired, false)
	out := make([]Book, 0, len(sorted))
	for _, isbn := range sorted {
		out = append(out, c.cat.books[isbn].Book)
	}
	return out, nil
}

func (c *TwoLevelStore) EditorPicks(num int) ([]Book, error) {
	c.global.RLock()
	defer c.global.RUnlock()
	if err := validateNumBooks(num); err != nil {
		return nil, err
	}
	picks := make([]Book, 0)
	for isbn, rec := range c.cat.books {
		l := c.cat.recordLocks[isbn]
		l.RLock()
		if rec.EditorPick {
			picks = append(picks, rec.Book)
		}
		l.RUnlock()
	}
	return samplePicks(picks, num), nil
}

func (c *TwoLevelStore) TopRatedBooks(num int) ([]Book, error) {
	c.global.RLock()
	defer c.global.RUnlock()
	if err := validateNumBooks(num); err != nil {
		return nil, err
	}
	return topRated(c.scanStock(), num), nil
}

func (c *TwoLevelStore) BooksInDemand() ([]StockRecord, error) {
	c.global.RLock()
	defer c.global.RUnlock()
	return inDemand(c.scanStock()), nil
}

func (c *TwoLevelStore) RateBooks(ratings []BookRating) error {
	c.global.RLock()
	defer c.global.RUnlock()
	if ratings == nil {
		return Errorf(NullInput, "null rating set")
	}
	seen := make(map[int32]bool)
	isbns := make([]int32, 0, len(ratings))
	for _, r := range ratings {
		if err := markISBN(seen, r.ISBN); err != nil {
			return err
		}
		if err := validateRating(c.cat.books, r); err != nil {
			return err
		}
		isbns = append(isbns, r.ISBN)
	}
	acquired := c.acquireRecords(sortedISBNs(isbns), true)
	defer releaseRecords(acquired, true)
	for _, r := range ratings {
		c.cat.books[r.ISBN].rate(r.Rating)
	}
	return nil
}
