package store

import (
	"sync"
	"testing"

	"ACB/configs"

	"github.com/magiconair/properties/assert"
)

func testBook() StockRecord {
	return StockRecord{
		Book:      Book{ISBN: 3044560, Title: "Harry Potter and JUnit", Author: "JK Unit", Price: 10.0},
		NumCopies: 5,
	}
}

func forEachDiscipline(t *testing.T, fn func(t *testing.T, eng engine)) {
	t.Run("single", func(t *testing.T) { fn(t, NewSingleLockStore()) })
	t.Run("twolevel", func(t *testing.T) { fn(t, NewTwoLevelStore()) })
}

func mustStock(t *testing.T, eng engine, isbn int32) StockRecord {
	recs, err := eng.StockByISBN([]int32{isbn})
	assert.Equal(t, err, nil)
	assert.Equal(t, len(recs), 1)
	return recs[0]
}

func TestBuyExhaustsStock(t *testing.T) {
	forEachDiscipline(t, func(t *testing.T, eng engine) {
		assert.Equal(t, eng.AddBooks([]StockRecord{testBook()}), nil)
		err := eng.BuyBooks([]BookCopy{{ISBN: 3044560, NumCopies: 5}})
		assert.Equal(t, err, nil)
		rec := mustStock(t, eng, 3044560)
		assert.Equal(t, rec.NumCopies, 0)
		assert.Equal(t, rec.NumSaleMisses, 0)
	})
}

func TestBuyInvalidISBNAbortsAtomically(t *testing.T) {
	forEachDiscipline(t, func(t *testing.T, eng engine) {
		assert.Equal(t, eng.AddBooks([]StockRecord{testBook()}), nil)
		err := eng.BuyBooks([]BookCopy{{ISBN: 3044560, NumCopies: 1}, {ISBN: -1, NumCopies: 1}})
		assert.Equal(t, KindOf(err), InvalidArgument)
		rec := mustStock(t, eng, 3044560)
		assert.Equal(t, rec.NumCopies, 5)
		assert.Equal(t, rec.NumSaleMisses, 0)
	})
}

func TestBuyExceedingStockRecordsSaleMiss(t *testing.T) {
	forEachDiscipline(t, func(t *testing.T, eng engine) {
		assert.Equal(t, eng.AddBooks([]StockRecord{testBook()}), nil)
		err := eng.BuyBooks([]BookCopy{{ISBN: 3044560, NumCopies: 6}})
		assert.Equal(t, KindOf(err), OutOfStock)
		rec := mustStock(t, eng, 3044560)
		assert.Equal(t, rec.NumCopies, 5)
		assert.Equal(t, rec.NumSaleMisses, 1)
	})
}

// A multi-ISBN buy with a partial shortfall must leave every copy count
// untouched and charge the miss only to the shortfalled records.
func TestBuyPartialShortfallChargesOnlyShortfalledBooks(t *testing.T) {
	forEachDiscipline(t, func(t *testing.T, eng engine) {
		full := testBook()
		short := testBook()
		short.ISBN = 3044561
		short.NumCopies = 2
		assert.Equal(t, eng.AddBooks([]StockRecord{full, short}), nil)
		err := eng.BuyBooks([]BookCopy{
			{ISBN: 3044560, NumCopies: 3},
			{ISBN: 3044561, NumCopies: 5},
		})
		assert.Equal(t, KindOf(err), OutOfStock)
		assert.Equal(t, mustStock(t, eng, 3044560).NumCopies, 5)
		assert.Equal(t, mustStock(t, eng, 3044560).NumSaleMisses, 0)
		assert.Equal(t, mustStock(t, eng, 3044561).NumCopies, 2)
		assert.Equal(t, mustStock(t, eng, 3044561).NumSaleMisses, 3)
	})
}

func TestConcurrentBuyerAndAdderBalance(t *testing.T) {
	forEachDiscipline(t, func(t *testing.T, eng engine) {
		b := testBook()
		b.NumCopies = 100
		assert.Equal(t, eng.AddBooks([]StockRecord{b}), nil)
		wait := sync.WaitGroup{}
		wait.Add(2)
		go func() {
			defer wait.Done()
			for i := 0; i < 50; i++ {
				if err := eng.BuyBooks([]BookCopy{{ISBN: b.ISBN, NumCopies: 1}}); err != nil {
					t.Errorf("buy failed: %v", err)
					return
				}
			}
		}()
		go func() {
			defer wait.Done()
			for i := 0; i < 50; i++ {
				if err := eng.AddCopies([]BookCopy{{ISBN: b.ISBN, NumCopies: 1}}); err != nil {
					t.Errorf("add copies failed: %v", err)
					return
				}
			}
		}()
		wait.Wait()
		assert.Equal(t, mustStock(t, eng, b.ISBN).NumCopies, 100)
	})
}

func TestSnapshotConsistencyUnderCycler(t *testing.T) {
	forEachDiscipline(t, func(t *testing.T, eng engine) {
		b := testBook()
		b.NumCopies = 100
		assert.Equal(t, eng.AddBooks([]StockRecord{b}), nil)
		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 50; i++ {
				if err := eng.BuyBooks([]BookCopy{{ISBN: b.ISBN, NumCopies: 1}}); err != nil {
					t.Errorf("buy failed: %v", err)
					return
				}
				if err := eng.AddCopies([]BookCopy{{ISBN: b.ISBN, NumCopies: 1}}); err != nil {
					t.Errorf("add copies failed: %v", err)
					return
				}
			}
		}()
		for alive := true; alive; {
			select {
			case <-done:
				alive = false
			default:
			}
			n := mustStock(t, eng, b.ISBN).NumCopies
			if n != 99 && n != 100 {
				t.Fatalf("observed copies = %v, want 99 or 100", n)
			}
		}
	})
}

func TestRateThenRead(t *testing.T) {
	eng := NewTwoLevelStore()
	assert.Equal(t, eng.AddBooks([]StockRecord{testBook()}), nil)
	assert.Equal(t, eng.RateBooks([]BookRating{{ISBN: 3044560, Rating: 4}}), nil)
	rec := mustStock(t, eng, 3044560)
	assert.Equal(t, rec.NumTimesRated, 1)
	assert.Equal(t, rec.TotalRating, 4)
	if avg := rec.AverageRating(); avg < 4.0-1e-2 || avg > 4.0+1e-2 {
		t.Fatalf("average rating = %v, want 4.0", avg)
	}
}

func TestAverageRatingUnratedSentinel(t *testing.T) {
	rec := testBook()
	assert.Equal(t, rec.AverageRating(), configs.UnratedRating)
}

func TestTopRatedOrdering(t *testing.T) {
	eng := NewTwoLevelStore()
	books := make([]StockRecord, 3)
	for i := range books {
		books[i] = testBook()
		books[i].ISBN = int32(3044560 + i)
	}
	assert.Equal(t, eng.AddBooks(books), nil)
	assert.Equal(t, eng.RateBooks([]BookRating{{ISBN: 3044560, Rating: 3}}), nil)
	assert.Equal(t, eng.RateBooks([]BookRating{{ISBN: 3044561, Rating: 5}}), nil)
	assert.Equal(t, eng.RateBooks([]BookRating{{ISBN: 3044562, Rating: 4}}), nil)
	top, err := eng.TopRatedBooks(2)
	assert.Equal(t, err, nil)
	assert.Equal(t, len(top), 2)
	assert.Equal(t, top[0].ISBN, int32(3044561))
	assert.Equal(t, top[1].ISBN, int32(3044562))
}

func TestTopRatedTieBreaks(t *testing.T) {
	eng := NewTwoLevelStore()
	books := make([]StockRecord, 3)
	for i := range books {
		books[i] = testBook()
		books[i].ISBN = int32(100 + i)
	}
	assert.Equal(t, eng.AddBooks(books), nil)
	// 100: avg 4 over two ratings; 101: avg 4 over one; 102: avg 4 over one.
	assert.Equal(t, eng.RateBooks([]BookRating{{ISBN: 100, Rating: 4}}), nil)
	assert.Equal(t, eng.RateBooks([]BookRating{{ISBN: 100, Rating: 4}}), nil)
	assert.Equal(t, eng.RateBooks([]BookRating{{ISBN: 101, Rating: 4}}), nil)
	assert.Equal(t, eng.RateBooks([]BookRating{{ISBN: 102, Rating: 4}}), nil)
	top, err := eng.TopRatedBooks(3)
	assert.Equal(t, err, nil)
	assert.Equal(t, top[0].ISBN, int32(100))
	assert.Equal(t, top[1].ISBN, int32(101))
	assert.Equal(t, top[2].ISBN, int32(102))
}

func TestUnsupportedOnSingleLock(t *testing.T) {
	eng := NewSingleLockStore()
	assert.Equal(t, eng.AddBooks([]StockRecord{testBook()}), nil)
	_, err := eng.TopRatedBooks(1)
	assert.Equal(t, KindOf(err), Unsupported)
	_, err = eng.BooksInDemand()
	assert.Equal(t, KindOf(err), Unsupported)
	err = eng.RateBooks([]BookRating{{ISBN: 3044560, Rating: 4}})
	assert.Equal(t, KindOf(err), Unsupported)
}

func TestValidationLeavesCatalogUnchanged(t *testing.T) {
	forEachDiscipline(t, func(t *testing.T, eng engine) {
		assert.Equal(t, eng.AddBooks([]StockRecord{testBook()}), nil)
		bad := testBook()
		bad.ISBN = 99
		bad.Title = ""
		good := testBook()
		good.ISBN = 98
		err := eng.AddBooks([]StockRecord{good, bad})
		assert.Equal(t, KindOf(err), InvalidArgument)
		all, err := eng.ListStock()
		assert.Equal(t, err, nil)
		assert.Equal(t, len(all), 1)
		_, err = eng.StockByISBN([]int32{98})
		assert.Equal(t, KindOf(err), NotInStock)
	})
}

func TestAddBooksRejectsDuplicates(t *testing.T) {
	forEachDiscipline(t, func(t *testing.T, eng engine) {
		assert.Equal(t, eng.AddBooks([]StockRecord{testBook()}), nil)
		err := eng.AddBooks([]StockRecord{testBook()})
		assert.Equal(t, KindOf(err), Duplicate)
		b := testBook()
		b.ISBN = 7
		err = eng.AddBooks([]StockRecord{b, b})
		assert.Equal(t, KindOf(err), InvalidArgument)
		_, err = eng.StockByISBN([]int32{7})
		assert.Equal(t, KindOf(err), NotInStock)
	})
}

func TestNullInputs(t *testing.T) {
	forEachDiscipline(t, func(t *testing.T, eng engine) {
		assert.Equal(t, KindOf(eng.AddBooks(nil)), NullInput)
		assert.Equal(t, KindOf(eng.AddCopies(nil)), NullInput)
		assert.Equal(t, KindOf(eng.BuyBooks(nil)), NullInput)
		assert.Equal(t, KindOf(eng.UpdateEditorPicks(nil)), NullInput)
		assert.Equal(t, KindOf(eng.RemoveBooks(nil)), NullInput)
		_, err := eng.StockByISBN(nil)
		assert.Equal(t, KindOf(err), NullInput)
		_, err = eng.ProjectBooks(nil)
		assert.Equal(t, KindOf(err), NullInput)
	})
}

func TestAddCopiesValidation(t *testing.T) {
	forEachDiscipline(t, func(t *testing.T, eng engine) {
		assert.Equal(t, eng.AddBooks([]StockRecord{testBook()}), nil)
		err := eng.AddCopies([]BookCopy{{ISBN: 3044560, NumCopies: -1}})
		assert.Equal(t, KindOf(err), InvalidArgument)
		err = eng.AddCopies([]BookCopy{{ISBN: 4, NumCopies: 1}})
		assert.Equal(t, KindOf(err), NotInStock)
		assert.Equal(t, mustStock(t, eng, 3044560).NumCopies, 5)
	})
}

func TestProjectBooksSortedByISBN(t *testing.T) {
	forEachDiscipline(t, func(t *testing.T, eng engine) {
		books := make([]StockRecord, 3)
		for i := range books {
			books[i] = testBook()
			books[i].ISBN = int32(30 - i)
		}
		assert.Equal(t, eng.AddBooks(books), nil)
		out, err := eng.ProjectBooks([]int32{30, 28, 29})
		assert.Equal(t, err, nil)
		assert.Equal(t, out[0].ISBN, int32(28))
		assert.Equal(t, out[1].ISBN, int32(29))
		assert.Equal(t, out[2].ISBN, int32(30))
	})
}

func TestEditorPicksSampling(t *testing.T) {
	forEachDiscipline(t, func(t *testing.T, eng engine) {
		books := make([]StockRecord, 10)
		for i := range books {
			books[i] = testBook()
			books[i].ISBN = int32(i + 1)
			books[i].EditorPick = i < 6
		}
		assert.Equal(t, eng.AddBooks(books), nil)

		_, err := eng.EditorPicks(-1)
		assert.Equal(t, KindOf(err), InvalidArgument)

		all, err := eng.EditorPicks(100)
		assert.Equal(t, err, nil)
		assert.Equal(t, len(all), 6)

		sampled, err := eng.EditorPicks(3)
		assert.Equal(t, err, nil)
		assert.Equal(t, len(sampled), 3)
		seen := make(map[int32]bool)
		for _, b := range sampled {
			if seen[b.ISBN] {
				t.Fatalf("duplicate ISBN %v in sample", b.ISBN)
			}
			seen[b.ISBN] = true
			if b.ISBN > 6 {
				t.Fatalf("ISBN %v is not an editor pick", b.ISBN)
			}
		}
	})
}

func TestBooksInDemand(t *testing.T) {
	eng := NewTwoLevelStore()
	books := make([]StockRecord, 2)
	for i := range books {
		books[i] = testBook()
		books[i].ISBN = int32(i + 1)
	}
	assert.Equal(t, eng.AddBooks(books), nil)
	inDemand, err := eng.BooksInDemand()
	assert.Equal(t, err, nil)
	assert.Equal(t, len(inDemand), 0)
	err = eng.BuyBooks([]BookCopy{{ISBN: 1, NumCopies: 6}})
	assert.Equal(t, KindOf(err), OutOfStock)
	inDemand, err = eng.BooksInDemand()
	assert.Equal(t, err, nil)
	assert.Equal(t, len(inDemand), 1)
	assert.Equal(t, inDemand[0].ISBN, int32(1))
	assert.Equal(t, inDemand[0].NumSaleMisses, 1)
}

func TestRemoveBooks(t *testing.T) {
	forEachDiscipline(t, func(t *testing.T, eng engine) {
		books := make([]StockRecord, 3)
		for i := range books {
			books[i] = testBook()
			books[i].ISBN = int32(i + 1)
		}
		assert.Equal(t, eng.AddBooks(books), nil)
		err := eng.RemoveBooks([]int32{1, 9})
		assert.Equal(t, KindOf(err), NotInStock)
		all, _ := eng.ListStock()
		assert.Equal(t, len(all), 3)

		assert.Equal(t, eng.RemoveBooks([]int32{1, 3}), nil)
		all, _ = eng.ListStock()
		assert.Equal(t, len(all), 1)
		assert.Equal(t, all[0].ISBN, int32(2))

		assert.Equal(t, eng.RemoveAllBooks(), nil)
		all, _ = eng.ListStock()
		assert.Equal(t, len(all), 0)
	})
}

// Removing a record must drop its lock entry too, and re-adding the same
// ISBN must leave the engine fully operational.
func TestRemoveThenReAdd(t *testing.T) {
	eng := NewTwoLevelStore()
	assert.Equal(t, eng.AddBooks([]StockRecord{testBook()}), nil)
	assert.Equal(t, eng.RemoveBooks([]int32{3044560}), nil)
	assert.Equal(t, len(eng.cat.recordLocks), 0)
	assert.Equal(t, eng.AddBooks([]StockRecord{testBook()}), nil)
	assert.Equal(t, eng.BuyBooks([]BookCopy{{ISBN: 3044560, NumCopies: 1}}), nil)
	assert.Equal(t, mustStock(t, eng, 3044560).NumCopies, 4)
}

func TestUpdateEditorPicks(t *testing.T) {
	forEachDiscipline(t, func(t *testing.T, eng engine) {
		assert.Equal(t, eng.AddBooks([]StockRecord{testBook()}), nil)
		assert.Equal(t, eng.UpdateEditorPicks([]EditorPick{{ISBN: 3044560, Pick: true}}), nil)
		assert.Equal(t, mustStock(t, eng, 3044560).EditorPick, true)
		picks, err := eng.EditorPicks(10)
		assert.Equal(t, err, nil)
		assert.Equal(t, len(picks), 1)
		assert.Equal(t, eng.UpdateEditorPicks([]EditorPick{{ISBN: 3044560, Pick: false}}), nil)
		picks, err = eng.EditorPicks(10)
		assert.Equal(t, err, nil)
		assert.Equal(t, len(picks), 0)
	})
}

func TestFacadeSelection(t *testing.T) {
	prev := configs.SingleLock
	defer func() { configs.SingleLock = prev }()

	configs.SingleLock = true
	bs, sm := Testkit(10)
	_, err := bs.GetTopRatedBooks(1)
	assert.Equal(t, KindOf(err), Unsupported)
	all, err := sm.GetBooks()
	assert.Equal(t, err, nil)
	assert.Equal(t, len(all), 10)

	configs.SingleLock = false
	bs, sm = Testkit(10)
	assert.Equal(t, bs.RateBooks([]BookRating{{ISBN: 1, Rating: 5}}), nil)
	top, err := bs.GetTopRatedBooks(1)
	assert.Equal(t, err, nil)
	assert.Equal(t, len(top), 1)
	assert.Equal(t, top[0].ISBN, int32(1))
	assert.Equal(t, sm.RemoveAllBooks(), nil)
}
