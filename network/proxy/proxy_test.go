package proxy

import (
	"testing"

	"ACB/configs"
	"ACB/network/server"
	"ACB/store"

	"github.com/stretchr/testify/assert"
)

func startTestKit(t *testing.T, address string) (*server.Context, *BookStoreProxy, *StockManagerProxy) {
	ctx := server.Start(address)
	bs, err := NewBookStoreProxy(address)
	assert.NoError(t, err)
	sm, err := NewStockManagerProxy(address)
	assert.NoError(t, err)
	return ctx, bs, sm
}

func TestProxyRoundTrip(t *testing.T) {
	prev := configs.SingleLock
	defer func() { configs.SingleLock = prev }()
	configs.SingleLock = false

	ctx, bs, sm := startTestKit(t, "127.0.0.1:6091")
	defer ctx.Close()
	defer bs.Stop()
	defer sm.Stop()

	book := store.StockRecord{
		Book:      store.Book{ISBN: 3044560, Title: "Harry Potter and JUnit", Author: "JK Unit", Price: 10.0},
		NumCopies: 5,
	}
	assert.NoError(t, sm.AddBooks([]store.StockRecord{book}))

	all, err := sm.GetBooks()
	assert.NoError(t, err)
	assert.Equal(t, 1, len(all))
	assert.Equal(t, book.Book, all[0].Book)
	assert.Equal(t, 5, all[0].NumCopies)

	assert.NoError(t, sm.UpdateEditorPicks([]store.EditorPick{{ISBN: 3044560, Pick: true}}))
	picks, err := bs.GetEditorPicks(10)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(picks))

	assert.NoError(t, bs.BuyBooks([]store.BookCopy{{ISBN: 3044560, NumCopies: 2}}))
	recs, err := sm.GetBooksByISBN([]int32{3044560})
	assert.NoError(t, err)
	assert.Equal(t, 3, recs[0].NumCopies)

	assert.NoError(t, bs.RateBooks([]store.BookRating{{ISBN: 3044560, Rating: 5}}))
	top, err := bs.GetTopRatedBooks(1)
	assert.NoError(t, err)
	assert.Equal(t, int32(3044560), top[0].ISBN)

	books, err := bs.GetBooks([]int32{3044560})
	assert.NoError(t, err)
	assert.Equal(t, "Harry Potter and JUnit", books[0].Title)
}

func TestProxyErrorPropagation(t *testing.T) {
	prev := configs.SingleLock
	defer func() { configs.SingleLock = prev }()
	configs.SingleLock = false

	ctx, bs, sm := startTestKit(t, "127.0.0.1:6092")
	defer ctx.Close()
	defer bs.Stop()
	defer sm.Stop()

	err := bs.BuyBooks([]store.BookCopy{{ISBN: 42, NumCopies: 1}})
	assert.Equal(t, store.NotInStock, store.KindOf(err))

	err = sm.AddBooks(nil)
	assert.Equal(t, store.NullInput, store.KindOf(err))

	book := store.StockRecord{
		Book:      store.Book{ISBN: 11, Title: "T", Author: "A", Price: 1.0},
		NumCopies: 1,
	}
	assert.NoError(t, sm.AddBooks([]store.StockRecord{book}))
	err = bs.BuyBooks([]store.BookCopy{{ISBN: 11, NumCopies: 3}})
	assert.Equal(t, store.OutOfStock, store.KindOf(err))
	recs, err := sm.GetBooksInDemand()
	assert.NoError(t, err)
	assert.Equal(t, 1, len(recs))
	assert.Equal(t, 2, recs[0].NumSaleMisses)

	assert.NoError(t, sm.RemoveAllBooks())
	all, err := sm.GetBooks()
	assert.NoError(t, err)
	assert.Equal(t, 0, len(all))
}
