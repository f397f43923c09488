package server

import (
	"ACB/configs"
	"ACB/network"
	"ACB/store"

	"github.com/goccy/go-json"
)

// Context hosts a local catalog engine behind the wire protocol.
type Context struct {
	bookStore    store.BookStore
	stockManager store.StockManager
	comm         *Comm
	address      string
}

// Start builds the engine for the configured discipline and serves it on the
// given address.
func Start(address string) *Context {
	bs, sm := store.NewBookStore()
	ctx := &Context{bookStore: bs, stockManager: sm, address: address}
	ctx.comm = NewConns(ctx, address)
	go ctx.comm.Run()
	configs.DPrintf("catalog server listening on %v", address)
	return ctx
}

func (ctx *Context) Close() {
	ctx.comm.Stop()
}

func (ctx *Context) handleRequestLine(data []byte) network.Response {
	var req network.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return network.Response{OK: false, ErrorKind: string(store.InvalidArgument), Message: "malformed request: " + err.Error()}
	}
	configs.TPrintf("serving %v", req.Op)
	return ctx.dispatch(&req)
}

func (ctx *Context) dispatch(req *network.Request) network.Response {
	switch req.Op {
	case network.OpAddBooks:
		return respond(ctx.stockManager.AddBooks(req.Books))
	case network.OpAddCopies:
		return respond(ctx.stockManager.AddCopies(req.Copies))
	case network.OpListStock:
		stock, err := ctx.stockManager.GetBooks()
		return respondStock(stock, err)
	case network.OpStockByISBN:
		stock, err := ctx.stockManager.GetBooksByISBN(req.ISBNs)
		return respondStock(stock, err)
	case network.OpUpdateEditorPicks:
		return respond(ctx.stockManager.UpdateEditorPicks(req.Picks))
	case network.OpRemoveBooks:
		return respond(ctx.stockManager.RemoveBooks(req.ISBNs))
	case network.OpRemoveAllBooks:
		return respond(ctx.stockManager.RemoveAllBooks())
	case network.OpBooksInDemand:
		stock, err := ctx.stockManager.GetBooksInDemand()
		return respondStock(stock, err)
	case network.OpBuyBooks:
		return respond(ctx.bookStore.BuyBooks(req.Copies))
	case network.OpProjectBooks:
		books, err := ctx.bookStore.GetBooks(req.ISBNs)
		return respondBooks(books, err)
	case network.OpEditorPicks:
		books, err := ctx.bookStore.GetEditorPicks(req.Num)
		return respondBooks(books, err)
	case network.OpTopRatedBooks:
		books, err := ctx.bookStore.GetTopRatedBooks(req.Num)
		return respondBooks(books, err)
	case network.OpRateBooks:
		return respond(ctx.bookStore.RateBooks(req.Ratings))
	default:
		return network.Response{OK: false, ErrorKind: string(store.InvalidArgument), Message: "unknown op " + req.Op}
	}
}

func respond(err error) network.Response {
	if err != nil {
		return network.Failure(err)
	}
	return network.Success()
}

func respondBooks(books []store.Book, err error) network.Response {
	if err != nil {
		return network.Failure(err)
	}
	resp := network.Success()
	resp.Books = books
	return resp
}

func respondStock(stock []store.StockRecord, err error) network.Response {
	if err != nil {
		return network.Failure(err)
	}
	resp := network.Success()
	resp.Stock = stock
	return resp
}
