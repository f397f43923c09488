package proxy

import (
	"bufio"
	"net"
	"sync"

	"ACB/network"
	"ACB/store"

	"github.com/goccy/go-json"
)

// client is one persistent connection to a catalog server. Calls are
// serialized per connection: one request line out, one response line back.
type client struct {
	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
}

func dial(address string) (*client, error) {
	conn, err := net.Dial("tcp", address)
	if err != nil {
		return nil, err
	}
	return &client{conn: conn, reader: bufio.NewReader(conn)}, nil
}

func (c *client) call(req network.Request) (network.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := json.Marshal(req)
	if err != nil {
		return network.Response{}, err
	}
	data = append(data, '\n')
	if _, err = c.conn.Write(data); err != nil {
		return network.Response{}, err
	}
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return network.Response{}, err
	}
	var resp network.Response
	if err = json.Unmarshal([]byte(line), &resp); err != nil {
		return network.Response{}, err
	}
	return resp, nil
}

func (c *client) close() error {
	return c.conn.Close()
}

// BookStoreProxy implements store.BookStore over the wire.
type BookStoreProxy struct {
	c *client
}

func NewBookStoreProxy(address string) (*BookStoreProxy, error) {
	c, err := dial(address)
	if err != nil {
		return nil, err
	}
	return &BookStoreProxy{c: c}, nil
}

func (p *BookStoreProxy) Stop() error {
	return p.c.close()
}

func (p *BookStoreProxy) BuyBooks(books []store.BookCopy) error {
	resp, err := p.c.call(network.Request{Op: network.OpBuyBooks, Copies: books})
	if err != nil {
		return err
	}
	return resp.Err()
}

func (p *BookStoreProxy) GetBooks(isbns []int32) ([]store.Book, error) {
	resp, err := p.c.call(network.Request{Op: network.OpProjectBooks, ISBNs: isbns})
	if err != nil {
		return nil, err
	}
	return resp.Books, resp.Err()
}

func (p *BookStoreProxy) GetEditorPicks(num int) ([]store.Book, error) {
	resp, err := p.c.call(network.Request{Op: network.OpEditorPicks, Num: num})
	if err != nil {
		return nil, err
	}
	return resp.Books, resp.Err()
}

func (p *BookStoreProxy) GetTopRatedBooks(num int) ([]store.Book, error) {
	resp, err := p.c.call(network.Request{Op: network.OpTopRatedBooks, Num: num})
	if err != nil {
		return nil, err
	}
	return resp.Books, resp.Err()
}

func (p *BookStoreProxy) RateBooks(ratings []store.BookRating) error {
	resp, err := p.c.call(network.Request{Op: network.OpRateBooks, Ratings: ratings})
	if err != nil {
		return err
	}
	return resp.Err()
}

// StockManagerProxy implements store.StockManager over the wire.
type StockManagerProxy struct {
	c *client
}

func NewStockManagerProxy(address string) (*StockManagerProxy, error) {
	c, err := dial(address)
	if err != nil {
		return nil, err
	}
	return &StockManagerProxy{c: c}, nil
}

func (p *StockManagerProxy) Stop() error {
	return p.c.close()
}

func (p *StockManagerProxy) AddBooks(books []store.StockRecord) error {
	resp, err := p.c.call(network.Request{Op: network.OpAddBooks, Books: books})
	if err != nil {
		return err
	}
	return resp.Err()
}

func (p *StockManagerProxy) AddCopies(copies []store.BookCopy) error {
	resp, err := p.c.call(network.Request{Op: network.OpAddCopies, Copies: copies})
	if err != nil {
		return err
	}
	return resp.Err()
}

func (p *StockManagerProxy) GetBooks() ([]store.StockRecord, error) {
	resp, err := p.c.call(network.Request{Op: network.OpListStock})
	if err != nil {
		return nil, err
	}
	return resp.Stock, resp.Err()
}

func (p *StockManagerProxy) GetBooksByISBN(isbns []int32) ([]store.StockRecord, error) {
	resp, err := p.c.call(network.Request{Op: network.OpStockByISBN, ISBNs: isbns})
	if err != nil {
		return nil, err
	}
	return resp.Stock, resp.Err()
}

func (p *StockManagerProxy) UpdateEditorPicks(picks []store.EditorPick) error {
	resp, err := p.c.call(network.Request{Op: network.OpUpdateEditorPicks, Picks: picks})
	if err != nil {
		return err
	}
	return resp.Err()
}

func (p *StockManagerProxy) RemoveBooks(isbns []int32) error {
	resp, err := p.c.call(network.Request{Op: network.OpRemoveBooks, ISBNs: isbns})
	if err != nil {
		return err
	}
	return resp.Err()
}

func (p *StockManagerProxy) RemoveAllBooks() error {
	resp, err := p.c.call(network.Request{Op: network.OpRemoveAllBooks})
	if err != nil {
		return err
	}
	return resp.Err()
}

func (p *StockManagerProxy) GetBooksInDemand() ([]store.StockRecord, error) {
	resp, err := p.c.call(network.Request{Op: network.OpBooksInDemand})
	if err != nil {
		return nil, err
	}
	return resp.Stock, resp.Err()
}
