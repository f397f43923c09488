package server

import (
	"bufio"
	"io"
	"net"

	"ACB/configs"

	"github.com/goccy/go-json"
)

// Comm accepts client connections and feeds request lines to the owning
// Context. The handler semaphore bounds concurrent connections.
type Comm struct {
	done     chan bool
	listener net.Listener
	stmt     *Context
	sem      chan struct{}
}

func NewConns(stmt *Context, address string) *Comm {
	res := &Comm{stmt: stmt}
	res.done = make(chan bool, 1)
	tcpAddr, err := net.ResolveTCPAddr("tcp4", address)
	configs.CheckError(err)
	res.listener, err = net.ListenTCP("tcp", tcpAddr)
	configs.CheckError(err)
	return res
}

func (c *Comm) Run() {
	c.sem = make(chan struct{}, configs.MaxConnectionHandler)
	for {
		conn, err := c.listener.Accept()
		if err != nil {
			select {
			case <-c.done:
				return
			default:
				configs.CheckError(err)
			}
		}
		c.sem <- struct{}{}
		go func() {
			defer func() {
				<-c.sem
			}()
			c.handleRequest(conn)
		}()
	}
}

// handleRequest serves one client connection: requests are processed in
// arrival order and every request line is answered with one response line.
func (c *Comm) handleRequest(conn net.Conn) {
	defer conn.Close()
	reader := bufio.NewReader(conn)
	for {
		data, err := reader.ReadString('\n')
		if err == io.EOF {
			break
		}
		if err != nil {
			configs.Warn(false, "request read failed: "+err.Error())
			break
		}
		resp := c.stmt.handleRequestLine([]byte(data))
		out, err := json.Marshal(resp)
		configs.CheckError(err)
		out = append(out, '\n')
		if _, err = conn.Write(out); err != nil {
			configs.Warn(false, "response write failed: "+err.Error())
			break
		}
	}
}

func (c *Comm) Stop() {
	c.done <- true
	configs.CheckError(c.listener.Close())
}
