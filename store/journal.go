package store

import (
	"fmt"
	"time"

	"ACB/configs"

	"github.com/tidwall/wal"
	"github.com/viney-shih/go-lock"
)

// Journal is an append-only record of committed purchases and sale misses,
// for offline telemetry analysis. It is not a redo log: the catalog stays
// volatile and is never rebuilt from it. Disabled unless configs.UseJournal.
type Journal struct {
	latch  lock.Mutex
	lsn    uint64
	logs   *wal.Log
	buffer *wal.Batch
	done   chan struct{}
}

func NewJournal(name string) *Journal {
	res := &Journal{}
	if !configs.UseJournal {
		return res
	}
	res.latch = lock.NewCASMutex()
	log, err := wal.Open(fmt.Sprintf("%s/%s", configs.JournalDir, name), nil)
	configs.CheckError(err)
	res.logs = log
	res.lsn, err = log.LastIndex()
	configs.CheckError(err)
	res.buffer = &wal.Batch{}
	res.done = make(chan struct{})
	go res.batchSync()
	return res
}

func (c *Journal) append(entry string) {
	c.lsn++
	c.buffer.Write(c.lsn, []byte(entry))
	configs.TPrintf("journal entry %v-%v", c.lsn, entry)
}

// LogPurchase records a committed buy, one entry per ISBN.
func (c *Journal) LogPurchase(books []BookCopy) {
	if !configs.UseJournal {
		return
	}
	c.latch.Lock()
	defer c.latch.Unlock()
	for _, b := range books {
		c.append(fmt.Sprintf("(b,%v,%v)", b.ISBN, b.NumCopies))
	}
}

// LogSaleMiss records the shortfall amounts of an aborted buy.
func (c *Journal) LogSaleMiss(misses map[int32]int) {
	if !configs.UseJournal {
		return
	}
	c.latch.Lock()
	defer c.latch.Unlock()
	for isbn, n := range misses {
		c.append(fmt.Sprintf("(m,%v,%v)", isbn, n))
	}
}

func (c *Journal) batchSync() {
	lastLSN := c.lsn
	for {
		select {
		case <-time.After(configs.JournalBatchInterval):
			c.latch.Lock()
			if c.lsn != lastLSN {
				err := c.logs.WriteBatch(c.buffer)
				configs.CheckError(err)
				c.buffer.Clear()
				lastLSN = c.lsn
			}
			c.latch.Unlock()
		case <-c.done:
			return
		}
	}
}

func (c *Journal) Close() {
	if !configs.UseJournal {
		return
	}
	close(c.done)
	c.latch.Lock()
	if c.buffer != nil {
		configs.CheckError(c.logs.WriteBatch(c.buffer))
		c.buffer.Clear()
	}
	c.latch.Unlock()
	configs.CheckError(c.logs.Close())
}
