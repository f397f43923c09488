package store

import (
	"testing"
	"time"

	"ACB/configs"

	"github.com/tidwall/wal"

	"github.com/stretchr/testify/assert"
)

func TestJournalDisabledByDefault(t *testing.T) {
	j := NewJournal("noop")
	j.LogPurchase([]BookCopy{{ISBN: 1, NumCopies: 1}})
	j.LogSaleMiss(map[int32]int{1: 2})
	j.Close()
}

func TestJournalRecordsEntries(t *testing.T) {
	prevUse, prevDir := configs.UseJournal, configs.JournalDir
	defer func() { configs.UseJournal, configs.JournalDir = prevUse, prevDir }()
	configs.UseJournal = true
	configs.JournalDir = t.TempDir()

	j := NewJournal("sales")
	j.LogPurchase([]BookCopy{{ISBN: 10, NumCopies: 2}})
	j.LogSaleMiss(map[int32]int{11: 3})
	time.Sleep(5 * configs.JournalBatchInterval)
	j.Close()

	log, err := wal.Open(configs.JournalDir+"/sales", nil)
	assert.NoError(t, err)
	defer log.Close()
	last, err := log.LastIndex()
	assert.NoError(t, err)
	assert.Equal(t, uint64(2), last)
	entry, err := log.Read(1)
	assert.NoError(t, err)
	assert.Equal(t, "(b,10,2)", string(entry))
	entry, err = log.Read(2)
	assert.NoError(t, err)
	assert.Equal(t, "(m,11,3)", string(entry))
}
