package configs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadProperties(t *testing.T) {
	prevLocal, prevSingle, prevWorkers := LocalTest, SingleLock, WorkerNumber
	defer func() { LocalTest, SingleLock, WorkerNumber = prevLocal, prevSingle, prevWorkers }()

	path := filepath.Join(t.TempDir(), "store.properties")
	content := "LOCAL_TEST=false\nSINGLE_LOCK=true\nWORKER_NUMBER=3\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))

	LoadProperties(path)
	assert.False(t, LocalTest)
	assert.True(t, SingleLock)
	assert.Equal(t, 3, WorkerNumber)
}
