package configs

import "time"

// Debugging parameters.
var (
	ShowDebugInfo = false
	ShowWarnings  = ShowDebugInfo
	ShowTestInfo  = ShowDebugInfo
	LogToFile     = false
)

// LockNone et,al. the lock status codes. The store disciplines do not refer
// to them.
const (
	LockNone      = 0
	LockShared    = 1
	LockExclusive = 2
)

// Deployment parameters that could be changed by args or the properties file.
var (
	LocalTest     = true
	SingleLock    = false
	ServerAddress = "127.0.0.1:8081"
	UseJournal    = false
	JournalDir    = "./logs"
)

// System parameters.
const (
	MaxRating            = 5
	UnratedRating        = -1.0
	MaxConnectionHandler = 16
	JournalBatchInterval = 10 * time.Millisecond
)

// Workload parameters that could be changed by args or the properties file.
var (
	WorkerNumber                           = 10
	WarmUpRuns                             = 100
	ActualRuns                             = 500
	PercentRareStockManagerInteraction     = 10.0
	PercentFrequentStockManagerInteraction = 30.0
	NumBooksToAdd                          = 5
	NumBooksWithLeastCopies                = 5
	NumAddCopies                           = 10
	NumEditorPicksToGet                    = 10
	NumBooksToBuy                          = 5
	NumBookCopiesToBuy                     = 1
	InitialBooks                           = 100
	ISBNRange                              = 100000
	ISBNSkewness                           = 0.9
	PropertyFileLocation                   = ""
)
