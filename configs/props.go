package configs

import (
	"github.com/magiconair/properties"
)

// Property keys recognised in the optional properties file. The file is the
// deployment-side override surface; keys present in the file override the
// values set from CLI flags.
const (
	PropertyKeyLocalTest  = "LOCAL_TEST"
	PropertyKeySingleLock = "SINGLE_LOCK"
)

func SetLocal() {
	LocalTest = true
}

// LoadProperties overrides the global knobs from a java-style properties file.
func LoadProperties(path string) {
	p, err := properties.LoadFile(path, properties.UTF8)
	CheckError(err)
	LocalTest = p.GetBool(PropertyKeyLocalTest, LocalTest)
	SingleLock = p.GetBool(PropertyKeySingleLock, SingleLock)
	ServerAddress = p.GetString("SERVER_ADDRESS", ServerAddress)
	UseJournal = p.GetBool("USE_JOURNAL", UseJournal)
	JournalDir = p.GetString("JOURNAL_DIR", JournalDir)

	WorkerNumber = p.GetInt("WORKER_NUMBER", WorkerNumber)
	WarmUpRuns = p.GetInt("WARM_UP_RUNS", WarmUpRuns)
	ActualRuns = p.GetInt("ACTUAL_RUNS", ActualRuns)
	PercentRareStockManagerInteraction = p.GetFloat64("PERCENT_RARE_STOCK_MANAGER_INTERACTION", PercentRareStockManagerInteraction)
	PercentFrequentStockManagerInteraction = p.GetFloat64("PERCENT_FREQUENT_STOCK_MANAGER_INTERACTION", PercentFrequentStockManagerInteraction)
	NumBooksToAdd = p.GetInt("NUM_BOOKS_TO_ADD", NumBooksToAdd)
	NumBooksWithLeastCopies = p.GetInt("NUM_BOOKS_WITH_LEAST_COPIES", NumBooksWithLeastCopies)
	NumAddCopies = p.GetInt("NUM_ADD_COPIES", NumAddCopies)
	NumEditorPicksToGet = p.GetInt("NUM_EDITOR_PICKS_TO_GET", NumEditorPicksToGet)
	NumBooksToBuy = p.GetInt("NUM_BOOKS_TO_BUY", NumBooksToBuy)
	NumBookCopiesToBuy = p.GetInt("NUM_BOOK_COPIES_TO_BUY", NumBookCopiesToBuy)
	InitialBooks = p.GetInt("INITIAL_BOOKS", InitialBooks)
	ISBNRange = p.GetInt("ISBN_RANGE", ISBNRange)
	ISBNSkewness = p.GetFloat64("ISBN_SKEWNESS", ISBNSkewness)
}
