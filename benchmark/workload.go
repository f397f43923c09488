package benchmark

import (
	"math/rand"
	"sort"
	"time"

	"ACB/configs"
	"ACB/store"
	"ACB/utils"

	set "github.com/deckarep/golang-set"
)

// WorkloadConfiguration is the per-worker view of the workload knobs plus
// the engine handles every interaction goes through.
type WorkloadConfiguration struct {
	BookStore    store.BookStore
	StockManager store.StockManager
	Generator    *BookSetGenerator

	WarmUpRuns                             int
	ActualRuns                             int
	PercentRareStockManagerInteraction     float64
	PercentFrequentStockManagerInteraction float64
	NumBooksToAdd                          int
	NumBooksWithLeastCopies                int
	NumAddCopies                           int
	NumEditorPicksToGet                    int
	NumBooksToBuy                          int
	NumBookCopiesToBuy                     int
}

// NewWorkloadConfiguration snapshots the global knobs for one worker.
func NewWorkloadConfiguration(bs store.BookStore, sm store.StockManager, seed int64) *WorkloadConfiguration {
	return &WorkloadConfiguration{
		BookStore:                              bs,
		StockManager:                           sm,
		Generator:                              NewBookSetGenerator(seed),
		WarmUpRuns:                             configs.WarmUpRuns,
		ActualRuns:                             configs.ActualRuns,
		PercentRareStockManagerInteraction:     configs.PercentRareStockManagerInteraction,
		PercentFrequentStockManagerInteraction: configs.PercentFrequentStockManagerInteraction,
		NumBooksToAdd:                          configs.NumBooksToAdd,
		NumBooksWithLeastCopies:                configs.NumBooksWithLeastCopies,
		NumAddCopies:                           configs.NumAddCopies,
		NumEditorPicksToGet:                    configs.NumEditorPicksToGet,
		NumBooksToBuy:                          configs.NumBooksToBuy,
		NumBookCopiesToBuy:                     configs.NumBookCopiesToBuy,
	}
}

// Worker drives one task worth of randomized interactions and keeps the
// customer-interaction counters the aggregate metrics are computed from.
type Worker struct {
	conf *WorkloadConfiguration
	r    *rand.Rand

	numTotalFrequentBookStoreInteraction      int
	numSuccessfulFrequentBookStoreInteraction int
}

func NewWorker(conf *WorkloadConfiguration, seed int64) *Worker {
	return &Worker{conf: conf, r: rand.New(rand.NewSource(seed*11 + 31))}
}

// runInteraction selects the interaction class from a uniform percentage and
// maintains the customer counters: attempts count before execution,
// successes after.
func (w *Worker) runInteraction(chooseInteraction float64) bool {
	id := utils.GetRunID()
	var err error
	switch {
	case chooseInteraction < w.conf.PercentRareStockManagerInteraction:
		err = w.runRareStockManagerInteraction()
	case chooseInteraction < w.conf.PercentRareStockManagerInteraction+w.conf.PercentFrequentStockManagerInteraction:
		err = w.runFrequentStockManagerInteraction()
	default:
		w.numTotalFrequentBookStoreInteraction++
		err = w.runFrequentBookStoreInteraction()
		if err == nil {
			w.numSuccessfulFrequentBookStoreInteraction++
		}
	}
	if err != nil {
		configs.TPrintf("RUN%v: failed with %v", id, err)
		return false
	}
	return true
}

// Run performs the warm-up runs, then the measured runs, and reports the
// counters. Only the measured loop is timed.
func (w *Worker) Run() utils.WorkerRunResult {
	for count := 1; count <= w.conf.WarmUpRuns; count++ {
		w.runInteraction(w.r.Float64() * 100.0)
	}

	w.numTotalFrequentBookStoreInteraction = 0
	w.numSuccessfulFrequentBookStoreInteraction = 0

	successfulInteractions := 0
	startTime := time.Now()
	for count := 1; count <= w.conf.ActualRuns; count++ {
		if w.runInteraction(w.r.Float64() * 100.0) {
			successfulInteractions++
		}
	}
	elapsed := time.Since(startTime)

	return utils.WorkerRunResult{
		SuccessfulInteractions:                     successfulInteractions,
		TotalRuns:                                  w.conf.ActualRuns,
		SuccessfulFrequentBookStoreInteractionRuns: w.numSuccessfulFrequentBookStoreInteraction,
		TotalFrequentBookStoreInteractionRuns:      w.numTotalFrequentBookStoreInteraction,
		ElapsedTime:                                elapsed,
	}
}

// runRareStockManagerInteraction models new stock acquisition: generate
// candidate titles and add the ones the catalog does not carry yet.
func (w *Worker) runRareStockManagerInteraction() error {
	books, err := w.conf.StockManager.GetBooks()
	if err != nil {
		return err
	}
	current := set.NewSet()
	for _, b := range books {
		current.Add(b.ISBN)
	}
	candidates := w.conf.Generator.NextSetOfStockBooks(w.conf.NumBooksToAdd)
	toAdd := make([]store.StockRecord, 0, len(candidates))
	for _, b := range candidates {
		if !current.Contains(b.ISBN) {
			toAdd = append(toAdd, b)
		}
	}
	if len(toAdd) == 0 {
		return nil
	}
	return w.conf.StockManager.AddBooks(toAdd)
}

// runFrequentStockManagerInteraction replenishes the least stocked titles.
func (w *Worker) runFrequentStockManagerInteraction() error {
	books, err := w.conf.StockManager.GetBooks()
	if err != nil {
		return err
	}
	sort.Slice(books, func(i, j int) bool { return books[i].NumCopies < books[j].NumCopies })
	k := configs.Min(w.conf.NumBooksWithLeastCopies, len(books))
	copies := make([]store.BookCopy, 0, k)
	for _, b := range books[:k] {
		copies = append(copies, store.BookCopy{ISBN: b.ISBN, NumCopies: w.conf.NumAddCopies})
	}
	if len(copies) == 0 {
		return nil
	}
	return w.conf.StockManager.AddCopies(copies)
}

// runFrequentBookStoreInteraction is the measured customer workload: browse
// editor picks, sample a few, buy them.
func (w *Worker) runFrequentBookStoreInteraction() error {
	picks, err := w.conf.BookStore.GetEditorPicks(w.conf.NumEditorPicksToGet)
	if err != nil {
		return err
	}
	isbns := set.NewSet()
	for _, b := range picks {
		isbns.Add(b.ISBN)
	}
	sampled := w.conf.Generator.SampleFromSetOfISBNs(isbns, w.conf.NumBooksToBuy)
	toBuy := make([]store.BookCopy, 0, sampled.Cardinality())
	sampled.Each(func(v interface{}) bool {
		toBuy = append(toBuy, store.BookCopy{ISBN: v.(int32), NumCopies: w.conf.NumBookCopiesToBuy})
		return false
	})
	if len(toBuy) == 0 {
		return nil
	}
	return w.conf.BookStore.BuyBooks(toBuy)
}
