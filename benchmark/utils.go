package benchmark

import (
	"sync"

	"ACB/configs"
	"ACB/store"
	"ACB/utils"
)

// InitializeBookStoreData seeds the catalog before the workload starts.
func InitializeBookStoreData(sm store.StockManager, g *BookSetGenerator) error {
	return sm.AddBooks(g.NextSetOfStockBooks(configs.InitialBooks))
}

// RunWorkload runs the configured number of workers in parallel against the
// given engine handles, logs the aggregate line and returns the metrics.
func RunWorkload(bs store.BookStore, sm store.StockManager) utils.Metrics {
	stat := utils.NewStat()
	wait := sync.WaitGroup{}
	for i := 0; i < configs.WorkerNumber; i++ {
		conf := NewWorkloadConfiguration(bs, sm, int64(i)*11+13)
		w := NewWorker(conf, int64(i))
		wait.Add(1)
		go func() {
			defer wait.Done()
			stat.Append(w.Run())
		}()
	}
	wait.Wait()
	stat.Log()
	return stat.Aggregate()
}
