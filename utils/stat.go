package utils

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// WorkerRunResult carries the counters one workload worker accumulated over
// its measured runs.
type WorkerRunResult struct {
	SuccessfulInteractions                     int
	TotalRuns                                  int
	SuccessfulFrequentBookStoreInteractionRuns int
	TotalFrequentBookStoreInteractionRuns      int
	ElapsedTime                                time.Duration
}

// Metrics is the aggregate view over all workers of one benchmark run.
type Metrics struct {
	Workers          int
	SuccessRate      float64 // percent of runs that succeeded
	CustomerFraction float64 // percent of runs that were customer interactions
	Throughput       float64 // successful customer interactions per second
	AverageLatency   time.Duration
}

// Stat collects worker results concurrently and aggregates them.
type Stat struct {
	mu      sync.Mutex
	results []WorkerRunResult
}

func NewStat() *Stat {
	return &Stat{results: make([]WorkerRunResult, 0)}
}

func (st *Stat) Append(r WorkerRunResult) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.results = append(st.results, r)
}

func (st *Stat) Clear() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.results = st.results[:0]
}

func (st *Stat) Aggregate() Metrics {
	st.mu.Lock()
	defer st.mu.Unlock()
	var succ, total, succCustomer, totalCustomer int
	var elapsed time.Duration
	for _, r := range st.results {
		succ += r.SuccessfulInteractions
		total += r.TotalRuns
		succCustomer += r.SuccessfulFrequentBookStoreInteractionRuns
		totalCustomer += r.TotalFrequentBookStoreInteractionRuns
		elapsed += r.ElapsedTime
	}
	m := Metrics{Workers: len(st.results)}
	if total > 0 {
		m.SuccessRate = float64(succ) * 100.0 / float64(total)
		m.CustomerFraction = float64(totalCustomer) * 100.0 / float64(total)
	}
	if succCustomer > 0 && len(st.results) > 0 {
		avgSeconds := elapsed.Seconds() / float64(len(st.results))
		m.Throughput = float64(succCustomer) / avgSeconds
		m.AverageLatency = elapsed / time.Duration(succCustomer)
	}
	return m
}

// Log emits the aggregate metrics as one key:value; line.
func (st *Stat) Log() {
	m := st.Aggregate()
	msg := "workers:" + strconv.Itoa(m.Workers) + ";"
	msg += "success_rate:" + fmt.Sprintf("%.2f%%", m.SuccessRate) + ";"
	msg += "customer_fraction:" + fmt.Sprintf("%.2f%%", m.CustomerFraction) + ";"
	msg += "throughput:" + fmt.Sprintf("%.2f", m.Throughput) + ";"
	if m.AverageLatency > 0 {
		msg += "ave_latency:" + m.AverageLatency.String() + ";"
	} else {
		msg += "ave_latency:nil;"
	}
	fmt.Println(msg)
}
