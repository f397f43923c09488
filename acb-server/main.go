package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"ACB/benchmark"
	"ACB/configs"
	"ACB/network/proxy"
	"ACB/network/server"
	"ACB/store"
)

var (
	node       string
	addr       string
	props      string
	local      bool
	single     bool
	debug      bool
	con        int
	runs       int
	warmup     int
	rare       float64
	freq       float64
	sk         float64
	initBooks  int
	picks      int
	buyN       int
	buyCopies  int
	cpuProfile string
	memProfile string
)

func usage() {
	flag.PrintDefaults()
}

func init() {
	flag.StringVar(&node, "node", "driver", "the node to start, 'driver' or 'server'")
	flag.StringVar(&addr, "addr", "127.0.0.1:8081", "the address of the catalog server")
	flag.StringVar(&props, "props", "", "properties file overriding the default knobs")
	flag.BoolVar(&local, "local", true, "drive an in-process engine instead of proxies")
	flag.BoolVar(&single, "single", false, "use the single global lock discipline")
	flag.BoolVar(&debug, "debug", false, "print debug info")
	flag.IntVar(&con, "c", 10, "the number of workload workers")
	flag.IntVar(&runs, "runs", 500, "the measured runs per worker")
	flag.IntVar(&warmup, "warmup", 100, "the warm-up runs per worker")
	flag.Float64Var(&rare, "rare", 10, "the rare stock manager interaction percentage (%)")
	flag.Float64Var(&freq, "freq", 30, "the frequent stock manager interaction percentage (%)")
	flag.Float64Var(&sk, "skew", 0.9, "the skew factor for the ISBN zipf draw")
	flag.IntVar(&initBooks, "init", 100, "the number of books seeded before the run")
	flag.IntVar(&picks, "picks", 10, "the editor picks fetched per customer interaction")
	flag.IntVar(&buyN, "buy", 5, "the ISBNs bought per customer interaction")
	flag.IntVar(&buyCopies, "copies", 1, "the copies bought per ISBN")
	flag.StringVar(&cpuProfile, "cpu_prof", "", "write cpu profiling")
	flag.StringVar(&memProfile, "mem_prof", "", "write memory profiling")
	flag.Usage = usage
}

func main() {
	flag.Parse()
	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	configs.ShowWarnings = debug
	configs.ShowTestInfo = debug
	configs.LocalTest = local
	configs.SingleLock = single
	configs.ServerAddress = addr
	configs.WorkerNumber = con
	configs.ActualRuns = runs
	configs.WarmUpRuns = warmup
	configs.PercentRareStockManagerInteraction = rare
	configs.PercentFrequentStockManagerInteraction = freq
	configs.ISBNSkewness = sk
	configs.InitialBooks = initBooks
	configs.NumEditorPicksToGet = picks
	configs.NumBooksToBuy = buyN
	configs.NumBookCopiesToBuy = buyCopies
	if props != "" {
		configs.PropertyFileLocation = props
		configs.LoadProperties(props)
	}

	switch node {
	case "server":
		ctx := server.Start(configs.ServerAddress)
		defer ctx.Close()
		fmt.Printf("catalog server running on %v, discipline single_lock=%v\n", configs.ServerAddress, configs.SingleLock)
		select {}
	case "driver":
		runDriver()
	default:
		panic("invalid parameter for node, 'driver' or 'server'")
	}

	if memProfile != "" {
		f, err := os.Create(memProfile)
		if err != nil {
			log.Fatal("could not create memory profile: ", err)
		}
		defer f.Close()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
	}
}

func runDriver() {
	var bs store.BookStore
	var sm store.StockManager
	if configs.LocalTest {
		bs, sm = store.NewBookStore()
	} else {
		bsp, err := proxy.NewBookStoreProxy(configs.ServerAddress)
		configs.CheckError(err)
		defer bsp.Stop()
		smp, err := proxy.NewStockManagerProxy(configs.ServerAddress)
		configs.CheckError(err)
		defer smp.Stop()
		bs, sm = bsp, smp
	}

	gen := benchmark.NewBookSetGenerator(1234)
	configs.CheckError(benchmark.InitializeBookStoreData(sm, gen))
	benchmark.RunWorkload(bs, sm)
}
