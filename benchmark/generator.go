package benchmark

import (
	"fmt"
	"math/rand"

	"ACB/configs"
	"ACB/store"

	set "github.com/deckarep/golang-set"
	"github.com/pingcap/go-ycsb/pkg/generator"
)

// BookSetGenerator produces candidate stock books and ISBN samples for the
// workload interactions. ISBNs are drawn from a zipfian distribution so hot
// titles recur across candidates; uniqueness against the live catalog is
// best effort and the callers filter duplicates.
type BookSetGenerator struct {
	r   *rand.Rand
	zip *generator.Zipfian
}

func NewBookSetGenerator(seed int64) *BookSetGenerator {
	return &BookSetGenerator{
		r:   rand.New(rand.NewSource(seed)),
		zip: generator.NewZipfianWithRange(1, int64(configs.ISBNRange), configs.ISBNSkewness),
	}
}

// NextSetOfStockBooks returns num candidate records with distinct ISBNs and
// zeroed telemetry.
func (g *BookSetGenerator) NextSetOfStockBooks(num int) []store.StockRecord {
	seen := set.NewSet()
	books := make([]store.StockRecord, 0, num)
	for len(books) < num {
		isbn := int32(g.zip.Next(g.r))
		if seen.Contains(isbn) {
			continue
		}
		seen.Add(isbn)
		books = append(books, store.StockRecord{
			Book: store.Book{
				ISBN:   isbn,
				Title:  fmt.Sprintf("Book %d", isbn),
				Author: fmt.Sprintf("Author %d", g.r.Intn(1000)),
				Price:  10.0 + g.r.Float64()*90.0,
			},
			NumCopies:  10 + g.r.Intn(91),
			EditorPick: g.r.Intn(2) == 0,
		})
	}
	return books
}

// SampleFromSetOfISBNs draws up to num ISBNs uniformly without replacement.
func (g *BookSetGenerator) SampleFromSetOfISBNs(isbns set.Set, num int) set.Set {
	if isbns.Cardinality() <= num {
		return isbns
	}
	list := isbns.ToSlice()
	sampled := set.NewSet()
	for sampled.Cardinality() < num {
		sampled.Add(list[g.r.Intn(len(list))])
	}
	return sampled
}
