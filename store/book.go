package store

import "ACB/configs"

// Book is the immutable identity snapshot of a title.
type Book struct {
	ISBN   int32   `json:"isbn"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Price  float64 `json:"price"`
}

// StockRecord is the catalog entry for one ISBN: the identity snapshot plus
// the mutable stock and telemetry fields. The mutable fields may only be
// touched while the record's write envelope is held.
type StockRecord struct {
	Book
	NumCopies     int  `json:"numCopies"`
	NumSaleMisses int  `json:"numSaleMisses"`
	NumTimesRated int  `json:"numTimesRated"`
	TotalRating   int  `json:"totalRating"`
	EditorPick    bool `json:"editorPick"`
}

// AverageRating derives the mean rating, or the unrated sentinel when the
// record has never been rated. It is never stored.
func (b *StockRecord) AverageRating() float64 {
	if b.NumTimesRated == 0 {
		return configs.UnratedRating
	}
	return float64(b.TotalRating) / float64(b.NumTimesRated)
}

func (b *StockRecord) copiesInStore(n int) bool {
	return b.NumCopies >= n
}

func (b *StockRecord) buyCopies(n int) {
	configs.Assert(b.NumCopies >= n, "buyCopies without sufficient stock")
	b.NumCopies -= n
}

func (b *StockRecord) addCopies(n int) {
	b.NumCopies += n
}

func (b *StockRecord) addSaleMiss(n int) {
	b.NumSaleMisses += n
}

func (b *StockRecord) rate(r int) {
	b.NumTimesRated++
	b.TotalRating += r
}

// snapshot copies the record value; the copy is safe to hand out after the
// envelope is released.
func (b *StockRecord) snapshot() StockRecord {
	return *b
}

// BookCopy pairs an ISBN with a copy count for buy and replenish requests.
type BookCopy struct {
	ISBN      int32 `json:"isbn"`
	NumCopies int   `json:"numCopies"`
}

// EditorPick carries a curation flag update for one ISBN.
type EditorPick struct {
	ISBN int32 `json:"isbn"`
	Pick bool  `json:"pick"`
}

// BookRating carries one 0-5 rating for one ISBN.
type BookRating struct {
	ISBN   int32 `json:"isbn"`
	Rating int   `json:"rating"`
}
