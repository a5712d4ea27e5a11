// Package orderbook implements the single-instrument limit order book and
// its matching engine. Resting orders live in an arena and are addressed by
// stable handles; each side keeps a btree of price levels whose FIFO queues
// link those handles together, and an index maps order ids to handles so
// cancellation and duplicate detection are O(1).
//
// Prices are carried as integer ticks (0.25 per tick). Decimal values only
// appear at the boundary, when an Order is constructed or a price is shown.
//
// The book is single-writer. Every AddOrder/CancelOrder runs to completion,
// including the crossing loop and the level statistics recomputation, before
// the next command may start; callers that share a book across goroutines
// must serialize writes themselves (see package service).
package orderbook
