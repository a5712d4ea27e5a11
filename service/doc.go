// Package service is the single write entry point into the order book.
//
// It serialises commands (submit, cancel, populate) behind one lock,
// numbers them, and copies the trades they produce onto the trade tape.
// Readers (depth snapshots, trade history, digests) share the read side of
// the same lock and never observe a command half way through.
package service
