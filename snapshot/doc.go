// Package snapshot provides consistent, read-only copies of the order
// book's depth. A Depth is taken while the caller holds the book's read
// side and can be rendered or inspected afterwards without touching the
// book again.
//
// Snapshots are decoupled from matching and from the trade tape. They only
// copy what the depth-of-market view and the command loop need to show.
package snapshot
