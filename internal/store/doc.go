// Package store provides SQLite-backed durable storage for clipboard history.
//
// The store is an append-only log of distinct clipboard values. It never
// updates or deletes rows; the monitor is responsible for deciding what counts
// as a new entry.
//
// # Ordering
//
//   - Reads are always ORDER BY created_at DESC, id DESC (most recent first)
//   - created_at is assigned by the store, never by the caller
//   - Inserts clamp created_at to the newest stored value, so recency order
//     never runs backwards even if the wall clock does
//   - id is AUTOINCREMENT and never reused
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// # Errors
//
// Every failure is reported as one of three kinds: *InitError from Open,
// *WriteError from Append and *ReadError from the read methods. WriteError
// additionally reports whether the failure is transient (lock contention)
// or structural.
package store
