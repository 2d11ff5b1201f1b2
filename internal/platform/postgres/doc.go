// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in internal/store. Every owner-scoped query filters
// by user_id in SQL, and the flashcard review transition is applied as a
// single atomic conditional update so concurrent reviews never race in
// application code.
package postgres
