package services

// Change is the outcome of a write: the row as written, or as it was before
// a delete, and the whole table read back in the same transaction.
type Change[T any] struct {
	Row  T
	Rows []T
}
