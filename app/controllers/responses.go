package controllers

const (
	msgInserted = "Data inserted successfully"
	msgUpdated  = "Data updated successfully"
	msgDeleted  = "Data deleted successfully"
)

// mutation is the envelope for supplier writes and product updates/deletes.
// Data is the whole table after the write.
type mutation[T any] struct {
	Update string `json:"update"`
	Data   []T    `json:"data"`
}

func mutated[T any](msg string, rows []T) mutation[T] {
	if rows == nil {
		rows = []T{}
	}
	return mutation[T]{Update: msg, Data: rows}
}
