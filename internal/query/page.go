package query

// Page is one slice of a row set.
type Page[T any] struct {
	Items     []T `json:"items"`
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// Paginate returns rows[(page-1)*size : page*size], clamped to the row set.
// Pages outside 1..PageCount come back empty. A size below 1 is treated as 1.
func Paginate[T any](rows []T, page, size int) Page[T] {
	if size < 1 {
		size = 1
	}
	pages := len(rows) / size
	if len(rows)%size != 0 {
		pages++
	}
	p := Page[T]{
		Items:     []T{},
		Page:      page,
		PageSize:  size,
		PageCount: pages,
		Total:     len(rows),
	}
	// compare before multiplying so huge page numbers cannot overflow
	if page < 1 || page > pages {
		return p
	}
	start := (page - 1) * size
	end := start + min(size, len(rows)-start)
	p.Items = rows[start:end]
	return p
}
