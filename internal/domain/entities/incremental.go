package entities

// IncrementalResultSet is the append-only accumulation consumed by the
// infinite "load more" list. It grows monotonically until the governing
// filter selection changes, at which point it is replaced wholesale.
type IncrementalResultSet struct {
	Courses     []*Course `json:"courses"`
	HasNextPage bool      `json:"hasNextPage"`
	TotalCount  int       `json:"totalCount"`
}
