package records

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

type PageRequest struct {
	Page  int
	Limit int
}

// Normalize applies defaults: page < 1 becomes 1, limit < 1 becomes the
// default and limit > MaxLimit is clamped.
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	switch {
	case r.Limit < 1:
		r.Limit = DefaultLimit
	case r.Limit > MaxLimit:
		r.Limit = MaxLimit
	}
	return r
}

func (r PageRequest) Offset() int {
	r = r.Normalize()
	return (r.Page - 1) * r.Limit
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type Page struct {
	Data       []Record   `json:"data"`
	Columns    []Column   `json:"columns"`
	Pagination Pagination `json:"pagination"`
}

// Project packages one page of rows with the entity's column metadata.
func Project(entity Entity, rows []Record, total int64, req PageRequest) Page {
	req = req.Normalize()
	if rows == nil {
		rows = []Record{}
	}
	columns := Columns(entity)
	if columns == nil {
		columns = []Column{}
	}

	return Page{
		Data:    rows,
		Columns: columns,
		Pagination: Pagination{
			Page:  req.Page,
			Limit: req.Limit,
			Total: total,
			Pages: (total + int64(req.Limit) - 1) / int64(req.Limit),
		},
	}
}
