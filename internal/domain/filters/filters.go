package filters

type Filters struct {
	Page     int `schema:"page" validate:"omitempty,gte=1" errorMsg:"Page must be greater than zero"`
	PageSize int `schema:"page_size" validate:"omitempty,gte=1,lte=100" errorMsg:"Page size must be between 1 and 100"`
}

const (
	DefaultPage     = 1
	DefaultPageSize = 20
)

func (f *Filters) ApplyDefaults() {
	if f.Page == 0 {
		f.Page = DefaultPage
	}
	if f.PageSize == 0 {
		f.PageSize = DefaultPageSize
	}
}

func (f *Filters) Limit() int {
	return f.PageSize
}

func (f *Filters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

type Metadata struct {
	CurrentPage  int `json:"current_page,omitempty"`
	PageSize     int `json:"page_size,omitempty"`
	FirstPage    int `json:"first_page,omitempty"`
	LastPage     int `json:"last_page,omitempty"`
	TotalRecords int `json:"total_records"`
}

func CalculateMetadata(totalRecords int, f Filters) Metadata {
	if totalRecords == 0 {
		return Metadata{}
	}
	return Metadata{
		CurrentPage:  f.Page,
		PageSize:     f.PageSize,
		FirstPage:    1,
		LastPage:     (totalRecords + f.PageSize - 1) / f.PageSize,
		TotalRecords: totalRecords,
	}
}
