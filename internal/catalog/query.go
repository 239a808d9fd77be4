package catalog

// Sort options for catalog listings
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortName      = "name"
	SortPopular   = "popular"
)

// Default price window bounds
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 100000
)

// Filter describes a catalog listing request. Zero values mean "no filter".
type Filter struct {
	Search    string
	BrandSlug string
	Gender    string
	Category  string
	Featured  *bool
	MinPrice  float64
	MaxPrice  float64
	Sort      string
	Page      int
	PageSize  int

	// IncludeAllStatuses lifts the published-only guarantee for
	// authenticated admin listings.
	IncludeAllStatuses bool
	Status             string
}

// Normalize fills defaults so the store layer never sees an unbounded or
// zero-page filter.
func (f *Filter) Normalize(defaultPageSize int) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = defaultPageSize
	}
	if f.MaxPrice <= 0 {
		f.MaxPrice = DefaultMaxPrice
	}
	if f.MinPrice < 0 {
		f.MinPrice = DefaultMinPrice
	}
	switch f.Sort {
	case SortNewest, SortPriceAsc, SortPriceDesc, SortName, SortPopular:
	default:
		f.Sort = SortNewest
	}
}

// Offset returns the first row index of the requested page
func (f Filter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// TotalPages computes ceil(count / pageSize)
func TotalPages(count int64, pageSize int) int {
	if pageSize <= 0 || count <= 0 {
		return 0
	}
	return int((count + int64(pageSize) - 1) / int64(pageSize))
}
