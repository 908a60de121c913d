package entities

// CourseSearchResult is one page of catalog results plus paging metadata.
type CourseSearchResult struct {
	Courses         []*Course `json:"courses"`
	TotalCount      int       `json:"totalCount"`
	TotalPages      int       `json:"totalPages"`
	CurrentPage     int       `json:"currentPage"`
	HasNextPage     bool      `json:"hasNextPage"`
	HasPreviousPage bool      `json:"hasPreviousPage"`
}

// NewCourseSearchResult derives the paging metadata from a raw row window.
// A non-positive pageSize is treated as the default so the page arithmetic
// is always defined, matching CourseFilter.Sanitize.
func NewCourseSearchResult(courses []*Course, totalCount, page, pageSize int) *CourseSearchResult {
	if courses == nil {
		courses = []*Course{}
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	totalPages := (totalCount + pageSize - 1) / pageSize
	return &CourseSearchResult{
		Courses:         courses,
		TotalCount:      totalCount,
		TotalPages:      totalPages,
		CurrentPage:     page,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
