package entities

import "time"

// Category groups courses into a browsable taxonomy.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Course represents a single training-course record. The slug is the stable
// lookup key for detail views; level, duration, format and the numeric price
// are nullable facet attributes.
type Course struct {
	ID            string    `json:"id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Audience      string    `json:"audience"`
	Prerequisites string    `json:"prerequisites"`
	Level         *string   `json:"level"`
	Duration      *string   `json:"duration"`
	Format        *string   `json:"format"`
	PriceText     string    `json:"priceText"`
	PriceNumeric  *float64  `json:"priceNumeric"`
	CategoryID    *int64    `json:"categoryId"`
	Category      *Category `json:"category,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// SyllabusDay is one entry of a course programme, ordered by Day.
type SyllabusDay struct {
	ID       int64  `json:"id"`
	CourseID string `json:"courseId"`
	Day      int    `json:"day"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}

// Tag is a keyword attached to a course, optionally scoped to a category.
type Tag struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Category *Category `json:"category,omitempty"`
}

// CourseDetail is a course plus the related sub-records shown on the
// detail view.
type CourseDetail struct {
	Course
	Syllabus []SyllabusDay `json:"syllabus"`
	Tags     []Tag         `json:"tags"`
}
