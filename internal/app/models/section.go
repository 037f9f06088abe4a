package models

// ContentKind discriminates the attachment types a subsection can carry
type ContentKind string

// Content kinds
const (
	ContentKindVideo ContentKind = "video"
	ContentKindBlog  ContentKind = "blog"
	ContentKindPDF   ContentKind = "pdf"
)

// Section groups the subsections of a course
type Section struct {
	ID       int64  `json:"id" db:"id"`
	CourseID int64  `json:"courseId" db:"course_id"`
	Title    string `json:"title" db:"title"`
	Position int    `json:"position" db:"position"`
}

// SubSection is one lesson unit inside a section
type SubSection struct {
	ID        int64  `json:"id" db:"id"`
	SectionID int64  `json:"sectionId" db:"section_id"`
	Title     string `json:"title" db:"title"`
	Position  int    `json:"position" db:"position"`

	// Relations (populated when needed)
	Contents []SubSectionContent `json:"contents,omitempty"`
}

// SubSectionContent is one attachment of a subsection, typed by kind
type SubSectionContent struct {
	ID           int64       `json:"id" db:"id"`
	SubSectionID int64       `json:"subsectionId" db:"subsection_id"`
	Kind         ContentKind `json:"kind" db:"kind"`
	Title        string      `json:"title" db:"title"`
	URL          string      `json:"url" db:"url"`
}
