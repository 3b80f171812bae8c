package models

// FileType classifies resource content. "link" resources carry an
// external URL; every other type refers to an uploaded file.
type FileType string

const (
	FileTypePDF   FileType = "pdf"
	FileTypeVideo FileType = "video"
	FileTypeAudio FileType = "audio"
	FileTypeImage FileType = "image"
	FileTypeLink  FileType = "link"
)

// Valid reports whether ft is one of the known file types.
func (ft FileType) Valid() bool {
	switch ft {
	case FileTypePDF, FileTypeVideo, FileTypeAudio, FileTypeImage, FileTypeLink:
		return true
	}
	return false
}

// Category classifies a resource in the library.
type Category string

const (
	CategoryParenting   Category = "parenting"
	CategoryEducation   Category = "education"
	CategoryHealth      Category = "health"
	CategoryDevelopment Category = "development"
	CategoryGeneral     Category = "general"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryParenting, CategoryEducation, CategoryHealth, CategoryDevelopment, CategoryGeneral:
		return true
	}
	return false
}

// Color returns the badge color hint for a category. Total; unknown
// values fall through to gray.
func (c Category) Color() string {
	switch c {
	case CategoryParenting:
		return "blue"
	case CategoryEducation:
		return "green"
	case CategoryHealth:
		return "red"
	case CategoryDevelopment:
		return "purple"
	default:
		return "gray"
	}
}
