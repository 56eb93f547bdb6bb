package valueobjects

// FileType classifies an uploaded project asset
type FileType string

const (
	FileTypeVerse  FileType = "verse"
	FileTypeHook   FileType = "hook"
	FileTypeBeat   FileType = "beat"
	FileTypeSample FileType = "sample"
	FileTypeFinal  FileType = "final"
)

var fileTypes = []FileType{FileTypeVerse, FileTypeHook, FileTypeBeat, FileTypeSample, FileTypeFinal}

// IsValid reports whether t is a known file type
func (t FileType) IsValid() bool {
	for _, known := range fileTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t FileType) String() string { return string(t) }

// FileTypeValues lists every known file type
func FileTypeValues() []string {
	values := make([]string, len(fileTypes))
	for i, t := range fileTypes {
		values[i] = string(t)
	}
	return values
}
