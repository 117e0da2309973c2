package source

// FileID indexes a file inside its FileSet.
type FileID uint32

// FileFlags records how a file's bytes were obtained.
type FileFlags uint8

const (
	// FileVirtual marks text supplied from memory rather than disk.
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File is one program text with its newline index. LineIdx holds the
// offset of every '\n', so line n (1-based) ends at LineIdx[n-1].
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// Virtual reports whether the file has no on-disk counterpart.
func (f *File) Virtual() bool { return f.Flags&FileVirtual != 0 }

// LineCol is a 1-based position.
type LineCol struct {
	Line uint32
	Col  uint32
}

// Span is the byte range [Start, End) of a token within one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}
