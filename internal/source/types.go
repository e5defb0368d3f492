package source

type (
	// FileID uniquely identifies a stylesheet within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a loaded stylesheet.
	FileFlags uint8
)

const (
	// FileVirtual marks content added from memory (tests, stdin).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileNormalizedNFC is set when the content was rewritten into Unicode NFC.
	FileNormalizedNFC
)

// File captures metadata and content for a single stylesheet.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
