package jar

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const ClassSuffix = ".class"

// Entry is one member of an archive. The underlying zip header is kept so the
// entry can be re-emitted verbatim.
type Entry struct {
	file  *zip.File
	index int
}

func (e *Entry) Name() string {
	return e.file.Name
}

func (e *Entry) Index() int {
	return e.index
}

func (e *Entry) Header() zip.FileHeader {
	return e.file.FileHeader
}

func (e *Entry) IsDir() bool {
	return strings.HasSuffix(e.file.Name, "/")
}

func (e *Entry) IsManifest() bool {
	return IsManifestName(e.file.Name)
}

func (e *Entry) IsClass() bool {
	return IsClassName(e.file.Name)
}

// ClassName converts the entry path to a dotted class name
func (e *Entry) ClassName() string {
	return ClassNameOf(e.file.Name)
}

func (e *Entry) Size() uint64 {
	return e.file.UncompressedSize64
}

func (e *Entry) CompressedSize() uint64 {
	return e.file.CompressedSize64
}

// ReadAll decompresses the entry content
func (e *Entry) ReadAll() ([]byte, error) {
	rc, err := e.file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func IsManifestName(name string) bool {
	return strings.EqualFold(name, ManifestPath)
}

func IsClassName(name string) bool {
	return strings.HasSuffix(name, ClassSuffix) && !strings.HasSuffix(name, "/")
}

func ClassNameOf(name string) string {
	return strings.ReplaceAll(strings.TrimSuffix(name, ClassSuffix), "/", ".")
}

// Archive is a zip/jar file held entirely in memory
type Archive struct {
	path     string
	data     []byte
	reader   *zip.Reader
	entries  []*Entry
	manifest *Entry // first manifest entry, parsed on demand
}

// Read loads the whole archive at path
func Read(path string) (*Archive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ArchiveIOError{Op: "read", Path: path, Err: err}
	}
	return FromBytes(path, data)
}

// FromBytes opens an archive from its raw bytes; path is only used in errors
func FromBytes(path string, data []byte) (*Archive, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, &ArchiveIOError{Op: "open", Path: path, Err: err}
	}

	a := &Archive{
		path:   path,
		data:   data,
		reader: reader,
	}

	for i, f := range reader.File {
		entry := &Entry{file: f, index: i}
		a.entries = append(a.entries, entry)

		if a.manifest == nil && entry.IsManifest() {
			a.manifest = entry
		}
	}

	return a, nil
}

func (a *Archive) Path() string {
	return a.path
}

// Data returns the raw archive bytes as read
func (a *Archive) Data() []byte {
	return a.data
}

func (a *Archive) Comment() string {
	return a.reader.Comment
}

func (a *Archive) Entries() []*Entry {
	return a.entries
}

// Manifest parses the archive's manifest. It returns nil and no error when the
// archive has none. Only callers that interpret the manifest use it, so an
// archive with an unreadable manifest can still be copied or merged.
func (a *Archive) Manifest() (*Manifest, error) {
	if a.manifest == nil {
		return nil, nil
	}
	content, err := a.manifest.ReadAll()
	if err != nil {
		return nil, &ArchiveIOError{Op: "read manifest of", Path: a.path, Err: err}
	}
	manifest, err := ParseManifest(content)
	if err != nil {
		return nil, &ArchiveIOError{Op: "parse manifest of", Path: a.path, Err: err}
	}
	return manifest, nil
}

func (a *Archive) readEntry(e *Entry) ([]byte, error) {
	content, err := e.ReadAll()
	if err != nil {
		return nil, &ArchiveIOError{Op: "read entry " + e.Name() + " of", Path: a.path, Err: err}
	}
	return content, nil
}

func (a *Archive) String() string {
	return fmt.Sprintf("%s (%d entries)", a.path, len(a.entries))
}
