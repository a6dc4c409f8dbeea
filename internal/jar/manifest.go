package jar

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

/*
*	Manifest format described here
*	https://docs.oracle.com/en/java/javase/21/docs/specs/jar/jar.html#jar-manifest
*
*	main-section        attributes, terminated by an empty line
*	individual-section  "Name: <entry>" followed by attributes, same terminator
*	value continuation  a line starting with a single space
 */

const (
	ManifestPath = "META-INF/MANIFEST.MF"
	MetaInfDir   = "META-INF/"

	AttrManifestVersion  = "Manifest-Version"
	AttrSignatureVersion = "Signature-Version"
	AttrMainClass        = "Main-Class"
	AttrName             = "Name"

	DefaultManifestVersion = "1.0"

	maxLineBytes = 72
)

type Attribute struct {
	Name  string
	Value string
}

// Attributes is an insertion ordered map with case-insensitive names
type Attributes struct {
	items []Attribute
}

func (a *Attributes) find(name string) int {
	for i := range a.items {
		if strings.EqualFold(a.items[i].Name, name) {
			return i
		}
	}
	return -1
}

func (a *Attributes) Get(name string) (string, bool) {
	if i := a.find(name); i >= 0 {
		return a.items[i].Value, true
	}
	return "", false
}

// Set replaces the value in place or appends a new attribute
func (a *Attributes) Set(name, value string) {
	if i := a.find(name); i >= 0 {
		a.items[i].Value = value
		return
	}
	a.items = append(a.items, Attribute{Name: name, Value: value})
}

func (a *Attributes) Delete(name string) {
	if i := a.find(name); i >= 0 {
		a.items = append(a.items[:i], a.items[i+1:]...)
	}
}

func (a *Attributes) Len() int {
	return len(a.items)
}

// All returns a copy of the attributes in insertion order
func (a *Attributes) All() []Attribute {
	return append([]Attribute(nil), a.items...)
}

func (a *Attributes) clone() Attributes {
	return Attributes{items: a.All()}
}

type Manifest struct {
	Main     Attributes
	Sections []Attributes // each starts with its Name attribute
}

// NewManifest returns a manifest holding only the version attribute
func NewManifest() *Manifest {
	m := &Manifest{}
	m.Main.Set(AttrManifestVersion, DefaultManifestVersion)
	return m
}

func (m *Manifest) Clone() *Manifest {
	c := &Manifest{Main: m.Main.clone()}
	for i := range m.Sections {
		c.Sections = append(c.Sections, m.Sections[i].clone())
	}
	return c
}

// MainClass reports whether the attribute is present, even with an empty value
func (m *Manifest) MainClass() (string, bool) {
	return m.Main.Get(AttrMainClass)
}

func (m *Manifest) SetMainClass(className string) {
	m.Main.Set(AttrMainClass, className)
}

// EnsureVersion adds Manifest-Version when absent
func (m *Manifest) EnsureVersion() {
	if _, ok := m.Main.Get(AttrManifestVersion); !ok {
		m.Main.Set(AttrManifestVersion, DefaultManifestVersion)
	}
}

// ParseManifest reads a manifest, accepting CRLF, LF and CR line endings
func ParseManifest(data []byte) (*Manifest, error) {
	m := &Manifest{}
	current := &m.Main
	inMain := true
	sectionStarted := false
	lastName := ""

	lines := splitLines(data)
	for lineNo, line := range lines {
		if line == "" {
			if !inMain && sectionStarted {
				current = nil
			}
			inMain = false
			sectionStarted = false
			lastName = ""
			continue
		}

		if line[0] == ' ' {
			if lastName == "" {
				return nil, fmt.Errorf("manifest line %d: continuation without attribute", lineNo+1)
			}
			value, _ := current.Get(lastName)
			current.Set(lastName, value+line[1:])
			continue
		}

		name, value, ok := strings.Cut(line, ": ")
		if !ok || name == "" {
			return nil, fmt.Errorf("manifest line %d: invalid header %q", lineNo+1, line)
		}

		if !inMain && !sectionStarted {
			if !strings.EqualFold(name, AttrName) {
				return nil, fmt.Errorf("manifest line %d: section must start with %s, found %q", lineNo+1, AttrName, name)
			}
			m.Sections = append(m.Sections, Attributes{})
			current = &m.Sections[len(m.Sections)-1]
			sectionStarted = true
		}

		current.Set(name, value)
		lastName = name
	}

	return m, nil
}

func splitLines(data []byte) []string {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// WriteTo encodes the manifest with CRLF line endings and 72 byte lines
func (m *Manifest) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer

	// version attributes lead the main section
	for _, name := range []string{AttrManifestVersion, AttrSignatureVersion} {
		if value, ok := m.Main.Get(name); ok {
			writeAttribute(&buf, name, value)
		}
	}
	for _, attr := range m.Main.items {
		if strings.EqualFold(attr.Name, AttrManifestVersion) || strings.EqualFold(attr.Name, AttrSignatureVersion) {
			continue
		}
		writeAttribute(&buf, attr.Name, attr.Value)
	}
	buf.WriteString("\r\n")

	for _, section := range m.Sections {
		for _, attr := range section.items {
			writeAttribute(&buf, attr.Name, attr.Value)
		}
		buf.WriteString("\r\n")
	}

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

func (m *Manifest) Bytes() []byte {
	var buf bytes.Buffer
	m.WriteTo(&buf)
	return buf.Bytes()
}

// writeAttribute splits "name: value" into lines of at most 72 bytes,
// never cutting through a UTF-8 sequence
func writeAttribute(buf *bytes.Buffer, name, value string) {
	line := name + ": " + value
	limit := maxLineBytes
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		buf.WriteString(line[:cut])
		buf.WriteString("\r\n ")
		line = line[cut:]
		limit = maxLineBytes - 1
	}
	buf.WriteString(line)
	buf.WriteString("\r\n")
}
