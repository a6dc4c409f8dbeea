package jar

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoEntryPoint = errors.New("no entry point found: the archive contains no class with 'public static void main(String[])'")
	ErrNoSources    = errors.New("no source archives given")
)

// AmbiguousEntryPointError lists every candidate in discovery order
type AmbiguousEntryPointError struct {
	Candidates []string
}

func (e *AmbiguousEntryPointError) Error() string {
	return fmt.Sprintf("ambiguous entry point: %d classes contain 'public static void main(String[])': %s",
		len(e.Candidates), strings.Join(e.Candidates, " "))
}

// ArchiveIOError is a fatal failure reading or writing an archive
type ArchiveIOError struct {
	Op   string
	Path string
	Err  error
}

func (e *ArchiveIOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ArchiveIOError) Unwrap() error {
	return e.Err
}

// DuplicateEntryError reports a file entry present in more than one merged archive
type DuplicateEntryError struct {
	Name   string
	First  string
	Second string
}

func (e *DuplicateEntryError) Error() string {
	return fmt.Sprintf("duplicate entry %s: found in %s and %s", e.Name, e.First, e.Second)
}
