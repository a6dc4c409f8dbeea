package jar

import (
	"go.uber.org/zap"

	"github.com/mabhi256/jvmch/internal/classfile/model"
	"github.com/mabhi256/jvmch/internal/classfile/parser"
)

// Candidate is a class entry holding at least one entry point method
type Candidate struct {
	ClassName string
	Entry     string
	Methods   []model.MethodDescriptor
}

// MalformedEntry is a .class entry that could not be parsed
type MalformedEntry struct {
	Entry string
	Err   error
}

type ScanResult struct {
	Classes    int
	Candidates []Candidate // archive order
	Malformed  []MalformedEntry
}

// CandidateNames returns the dotted class names in discovery order
func (r *ScanResult) CandidateNames() []string {
	names := make([]string, 0, len(r.Candidates))
	for _, c := range r.Candidates {
		names = append(names, c.ClassName)
	}
	return names
}

// IsCandidate reports whether the named entry holds an entry point
func (r *ScanResult) IsCandidate(entry string) bool {
	for _, c := range r.Candidates {
		if c.Entry == entry {
			return true
		}
	}
	return false
}

// scanEntryPoints parses every class entry. A class that fails to parse is
// recorded and skipped; failing to read an entry at all aborts the scan.
func scanEntryPoints(a *Archive, logger *zap.Logger) (*ScanResult, error) {
	result := &ScanResult{}

	for _, entry := range a.Entries() {
		if !entry.IsClass() {
			continue
		}
		result.Classes++

		content, err := a.readEntry(entry)
		if err != nil {
			return nil, err
		}

		methods, err := parser.FindEntryPoints(content)
		if err != nil {
			logger.Debug("skipping malformed class", zap.String("entry", entry.Name()), zap.Error(err))
			result.Malformed = append(result.Malformed, MalformedEntry{Entry: entry.Name(), Err: err})
			continue
		}
		if len(methods) == 0 {
			continue
		}

		logger.Debug("found entry point", zap.String("entry", entry.Name()), zap.Int("methods", len(methods)))
		result.Candidates = append(result.Candidates, Candidate{
			ClassName: entry.ClassName(),
			Entry:     entry.Name(),
			Methods:   methods,
		})
	}

	return result, nil
}
