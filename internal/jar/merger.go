package jar

import (
	"archive/zip"
	"io"

	"go.uber.org/zap"
)

type MergeResult struct {
	Entries int      // entries written
	Skipped []string // manifests and repeated directories, as "archive!entry"
}

// Merger concatenates the entries of several jars into one, without a manifest
type Merger struct {
	logger *zap.Logger
}

func NewMerger(logger *zap.Logger) *Merger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Merger{logger: logger}
}

// Merge writes every entry of sources, in argument order, into dst. Each
// source's manifest is left out without being parsed. A directory written by
// an earlier source is skipped; a file name already written by an earlier
// source is an error. Sources are read before dst is
// written, so dst may also be one of the sources.
func (m *Merger) Merge(dst string, sources []string) (*MergeResult, error) {
	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	result := &MergeResult{}
	var plan []*Entry
	seen := make(map[string]string) // names written by earlier sources

	for _, path := range sources {
		archive, err := Read(path)
		if err != nil {
			return nil, err
		}
		m.logger.Debug("merging archive", zap.String("path", path), zap.Int("entries", len(archive.Entries())))

		// a name repeated within one source is copied as read
		added := make(map[string]bool)
		for _, entry := range archive.Entries() {
			name := entry.Name()
			if entry.IsManifest() {
				result.Skipped = append(result.Skipped, path+"!"+name)
				continue
			}
			if first, ok := seen[name]; ok {
				if entry.IsDir() {
					result.Skipped = append(result.Skipped, path+"!"+name)
					continue
				}
				return nil, &DuplicateEntryError{Name: name, First: first, Second: path}
			}
			added[name] = true
			plan = append(plan, entry)
		}

		for name := range added {
			seen[name] = path
		}
	}

	err := writeAtomic(dst, func(w io.Writer) error {
		zw := zip.NewWriter(w)
		for _, entry := range plan {
			if err := copyEntry(zw, entry); err != nil {
				return err
			}
		}
		return zw.Close()
	})
	if err != nil {
		return nil, err
	}

	result.Entries = len(plan)
	m.logger.Debug("merged archives", zap.String("path", dst), zap.Int("entries", result.Entries))
	return result, nil
}
