package jar

import (
	"archive/zip"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

type EntryKind int

const (
	KindDirectory EntryKind = iota
	KindManifest
	KindClass
	KindResource
)

func (k EntryKind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindManifest:
		return "manifest"
	case KindClass:
		return "class"
	default:
		return "resource"
	}
}

type EntryInfo struct {
	Name           string
	Kind           EntryKind
	Size           uint64
	CompressedSize uint64
	Method         uint16
	Modified       time.Time
	EntryPoint     bool
	Malformed      bool
}

func (e EntryInfo) MethodName() string {
	switch e.Method {
	case zip.Store:
		return "stored"
	case zip.Deflate:
		return "deflated"
	default:
		return "other"
	}
}

// PackageStat aggregates entries under one top-level directory
type PackageStat struct {
	Name    string
	Entries int
	Size    uint64
}

type Report struct {
	Path           string
	Entries        []EntryInfo
	Classes        int
	Resources      int
	Directories    int
	Size           uint64
	CompressedSize uint64
	Packages       []PackageStat // largest first
	Manifest       *Manifest
	MainClass      string // Main-Class already present in the manifest
	Scan           *ScanResult
}

// Inspect summarizes an archive without writing anything
func Inspect(path string, logger *zap.Logger) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	archive, err := Read(path)
	if err != nil {
		return nil, err
	}

	scan, err := scanEntryPoints(archive, logger)
	if err != nil {
		return nil, err
	}

	malformed := make(map[string]bool, len(scan.Malformed))
	for _, m := range scan.Malformed {
		malformed[m.Entry] = true
	}

	manifest, err := archive.Manifest()
	if err != nil {
		return nil, err
	}

	report := &Report{
		Path:     path,
		Manifest: manifest,
		Scan:     scan,
	}
	if report.Manifest != nil {
		report.MainClass, _ = report.Manifest.MainClass()
	}

	packages := make(map[string]*PackageStat)
	for _, entry := range archive.Entries() {
		header := entry.Header()
		info := EntryInfo{
			Name:           entry.Name(),
			Size:           entry.Size(),
			CompressedSize: entry.CompressedSize(),
			Method:         header.Method,
			Modified:       header.Modified,
		}

		switch {
		case entry.IsDir():
			info.Kind = KindDirectory
			report.Directories++
		case entry.IsManifest():
			info.Kind = KindManifest
		case entry.IsClass():
			info.Kind = KindClass
			info.EntryPoint = scan.IsCandidate(entry.Name())
			info.Malformed = malformed[entry.Name()]
			report.Classes++
		default:
			info.Kind = KindResource
			report.Resources++
		}

		report.Size += info.Size
		report.CompressedSize += info.CompressedSize
		report.Entries = append(report.Entries, info)

		if info.Kind == KindDirectory {
			continue
		}
		name := topLevel(info.Name)
		stat, ok := packages[name]
		if !ok {
			stat = &PackageStat{Name: name}
			packages[name] = stat
		}
		stat.Entries++
		stat.Size += info.Size
	}

	for _, stat := range packages {
		report.Packages = append(report.Packages, *stat)
	}
	sort.Slice(report.Packages, func(i, j int) bool {
		if report.Packages[i].Size == report.Packages[j].Size {
			return report.Packages[i].Name < report.Packages[j].Name
		}
		return report.Packages[i].Size > report.Packages[j].Size
	})

	return report, nil
}

func topLevel(name string) string {
	if dir, _, ok := strings.Cut(name, "/"); ok {
		return dir + "/"
	}
	return "(root)"
}
