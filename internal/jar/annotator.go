package jar

import (
	"archive/zip"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

type AnnotateOptions struct {
	ForceOverwrite bool // recompute even when Main-Class is already set
	UseFirst       bool // pick the first candidate instead of failing on ambiguity
	Verbose        bool // diagnostics only, never changes the output
}

type AnnotateResult struct {
	MainClass string
	Unchanged bool // the source already had a Main-Class and was copied as is
	Scan      *ScanResult
}

// Annotator writes a Main-Class attribute into a jar's manifest
type Annotator struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewAnnotator(logger *zap.Logger) *Annotator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Annotator{logger: logger, now: time.Now}
}

// Annotate reads src, finds its entry point class and writes the annotated
// archive to dst. All decisions are made before dst is opened, and dst is
// replaced atomically, so a failure never leaves a partial destination.
func (a *Annotator) Annotate(src, dst string, opts AnnotateOptions) (*AnnotateResult, error) {
	log := a.logger
	if !opts.Verbose {
		log = zap.NewNop()
	}

	archive, err := Read(src)
	if err != nil {
		return nil, err
	}
	log.Info("read archive", zap.String("path", src), zap.Int("entries", len(archive.Entries())))

	manifest, err := archive.Manifest()
	if err != nil {
		return nil, err
	}
	if manifest != nil {
		if existing, ok := manifest.MainClass(); ok && !opts.ForceOverwrite {
			log.Info("main class already set, copying archive unchanged", zap.String("main_class", existing))
			if err := writeBytes(dst, archive.Data()); err != nil {
				return nil, err
			}
			return &AnnotateResult{MainClass: existing, Unchanged: true}, nil
		}
	}

	scan, err := scanEntryPoints(archive, log)
	if err != nil {
		return nil, err
	}
	log.Info("scanned classes",
		zap.Int("classes", scan.Classes),
		zap.Int("candidates", len(scan.Candidates)),
		zap.Int("malformed", len(scan.Malformed)))

	mainClass, err := chooseMainClass(scan, opts.UseFirst)
	if err != nil {
		return nil, err
	}
	log.Info("selected main class", zap.String("main_class", mainClass))

	if manifest == nil {
		manifest = NewManifest()
	} else {
		manifest = manifest.Clone()
		manifest.EnsureVersion()
	}
	manifest.SetMainClass(mainClass)

	err = writeAtomic(dst, func(w io.Writer) error {
		return a.writeAnnotated(w, archive, manifest)
	})
	if err != nil {
		return nil, err
	}
	log.Info("wrote archive", zap.String("path", dst))

	return &AnnotateResult{MainClass: mainClass, Scan: scan}, nil
}

func chooseMainClass(scan *ScanResult, useFirst bool) (string, error) {
	names := scan.CandidateNames()
	switch {
	case len(names) == 0:
		return "", ErrNoEntryPoint
	case len(names) > 1 && !useFirst:
		return "", &AmbiguousEntryPointError{Candidates: names}
	default:
		return names[0], nil
	}
}

// writeAnnotated emits the manifest ahead of every other entry (after a leading
// META-INF/ directory) so that stream readers find it, then copies the rest
func (a *Annotator) writeAnnotated(w io.Writer, archive *Archive, manifest *Manifest) error {
	zw := zip.NewWriter(w)
	if err := zw.SetComment(archive.Comment()); err != nil {
		return err
	}

	entries := archive.Entries()
	if len(entries) > 0 && strings.EqualFold(entries[0].Name(), MetaInfDir) {
		if err := copyEntry(zw, entries[0]); err != nil {
			return err
		}
		entries = entries[1:]
	}

	if err := writeManifest(zw, manifest, a.now()); err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsManifest() {
			continue
		}
		if err := copyEntry(zw, entry); err != nil {
			return err
		}
	}

	return zw.Close()
}
