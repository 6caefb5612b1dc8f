// Package extract implements the streaming filter-extract pipeline: the
// archive body is spooled into the run's scratch directory, then ZIP entries
// are iterated one at a time, filtered against the target subfolder,
// re-rooted, and written to the output directory.
//
// Memory stays bounded by a single entry's content: the spool is a straight
// io.Copy to disk and the ZIP central directory holds entry headers only.
package extract

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"

	"github.com/repopick/repopick/internal/domain"
	"github.com/repopick/repopick/internal/utils"
)

// ArchiveFileName is the spool file created inside the scratch directory
const ArchiveFileName = "archive.zip"

// Extractor filters a repository ZIP archive down to one subfolder
type Extractor struct {
	fs     afero.Fs
	logger *utils.Logger
	quiet  bool
}

// ExtractorOptions contains options for creating an Extractor
type ExtractorOptions struct {
	Fs     afero.Fs
	Logger *utils.Logger
	Quiet  bool // suppress the download progress bar
}

// NewExtractor creates a new Extractor
func NewExtractor(opts ExtractorOptions) *Extractor {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Extractor{
		fs:     fs,
		logger: opts.Logger,
		quiet:  opts.Quiet,
	}
}

// Spool copies the archive body into the scratch directory and returns the
// spool file path. size is the expected byte count (-1 when unknown) and
// only drives progress display.
func (e *Extractor) Spool(body io.Reader, scratchDir string, size int64) (string, error) {
	spoolPath := filepath.Join(scratchDir, ArchiveFileName)

	f, err := e.fs.OpenFile(spoolPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return "", fmt.Errorf("create spool file: %w", err)
	}

	var w io.Writer = f
	if !e.quiet {
		bar := utils.NewProgressBar(size, utils.DescDownloading)
		defer func() { _ = bar.Finish() }()
		w = io.MultiWriter(f, bar)
	}

	if _, err := io.Copy(w, body); err != nil {
		f.Close()
		return "", fmt.Errorf("archive download failed: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close spool file: %w", err)
	}

	return spoolPath, nil
}

// Extract iterates the spooled archive and writes in-scope entries under
// outputDir. prefix is the archive's synthetic top-level directory
// (`<repo>-<branch>/`), subfolder the normalized filter path.
//
// Per-entry write failures are recorded in the outcome and do not abort the
// iteration. After the loop, an archive with no in-scope entry fails with
// domain.ErrSubfolderNotFound.
func (e *Extractor) Extract(archivePath, prefix, subfolder, outputDir string) (domain.ExtractionOutcome, error) {
	var outcome domain.ExtractionOutcome

	f, err := e.fs.Open(archivePath)
	if err != nil {
		return outcome, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return outcome, fmt.Errorf("stat archive: %w", err)
	}

	// ErrInsecurePath still yields a usable reader; entries that escape the
	// output directory are skipped in the loop below.
	zr, err := zip.NewReader(f, info.Size())
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return outcome, fmt.Errorf("decode archive: %w", err)
	}

	outClean := filepath.Clean(outputDir)

	for _, entry := range zr.File {
		rel, ok := strings.CutPrefix(entry.Name, prefix)
		if !ok || rel == "" {
			// Not under the archive root, or the root itself.
			continue
		}

		isDir := strings.HasSuffix(rel, "/")
		rel = strings.TrimSuffix(rel, "/")

		destRel, inScope := rerootPath(rel, subfolder)
		if !inScope {
			continue
		}
		outcome.MatchedAny = true

		dest := filepath.Join(outClean, filepath.FromSlash(destRel))
		if dest != outClean && !strings.HasPrefix(dest, outClean+string(filepath.Separator)) {
			// Entry path escapes the output directory.
			continue
		}

		if isDir {
			if err := e.fs.MkdirAll(dest, 0755); err != nil {
				outcome.RecordError(entry.Name, err)
			}
			continue
		}

		if err := e.writeEntry(entry, dest); err != nil {
			if e.logger != nil {
				e.logger.Warn().Str("entry", entry.Name).Err(err).Msg("Entry write failed")
			}
			outcome.RecordError(entry.Name, err)
			continue
		}
		outcome.FilesExtracted++
	}

	if !outcome.MatchedAny {
		return outcome, domain.ErrSubfolderNotFound
	}
	return outcome, nil
}

// rerootPath maps a repo-relative entry path onto its output-relative
// destination. The second return is false for out-of-scope entries.
func rerootPath(rel, subfolder string) (string, bool) {
	if rel == subfolder {
		return "", true
	}
	if strings.HasPrefix(rel, subfolder+"/") {
		return rel[len(subfolder)+1:], true
	}
	return "", false
}

func (e *Extractor) writeEntry(entry *zip.File, dest string) error {
	if err := utils.EnsureDir(e.fs, dest); err != nil {
		return fmt.Errorf("mkdir failed: %w", err)
	}

	mode := entry.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}

	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("open entry failed: %w", err)
	}
	defer rc.Close()

	out, err := e.fs.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create file failed: %w", err)
	}

	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("copy failed: %w", err)
	}
	return out.Close()
}
