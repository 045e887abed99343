package catalog

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"heliocat/internal/filetype"
	"heliocat/internal/fitshdr"
)

// NewFromFITSPath builds an entry from the FITS file at path.
//
// Only the first header block of the file is read; files with multiple
// header blocks contribute just their primary header. This mirrors the
// behavior downstream consumers already depend on.
func NewFromFITSPath(path, defaultWaveunit string) (*Entry, error) {
	header, err := fitshdr.ReadHeader(path)
	if err != nil {
		return nil, err
	}
	return NewFromHeader(header, defaultWaveunit, path)
}

// ScanOptions controls a directory scan.
type ScanOptions struct {
	// Recursive walks the full subtree instead of just the top level.
	Recursive bool
	// Pattern is a shell glob (*, ?, [seq]) applied to the full candidate
	// path before any file is opened. Empty means match everything.
	Pattern string
	// DefaultWaveunit is applied when a FITS header names no waveunit.
	DefaultWaveunit string
}

// ScannedEntry pairs an ingested entry with the file it came from.
type ScannedEntry struct {
	Entry *Entry
	Path  string
}

// EntriesFromDirectory lazily scans dir for FITS files and yields one
// entry per file.
//
// Candidates are filtered by the glob pattern first, then classified by
// content; files of unrecognized type and JPEG2000 files behind a wrong
// extension are skipped silently. No filesystem work happens until the
// sequence is advanced, each range performs a fresh traversal, and
// iteration order follows the underlying walk. The first ingestion or
// I/O failure ends the sequence after yielding its error.
func EntriesFromDirectory(dir string, opts ScanOptions) iter.Seq2[ScannedEntry, error] {
	pattern := opts.Pattern
	if pattern == "" {
		pattern = "*"
	}
	return func(yield func(ScannedEntry, error) bool) {
		scan := func(path string) (bool, error) {
			if !matchGlob(pattern, path) {
				return true, nil
			}
			kind, err := filetype.Detect(path)
			if err != nil {
				if errors.Is(err, filetype.ErrUnrecognizedFileType) ||
					errors.Is(err, filetype.ErrInvalidJPEG2000Extension) {
					return true, nil
				}
				return false, err
			}
			if kind != filetype.KindFITS {
				return true, nil
			}
			entry, err := NewFromFITSPath(path, opts.DefaultWaveunit)
			if err != nil {
				return false, err
			}
			return yield(ScannedEntry{Entry: entry, Path: path}, nil), nil
		}

		if !opts.Recursive {
			dirents, err := os.ReadDir(dir)
			if err != nil {
				yield(ScannedEntry{}, err)
				return
			}
			for _, dirent := range dirents {
				if dirent.IsDir() {
					continue
				}
				keep, err := scan(filepath.Join(dir, dirent.Name()))
				if err != nil {
					yield(ScannedEntry{}, err)
					return
				}
				if !keep {
					return
				}
			}
			return
		}

		walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			keep, err := scan(path)
			if err != nil {
				return err
			}
			if !keep {
				return fs.SkipAll
			}
			return nil
		})
		if walkErr != nil && !errors.Is(walkErr, fs.SkipAll) {
			yield(ScannedEntry{}, walkErr)
		}
	}
}

// matchGlob implements shell-glob matching where * crosses path
// separators, matching the whole candidate path like fnmatch does.
func matchGlob(pattern, s string) bool {
	p, i := 0, 0
	starP, starS := -1, 0
	for i < len(s) {
		if p < len(pattern) {
			matched := false
			switch pattern[p] {
			case '*':
				starP, starS = p, i
				p++
				continue
			case '?':
				matched = true
				p++
			case '[':
				if ok, next, valid := matchClass(pattern, p, s[i]); valid {
					if ok {
						matched = true
						p = next
					}
				} else if s[i] == '[' {
					matched = true
					p++
				}
			default:
				if pattern[p] == s[i] {
					matched = true
					p++
				}
			}
			if matched {
				i++
				continue
			}
		}
		if starP >= 0 {
			starS++
			i = starS
			p = starP + 1
			continue
		}
		return false
	}
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}
	return p == len(pattern)
}

// matchClass evaluates a [seq] character class starting at pattern[p].
// valid is false when the class has no closing bracket, in which case the
// bracket is a literal.
func matchClass(pattern string, p int, c byte) (bool, int, bool) {
	j := p + 1
	negate := false
	if j < len(pattern) && (pattern[j] == '!' || pattern[j] == '^') {
		negate = true
		j++
	}
	start := j
	for j < len(pattern) && (j == start || pattern[j] != ']') {
		j++
	}
	if j >= len(pattern) {
		return false, 0, false
	}
	in := false
	for k := start; k < j; k++ {
		if pattern[k+1] == '-' && k+2 < j {
			if pattern[k] <= c && c <= pattern[k+2] {
				in = true
			}
			k += 2
			continue
		}
		if pattern[k] == c {
			in = true
		}
	}
	return in != negate, j + 1, true
}
