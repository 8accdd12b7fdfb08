// Package archive packs a batch of processed images into a single zip
// stream for download.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"
)

// Entry is one named file to pack into the archive
type Entry struct {
	FileName string
	Data     []byte
}

// ExportName returns the archive filename for an export at the given local time
func ExportName(t time.Time) string {
	return fmt.Sprintf("framr-export-%s.zip", t.Format("2006-01-02-1504"))
}

// DedupNames resolves filename collisions deterministically by inserting _N
// before the extension, with N starting at 1 and incrementing until the name
// is unique
func DedupNames(names []string) []string {
	used := make(map[string]bool, len(names))
	deduped := make([]string, len(names))

	for i, name := range names {
		candidate := name

		extension := filepath.Ext(name)
		base := strings.TrimSuffix(name, extension)
		for n := 1; used[candidate]; n++ {
			candidate = fmt.Sprintf("%s_%d%s", base, n, extension)
		}

		used[candidate] = true
		deduped[i] = candidate
	}

	return deduped
}

// Write packs the entries into a zip archive on w, in order, with collided
// filenames de-duplicated. Progress is reported as a 0-100 percentage after
// each entry when a callback is given.
func Write(w io.Writer, entries []Entry, onProgress func(progress int)) error {
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.FileName
	}
	names = DedupNames(names)

	archive := zip.NewWriter(w)
	// Swap the stdlib deflate for the faster klauspost implementation, the
	// image payloads are already compressed so speed wins over ratio here.
	// Registered per-writer: the global zip.RegisterCompressor panics because
	// the stdlib pre-registers the built-in Deflate compressor.
	archive.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestSpeed)
	})

	for i, entry := range entries {
		file, err := archive.Create(names[i])
		if err != nil {
			return fmt.Errorf("error creating archive entry %s: %w", names[i], err)
		}

		if _, err := file.Write(entry.Data); err != nil {
			return fmt.Errorf("error writing archive entry %s: %w", names[i], err)
		}

		if onProgress != nil {
			onProgress(int(math.Round(float64(i+1) / float64(len(entries)) * 100)))
		}
	}

	return archive.Close()
}
