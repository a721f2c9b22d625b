// Package archive streams directory trees to HTTP clients as zip files.
package archive

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/flate"

	"github.com/moyoez/localshare-go/tool"
)

// Stats summarises one archive run.
type Stats struct {
	Files   int
	Skipped int
	Bytes   int64
}

// errSinkWrite marks a failure writing to the response, which aborts the archive.
type errSinkWrite struct{ err error }

func (e errSinkWrite) Error() string { return "write archive: " + e.err.Error() }
func (e errSinkWrite) Unwrap() error { return e.err }

// sinkWriter tags write errors so they can be told apart from source read errors.
type sinkWriter struct{ w io.Writer }

func (s sinkWriter) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	if err != nil {
		return n, errSinkWrite{err}
	}
	return n, nil
}

// Stream writes dir as "<name>.zip" to w. Entries are the regular files of the tree,
// stored at "<name>/<relative path>" with maximum deflate compression.
// Each file is compressed to a temporary spool before it is written out.
// Unreadable files are logged and skipped; a failing response or a cancelled ctx
// stops the walk.
func Stream(ctx context.Context, w http.ResponseWriter, fsys FileSystem, dir, name string) (Stats, error) {
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", tool.AttachmentDisposition(name+".zip"))
	w.WriteHeader(http.StatusOK)

	zw := zip.NewWriter(sinkWriter{w})

	var stats Stats
	if err := addDir(ctx, zw, fsys, dir, name, &stats); err != nil {
		// The central directory is not written; the client sees a truncated zip.
		return stats, err
	}
	if err := zw.Close(); err != nil {
		return stats, fmt.Errorf("finalize archive: %w", err)
	}
	tool.DefaultLogger.Debugf("[Archive] %s.zip: %d files, %d skipped, %s", name, stats.Files, stats.Skipped, humanize.IBytes(uint64(stats.Bytes)))
	return stats, nil
}

// addDir walks dir depth-first, entries in name order.
func addDir(ctx context.Context, zw *zip.Writer, fsys FileSystem, dir, prefix string, stats *Stats) error {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		tool.DefaultLogger.Warnf("[Archive] Skipping unreadable directory %s: %v", dir, err)
		stats.Skipped++
		return nil
	}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		full := filepath.Join(dir, entry.Name())
		entryName := path.Join(prefix, entry.Name())
		if entry.IsDir() {
			if err := addDir(ctx, zw, fsys, full, entryName, stats); err != nil {
				return err
			}
			continue
		}
		if !entry.Type().IsRegular() {
			// symlinks and devices: follow only if they point at a regular file
			info, err := fsys.Stat(full)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		if err := addFile(ctx, zw, fsys, full, entryName, stats); err != nil {
			var sinkErr errSinkWrite
			if errors.As(err, &sinkErr) || ctx.Err() != nil {
				return err
			}
			tool.DefaultLogger.Warnf("[Archive] Skipping %s: %v", full, err)
			stats.Skipped++
		}
	}
	return nil
}

// addFile compresses full into a spool file first and only then writes the entry,
// so a read failure halfway through leaves nothing of the file in the archive.
func addFile(ctx context.Context, zw *zip.Writer, fsys FileSystem, full, entryName string, stats *Stats) error {
	info, err := fsys.Stat(full)
	if err != nil {
		return err
	}
	src, err := fsys.Open(full)
	if err != nil {
		return err
	}
	defer src.Close()

	spool, err := os.CreateTemp("", "localshare-zip-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = spool.Close()
		_ = os.Remove(spool.Name())
	}()

	fw, err := flate.NewWriter(spool, flate.BestCompression)
	if err != nil {
		return err
	}
	crc := crc32.NewIEEE()
	n, err := tool.CopyWithContext(ctx, io.MultiWriter(fw, crc), src)
	if err != nil {
		return err
	}
	if err := fw.Close(); err != nil {
		return err
	}
	compressed, err := spool.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}
	if _, err := spool.Seek(0, io.SeekStart); err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	header.Name = entryName
	header.Method = zip.Deflate
	header.CRC32 = crc.Sum32()
	header.UncompressedSize64 = uint64(n)
	header.CompressedSize64 = uint64(compressed)

	// From here on the entry is in the stream; any failure breaks the archive.
	dst, err := zw.CreateRaw(header)
	if err != nil {
		return errSinkWrite{err}
	}
	if _, err := io.Copy(dst, spool); err != nil {
		return errSinkWrite{err}
	}
	stats.Bytes += n
	stats.Files++
	return nil
}
