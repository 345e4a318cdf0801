package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrManifestMissing = errors.New("archive has no " + ManifestEntry + " entry")
	ErrManifestInvalid = errors.New("manifest is missing required fields")
)

// SanitizeEntryName flattens a storage path into a valid single zip entry
// name by replacing path separators.
func SanitizeEntryName(path string) string {
	return strings.ReplaceAll(path, "/", "_")
}

// Writer accumulates the manifest and attachment bytes in memory and
// finalizes them into a single zip.
type Writer struct {
	buf *bytes.Buffer
	zw  *zip.Writer
}

func NewWriter() *Writer {
	buf := new(bytes.Buffer)
	return &Writer{buf: buf, zw: zip.NewWriter(buf)}
}

// AddFile stores attachment bytes under files/<sanitized-path> and returns
// the zip path recorded in the manifest's file table.
func (w *Writer) AddFile(originalPath string, data []byte) (string, error) {
	entry := FilesPrefix + SanitizeEntryName(originalPath)
	f, err := w.zw.Create(entry)
	if err != nil {
		return "", fmt.Errorf("create zip entry %s: %w", entry, err)
	}
	if _, err := f.Write(data); err != nil {
		return "", fmt.Errorf("write zip entry %s: %w", entry, err)
	}
	return entry, nil
}

// Finalize writes the manifest as pretty-printed JSON and closes the zip,
// returning the archive bytes.
func (w *Writer) Finalize(m *Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	f, err := w.zw.Create(ManifestEntry)
	if err != nil {
		return nil, fmt.Errorf("create manifest entry: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}
	if err := w.zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return w.buf.Bytes(), nil
}

// Reader opens a backup archive and exposes its manifest and attachments.
type Reader struct {
	zr       *zip.Reader
	manifest *Manifest
}

// NewReader parses the archive and validates the manifest. A missing
// manifest entry or missing required fields (version, group name) is fatal.
func NewReader(r io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	var mf *zip.File
	for _, f := range zr.File {
		if f.Name == ManifestEntry {
			mf = f
			break
		}
	}
	if mf == nil {
		return nil, ErrManifestMissing
	}

	rc, err := mf.Open()
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer rc.Close()

	var m Manifest
	if err := json.NewDecoder(rc).Decode(&m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Version == "" || m.Group.Name == "" {
		return nil, ErrManifestInvalid
	}

	return &Reader{zr: zr, manifest: &m}, nil
}

func (r *Reader) Manifest() *Manifest { return r.manifest }

// ReadFile returns the bytes of an attachment entry by its zip path.
func (r *Reader) ReadFile(zipPath string) ([]byte, error) {
	for _, f := range r.zr.File {
		if f.Name == zipPath {
			rc, err := f.Open()
			if err != nil {
				return nil, fmt.Errorf("open %s: %w", zipPath, err)
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("entry %s not found", zipPath)
}
