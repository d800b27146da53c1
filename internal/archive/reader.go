package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// ErrBadArchive is returned when the uploaded bytes are not a readable zip.
var ErrBadArchive = errors.New("not a valid zip archive")

type Kind int

const (
	KindOther Kind = iota
	KindXML
	KindMedia
)

// Entry is one named file inside the package, classified by extension only.
// Content is never inspected at this stage.
type Entry struct {
	Name  string
	Kind  Kind
	Bytes []byte
}

var mediaExts = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "bmp": true,
	"svg": true, "webp": true, "tif": true, "tiff": true,
}

// Open reads a zip package and returns its file entries. Directory entries
// are skipped. A zip that cannot be decoded yields ErrBadArchive.
func Open(data []byte) ([]Entry, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadArchive, err)
	}
	entries := make([]Entry, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open %s: %v", ErrBadArchive, f.Name, err)
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrBadArchive, f.Name, err)
		}
		entries = append(entries, Entry{Name: f.Name, Kind: Classify(f.Name), Bytes: b})
	}
	return entries, nil
}

// Classify maps a file name to an entry kind by extension (case-insensitive).
func Classify(name string) Kind {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	switch {
	case ext == "xml":
		return KindXML
	case mediaExts[ext]:
		return KindMedia
	default:
		return KindOther
	}
}
