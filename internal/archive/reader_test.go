package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
)

func buildZip(t *testing.T, files map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestOpenClassifiesEntries(t *testing.T) {
	pkg := buildZip(t, map[string][]byte{
		"quiz.xml":          []byte("<questestinterop/>"),
		"media/map.PNG":     {0x89, 0x50},
		"media/photo.jpeg":  {0xff, 0xd8},
		"imsmanifest.txt":   []byte("ignore me"),
		"notes/readme.html": []byte("<html/>"),
	})

	entries, err := Open(pkg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	kinds := map[string]Kind{}
	for _, e := range entries {
		kinds[e.Name] = e.Kind
	}
	if kinds["quiz.xml"] != KindXML {
		t.Fatalf("quiz.xml classified as %v", kinds["quiz.xml"])
	}
	if kinds["media/map.PNG"] != KindMedia {
		t.Fatalf("map.PNG classified as %v", kinds["media/map.PNG"])
	}
	if kinds["media/photo.jpeg"] != KindMedia {
		t.Fatalf("photo.jpeg classified as %v", kinds["media/photo.jpeg"])
	}
	if kinds["imsmanifest.txt"] != KindOther || kinds["notes/readme.html"] != KindOther {
		t.Fatalf("non-media, non-xml entries should be KindOther: %v", kinds)
	}
}

func TestOpenSkipsDirectories(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if _, err := zw.Create("media/"); err != nil {
		t.Fatal(err)
	}
	w, _ := zw.Create("media/a.png")
	_, _ = w.Write([]byte{1})
	_ = zw.Close()

	entries, err := Open(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "media/a.png" {
		t.Fatalf("expected only the file entry, got %+v", entries)
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	_, err := Open([]byte("this is not a zip"))
	if !errors.Is(err, ErrBadArchive) {
		t.Fatalf("expected ErrBadArchive, got %v", err)
	}
}

func TestOpenPreservesBytes(t *testing.T) {
	payload := []byte{0x89, 0x50, 0x4e, 0x47, 0x00, 0x01}
	pkg := buildZip(t, map[string][]byte{"img.png": payload})
	entries, err := Open(pkg)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(entries[0].Bytes, payload) {
		t.Fatalf("entry bytes mangled: %v", entries[0].Bytes)
	}
}
