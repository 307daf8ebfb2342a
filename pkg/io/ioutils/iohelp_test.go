package ioutils

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestRoundTripPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	w, err := CreateMaybeCompressed(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := OpenMaybeCompressed(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "hello" {
		t.Fatalf("got %q", b)
	}
}

func TestRoundTripGzipByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt.gz")
	w, err := CreateMaybeCompressed(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	// the bytes on disk really are gzip
	raw, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := gzip.NewReader(raw); err != nil {
		t.Fatalf("not gzip on disk: %v", err)
	}
	_ = raw.Close()

	r, err := OpenMaybeCompressed(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "hello" {
		t.Fatalf("got %q", b)
	}
}

func TestGzipDetectedByMagicBytes(t *testing.T) {
	// gzip content under a non-.gz name
	path := filepath.Join(t.TempDir(), "f.dat")
	fh, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := gzip.NewWriter(fh)
	if _, err := zw.Write([]byte("hello")); err != nil {
		t.Fatal(err)
	}
	_ = zw.Close()
	_ = fh.Close()

	r, err := OpenMaybeCompressed(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "hello" {
		t.Fatalf("got %q", b)
	}
}
