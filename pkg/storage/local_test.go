package storage

import (
	"bytes"
	"io"
	"testing"
)

func testLocalDisk(t *testing.T) *localDisk {
	t.Helper()
	return &localDisk{root: t.TempDir(), baseURL: "http://localhost:5000/uploads"}
}

func TestLocalPutGetRoundTrip(t *testing.T) {
	d := testLocalDisk(t)

	content := []byte("fake image bytes")
	if err := d.Put("products/1693526400-gobi.jpg", content); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := d.Get("products/1693526400-gobi.jpg")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("content mismatch: %q", got)
	}

	size, err := d.Size("products/1693526400-gobi.jpg")
	if err != nil || size != int64(len(content)) {
		t.Errorf("size = %d, %v", size, err)
	}
}

func TestLocalPutStream(t *testing.T) {
	d := testLocalDisk(t)

	if err := d.PutStream("a.txt", bytes.NewReader([]byte("hello"))); err != nil {
		t.Fatalf("put stream: %v", err)
	}
	rc, err := d.GetStream("a.txt")
	if err != nil {
		t.Fatalf("get stream: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if string(got) != "hello" {
		t.Errorf("got %q", got)
	}
}

func TestLocalExistsMissing(t *testing.T) {
	d := testLocalDisk(t)

	if d.Exists("nope.jpg") {
		t.Error("Exists on absent file")
	}
	if !d.Missing("nope.jpg") {
		t.Error("Missing on absent file")
	}
	if err := d.Put("yes.jpg", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if !d.Exists("yes.jpg") {
		t.Error("Exists after Put")
	}
}

func TestLocalDeleteIsIdempotent(t *testing.T) {
	d := testLocalDisk(t)

	if err := d.Put("img.jpg", []byte("x")); err != nil {
		t.Fatal(err)
	}
	if err := d.Delete("img.jpg"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := d.Delete("img.jpg"); err != nil {
		t.Fatalf("second delete must be a no-op, got: %v", err)
	}
}

func TestLocalURL(t *testing.T) {
	d := testLocalDisk(t)
	if got := d.URL("a/b.jpg"); got != "http://localhost:5000/uploads/a/b.jpg" {
		t.Errorf("url = %q", got)
	}
}
