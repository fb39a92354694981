package storage

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/youssefibrahim146/Volt/apperrors"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}

func uploadHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("parse multipart form: %v", err)
	}
	_, header, err := req.FormFile("image")
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	return header
}

func TestImageStoreSaveAndRemove(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), 5<<20)
	if err != nil {
		t.Fatalf("new image store: %v", err)
	}

	name, err := store.Save(uploadHeader(t, "fridge.png", pngHeader))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasSuffix(name, ".png") {
		t.Errorf("stored name = %q, want .png suffix", name)
	}
	if _, err := os.Stat(filepath.Join(store.Dir, name)); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}

	if err := store.Remove(store.PublicPath(name)); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(filepath.Join(store.Dir, name)); !os.IsNotExist(err) {
		t.Errorf("file still present after remove")
	}

	if err := store.Remove(name); err != nil {
		t.Errorf("removing a missing file: %v", err)
	}
}

func TestImageStoreRejectsNonImage(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), 5<<20)
	if err != nil {
		t.Fatalf("new image store: %v", err)
	}

	_, err = store.Save(uploadHeader(t, "notes.txt", []byte("just some plain text")))
	if err == nil {
		t.Fatal("expected error for non-image upload")
	}
	if apperrors.KindOf(err) != apperrors.KindValidation {
		t.Errorf("kind = %v, want KindValidation", apperrors.KindOf(err))
	}
}

func TestImageStoreRejectsOversized(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), 16)
	if err != nil {
		t.Fatalf("new image store: %v", err)
	}

	content := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{0}, 64)...)
	_, err = store.Save(uploadHeader(t, "big.png", content))
	if err == nil {
		t.Fatal("expected error for oversized upload")
	}
	if apperrors.KindOf(err) != apperrors.KindValidation {
		t.Errorf("kind = %v, want KindValidation", apperrors.KindOf(err))
	}
}

func TestImageStoreRequiresFile(t *testing.T) {
	store, err := NewImageStore(t.TempDir(), 5<<20)
	if err != nil {
		t.Fatalf("new image store: %v", err)
	}

	if _, err := store.Save(nil); apperrors.KindOf(err) != apperrors.KindValidation {
		t.Errorf("kind = %v, want KindValidation", apperrors.KindOf(err))
	}
}
