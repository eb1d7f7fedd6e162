package clients

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGetURL_AbsoluteAndRelative(t *testing.T) {
	tmpDir := t.TempDir()

	c, err := NewLocalStorage(tmpDir, "/files", "http://example.com:8060")
	if err != nil {
		t.Fatalf("failed create storage: %v", err)
	}

	got, err := c.GetURL(context.Background(), "reporte.xlsx")
	if err != nil {
		t.Fatalf("get url: %v", err)
	}
	want := "http://example.com:8060/files/reporte.xlsx"
	if got != want {
		t.Fatalf("expected %s; got %s", want, got)
	}

	// without base url
	c2, _ := NewLocalStorage(tmpDir, "/files", "")
	if got2, _ := c2.GetURL(context.Background(), "b.xlsx"); got2 != "/files/b.xlsx" {
		t.Fatalf("expected /files/b.xlsx; got %s", got2)
	}
}

func TestSaveAndServeFileHandler(t *testing.T) {
	tmpDir := t.TempDir()
	c, err := NewLocalStorage(tmpDir, "/files", "")
	if err != nil {
		t.Fatalf("storage init: %v", err)
	}

	content := []byte("hello world")
	saved, err := c.Save(context.Background(), "reporte semanal.xlsx", content)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	// create handler as in main: serve file from BaseDir
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file := strings.TrimPrefix(r.URL.Path, "/files/")
		path := filepath.Join(c.BaseDir, file)
		if _, err := os.Stat(path); err != nil {
			http.NotFound(w, r)
			return
		}
		if idx := strings.IndexByte(file, '_'); idx >= 0 {
			file = file[idx+1:]
		}
		w.Header().Set("Content-Disposition", "attachment; filename=\""+file+"\"")
		http.ServeFile(w, r, path)
	})

	ts := httptest.NewServer(h)
	defer ts.Close()

	url, err := c.GetURL(context.Background(), saved)
	if err != nil {
		t.Fatalf("get url: %v", err)
	}

	resp, err := http.Get(ts.URL + url)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("bad status: %d", resp.StatusCode)
	}

	cd := resp.Header.Get("Content-Disposition")
	if !strings.Contains(cd, "reporte semanal.xlsx") {
		t.Fatalf("expected Content-Disposition with original filename, got %s", cd)
	}

	body, _ := io.ReadAll(resp.Body)
	if string(body) != string(content) {
		t.Fatalf("content mismatch: %s", string(body))
	}
}

func TestCleanupOlderThan(t *testing.T) {
	tmpDir := t.TempDir()
	c, err := NewLocalStorage(tmpDir, "/files", "")
	if err != nil {
		t.Fatalf("storage init: %v", err)
	}

	old, err := c.Save(context.Background(), "viejo.xlsx", []byte("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	oldPath := filepath.Join(c.BaseDir, old)
	past := time.Now().Add(-48 * time.Hour)
	if err := os.Chtimes(oldPath, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	fresh, err := c.Save(context.Background(), "nuevo.xlsx", []byte("y"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := c.CleanupOlderThan(24 * time.Hour); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	if _, err := os.Stat(oldPath); !os.IsNotExist(err) {
		t.Fatal("stale file should be removed")
	}
	if _, err := os.Stat(filepath.Join(c.BaseDir, fresh)); err != nil {
		t.Fatalf("fresh file must survive: %v", err)
	}
}
