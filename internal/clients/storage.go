package clients

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ReportStore persists generated report artifacts and hands out download URLs.
// Implemented by LocalStorage and S3Store.
type ReportStore interface {
	Save(ctx context.Context, fileName string, data []byte) (string, error)
	GetURL(ctx context.Context, fileName string) (string, error)
}

// LocalStorage keeps report files on disk and serves them under a public
// prefix.
type LocalStorage struct {
	BaseDir      string
	PublicPrefix string
	BaseURL      string
}

func NewLocalStorage(baseDir, publicPrefix, baseURL string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./reportes"
	}
	if publicPrefix == "" {
		publicPrefix = "/files"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure storage dir %q: %w", baseDir, err)
	}
	return &LocalStorage{BaseDir: baseDir, PublicPrefix: publicPrefix, BaseURL: baseURL}, nil
}

// Save writes data under a collision-proof name and returns the stored name.
func (s *LocalStorage) Save(ctx context.Context, fileName string, data []byte) (string, error) {
	fileName = filepath.Base(fileName)

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}
	final := fmt.Sprintf("%s_%s", hex.EncodeToString(randBytes), fileName)

	path := filepath.Join(s.BaseDir, final)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("failed to finalize file: %w", err)
	}
	return final, nil
}

// GetURL builds the download URL for a stored file: absolute when BaseURL is
// configured, otherwise relative to the public prefix.
func (s *LocalStorage) GetURL(ctx context.Context, fileName string) (string, error) {
	prefix := s.PublicPrefix
	if prefix == "" {
		prefix = "/files"
	}
	if prefix[0] != '/' {
		prefix = "/" + prefix
	}
	if s.BaseURL != "" {
		base := strings.TrimSuffix(s.BaseURL, "/")
		return fmt.Sprintf("%s%s/%s", base, prefix, fileName), nil
	}
	return fmt.Sprintf("%s/%s", prefix, fileName), nil
}

// CleanupOlderThan removes stored files older than d.
func (s *LocalStorage) CleanupOlderThan(d time.Duration) error {
	now := time.Now()
	return filepath.WalkDir(s.BaseDir, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if de.IsDir() {
			return nil
		}
		info, err := de.Info()
		if err != nil {
			return nil
		}
		if now.Sub(info.ModTime()) > d {
			_ = os.Remove(path)
		}
		return nil
	})
}
