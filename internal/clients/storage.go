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

// LocalStorage keeps generated files on disk and serves them under PublicPrefix.
type LocalStorage struct {
	BaseDir      string
	PublicPrefix string
	BaseURL      string // optional scheme+host[:port] for absolute URLs
}

// NewLocalStorage creates baseDir if it is missing.
func NewLocalStorage(baseDir, publicPrefix, baseURL string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./exports"
	}
	if publicPrefix == "" {
		publicPrefix = "/files"
	}
	if !strings.HasPrefix(publicPrefix, "/") {
		publicPrefix = "/" + publicPrefix
	}

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure storage dir %q: %w", baseDir, err)
	}

	return &LocalStorage{
		BaseDir:      baseDir,
		PublicPrefix: strings.TrimSuffix(publicPrefix, "/"),
		BaseURL:      strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Save writes data under a random prefix and returns the stored file name.
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

func (s *LocalStorage) GetURL(fileName string) string {
	if s.BaseURL != "" {
		return fmt.Sprintf("%s%s/%s", s.BaseURL, s.PublicPrefix, fileName)
	}
	return fmt.Sprintf("%s/%s", s.PublicPrefix, fileName)
}

// Store saves the file and returns its public URL.
func (s *LocalStorage) Store(ctx context.Context, fileName string, data []byte) (string, error) {
	saved, err := s.Save(ctx, fileName, data)
	if err != nil {
		return "", err
	}
	return s.GetURL(saved), nil
}

// Open resolves a stored file name inside BaseDir. Names that would escape
// the directory are rejected.
func (s *LocalStorage) Open(fileName string) (string, error) {
	if fileName == "" || fileName != filepath.Base(fileName) || strings.HasPrefix(fileName, ".") {
		return "", fs.ErrNotExist
	}
	path := filepath.Join(s.BaseDir, fileName)
	if _, err := os.Stat(path); err != nil {
		return "", err
	}
	return path, nil
}

// OriginalName strips the random prefix added by Save.
func OriginalName(stored string) string {
	if idx := strings.IndexByte(stored, '_'); idx >= 0 {
		return stored[idx+1:]
	}
	return stored
}

// CleanupOlderThan deletes files older than d.
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
