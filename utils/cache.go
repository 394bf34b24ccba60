package utils

import (
	"os"
	"path/filepath"
)

const cacheDir = "uploads/cache"

// EnsureCacheDir creates the local content cache directory if it doesn't exist
func EnsureCacheDir() error {
	return os.MkdirAll(cacheDir, os.ModePerm)
}

// CachePath returns the full path for a file inside the cache directory
func CachePath(filename string) string {
	return filepath.Join(cacheDir, filename)
}

func WriteCacheFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func ReadCacheFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// RemoveCacheFile deletes a cached file, ignoring files already gone.
func RemoveCacheFile(path string) {
	_ = os.Remove(path)
}
