package util

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"vincit.fi/photo-triage/common/logger"
)

func DoesFileExist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// MakeDirectoriesIfNotExist creates every directory in dirs. New
// directories get the permissions of parentDir.
func MakeDirectoriesIfNotExist(parentDir string, dirs ...string) error {
	info, err := os.Stat(parentDir)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if !DoesFileExist(dir) {
			logger.Debug.Printf("Creating directory '%s'", dir)
			if err := os.MkdirAll(dir, info.Mode().Perm()); err != nil {
				return err
			}
		}
	}
	return nil
}

// MoveFile renames src to dst, falling back to copy and remove when
// the files live on different devices. A missing src is not an error.
func MoveFile(src string, dst string) error {
	logger.Debug.Printf("Moving '%s' to '%s'", src, dst)
	if _, err := os.Stat(src); errors.Is(err, os.ErrNotExist) {
		logger.Warn.Printf("File '%s' already gone", src)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return os.Remove(src)
}

// RemoveFile deletes path. A missing path is not an error.
func RemoveFile(path string) error {
	logger.Debug.Printf("Deleting '%s'", path)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func copyFile(src string, dst string) error {
	sourceFileStat, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !sourceFileStat.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	destination, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destination.Close()
	_, err = io.Copy(destination, source)
	return err
}
