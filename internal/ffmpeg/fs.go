package ffmpeg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

// resolveInput normalizes the input path and verifies it names an existing
// regular file.
func resolveInput(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: empty path", ErrInputNotFound)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve input path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrInputNotFound, abs)
		}
		return "", fmt.Errorf("stat input: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s is not a regular file", ErrInputNotFound, abs)
	}
	return abs, nil
}

// siblingPath builds an output path next to the input, keeping the input
// extension unless ext overrides it.
func siblingPath(input, stemSuffix, ext string) string {
	base := filepath.Base(input)
	inputExt := filepath.Ext(base)
	stem := strings.TrimSuffix(base, inputExt)
	if ext == "" {
		ext = inputExt
	}
	return filepath.Join(filepath.Dir(input), stem+stemSuffix+ext)
}

func (c *CLI) checkFreeSpace(input string) error {
	if c.minFreeBytes == 0 {
		return nil
	}
	dir := filepath.Dir(input)
	free, err := c.freeSpace(dir)
	if err != nil {
		return fmt.Errorf("check free space in %s: %w", dir, err)
	}
	if free < c.minFreeBytes {
		return fmt.Errorf("%w: %d bytes free in %s, need %d", ErrInsufficientSpace, free, dir, c.minFreeBytes)
	}
	return nil
}

func realFreeSpace(path string) (uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, err
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}
