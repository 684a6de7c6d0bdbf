// Copyright 2017-2018 The Argo Authors
// Modifications Copyright 2024-2025 Jacob Colvin
// Licensed under the Apache License, Version 2.0

package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxSymlinkDepth is the nesting limit used by [IsWithin].
const MaxSymlinkDepth = 10

var (
	ErrMaxNestingLevelReached = errors.New("maximum nesting level reached")
	ErrResolvedOutsideRoot    = errors.New("file resolved to outside project root")
)

// ResolveSymbolicLinkRecursive resolves the symlink path recursively to its
// canonical path on the file system, with a maximum nesting level of maxDepth.
// If path is not a symlink, returns the verbatim copy of path and err of nil.
func ResolveSymbolicLinkRecursive(path string, maxDepth int) (string, error) {
	resolved, err := os.Readlink(path)
	if err != nil {
		// path is not a symbolic link
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return path, nil
		}

		return "", fmt.Errorf("failed to read link for path '%s': %w", path, err)
	}

	if maxDepth == 0 {
		return "", ErrMaxNestingLevelReached
	}

	// Relative link targets are relative to the directory holding the link.
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(path), resolved)
	}

	return ResolveSymbolicLinkRecursive(resolved, maxDepth-1)
}

// IsWithin reports whether path, once symlinks are resolved, is root itself
// or lies below root. A relative path is taken relative to root.
func IsWithin(root, path string) (bool, error) {
	absRoot, err := canonicalDir(root)
	if err != nil {
		return false, err
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(absRoot, path)
	}

	delinked, err := ResolveSymbolicLinkRecursive(path, MaxSymlinkDepth)
	if err != nil {
		return false, err
	}

	// Links in parent directories can also move the file elsewhere.
	if dir, err := filepath.EvalSymlinks(filepath.Dir(delinked)); err == nil {
		delinked = filepath.Join(dir, filepath.Base(delinked))
	}

	delinked = filepath.Clean(delinked)
	if delinked == absRoot {
		return true, nil
	}

	// Ensure our root path has a trailing slash, otherwise the following check
	// would return true if root is /foo and path would be /foo2
	requiredRootPath := absRoot
	if !strings.HasSuffix(requiredRootPath, string(os.PathSeparator)) {
		requiredRootPath += string(os.PathSeparator)
	}

	return strings.HasPrefix(delinked, requiredRootPath), nil
}

// CheckWithin is like [IsWithin], but returns [ErrResolvedOutsideRoot] when
// path escapes root.
func CheckWithin(root, path string) error {
	ok, err := IsWithin(root, path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}

	if !ok {
		return fmt.Errorf("%w: %s", ErrResolvedOutsideRoot, path)
	}

	return nil
}

func canonicalDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("get absolute path: %w", err)
	}

	if real, err := filepath.EvalSymlinks(abs); err == nil {
		abs = real
	}

	return filepath.Clean(abs), nil
}
