// Copyright 2017-2018 The Argo Authors
// Modifications Copyright 2024-2025 Jacob Colvin
// Licensed under the Apache License, Version 2.0

package pathutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/assetref/pkg/pathutil"
)

// newLinkTree creates:
//
//	foo        regular file
//	bar -> foo
//	baz -> bar
//	bam -> baz
func newLinkTree(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foo"), []byte("foo"), 0o644))
	require.NoError(t, os.Symlink("foo", filepath.Join(dir, "bar")))
	require.NoError(t, os.Symlink("bar", filepath.Join(dir, "baz")))
	require.NoError(t, os.Symlink("baz", filepath.Join(dir, "bam")))

	return dir
}

func Test_resolveSymlinkRecursive(t *testing.T) {
	t.Parallel()

	testsDir := newLinkTree(t)

	t.Run("Resolve non-symlink", func(t *testing.T) {
		t.Parallel()
		r, err := pathutil.ResolveSymbolicLinkRecursive(testsDir+"/foo", 2)
		require.NoError(t, err)
		assert.Equal(t, testsDir+"/foo", r)
	})
	t.Run("Successfully resolve symlink", func(t *testing.T) {
		t.Parallel()
		r, err := pathutil.ResolveSymbolicLinkRecursive(testsDir+"/bar", 2)
		require.NoError(t, err)
		assert.Equal(t, testsDir+"/foo", r)
	})
	t.Run("Do not allow symlink at all", func(t *testing.T) {
		t.Parallel()
		r, err := pathutil.ResolveSymbolicLinkRecursive(testsDir+"/bar", 0)
		require.ErrorIs(t, err, pathutil.ErrMaxNestingLevelReached)
		assert.Empty(t, r)
	})
	t.Run("Error because too nested symlink", func(t *testing.T) {
		t.Parallel()
		r, err := pathutil.ResolveSymbolicLinkRecursive(testsDir+"/bam", 2)
		require.ErrorIs(t, err, pathutil.ErrMaxNestingLevelReached)
		assert.Empty(t, r)
	})
	t.Run("No such file or directory", func(t *testing.T) {
		t.Parallel()
		r, err := pathutil.ResolveSymbolicLinkRecursive(testsDir+"/foobar", 2)
		require.NoError(t, err)
		assert.Equal(t, testsDir+"/foobar", r)
	})
}

func TestIsWithin(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.uss")
	require.NoError(t, os.WriteFile(secret, []byte("x"), 0o644))

	root := newLinkTree(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, "Assets"), 0o755))
	require.NoError(t, os.Symlink(secret, filepath.Join(root, "Assets", "leak.uss")))
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "Linked")))

	tcs := map[string]struct {
		path string
		want bool
	}{
		"regular file":            {path: "foo", want: true},
		"symlink chain inside":    {path: "bam", want: true},
		"missing file inside":     {path: "Assets/missing.uss", want: true},
		"root itself":             {path: ".", want: true},
		"symlink leaves root":     {path: "Assets/leak.uss", want: false},
		"directory link leaves":   {path: "Linked/secret.uss", want: false},
		"dot dot escape":          {path: "../secret.uss", want: false},
		"absolute path elsewhere": {path: secret, want: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := pathutil.IsWithin(root, tc.path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCheckWithin(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	require.NoError(t, pathutil.CheckWithin(root, "Assets/a.uss"))
	require.ErrorIs(t, pathutil.CheckWithin(root, "../a.uss"), pathutil.ErrResolvedOutsideRoot)
}
