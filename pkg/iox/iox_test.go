package iox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.png")
	require.NoError(t, os.WriteFile(src, []byte("not really a png"), 0640))
	mtime := time.Date(2021, time.March, 4, 5, 6, 7, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	dst := filepath.Join(dir, "dst.png")
	n, err := CopyFile(dst, src)
	require.NoError(t, err)
	require.Equal(t, int64(16), n)

	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "not really a png", string(b))
	st, err := os.Stat(dst)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0640), st.Mode().Perm())
	require.True(t, st.ModTime().Equal(mtime))

	_, err = CopyFile(filepath.Join(dir, "x"), filepath.Join(dir, "missing"))
	require.Error(t, err)
	_, err = os.Stat(filepath.Join(dir, "x"))
	require.True(t, os.IsNotExist(err))
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "labels.txt")
	require.NoError(t, WriteFileAtomic(fn, []byte("a"), 0644))
	require.NoError(t, WriteFileAtomic(fn, []byte("b"), 0644))
	b, err := os.ReadFile(fn)
	require.NoError(t, err)
	require.Equal(t, "b", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.Error(t, WriteFileAtomic(filepath.Join(dir, "nodir", "x.txt"), []byte("a"), 0644))
}

func TestTempName(t *testing.T) {
	tmp := TempName("/out/labels/train/abc.txt")
	require.Equal(t, "/out/labels/train", filepath.Dir(tmp))
	require.True(t, strings.HasPrefix(filepath.Base(tmp), ".abc.txt.tmp-"))
}
