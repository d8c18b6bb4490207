package iox

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteStreamToFile copies src into a new file. On failure, the partial file is removed.
func WriteStreamToFile(dstFilename string, src io.Reader) (int64, error) {
	dstFile, err := os.Create(dstFilename)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(dstFile, src)
	if err == nil {
		err = dstFile.Close()
	} else {
		dstFile.Close()
	}
	if err != nil {
		os.Remove(dstFilename)
		return 0, err
	}
	return n, nil
}

// CopyFile copies src to dst, and carries over the permission bits and modification time of src.
// Returns the number of bytes copied.
func CopyFile(dst, src string) (int64, error) {
	srcFile, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer srcFile.Close()
	st, err := srcFile.Stat()
	if err != nil {
		return 0, err
	}
	n, err := WriteStreamToFile(dst, srcFile)
	if err != nil {
		return 0, err
	}
	if err := os.Chmod(dst, st.Mode().Perm()); err != nil {
		os.Remove(dst)
		return 0, err
	}
	if err := os.Chtimes(dst, st.ModTime(), st.ModTime()); err != nil {
		os.Remove(dst)
		return 0, err
	}
	return n, nil
}

// TempName returns a hidden sibling of 'filename', for staging a write before renaming it into place
func TempName(filename string) string {
	return filepath.Join(filepath.Dir(filename), fmt.Sprintf(".%v.tmp-%v", filepath.Base(filename), os.Getpid()))
}

// WriteFileAtomic writes 'data' to a temporary file, and then renames it to 'filename',
// so that readers see either the old file or the complete new one.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	tmp := TempName(filename)
	if err := os.WriteFile(tmp, data, perm); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, filename); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
