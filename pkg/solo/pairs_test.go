package solo

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"runtime"
	"testing"

	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, filename string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(filename), 0755))
	require.NoError(t, os.WriteFile(filename, []byte("{}"), 0644))
}

func TestAnnotationCandidates(t *testing.T) {
	candidates := slices.Collect(AnnotationCandidates("/data/seq1/step0.camera.png"))
	require.Equal(t, []string{
		"/data/seq1/step0.frame_data.json",
		"/data/seq1/step0.camera.frame_data.json",
	}, candidates)

	candidates = slices.Collect(AnnotationCandidates("/data/frame.jpg"))
	require.Equal(t, []string{"/data/frame.frame_data.json"}, candidates)
}

func TestFindAnnotationShortestPrefixWins(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "seq1.cam.png"))
	touch(t, filepath.Join(dir, "seq1.frame_data.json"))
	touch(t, filepath.Join(dir, "seq1.cam.frame_data.json"))

	found, ok := FindAnnotation(filepath.Join(dir, "seq1.cam.png"))
	require.True(t, ok)
	require.Equal(t, filepath.Join(dir, "seq1.frame_data.json"), found)

	// Only the longer candidate exists
	require.NoError(t, os.Remove(filepath.Join(dir, "seq1.frame_data.json")))
	found, ok = FindAnnotation(filepath.Join(dir, "seq1.cam.png"))
	require.True(t, ok)
	require.Equal(t, filepath.Join(dir, "seq1.cam.frame_data.json"), found)
}

func TestFindPairs(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "sequence.1", "step1.camera.png"))
	touch(t, filepath.Join(root, "sequence.1", "step1.frame_data.json"))
	touch(t, filepath.Join(root, "sequence.0", "step0.camera.JPG"))
	touch(t, filepath.Join(root, "sequence.0", "step0.camera.frame_data.json"))
	// No annotation: ignored
	touch(t, filepath.Join(root, "sequence.0", "step9.camera.jpeg"))
	// Not an image
	touch(t, filepath.Join(root, "sequence.0", "step0.camera.txt"))
	touch(t, filepath.Join(root, "sequence.0", "step0.frame_data.json.bak"))

	pairs, err := FindPairs(logs.NewTestingLog(t), root)
	require.NoError(t, err)
	require.Equal(t, []Pair{
		{
			Image:      filepath.Join(root, "sequence.0", "step0.camera.JPG"),
			Annotation: filepath.Join(root, "sequence.0", "step0.camera.frame_data.json"),
		},
		{
			Image:      filepath.Join(root, "sequence.1", "step1.camera.png"),
			Annotation: filepath.Join(root, "sequence.1", "step1.frame_data.json"),
		},
	}, pairs)
}

func TestFindPairsNone(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.png"))
	_, err := FindPairs(logs.NewTestingLog(t), root)
	var noPairs *NoPairsFoundError
	require.True(t, errors.As(err, &noPairs))
	require.Equal(t, root, noPairs.Root)
	require.Contains(t, err.Error(), root)
}

func TestIsImageFile(t *testing.T) {
	require.True(t, IsImageFile("a.png"))
	require.True(t, IsImageFile("a.b.JPEG"))
	require.True(t, IsImageFile("/x/y.Jpg"))
	require.False(t, IsImageFile("a.frame_data.json"))
	require.False(t, IsImageFile("png"))
	require.False(t, IsImageFile(".png"))
	require.False(t, IsImageFile("/x/.JPG"))
	require.True(t, IsImageFile("..png"))
}

func TestFindPairsIgnoresDotfiles(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, ".png"))
	touch(t, filepath.Join(root, ".frame_data.json"))
	touch(t, filepath.Join(root, "step0.png"))
	touch(t, filepath.Join(root, "step0.frame_data.json"))

	pairs, err := FindPairs(logs.NewTestingLog(t), root)
	require.NoError(t, err)
	require.Equal(t, []Pair{{Image: filepath.Join(root, "step0.png"), Annotation: filepath.Join(root, "step0.frame_data.json")}}, pairs)
}

func TestFindPairsUnreadableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}
	root := t.TempDir()
	touch(t, filepath.Join(root, "sequence.0", "step0.png"))
	touch(t, filepath.Join(root, "sequence.0", "step0.frame_data.json"))
	locked := filepath.Join(root, "sequence.1")
	touch(t, filepath.Join(locked, "step1.png"))
	touch(t, filepath.Join(locked, "step1.frame_data.json"))
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	pairs, err := FindPairs(logs.NewTestingLog(t), root)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	require.Equal(t, filepath.Join(root, "sequence.0", "step0.png"), pairs[0].Image)
}
