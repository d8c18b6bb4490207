package solo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

var testClasses = ClassMap{0: "cube", 1: "cone"}

func frameLabels(t *testing.T, frame string, w, h int) []string {
	n := NewNormalizer(logs.NewTestingLog(t), testClasses)
	fn := filepath.Join(t.TempDir(), "step0.frame_data.json")
	require.NoError(t, os.WriteFile(fn, []byte(frame), 0644))
	lines, err := n.Lines(fn, w, h)
	require.NoError(t, err)
	return lines
}

func TestLabelsTopLevelAnnotations(t *testing.T) {
	frame := `{
		"annotations": [
			{"id": "semantic segmentation", "values": [{"label_id": 0, "x": 1, "y": 1, "width": 1, "height": 1}]},
			{"id": "bounding box", "values": [
				{"label_id": 1, "x": 10, "y": 20, "width": 40, "height": 60},
				{"label_id": 0, "x": 0, "y": 0, "width": 200, "height": 100}
			]}
		]
	}`
	require.Equal(t, []string{
		"1 0.150000 0.500000 0.200000 0.600000\n",
		"0 0.500000 0.500000 1.000000 1.000000\n",
	}, frameLabels(t, frame, 200, 100))
}

func TestLabelsCapturesSchema(t *testing.T) {
	frame := `{
		"frame": 3,
		"captures": [{
			"id": "camera",
			"annotations": [
				{"@type": "type.unity.com/unity.solo.BoundingBox2DAnnotation", "name": "bounding box", "data": [
					{"labelId": 1, "origin": [10, 20], "dimension": [40, 60]}
				]}
			]
		}]
	}`
	require.Equal(t, []string{"1 0.150000 0.500000 0.200000 0.600000\n"}, frameLabels(t, frame, 200, 100))
}

func TestLabelsBothShapesAgree(t *testing.T) {
	flat := `{"annotations": [{"id": "bounding box", "values": [{"label_id": 0, "x": 33, "y": 7, "width": 13, "height": 71}]}]}`
	nested := `{"annotations": [{"id": "bounding box", "values": [{"label_id": 0, "origin": [33, 7], "dimension": [13, 71]}]}]}`
	require.Equal(t, frameLabels(t, flat, 640, 480), frameLabels(t, nested, 640, 480))
}

func TestLabelsTopLevelTakesPrecedence(t *testing.T) {
	frame := `{
		"annotations": [{"id": "bounding box", "values": [{"label_id": 0, "x": 0, "y": 0, "width": 10, "height": 10}]}],
		"captures": [{"annotations": [{"id": "bounding box", "values": [{"label_id": 1, "x": 0, "y": 0, "width": 10, "height": 10}]}]}]
	}`
	require.Equal(t, []string{"0 0.050000 0.050000 0.100000 0.100000\n"}, frameLabels(t, frame, 100, 100))
}

func TestLabelsEmptyTopLevelFallsThrough(t *testing.T) {
	frame := `{
		"annotations": [],
		"captures": [{"annotations": [{"id": "bounding box", "values": [{"label_id": 1, "x": 0, "y": 0, "width": 10, "height": 10}]}]}]
	}`
	require.Equal(t, []string{"1 0.050000 0.050000 0.100000 0.100000\n"}, frameLabels(t, frame, 100, 100))
}

func TestLabelsDropping(t *testing.T) {
	frame := `{"annotations": [{"id": "bounding box", "values": [
		{"label_id": 7, "x": 0, "y": 0, "width": 10, "height": 10},
		{"x": 0, "y": 0, "width": 10, "height": 10},
		{"label_id": 0, "center": [5, 5], "size": [10, 10]},
		{"label_id": 0, "origin": [5], "dimension": [10, 10]},
		{"label_id": 1.0, "x": 50, "y": 50, "width": 10, "height": 10},
		{"labelId": "0", "x": 0, "y": 0, "width": 100, "height": 100}
	]}]}`
	require.Equal(t, []string{
		"1 0.550000 0.550000 0.100000 0.100000\n",
		"0 0.500000 0.500000 1.000000 1.000000\n",
	}, frameLabels(t, frame, 100, 100))
}

func TestLabelsNoEntries(t *testing.T) {
	require.Empty(t, frameLabels(t, `{}`, 100, 100))
	require.Empty(t, frameLabels(t, `{"captures": []}`, 100, 100))
	require.Empty(t, frameLabels(t, `{"captures": [{"annotations": []}]}`, 100, 100))
	require.Empty(t, frameLabels(t, `{"annotations": [{"id": "bounding box", "values": []}]}`, 100, 100))
}

func TestLabelsUnreadable(t *testing.T) {
	n := NewNormalizer(logs.NewTestingLog(t), testClasses)
	dir := t.TempDir()
	_, err := n.Labels(filepath.Join(dir, "missing.frame_data.json"), 100, 100)
	require.Error(t, err)

	fn := filepath.Join(dir, "broken.frame_data.json")
	require.NoError(t, os.WriteFile(fn, []byte(`{"annotations": [`), 0644))
	_, err = n.Labels(fn, 100, 100)
	require.Error(t, err)
}

func TestParseBox(t *testing.T) {
	box, err := ParseBox(gjson.Parse(`{"label_id": 4, "x": 1.5, "y": 2, "width": 3, "height": 4}`))
	require.NoError(t, err)
	require.Equal(t, 4, box.LabelID)
	require.Equal(t, 1.5, box.Rect.X)
	require.Equal(t, 4.0, box.Rect.Height)

	_, err = ParseBox(gjson.Parse(`{"x": 1, "y": 2, "width": 3, "height": 4}`))
	require.ErrorIs(t, err, ErrMissingLabelID)

	_, err = ParseBox(gjson.Parse(`{"label_id": 2.5, "x": 1, "y": 2, "width": 3, "height": 4}`))
	require.ErrorIs(t, err, ErrMissingLabelID)

	_, err = ParseBox(gjson.Parse(`{"label_id": 4, "x": 1, "y": 2}`))
	var unrecognized *UnrecognizedBoxFormatError
	require.True(t, errors.As(err, &unrecognized))
	require.Contains(t, unrecognized.Box, `"label_id": 4`)
}
