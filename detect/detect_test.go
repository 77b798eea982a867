package detect

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	editor "github.com/facenox/editor"
	"github.com/facenox/editor/internal/imageio"
)

func TestStatic(t *testing.T) {
	faces := Static{{Rect: editor.R(1, 2, 3, 4), Confidence: 0.5}}
	got, err := faces.DetectFaces(context.Background(), editor.ImageRef{})
	require.NoError(t, err)
	assert.Equal(t, []editor.Face(faces), got)

	got[0].Confidence = 1
	assert.Equal(t, 0.5, faces[0].Confidence, "result is a copy")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = faces.DetectFaces(ctx, editor.ImageRef{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSidecarParse(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		json    string
		want    []editor.Face
		wantErr bool
	}{
		{
			name: "two faces",
			json: `{"faces":[{"x":10,"y":20,"width":64,"height":80,"confidence":0.93},{"x":1.5,"y":2,"width":3,"height":4}]}`,
			want: []editor.Face{
				{Rect: editor.R(10, 20, 64, 80), Confidence: 0.93},
				{Rect: editor.R(1.5, 2, 3, 4)},
			},
		},
		{name: "no faces key", json: `{"model":"x"}`},
		{name: "empty list", json: `{"faces":[]}`},
		{
			name: "custom path",
			path: "result.detections",
			json: `{"result":{"detections":[{"x":0,"y":0,"width":5,"height":5,"confidence":1.4}]}}`,
			want: []editor.Face{{Rect: editor.R(0, 0, 5, 5), Confidence: 1.4}},
		},
		{name: "invalid json", json: `{"faces":[`, wantErr: true},
		{name: "not an array", json: `{"faces":{"x":1}}`, wantErr: true},
		{name: "missing width", json: `{"faces":[{"x":1,"y":1,"height":2}]}`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Sidecar{Path: tt.path}
			got, err := s.Parse([]byte(tt.json))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformed)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSidecarDetectFaces(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "photo.png")
	require.NoError(t, os.WriteFile(img+DefaultSuffix,
		[]byte(`{"faces":[{"x":4,"y":5,"width":6,"height":7,"confidence":0.8}]}`), 0o644))

	s := &Sidecar{}
	got, err := s.DetectFaces(context.Background(), editor.ImageRef{URI: imageio.FileURI(img)})
	require.NoError(t, err)
	assert.Equal(t, []editor.Face{{Rect: editor.R(4, 5, 6, 7), Confidence: 0.8}}, got)

	got, err = s.DetectFaces(context.Background(), editor.ImageRef{URI: filepath.Join(dir, "other.png")})
	require.NoError(t, err)
	assert.Empty(t, got, "missing sidecar means no faces")
}

func TestSidecarInSession(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "group.jpg")
	require.NoError(t, os.WriteFile(img+DefaultSuffix,
		[]byte(`{"faces":[{"x":0,"y":0,"width":10,"height":10},{"x":20,"y":0,"width":10,"height":10}]}`), 0o644))

	s := editor.NewSession(editor.NewEditState("", editor.ImageRef{URI: img}), editor.WithFaceDetector(&Sidecar{}))
	defer s.Close()

	s.Dispatch(editor.DetectFaces{})
	assert.Equal(t, editor.ShowMessage{Text: "2 face(s) detected"}, <-s.Effects())
	assert.Len(t, s.State().Faces, 2)
}
