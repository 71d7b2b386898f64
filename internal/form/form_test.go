package form

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpecs_CoverEveryKey(t *testing.T) {
	var f Fields
	seen := make(map[Key]bool)
	for _, s := range Specs {
		require.False(t, seen[s.Key], "duplicate spec %s", s.Key)
		seen[s.Key] = true

		require.True(t, f.Set(s.Key, "value-"+string(s.Key)), "Set(%s)", s.Key)
		assert.Equal(t, "value-"+string(s.Key), f.Get(s.Key))
	}
	assert.Len(t, seen, 20)
}

func TestFields_UnknownKey(t *testing.T) {
	f := Defaults()
	assert.False(t, f.Set("nope", "x"))
	assert.Equal(t, "", f.Get("nope"))
	assert.Equal(t, Defaults(), f)
}

func TestFields_VisualSpecsMatchClearVisual(t *testing.T) {
	f := Defaults()
	f.ClearVisual()
	for _, s := range Specs {
		if s.Visual {
			assert.Empty(t, f.Get(s.Key), "%s should be cleared", s.Key)
		}
	}
	assert.Equal(t, "UNLOCK YOUR POTENTIAL", f.Header)
}

func TestFields_Bullet(t *testing.T) {
	f := Defaults()
	assert.Equal(t, [3]string{"Deep Work: Focus on one high-impact task at a time.", "Take regular breaks to recharge.", ""}, f.Bullet(3))
	assert.Equal(t, [3]string{}, f.Bullet(0))
	assert.Equal(t, [3]string{}, f.Bullet(5))
}

func TestSections_EveryFieldHasASection(t *testing.T) {
	numbers := make(map[int]bool)
	for _, s := range Sections() {
		numbers[s.Number] = true
	}
	for _, s := range Specs {
		assert.True(t, numbers[s.Section], "%s in unknown section %d", s.Key, s.Section)
	}
	_, ok := Lookup(KeyFooter)
	assert.True(t, ok)
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 3, 4))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	require.NoError(t, png.Encode(&buf, img))

	pngPath := filepath.Join(dir, "plantilla.png")
	require.NoError(t, os.WriteFile(pngPath, buf.Bytes(), 0644))

	asset, err := LoadTemplate(pngPath)
	require.NoError(t, err)
	assert.Equal(t, "plantilla.png", asset.Name)
	assert.Equal(t, "image/png", asset.MIMEType)
	assert.Equal(t, buf.Bytes(), asset.Data)

	txtPath := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("not an image at all"), 0644))
	_, err = LoadTemplate(txtPath)
	assert.True(t, errors.Is(err, ErrNotImage), "got %v", err)

	_, err = LoadTemplate(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

func TestFormFile_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "forms", "post.yaml")

	f := Defaults()
	f.TitleLine3 = "Ünïcode: ¿listo?"
	require.NoError(t, SaveFile(path, f))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, f, loaded)
}

func TestParse_PartialFile(t *testing.T) {
	f, err := Parse([]byte("header: X\ntitleLine1: Y\n"))
	require.NoError(t, err)
	assert.Equal(t, Fields{Header: "X", TitleLine1: "Y"}, f)

	_, err = Parse([]byte("header: [unterminated"))
	assert.Error(t, err)
}

func TestFields_ApplyTemplate(t *testing.T) {
	f := Defaults()
	f.ApplyTemplate(nil)
	assert.NotEmpty(t, f.SheetColor, "nil template must leave fields alone")

	f.ApplyTemplate(&TemplateAsset{Name: "t.png", MIMEType: "image/png", Data: []byte{1}})
	assert.Empty(t, f.SheetColor)
	assert.Empty(t, f.Texture)
	assert.Empty(t, f.OtherDetails)
	assert.Equal(t, Defaults().Header, f.Header)
}
