package ufo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleFont(t *testing.T) *Font {
	t.Helper()

	f := New()
	f.SetStyleName("Regular")
	f.Lib[PostscriptNamesKey] = map[string]interface{}{"a": "uni0061"}

	a := NewGlyph("a")
	a.Codepoints = []rune{'a'}
	a.Width = 500
	a.Anchors = []Anchor{{Name: "top", X: 250, Y: 500}}
	a.Contours = []Contour{{Points: []Point{
		{X: 0, Y: 0, Type: Move},
		{X: 100, Y: 0, Type: Line},
		{X: 150, Y: 50, Type: OffCurve},
		{X: 100, Y: 100, Type: QCurve, Smooth: true},
	}}}
	f.DefaultLayer().Insert(a)

	A := NewGlyph("A")
	A.Codepoints = []rune{'A'}
	A.Width = 600
	A.Height = 1000
	A.SetLib(VerticalOriginKey, 880.0)
	A.Components = []Component{
		{Base: "a", Transform: Identity},
		{Base: "acute", Transform: AffineTransform{XScale: 1, YScale: 1, XOffset: 10, YOffset: -20}},
	}
	f.DefaultLayer().Insert(A)

	bg, err := f.GetOrCreateLayer(BackgroundLayerName)
	require.NoError(t, err)
	bga := NewGlyph("a")
	bga.Width = 500
	bg.Insert(bga)

	return f
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Test-Regular.ufo")
	f := sampleFont(t)
	require.NoError(t, f.Save(dir))

	for _, name := range []string{"metainfo.plist", "fontinfo.plist", "lib.plist", "layercontents.plist", "glyphs/contents.plist", "glyphs/a.glif", "glyphs/A_.glif", "glyphs.public.background/a.glif"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	got, err := Load(dir)
	require.NoError(t, err)

	style, ok := got.StyleName()
	require.True(t, ok)
	assert.Equal(t, "Regular", style)
	assert.Equal(t, map[string]interface{}{"a": "uni0061"}, got.LibDict(PostscriptNamesKey))

	require.Len(t, got.Layers(), 2)
	assert.Equal(t, DefaultLayerName, got.DefaultLayer().Name())
	assert.Equal(t, BackgroundLayerName, got.Layers()[1].Name())

	a, ok := got.DefaultLayer().Glyph("a")
	require.True(t, ok)
	assert.Equal(t, f.layers[0].glyphs["a"], a)

	A, ok := got.DefaultLayer().Glyph("A")
	require.True(t, ok)
	assert.Equal(t, []Component{
		{Base: "a", Transform: Identity},
		{Base: "acute", Transform: AffineTransform{XScale: 1, YScale: 1, XOffset: 10, YOffset: -20}},
	}, A.Components)
	vo, ok := A.LibFloat(VerticalOriginKey)
	require.True(t, ok)
	assert.Equal(t, 880.0, vo)
	assert.Equal(t, 1000.0, A.Height)

	bga, ok := got.Layers()[1].Glyph("a")
	require.True(t, ok)
	assert.Equal(t, 500.0, bga.Width)
}

func TestLoadMissingMetainfo(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotAUFO))
}

func TestLoadNotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.ufo")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrNotAUFO)
}

const metainfo = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>formatVersion</key>
	<integer>2</integer>
</dict>
</plist>
`

const contents = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
	<key>a</key>
	<string>a.glif</string>
</dict>
</plist>
`

func TestLoadWithoutLayerContents(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metainfo.plist"), []byte(metainfo), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "glyphs"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "glyphs", "contents.plist"), []byte(contents), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "glyphs", "a.glif"), []byte(`<?xml version="1.0" encoding="UTF-8"?>
<glyph name="a" format="1">
  <advance width="480"/>
  <unicode hex="0061"/>
  <unicode hex="0061"/>
  <outline>
    <contour>
      <point x="240" y="520" type="move" name="top"/>
    </contour>
    <contour>
      <point x="0" y="0" type="line"/>
      <point x="10" y="0"/>
    </contour>
  </outline>
</glyph>
`), 0644))

	f, err := Load(dir)
	require.NoError(t, err)
	_, ok := f.StyleName()
	assert.False(t, ok)

	a, ok := f.DefaultLayer().Glyph("a")
	require.True(t, ok)
	assert.Equal(t, 480.0, a.Width)
	assert.Equal(t, []rune{'a'}, a.Codepoints)
	assert.Equal(t, []Anchor{{Name: "top", X: 240, Y: 520}}, a.Anchors)
	require.Len(t, a.Contours, 1)
	assert.Equal(t, []Point{{X: 0, Y: 0, Type: Line}, {X: 10, Y: 0, Type: OffCurve}}, a.Contours[0].Points)
}

func TestParseGlifErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed xml", `<glyph name="a"`},
		{"bad unicode", `<glyph name="a" format="2"><unicode hex="zz"/></glyph>`},
		{"bad point type", `<glyph name="a" format="2"><outline><contour><point x="0" y="0" type="spline"/></contour></outline></glyph>`},
		{"bad number", `<glyph name="a" format="2"><advance width="wide"/></glyph>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseGlif("a", []byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"a", false},
		{"a.sc", false},
		{"public.background", false},
		{"", true},
		{"a\x00b", true},
		{"tab\there", true},
		{"del\x7f", true},
		{"c1\u0085", true},
	}
	for _, tt := range tests {
		err := ValidateName(tt.name)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidName, "name %q", tt.name)
		} else {
			assert.NoError(t, err, "name %q", tt.name)
		}
	}
}

func TestGetOrCreateLayerRejectsBadName(t *testing.T) {
	f := New()
	_, err := f.GetOrCreateLayer("bad\x01")
	var nerr *NamingError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "layer", nerr.Kind)
	assert.Len(t, f.Layers(), 1)
}

func TestUserNameToFileName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"a", "a.glif"},
		{"A", "A_.glif"},
		{"AE", "A_E_.glif"},
		{".notdef", "_notdef.glif"},
		{"a/b", "a_b.glif"},
		{"con", "_con.glif"},
		{"a.con", "a._con.glif"},
	}
	for _, tt := range tests {
		existing := map[string]bool{}
		assert.Equal(t, tt.want, userNameToFileName(tt.name, "", ".glif", existing), tt.name)
	}
}

func TestUserNameToFileNameCollision(t *testing.T) {
	existing := map[string]bool{}
	first := userNameToFileName("a/b", "", ".glif", existing)
	second := userNameToFileName("a:b", "", ".glif", existing)
	assert.Equal(t, "a_b.glif", first)
	assert.Equal(t, "a_b000000000000001.glif", second)
}

func TestUserNameToFileNameLength(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	got := userNameToFileName(string(long), "", ".glif", map[string]bool{})
	assert.Len(t, got, maxFileNameLength)
}
