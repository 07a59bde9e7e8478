package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScriptForCodepoint(t *testing.T) {
	c := Default()
	tests := []struct {
		r      rune
		want   string
		wantOK bool
	}{
		{'a', "Latin", true},
		{'Ж', "Cyrillic", true},
		{'α', "Greek", true},
		{'क', "Devanagari", true},
		{'ب', "Arabic", true},
		{'0', "", false},
		{' ', "", false},
		{'́', "", false},
	}
	for _, tt := range tests {
		got, ok := c.ScriptForCodepoint(tt.r)
		assert.Equal(t, tt.wantOK, ok, "%U", tt.r)
		assert.Equal(t, tt.want, got, "%U", tt.r)
	}
}

func TestScriptForName(t *testing.T) {
	c := Default()
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"a", "Latin", true},
		{"germandbls", "Latin", true},
		{"aacute", "Latin", true},
		{"Scommaaccent", "Latin", true},
		{"alpha", "Greek", true},
		{"Omega", "Greek", true},
		{"uni0416", "Cyrillic", true},
		{"uni00660069", "Latin", true},
		{"u1F600", "", false},
		{"u10330", "Gothic", true},
		{"de-cy", "Cyrillic", true},
		{"ka-deva", "Devanagari", true},
		{"beh-ar", "Arabic", true},
		{"f_i", "Latin", true},
		{"alpha_beta", "Greek", true},
		{"zero", "", false},
		{"", "", false},
		{"uniXYZW", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.ScriptForName(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

type fakeCategorizer struct {
	codepoints map[rune]string
	names      map[string]string
	calls      []string
}

func (f *fakeCategorizer) ScriptForCodepoint(r rune) (string, bool) {
	f.calls = append(f.calls, "cp:"+string(r))
	s, ok := f.codepoints[r]
	return s, ok
}

func (f *fakeCategorizer) ScriptForName(name string) (string, bool) {
	f.calls = append(f.calls, "name:"+name)
	s, ok := f.names[name]
	return s, ok
}

func TestGlyphCodepointIsDecisive(t *testing.T) {
	f := &fakeCategorizer{names: map[string]string{"a": "Latin"}}
	got, ok := Glyph(f, "a", []rune{'a', 'b'})
	assert.False(t, ok)
	assert.Empty(t, got)
	assert.Equal(t, []string{"cp:a"}, f.calls)
}

func TestGlyphNameThenBaseName(t *testing.T) {
	f := &fakeCategorizer{names: map[string]string{"ka-deva": "Devanagari"}}
	got, ok := Glyph(f, "ka-deva.loclBENG", nil)
	assert.True(t, ok)
	assert.Equal(t, "Devanagari", got)
	assert.Equal(t, []string{"name:ka-deva.loclBENG", "name:ka-deva"}, f.calls)
}

func TestGlyphFullNameWins(t *testing.T) {
	f := &fakeCategorizer{names: map[string]string{"a.sc": "Latin", "a": "Greek"}}
	got, ok := Glyph(f, "a.sc", nil)
	assert.True(t, ok)
	assert.Equal(t, "Latin", got)
}

func TestGlyphUnknown(t *testing.T) {
	got, ok := Glyph(Default(), "zero.tf", nil)
	assert.False(t, ok)
	assert.Empty(t, got)
}
