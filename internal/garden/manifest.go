package garden

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/danieljhkim/fontgarden/internal/filenames"
)

const (
	manifestPrefix = "set."
	manifestExt    = ".csv"
)

// manifestHeader is the exact column order written to every manifest.
var manifestHeader = []string{"name", "postscript_name", "codepoints", "opentype_category"}

// manifestRecord is one row of a set manifest.
type manifestRecord struct {
	Name           string
	PostscriptName string
	Codepoints     Codepoints
	Category       Category
}

// manifestFileName returns the file name of the manifest for a set.
func manifestFileName(set string) string {
	return manifestPrefix + filenames.Encode(set) + manifestExt
}

// setFromManifestFileName returns the set a manifest file belongs to, or false
// if the file is not a manifest.
func setFromManifestFileName(name string) (string, bool) {
	if !strings.HasSuffix(name, manifestExt) || !strings.HasPrefix(name, manifestPrefix) {
		return "", false
	}
	encoded := strings.TrimSuffix(strings.TrimPrefix(name, manifestPrefix), manifestExt)
	if encoded == "" {
		return "", false
	}
	return filenames.Decode(encoded), true
}

// encodeManifest renders the manifest of the given glyphs, in the given
// order.
func encodeManifest(p *Project, names []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(manifestHeader); err != nil {
		return nil, err
	}
	for _, name := range names {
		g := p.Glyphs[name]
		row := []string{name, g.PostscriptName, g.Codepoints.String(), g.Category.String()}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("glyph %q: %w", name, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeManifest parses a manifest. Columns are matched by header name; rows
// shorter than the header leave the missing columns empty.
func decodeManifest(r io.Reader) ([]manifestRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.TrimSpace(h)] = i
	}
	if _, ok := columns["name"]; !ok {
		return nil, fmt.Errorf("header %v lacks a name column", header)
	}

	field := func(row []string, column string) string {
		i, ok := columns[column]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []manifestRecord
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		rec := manifestRecord{
			Name:           field(row, "name"),
			PostscriptName: field(row, "postscript_name"),
		}

		rec.Codepoints, err = ParseCodepoints(field(row, "codepoints"))
		if err != nil {
			return nil, fmt.Errorf("glyph %q: %w", rec.Name, err)
		}

		if category := field(row, "opentype_category"); category != "" {
			rec.Category, err = ParseCategory(category)
			if err != nil {
				return nil, fmt.Errorf("glyph %q: %w", rec.Name, err)
			}
		}

		records = append(records, rec)
	}
	return records, nil
}
