package ufo

import (
	"bytes"
	"fmt"
	"os"

	"howett.net/plist"
)

// readPlist decodes an XML property list file into v.
func readPlist(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if _, err := plist.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// writePlist encodes v as an XML property list file.
func writePlist(path string, v interface{}) error {
	data, err := plist.MarshalIndent(v, plist.XMLFormat, "\t")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0644)
}

// decodeLibDict decodes the <dict> element embedded in a glif <lib>.
func decodeLibDict(inner []byte) (map[string]interface{}, error) {
	if len(bytes.TrimSpace(inner)) == 0 {
		return nil, nil
	}

	var doc bytes.Buffer
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	doc.WriteString(`<plist version="1.0">`)
	doc.Write(inner)
	doc.WriteString(`</plist>`)

	lib := make(map[string]interface{})
	if _, err := plist.Unmarshal(doc.Bytes(), &lib); err != nil {
		return nil, err
	}
	return lib, nil
}

// encodeLibDict renders lib as a bare <dict> element for a glif <lib>.
func encodeLibDict(lib map[string]interface{}) ([]byte, error) {
	data, err := plist.MarshalIndent(lib, plist.XMLFormat, "  ")
	if err != nil {
		return nil, err
	}

	start := bytes.Index(data, []byte("<dict"))
	end := bytes.LastIndex(data, []byte("</plist>"))
	if start < 0 || end < start {
		return nil, fmt.Errorf("unexpected plist encoding of glyph lib")
	}
	return bytes.TrimSpace(data[start:end]), nil
}
