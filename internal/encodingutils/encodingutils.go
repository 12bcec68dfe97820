// Package encodingutils resolves character encodings by name and decodes
// input streams to UTF-8. German bank exports are routinely ISO-8859-1 or
// Windows-1252 rather than UTF-8.
package encodingutils

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// NewReader wraps r so that reads yield UTF-8. The encoding name is resolved
// through the IANA index ("ISO-8859-1", "windows-1252", "utf-8", ...); an
// empty name or a UTF-8 alias returns r unchanged.
func NewReader(r io.Reader, name string) (io.Reader, error) {
	enc, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// Lookup resolves an encoding name through the IANA index. A nil encoding
// with nil error means no transformation is needed.
func Lookup(name string) (encoding.Encoding, error) {
	name = strings.TrimSpace(name)
	switch strings.ToLower(name) {
	case "", "utf-8", "utf8":
		return nil, nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unknown encoding '%s'", name)
	}
	return enc, nil
}
