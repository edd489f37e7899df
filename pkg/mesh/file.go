package mesh

import (
	"bytes"
	"io"
	"os"

	"github.com/matzehuels/bandslicer/pkg/errors"
)

// Decode parses data in the given format.
func Decode(data []byte, format Format) (*Mesh, error) {
	return Read(bytes.NewReader(data), format)
}

// Read parses a mesh from r in the given format.
func Read(r io.Reader, format Format) (*Mesh, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatOBJ:
		return ReadOBJ(r)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported mesh format %q", format)
	}
}

// Write encodes m in the given format.
func Write(w io.Writer, m *Mesh, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, m)
	case FormatOBJ:
		return WriteOBJ(w, m)
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported mesh format %q", format)
	}
}

// ReadFile loads a mesh file, choosing the decoder from its extension.
// It also returns the raw file bytes for content hashing.
func ReadFile(path string) (*Mesh, []byte, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "mesh file %s", path)
		}
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	m, err := Decode(data, format)
	if err != nil {
		return nil, nil, err
	}
	return m, data, nil
}

// WriteFile encodes m to path, choosing the encoder from its extension.
func WriteFile(path string, m *Mesh) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	if err := Write(f, m, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
