package document

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/matzehuels/graphnest/pkg/errors"
	"github.com/matzehuels/graphnest/pkg/observability"
)

// Format is a document encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	if err := errors.ValidateDocumentPath(path); err != nil {
		return "", err
	}
	return Format(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")), nil
}

// Read decodes a document. The input is checked against [SchemaJSON] before
// it is decoded; violations are reported as INVALID_DOCUMENT.
func Read(r io.Reader, format Format) (Document, error) {
	if format != FormatJSON && format != FormatTOML {
		return Document{}, errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInternal, err, "read document")
	}

	var doc Document
	switch format {
	case FormatJSON:
		v, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
		if err := validateSchema(v); err != nil {
			return Document{}, err
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	case FormatTOML:
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		v, err := toJSONValue(raw)
		if err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if err := validateSchema(v); err != nil {
			return Document{}, err
		}
		if err := toml.Unmarshal(data, &doc); err != nil {
			return Document{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
	}
	return doc, nil
}

// Write encodes a document. JSON output is indented.
func Write(w io.Writer, doc Document, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode json")
		}
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode toml")
		}
	default:
		return errors.New(errors.ErrCodeUnsupported, "unsupported format %q", format)
	}
	return nil
}

// Marshal encodes a document to bytes.
func Marshal(doc Document, format Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, doc, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadFile reads a document, choosing the format from the file extension.
func ReadFile(ctx context.Context, path string) (doc Document, err error) {
	defer func() {
		observability.Document().OnImport(ctx, path, len(doc.Items), len(doc.Edges), err)
	}()

	format, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s not found", path)
	}
	if err != nil {
		return Document{}, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return Read(f, format)
}

// WriteFile writes a document, choosing the format from the file extension.
// The file is created with 0644 permissions.
func WriteFile(ctx context.Context, doc Document, path string) (err error) {
	var data []byte
	defer func() {
		observability.Document().OnExport(ctx, path, len(data), err)
	}()

	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	if data, err = Marshal(doc, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}
