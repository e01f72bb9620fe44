package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/mindmap"
)

// WriteData encodes document data as indented JSON.
func WriteData(data mindmap.Data, w io.Writer) error {
	if data.Nodes == nil {
		data.Nodes = []mindmap.Node{}
	}
	if data.Links == nil {
		data.Links = []mindmap.Link{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode document")
	}
	return nil
}

// WriteJSON encodes a document as JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(doc *mindmap.Document, w io.Writer) error {
	return WriteData(doc.Data(), w)
}

// ExportJSON writes a document to the JSON file at path. The file is
// replaced atomically so a crash never leaves a truncated document behind.
func ExportJSON(doc *mindmap.Document, path string) error {
	return ExportData(doc.Data(), path)
}

// ExportData writes document data to the JSON file at path atomically.
func ExportData(data mindmap.Data, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", dir)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", path)
	}
	tmp := f.Name()
	if err := WriteData(data, f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return errors.Wrap(errors.ErrCodeInternal, err, "replace %s", path)
	}
	return nil
}
