package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/mindmap"
)

// ReadData decodes persisted document data from r.
//
// Enum violations keep their own error code (INVALID_COLOR, INVALID_SHAPE);
// any other decoding failure is reported as INVALID_DOCUMENT. ReadData does
// not close r.
func ReadData(r io.Reader) (*mindmap.Data, error) {
	var data mindmap.Data
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode document")
	}
	return &data, nil
}

// ReadJSON decodes a document from r.
func ReadJSON(r io.Reader) (*mindmap.Document, error) {
	data, err := ReadData(r)
	if err != nil {
		return nil, err
	}
	return mindmap.FromData(*data), nil
}

// ImportJSON reads the JSON file at path and returns the decoded document.
func ImportJSON(path string) (*mindmap.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
