// Package jsondoc persists the document as a single JSON file, replaced
// whole on every save.
package jsondoc

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/friendsofgo/errors"

	"github.com/trezcool/housepoints/core/school"
)

type Store struct {
	path string
}

var _ school.Store = (*Store)(nil)

func Open(path string) *Store {
	return &Store{path: path}
}

// Load reads the document. A missing file yields an empty document: first
// run bootstraps from nothing.
func (s *Store) Load() (school.Document, error) {
	var doc school.Document
	data, err := ioutil.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return doc, errors.Wrapf(err, "reading %s", s.path)
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return doc, errors.Wrapf(err, "parsing %s", s.path)
	}
	return doc, nil
}

// Save replaces the file atomically: write a sibling temp file, then rename
// over the target, so a crash mid-write never leaves a torn document.
func (s *Store) Save(doc school.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding document")
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}
	tmp, err := ioutil.TempFile(dir, ".school-*.json")
	if err != nil {
		return errors.Wrap(err, "creating temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "writing temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "closing temp file")
	}
	return errors.Wrapf(os.Rename(tmp.Name(), s.path), "replacing %s", s.path)
}
