package session

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend stores sessions as a JSON document readable only by the owner.
// The document holds one session per API origin; a backend only sees the
// entry of its own scope. Writes go to a temporary file renamed over the target.
type FileBackend struct {
	path  string
	scope string
}

type fileDocument struct {
	Sessions map[string]Session `json:"sessions"`
}

func NewFileBackend(path, scope string) *FileBackend {
	return &FileBackend{path: path, scope: scope}
}

// Path returns the file the session is stored in
func (f *FileBackend) Path() string {
	return f.path
}

func (f *FileBackend) Load(context.Context) (Session, error) {
	doc, err := f.read()
	if err != nil {
		return Session{}, err
	}
	return doc.Sessions[f.scope], nil
}

func (f *FileBackend) Save(_ context.Context, s Session) error {
	doc, err := f.read()
	if err != nil {
		return err
	}
	doc.Sessions[f.scope] = s
	return f.write(doc)
}

// Delete removes the entry of this scope, and the file once no entry is left
func (f *FileBackend) Delete(context.Context) error {
	doc, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := doc.Sessions[f.scope]; !ok {
		return nil
	}
	delete(doc.Sessions, f.scope)

	if len(doc.Sessions) > 0 {
		return f.write(doc)
	}
	err = os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// read returns the stored document; a missing file is an empty one
func (f *FileBackend) read() (fileDocument, error) {
	doc := fileDocument{}
	data, err := os.ReadFile(f.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return doc, err
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return doc, err
		}
	}
	if doc.Sessions == nil {
		doc.Sessions = map[string]Session{}
	}
	return doc, nil
}

func (f *FileBackend) write(doc fileDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}
