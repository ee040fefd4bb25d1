// Package cas implements a content addressed store for compiled assets.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/stitch/internal/core/domain"
	"go.trai.ch/zerr"
)

// record is the on-disk form of a stored asset.
type record struct {
	Key      string          `json:"key"`
	Metadata domain.Metadata `json:"metadata"`
	Body     string          `json:"body"`
}

// Store implements ports.AssetStore with one JSON file per key under
// <root>/.stitch/store.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Get retrieves the asset stored under key. A missing entry, or one written
// for a different key, returns nil, nil.
func (s *Store) Get(root, key string) (*domain.Asset, error) {
	filename := s.filename(root, key)
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", filename)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "path", filename)
	}
	if rec.Key != key {
		return nil, nil
	}

	return domain.NewAsset(rec.Metadata, [][]byte{[]byte(rec.Body)}), nil
}

// Put stores the asset under key, replacing any previous entry.
func (s *Store) Put(root, key string, asset *domain.Asset) error {
	data, err := json.MarshalIndent(record{
		Key:      key,
		Metadata: asset.Metadata,
		Body:     asset.String(),
	}, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := s.filename(root, key)
	if err := os.MkdirAll(filepath.Dir(filename), domain.DirPerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreCreateFailed.Error())
	}

	tmp := filename + ".tmp"
	//nolint:gosec // Path is constructed from trusted directory and hashed filename
	if err := os.WriteFile(tmp, data, domain.PrivateFilePerm); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if err := os.Rename(tmp, filename); err != nil {
		_ = os.Remove(tmp)
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	return nil
}

// Delete removes the whole store under root.
func (s *Store) Delete(root string) error {
	if err := os.RemoveAll(filepath.Join(root, domain.DefaultStorePath())); err != nil {
		return zerr.Wrap(err, domain.ErrStoreDeleteFailed.Error())
	}
	return nil
}

func (s *Store) filename(root, key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(root, domain.DefaultStorePath(), hex.EncodeToString(hash[:])+".json")
}
