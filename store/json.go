package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/figuregpt/paperhand/ledger"
)

// JSONStore persists the ledger snapshot as a single JSON file.
// Decimal fields marshal as strings, so the round trip is exact.
// Writes go through a temp file and rename so a crash mid-write never
// corrupts the previous snapshot.
type JSONStore struct {
	path string
}

func NewJSON(path string) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &JSONStore{path: path}, nil
}

func (s *JSONStore) Save(state ledger.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace state: %w", err)
	}
	return nil
}

func (s *JSONStore) Load() (ledger.State, bool, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return ledger.State{}, false, nil
	}
	if err != nil {
		return ledger.State{}, false, err
	}

	var state ledger.State
	if err := json.Unmarshal(data, &state); err != nil {
		return ledger.State{}, false, fmt.Errorf("parse state: %w", err)
	}
	return state, true, nil
}

func (s *JSONStore) Close() error { return nil }
