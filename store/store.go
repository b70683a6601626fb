// Package store persists the full ledger state. A Store holds exactly
// one snapshot: Save replaces whatever was there, Load restores it
// field for field, including transaction and history ordering.
// Transient UI state (selection, search text, cached token lists) is
// never part of the snapshot.
package store

import "github.com/figuregpt/paperhand/ledger"

type Store interface {
	// Save replaces the persisted snapshot with the given state.
	Save(ledger.State) error

	// Load returns the persisted snapshot. The bool reports whether a
	// snapshot existed; a fresh store returns (zero, false, nil).
	Load() (ledger.State, bool, error)

	Close() error
}
