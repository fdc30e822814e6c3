package ports

import "context"

// SnapshotStore persists the serialized board out-of-band. The engine only
// needs load/save primitives; scheduling belongs to the caller.
type SnapshotStore interface {
	// Load returns the most recent snapshot blob. ok is false when no
	// snapshot has been saved yet.
	Load(ctx context.Context) (blob []byte, ok bool, err error)

	// Save replaces the stored snapshot with blob. checksum is recorded
	// beside it for inspection; it is not re-verified on load.
	Save(ctx context.Context, blob []byte, checksum uint32) error
}
