package backup

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	nverrors "github.com/nvsetup/nvsetup/internal/errors"
)

// TimestampFormat is the layout used for backup directory suffixes.
const TimestampFormat = "20060102T150405"

// Record describes a single backup of the managed directory.
type Record struct {
	// ID is the timestamp suffix of the backup (e.g., "20260824T101500").
	ID string

	// OriginalPath is the directory the backup was taken from.
	OriginalPath string

	// BackupPath is where the backup now lives.
	BackupPath string

	// CreatedAt is parsed back from the ID.
	CreatedAt time.Time
}

// Manager creates and manages rename-based backups of a single directory.
// A backup is the original directory renamed to
// "<original>.backup.<timestamp>"; ownership transfers by rename, never
// by copy, so a backup is atomic and free on the same filesystem.
type Manager struct {
	targetDir string
	now       func() time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source. Used by tests to pin timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a backup Manager for the given directory.
func NewManager(targetDir string, opts ...Option) *Manager {
	m := &Manager{
		targetDir: targetDir,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create renames the managed directory to a timestamped backup sibling
// and returns the resulting record. If the directory does not exist there
// is nothing to back up and Create returns (nil, nil).
func (m *Manager) Create() (*Record, error) {
	if _, err := os.Stat(m.targetDir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "stat %s", m.targetDir)
	}

	id := m.now().Format(TimestampFormat)
	backupPath := m.backupPath(id)

	if err := os.Rename(m.targetDir, backupPath); err != nil {
		return nil, errors.Wrapf(err, "renaming %s to %s", m.targetDir, backupPath)
	}

	return &Record{
		ID:           id,
		OriginalPath: m.targetDir,
		BackupPath:   backupPath,
		CreatedAt:    mustParseID(id),
	}, nil
}

// List returns all backups of the managed directory, newest first.
// Returns ErrNoBackupsFound if none exist.
func (m *Manager) List() ([]Record, error) {
	parent := filepath.Dir(m.targetDir)
	prefix := filepath.Base(m.targetDir) + ".backup."

	entries, err := os.ReadDir(parent)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nverrors.ErrNoBackupsFound
		}
		return nil, errors.Wrapf(err, "reading %s", parent)
	}

	var records []Record
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id, ok := strings.CutPrefix(entry.Name(), prefix)
		if !ok {
			continue
		}
		created, err := time.Parse(TimestampFormat, id)
		if err != nil {
			// Not one of ours; leave it alone.
			continue
		}
		records = append(records, Record{
			ID:           id,
			OriginalPath: m.targetDir,
			BackupPath:   filepath.Join(parent, entry.Name()),
			CreatedAt:    created,
		})
	}

	if len(records) == 0 {
		return nil, nverrors.ErrNoBackupsFound
	}

	// Newest first
	slices.SortFunc(records, func(a, b Record) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return records, nil
}

// Latest returns the most recent backup.
// Returns ErrNoBackupsFound if none exist.
func (m *Manager) Latest() (*Record, error) {
	records, err := m.List()
	if err != nil {
		return nil, err
	}
	return &records[0], nil
}

// Get returns the backup with the given timestamp ID.
// Returns ErrNoBackupsFound if it does not exist.
func (m *Manager) Get(id string) (*Record, error) {
	records, err := m.List()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, errors.Wrapf(nverrors.ErrNoBackupsFound, "backup %s not found", id)
}

// Restore moves the backup with the given ID back into place. If the
// managed directory currently exists it is backed up first, so a restore
// never destroys state. The restored backup is consumed by the rename.
func (m *Manager) Restore(id string) (*Record, error) {
	record, err := m.Get(id)
	if err != nil {
		return nil, err
	}

	saved, err := m.Create()
	if err != nil {
		return nil, errors.Wrap(err, "backing up current directory")
	}

	if err := os.Rename(record.BackupPath, m.targetDir); err != nil {
		// Put the current directory back so we do not leave the user
		// with nothing in place.
		if saved != nil {
			_ = os.Rename(saved.BackupPath, m.targetDir)
		}
		return nil, errors.Wrapf(err, "restoring %s", record.BackupPath)
	}

	return record, nil
}

// Prune removes old backups beyond the specified retention count.
// Keeps the most recent 'keep' backups.
func (m *Manager) Prune(keep int) error {
	if keep < 0 {
		return errors.New("keep must be non-negative")
	}

	records, err := m.List()
	if err != nil {
		if errors.Is(err, nverrors.ErrNoBackupsFound) {
			return nil // Nothing to prune
		}
		return err
	}

	// Already sorted newest first, delete everything beyond 'keep'
	for i := keep; i < len(records); i++ {
		if err := os.RemoveAll(records[i].BackupPath); err != nil {
			return errors.Wrapf(err, "removing backup %s", records[i].ID)
		}
	}

	return nil
}

// backupPath returns the sibling path for a backup with the given ID.
func (m *Manager) backupPath(id string) string {
	return m.targetDir + ".backup." + id
}

// mustParseID parses a timestamp produced by this package.
func mustParseID(id string) time.Time {
	t, _ := time.Parse(TimestampFormat, id)
	return t
}
