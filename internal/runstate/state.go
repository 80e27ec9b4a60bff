package runstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"ratingsync/internal/fileutil"
	"ratingsync/internal/logging"
	"ratingsync/internal/ratings"
)

// State is a resumable snapshot of an in-progress harvest: everything
// collected so far and the last listing page that completed.
type State struct {
	LastPage  int            `json:"lastPage"`
	Items     []ratings.Item `json:"items"`
	Timestamp time.Time      `json:"timestamp"`
}

// Checkpoint persists State snapshots during the pagination phase.
type Checkpoint struct {
	path   string
	logger *slog.Logger
}

// New creates a checkpoint bound to a file path.
func New(path string, logger *slog.Logger) *Checkpoint {
	return &Checkpoint{
		path:   path,
		logger: logging.NewComponentLogger(logger, "runstate"),
	}
}

// Save overwrites the checkpoint file atomically.
func (c *Checkpoint) Save(lastPage int, items []ratings.Item) error {
	state := State{
		LastPage:  lastPage,
		Items:     items,
		Timestamp: time.Now().UTC(),
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run state: %w", err)
	}
	if err := fileutil.WriteFileAtomic(c.path, data); err != nil {
		return fmt.Errorf("write run state: %w", err)
	}

	c.logger.Debug("checkpoint written",
		logging.Int(logging.FieldPage, lastPage),
		logging.Int("item_count", len(items)))
	return nil
}

// Load reads a previous checkpoint. A missing file returns (nil, nil): there
// is simply nothing to resume. A corrupt file is an error so the caller can
// decide whether to discard it.
func (c *Checkpoint) Load() (*State, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read run state: %w", err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse run state: %w", err)
	}
	return &state, nil
}

// Clear removes the checkpoint after a fully successful run.
func (c *Checkpoint) Clear() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove run state: %w", err)
	}
	return nil
}
