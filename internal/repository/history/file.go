package history

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/sump-watch/internal/config"
	"github.com/oshokin/sump-watch/internal/domain/event"
	pb "github.com/oshokin/sump-watch/internal/pb/v1"
)

// Repository defines persistence operations for the event history.
type Repository interface {
	Load(ctx context.Context) ([]event.Event, error)
	Save(ctx context.Context, events []event.Event) error
}

// FileRepository persists the history to a JSON file on disk.
type FileRepository struct {
	// path is the filesystem location of the history file.
	path string
	// mu protects concurrent access to the history file.
	mu sync.Mutex
}

// ErrNotFound is returned when the history file does not exist yet.
var ErrNotFound = errors.New("history not found")

// NewFileRepository creates a repository that reads/writes JSON at the provided path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the history from disk, oldest event first.
func (r *FileRepository) Load(_ context.Context) ([]event.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read history file: %w", err)
	}

	var list structpb.ListValue
	if err = protojson.Unmarshal(contents, &list); err != nil {
		return nil, fmt.Errorf("decode history file: %w", err)
	}

	events, err := pb.HistoryFromProto(&list)
	if err != nil {
		return nil, fmt.Errorf("decode history file: %w", err)
	}

	return events, nil
}

// Save replaces the file with events. The data goes to a temporary file
// first so a crash never leaves a half-written history behind.
func (r *FileRepository) Save(_ context.Context, events []event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := protojson.Marshal(pb.HistoryToProto(events))
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	tmp := r.path + ".tmp"

	if err = os.WriteFile(tmp, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}

	if err = os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}

	return nil
}
