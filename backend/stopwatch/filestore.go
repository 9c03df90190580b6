package stopwatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sync"

	"github.com/dweymouth/lapwatch/backend/util"
)

// FileStore persists the record as a JSON object of strings.
type FileStore struct {
	path string

	writeLock sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Load() (map[string]string, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var kv map[string]string
	if err := json.Unmarshal(b, &kv); err != nil {
		backup := f.path + ".bak"
		log.Printf("Saved state file may be malformed: copying to %s", backup)
		_ = util.CopyFile(f.path, backup)
		return nil, fmt.Errorf("decoding %s: %w", f.path, err)
	}
	return kv, nil
}

func (f *FileStore) Save(kv map[string]string) error {
	f.writeLock.Lock()
	defer f.writeLock.Unlock()

	b, err := json.Marshal(kv)
	if err != nil {
		return err
	}
	return util.WriteFileAtomic(f.path, b, 0644)
}
