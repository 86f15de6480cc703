package results

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/serialcheck/internal/logging"
	"github.com/agentx-labs/serialcheck/internal/platform"
	"go.uber.org/zap"
)

const fileExt = ".json"

// Store reads and writes result directories under Root.
type Store struct {
	Root string
}

// NewStore returns a store rooted at root.
func NewStore(root string) *Store {
	return &Store{Root: root}
}

// Dir returns the path of a platform directory.
func (s *Store) Dir(platformDir string) string {
	return filepath.Join(s.Root, platformDir)
}

// Path returns the path of a test case's record file.
func (s *Store) Path(platformDir, name string) string {
	return filepath.Join(s.Dir(platformDir), name+fileExt)
}

// Write stores rec as <platformDir>/<test_case>.json, creating the
// directory if needed, and returns the file path.
func (s *Store) Write(platformDir string, rec Record) (string, error) {
	dir := s.Dir(platformDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating result directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling record %s: %w", rec.TestCase, err)
	}

	path := s.Path(platformDir, rec.TestCase)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing record %s: %w", path, err)
	}
	return path, nil
}

// Read loads a single record file.
func (s *Store) Read(platformDir, name string) (Record, error) {
	return readRecord(s.Path(platformDir, name))
}

// Load reads every *.json file below a platform directory, recursively.
// Records are keyed by file name without the extension. The boolean is
// false when the directory does not exist, which is not an error.
func (s *Store) Load(platformDir string) (Set, bool, error) {
	dir := s.Dir(platformDir)
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("checking result directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, false, fmt.Errorf("result path %s is not a directory", dir)
	}

	set := make(Set)
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), fileExt) {
			return nil
		}
		rec, err := readRecord(path)
		if err != nil {
			return err
		}
		set[strings.TrimSuffix(d.Name(), fileExt)] = rec
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("loading %s results: %w", platformDir, err)
	}

	logging.Logger().Debug("loaded results",
		zap.String("dir", dir),
		zap.Int("records", len(set)))
	return set, true, nil
}

// LoadAll loads every known platform directory that exists, keyed by
// directory name. Missing directories are left out.
func (s *Store) LoadAll() (map[string]Set, error) {
	all := make(map[string]Set)
	for _, dir := range platform.Dirs() {
		set, ok, err := s.Load(dir)
		if err != nil {
			return nil, err
		}
		if ok {
			all[dir] = set
		}
	}
	return all, nil
}

// Clean removes every known platform directory whose name is a substring of
// descriptor, contents first. Directories of other platforms are never
// touched, so their earlier results stay available for comparison. It
// returns the directories removed.
func (s *Store) Clean(descriptor string) ([]string, error) {
	var removed []string
	for _, name := range platform.Dirs() {
		if !strings.Contains(descriptor, name) {
			continue
		}
		dir := s.Dir(name)
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return removed, fmt.Errorf("checking result directory %s: %w", dir, err)
		}
		if err := os.RemoveAll(dir); err != nil {
			return removed, fmt.Errorf("removing result directory %s: %w", dir, err)
		}
		logging.Logger().Debug("removed result directory", zap.String("dir", dir))
		removed = append(removed, name)
	}
	return removed, nil
}

func readRecord(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("reading record %s: %w", path, err)
	}

	issues, err := Validate(data)
	if err != nil {
		return Record{}, fmt.Errorf("validating record %s: %w", path, err)
	}
	if len(issues) > 0 {
		msgs := make([]string, len(issues))
		for i, issue := range issues {
			msgs[i] = issue.String()
		}
		return Record{}, fmt.Errorf("record %s is invalid: %s", path, strings.Join(msgs, "; "))
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("parsing record %s: %w", path, err)
	}
	return rec, nil
}
