package profilestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Matteo842/SaveState-sub003/internal/apperr"
	"github.com/Matteo842/SaveState-sub003/internal/paths"
)

// rawValue accepts either a single path string or an ordered list of path
// strings, so existing profiles.json files with a bare string value still
// load.
type rawValue []string

func (r *rawValue) UnmarshalJSON(b []byte) error {
	var single string
	if err := json.Unmarshal(b, &single); err == nil {
		*r = rawValue{single}
		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	*r = rawValue(list)
	return nil
}

// Store is an atomic, file-backed profile registry. It holds no in-memory
// state between calls: every operation re-reads and re-writes the backing
// file.
type Store struct {
	path string
}

// New returns a Store backed by the file at path. The file need not exist
// yet; Load treats a missing file as an empty store.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the store file and returns Map<name, Profile>. A missing file
// or a file that fails to parse is treated as an empty set; Load never
// errors.
func (s *Store) Load() (map[string]Profile, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]Profile{}, nil
	}

	var raw map[string]rawValue
	if err := json.Unmarshal(b, &raw); err != nil {
		return map[string]Profile{}, nil
	}

	out := make(map[string]Profile, len(raw))
	for name, v := range raw {
		out[name] = Profile{Name: name, Paths: append([]string(nil), v...)}
	}
	return out, nil
}

// Save atomically writes profiles to the store file, always emitting the
// list form for every entry. Any failure leaves the previous file intact.
func (s *Store) Save(profiles map[string]Profile) error {
	out := make(map[string][]string, len(profiles))
	for name, p := range profiles {
		out[name] = p.Paths
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return apperr.Wrap(apperr.StoreIOFailure, "marshal profile store", err)
	}
	b = append(b, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperr.Wrap(apperr.StoreIOFailure, "create store directory", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return apperr.Wrap(apperr.StoreIOFailure, fmt.Sprintf("write %s", tmp), err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return apperr.Wrap(apperr.StoreIOFailure, fmt.Sprintf("rename %s -> %s", tmp, s.path), err)
	}

	return nil
}

// Upsert inserts or replaces the named profile. name must already be
// sanitized (see internal/paths.SanitizeProfileName) and each path must
// pass internal/paths.ValidateSavePath. Upsert validates each path itself;
// of the name it checks only that it is non-empty, and does not sanitize it.
func (s *Store) Upsert(name string, rawPaths []string) error {
	if name == "" {
		return apperr.New(apperr.InvalidProfileName, "profile name must not be empty")
	}
	if len(rawPaths) == 0 {
		return apperr.New(apperr.InvalidProfileData, "profile must have at least one source path")
	}

	normalized := make([]string, 0, len(rawPaths))
	for _, p := range rawPaths {
		v, err := paths.ValidateSavePath(p, name)
		if err != nil {
			return err
		}
		normalized = append(normalized, v)
	}

	profiles, err := s.Load()
	if err != nil {
		return err
	}
	profiles[name] = Profile{Name: name, Paths: normalized}
	return s.Save(profiles)
}

// Delete removes the named profile. Idempotent: deleting a name that does
// not exist is not an error.
func (s *Store) Delete(name string) error {
	profiles, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := profiles[name]; !ok {
		return nil
	}
	delete(profiles, name)
	return s.Save(profiles)
}

// Get returns the named profile, or apperr.ProfileNotFound.
func (s *Store) Get(name string) (Profile, error) {
	profiles, err := s.Load()
	if err != nil {
		return Profile{}, err
	}
	p, ok := profiles[name]
	if !ok {
		return Profile{}, apperr.New(apperr.ProfileNotFound, fmt.Sprintf("profile %q not found", name))
	}
	return p, nil
}

// List returns every profile, sorted by name for stable CLI output.
func (s *Store) List() ([]Profile, error) {
	profiles, err := s.Load()
	if err != nil {
		return nil, err
	}
	out := make([]Profile, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
