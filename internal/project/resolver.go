package project

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	mapset "github.com/deckarep/golang-set"
	lru "github.com/hashicorp/golang-lru"

	"github.com/you-not-fish/lsc/internal/syntax"
)

// dirCacheSize bounds the number of directory listings kept by a resolver.
const dirCacheSize = 64

// Resolver maps using statements to files. A dotted path a.b.c names
// a/b/c relative to the directory of the importing file, then relative
// to each search path. Every file is reported once; later imports of the
// same file are duplicates.
type Resolver struct {
	conf *Config

	mu      sync.Mutex
	loaded  mapset.Set // absolute paths of every file handed out
	dirs    *lru.Cache // directory -> []string of file names
	pending []string   // source files waiting to be parsed
	natives []string   // native files, in import order
}

var _ syntax.UsingHandler = (*Resolver)(nil)

// NewResolver returns a resolver for the search paths and extensions of conf.
func NewResolver(conf *Config) *Resolver {
	dirs, err := lru.New(dirCacheSize)
	if err != nil {
		panic(err) // only fails for a non-positive size
	}
	return &Resolver{
		conf:   conf,
		loaded: mapset.NewSet(),
		dirs:   dirs,
	}
}

// Add queues the source file path for parsing. It reports false if the
// file was already known.
func (r *Resolver) Add(path string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.add(path, false)
}

func (r *Resolver) add(path string, native bool) bool {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if !r.loaded.Add(path) {
		return false
	}
	if native {
		r.natives = append(r.natives, path)
	} else {
		r.pending = append(r.pending, path)
	}
	return true
}

// Next removes and returns the oldest queued source file.
func (r *Resolver) Next() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pending) == 0 {
		return "", false
	}
	file := r.pending[0]
	r.pending = r.pending[1:]
	return file, true
}

// Natives returns the native files imported so far.
func (r *Resolver) Natives() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.natives...)
}

// Loaded returns every file handed out so far, sorted.
func (r *Resolver) Loaded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var list []string
	for _, f := range r.loaded.ToSlice() {
		list = append(list, f.(string))
	}
	sort.Strings(list)
	return list
}

// Using resolves one using statement found in the file of tok.
func (r *Resolver) Using(path string, native, wildcard bool, tok syntax.Token) (bool, error) {
	ext := r.conf.FileExtension
	if native {
		ext = r.conf.NativeExtension
	}
	rel := filepath.FromSlash(strings.ReplaceAll(path, ".", "/"))

	r.mu.Lock()
	defer r.mu.Unlock()

	roots := r.roots(tok.Pos.Filename())
	if wildcard {
		for _, root := range roots {
			dir := filepath.Join(root, rel)
			names, ok := r.list(dir)
			if !ok {
				continue
			}
			matched, added := false, false
			for _, name := range names {
				if filepath.Ext(name) != "."+ext {
					continue
				}
				matched = true
				if r.add(filepath.Join(dir, name), native) {
					added = true
				}
			}
			// An empty directory is not a duplicate import.
			return added || !matched, nil
		}
		return false, syntax.Errorf(syntax.SyntaxError, tok, "Unable to find referenced directory '%s'.", path)
	}

	for _, root := range roots {
		file := filepath.Join(root, rel) + "." + ext
		if isFile(file) {
			return r.add(file, native), nil
		}
	}
	return false, syntax.Errorf(syntax.SyntaxError, tok, "Unable to find referenced file '%s'.", path)
}

// roots returns the directories searched for imports of file.
func (r *Resolver) roots(file string) []string {
	roots := make([]string, 0, 1+len(r.conf.SearchPaths))
	if file != "" {
		roots = append(roots, filepath.Dir(file))
	}
	return append(roots, r.conf.SearchPaths...)
}

// list returns the names of the regular files in dir, in directory
// order. ok is false if dir cannot be read.
func (r *Resolver) list(dir string) (names []string, ok bool) {
	if v, hit := r.dirs.Get(dir); hit {
		return v.([]string), true
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, false
	}
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	r.dirs.Add(dir, names)
	return names, true
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
