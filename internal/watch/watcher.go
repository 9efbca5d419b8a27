// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs a callback when files under a set of project roots
// change.
//
// Events are coalesced over a debounce window so the callback fires once
// with every path changed during the window.
package watch

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/PhilLello/doxyreport/internal/logging"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Config.Debounce is not positive.
const DefaultDebounce = 500 * time.Millisecond

var (
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid watch config")

	// ErrAlreadyRunning is returned by a second call to Run.
	ErrAlreadyRunning = errors.New("watcher already running")

	// VCS metadata and editor noise.
	defaultIgnores = []string{
		"**/.git/**",
		"**/.hg/**",
		"**/.svn/**",
		"**/*.swp",
		"**/*.swo",
		"**/*~",
		"**/.DS_Store",
	}
)

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Roots are the directories watched recursively. Nested roots are
		// folded into their enclosing root.
		Roots []string

		// Ignore are doublestar patterns, relative to the owning root, for
		// paths that never trigger the callback. They extend the defaults.
		Ignore []string

		// Exclude are directories skipped entirely, typically build and
		// report output directories the callback itself writes to.
		Exclude []string

		// Debounce is the quiet period after the last event before the
		// callback fires.
		Debounce time.Duration

		// OnChange receives the sorted, absolute paths changed during the
		// debounce window. A nil callback is a no-op.
		OnChange func(ctx context.Context, changed []string) error

		Sink logging.Sink
	}

	// InvalidConfigError lists every problem found in a Config.
	InvalidConfigError struct {
		Problems []string
	}

	// Watcher monitors Config.Roots. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		roots    []string
		exclude  []string
		ignores  []string
		debounce time.Duration
		sink     logging.Sink
		started  atomic.Bool
	}
)

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid watch config: %s", strings.Join(e.Problems, "; "))
}

// Unwrap returns ErrInvalidConfig.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Validate checks that at least one root is given and every ignore pattern
// is a valid glob.
func (c Config) Validate() error {
	var problems []string
	if len(c.Roots) == 0 {
		problems = append(problems, "no roots")
	}
	for _, r := range c.Roots {
		if strings.TrimSpace(r) == "" {
			problems = append(problems, "empty root")
		}
	}
	for _, pat := range c.Ignore {
		if !doublestar.ValidatePattern(pat) || strings.TrimSpace(pat) == "" {
			problems = append(problems, fmt.Sprintf("bad ignore pattern %q", pat))
		}
	}
	if len(problems) > 0 {
		return &InvalidConfigError{Problems: problems}
	}
	return nil
}

// New validates cfg and registers every non-ignored directory under the roots.
func New(cfg Config) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	roots, err := absAll(cfg.Roots)
	if err != nil {
		return nil, err
	}
	exclude, err := absAll(cfg.Exclude)
	if err != nil {
		return nil, err
	}

	sink := cfg.Sink
	if sink == nil {
		sink = logging.Discard()
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		roots:    foldRoots(roots),
		exclude:  exclude,
		ignores:  append(slices.Clone(defaultIgnores), cfg.Ignore...),
		debounce: debounce,
		sink:     sink,
	}

	for _, root := range w.roots {
		if err := w.addTree(root); err != nil {
			if closeErr := fsw.Close(); closeErr != nil {
				sink.Warn("close watcher after init failure", "err", closeErr)
			}
			return nil, err
		}
	}
	return w, nil
}

// Roots returns the folded, absolute roots being watched.
func (w *Watcher) Roots() []string { return slices.Clone(w.roots) }

// Run processes events until ctx is cancelled. It returns nil on
// cancellation and an error when the underlying watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		busy    atomic.Bool
	)

	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !busy.CompareAndSwap(false, true) {
			w.sink.Warn("previous run still in progress, retrying after debounce")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer busy.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		w.sink.Info("change detected", "files", len(changed))
		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				w.sink.Error("re-run failed", "err", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
		if err := w.fsw.Close(); err != nil {
			w.sink.Warn("close watcher", "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("fsnotify event channel closed")
			}
			if evt.Has(fsnotify.Chmod) && !evt.Has(fsnotify.Write) {
				continue
			}
			if w.skip(evt.Name) {
				continue
			}
			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}

			mu.Lock()
			pending[evt.Name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("fsnotify error channel closed")
			}
			if isFatal(err) {
				return fmt.Errorf("watcher broken: %w", err)
			}
			w.sink.Warn("watch error", "err", err)
		}
	}
}

func (w *Watcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, walkErr error) error {
		if walkErr != nil {
			w.sink.Warn("skipping inaccessible path", "path", path, "err", walkErr)
			return nil //nolint:nilerr // keep walking
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && w.skip(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %q: %w", path, err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %q: %w", root, err)
	}
	return nil
}

func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.addTree(path); err != nil {
		w.sink.Warn("cannot watch new directory", "path", path, "err", err)
	}
}

// skip reports whether path is excluded or matches an ignore pattern
// relative to its root.
func (w *Watcher) skip(path string) bool {
	for _, ex := range w.exclude {
		if within(ex, path) {
			return true
		}
	}

	root := w.rootOf(path)
	if root == "" {
		return true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return true
	}
	rel = filepath.ToSlash(rel)
	for _, pat := range w.ignores {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pat, rel+"/"); ok {
			return true
		}
	}
	return false
}

func (w *Watcher) rootOf(path string) string {
	for _, r := range w.roots {
		if within(r, path) {
			return r
		}
	}
	return ""
}

// foldRoots drops duplicates and roots nested in another root.
func foldRoots(roots []string) []string {
	sorted := slices.Clone(roots)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	var out []string
	for _, r := range sorted {
		if slices.ContainsFunc(out, func(parent string) bool { return within(parent, r) }) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func absAll(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %q: %w", p, err)
		}
		out = append(out, filepath.Clean(abs))
	}
	return out, nil
}
