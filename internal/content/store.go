// Package content loads the static site records and blog articles. The data
// ships embedded in the binary; an override directory with the same layout
// (site.yaml, blog/*.md) replaces it and can be hot reloaded.
package content

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/yuin/goldmark"

	"github.com/mazichukwuka/portfolio/internal/logfields"
)

//go:embed data
var embedded embed.FS

// Embedded returns the content bundled with the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Store serves the current snapshot. Reloads swap the snapshot atomically, so
// readers always see a complete load.
type Store struct {
	fsys fs.FS
	dir  string
	md   goldmark.Markdown
	log  *slog.Logger
	cur  atomic.Pointer[Snapshot]

	// OnReload runs after every successful reload.
	OnReload func(*Snapshot)
}

// Open loads content from dir, or from the embedded data when dir is empty.
func Open(dir string, log *slog.Logger) (*Store, error) {
	fsys := Embedded()
	if dir != "" {
		st, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("content dir: %w", err)
		}
		if !st.IsDir() {
			return nil, fmt.Errorf("content dir %s is not a directory", dir)
		}
		fsys = os.DirFS(dir)
	}
	return OpenFS(fsys, dir, log)
}

// OpenFS loads content from fsys. dir is only used for watching and may be
// empty.
func OpenFS(fsys fs.FS, dir string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{fsys: fsys, dir: dir, md: newMarkdown(), log: log}
	snap, err := load(s.md, fsys)
	if err != nil {
		return nil, err
	}
	s.cur.Store(snap)
	return s, nil
}

// Snapshot returns the current content.
func (s *Store) Snapshot() *Snapshot {
	return s.cur.Load()
}

// Reload re-reads the content. On failure the previous snapshot stays live.
func (s *Store) Reload() error {
	snap, err := load(s.md, s.fsys)
	if err != nil {
		return err
	}
	s.cur.Store(snap)
	s.log.Info("Content reloaded",
		logfields.Path(s.dir),
		logfields.Count(int64(len(snap.Articles))))
	if s.OnReload != nil {
		s.OnReload(snap)
	}
	return nil
}
