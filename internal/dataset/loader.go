package dataset

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/bluele/gcache"

	"github.com/KaramelBytes/popmap/internal/logging"
)

// Options controls how source files are parsed. They are fixed for the
// lifetime of a Loader, so a (path, kind) pair fully identifies a table.
type Options struct {
	// Delimiter for tabular files. If 0, '\t' for .tsv and ',' otherwise.
	Delimiter rune
	// NameProperty is the GeoJSON property holding the country display name.
	NameProperty string
}

// DefaultOptions returns the options matching Natural Earth admin-0 exports.
func DefaultOptions() Options {
	return Options{NameProperty: "NAME"}
}

type cacheKey struct {
	path string
	kind Kind
}

// Loader is a read-through cache of parsed tables keyed by (path, kind).
// Entries are populated once and never invalidated; failed loads are not
// cached. Returned tables are shared and must be treated as read-only.
type Loader struct {
	opt   Options
	log   *slog.Logger
	cache gcache.Cache
	reads atomic.Int64
}

// NewLoader constructs a Loader. A nil logger discards log output.
func NewLoader(opt Options, log *slog.Logger) *Loader {
	if opt.NameProperty == "" {
		opt.NameProperty = DefaultOptions().NameProperty
	}
	if log == nil {
		log = logging.Discard()
	}
	l := &Loader{opt: opt, log: log}
	// Size 0 with the simple policy never evicts.
	l.cache = gcache.New(0).Simple().LoaderFunc(l.load).Build()
	return l
}

// Load returns the table of the given kind at path: *PopulationTable,
// *AreaTable or *GeometryTable.
func (l *Loader) Load(path string, kind Kind) (any, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}
	v, err := l.cache.Get(cacheKey{path: filepath.Clean(path), kind: kind})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Population returns the cached population table at path.
func (l *Loader) Population(path string) (*PopulationTable, error) {
	v, err := l.Load(path, KindPopulation)
	if err != nil {
		return nil, err
	}
	return v.(*PopulationTable), nil
}

// Area returns the cached area table at path.
func (l *Loader) Area(path string) (*AreaTable, error) {
	v, err := l.Load(path, KindArea)
	if err != nil {
		return nil, err
	}
	return v.(*AreaTable), nil
}

// Geometry returns the cached geometry table at path.
func (l *Loader) Geometry(path string) (*GeometryTable, error) {
	v, err := l.Load(path, KindGeometry)
	if err != nil {
		return nil, err
	}
	return v.(*GeometryTable), nil
}

// Reads reports how many times a file was actually parsed.
func (l *Loader) Reads() int64 { return l.reads.Load() }

func (l *Loader) load(key interface{}) (interface{}, error) {
	k, ok := key.(cacheKey)
	if !ok {
		return nil, fmt.Errorf("unexpected cache key %T", key)
	}
	start := time.Now()
	l.reads.Add(1)
	var (
		v    any
		rows int
		err  error
	)
	switch k.kind {
	case KindPopulation:
		var t *PopulationTable
		t, err = ReadPopulation(k.path, l.opt.Delimiter)
		if err == nil {
			v, rows = t, len(t.Entries)
		}
	case KindArea:
		var t *AreaTable
		t, err = ReadArea(k.path, l.opt.Delimiter)
		if err == nil {
			v, rows = t, len(t.Entries)
		}
	case KindGeometry:
		var t *GeometryTable
		t, err = ReadGeometry(k.path, l.opt.NameProperty)
		if err == nil {
			v, rows = t, len(t.Features)
		}
	}
	if err != nil {
		l.log.Error("dataset load failed", "kind", k.kind, "path", k.path, "err", err)
		return nil, err
	}
	l.log.Debug("dataset loaded", "kind", k.kind, "path", k.path, "rows", rows, "took", time.Since(start))
	return v, nil
}
