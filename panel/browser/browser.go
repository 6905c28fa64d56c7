// Package browser walks a storage volume one directory level at a time
// through the menu engine.
package browser

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"ttypanel/hal"
	"ttypanel/panel/menu"
	"ttypanel/panel/volume"

	"github.com/gobwas/glob"
)

const DefaultCapacity = 64

var ErrCancelled = errors.New("browser: cancelled")

// Selection is the file the user picked.
type Selection struct {
	Dir  string
	Name string
}

func (s Selection) Path() string { return volume.Join(s.Dir, s.Name) }

type Browser struct {
	vol      volume.Volume
	engine   *menu.Engine
	capacity int
	filters  []glob.Glob
	logger   hal.Logger

	path string
}

type Option func(*Browser) error

func WithCapacity(n int) Option {
	return func(b *Browser) error {
		if n < 1 {
			return fmt.Errorf("browser: capacity %d", n)
		}
		b.capacity = n
		return nil
	}
}

// WithFilter limits the files shown to names matching one of patterns,
// compared case-insensitively. Directories are always shown.
func WithFilter(patterns ...string) Option {
	return func(b *Browser) error {
		for _, p := range patterns {
			if p == "" {
				continue
			}
			g, err := glob.Compile(strings.ToUpper(p))
			if err != nil {
				return fmt.Errorf("browser: filter %q: %w", p, err)
			}
			b.filters = append(b.filters, g)
		}
		return nil
	}
}

func WithLogger(l hal.Logger) Option {
	return func(b *Browser) error {
		if l != nil {
			b.logger = l
		}
		return nil
	}
}

func New(vol volume.Volume, engine *menu.Engine, opts ...Option) (*Browser, error) {
	b := &Browser{
		vol:      vol,
		engine:   engine,
		capacity: DefaultCapacity,
		logger:   hal.NullLogger(),
		path:     vol.Root(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Path is the directory most recently entered.
func (b *Browser) Path() string { return b.path }

type node struct {
	name string
	dir  bool
}

// Enter lists one directory level into a fresh menu list.
func (b *Browser) Enter(path string) (*menu.List, error) {
	d, err := b.vol.OpenDir(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = d.Close() }()

	var nodes []node
	for {
		e, err := d.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(e.Name, ".") {
			continue
		}
		if !e.Dir && !b.match(e.Name) {
			continue
		}
		nodes = append(nodes, node{name: e.Name, dir: e.Dir})
	}

	sort.Slice(nodes, func(i, j int) bool {
		a, c := strings.ToUpper(nodes[i].name), strings.ToUpper(nodes[j].name)
		if a != c {
			return a < c
		}
		return nodes[i].name < nodes[j].name
	})

	root := b.vol.Root()
	l := menu.NewList(b.capacity)
	if !volume.IsRoot(path, root) {
		l.Add(menu.Item{Label: "..", Action: menu.DescendTo(volume.Parent(path, root)), Dir: true})
	}
	dropped := 0
	for _, n := range nodes {
		full := volume.Join(path, n.name)
		it := menu.Item{Label: n.name, Action: menu.OpenPath(full)}
		if n.dir {
			it.Action = menu.DescendTo(full)
			it.Dir = true
		}
		if !l.Add(it) {
			dropped++
		}
	}
	if dropped > 0 {
		b.logger.WriteLineString(fmt.Sprintf("browser: %s: %d entries over capacity", path, dropped))
	}

	b.path = path
	return l, nil
}

func (b *Browser) match(name string) bool {
	if len(b.filters) == 0 {
		return true
	}
	upper := strings.ToUpper(name)
	for _, g := range b.filters {
		if g.Match(upper) {
			return true
		}
	}
	return false
}

// Browse lets the user navigate from start until a file is chosen.
func (b *Browser) Browse(start string) (Selection, error) {
	path := start
	if path == "" {
		path = b.vol.Root()
	}
	for {
		l, err := b.Enter(path)
		if err != nil {
			b.logger.WriteLineString(fmt.Sprintf("browser: enter %s: %v", path, err))
			b.engine.Alert("DIR ERR "+fmt.Sprint(volume.Code(err)), path)
			return Selection{}, fmt.Errorf("browser: enter %s: %w", path, err)
		}
		idx := b.engine.Select(l)
		if idx < 0 {
			return Selection{}, ErrCancelled
		}
		it := l.Items[idx]
		l.Reset()

		switch it.Action.Kind {
		case menu.Descend:
			path = it.Action.Path
		case menu.OpenFile:
			return Selection{Dir: path, Name: it.Label}, nil
		case menu.Leaf, menu.InvokeScreen:
			// Not produced by Enter.
		}
	}
}
