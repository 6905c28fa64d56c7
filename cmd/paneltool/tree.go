package main

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type treeEntry struct {
	path string
	dir  bool
	size int64
}

func newTreeCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "tree [dir]",
		Short: "List a card directory the way the panel browser sees it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			entries, err := walkCard(root, all)
			if err != nil {
				return err
			}
			return printTree(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include dot entries the panel hides.")
	return cmd
}

// walkCard collects every entry under root. Paths are slash separated and
// relative to root.
func walkCard(root string, all bool) ([]treeEntry, error) {
	var (
		mu      sync.Mutex
		entries []treeEntry
	)
	conf := fastwalk.DefaultConfig
	err := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if !all && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		e := treeEntry{path: filepath.ToSlash(rel), dir: d.IsDir()}
		if !e.dir {
			info, err := d.Info()
			if err != nil {
				return err
			}
			e.size = info.Size()
		}
		mu.Lock()
		entries = append(entries, e)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("tree: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := strings.ToUpper(entries[i].path), strings.ToUpper(entries[j].path)
		if a != b {
			return a < b
		}
		return entries[i].path < entries[j].path
	})
	return entries, nil
}

func printTree(w io.Writer, entries []treeEntry) error {
	var files int
	var total uint64
	for _, e := range entries {
		depth := strings.Count(e.path, "/")
		name := e.path[strings.LastIndexByte(e.path, '/')+1:]
		indent := strings.Repeat("  ", depth)
		if e.dir {
			if _, err := fmt.Fprintf(w, "%s%s/\n", indent, name); err != nil {
				return err
			}
			continue
		}
		files++
		total += uint64(e.size)
		if _, err := fmt.Fprintf(w, "%s%-12s %8s\n", indent, name, humanize.Bytes(uint64(e.size))); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%d files, %s\n", files, humanize.Bytes(total))
	return err
}
