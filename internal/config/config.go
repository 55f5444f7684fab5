// Package config loads textdex's optional project configuration from
// a KDL file, following the teacher's kdl-go-backed loader pattern.
package config

import (
	"os"
	"path/filepath"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	"github.com/standardbeagle/textdex/internal/diag"
	"github.com/standardbeagle/textdex/internal/xerrors"
)

// Config holds everything textdex needs to locate its persisted files
// and behave per-project. Every field has a working default so a
// missing config file is never an error.
type Config struct {
	// Project root; relative paths below are resolved against it.
	Root string

	// File names, relative to Root unless absolute.
	StopwordsFile string
	FilebaseFile  string
	IndexFile     string

	// Search tuning.
	MaxResults        int
	SuggestOnNoResult bool

	// Scan/watch (see internal/scan, internal/watch).
	ScanIncludes    []string
	ScanExcludes    []string
	WatchEnabled    bool
	WatchDebounceMs int
}

// Default returns the configuration used when no .textdex.kdl exists.
func Default(root string) *Config {
	return &Config{
		Root:              root,
		StopwordsFile:     "stopwords",
		FilebaseFile:      "filebase",
		IndexFile:         "index",
		MaxResults:        10,
		SuggestOnNoResult: true,
		ScanIncludes:      []string{"**/*.txt"},
		ScanExcludes:      nil,
		WatchEnabled:      false,
		WatchDebounceMs:   300,
	}
}

// Load reads ".textdex.kdl" from root if present, overlaying it on
// Default. A missing file is not an error.
func Load(root string) (*Config, error) {
	cfg := Default(root)

	path := filepath.Join(root, ".textdex.kdl")
	content, err := os.ReadFile(path)
	if err != nil {
		diag.Index("no .textdex.kdl at %q, using defaults", path)
		return cfg, nil
	}

	doc, err := kdl.Parse(strings.NewReader(string(content)))
	if err != nil {
		return cfg, xerrors.NewConfigError(path, err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "project":
			for _, cn := range n.Children {
				assignSimpleString(cn, "root", func(v string) { cfg.Root = v })
			}
		case "stopwords":
			if s, ok := firstStringArg(n); ok {
				cfg.StopwordsFile = s
			}
		case "filebase":
			if s, ok := firstStringArg(n); ok {
				cfg.FilebaseFile = s
			}
		case "index":
			if s, ok := firstStringArg(n); ok {
				cfg.IndexFile = s
			}
		case "search":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "max_results":
					if v, ok := firstIntArg(cn); ok {
						cfg.MaxResults = v
					}
				case "suggest_on_no_result":
					if b, ok := firstBoolArg(cn); ok {
						cfg.SuggestOnNoResult = b
					}
				}
			}
		case "scan":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "include":
					cfg.ScanIncludes = collectStringArgs(cn)
				case "exclude":
					cfg.ScanExcludes = collectStringArgs(cn)
				}
			}
		case "watch":
			for _, cn := range n.Children {
				switch nodeName(cn) {
				case "enabled":
					if b, ok := firstBoolArg(cn); ok {
						cfg.WatchEnabled = b
					}
				case "debounce_ms":
					if v, ok := firstIntArg(cn); ok {
						cfg.WatchDebounceMs = v
					}
				}
			}
		}
	}

	if !filepath.IsAbs(cfg.Root) {
		abs, err := filepath.Abs(cfg.Root)
		if err == nil {
			cfg.Root = abs
		}
	}
	return cfg, nil
}

// StopwordsPath, FilebasePath and IndexPath resolve the configured
// file names against Root.
func (c *Config) StopwordsPath() string { return c.resolve(c.StopwordsFile) }
func (c *Config) FilebasePath() string  { return c.resolve(c.FilebaseFile) }
func (c *Config) IndexPath() string     { return c.resolve(c.IndexFile) }

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Root, name)
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if n == nil || len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if n == nil || len(n.Arguments) == 0 {
		return "", false
	}
	s, ok := n.Arguments[0].Value.(string)
	return s, ok
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if n == nil || len(n.Arguments) == 0 {
		return false, false
	}
	b, ok := n.Arguments[0].Value.(bool)
	return b, ok
}

func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	if len(out) == 0 && len(n.Children) > 0 {
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

func assignSimpleString(n *document.Node, target string, set func(string)) {
	if nodeName(n) == target {
		if s, ok := firstStringArg(n); ok {
			set(s)
		}
	}
}
