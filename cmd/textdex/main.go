// Command textdex is a small persistent text-search engine: add plain
// text documents to an index, then search them by TF-IDF similarity.
// Run with no subcommand for an interactive shell; each subcommand
// below also works as a one-shot CLI invocation.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/standardbeagle/textdex/internal/config"
	"github.com/standardbeagle/textdex/internal/diag"
	"github.com/standardbeagle/textdex/internal/fingerprint"
	"github.com/standardbeagle/textdex/internal/index"
	"github.com/standardbeagle/textdex/internal/normalize"
	"github.com/standardbeagle/textdex/internal/porter"
	"github.com/standardbeagle/textdex/internal/query"
	"github.com/standardbeagle/textdex/internal/scan"
	"github.com/standardbeagle/textdex/internal/stopword"
	"github.com/standardbeagle/textdex/internal/version"
	"github.com/standardbeagle/textdex/internal/watch"
)

func main() {
	app := &cli.App{
		Name:    "textdex",
		Usage:   "persistent TF-IDF text search over a local document collection",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "root",
				Usage: "project directory (defaults to the current directory)",
				Value: ".",
			},
		},
		Action: runShell,
		Commands: []*cli.Command{
			addCommand,
			removeCommand,
			searchCommand,
			rebuildCommand,
			scanCommand,
			watchCommand,
			doctorCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openIndex(c *cli.Context) (*config.Config, *index.Index, error) {
	root := c.String("root")
	cfg, err := config.Load(root)
	if err != nil {
		return nil, nil, err
	}
	stop := stopword.Load(cfg.StopwordsPath())
	idx, err := index.Load(cfg.FilebasePath(), cfg.IndexPath(), stop)
	if err != nil {
		return nil, nil, err
	}
	return cfg, idx, nil
}

var addCommand = &cli.Command{
	Name:      "add",
	Usage:     "add a file to the index",
	ArgsUsage: "<path>",
	Action: func(c *cli.Context) error {
		_, idx, err := openIndex(c)
		if err != nil {
			return err
		}
		if c.NArg() < 1 {
			return cli.Exit("add requires a file path", 1)
		}
		return idx.Add(c.Args().First())
	},
}

var removeCommand = &cli.Command{
	Name:      "remove",
	Usage:     "remove a file from the index",
	ArgsUsage: "<path>",
	Action: func(c *cli.Context) error {
		_, idx, err := openIndex(c)
		if err != nil {
			return err
		}
		if c.NArg() < 1 {
			return cli.Exit("remove requires a file path", 1)
		}
		return idx.RemoveByName(c.Args().First())
	},
}

var rebuildCommand = &cli.Command{
	Name:  "rebuild",
	Usage: "rebuild the index from the current filebase",
	Action: func(c *cli.Context) error {
		_, idx, err := openIndex(c)
		if err != nil {
			return err
		}
		return idx.Rebuild()
	},
}

var searchCommand = &cli.Command{
	Name:      "search",
	Usage:     "search the index",
	ArgsUsage: "<query>",
	Action: func(c *cli.Context) error {
		cfg, idx, err := openIndex(c)
		if err != nil {
			return err
		}
		if c.NArg() < 1 {
			return cli.Exit("search requires a query", 1)
		}
		q := strings.Join(c.Args().Slice(), " ")
		printSearch(os.Stdout, idx, cfg, q)
		return nil
	},
}

var scanCommand = &cli.Command{
	Name:      "scan",
	Usage:     "add every matching file under a directory",
	ArgsUsage: "[dir]",
	Action: func(c *cli.Context) error {
		cfg, idx, err := openIndex(c)
		if err != nil {
			return err
		}
		dir := cfg.Root
		if c.NArg() > 0 {
			dir = c.Args().First()
		}
		res, err := scan.Run(idx, dir, cfg.ScanIncludes, cfg.ScanExcludes)
		if err != nil {
			return err
		}
		fmt.Printf("added %d files, skipped %d, %d errors\n", len(res.Added), len(res.Skipped), len(res.Errors))
		return nil
	},
}

var watchCommand = &cli.Command{
	Name:      "watch",
	Usage:     "keep the index up to date as files change",
	ArgsUsage: "[dir]",
	Action: func(c *cli.Context) error {
		cfg, idx, err := openIndex(c)
		if err != nil {
			return err
		}
		dir := cfg.Root
		if c.NArg() > 0 {
			dir = c.Args().First()
		}
		w, err := watch.New(idx, dir, cfg.ScanIncludes, cfg.ScanExcludes, time.Duration(cfg.WatchDebounceMs)*time.Millisecond)
		if err != nil {
			return err
		}
		defer w.Close()
		fmt.Printf("watching %s, press Ctrl-C to stop\n", dir)
		return w.Run(c.Context)
	},
}

var doctorCommand = &cli.Command{
	Name:  "doctor",
	Usage: "report documents whose content has changed since the previous doctor run",
	Action: func(c *cli.Context) error {
		cfg, idx, err := openIndex(c)
		if err != nil {
			return err
		}
		sums := fingerprint.Load(cfg.Root + "/.textdex.checksums")
		drifted := 0
		for _, d := range idx.Docs {
			content, err := os.ReadFile(d.Name)
			if err != nil {
				diag.Index("doctor: cannot read %q: %v", d.Name, err)
				continue
			}
			if sums.Drifted(d.Name, content) {
				fmt.Printf("drifted: %s\n", d.Name)
				drifted++
			}
			sums.Record(d.Name, content)
		}
		if err := sums.Save(); err != nil {
			return err
		}
		fmt.Printf("%d of %d documents drifted\n", drifted, len(idx.Docs))
		return nil
	},
}

// runShell is the default action: a line-oriented REPL implementing
// the shell contract (prompt " > "; exit, rebuild index, search for
// <query>, add file <path>, remove file <path>).
func runShell(c *cli.Context) error {
	cfg, idx, err := openIndex(c)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print(" > ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}
		line = strings.TrimRight(line, "\r\n")

		switch {
		case line == "exit":
			return nil
		case line == "rebuild index":
			if err := idx.Rebuild(); err != nil {
				fmt.Println("error:", err)
			}
		case strings.HasPrefix(line, "search for "):
			printSearch(os.Stdout, idx, cfg, strings.TrimPrefix(line, "search for "))
		case strings.HasPrefix(line, "add file "):
			if err := idx.Add(strings.TrimPrefix(line, "add file ")); err != nil {
				fmt.Println("error:", err)
			}
		case strings.HasPrefix(line, "remove file "):
			if err := idx.RemoveByName(strings.TrimPrefix(line, "remove file ")); err != nil {
				fmt.Println("error:", err)
			}
		default:
			fmt.Println("unrecognized command:", line)
		}
	}
}

func printSearch(out *os.File, idx *index.Index, cfg *config.Config, q string) {
	groups, err := query.RunN(idx, q, "._tmp_search_doc", cfg.MaxResults)
	if err != nil {
		fmt.Fprintln(out, "error:", err)
		return
	}

	if len(groups) == 0 {
		fmt.Fprintf(out, "No documents found for search term %s\n", q)
		if cfg.SuggestOnNoResult {
			printSuggestions(out, idx, q)
		}
		return
	}

	fmt.Fprintln(out, "Results (showing no more than 10, there might be more):")
	count := 0
	for _, g := range groups {
		fmt.Fprintf(out, "Documents containing %s:\n", g.Label)
		for _, e := range g.Entries {
			count++
			fmt.Fprintf(out, "[%d] %s\n", count, e.Formatted)
		}
	}
}

func printSuggestions(out *os.File, idx *index.Index, q string) {
	var stems []string
	for _, tok := range normalize.Tokens(q) {
		if stem := porter.Stem(tok); stem != "" {
			stems = append(stems, stem)
		}
	}
	suggestions := query.Suggest(idx, stems)
	for _, s := range suggestions {
		fmt.Fprintf(out, "did you mean %s?\n", s)
	}
}
