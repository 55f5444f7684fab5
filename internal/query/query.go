// Package query implements the TF-IDF search engine: it materializes
// a query as a synthetic document inside the index (see
// internal/index's AddSynthetic), scores every real document's
// distance to it, and groups the survivors by which query terms they
// matched.
package query

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/standardbeagle/textdex/internal/diag"
	"github.com/standardbeagle/textdex/internal/index"
	"github.com/standardbeagle/textdex/internal/normalize"
	"github.com/standardbeagle/textdex/internal/xerrors"
)

// MaxResults is the normative cap on the number of ranked documents
// returned before grouping; the result is top-K, not top-(K+1).
const MaxResults = 10

const defaultTmpDocName = "._tmp_search_doc"

// Entry is one ranked, formatted search hit.
type Entry struct {
	Name      string
	Dist      float64
	Formatted string // "%08.5f %s"
}

// Group is a run of consecutive results (after ranking) that matched
// the same set of query terms.
type Group struct {
	Label   string
	Entries []Entry

	flag []bool
}

// Run executes a search against idx, returning at most MaxResults
// ranked documents. tmpPath names the transient file used to
// materialize the query as a synthetic document; an empty tmpPath
// defaults to "._tmp_search_doc". The file is removed before Run
// returns, whether or not the search succeeded.
func Run(idx *index.Index, queryText, tmpPath string) ([]Group, error) {
	return RunN(idx, queryText, tmpPath, MaxResults)
}

// RunN is Run with an explicit cap on the number of ranked documents,
// e.g. a caller threading through internal/config's configured
// search max_results setting.
func RunN(idx *index.Index, queryText, tmpPath string, maxResults int) ([]Group, error) {
	if tmpPath == "" {
		tmpPath = defaultTmpDocName
	}
	if maxResults <= 0 {
		maxResults = MaxResults
	}

	normalized := normalize.FoldLine(queryText)
	if err := os.WriteFile(tmpPath, []byte(normalized+"\n"), 0o644); err != nil {
		diag.Query("cannot write transient query document %q: %v", tmpPath, err)
		return nil, xerrors.NewQueryError(queryText, err)
	}
	defer os.Remove(tmpPath)

	if err := idx.AddSynthetic(defaultTmpDocName, tmpPath); err != nil {
		diag.Query("failed to materialize query %q: %v", queryText, err)
		return nil, xerrors.NewQueryError(queryText, err)
	}

	groups := scoreAndRank(idx, maxResults)

	if err := idx.Remove(0); err != nil {
		diag.Query("failed to remove transient query document: %v", err)
	}

	return groups, nil
}

type cursor struct {
	offset int
	idf    float64
	bit    int // index into the query-term flag vector, -1 if not a query term
}

// scoreAndRank assumes idx.Docs[0] is the synthetic query document
// just inserted by Run, and idx.Docs[1:] are the real corpus.
func scoreAndRank(idx *index.Index, maxResults int) []Group {
	n := len(idx.Docs)
	if n == 0 {
		return nil
	}

	cursors := make([]cursor, len(idx.Words))
	qVec := make([]float64, len(idx.Words))
	var queryStems []string

	for wi, w := range idx.Words {
		idf := math.Log(float64(n) / float64(len(w.Postings)))
		c := cursor{idf: idf, bit: -1}
		if len(w.Postings) > 0 && w.Postings[0].DocID == 0 {
			c.offset = 1
			c.bit = len(queryStems)
			queryStems = append(queryStems, w.Stem)
			qVec[wi] = w.Postings[0].TF * idf
		}
		cursors[wi] = c
	}

	var threshold float64
	for _, v := range qVec {
		threshold += v * v
	}
	threshold = math.Sqrt(threshold)

	type hit struct {
		docID int
		dist  float64
		flag  []bool
	}
	var hits []hit

	for d := 1; d < n; d++ {
		var dist2 float64
		flag := make([]bool, len(queryStems))
		matched := false

		for wi, w := range idx.Words {
			c := &cursors[wi]
			var delta float64
			if c.offset < len(w.Postings) && w.Postings[c.offset].DocID == d {
				delta = w.Postings[c.offset].TF * c.idf
				c.offset++
				if c.bit >= 0 {
					flag[c.bit] = true
					matched = true
				}
			}
			diff := delta - qVec[wi]
			dist2 += diff * diff
		}

		if !matched {
			continue
		}
		dist := math.Sqrt(dist2)
		if dist >= threshold {
			continue
		}
		hits = append(hits, hit{docID: d, dist: dist, flag: flag})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].docID < hits[j].docID
	})
	if len(hits) > maxResults {
		hits = hits[:maxResults]
	}

	var groups []Group
	for _, h := range hits {
		name := idx.Docs[h.docID].Name
		entry := Entry{
			Name:      name,
			Dist:      h.dist,
			Formatted: fmt.Sprintf("%08.5f %s", h.dist, name),
		}
		if len(groups) > 0 && flagsEqual(groups[len(groups)-1].flag, h.flag) {
			last := &groups[len(groups)-1]
			last.Entries = append(last.Entries, entry)
			continue
		}
		groups = append(groups, Group{
			Label:   label(queryStems, h.flag),
			Entries: []Entry{entry},
			flag:    h.flag,
		})
	}
	return groups
}

func flagsEqual(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func label(queryStems []string, flag []bool) string {
	var matched []string
	for i, set := range flag {
		if set {
			matched = append(matched, queryStems[i])
		}
	}
	s := ""
	for i, m := range matched {
		if i > 0 {
			s += ", "
		}
		s += m
	}
	return s
}
