package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/zabl/finextract/model"
	"github.com/zabl/finextract/pages"
	"github.com/zabl/finextract/reader"
	"github.com/zabl/finextract/tables"
)

// streamPageBound is the page count the stream engine resolves ranges
// against before it knows the document's length.
const streamPageBound = 1000

// Stream detects tables from text alignment on pages without rulings.
type Stream struct {
	Config tables.Config
}

// Name returns "Stream"
func (Stream) Name() string { return NameStream }

// Extract implements Engine.
//
// The page specification is resolved against a fixed bound of 1000 pages
// and handed to the detector as a 1-based page list; pages past the end
// of the document are then ignored.
func (s Stream) Extract(ctx context.Context, path, pageSpec string) ([]model.RawTable, error) {
	cfg := s.Config
	if cfg == (tables.Config{}) {
		cfg = tables.DefaultConfig()
	}
	sd := tables.NewStreamDetector(cfg)

	var out []model.RawTable
	err := eachPage(ctx, s.Name(), path, streamPages(pageSpec), func(page *reader.Page) error {
		frags, err := fragments(page)
		if err != nil {
			return err
		}
		for _, t := range sd.Detect(frags) {
			if t.RowCount() > 0 {
				out = append(out, rawTable(page.Index, t))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func streamPages(spec string) func(int) ([]int, error) {
	return func(pageCount int) ([]int, error) {
		list := pages.All
		if !pages.IsAll(spec) {
			set, err := pages.Resolve(spec, streamPageBound)
			if err != nil {
				return nil, err
			}
			list = set.OneBased()
		}
		return parseOneBased(list, pageCount)
	}
}

// parseOneBased reads a comma list of 1-based page numbers, or "all",
// and returns the zero-based indices below pageCount in list order.
func parseOneBased(list string, pageCount int) ([]int, error) {
	if pages.IsAll(list) {
		out := make([]int, pageCount)
		for i := range out {
			out[i] = i
		}
		return out, nil
	}
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}

	var out []int
	for _, tok := range strings.Split(list, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			return nil, fmt.Errorf("invalid page number %q: %w", tok, err)
		}
		if n >= 1 && n <= pageCount {
			out = append(out, n-1)
		}
	}
	return out, nil
}
