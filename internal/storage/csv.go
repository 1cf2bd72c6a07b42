package storage

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/runnerr0/sitelog/internal/tally"
)

// utf8BOM lets spreadsheet tools detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{"site", "seconds"}

const csvExt = ".csv"

// CSVStore keeps one <day>.csv file per day in a directory.
type CSVStore struct {
	dir string
}

// NewCSVStore returns a store rooted at dir, creating it if needed.
func NewCSVStore(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &CSVStore{dir: dir}, nil
}

// Dir returns the directory holding the day files.
func (s *CSVStore) Dir() string {
	return s.dir
}

func (s *CSVStore) path(day string) string {
	return filepath.Join(s.dir, day+csvExt)
}

// SaveDay writes totals to <day>.csv, replacing any previous file. Rows
// follow the totals' insertion order.
func (s *CSVStore) SaveDay(ctx context.Context, day string, totals *tally.Totals) error {
	if err := ValidateDay(day); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, totals); err != nil {
		return fmt.Errorf("encode %s: %w", day, err)
	}

	tmp, err := os.CreateTemp(s.dir, day+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", day, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", day, err)
	}

	if err := os.Rename(tmp.Name(), s.path(day)); err != nil {
		return fmt.Errorf("replace %s: %w", day, err)
	}
	return nil
}

// LoadDay reads <day>.csv. A missing file yields empty totals.
func (s *CSVStore) LoadDay(ctx context.Context, day string) (*tally.Totals, error) {
	if err := ValidateDay(day); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path(day))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tally.NewTotals(), nil
		}
		return nil, fmt.Errorf("open %s: %w", day, err)
	}
	defer f.Close()

	totals, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", day, err)
	}
	return totals, nil
}

// ListDays returns the days with a file, oldest first.
func (s *CSVStore) ListDays(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list data directory: %w", err)
	}

	days := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), csvExt) {
			continue
		}
		day := strings.TrimSuffix(e.Name(), csvExt)
		if ValidateDay(day) != nil {
			continue
		}
		days = append(days, day)
	}
	sort.Strings(days)
	return days, nil
}

// DeleteDay removes <day>.csv.
func (s *CSVStore) DeleteDay(ctx context.Context, day string) error {
	if err := ValidateDay(day); err != nil {
		return err
	}
	if err := os.Remove(s.path(day)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("day %s not found", day)
		}
		return fmt.Errorf("delete %s: %w", day, err)
	}
	return nil
}

// PruneBefore deletes every day strictly older than day and returns how many
// were removed.
func (s *CSVStore) PruneBefore(ctx context.Context, day string) (int64, error) {
	if err := ValidateDay(day); err != nil {
		return 0, err
	}
	days, err := s.ListDays(ctx)
	if err != nil {
		return 0, err
	}

	var n int64
	for _, d := range days {
		if d >= day {
			break
		}
		if err := s.DeleteDay(ctx, d); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

// PurgeAll deletes every day file.
func (s *CSVStore) PurgeAll(ctx context.Context) error {
	days, err := s.ListDays(ctx)
	if err != nil {
		return err
	}
	for _, d := range days {
		if err := s.DeleteDay(ctx, d); err != nil {
			return fmt.Errorf("purge: %w", err)
		}
	}
	return nil
}

// GetStats scans every day file.
func (s *CSVStore) GetStats(ctx context.Context) (*Stats, error) {
	days, err := s.ListDays(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{Days: int64(len(days))}
	if len(days) == 0 {
		return stats, nil
	}
	stats.OldestDay = days[0]
	stats.NewestDay = days[len(days)-1]

	all := tally.NewTotals()
	for _, d := range days {
		t, err := s.LoadDay(ctx, d)
		if err != nil {
			return nil, err
		}
		all.Merge(t)
	}
	stats.TotalSeconds = all.Sum()
	stats.TopSites = topSites(all, topSitesLimit)

	return stats, nil
}

// Close is a no-op; CSVStore holds no open handles.
func (s *CSVStore) Close() error {
	return nil
}

// topSites returns the n largest sites, ties broken by label.
func topSites(t *tally.Totals, n int) []SiteSeconds {
	sites := t.Sites()
	sort.SliceStable(sites, func(i, j int) bool {
		if sites[i].Seconds != sites[j].Seconds {
			return sites[i].Seconds > sites[j].Seconds
		}
		return sites[i].Label < sites[j].Label
	})
	if len(sites) > n {
		sites = sites[:n]
	}
	out := make([]SiteSeconds, len(sites))
	for i, s := range sites {
		out[i] = SiteSeconds{Site: s.Label, Seconds: s.Seconds}
	}
	return out
}

// WriteCSV encodes totals as a BOM-prefixed site,seconds table.
func WriteCSV(w io.Writer, totals *tally.Totals) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range totals.Sites() {
		if err := cw.Write([]string{s.Label, strconv.FormatInt(s.Seconds, 10)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV decodes a site,seconds table, with or without a leading BOM.
// Duplicate sites are summed.
func ReadCSV(r io.Reader) (*tally.Totals, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM)) //nolint:errcheck
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = len(csvHeader)

	totals := tally.NewTotals()

	header, err := cr.Read()
	if err == io.EOF {
		return totals, nil
	}
	if err != nil {
		return nil, err
	}
	if header[0] != csvHeader[0] || header[1] != csvHeader[1] {
		return nil, fmt.Errorf("unexpected header %q", header)
	}

	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		secs, err := strconv.ParseInt(rec[1], 10, 64)
		if err != nil || secs < 0 {
			line, _ := cr.FieldPos(1)
			return nil, fmt.Errorf("line %d: invalid seconds %q", line, rec[1])
		}
		totals.Add(rec[0], secs)
	}

	return totals, nil
}
