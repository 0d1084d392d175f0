package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/cache"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/internal/domain"
	"github.com/Abdelmonem-Adel/Inventory-Analysis-Project/pkg/logger"
)

// ErrSourceUnavailable wraps any upstream Sheets API failure so handlers can
// map it to a 502 without inspecting Google error types.
var ErrSourceUnavailable = errors.New("sheet source unavailable")

// Source is the read surface the services depend on. The concrete Service
// talks to the Google Sheets API; tests substitute an in-memory fake.
type Source interface {
	FetchAll(ctx context.Context) ([]domain.RawRow, error)
	FetchSheet(ctx context.Context, title string) ([]domain.RawRow, error)
	SheetTitles(ctx context.Context) ([]string, error)
	Probe(ctx context.Context) (*ProbeResult, error)
}

// ProbeResult is a lightweight connectivity check payload.
type ProbeResult struct {
	SpreadsheetTitle string   `json:"spreadsheet_title"`
	Sheets           []string `json:"sheets"`
	FirstSheetRows   int      `json:"first_sheet_rows"`
	SampleHeaders    []string `json:"sample_headers"`
}

type sheetMeta struct {
	title   string
	rows    int64
	columns int64
}

// Service reads a single spreadsheet through the Sheets API, caching raw
// cell data per bounded range.
type Service struct {
	srv           *sheets.Service
	spreadsheetID string
	cache         *cache.SheetCache
}

// NewService authenticates with a service-account credentials JSON blob and
// returns a read-only client for the given spreadsheet.
func NewService(credentialsJSON, spreadsheetID string, c *cache.SheetCache) (*Service, error) {
	config, err := google.JWTConfigFromJSON(
		[]byte(credentialsJSON),
		sheets.SpreadsheetsReadonlyScope,
	)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials to config: %v", err)
	}

	client := config.Client(context.Background())
	srv, err := sheets.NewService(context.Background(), option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("unable to build sheets client: %v", err)
	}

	return &Service{srv: srv, spreadsheetID: spreadsheetID, cache: c}, nil
}

// ClearCache drops all cached ranges for this spreadsheet.
func (s *Service) ClearCache() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

func (s *Service) metadata(ctx context.Context) ([]sheetMeta, string, error) {
	resp, err := s.srv.Spreadsheets.Get(s.spreadsheetID).
		Fields("properties(title),sheets(properties(title,gridProperties(rowCount,columnCount)))").
		Context(ctx).Do()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	metas := make([]sheetMeta, 0, len(resp.Sheets))
	for _, sh := range resp.Sheets {
		p := sh.Properties
		if p == nil || p.GridProperties == nil {
			continue
		}
		metas = append(metas, sheetMeta{
			title:   p.Title,
			rows:    p.GridProperties.RowCount,
			columns: p.GridProperties.ColumnCount,
		})
	}

	title := ""
	if resp.Properties != nil {
		title = resp.Properties.Title
	}
	return metas, title, nil
}

// a1Range bounds the fetch to the sheet's actual grid so the API never
// returns the full default column set.
func (m sheetMeta) a1Range() string {
	return fmt.Sprintf("%s!A1:%s%d", m.title, columnToLetter(int(m.columns)), m.rows)
}

// columnToLetter converts a 1-based column count to its A1 letter (1→A,
// 26→Z, 27→AA).
func columnToLetter(column int) string {
	letter := ""
	for column > 0 {
		column--
		letter = string(rune('A'+column%26)) + letter
		column /= 26
	}
	return letter
}

// fetchRanges loads the given ranges, serving from cache where possible and
// batch-fetching the misses unformatted in one API call.
func (s *Service) fetchRanges(ctx context.Context, metas []sheetMeta) (map[string][][]any, error) {
	out := make(map[string][][]any, len(metas))
	var misses []sheetMeta

	for _, m := range metas {
		if s.cache != nil {
			if values, ok := s.cache.Get(cache.Key(s.spreadsheetID, m.a1Range())); ok {
				out[m.title] = values
				continue
			}
		}
		misses = append(misses, m)
	}
	if len(misses) == 0 {
		return out, nil
	}

	call := s.srv.Spreadsheets.Values.BatchGet(s.spreadsheetID).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx)
	for _, m := range misses {
		call = call.Ranges(m.a1Range())
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	if len(resp.ValueRanges) != len(misses) {
		return nil, fmt.Errorf("%w: expected %d ranges, got %d", ErrSourceUnavailable, len(misses), len(resp.ValueRanges))
	}

	for i, vr := range resp.ValueRanges {
		m := misses[i]
		values := make([][]any, len(vr.Values))
		for j, row := range vr.Values {
			values[j] = row
		}
		out[m.title] = values
		if s.cache != nil {
			s.cache.Set(cache.Key(s.spreadsheetID, m.a1Range()), values)
		}
	}

	logger.Log.Debug().
		Int("sheets", len(metas)).
		Int("fetched", len(misses)).
		Msg("sheet ranges loaded")

	return out, nil
}

// FetchAll returns every row of every sheet in the spreadsheet, tagged with
// its originating sheet title.
func (s *Service) FetchAll(ctx context.Context) ([]domain.RawRow, error) {
	metas, _, err := s.metadata(ctx)
	if err != nil {
		return nil, err
	}

	values, err := s.fetchRanges(ctx, metas)
	if err != nil {
		return nil, err
	}

	var rows []domain.RawRow
	for _, m := range metas {
		rows = append(rows, FormatRows(m.title, values[m.title])...)
	}
	return rows, nil
}

// FetchSheet returns the rows of one sheet, matched case-insensitively.
func (s *Service) FetchSheet(ctx context.Context, title string) ([]domain.RawRow, error) {
	metas, _, err := s.metadata(ctx)
	if err != nil {
		return nil, err
	}

	for _, m := range metas {
		if strings.EqualFold(m.title, title) {
			values, err := s.fetchRanges(ctx, []sheetMeta{m})
			if err != nil {
				return nil, err
			}
			return FormatRows(m.title, values[m.title]), nil
		}
	}
	return nil, fmt.Errorf("sheet %q not found", title)
}

// SheetTitles lists the spreadsheet's sheet titles in grid order.
func (s *Service) SheetTitles(ctx context.Context) ([]string, error) {
	metas, _, err := s.metadata(ctx)
	if err != nil {
		return nil, err
	}
	titles := make([]string, len(metas))
	for i, m := range metas {
		titles[i] = m.title
	}
	return titles, nil
}

// Probe verifies credentials and spreadsheet access, returning enough detail
// to diagnose a misconfigured sheet without dumping its data.
func (s *Service) Probe(ctx context.Context) (*ProbeResult, error) {
	metas, title, err := s.metadata(ctx)
	if err != nil {
		return nil, err
	}

	res := &ProbeResult{SpreadsheetTitle: title}
	for _, m := range metas {
		res.Sheets = append(res.Sheets, m.title)
	}
	if len(metas) == 0 {
		return res, nil
	}

	values, err := s.fetchRanges(ctx, metas[:1])
	if err != nil {
		return nil, err
	}
	grid := values[metas[0].title]
	res.FirstSheetRows = len(grid)
	if len(grid) > 0 {
		for _, h := range grid[0] {
			res.SampleHeaders = append(res.SampleHeaders, fmt.Sprint(h))
		}
	}
	return res, nil
}
