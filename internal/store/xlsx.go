package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/nguyentantai21042004/meetlog/internal/summary"
	"github.com/nguyentantai21042004/meetlog/pkg/apperror"
)

// Append loads the workbook, appends row and atomically replaces the file.
func (s *implStore) Append(ctx context.Context, row *summary.Row) error {
	table, err := s.Read(ctx)
	if err != nil {
		return err
	}

	before := len(table.Header)
	table.appendRow(row)
	if added := len(table.Header) - before; added > 0 && before > 0 {
		s.logger.Info(ctx, "Store header extended with %d new columns", added)
	}

	if err := s.write(ctx, table); err != nil {
		return err
	}

	s.logger.Info(ctx, "Appended row %d to %s (%d columns)", table.Len(), s.path, len(table.Header))
	return nil
}

func (s *implStore) Read(ctx context.Context) (Table, error) {
	empty := Table{Sheet: s.sheet}

	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug(ctx, "Store %s does not exist yet, starting empty", s.path)
			return empty, nil
		}
		return Table{}, apperror.ErrIO("read", s.path, err)
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return Table{}, apperror.ErrIO("read", s.path, err)
		}
		return Table{}, apperror.ErrFormat(s.path, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn(ctx, "Failed to close workbook %s: %v", s.path, err)
		}
	}()

	sheet := s.resolveSheet(f)
	if sheet == "" {
		return Table{}, apperror.ErrFormat(s.path, fmt.Errorf("workbook has no worksheets"))
	}

	lastRow, err := usedRows(f, sheet)
	if err != nil {
		return Table{}, apperror.ErrFormat(s.path, fmt.Errorf("read dimension of sheet %q: %w", sheet, err))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, apperror.ErrFormat(s.path, fmt.Errorf("read sheet %q: %w", sheet, err))
	}

	return parseRows(s.path, sheet, rows, lastRow)
}

// usedRows returns the last row number of the sheet's recorded dimension,
// or 0 when the sheet has none. GetRows trims trailing empty rows, so this
// is the only trace of a trailing row whose cells are all empty.
func usedRows(f *excelize.File, sheet string) (int, error) {
	ref, err := f.GetSheetDimension(sheet)
	if err != nil {
		return 0, err
	}
	if ref == "" {
		return 0, nil
	}

	parts := strings.Split(ref, ":")
	_, row, err := excelize.CellNameToCoordinates(parts[len(parts)-1])
	if err != nil {
		return 0, nil
	}
	return row, nil
}

// resolveSheet prefers the configured sheet and falls back to the first one.
func (s *implStore) resolveSheet(f *excelize.File) string {
	sheets := f.GetSheetList()
	for _, name := range sheets {
		if name == s.sheet {
			return name
		}
	}
	if len(sheets) > 0 {
		return sheets[0]
	}
	return ""
}

// parseRows turns raw sheet rows into a Table. The first non-empty row is
// the header. Blank rows after it are data rows with empty cells, and the
// table extends to lastRow when the sheet dimension reaches past rows.
func parseRows(path, sheet string, rows [][]string, lastRow int) (Table, error) {
	t := Table{Sheet: sheet}

	headerFound := false
	for i, r := range rows {
		if !headerFound {
			if isBlank(r) {
				continue
			}
			seen := make(map[string]bool, len(r))
			for col, name := range r {
				if name == "" {
					return Table{}, apperror.ErrFormat(path, fmt.Errorf("header cell %d is empty", col+1))
				}
				if seen[name] {
					return Table{}, apperror.ErrFormat(path, fmt.Errorf("duplicate header column %q", name))
				}
				seen[name] = true
			}
			t.Header = append([]string(nil), r...)
			headerFound = true
			continue
		}

		if len(r) > len(t.Header) {
			return Table{}, apperror.ErrFormat(path, fmt.Errorf("row %d has %d cells but the header has %d", i+1, len(r), len(t.Header)))
		}
		cells := make([]string, len(t.Header))
		copy(cells, r)
		t.Rows = append(t.Rows, cells)
	}

	if headerFound {
		for n := len(rows); n < lastRow; n++ {
			t.Rows = append(t.Rows, make([]string, len(t.Header)))
		}
	}

	return t, nil
}

func isBlank(r []string) bool {
	for _, c := range r {
		if c != "" {
			return false
		}
	}
	return true
}

// write renders t into a new workbook, writes it next to the target and
// renames it into place, so the previous store survives any failure.
func (s *implStore) write(ctx context.Context, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if t.Sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, t.Sheet); err != nil {
			return apperror.ErrIO("write", s.path, fmt.Errorf("name sheet %q: %w", t.Sheet, err))
		}
	}

	if err := setRow(f, t.Sheet, 1, t.Header); err != nil {
		return apperror.ErrIO("write", s.path, err)
	}
	for i, r := range t.Rows {
		if err := setRow(f, t.Sheet, i+2, r); err != nil {
			return apperror.ErrIO("write", s.path, err)
		}
	}

	// Empty cells are not stored, so the dimension is what keeps trailing
	// all-empty rows.
	if len(t.Header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(t.Header), len(t.Rows)+1)
		if err != nil {
			return apperror.ErrIO("write", s.path, err)
		}
		if err := f.SetSheetDimension(t.Sheet, "A1:"+last); err != nil {
			return apperror.ErrIO("write", s.path, fmt.Errorf("set dimension: %w", err))
		}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return apperror.ErrIO("write", s.path, fmt.Errorf("create store dir: %w", err))
	}

	mode := os.FileMode(0644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return apperror.ErrIO("write", s.path, fmt.Errorf("create temp file: %w", err))
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			if err := os.Remove(tmpPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
				s.logger.Warn(ctx, "Failed to remove temp file %s: %v", tmpPath, err)
			}
		}
	}()

	if err := f.Write(tmp); err != nil {
		return apperror.ErrIO("write", s.path, fmt.Errorf("encode workbook: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return apperror.ErrIO("write", s.path, fmt.Errorf("sync temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return apperror.ErrIO("write", s.path, fmt.Errorf("close temp file: %w", err))
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return apperror.ErrIO("write", s.path, fmt.Errorf("chmod temp file: %w", err))
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return apperror.ErrIO("write", s.path, fmt.Errorf("replace store: %w", err))
	}
	committed = true

	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return f.SetSheetRow(sheet, cell, &values)
}
