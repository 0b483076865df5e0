// Package spreadsheet reads request forms from and writes reports to
// OOXML workbooks.
package spreadsheet

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/bid-labs/ticketgen/internal/domain/submission"
	"github.com/bid-labs/ticketgen/internal/shared/logger"
)

// Extractor maps the fixed cell layout of a request form to a field map.
type Extractor struct {
	layout submission.Layout
	logger logger.Interface
}

func NewExtractor(layout submission.Layout, log logger.Interface) *Extractor {
	return &Extractor{
		layout: layout,
		logger: log,
	}
}

// ExtractFile opens the workbook at path and extracts it.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (submission.FieldMap, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return e.extract(ctx, f)
}

// Extract reads a workbook from r.
func (e *Extractor) Extract(ctx context.Context, r io.Reader) (submission.FieldMap, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()
	return e.extract(ctx, f)
}

// extract returns every field, empty when unreadable. Only a missing sheet
// is an error.
func (e *Extractor) extract(ctx context.Context, f *excelize.File) (submission.FieldMap, error) {
	sheet := e.layout.SheetName
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, &submission.SheetNotFoundError{Sheet: sheet, Available: f.GetSheetList()}
	}

	r := &sheetReader{f: f, sheet: sheet, logger: e.logger}
	fields := submission.NewFieldMap()

	for name, cell := range e.layout.Cells {
		fields[name] = r.value(cell.Row, cell.Col)
	}
	for name, scan := range e.layout.Scans {
		fields[name] = r.scan(scan)
	}
	for name, ls := range e.layout.Labelled {
		fields[name] = r.labelled(ls)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logger.Debugw("workbook extracted",
		"sheet", sheet,
		"client", fields[submission.FieldClient],
		"project", fields[submission.FieldProject],
		"test_type", fields[submission.FieldTestType])
	return fields, nil
}

type sheetReader struct {
	f      *excelize.File
	sheet  string
	logger logger.Interface
}

// value reads the zero-based cell (row, col). Read failures degrade to "".
func (r *sheetReader) value(row, col int) string {
	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		r.logger.Debugw("invalid cell coordinates", "row", row, "col", col, "error", err)
		return ""
	}

	raw, err := r.f.GetCellValue(r.sheet, ref, excelize.Options{RawCellValue: true})
	if err != nil {
		r.logger.Debugw("cell read failed", "cell", ref, "error", err)
		return ""
	}
	if raw == "" {
		return ""
	}

	typ, err := r.f.GetCellType(r.sheet, ref)
	if err != nil {
		return NormalizeText(raw)
	}
	numeric := typ == excelize.CellTypeNumber || typ == excelize.CellTypeUnset
	return normalizeRaw(raw, numeric)
}

// scan joins non-empty cells downwards until the first empty one or the
// ceiling row.
func (r *sheetReader) scan(s submission.Scan) string {
	var lines []string
	for row := s.StartRow; row < s.Ceiling; row++ {
		v := r.value(row, s.Col)
		if v == "" {
			break
		}
		lines = append(lines, v)
	}
	return strings.Join(lines, "\n")
}

func (r *sheetReader) labelled(ls submission.LabelScan) string {
	for row := ls.FromRow; row <= ls.ToRow; row++ {
		if containsFolded(r.value(row, ls.LabelCol), ls.Marker) {
			content := ls.Content
			content.StartRow = row + 1
			return r.scan(content)
		}
	}
	return ""
}
