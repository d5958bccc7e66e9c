package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"news-sentiment-go/internal/aggregate"
	"news-sentiment-go/internal/logger"
	"news-sentiment-go/internal/store"
	"news-sentiment-go/internal/types"
)

// Output keys, consumed by the plotting and review collaborators.
const (
	SentimentCSVKey    = "csv/sentiment_results.csv"
	CostCSVKey         = "csv/service_costs.csv"
	PolarizationCSVKey = "csv/polarization.csv"
	WorkbookKey        = "xlsx/report.xlsx"
)

// Writer renders the run's result tables and persists them through the store
// so both legs (local + durable) carry the reports.
type Writer struct {
	store *store.Store
	log   *logger.Logger
}

func NewWriter(st *store.Store, log *logger.Logger) *Writer {
	return &Writer{store: st, log: log}
}

// WriteAll renders every table. The CSVs are the primary contract; the
// workbook bundles the same tables for manual review.
func (w *Writer) WriteAll(ctx context.Context, records []types.SentimentRecord, lines []types.CostLine, summary aggregate.Summary) error {
	if err := w.writeCSV(ctx, SentimentCSVKey, sentimentRows(records)); err != nil {
		return err
	}
	if err := w.writeCSV(ctx, CostCSVKey, costRows(lines)); err != nil {
		return err
	}
	if err := w.writeCSV(ctx, PolarizationCSVKey, polarizationRows(summary)); err != nil {
		return err
	}
	return w.writeWorkbook(ctx, records, lines, summary)
}

func sentimentRows(records []types.SentimentRecord) [][]string {
	rows := [][]string{{"source", "content_type", "sentiment", "positive", "negative", "neutral", "mixed"}}
	for _, r := range records {
		rows = append(rows, []string{
			r.Source, r.Type, r.Sentiment,
			formatScore(r.Positive), formatScore(r.Negative), formatScore(r.Neutral), formatScore(r.Mixed),
		})
	}
	return rows
}

func costRows(lines []types.CostLine) [][]string {
	rows := [][]string{{"service", "usage", "cost_usd"}}
	for _, l := range lines {
		usage := strconv.FormatFloat(l.Usage, 'f', -1, 64)
		if l.Service == types.TotalService {
			usage = ""
		}
		rows = append(rows, []string{l.Service, usage, fmt.Sprintf("%.6f", l.CostUSD)})
	}
	return rows
}

func polarizationRows(summary aggregate.Summary) [][]string {
	rows := [][]string{{"content_type", "source", "polarization_index"}}
	for _, g := range summary.BySource {
		rows = append(rows, []string{g.Type, g.Source, fmt.Sprintf("%.6f", g.Polarization())})
	}
	return rows
}

func (w *Writer) writeCSV(ctx context.Context, key string, rows [][]string) error {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("render %s: %w", key, err)
	}
	if err := w.store.Put(ctx, key, buf.Bytes()); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	w.log.WithField("key", key).WithField("rows", len(rows)-1).Info("report table written")
	return nil
}

func (w *Writer) writeWorkbook(ctx context.Context, records []types.SentimentRecord, lines []types.CostLine, summary aggregate.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []struct {
		name string
		rows [][]string
	}{
		{"Sentiment", sentimentRows(records)},
		{"Costs", costRows(lines)},
		{"Polarization", polarizationRows(summary)},
	}
	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return fmt.Errorf("add sheet %s: %w", sheet.name, err)
			}
		}
		for rowIdx, row := range sheet.rows {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
			if err != nil {
				return err
			}
			values := make([]interface{}, len(row))
			for j, v := range row {
				values[j] = v
			}
			if err := f.SetSheetRow(sheet.name, cell, &values); err != nil {
				return fmt.Errorf("write sheet %s row %d: %w", sheet.name, rowIdx+1, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("render workbook: %w", err)
	}
	if err := w.store.Put(ctx, WorkbookKey, buf.Bytes()); err != nil {
		return fmt.Errorf("persist workbook: %w", err)
	}
	w.log.WithField("key", WorkbookKey).Info("workbook written")
	return nil
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
