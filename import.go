/*
Copyright 2024 Ladrillo Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package ladrillo

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"

	"github.com/ladrillo-finance/ladrillo/internal/apierror"
	"github.com/ladrillo-finance/ladrillo/internal/notification"
	"github.com/ladrillo-finance/ladrillo/model"
)

// statementDateLayouts are the date formats a bank statement row may carry:
// ISO and the DD/MM/YYYY locale format the reference statements use.
var statementDateLayouts = []string{model.DateLayout, "02/01/2006"}

// ImportRows turns a batch of raw statement rows into stored movements for
// the given scope, skipping duplicates and reporting every row's fate.
//
// Rows are processed in order and independently: one row's failure never
// affects the next. Duplicates are detected against the scope's stored
// movements, fetched once as a key set before the pass instead of one lookup
// per row. The returned report always accounts for every input row exactly
// once: CreatedCount + DuplicatesSkipped + len(Errors) == TotalRows.
//
// Re-running the same batch after a partial submission is safe: rows created
// the first time show up in the key set and are skipped as duplicates.
func (l *Ladrillo) ImportRows(ctx context.Context, rows []model.RawRow, propertyID *string) (model.ImportReport, error) {
	ctx, span := otel.Tracer("ladrillo.import").Start(ctx, "ImportRows")
	defer span.End()

	report := model.ImportReport{
		TotalRows:          len(rows),
		Errors:             []model.RowError{},
		CreatedMovementIDs: []string{},
	}

	existing, err := l.datasource.ExistingMovementKeys(ctx, propertyID)
	if err != nil {
		return report, err
	}

	for i, row := range rows {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		mov, rowErr := buildMovement(row, propertyID)
		if rowErr != "" {
			report.Errors = append(report.Errors, model.RowError{RowIndex: i, Message: rowErr})
			continue
		}

		key := mov.DedupKey()
		if _, found := existing[key]; found {
			report.DuplicatesSkipped++
			continue
		}

		created, err := l.datasource.RecordMovement(ctx, mov)
		if err != nil {
			report.Errors = append(report.Errors, model.RowError{RowIndex: i, Message: err.Error()})
			continue
		}

		// Later rows in this same batch dedup against this one too.
		existing[key] = struct{}{}
		report.CreatedCount++
		report.CreatedMovementIDs = append(report.CreatedMovementIDs, created.MovementID)
	}

	l.postImportActions(report, propertyID)
	return report, nil
}

// buildMovement validates and parses one raw row. The returned message is
// empty on success; otherwise it names the first problem found.
func buildMovement(row model.RawRow, propertyID *string) (*model.FinancialMovement, string) {
	if strings.TrimSpace(row.Date) == "" {
		return nil, "missing date"
	}
	if strings.TrimSpace(row.Concept) == "" {
		return nil, "missing concept"
	}
	if strings.TrimSpace(row.Amount) == "" {
		return nil, "missing amount"
	}

	date, err := parseStatementDate(row.Date)
	if err != nil {
		return nil, fmt.Sprintf("invalid date '%s'", row.Date)
	}

	amount, err := parseStatementAmount(row.Amount)
	if err != nil {
		return nil, fmt.Sprintf("invalid amount '%s'", row.Amount)
	}

	mov := &model.FinancialMovement{
		PropertyID:   propertyID,
		Date:         date,
		Concept:      strings.TrimSpace(row.Concept),
		Amount:       amount,
		IsClassified: false,
	}

	if strings.TrimSpace(row.Balance) != "" {
		balance, err := parseStatementAmount(row.Balance)
		if err != nil {
			return nil, fmt.Sprintf("invalid balance '%s'", row.Balance)
		}
		mov.BankBalance = &balance
	}

	return mov, ""
}

// parseStatementDate accepts ISO (2006-01-02) and locale (02/01/2006) dates.
func parseStatementDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range statementDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date '%s'", s)
}

// parseStatementAmount accepts plain decimals and the 1.234,56 locale format
// Spanish statements use.
func parseStatementAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") {
		// Thousands dots first, decimal comma last: 1.234,56 -> 1234.56
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	return decimal.NewFromString(s)
}

// ImportStatement parses an uploaded statement file (CSV or JSON) into raw
// rows and runs them through ImportRows. Column mapping is by header name;
// the file type is detected from the extension first, then from content.
func (l *Ladrillo) ImportStatement(ctx context.Context, propertyID *string, reader io.Reader, filename string) (model.ImportReport, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return model.ImportReport{}, apierror.NewAPIError(apierror.ErrBadRequest, "Failed to read uploaded file", err)
	}

	fileType, err := detectFileType(data, filename)
	if err != nil {
		return model.ImportReport{}, apierror.NewAPIError(apierror.ErrBadRequest, "Failed to detect file type", err)
	}

	var rows []model.RawRow
	switch fileType {
	case "text/csv", "text/csv; charset=utf-8":
		rows, err = parseCSVRows(bytes.NewReader(data))
	case "application/json":
		err = json.Unmarshal(data, &rows)
	default:
		return model.ImportReport{}, apierror.NewAPIError(apierror.ErrBadRequest, fmt.Sprintf("unsupported file type: %s", fileType), nil)
	}
	if err != nil {
		return model.ImportReport{}, apierror.NewAPIError(apierror.ErrBadRequest, "Failed to parse statement file", err)
	}

	return l.ImportRows(ctx, rows, propertyID)
}

// parseCSVRows reads a statement CSV with a header row into raw rows. Only
// the column positions come from the header; per-row validation stays in
// ImportRows so a bad row is reported, not dropped.
func parseCSVRows(reader io.Reader) ([]model.RawRow, error) {
	csvReader := csv.NewReader(bufio.NewReader(reader))
	csvReader.FieldsPerRecord = -1

	headers, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV headers: %w", err)
	}

	columnMap, err := createColumnMap(headers)
	if err != nil {
		return nil, err
	}

	var rows []model.RawRow
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, model.RawRow{
			Date:    fieldAt(record, columnMap, "date"),
			Concept: fieldAt(record, columnMap, "concept"),
			Amount:  fieldAt(record, columnMap, "amount"),
			Balance: fieldAt(record, columnMap, "balance"),
		})
	}

	return rows, nil
}

// createColumnMap maps lowercased header names to their indices and checks
// the required statement columns are present.
func createColumnMap(headers []string) (map[string]int, error) {
	requiredColumns := []string{"date", "concept", "amount"}
	columnMap := make(map[string]int)

	for i, header := range headers {
		columnMap[strings.ToLower(strings.TrimSpace(header))] = i
	}

	for _, col := range requiredColumns {
		if _, exists := columnMap[col]; !exists {
			return nil, fmt.Errorf("required column '%s' not found in CSV", col)
		}
	}

	return columnMap, nil
}

func fieldAt(record []string, columnMap map[string]int, field string) string {
	if index, exists := columnMap[field]; exists && index < len(record) {
		return strings.TrimSpace(record[index])
	}
	return ""
}

// detectFileType attempts to detect the file type based on its extension or content.
func detectFileType(data []byte, filename string) (string, error) {
	if mimeType := detectByExtension(filename); mimeType != "" {
		return mimeType, nil
	}
	return detectByContent(data)
}

// detectByExtension detects the MIME type by the file extension.
func detectByExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return mime.TypeByExtension(ext)
}

// detectByContent detects the MIME type based on the content of the file.
func detectByContent(data []byte) (string, error) {
	mimeType := http.DetectContentType(data)

	switch mimeType {
	case "application/octet-stream", "text/plain", "text/plain; charset=utf-8":
		return analyzeTextContent(data)
	case "text/csv; charset=utf-8":
		return "text/csv", nil
	default:
		return mimeType, nil
	}
}

// analyzeTextContent differentiates between CSV, JSON, or plain text.
func analyzeTextContent(data []byte) (string, error) {
	if looksLikeCSV(data) {
		return "text/csv", nil
	}
	if json.Valid(data) {
		return "application/json", nil
	}
	return "text/plain", nil
}

// looksLikeCSV checks for multiple lines with a consistent comma field count.
func looksLikeCSV(data []byte) bool {
	lines := bytes.Split(data, []byte("\n"))
	if len(lines) < 2 {
		return false
	}

	fields := bytes.Count(lines[0], []byte(",")) + 1
	for _, line := range lines[1:] {
		if len(line) == 0 {
			continue
		}
		if bytes.Count(line, []byte(","))+1 != fields {
			return false
		}
	}

	return fields > 1
}

// postImportActions notifies the configured webhook about a finished import.
// Runs in the background so the import response never waits on delivery.
func (l *Ladrillo) postImportActions(report model.ImportReport, propertyID *string) {
	go func() {
		payload := map[string]interface{}{
			"total_rows":         report.TotalRows,
			"created_count":      report.CreatedCount,
			"duplicates_skipped": report.DuplicatesSkipped,
			"error_count":        len(report.Errors),
		}
		if propertyID != nil {
			payload["property_id"] = *propertyID
		}
		err := notification.SendWebhook(notification.WebhookEvent{
			Event:   "import.completed",
			Payload: payload,
		})
		if err != nil {
			notification.NotifyError(err)
		}
	}()
}
