package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Score Report"

// ExportService renders a score report as an xlsx workbook.
type ExportService struct {
	assessments *AssessmentService
}

func NewExportService(assessments *AssessmentService) *ExportService {
	return &ExportService{assessments: assessments}
}

// ExportDocument is the rendered workbook plus the filename to serve it as.
type ExportDocument struct {
	Filename string
	Content  []byte
}

// ExportScoreReport renders the full report of one assessment: the item
// sheet with gaps, followed by group totals, the overall row and the
// completion metric.
func (s *ExportService) ExportScoreReport(ctx context.Context, id uuid.UUID) (*ExportDocument, error) {
	report, err := s.assessments.Score(ctx, id)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, errors.Wrap(err, "create sheet")
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, errors.Wrap(err, "drop default sheet")
	}

	header := []interface{}{"Group", "Item", "Required", "Actual", "Gap", "Notes"}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return nil, errors.Wrap(err, "write header")
	}

	row := 2
	for _, item := range report.Items {
		values := []interface{}{
			strings.Join(item.GroupPath, " / "),
			item.Name,
			item.Required,
			item.Actual,
			item.Gap,
			item.Notes,
		}
		if err := f.SetSheetRow(exportSheet, cell(row), &values); err != nil {
			return nil, errors.Wrap(err, "write item row")
		}
		row++
	}

	row++ // blank separator
	for _, group := range report.Groups {
		values := []interface{}{
			group.Key,
			"",
			group.RequiredTotal,
			group.ActualTotal,
			fmt.Sprintf("%.2f%%", group.Percentage),
			group.Grade.Letter,
		}
		if err := f.SetSheetRow(exportSheet, cell(row), &values); err != nil {
			return nil, errors.Wrap(err, "write group row")
		}
		row++
	}
	for _, group := range report.MainGroups {
		values := []interface{}{
			group.Key + " (total)",
			"",
			group.RequiredTotal,
			group.ActualTotal,
			fmt.Sprintf("%.2f%%", group.Percentage),
			group.Grade.Letter,
		}
		if err := f.SetSheetRow(exportSheet, cell(row), &values); err != nil {
			return nil, errors.Wrap(err, "write main group row")
		}
		row++
	}

	overall := []interface{}{
		"Overall",
		"",
		report.Overall.RequiredTotal,
		report.Overall.ActualTotal,
		fmt.Sprintf("%.2f%%", report.Overall.Percentage),
		report.Overall.Grade.Letter,
	}
	if err := f.SetSheetRow(exportSheet, cell(row), &overall); err != nil {
		return nil, errors.Wrap(err, "write overall row")
	}
	row++
	completion := []interface{}{"Completion", "", "", "", fmt.Sprintf("%.2f%%", report.Completion), ""}
	if err := f.SetSheetRow(exportSheet, cell(row), &completion); err != nil {
		return nil, errors.Wrap(err, "write completion row")
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "encode workbook")
	}
	return &ExportDocument{
		Filename: fmt.Sprintf("assessment-%s-%s.xlsx", report.Domain, report.AssessmentID),
		Content:  buf.Bytes(),
	}, nil
}

func cell(row int) string {
	return fmt.Sprintf("A%d", row)
}
