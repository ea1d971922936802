package services

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/assessment"
	"github.com/skillbase-io/skillbase/pkg/testutils"
)

func TestExportService_ExportScoreReport(t *testing.T) {
	f := newAssessmentFixture(assessment.SubmitPolicy{})
	_, emp := f.seedTemplate()
	created, err := f.svc.Create(testutils.TxContext(), &assessment.CreateDTO{Domain: "core", EmployeeID: emp.ID})
	require.NoError(t, err)
	_, err = f.svc.SaveDraft(testutils.TxContext(), created.ID, &assessment.SaveDraftDTO{
		Ratings: map[uint]assessment.RatingDTO{
			1: {Actual: 3, Notes: "strong"},
			2: {Actual: 2},
			3: {Actual: 3},
		},
	})
	require.NoError(t, err)

	svc := NewExportService(f.svc)
	doc, err := svc.ExportScoreReport(testutils.TxContext(), created.ID)
	require.NoError(t, err)
	require.Equal(t, fmt.Sprintf("assessment-core-%s.xlsx", created.ID), doc.Filename)

	wb, err := excelize.OpenReader(bytes.NewReader(doc.Content))
	require.NoError(t, err)
	defer func() { require.NoError(t, wb.Close()) }()

	rows, err := wb.GetRows("Score Report")
	require.NoError(t, err)
	require.Equal(t, []string{"Group", "Item", "Required", "Actual", "Gap", "Notes"}, rows[0])
	// three items, a blank separator, two group rows, overall, completion
	require.Equal(t, "Listening", rows[1][1])
	require.Equal(t, "strong", rows[1][5])

	var labels []string
	for _, row := range rows {
		if len(row) > 0 {
			labels = append(labels, row[0])
		}
	}
	require.Contains(t, labels, "Communication")
	require.Contains(t, labels, "Analysis")
	require.Contains(t, labels, "Overall")
	require.Contains(t, labels, "Completion")
}

func TestExportService_UnknownAssessment(t *testing.T) {
	f := newAssessmentFixture(assessment.SubmitPolicy{})
	svc := NewExportService(f.svc)

	_, err := svc.ExportScoreReport(testutils.TxContext(), uuid.New())
	require.ErrorIs(t, err, assessment.ErrNotFound)
}
