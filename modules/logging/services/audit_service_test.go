package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skillbase-io/skillbase/modules/logging/domain/entities/actionlog"
	"github.com/skillbase-io/skillbase/pkg/testutils"
)

type mockActionLogRepo struct {
	logs []*actionlog.ActionLog
}

func (m *mockActionLogRepo) List(ctx context.Context, params *actionlog.FindParams) ([]*actionlog.ActionLog, error) {
	var out []*actionlog.ActionLog
	for _, l := range m.logs {
		if params != nil && params.Action != "" && l.Action != params.Action {
			continue
		}
		if params != nil && params.EntityType != "" && l.EntityType != params.EntityType {
			continue
		}
		if params != nil && params.EntityID != "" && l.EntityID != params.EntityID {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

func (m *mockActionLogRepo) Count(ctx context.Context, params *actionlog.FindParams) (int64, error) {
	logs, _ := m.List(ctx, params)
	return int64(len(logs)), nil
}

func (m *mockActionLogRepo) Create(ctx context.Context, log *actionlog.ActionLog) error {
	log.ID = uint(len(m.logs) + 1)
	m.logs = append(m.logs, log)
	return nil
}

func TestAuditService_Log(t *testing.T) {
	repo := &mockActionLogRepo{}
	svc := NewAuditService(repo)

	err := svc.Log(testutils.TxContext(), "hr admin", "assessment.submitted", "assessment", "abc", map[string]string{
		"status": "COMPLETED",
	})
	require.NoError(t, err)
	require.Len(t, repo.logs, 1)
	entry := repo.logs[0]
	require.Equal(t, "hr admin", entry.Actor)
	require.Equal(t, "assessment.submitted", entry.Action)
	require.JSONEq(t, `{"status":"COMPLETED"}`, string(entry.Payload))
	require.False(t, entry.CreatedAt.IsZero())
}

func TestAuditService_Log_UnmarshalablePayload(t *testing.T) {
	repo := &mockActionLogRepo{}
	svc := NewAuditService(repo)

	// channels cannot be marshaled; the entry is still written
	err := svc.Log(testutils.TxContext(), "system", "assessment.created", "assessment", "abc", make(chan int))
	require.NoError(t, err)
	require.Len(t, repo.logs, 1)
	require.JSONEq(t, `{}`, string(repo.logs[0].Payload))
}

func TestAuditService_List_Filters(t *testing.T) {
	repo := &mockActionLogRepo{}
	svc := NewAuditService(repo)
	require.NoError(t, svc.Log(testutils.TxContext(), "a", "assessment.created", "assessment", "1", nil))
	require.NoError(t, svc.Log(testutils.TxContext(), "a", "assessment.submitted", "assessment", "1", nil))
	require.NoError(t, svc.Log(testutils.TxContext(), "a", "template.created", "template", "2", nil))

	logs, err := svc.List(testutils.TxContext(), &actionlog.FindParams{EntityType: "assessment"})
	require.NoError(t, err)
	require.Len(t, logs, 2)

	count, err := svc.Count(testutils.TxContext(), &actionlog.FindParams{Action: "template.created"})
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
