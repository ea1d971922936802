package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/assessment"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/template"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/catalog"
	"github.com/skillbase-io/skillbase/modules/hrm/domain/entities/employee"
	"github.com/skillbase-io/skillbase/pkg/composables"
	"github.com/skillbase-io/skillbase/pkg/testutils"
)

func newTemplateService(
	templates *mockTemplateRepo,
	assessments *mockAssessmentRepo,
	employees *mockEmployeeRepo,
) (*TemplateService, *stubPublisher) {
	publisher := &stubPublisher{}
	return NewTemplateService(templates, assessments, employees, publisher), publisher
}

func TestTemplateService_Create(t *testing.T) {
	svc, publisher := newTemplateService(newMockTemplateRepo(), newMockAssessmentRepo(), newMockEmployeeRepo())

	created, err := svc.Create(testutils.TxContext(), &template.CreateDTO{
		Domain:      "core",
		PositionID:  1,
		GradeLevels: []string{"G4", "G5"},
		Ratings:     map[uint]int{1: 3, 2: 2},
	})
	require.NoError(t, err)
	require.Equal(t, catalog.DomainCore, created.Domain)
	require.Len(t, publisher.events, 1)
	require.IsType(t, &template.CreatedEvent{}, publisher.events[0])
}

func TestTemplateService_Create_EmptyGradeLevels(t *testing.T) {
	svc, _ := newTemplateService(newMockTemplateRepo(), newMockAssessmentRepo(), newMockEmployeeRepo())

	_, err := svc.Create(testutils.TxContext(), &template.CreateDTO{
		Domain:      "core",
		PositionID:  1,
		GradeLevels: []string{},
		Ratings:     map[uint]int{1: 3},
	})
	require.Error(t, err)
}

func TestTemplateService_Create_OverlappingGrades(t *testing.T) {
	existing := template.New(catalog.DomainCore, 1, []string{"G4", "G5"}, map[uint]int{1: 3})
	svc, publisher := newTemplateService(newMockTemplateRepo(existing), newMockAssessmentRepo(), newMockEmployeeRepo())

	_, err := svc.Create(testutils.TxContext(), &template.CreateDTO{
		Domain:      "core",
		PositionID:  1,
		GradeLevels: []string{"G5", "G6"},
		Ratings:     map[uint]int{1: 2},
	})
	require.ErrorIs(t, err, template.ErrDuplicate)
	require.Empty(t, publisher.events)
}

func TestTemplateService_Create_SameGradesOtherPosition(t *testing.T) {
	existing := template.New(catalog.DomainCore, 1, []string{"G5"}, map[uint]int{1: 3})
	svc, _ := newTemplateService(newMockTemplateRepo(existing), newMockAssessmentRepo(), newMockEmployeeRepo())

	_, err := svc.Create(testutils.TxContext(), &template.CreateDTO{
		Domain:      "core",
		PositionID:  2,
		GradeLevels: []string{"G5"},
		Ratings:     map[uint]int{1: 2},
	})
	require.NoError(t, err)
}

func TestTemplateService_Update_ExcludesSelfFromOverlap(t *testing.T) {
	existing := template.New(catalog.DomainCore, 1, []string{"G4", "G5"}, map[uint]int{1: 3})
	svc, _ := newTemplateService(newMockTemplateRepo(existing), newMockAssessmentRepo(), newMockEmployeeRepo())

	updated, err := svc.Update(testutils.TxContext(), existing.ID, &template.UpdateDTO{
		GradeLevels: []string{"G4", "G5", "G6"},
		Ratings:     map[uint]int{1: 3, 2: 1},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"G4", "G5", "G6"}, updated.GradeLevels)
}

func TestTemplateService_Update_OverlapWithOther(t *testing.T) {
	first := template.New(catalog.DomainCore, 1, []string{"G4"}, map[uint]int{1: 3})
	second := template.New(catalog.DomainCore, 1, []string{"G5"}, map[uint]int{1: 2})
	svc, _ := newTemplateService(newMockTemplateRepo(first, second), newMockAssessmentRepo(), newMockEmployeeRepo())

	_, err := svc.Update(testutils.TxContext(), second.ID, &template.UpdateDTO{
		GradeLevels: []string{"G4", "G5"},
		Ratings:     map[uint]int{1: 2},
	})
	require.ErrorIs(t, err, template.ErrDuplicate)
}

func TestTemplateService_PrivilegedActionsRequireRole(t *testing.T) {
	svc, _ := newTemplateService(newMockTemplateRepo(), newMockAssessmentRepo(), newMockEmployeeRepo())

	ctx := composables.WithUser(testutils.TxContext(), &composables.User{
		ID:   uuid.NewString(),
		Name: "manager",
		Role: composables.RoleManager,
	})
	_, err := svc.Create(ctx, &template.CreateDTO{
		Domain:      "core",
		PositionID:  1,
		GradeLevels: []string{"G5"},
		Ratings:     map[uint]int{1: 3},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "AUTHZ_FORBIDDEN")

	ctx = composables.WithUser(testutils.TxContext(), &composables.User{
		ID:   uuid.NewString(),
		Name: "hr admin",
		Role: composables.RoleHRAdmin,
	})
	_, err = svc.Create(ctx, &template.CreateDTO{
		Domain:      "core",
		PositionID:  1,
		GradeLevels: []string{"G5"},
		Ratings:     map[uint]int{1: 3},
	})
	require.NoError(t, err)
}

func testEmployee(gradeLevel string, positionID uint) *employee.Employee {
	return &employee.Employee{
		ID:         uuid.New(),
		Name:       "Test Employee",
		GradeLevel: gradeLevel,
		PositionID: positionID,
	}
}

func TestTemplateService_MatchEmployee(t *testing.T) {
	tpl := template.New(catalog.DomainCore, 1, []string{"G4", "G5"}, map[uint]int{1: 3, 2: 2})
	emp := testEmployee("G5", 1)
	svc, _ := newTemplateService(newMockTemplateRepo(tpl), newMockAssessmentRepo(), newMockEmployeeRepo(emp))

	result, err := svc.MatchEmployee(testutils.TxContext(), emp.ID, catalog.DomainCore)
	require.NoError(t, err)
	require.Equal(t, tpl.ID, result.Template.ID)
	require.Equal(t, emp.ID, result.Employee.ID)
	require.Equal(t, map[uint]int{1: 0, 2: 0}, result.Skeleton)
}

func TestTemplateService_MatchEmployee_NoTemplate(t *testing.T) {
	emp := testEmployee("G9", 1)
	svc, _ := newTemplateService(newMockTemplateRepo(), newMockAssessmentRepo(), newMockEmployeeRepo(emp))

	_, err := svc.MatchEmployee(testutils.TxContext(), emp.ID, catalog.DomainCore)
	require.ErrorIs(t, err, template.ErrNotFound)
}

func TestTemplateService_MatchEmployee_DuplicateTakesPrecedence(t *testing.T) {
	// employee already has an assessment AND no template matches; the
	// duplicate wins because a second assessment is never needed
	emp := testEmployee("G9", 1)
	existing := &assessment.Assessment{
		ID:         uuid.New(),
		Domain:     catalog.DomainCore,
		EmployeeID: emp.ID,
		Status:     assessment.StatusDraft,
	}
	svc, _ := newTemplateService(newMockTemplateRepo(), newMockAssessmentRepo(existing), newMockEmployeeRepo(emp))

	_, err := svc.MatchEmployee(testutils.TxContext(), emp.ID, catalog.DomainCore)
	require.ErrorIs(t, err, assessment.ErrDuplicate)
}

func TestTemplateService_MatchEmployee_UnknownEmployee(t *testing.T) {
	svc, _ := newTemplateService(newMockTemplateRepo(), newMockAssessmentRepo(), newMockEmployeeRepo())

	_, err := svc.MatchEmployee(testutils.TxContext(), uuid.New(), catalog.DomainCore)
	require.ErrorIs(t, err, employee.ErrNotFound)
}
