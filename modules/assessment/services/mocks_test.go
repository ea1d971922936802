package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/assessment"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/template"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/catalog"
	"github.com/skillbase-io/skillbase/modules/assessment/domain/entities/scale"
	"github.com/skillbase-io/skillbase/modules/hrm/domain/entities/employee"
)

type stubPublisher struct {
	events []interface{}
}

func (p *stubPublisher) Publish(args ...interface{}) { p.events = append(p.events, args...) }
func (p *stubPublisher) Subscribe(handler interface{})   {}
func (p *stubPublisher) Unsubscribe(handler interface{}) {}
func (p *stubPublisher) Clear()                          { p.events = nil }
func (p *stubPublisher) SubscribersCount() int           { return 0 }

type mockTemplateRepo struct {
	templates map[uuid.UUID]*template.Template
}

func newMockTemplateRepo(templates ...*template.Template) *mockTemplateRepo {
	repo := &mockTemplateRepo{templates: make(map[uuid.UUID]*template.Template)}
	for _, t := range templates {
		repo.templates[t.ID] = t
	}
	return repo
}

func (m *mockTemplateRepo) GetAll(ctx context.Context, params *template.FindParams) ([]*template.Template, error) {
	var out []*template.Template
	for _, t := range m.templates {
		if params != nil && params.Domain != "" && t.Domain != params.Domain {
			continue
		}
		if params != nil && params.PositionID != 0 && t.PositionID != params.PositionID {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (m *mockTemplateRepo) GetByID(ctx context.Context, id uuid.UUID) (*template.Template, error) {
	t, ok := m.templates[id]
	if !ok {
		return nil, template.ErrNotFound
	}
	return t, nil
}

func (m *mockTemplateRepo) GetByPositionGrade(ctx context.Context, domain catalog.Domain, positionID uint, gradeLevel string) (*template.Template, error) {
	for _, t := range m.templates {
		if t.Domain == domain && t.PositionID == positionID && t.CoversGrade(gradeLevel) {
			return t, nil
		}
	}
	return nil, template.ErrNotFound
}

func (m *mockTemplateRepo) FindOverlapping(ctx context.Context, domain catalog.Domain, positionID uint, gradeLevels []string, excludeID *uuid.UUID) ([]*template.Template, error) {
	var out []*template.Template
	for _, t := range m.templates {
		if excludeID != nil && t.ID == *excludeID {
			continue
		}
		if t.Domain == domain && t.PositionID == positionID && template.GradesOverlap(t.GradeLevels, gradeLevels) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTemplateRepo) GradeLevelsForPosition(ctx context.Context, domain catalog.Domain, positionID uint) ([]string, error) {
	var out []string
	for _, t := range m.templates {
		if t.Domain == domain && t.PositionID == positionID {
			out = append(out, t.GradeLevels...)
		}
	}
	return out, nil
}

func (m *mockTemplateRepo) Create(ctx context.Context, t *template.Template) error {
	m.templates[t.ID] = t
	return nil
}

func (m *mockTemplateRepo) Update(ctx context.Context, t *template.Template) error {
	if _, ok := m.templates[t.ID]; !ok {
		return template.ErrNotFound
	}
	m.templates[t.ID] = t
	return nil
}

func (m *mockTemplateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.templates[id]; !ok {
		return template.ErrNotFound
	}
	delete(m.templates, id)
	return nil
}

type mockAssessmentRepo struct {
	assessments map[uuid.UUID]*assessment.Assessment
}

func newMockAssessmentRepo(assessments ...*assessment.Assessment) *mockAssessmentRepo {
	repo := &mockAssessmentRepo{assessments: make(map[uuid.UUID]*assessment.Assessment)}
	for _, a := range assessments {
		repo.assessments[a.ID] = a
	}
	return repo
}

func (m *mockAssessmentRepo) GetAll(ctx context.Context, params *assessment.FindParams) ([]*assessment.Assessment, error) {
	var out []*assessment.Assessment
	for _, a := range m.assessments {
		if params != nil && params.Domain != "" && a.Domain != params.Domain {
			continue
		}
		if params != nil && params.EmployeeID != uuid.Nil && a.EmployeeID != params.EmployeeID {
			continue
		}
		if params != nil && params.Status != "" && a.Status != params.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *mockAssessmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*assessment.Assessment, error) {
	a, ok := m.assessments[id]
	if !ok {
		return nil, assessment.ErrNotFound
	}
	return a, nil
}

func (m *mockAssessmentRepo) GetByEmployeeDomain(ctx context.Context, employeeID uuid.UUID, domain catalog.Domain) (*assessment.Assessment, error) {
	for _, a := range m.assessments {
		if a.EmployeeID == employeeID && a.Domain == domain {
			return a, nil
		}
	}
	return nil, assessment.ErrNotFound
}

func (m *mockAssessmentRepo) Create(ctx context.Context, a *assessment.Assessment) error {
	if _, err := m.GetByEmployeeDomain(ctx, a.EmployeeID, a.Domain); err == nil {
		return assessment.ErrDuplicate
	}
	m.assessments[a.ID] = a
	return nil
}

func (m *mockAssessmentRepo) UpdateRatings(ctx context.Context, a *assessment.Assessment) error {
	if _, ok := m.assessments[a.ID]; !ok {
		return assessment.ErrNotFound
	}
	m.assessments[a.ID] = a
	return nil
}

func (m *mockAssessmentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to assessment.Status) (bool, error) {
	a, ok := m.assessments[id]
	if !ok || a.Status != from {
		return false, nil
	}
	a.Status = to
	return true, nil
}

func (m *mockAssessmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.assessments[id]; !ok {
		return assessment.ErrNotFound
	}
	delete(m.assessments, id)
	return nil
}

type mockEmployeeRepo struct {
	employees map[uuid.UUID]*employee.Employee
}

func newMockEmployeeRepo(employees ...*employee.Employee) *mockEmployeeRepo {
	repo := &mockEmployeeRepo{employees: make(map[uuid.UUID]*employee.Employee)}
	for _, e := range employees {
		repo.employees[e.ID] = e
	}
	return repo
}

func (m *mockEmployeeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.employees)), nil
}

func (m *mockEmployeeRepo) GetAll(ctx context.Context, params *employee.FindParams) ([]*employee.Employee, error) {
	var out []*employee.Employee
	for _, e := range m.employees {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockEmployeeRepo) GetByID(ctx context.Context, id uuid.UUID) (*employee.Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return nil, employee.ErrNotFound
	}
	return e, nil
}

type mockScaleRepo struct {
	scales map[string]*scale.Scale
}

func newMockScaleRepo(scales ...*scale.Scale) *mockScaleRepo {
	repo := &mockScaleRepo{scales: make(map[string]*scale.Scale)}
	for _, s := range scales {
		repo.scales[s.Domain] = s
	}
	return repo
}

func (m *mockScaleRepo) GetByDomain(ctx context.Context, domain string) (*scale.Scale, error) {
	s, ok := m.scales[domain]
	if !ok {
		return nil, scale.NewConfigurationError("no scale configured for domain " + domain)
	}
	return s, nil
}

func (m *mockScaleRepo) Save(ctx context.Context, s *scale.Scale) error {
	m.scales[s.Domain] = s
	return nil
}

type mockCatalogRepo struct {
	groups []*catalog.Group
	items  []*catalog.Item
}

func (m *mockCatalogRepo) GetGroups(ctx context.Context, domain catalog.Domain) ([]*catalog.Group, error) {
	var out []*catalog.Group
	for _, g := range m.groups {
		if g.Domain == domain {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *mockCatalogRepo) GetGroupByID(ctx context.Context, id uint) (*catalog.Group, error) {
	for _, g := range m.groups {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, catalog.ErrGroupNotFound
}

func (m *mockCatalogRepo) GetItems(ctx context.Context, domain catalog.Domain) ([]*catalog.Item, error) {
	var out []*catalog.Item
	for _, item := range m.items {
		if item.Domain == domain {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockCatalogRepo) GetItemByID(ctx context.Context, id uint) (*catalog.Item, error) {
	for _, item := range m.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, catalog.ErrItemNotFound
}

func (m *mockCatalogRepo) GetItemsByGroup(ctx context.Context, groupID uint) ([]*catalog.Item, error) {
	var out []*catalog.Item
	for _, item := range m.items {
		if item.GroupID == groupID {
			out = append(out, item)
		}
	}
	return out, nil
}
