package assessment

import (
	"embed"

	"github.com/skillbase-io/skillbase/modules/assessment/domain/aggregates/assessment"
	"github.com/skillbase-io/skillbase/modules/assessment/infrastructure/persistence"
	"github.com/skillbase-io/skillbase/modules/assessment/presentation/controllers"
	"github.com/skillbase-io/skillbase/modules/assessment/services"
	hrmpersistence "github.com/skillbase-io/skillbase/modules/hrm/infrastructure/persistence"
	"github.com/skillbase-io/skillbase/pkg/application"
	"github.com/skillbase-io/skillbase/pkg/configuration"
)

//go:embed infrastructure/persistence/schema/assessment-schema.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()
	app.Migrations().RegisterSchema(&MigrationFiles)

	templateRepo := persistence.NewTemplateRepository()
	assessmentRepo := persistence.NewAssessmentRepository()
	scaleRepo := persistence.NewScaleRepository()
	catalogRepo := persistence.NewCatalogRepository()
	employeeRepo := hrmpersistence.NewEmployeeRepository()

	catalogService := services.NewCatalogService(catalogRepo)
	assessmentService := services.NewAssessmentService(
		assessmentRepo,
		templateRepo,
		employeeRepo,
		scaleRepo,
		catalogService,
		app.EventPublisher(),
		assessment.SubmitPolicy{RequireFullCoverage: conf.Assessment.SubmitRequireFull},
	)
	app.RegisterServices(
		services.NewScaleService(scaleRepo),
		catalogService,
		services.NewTemplateService(templateRepo, assessmentRepo, employeeRepo, app.EventPublisher()),
		assessmentService,
		services.NewExportService(assessmentService),
	)
	app.RegisterControllers(
		controllers.NewTemplateAPIController(app),
		controllers.NewAssessmentAPIController(app),
		controllers.NewCatalogAPIController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "assessment"
}
