package logging

import (
	"embed"

	"github.com/skillbase-io/skillbase/modules/logging/handlers"
	"github.com/skillbase-io/skillbase/modules/logging/infrastructure/persistence"
	"github.com/skillbase-io/skillbase/modules/logging/presentation/controllers"
	"github.com/skillbase-io/skillbase/modules/logging/services"
	"github.com/skillbase-io/skillbase/pkg/application"
)

//go:embed infrastructure/persistence/schema/logging-schema.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&MigrationFiles)
	app.RegisterServices(
		services.NewAuditService(persistence.NewActionLogRepository()),
	)
	app.RegisterControllers(
		controllers.NewAuditAPIController(app),
	)
	handlers.RegisterAssessmentEventHandlers(app)
	return nil
}

func (m *Module) Name() string {
	return "logging"
}
