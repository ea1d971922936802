package hrm

import (
	"embed"

	"github.com/skillbase-io/skillbase/modules/hrm/infrastructure/persistence"
	"github.com/skillbase-io/skillbase/modules/hrm/presentation/controllers"
	"github.com/skillbase-io/skillbase/modules/hrm/services"
	"github.com/skillbase-io/skillbase/pkg/application"
)

//go:embed infrastructure/persistence/schema/hrm-schema.sql
var MigrationFiles embed.FS

func NewModule() application.Module {
	return &Module{}
}

type Module struct {
}

func (m *Module) Register(app application.Application) error {
	app.Migrations().RegisterSchema(&MigrationFiles)
	app.RegisterServices(
		services.NewPositionService(persistence.NewPositionRepository(), app.EventPublisher()),
		services.NewEmployeeService(persistence.NewEmployeeRepository()),
	)
	app.RegisterControllers(
		controllers.NewEmployeeAPIController(app),
		controllers.NewPositionAPIController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "hrm"
}
