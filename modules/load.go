package modules

import (
	"github.com/skillbase-io/skillbase/modules/assessment"
	"github.com/skillbase-io/skillbase/modules/hrm"
	"github.com/skillbase-io/skillbase/modules/logging"
	"github.com/skillbase-io/skillbase/pkg/application"
)

// BuiltInModules are registered in order; hrm first so its schema lands
// before the assessment module references it.
var BuiltInModules = []application.Module{
	hrm.NewModule(),
	assessment.NewModule(),
	logging.NewModule(),
}

func Load(app application.Application, mods ...application.Module) error {
	for _, module := range mods {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
