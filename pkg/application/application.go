package application

import (
	"reflect"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/skillbase-io/skillbase/pkg/eventbus"
)

// Module is a self-contained vertical registered at startup.
type Module interface {
	Name() string
	Register(app Application) error
}

// Controller registers its routes on the shared router.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

type Application interface {
	Pool() *pgxpool.Pool
	Logger() *logrus.Logger
	EventPublisher() eventbus.EventBus
	Migrations() MigrationManager

	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}

	RegisterControllers(controllers ...Controller)
	Controllers() []Controller

	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	Middleware() []mux.MiddlewareFunc
}

type ApplicationOptions struct {
	Pool     *pgxpool.Pool
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
}

func New(opts *ApplicationOptions) Application {
	return &application{
		pool:           opts.Pool,
		eventPublisher: opts.EventBus,
		logger:         opts.Logger,
		controllers:    make(map[string]Controller),
		services:       make(map[reflect.Type]interface{}),
		migrations:     NewMigrationManager(opts.Pool, opts.Logger),
	}
}

// application with a dynamically extendable service registry
type application struct {
	pool           *pgxpool.Pool
	eventPublisher eventbus.EventBus
	logger         *logrus.Logger
	services       map[reflect.Type]interface{}
	controllers    map[string]Controller
	controllerKeys []string
	middleware     []mux.MiddlewareFunc
	migrations     MigrationManager
}

func (a *application) Pool() *pgxpool.Pool {
	return a.pool
}

func (a *application) Logger() *logrus.Logger {
	return a.logger
}

func (a *application) EventPublisher() eventbus.EventBus {
	return a.eventPublisher
}

func (a *application) Migrations() MigrationManager {
	return a.migrations
}

func (a *application) RegisterServices(services ...interface{}) {
	for _, service := range services {
		serviceType := reflect.TypeOf(service).Elem()
		a.services[serviceType] = service
	}
}

func (a *application) Service(service interface{}) interface{} {
	serviceType := reflect.TypeOf(service)
	svc, ok := a.services[serviceType]
	if !ok {
		panic("service not found: " + serviceType.String())
	}
	return svc
}

func (a *application) RegisterControllers(controllers ...Controller) {
	for _, controller := range controllers {
		if _, ok := a.controllers[controller.Key()]; !ok {
			a.controllerKeys = append(a.controllerKeys, controller.Key())
		}
		a.controllers[controller.Key()] = controller
	}
}

func (a *application) Controllers() []Controller {
	out := make([]Controller, 0, len(a.controllers))
	for _, key := range a.controllerKeys {
		out = append(out, a.controllers[key])
	}
	return out
}

func (a *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	a.middleware = append(a.middleware, middleware...)
}

func (a *application) Middleware() []mux.MiddlewareFunc {
	return a.middleware
}
