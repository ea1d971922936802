package server

import (
	"net/http"

	"github.com/NYTimes/gziphandler"
	"github.com/gorilla/mux"

	"github.com/skillbase-io/skillbase/pkg/application"
)

// HTTPServer mounts every controller registered on the application onto a
// gzip-wrapped mux router. The fallback 404/405 handlers go through the
// same middleware chain so their responses carry request logging too.
type HTTPServer struct {
	app              application.Application
	notFound         http.Handler
	methodNotAllowed http.Handler
}

func NewHTTPServer(
	app application.Application,
	notFoundHandler, methodNotAllowedHandler http.Handler,
) *HTTPServer {
	return &HTTPServer{
		app:              app,
		notFound:         notFoundHandler,
		methodNotAllowed: methodNotAllowedHandler,
	}
}

func (s *HTTPServer) Handler() http.Handler {
	r := mux.NewRouter()
	middlewares := s.app.Middleware()
	r.Use(middlewares...)
	for _, controller := range s.app.Controllers() {
		controller.Register(r)
	}
	r.NotFoundHandler = wrap(s.notFound, middlewares)
	r.MethodNotAllowedHandler = wrap(s.methodNotAllowed, middlewares)
	return gziphandler.GzipHandler(r)
}

// wrap applies the middleware chain to a handler that mux does not route
// through r.Use (the router-level fallbacks).
func wrap(h http.Handler, middlewares []mux.MiddlewareFunc) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

func (s *HTTPServer) Start(socketAddress string) error {
	return http.ListenAndServe(socketAddress, s.Handler())
}
