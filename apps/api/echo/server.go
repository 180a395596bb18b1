package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/adxsetup/core"
	"github.com/trezcool/adxsetup/core/course"
	"github.com/trezcool/adxsetup/core/device"
	"github.com/trezcool/adxsetup/core/operator"
	"github.com/trezcool/adxsetup/core/submission"
)

type (
	ServerDeps struct {
		Conf          *core.Config
		Logger        core.Logger
		SubmissionSvc *submission.Service
		CourseSvc     *course.Service
		DeviceSvc     *device.Service
		OperatorSvc   *operator.Service
		PushSvc       core.PushService
		Validate      *validator.Validate
		Translator    ut.Translator
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps       ServerDeps
		app        *echo.Echo
		errCh      chan error
		shutdownCh chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:       deps,
		app:        echo.New(),
		errCh:      make(chan error, 1),
		shutdownCh: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(newJWTConfig(conf))

	registerOperatorAPI(v1, jwt, conf, s.deps.OperatorSvc, s.deps.Validate)
	registerSubmissionAPI(v1, jwt, s.deps.SubmissionSvc, s.deps.Validate)
	registerCourseAPI(v1, jwt, s.deps.CourseSvc, s.deps.Validate)
	registerDeviceAPI(v1, s.deps.DeviceSvc, s.deps.Validate)
	registerNotifyAPI(v1, jwt, s.deps.DeviceSvc, s.deps.PushSvc, s.deps.Validate)
}

// Start runs the server; it blocks until the server stops.
// The exit error is reported on Errors().
func (s *server) Start() {
	s.errCh <- s.app.Start(s.deps.Conf.ServerAddress())
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Errors() <-chan error { return s.errCh }

func (s *server) ShutdownSignal() <-chan os.Signal { return s.shutdownCh }

func (s *server) signalShutdown() {
	s.shutdownCh <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to ADX Setup API!")
}
