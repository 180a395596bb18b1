package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	echoapi "github.com/trezcool/adxsetup/apps/api/echo"
	"github.com/trezcool/adxsetup/core"
	"github.com/trezcool/adxsetup/core/course"
	"github.com/trezcool/adxsetup/core/device"
	"github.com/trezcool/adxsetup/core/operator"
	"github.com/trezcool/adxsetup/core/submission"
	emailsvc "github.com/trezcool/adxsetup/services/email"
	logsvc "github.com/trezcool/adxsetup/services/logger"
	notifiersvc "github.com/trezcool/adxsetup/services/notifier"
	pushsvc "github.com/trezcool/adxsetup/services/push"
	"github.com/trezcool/adxsetup/storage/blob"
	"github.com/trezcool/adxsetup/storage/database"
	sqlxrepos "github.com/trezcool/adxsetup/storage/database/sqlx"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Fatal("Failed to close", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	var pushSvc core.PushService
	if conf.Debug {
		pushSvc = pushsvc.NewConsoleService()
	} else {
		pushSvc = pushsvc.NewGatewayService(conf, logger)
	}

	devSvc := device.NewService(sqlxrepos.NewDeviceRepository(db))

	var notifiers []submission.Notifier
	if conf.Notifications.Email {
		notifiers = append(notifiers, notifiersvc.NewEmailNotifier(conf, mailSvc))
	}
	if conf.Notifications.Push {
		notifiers = append(notifiers, notifiersvc.NewPushNotifier(pushSvc, devSvc, logger))
	}

	var receipts submission.ReceiptStore
	if conf.Receipts.Storage == "blob" {
		if receipts, err = blob.NewReceiptStore(conf); err != nil {
			logger.Fatal(fmt.Sprintf("setting up receipt store: %v", err), err)
		}
	}

	subSvc := submission.NewService(sqlxrepos.NewSubmissionRepository(db), receipts, logger, notifiers...)
	crsSvc := course.NewService(sqlxrepos.NewCourseRepository(db), logger)
	opSvc := operator.NewService(sqlxrepos.NewOperatorRepository(db))

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)

	core.ParseEmailTemplates(conf, logger)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err = http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			SubmissionSvc: subSvc,
			CourseSvc:     crsSvc,
			DeviceSvc:     devSvc,
			OperatorSvc:   opSvc,
			PushSvc:       pushSvc,
			Validate:      validate,
			Translator:    translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err = server.Stop(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		}
	}
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	if err := database.CreateIfNotExist(conf); err != nil {
		return nil, err
	}

	db, err := database.Open(conf)
	if err != nil {
		return nil, err
	}

	if err = database.Migrate(db.DB); err != nil {
		return nil, err
	}
	return db, nil
}
