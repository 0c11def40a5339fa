package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/havancuong2003/FptTrackingCapstone-sub001/apps/api/echo"
	"github.com/havancuong2003/FptTrackingCapstone-sub001/core"
	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/assistant"
	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/meeting"
	"github.com/havancuong2003/FptTrackingCapstone-sub001/core/schedule"
	emailsvc "github.com/havancuong2003/FptTrackingCapstone-sub001/services/email"
	logsvc "github.com/havancuong2003/FptTrackingCapstone-sub001/services/logger"
	"github.com/havancuong2003/FptTrackingCapstone-sub001/storage/capstone"
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

	capLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "CAP : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	capLogger.Enable(!conf.Debug)

	// set up the capstone API client; it owns all durable state
	capClient := capstone.NewClient(conf)

	slots, err := schedule.ParseSlotTable(conf.Campus.TimeSlots)
	if err != nil {
		logger.Fatal(fmt.Sprintf("parsing campus time slots: %v", err), err)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	scheduleSvc := schedule.NewService(capClient, slots, capLogger)
	meetingSvc := meeting.NewService(capClient, mailSvc, capLogger)
	poller := assistant.NewPoller(capClient, conf, capLogger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)
	meeting.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:        conf,
			Logger:      logger,
			Groups:      capClient,
			ScheduleSvc: scheduleSvc,
			MeetingSvc:  meetingSvc,
			Poller:      poller,
			Validate:    validate,
			Translator:  translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
