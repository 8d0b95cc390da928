package main

import (
	"log"
	"os"

	"github.com/trezcool/housepoints/core"
	"github.com/trezcool/housepoints/core/school"
	logsvc "github.com/trezcool/housepoints/services/logger"
	"github.com/trezcool/housepoints/storage/document/jsondoc"
	"github.com/trezcool/housepoints/storage/document/pgdoc"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up the document store
	var store school.Store
	if dbURL := core.Conf.GetString("databaseUrl"); dbURL != "" {
		pg, err := pgdoc.Open(dbURL)
		errAndDie(err)
		defer pg.Close()
		store = pg
	} else {
		store = jsondoc.Open(core.Conf.GetString("documentPath"))
	}

	var appLogger core.Logger = logsvc.NewConsoleLogger(logger)
	if core.Conf.GetString("rollbarToken") != "" {
		appLogger = logsvc.NewRollbarLogger(logger, os.Getenv("ENV"))
	}

	svc, err := school.NewService(store, appLogger)
	errAndDie(err)

	// start CLI
	cli := commandLine{svc: svc}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
