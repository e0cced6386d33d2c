package main

import (
	"log"
	"os"

	"github.com/trezcool/classbook/core"
	"github.com/trezcool/classbook/core/classroom"
	logsvc "github.com/trezcool/classbook/services/logger"
	"github.com/trezcool/classbook/storage/kvstore"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
	logger.Enable(!conf.Debug)

	// set up storage
	store, err := kvstore.Open(conf, nil)
	if err != nil {
		logger.Fatal("opening storage", err)
	}

	// start CLI
	cli := commandLine{
		class: classroom.New(classroom.Deps{
			KV:        store,
			Logger:    logger,
			KeyPrefix: conf.Storage.KeyPrefix,
			Export:    conf.Export,
		}),
		conf:   conf,
		logger: logger,
		out:    os.Stdout,
	}
	err = cli.run(os.Args)
	if cerr := store.Close(); cerr != nil {
		logger.Error("closing storage", cerr)
	}
	if err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		os.Exit(1)
	}
}
