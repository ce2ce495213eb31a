package main

import (
	"context"
	"log"
	"os"

	"github.com/smartattendance/admin/core"
	"github.com/smartattendance/admin/core/user"
	"github.com/smartattendance/admin/storage/database"
	inmemdb "github.com/smartattendance/admin/storage/database/inmem"
	sqlxrepos "github.com/smartattendance/admin/storage/database/sqlx"
)

func main() {
	logger := log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	conf := core.NewConfig()

	cli := &commandLine{conf: conf, out: os.Stdout}
	validate, translator := user.NewValidator()
	cli.translator = translator

	var repo user.Repository
	if conf.Database.IsMemory() {
		repo = inmemdb.NewUserRepository(inmemdb.Open())
	} else {
		if err := database.CreateIfNotExist(context.Background(), conf); err != nil {
			logger.Fatalf("creating database: %v", err)
		}
		db, err := database.Open(conf)
		if err != nil {
			logger.Fatalf("opening database: %v", err)
		}
		defer func() { _ = db.Close() }()
		cli.db = db.DB
		repo = sqlxrepos.NewUserRepository(db)
	}
	cli.usrSvc = user.NewService(repo, validate)

	if err := cli.run(os.Args[1:]); err != nil {
		logger.Printf("error: %v", err)
		if cli.db != nil {
			_ = cli.db.Close()
		}
		os.Exit(1)
	}
}
