package db

import (
	"context"
	"database/sql"
	_ "embed"
	"log"
	"sync"

	"github.com/go-sql-driver/mysql"

	"github.com/2HgO/signup-go/config"
)

//go:embed schema.sql
var schema string

var dataDb *sql.DB
var dataDBOnce = &sync.Once{}

func DSN(cfg *config.Config) string {
	return (&mysql.Config{
		User:                 cfg.DB.User,
		Passwd:               cfg.DB.Password,
		Net:                  "tcp",
		Addr:                 cfg.DB.Addr,
		DBName:               cfg.DB.Name,
		ParseTime:            true,
		AllowNativePasswords: true,
	}).FormatDSN()
}

func GetDataDBConnection(cfg *config.Config) *sql.DB {
	dataDBOnce.Do(func() {
		// Get a database handle.
		var err error
		dataDb, err = sql.Open("mysql", DSN(cfg))
		if err != nil {
			log.Fatal(err)
		}

		pingErr := dataDb.Ping()
		if pingErr != nil {
			log.Fatal(pingErr)
		}

		if _, err = dataDb.ExecContext(context.Background(), schema); err != nil {
			log.Fatal(err)
		}
	})

	return dataDb
}
