package main

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4"

	"github.com/trezcool/adxsetup/storage/database"
)

var migrateRunFunc = runMigrations // mockable

func (cli *commandLine) migrate(args []string) error {
	return migrateRunFunc(cli.db.DB, args[0])
}

func runMigrations(db *sql.DB, command string) error {
	m, err := database.NewMigrator(db)
	if err != nil {
		return err
	}

	switch command {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "version":
		var version uint
		var dirty bool
		if version, dirty, err = m.Version(); err == nil {
			fmt.Printf("version: %d (dirty: %t)\n", version, dirty)
		}
	default:
		return fmt.Errorf("%q: no such command", command)
	}

	if err == migrate.ErrNoChange || err == migrate.ErrNilVersion {
		return nil
	}
	return err
}
