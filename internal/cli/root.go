package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/suagrafica/portal/pkg/config"
	pkgdb "github.com/suagrafica/portal/pkg/db"
)

// Opener returns the database a command operates on.
type Opener func(ctx context.Context, dsn string) (*gorm.DB, error)

func openPostgres(ctx context.Context, dsn string) (*gorm.DB, error) {
	return pkgdb.Open(ctx, pkgdb.Options{DSN: dsn})
}

type app struct {
	open Opener
	dsn  string
	db   *gorm.DB
}

// NewRootCmd builds portalctl. A nil opener connects to Postgres.
func NewRootCmd(open Opener) *cobra.Command {
	if open == nil {
		open = openPostgres
	}
	a := &app{open: open}

	root := &cobra.Command{
		Use:           "portalctl",
		Short:         "Maintenance commands for the ordering portal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.db == nil {
				return nil
			}
			return pkgdb.Close(a.db)
		},
	}
	root.PersistentFlags().StringVar(&a.dsn, "db", config.EnvDefault("DATABASE_URL", ""), "database connection URL")

	root.AddCommand(newMigrateCmd(a), newSeedCmd(a), newAdminCmd(a))
	return root
}

func (a *app) database(ctx context.Context) (*gorm.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := a.open(ctx, a.dsn)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}
	a.db = db
	return db, nil
}
