package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/suagrafica/portal/internal/models"
	"github.com/suagrafica/portal/internal/repo"
	"github.com/suagrafica/portal/internal/service"
	"github.com/suagrafica/portal/internal/transport"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.database(cmd.Context())
			if err != nil {
				return err
			}
			if err := repo.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func newSeedCmd(a *app) *cobra.Command {
	var username, secret string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert a default admin, a test customer and a test product",
		Long: `Seed is idempotent: rows that already exist (matched by username,
access code or product code) are left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.database(cmd.Context())
			if err != nil {
				return err
			}
			if err := repo.Migrate(db); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			return seed(cmd, &repo.GormRepo{DB: db}, username, secret)
		},
	}
	cmd.Flags().StringVar(&username, "admin-username", "admin", "username of the seeded admin")
	cmd.Flags().StringVar(&secret, "admin-secret", "", "secret of the seeded admin")
	_ = cmd.MarkFlagRequired("admin-secret")
	return cmd
}

func seed(cmd *cobra.Command, r *repo.GormRepo, username, secret string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	admin, err := r.FindAdminByUsername(ctx, username)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		accounts := &service.AccountService{Repo: r}
		if admin, err = accounts.CreateAdmin(ctx, transport.CreateAdminRequest{Username: username, Secret: secret}); err != nil {
			return err
		}
		fmt.Fprintf(out, "admin %q created\n", username)
	case err != nil:
		return err
	}

	if _, err := r.FindCustomerByAccessCode(ctx, "CLIENTE123"); errors.Is(err, gorm.ErrRecordNotFound) {
		taxID := "00.000.000/0001-00"
		customer := &models.Customer{
			AdminID:    &admin.ID,
			Name:       "Cliente Teste S.A",
			TaxID:      &taxID,
			AccessCode: "CLIENTE123",
			Status:     models.CustomerActive,
		}
		if err := r.CreateCustomer(ctx, customer); err != nil {
			return err
		}
		fmt.Fprintln(out, "test customer created")
	} else if err != nil {
		return err
	}

	if _, err := r.FindProductByCode(ctx, "ER1458-AZU"); errors.Is(err, gorm.ErrRecordNotFound) {
		product := &models.Product{
			Code:          "ER1458-AZU",
			Name:          "CANETA METAL AZUL",
			MinPrice:      models.MustMoney("2.10"),
			OrderMultiple: 50,
			InStock:       true,
			Active:        true,
		}
		if err := r.CreateProduct(ctx, product); err != nil {
			return err
		}
		fmt.Fprintln(out, "test product created")
	} else if err != nil {
		return err
	}
	return nil
}

func newAdminCmd(a *app) *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	var username, secret string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.database(cmd.Context())
			if err != nil {
				return err
			}
			accounts := &service.AccountService{Repo: &repo.GormRepo{DB: db}}
			created, err := accounts.CreateAdmin(cmd.Context(), transport.CreateAdminRequest{Username: username, Secret: secret})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %q created with id %d\n", created.Username, created.ID)
			return nil
		},
	}
	create.Flags().StringVar(&username, "username", "", "admin username")
	create.Flags().StringVar(&secret, "secret", "", "admin secret")
	_ = create.MarkFlagRequired("username")
	_ = create.MarkFlagRequired("secret")

	list := &cobra.Command{
		Use:   "list",
		Short: "List admin accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.database(cmd.Context())
			if err != nil {
				return err
			}
			admins, err := (&repo.GormRepo{DB: db}).ListAdmins(cmd.Context())
			if err != nil {
				return err
			}
			for _, ad := range admins {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", ad.ID, ad.Username)
			}
			return nil
		},
	}

	admin.AddCommand(create, list)
	return admin
}

// Execute runs portalctl with the process arguments.
func Execute(ctx context.Context) error {
	return NewRootCmd(nil).ExecuteContext(ctx)
}
