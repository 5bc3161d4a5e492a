// Command reservectl is the operator tool for schema migrations, fixture
// seeding and staff account creation.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/iliyamo/table-reservation/internal/config"
	"github.com/iliyamo/table-reservation/internal/database"
	"github.com/iliyamo/table-reservation/internal/fixtures"
	"github.com/iliyamo/table-reservation/internal/model"
	"github.com/iliyamo/table-reservation/internal/repository"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "reservectl",
		Short:        "Operate the table reservation database",
		SilenceUsage: true,
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd(), newCreateUserCmd())
	return root
}

// openDB loads configuration, connects and brings the schema up to date.
func openDB(ctx context.Context) (*sql.DB, config.Config, error) {
	_ = godotenv.Load()
	cfg, err := config.LoadFrom(os.LookupEnv)
	if err != nil {
		return nil, cfg, err
	}
	db, dialect, err := database.Connect(cfg)
	if err != nil {
		return nil, cfg, err
	}
	if _, err := database.Migrate(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, cfg, err
	}
	return db, cfg, nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = godotenv.Load()
			cfg, err := config.LoadFrom(os.LookupEnv)
			if err != nil {
				return err
			}
			db, dialect, err := database.Connect(cfg)
			if err != nil {
				return err
			}
			defer db.Close()
			res, err := database.Migrate(cmd.Context(), db, dialect)
			if err != nil {
				return err
			}
			for _, name := range res.Applied {
				fmt.Fprintf(cmd.OutOrStdout(), "applied  %s\n", name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d applied, %d already in place\n", len(res.Applied), len(res.Skipped))
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert fixture data; existing rows are kept",
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := fixtures.Default()
			if file != "" {
				set, err = fixtures.LoadFile(file)
			}
			if err != nil {
				return err
			}
			db, _, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()
			res, err := fixtures.Seed(cmd.Context(), fixtures.Stores{
				Catalog:      repository.NewCatalogRepo(db),
				Places:       repository.NewPlaceRepo(db),
				Reservations: repository.NewReservationRepo(db),
			}, set)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d restaurants, %d menu items, %d places, %d reservations\n",
				res.Restaurants, res.MenuItems, res.Places, res.Reservations)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML fixture file (default: built-in set)")
	return cmd
}

func newCreateUserCmd() *cobra.Command {
	var email, password, role, restaurant, name string
	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account of any role",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := model.Role(strings.ToLower(role))
			if !r.Valid() {
				return fmt.Errorf("unknown role %q", role)
			}
			restaurant = strings.TrimSpace(restaurant)
			if r == model.RoleManager && restaurant == "" {
				return fmt.Errorf("managers need --restaurant")
			}
			db, cfg, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if restaurant != "" {
				if _, err := repository.NewCatalogRepo(db).GetRestaurant(cmd.Context(), restaurant); err != nil {
					return fmt.Errorf("restaurant %s: %w", restaurant, err)
				}
			}
			u, err := repository.NewUserRepo(db).Create(cmd.Context(), repository.NewUser{
				Email: email, Name: name, Password: password, Role: r, RestaurantID: restaurant,
			}, cfg.BcryptCost)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s, %s)\n", u.ID, u.Email, u.Role)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&email, "email", "", "login email")
	f.StringVar(&password, "password", "", "initial password")
	f.StringVar(&role, "role", string(model.RoleTourist), "admin, manager, customer or tourist")
	f.StringVar(&restaurant, "restaurant", "", "restaurant id a manager is assigned to")
	f.StringVar(&name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
