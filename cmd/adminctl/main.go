package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/intradash/adminkit/internal/apiclient"
	"github.com/intradash/adminkit/internal/auth"
	"github.com/intradash/adminkit/internal/common/config"
	"github.com/intradash/adminkit/internal/common/dto"
	"github.com/intradash/adminkit/internal/provider"
	"github.com/intradash/adminkit/internal/service"
	"github.com/intradash/adminkit/pkg/logger"
	"github.com/intradash/adminkit/pkg/version"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of adminctl",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("adminctl version %s\n", version.Get())
		},
	}

	rootCmd = &cobra.Command{
		Use:   "adminctl",
		Short: "Intranet dashboard admin CLI",
		Long:  `adminctl manages users, departments, cards, wifi networks and quick links of the intranet dashboard backend`,
	}
)

// app bundles everything a subcommand needs. Built once per
// invocation, torn down when the command returns.
type app struct {
	cfg      *config.AdminCLIConfig
	logger   *zap.Logger
	auth     *auth.Service
	provider provider.Provider
}

func newApp() (*app, error) {
	cfg, cfgPath, err := config.LoadConfig[config.AdminCLIConfig](configPath)
	if err != nil {
		// adminctl must stay usable without a config file on disk.
		cfg = &config.AdminCLIConfig{}
		cfg.SetDefaults()
	}

	zapLogger, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zapLogger.Debug("configuration resolved",
		zap.String("path", cfgPath),
		zap.String("base_url", cfg.API.BaseURL))

	api := apiclient.NewClient(&cfg.API, zapLogger)
	store, err := auth.NewTokenStore(zapLogger, &cfg.Auth.TokenStorage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token storage: %w", err)
	}
	authSvc := auth.NewService(api, store, zapLogger)

	users := service.NewUsers(api)
	departments := service.NewDepartments(api)
	cards := service.NewCards(api)
	wifi := service.NewWifi(api)
	quickLinks := service.NewQuickLinks(api)
	userDepartments := service.NewUserDepartments(departments, zapLogger)

	standard := provider.NewStandard(users, departments, cards, wifi, quickLinks, authSvc, api.BaseURL(), zapLogger)
	custom := provider.NewCustom(userDepartments, departments, authSvc, api.BaseURL(), zapLogger)
	combined, err := provider.NewCombined(custom, standard)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, logger: zapLogger, auth: authSvc, provider: combined}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

// printJSON renders a result for the terminal.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Authenticate against the backend and store the token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		password := os.Getenv("ADMINKIT_PASSWORD")
		if password == "" {
			fmt.Fprint(os.Stderr, "Password: ")
			if _, err := fmt.Scanln(&password); err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
		}

		user, err := a.auth.Login(cmd.Context(), dto.LoginRequest{
			Email:    args[0],
			Password: password,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s %s (%s)\n", user.FirstName, user.LastName, user.Role)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.auth.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the identity encoded in the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if _, err := a.auth.RequireToken(); err != nil {
			return err
		}
		if !a.auth.IsAuthenticated() {
			return fmt.Errorf("session expired, log in again")
		}
		user := a.auth.CurrentUser()
		if user == nil {
			return fmt.Errorf("stored token carries no identity")
		}
		return printJSON(user)
	},
}

var (
	listPage     int
	listPageSize int
	listFilters  []string

	listCmd = &cobra.Command{
		Use:   "list <resource>",
		Short: "List records of a resource",
		Long: `List records of a resource. Filters are field=value pairs, for example:

  adminctl list users --filter role=ADMIN --filter isActive=true
  adminctl list user-departments --filter userId=<id>`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			result, err := a.provider.List(cmd.Context(), provider.ListParams{
				Resource:   args[0],
				Pagination: &provider.Pagination{Current: listPage, PageSize: listPageSize},
				Filters:    parseFilters(listFilters),
			})
			if err != nil {
				return err
			}
			fmt.Printf("total: %d\n", result.Total)
			return printJSON(result.Data)
		},
	}
)

var getCmd = &cobra.Command{
	Use:   "get <resource> <id>",
	Short: "Fetch one record by ID",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		result, err := a.provider.GetOne(cmd.Context(), provider.GetOneParams{
			Resource: args[0],
			ID:       args[1],
		})
		if err != nil {
			return err
		}
		return printJSON(result.Data)
	},
}

var (
	createVars string

	createCmd = &cobra.Command{
		Use:   "create <resource>",
		Short: "Create a record from a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			vars, err := parseVars(createVars)
			if err != nil {
				return err
			}
			result, err := a.provider.Create(cmd.Context(), provider.CreateParams{
				Resource:  args[0],
				Variables: vars,
			})
			if err != nil {
				return err
			}
			return printJSON(result.Data)
		},
	}
)

var (
	updateVars string

	updateCmd = &cobra.Command{
		Use:   "update <resource> <id>",
		Short: "Update a record from a JSON document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			vars, err := parseVars(updateVars)
			if err != nil {
				return err
			}
			result, err := a.provider.Update(cmd.Context(), provider.UpdateParams{
				Resource:  args[0],
				ID:        args[1],
				Variables: vars,
			})
			if err != nil {
				return err
			}
			return printJSON(result.Data)
		},
	}
)

var (
	deleteMode string
	deleteVars string

	deleteCmd = &cobra.Command{
		Use:   "delete <resource> [id]",
		Short: "Delete a record",
		Long: `Delete a record. Users are deactivated, never removed. For cards
--mode=full wipes the card and its assignments instead of the
assignments alone. department-assignments take --vars instead of an ID:

  adminctl delete department-assignments --vars '{"departmentId":"...","userId":"..."}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			params := provider.DeleteParams{Resource: args[0]}
			if len(args) > 1 {
				params.ID = args[1]
			}
			if deleteMode != "" {
				params.Meta = map[string]any{"deleteMode": deleteMode}
			}
			if deleteVars != "" {
				vars, err := parseVars(deleteVars)
				if err != nil {
					return err
				}
				params.Variables = vars
			}
			result, err := a.provider.Delete(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printJSON(result.Data)
		},
	}
)

// parseFilters turns field=value pairs into equality filters.
func parseFilters(pairs []string) []provider.Filter {
	filters := make([]provider.Filter, 0, len(pairs))
	for _, pair := range pairs {
		field, value, found := strings.Cut(pair, "=")
		if !found || field == "" {
			continue
		}
		filters = append(filters, provider.Filter{
			Field:    field,
			Operator: provider.OperatorEq,
			Value:    value,
		})
	}
	return filters
}

// parseVars decodes the --vars JSON document, reading from stdin when
// the argument is "-".
func parseVars(raw string) (map[string]any, error) {
	if raw == "" {
		return nil, fmt.Errorf("missing --vars JSON document")
	}
	var vars map[string]any
	if raw == "-" {
		if err := json.NewDecoder(os.Stdin).Decode(&vars); err != nil {
			return nil, fmt.Errorf("failed to read JSON from stdin: %w", err)
		}
		return vars, nil
	}
	if err := json.Unmarshal([]byte(raw), &vars); err != nil {
		return nil, fmt.Errorf("invalid JSON document: %w", err)
	}
	return vars, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "conf", "configs/adminctl.yaml", "path to configuration file")

	listCmd.Flags().IntVar(&listPage, "page", 1, "page number")
	listCmd.Flags().IntVar(&listPageSize, "page-size", 10, "records per page")
	listCmd.Flags().StringArrayVar(&listFilters, "filter", nil, "field=value filter, repeatable")

	createCmd.Flags().StringVar(&createVars, "vars", "", "JSON document with the record fields, or - for stdin")
	updateCmd.Flags().StringVar(&updateVars, "vars", "", "JSON document with the changed fields, or - for stdin")
	deleteCmd.Flags().StringVar(&deleteMode, "mode", "", "delete mode, cards accept \"full\"")
	deleteCmd.Flags().StringVar(&deleteVars, "vars", "", "JSON document identifying the record when no ID applies")

	rootCmd.AddCommand(versionCmd, loginCmd, logoutCmd, whoamiCmd, listCmd, getCmd, createCmd, updateCmd, deleteCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
