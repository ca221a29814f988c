package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/bikerental/internal/cli"
	"github.com/idilsaglam/bikerental/internal/config"
	"github.com/idilsaglam/bikerental/internal/dashboard"
	"github.com/idilsaglam/bikerental/internal/gateway"
	"github.com/idilsaglam/bikerental/internal/logging"
	"github.com/idilsaglam/bikerental/internal/mockapi"
	"github.com/idilsaglam/bikerental/internal/tui"
	"github.com/idilsaglam/bikerental/internal/ui"
)

var version = "0.1.0"

var (
	flagConfig  string
	flagColor   bool
	flagNoColor bool
	flagUser    string
	flagBike    string
	flagAddr    string
	flagData    string
	flagOrigins []string
	flagVerbose int
)

// rt is what PersistentPreRunE prepares for every command.
var rt struct {
	cfg      config.Config
	tuiTheme string
	log      logr.Logger
	closeLog func() error
}

// exitCode carries a runner's exit status out of cobra.
type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

// usageError is bad input caught before anything ran.
type usageError struct{ error }

func status(code int) error {
	if code == cli.ExitOK {
		return nil
	}
	return exitCode(code)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := execute(ctx, os.Args[1:])
	stop()

	var code exitCode
	var usage usageError
	switch {
	case err == nil:
		os.Exit(cli.ExitOK)
	case errors.As(err, &code):
		os.Exit(int(code))
	case errors.As(err, &usage):
		ui.Fail(usage.Error())
		os.Exit(cli.ExitUsage)
	default:
		ui.Fail(err.Error())
		os.Exit(cli.ExitFail)
	}
}

// execute runs the command line and closes the log whatever the outcome;
// cobra skips post-run hooks when a command fails.
func execute(ctx context.Context, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if rt.closeLog != nil {
		if cerr := rt.closeLog(); cerr != nil && err == nil {
			err = fmt.Errorf("close log: %w", cerr)
		}
		rt.closeLog = nil
	}
	return err
}

var rootCmd = &cobra.Command{
	Use:   "bikerental",
	Short: "Bicycle rental dashboard",
	Long: `bikerental manages bicycles, users and loans of a rental API.

Run without arguments to open the interactive dashboard, or use a
subcommand to run one operation and exit.

Examples:
  bikerental                                # Start the dashboard
  bikerental bikes ls                       # List bicycles
  bikerental users add --name Ana --cpf 111 --birth-date 2000-01-01
  bikerental rent --user u1 --bike b2       # Open a loan
  bikerental return l5                      # Close a loan
  bikerental mockapi --data rental.json     # Local backend for development`,
	Version:       version,
	Args:          noArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagColor && flagNoColor {
			return usageError{errors.New("--color and --no-color cannot be used together")}
		}
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		noColor := flagNoColor || (!flagColor && os.Getenv("NO_COLOR") != "")
		ui.SetColorForcing(flagColor, noColor)
		ui.SetTheme(cfg.Theme)
		rt.tuiTheme = cfg.Theme
		if noColor {
			rt.tuiTheme = "mono"
		}
		log, closeLog, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		rt.cfg, rt.log, rt.closeLog = cfg, log, closeLog
		log.Info("start", "command", cmd.CommandPath(), "version", version, "api", cfg.API.BaseURL)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl, err := controller()
		if err != nil {
			return err
		}
		return tui.Run(cmd.Context(), ctl, tui.Options{Theme: rt.tuiTheme, Logger: rt.log.WithName("tui")})
	},
}

// controller wires the gateway with the resolved token.
func controller() (*dashboard.Controller, error) {
	opts := []gateway.Option{gateway.WithLogger(rt.log.WithName("gateway"))}
	ti, err := config.ResolveToken(rt.cfg.API)
	if err != nil {
		return nil, err
	}
	if ti != nil {
		opts = append(opts, gateway.WithToken(ti.Token))
	}
	gw, err := gateway.New(rt.cfg.API, opts...)
	if err != nil {
		return nil, err
	}
	return dashboard.New(gw), nil
}

// runner builds a cli.Runner for one command invocation.
func runner(cmd *cobra.Command) (*cli.Runner, error) {
	ctl, err := controller()
	if err != nil {
		return nil, err
	}
	return cli.New(cmd.Context(), ctl), nil
}

func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return usageError{fmt.Errorf("unexpected argument %q for %s", args[0], cmd.CommandPath())}
	}
	return nil
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return usageError{fmt.Errorf("%s expects %d argument(s), got %d\nUsage: %s", cmd.CommandPath(), n, len(args), cmd.UseLine())}
		}
		return nil
	}
}

// -------------- bikes / users ----------------

// flagNames maps entity attributes to command-line flags.
var flagNames = map[string]string{
	"marca":           "brand",
	"modelo":          "model",
	"cidade":          "city",
	"status":          "status",
	"nome":            "name",
	"cpf":             "cpf",
	"data_nascimento": "birth-date",
}

func fieldFlags(cmd *cobra.Command, e dashboard.Entity, withDefaults bool) {
	for _, fd := range e.Fields {
		def, usage := "", fd.Label
		if fd.Selector() {
			usage = fmt.Sprintf("%s (%v)", fd.Label, fd.Choices)
			if withDefaults {
				def = fd.Choices[0]
			}
		}
		cmd.Flags().String(flagNames[fd.Key], def, usage)
	}
}

func formFromFlags(cmd *cobra.Command, e dashboard.Entity) dashboard.Form {
	f := dashboard.Form{}
	for _, fd := range e.Fields {
		v, _ := cmd.Flags().GetString(flagNames[fd.Key])
		f[fd.Key] = v
	}
	return f
}

func entityCmd(use, short string, e dashboard.Entity, list dashboard.Screen) *cobra.Command {
	group := &cobra.Command{Use: use, Short: short, Args: noArgs}

	ls := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List every record",
		Args:    noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := runner(cmd)
			if err != nil {
				return err
			}
			return status(r.List(e.Resource, list.Header()))
		},
	}

	add := &cobra.Command{
		Use:   "add",
		Short: "Create a record",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := runner(cmd)
			if err != nil {
				return err
			}
			return status(r.Add(e, formFromFlags(cmd, e)))
		},
	}
	fieldFlags(add, e, true)

	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the given attributes of a record, keeping the others",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := runner(cmd)
			if err != nil {
				return err
			}
			return status(r.Update(e, args[0], formFromFlags(cmd, e)))
		},
	}
	fieldFlags(update, e, false)

	rm := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a record",
		Args:    exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := runner(cmd)
			if err != nil {
				return err
			}
			return status(r.Remove(e, args[0]))
		},
	}

	group.AddCommand(ls, add, update, rm)
	return group
}

// -------------- loans ----------------

var loansCmd = &cobra.Command{
	Use:   "loans",
	Short: "List the active loans",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := runner(cmd)
		if err != nil {
			return err
		}
		return status(r.List(dashboard.ResourceLoans, dashboard.ScreenLoans.Header()))
	},
}

var rentCmd = &cobra.Command{
	Use:   "rent --user ID --bike ID",
	Short: "Rent an available bicycle to a user",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagUser == "" || flagBike == "" {
			return usageError{errors.New("rent needs both --user and --bike")}
		}
		r, err := runner(cmd)
		if err != nil {
			return err
		}
		return status(r.Rent(flagUser, flagBike))
	},
}

var returnCmd = &cobra.Command{
	Use:   "return <loanID>",
	Short: "Return the bicycle of an active loan",
	Args:  exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := runner(cmd)
		if err != nil {
			return err
		}
		return status(r.Return(args[0]))
	},
}

// -------------- auth ----------------

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the API token",
	Args:  noArgs,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save an API token read from stdin",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return status(cli.AuthLogin(cmd.InOrStdin(), cmd.OutOrStdout()))
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Delete the saved API token",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return status(cli.AuthLogout(rt.cfg.API))
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the API token comes from",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return status(cli.AuthStatus(rt.cfg.API))
	},
}

// -------------- mock API ----------------

var mockapiCmd = &cobra.Command{
	Use:   "mockapi",
	Short: "Serve an in-memory rental API for development",
	Args:  noArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := mockapi.New(mockapi.Options{
			DataFile: flagData,
			Origins:  flagOrigins,
			Logger:   logging.Console(cmd.ErrOrStderr(), flagVerbose),
		})
		if err != nil {
			return err
		}
		ui.OK("mock API listening on " + flagAddr)
		if flagData != "" {
			ui.Info("data file: " + flagData)
		}
		return srv.Serve(cmd.Context(), flagAddr)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.bikerental/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagColor, "color", false, "force colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colors (also NO_COLOR)")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	rentCmd.Flags().StringVar(&flagUser, "user", "", "user id")
	rentCmd.Flags().StringVar(&flagBike, "bike", "", "bicycle id")

	mockapiCmd.Flags().StringVar(&flagAddr, "addr", ":5000", "listen address")
	mockapiCmd.Flags().StringVar(&flagData, "data", "", "JSON file to load at start and save after each change")
	mockapiCmd.Flags().StringSliceVar(&flagOrigins, "origin", nil, "allowed CORS origin, can be repeated (default any)")
	mockapiCmd.Flags().IntVar(&flagVerbose, "verbose", 1, "request log verbosity (0 quiet)")

	authCmd.AddCommand(authLoginCmd, authLogoutCmd, authStatusCmd)
	rootCmd.AddCommand(
		entityCmd("bikes", "Manage bicycles", dashboard.BikeEntity, dashboard.ScreenListBikes),
		entityCmd("users", "Manage users", dashboard.UserEntity, dashboard.ScreenListUsers),
		loansCmd,
		rentCmd,
		returnCmd,
		authCmd,
		mockapiCmd,
	)
}
