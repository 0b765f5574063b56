package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"rollcall/internal/cli"
	"rollcall/internal/cli/employees"
	"rollcall/internal/cli/leaves"
	"rollcall/internal/cli/punches"
	"rollcall/internal/cli/system"
	"rollcall/internal/config"
	"rollcall/internal/constants"
	"rollcall/internal/errors"
	"rollcall/internal/keyring"
	"rollcall/internal/logger"
	"rollcall/internal/storage"
	"rollcall/internal/storage/postgres"
	"rollcall/internal/storage/sqlite"
)

var CLI struct {
	Version   kong.VersionFlag
	DB        string `help:"Database file path or PostgreSQL connection string. Credentials must NOT be embedded in connection strings, store them with 'rollcall system keyring set' instead. Defaults to rollcall.db under the user config directory." env:"ROLLCALL_DB"`
	Server    string `help:"Base URL of the attendance service. Defaults to the configured server_url or a locally running serve."`
	ConfigDir string `help:"Override the configuration directory." type:"path"`
	Debug     bool   `help:"Enable debug logging."`

	Board    system.BoardCmd `cmd:"" help:"Launch the live attendance board." default:"1"`
	Serve    system.ServeCmd `cmd:"" help:"Run the attendance service."`
	Status   cli.StatusCmd   `cmd:"" help:"Show attendance and the live logout estimate."`
	Summary  cli.SummaryCmd  `cmd:"" help:"Show today's headcount."`
	Activity cli.ActivityCmd `cmd:"" help:"Show recent punches and leave decisions."`
	Employee struct {
		Add     employees.EmployeeAddCmd     `cmd:"" help:"Add a new employee."`
		List    employees.EmployeeListCmd    `cmd:"" help:"List employees."`
		Remove  employees.EmployeeRemoveCmd  `cmd:"" help:"Remove an employee."`
		Restore employees.EmployeeRestoreCmd `cmd:"" help:"Restore a removed employee."`
	} `cmd:"" help:"Manage employees."`
	Punch struct {
		In    punches.PunchInCmd    `cmd:"" help:"Clock an employee in."`
		Out   punches.PunchOutCmd   `cmd:"" help:"Clock an employee out."`
		Break punches.BreakStartCmd `cmd:"" help:"Start a break."`
		Back  punches.BreakEndCmd   `cmd:"" help:"End the current break."`
	} `cmd:"" help:"Record attendance punches."`
	Leave struct {
		Add     leaves.LeaveAddCmd     `cmd:"" help:"Submit a leave request."`
		List    leaves.LeaveListCmd    `cmd:"" help:"List leave requests."`
		Approve leaves.LeaveApproveCmd `cmd:"" help:"Approve a pending request."`
		Reject  leaves.LeaveRejectCmd  `cmd:"" help:"Reject a pending request."`
	} `cmd:"" help:"Manage leave requests."`
	System struct {
		Init     system.InitCmd     `cmd:"" help:"Initialize rollcall storage."`
		Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
		Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
		Debug    system.DebugCmd    `cmd:"" help:"Debug commands for troubleshooting."`
		Validate system.ValidateCmd `cmd:"" help:"Check stored data for inconsistencies."`
		Keyring struct {
			Set    system.KeyringSetCmd    `cmd:"" help:"Store a connection string in the OS keyring."`
			Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string."`
			Delete system.KeyringDeleteCmd `cmd:"" help:"Delete the stored connection string."`
			Status system.KeyringStatusCmd `cmd:"" help:"Check keyring availability."`
		} `cmd:"" help:"Manage database credentials in the OS keyring."`
	} `cmd:"" help:"Storage and diagnostics commands."`
	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Trigger a board refresh (used internally)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("rollcall"),
		kong.Description("Attendance tracking with a live logout board"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":            constants.Version,
			"default_serve_addr": constants.DefaultServeAddr,
		},
	)

	if CLI.ConfigDir != "" {
		config.SetDirOverride(CLI.ConfigDir)
	}

	cfg, err := config.Load()
	if err != nil {
		errors.Fatal(err)
	}

	configDir, dirErr := config.Dir()
	if dirErr == nil || cfg.LogDir != "" {
		if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir, LogDir: cfg.LogDir}); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
		}
	}

	store, err := selectStore(CLI.DB, configDir)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:      store,
		Config:     cfg,
		ServerFlag: CLI.Server,
		Version:    constants.Version,
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}

// selectStore picks the storage backend: the --db flag or ROLLCALL_DB, then a
// connection string from the OS keyring, then the default SQLite file under
// the user config directory.
func selectStore(flag, configDir string) (storage.Provider, error) {
	connStr := flag
	if connStr == "" {
		if stored, err := keyring.GetConnectionString(); err == nil {
			connStr = stored
		}
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") || strings.Contains(connStr, "host=") {
		// Keyring entries are encrypted at rest; only values arriving via
		// flag or environment are refused for carrying a password.
		if flag != "" && postgres.HasEmbeddedCredentials(flag) {
			return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed in --db or ROLLCALL_DB; store them with 'rollcall system keyring set' instead")
		}
		return postgres.New(connStr), nil
	}

	if connStr == "" {
		if configDir == "" {
			return nil, fmt.Errorf("cannot locate the user config directory, pass --db")
		}
		connStr = filepath.Join(configDir, constants.DBFileName)
	}
	return sqlite.NewStore(connStr), nil
}
