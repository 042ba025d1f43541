package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	charmlog "github.com/charmbracelet/log"

	"github.com/bakehq/bakerd/internal"
)

// Represents the root command for the bakerd daemon.
var RootCmd struct {
	Quiet      bool       `short:"q" help:"Suppress informational output."`
	Verbose    bool       `short:"v" help:"Enable verbose output."`
	Debug      bool       `short:"d" help:"Enable debug output."`
	Socket     string     `short:"s" env:"BAKERD_SOCKET" help:"Override the default Unix socket path." placeholder:"PATH"`
	Containerd string     `env:"BAKERD_CONTAINERD_ADDRESS" help:"Containerd socket address." placeholder:"PATH"`
	Namespace  string     `env:"BAKERD_NAMESPACE" help:"Containerd namespace for images and containers."`
	Start      StartCmd   `cmd:"" help:"Start the daemon."`
	Build      BuildCmd   `cmd:"" help:"Bake an image from a plan without the daemon."`
	Version    VersionCmd `cmd:"" help:"Show version information."`
}

// Parses arguments, configures logging, and runs the selected subcommand.
func Execute() error {

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(internal.Name),
		kong.Description("The bakehq image daemon.\n\nListens on a Unix domain socket for bake commands from the bake CLI."),
		kong.UsageOnError(),
		kong.Vars{
			"version": internal.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	configureLogger()

	return kongCtx.Run()
}

// Configures the global logger based on CLI flags.
func configureLogger() {
	handler, ok := slog.Default().Handler().(*charmlog.Logger)
	if !ok {
		return // Not a charm logger, nothing to configure
	}

	debug := RootCmd.Debug || internal.IsDebug()
	quiet := RootCmd.Quiet || internal.IsQuiet()
	verbose := RootCmd.Verbose || internal.IsVerbose()

	// Publish the resolved modes so the rest of the daemon sees the flags,
	// not just the linker-flag defaults.
	internal.SetDebug(debug)
	internal.SetQuiet(quiet)
	internal.SetVerbose(verbose)

	if debug {
		handler.SetLevel(charmlog.DebugLevel)
		handler.SetReportCaller(true)
	} else if quiet {
		handler.SetLevel(charmlog.WarnLevel)
	} else {
		handler.SetLevel(charmlog.InfoLevel)
	}

	handler.SetReportTimestamp(verbose || debug)

	if !isatty(os.Stderr) {
		handler.SetFormatter(charmlog.LogfmtFormatter)
	}
}

// Whether the given file is an interactive terminal.
func isatty(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
