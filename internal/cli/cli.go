package cli

import (
	"io"
	"os"

	"alcyxob/fitlocal/internal/config"
	"alcyxob/fitlocal/internal/logging"

	"github.com/alecthomas/kong"
	log "github.com/sirupsen/logrus"
)

// CLI is the fitctl command line.
type CLI struct {
	Version kong.VersionFlag `help:"Show version information."`
	Config  string           `help:"Directory containing config.yaml." type:"path" default:"." env:"FITLOCAL_CONFIG_DIR"`
	Debug   bool             `help:"Log debug output to stderr." short:"d"`

	Migrate MigrateCmd `cmd:"" help:"Create or update the database schema."`
	Export  ExportCmd  `cmd:"" help:"Write the workout log as an xlsx workbook."`
	Status  StatusCmd  `cmd:"" help:"Show streak, plan week and phase."`
}

// Execute parses args and runs the selected command, writing to out.
func Execute(args []string, out io.Writer, version string) error {
	var root CLI
	parser, err := kong.New(&root,
		kong.Name("fitctl"),
		kong.Description("FitLocal maintenance tool"),
		kong.Vars{"version": version},
		kong.UsageOnError(),
		kong.Writers(out, os.Stderr),
	)
	if err != nil {
		return err
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(root.Config)
	if err != nil {
		return err
	}

	// command output goes to out, logs stay on stderr
	log.SetOutput(os.Stderr)
	if root.Debug {
		log.SetLevel(logging.GetLevel("debug"))
	} else {
		log.SetLevel(logging.GetLevel("warn"))
	}

	appCtx := NewContext(cfg)
	appCtx.Out = out
	defer appCtx.Close()

	return kctx.Run(appCtx)
}
