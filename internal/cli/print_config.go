package cli

import (
	"context"

	flag "github.com/spf13/pflag"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and where each part came from.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			cfg := a.cfg

			o.Println("effective_cwd=" + cfg.EffectiveCwd)
			o.Println("directory=" + cfg.DirectoryAbs)

			if cfg.Editor != "" {
				o.Println("editor=" + cfg.Editor)
			}

			if cfg.LogFileAbs != "" {
				o.Println("log_file=" + cfg.LogFileAbs)
			}

			o.Println("")
			o.Println("# sources")
			o.Println("directory_source=" + cfg.Sources.Directory)

			if cfg.Sources.Global != "" {
				o.Println("global_config=" + cfg.Sources.Global)
			}

			if cfg.Sources.File != "" {
				o.Println("config_file=" + cfg.Sources.File)
			}

			return nil
		},
	}
}
