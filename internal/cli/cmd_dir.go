package cli

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"

	"tasknote/internal/config"
)

var errNoConfigLocation = errors.New("cannot determine config location (set HOME or XDG_CONFIG_HOME, or pass -c)")

// DirCmd returns the dir command.
func DirCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("dir", flag.ContinueOnError),
		Usage: "dir [path]",
		Short: "Print or change the storage directory",
		Long: `Without arguments, print the storage directory. With a path, save it
to the config file (-c if given, otherwise the global config) and create
tasks.md and notes.md there if missing.`,
		Exec: func(_ context.Context, o *IO, args []string) error {
			if len(args) > 1 {
				return errTooManyArgs
			}

			if len(args) == 0 {
				o.Println(a.cfg.DirectoryAbs)

				return nil
			}

			dir := config.ResolvePath(a.cfg.EffectiveCwd, a.env, args[0])

			path := a.settingsPath()
			if path == "" {
				return errNoConfigLocation
			}

			err := config.Save(path, config.Config{Directory: dir})
			if err != nil {
				return err
			}

			a.cfg.DirectoryAbs = dir

			_, _, closeAll, err := a.openBoth()
			if err != nil {
				return err
			}

			closeAll()

			switch a.cfg.Sources.Directory {
			case config.SourceEnv:
				o.Warn("$"+config.DirEnv+" overrides the saved directory", "unset it to use "+dir)
			case config.SourceFlag:
				o.Warn("--dir overrides the saved directory", "drop it to use "+dir)
			}

			o.Println(dir)
			o.Println("saved to", path)

			return nil
		},
	}
}
