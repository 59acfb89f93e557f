package main

import (
	"errors"
	"os"

	goversion "github.com/caarlos0/go-version"
	"github.com/caarlos0/log"
	"github.com/loicsikidi/adminhelper/cmd/check"
	"github.com/loicsikidi/adminhelper/cmd/restart"
	versionCmd "github.com/loicsikidi/adminhelper/cmd/version"
	"github.com/loicsikidi/adminhelper/internal"
	"github.com/loicsikidi/adminhelper/internal/privilege"
	"github.com/spf13/cobra"
)

const website = "https://github.com/loicsikidi/adminhelper"

var (
	version = ""
	builtBy = ""
)

func main() {
	rootCmd := newRootCommand(buildVersion(version, builtBy))

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, internal.ErrSilence) {
			log.WithError(err).Error("command failed")
		}
		os.Exit(1)
	}
}

func newRootCommand(info goversion.Info) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "adminhelper",
		Short:         "check for administrator privileges and restart elevated",
		SilenceErrors: true,
	}

	// set on relaunched instances; it only needs to parse
	var alreadyElevated bool
	rootCmd.PersistentFlags().BoolVar(&alreadyElevated, privilege.AlreadyElevatedFlagName, false, "")
	_ = rootCmd.PersistentFlags().MarkHidden(privilege.AlreadyElevatedFlagName)

	rootCmd.AddCommand(check.NewCommand())
	rootCmd.AddCommand(restart.NewCommand())
	rootCmd.AddCommand(versionCmd.NewCommand(info))

	return rootCmd
}

func buildVersion(version, builtBy string) goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails("adminhelper", "Administrator privileges, simplified.", website),
		func(i *goversion.Info) {
			if version != "" {
				i.GitVersion = version
			}
			if builtBy != "" {
				i.BuiltBy = builtBy
			}
		},
	)
}
