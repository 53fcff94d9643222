// Package cmd implements the command-line interface for pipewatch.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pipewatch/pipewatch/catalog"
	"github.com/pipewatch/pipewatch/color"
	"github.com/pipewatch/pipewatch/constant"
	"github.com/pipewatch/pipewatch/history"
	"github.com/pipewatch/pipewatch/icon"
	"github.com/pipewatch/pipewatch/key"
	"github.com/pipewatch/pipewatch/log"
	"github.com/pipewatch/pipewatch/playback"
	"github.com/pipewatch/pipewatch/player"
	"github.com/pipewatch/pipewatch/style"
	"github.com/pipewatch/pipewatch/tui"
	"github.com/pipewatch/pipewatch/version"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().StringP("instance", "i", "", "Stream proxy API instance")
	lo.Must0(viper.BindPFlag(key.CatalogInstance, rootCmd.PersistentFlags().Lookup("instance")))

	rootCmd.Flags().StringP("format", "f", "", "Stream format: dash, legacy or audio")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return catalog.Formats, cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.PlayerFormat, rootCmd.Flags().Lookup("format")))

	rootCmd.Flags().StringP("quality", "q", "", "Preferred video quality, e.g. 720p")
	lo.Must0(viper.BindPFlag(key.PlayerQuality, rootCmd.Flags().Lookup("quality")))

	rootCmd.Flags().String("platform", "", "Media engine behaviour: auto, reference or divergent")
	lo.Must0(viper.BindPFlag(key.PlayerPlatform, rootCmd.Flags().Lookup("platform")))

	rootCmd.Flags().BoolP("pick", "p", false, "Choose the stream variant interactively")
	rootCmd.Flags().BoolP("continue", "c", false, "Resume from the saved position, or the most recent video when no id is given")

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Remember the playback position")
	lo.Must0(viper.BindPFlag(key.HistorySave, rootCmd.PersistentFlags().Lookup("write-history")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Sockets left behind by crashed sessions.
	go player.RemoveStaleSockets()
}

// rootCmd plays a single video.
var rootCmd = &cobra.Command{
	Use:   constant.Pipewatch + " [video id or url]",
	Short: "Watch videos in mpv with separate audio and video tracks kept in sync",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Watch videos in mpv with separate audio and video tracks kept in sync"),
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		resume := lo.Must(cmd.Flags().GetBool("continue"))

		var (
			id  string
			err error
		)
		switch {
		case len(args) == 1:
			id, err = videoID(args[0])
		case resume:
			id, err = latestVideoID()
		default:
			handleErr(cmd.Help())
			return
		}
		handleErr(err)

		CheckDependencies()

		options := tui.Options{
			VideoID:    id,
			Preference: preference(),
			Continue:   resume,
			Platform:   viper.GetString(key.PlayerPlatform),
		}

		if lo.Must(cmd.Flags().GetBool("pick")) {
			video, variant, err := pickVariant(cmd.Context(), id)
			handleErr(err)
			options.Video = video
			options.Variant = mo.Some(variant)
		}

		log.WithField("video", id).Infof("playing with %s", playback.QuirksFor(options.Platform).Name())
		handleErr(tui.Run(&options))
	},
}

func preference() catalog.Preference {
	return catalog.Preference{
		Format:  viper.GetString(key.PlayerFormat),
		Quality: viper.GetString(key.PlayerQuality),
	}
}

func videoID(input string) (string, error) {
	id, ok := catalog.ParseID(input)
	if !ok {
		return "", fmt.Errorf("%q is not a video id or url", input)
	}
	return id, nil
}

func latestVideoID() (string, error) {
	latest, err := history.Latest()
	if err != nil {
		return "", err
	}
	video, ok := latest.Get()
	if !ok {
		return "", errors.New("history is empty")
	}
	return video.ID, nil
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
