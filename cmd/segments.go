package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pipewatch/pipewatch/color"
	"github.com/pipewatch/pipewatch/icon"
	"github.com/pipewatch/pipewatch/key"
	"github.com/pipewatch/pipewatch/playback"
	"github.com/pipewatch/pipewatch/sponsorblock"
	"github.com/pipewatch/pipewatch/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(segmentsCmd)
	segmentsCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	segmentsCmd.Flags().StringSliceP("categories", "C", nil, "Override the configured categories")
	_ = segmentsCmd.RegisterFlagCompletionFunc("categories", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return sponsorblock.Categories, cobra.ShellCompDirectiveNoFileComp
	})
}

// segmentsCmd lists the segments that would be skipped for a video.
var segmentsCmd = &cobra.Command{
	Use:   "segments [video id or url]",
	Short: "List the sponsor segments that will be skipped",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id, err := videoID(args[0])
		handleErr(err)

		client := sponsorblock.FromConfig()
		if client == nil {
			handleErr(errors.New("segment skipping is disabled, see " + key.SponsorBlockEnable))
		}

		categories := lo.Must(cmd.Flags().GetStringSlice("categories"))
		if len(categories) == 0 {
			categories = viper.GetStringSlice(key.SponsorBlockCategories)
		}

		segments, err := client.GetSegments(cmd.Context(), id, categories)
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("json")) {
			if segments == nil {
				segments = []playback.Segment{}
			}
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(segments))
			return
		}

		if len(segments) == 0 {
			cmd.Println(style.Faint("no segments"))
			return
		}

		for _, s := range segments {
			cmd.Println(fmt.Sprintf(
				"%s %s - %s  %s",
				icon.Get(icon.Skip),
				playback.FormatTime(s.Start),
				playback.FormatTime(s.End),
				style.Fg(color.Yellow)(s.Category),
			))
		}
	},
}
