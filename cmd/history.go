package cmd

import (
	"encoding/json"
	"sort"

	"github.com/pipewatch/pipewatch/color"
	"github.com/pipewatch/pipewatch/history"
	"github.com/pipewatch/pipewatch/icon"
	"github.com/pipewatch/pipewatch/style"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	historyCmd.Flags().StringP("remove", "r", "", "Forget the saved position of a video")
}

// historyCmd lists saved playback positions, most recent first.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the videos with a saved playback position",
	Run: func(cmd *cobra.Command, args []string) {
		if id := lo.Must(cmd.Flags().GetString("remove")); id != "" {
			handleErr(history.Remove(id))
			cmd.Printf("%s removed %s\n", style.Fg(color.Green)(icon.Get(icon.Success)), id)
			return
		}

		saved, err := history.Get()
		handleErr(err)

		entries := lo.Values(saved)
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].UpdatedAt.After(entries[j].UpdatedAt)
		})

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(entries))
			return
		}

		if len(entries) == 0 {
			cmd.Println(style.Faint("history is empty"))
			return
		}

		for _, e := range entries {
			mark := icon.Get(icon.Progress)
			if e.Finished() {
				mark = icon.Get(icon.Mark)
			}
			cmd.Printf("%s %s  %s\n", mark, e.String(), style.Faint(e.ID))
		}
	},
}
