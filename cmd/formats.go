package cmd

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/truncate"
	"github.com/pipewatch/pipewatch/catalog"
	"github.com/pipewatch/pipewatch/color"
	"github.com/pipewatch/pipewatch/playback"
	"github.com/pipewatch/pipewatch/style"
	"github.com/pipewatch/pipewatch/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(formatsCmd)
	formatsCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	formatsCmd.Flags().Bool("schema", false, "Print the JSON Schema of the --json output and exit")
}

// formatOutput is one entry of formats --json.
type formatOutput struct {
	Format  string          `json:"format" jsonschema:"enum=dash,enum=legacy,enum=audio"`
	Label   string          `json:"label"`
	Video   *playback.Track `json:"video,omitempty"`
	Audio   *playback.Track `json:"audio,omitempty"`
	Default bool            `json:"default"`
}

// formatsCmd lists the playable variants of a video.
var formatsCmd = &cobra.Command{
	Use:     "formats [video id or url]",
	Short:   "List the stream variants a video can be played in",
	Example: "  pipewatch formats dQw4w9WgXcQ --json",
	Args: func(cmd *cobra.Command, args []string) error {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			return nil
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("schema")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(formatsSchema()))
			return
		}

		id, err := videoID(args[0])
		handleErr(err)

		video, err := catalog.FromConfig().Streams(cmd.Context(), id)
		handleErr(err)

		outputs := formatOutputs(video, preference())

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(outputs))
			return
		}

		cmd.Println(style.Bold(video.Title))
		cmd.Println(style.Faint(util.Quantify(len(outputs), "variant", "variants")))
		cmd.Println()

		width := 80
		if w, _, err := util.TerminalSize(); err == nil && w > 0 {
			width = w
		}

		for _, o := range outputs {
			marker := " "
			if o.Default {
				marker = style.Fg(color.Green)("*")
			}
			line := fmt.Sprintf("%s %s %s", marker, style.Format(o.Format), o.Label)
			cmd.Println(indent.String(truncate.StringWithTail(line, uint(width-2), "…"), 2))
		}
	},
}

func formatOutputs(video *catalog.Video, pref catalog.Preference) []formatOutput {
	chosen, _, err := catalog.SelectInitial(video, pref)

	return lo.Map(catalog.Variants(video), func(v playback.Variant, _ int) formatOutput {
		return formatOutput{
			Format:  v.Kind.String(),
			Label:   v.Label(),
			Video:   v.Video,
			Audio:   v.Audio,
			Default: err == nil && v.Equal(chosen),
		}
	})
}

func formatsSchema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	reflector.Namer = func(t reflect.Type) string {
		if strings.EqualFold(t.Name(), "formatOutput") {
			return "Format"
		}
		return t.Name()
	}
	return reflector.Reflect([]formatOutput{})
}
