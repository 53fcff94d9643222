package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/pipewatch/pipewatch/color"
	"github.com/pipewatch/pipewatch/constant"
	"github.com/pipewatch/pipewatch/key"
	"github.com/pipewatch/pipewatch/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Pipewatch + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.CatalogInstance, "https://pipedapi.kavin.rocks", "Stream proxy API instance that resolves videos to tracks")
	register(key.CatalogCacheTTL, "6h", "How long resolved stream lists are cached.\nStream URLs expire, keep this short. Set to 0s to disable")
	register(key.CatalogFrontend, "https://piped.video", "Web frontend used to open the watch page")
	register(key.SponsorBlockEnable, true, "Skip sponsor segments automatically")
	register(key.SponsorBlockAPI, "https://sponsor.ajay.app", "SponsorBlock API base URL")
	register(key.SponsorBlockCategories, []string{"sponsor", "selfpromo", "interaction"}, "Segment categories to skip.\nAvailable options are: sponsor, selfpromo, interaction, intro, outro, preview, music_offtopic, filler")
	register(key.PlayerFormat, "dash", "Preferred stream format.\nAvailable options are: dash (separate video and audio), legacy (single muxed stream), audio")
	register(key.PlayerQuality, "1080p", "Preferred video quality label, e.g. 720p or 1080p60.\nThe closest available quality is used")
	register(key.PlayerPlatform, "auto", "Media engine behaviour.\nAvailable options are: auto, reference, divergent")
	register(key.PlayerAutoplay, true, "Start playback as soon as both tracks are buffered")
	register(key.PlayerVolume, 100, "Initial volume (0-100)")
	register(key.PlayerSeekStep, 5, "Seconds to move on left and right arrow keys")
	register(key.TUIIdleTimeout, "3s", "Hide the player controls after this much pointer inactivity")
	register(key.HistorySave, true, "Remember the playback position of watched videos")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, kaomoji, plain, squares, nerd (nerd-font required)")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Enable automatic version check")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
