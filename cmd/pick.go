package cmd

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/pipewatch/pipewatch/catalog"
	"github.com/pipewatch/pipewatch/playback"
	"github.com/samber/lo"
)

// pickVariant fetches the listing and asks which variant to play.
func pickVariant(ctx context.Context, id string) (*catalog.Video, playback.Variant, error) {
	video, err := catalog.FromConfig().Streams(ctx, id)
	if err != nil {
		return nil, playback.Variant{}, err
	}

	variants := catalog.Variants(video)
	if len(variants) == 0 {
		return nil, playback.Variant{}, playback.ErrNoPlayableVariant
	}

	labels := lo.Map(variants, func(v playback.Variant, _ int) string {
		return v.Kind.String() + "  " + v.Label()
	})

	prompt := survey.Select{
		Message:  video.Title,
		Options:  labels,
		PageSize: 12,
	}

	var index int
	if err := survey.AskOne(&prompt, &index); err != nil {
		return nil, playback.Variant{}, err
	}
	if index < 0 || index >= len(variants) {
		return nil, playback.Variant{}, errors.New("no variant selected")
	}

	return video, variants[index], nil
}
