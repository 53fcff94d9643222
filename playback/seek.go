package playback

import (
	"errors"
	"math"
)

// Seek moves playback to target. Every seek re-enters the buffering phase: readiness is
// reset, the state becomes StateLoading and play is requested again, which starts only once
// both pipelines have refilled at the new position.
func (c *Controller) Seek(target float64) error {
	if !c.mounted() {
		return ErrNotMounted
	}

	c.skipper.Rearm(target)
	return c.seek(target)
}

func (c *Controller) seek(target float64) error {
	target = c.clampPosition(target)

	if err := c.Pause(); err != nil {
		c.logger.Warnf("pause before seek: %v", err)
	}

	c.enterLoading()

	var moveErr error
	if c.quirks.SupportsFastSeek() {
		if err := c.fastSeekAll(target); err != nil {
			c.logger.Debugf("fast seek to %.3f failed, setting clocks: %v", target, err)
			moveErr = c.setClockAll(target)
		}
	} else {
		moveErr = c.setClockAll(target)
	}

	c.clock.Current = target

	return errors.Join(moveErr, c.Play())
}

// ChangeFormat swaps the current variant for another one without restarting the video.
// Every new locator is validated before any pipeline is touched. The new sources are
// attached at the captured position before unused ones are torn down. When a pipeline
// rejects its new source, the ones already switched go back to the current variant and the
// controller keeps playing it.
func (c *Controller) ChangeFormat(variant Variant) error {
	if !c.mounted() {
		return ErrNotMounted
	}
	if err := variant.Validate(); err != nil {
		return err
	}

	position := c.clock.Current

	if err := c.attach(variant, position); err != nil {
		return err
	}
	c.variant = variant
	c.loaded = true

	if err := c.Pause(); err != nil {
		c.logger.Warnf("pause after format change: %v", err)
	}
	c.enterLoading()
	c.clock.Current = position

	c.logger.Infof("format changed to %s at %.3f", variant.Label(), position)
	return nil
}

func (c *Controller) enterLoading() {
	c.videoReady, c.audioReady = false, false
	c.stalled = false
	c.setState(StateLoading)
}

func (c *Controller) pipeline(kind TrackKind) Pipeline {
	if kind == TrackAudio {
		return c.audio
	}
	return c.video
}

// attach points the pipelines at the variant's tracks, positioned at start, and only then
// detaches a pipeline the variant no longer uses.
func (c *Controller) attach(variant Variant, start float64) error {
	var switched []TrackKind
	for _, kind := range []TrackKind{TrackVideo, TrackAudio} {
		track := variant.track(kind)
		if track == nil {
			continue
		}
		if err := c.pipeline(kind).Attach(*track, start); err != nil {
			c.rollback(switched, start)
			return pipelineErr(kind, "attach", err)
		}
		switched = append(switched, kind)
	}

	if !c.loaded {
		return nil
	}
	if c.variant.UsesVideo() && !variant.UsesVideo() {
		if err := c.video.Detach(); err != nil {
			c.logger.Warnf("detach video: %v", err)
		}
	}
	if c.variant.UsesAudio() && !variant.UsesAudio() {
		if err := c.audio.Detach(); err != nil {
			c.logger.Warnf("detach audio: %v", err)
		}
	}
	return nil
}

// rollback returns switched pipelines to the current variant at start. Pipelines that carried
// nothing before are detached again, and a playing controller restarts the restored ones.
func (c *Controller) rollback(switched []TrackKind, start float64) {
	for _, kind := range switched {
		p := c.pipeline(kind)

		previous := c.variant.track(kind)
		if !c.loaded || previous == nil {
			if err := p.Detach(); err != nil {
				c.logger.Warnf("rollback: detach %s: %v", kind, err)
			}
			continue
		}

		if err := p.Attach(*previous, start); err != nil {
			c.logger.Errorf("rollback: re-attach %s: %v", kind, err)
			continue
		}
		if c.state == StatePlaying {
			if err := p.Play(); err != nil {
				c.logger.Warnf("rollback: restart %s: %v", kind, err)
			}
		}
	}
}

func (c *Controller) fastSeekAll(target float64) error {
	var errs []error
	for _, l := range c.lanes() {
		if err := l.pipeline.FastSeek(target); err != nil {
			errs = append(errs, pipelineErr(l.kind, "fast seek", err))
		}
	}
	return errors.Join(errs...)
}

func (c *Controller) setClockAll(target float64) error {
	var errs []error
	for _, l := range c.lanes() {
		if err := l.pipeline.SetClock(target); err != nil {
			errs = append(errs, pipelineErr(l.kind, "set clock", err))
		}
	}
	return errors.Join(errs...)
}

func (c *Controller) clampPosition(target float64) float64 {
	if math.IsNaN(target) || target < 0 {
		return 0
	}
	if c.clock.Duration > 0 && target > c.clock.Duration {
		return c.clock.Duration
	}
	return target
}
