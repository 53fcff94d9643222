package playback

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/pipewatch/pipewatch/log"
	"github.com/samber/mo"
)

// Notifier is a fire-and-forget sink for user-visible toasts.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

// Dispatcher runs fn on the host event loop. Pipeline events arrive on arbitrary goroutines
// and reach the controller only through it.
type Dispatcher func(fn func())

// Immediate runs fn on the calling goroutine. It suits hosts whose pipelines already emit
// events on the loop, and tests.
func Immediate(fn func()) { fn() }

// Options configure a Controller.
type Options struct {
	Quirks     Quirks
	Notifier   Notifier
	Dispatcher Dispatcher

	// Autoplay starts playback on the first can-play that makes the variant ready.
	Autoplay bool
	// Volume is the initial output volume in the 0..1 range; full volume when absent.
	Volume mo.Option[float64]
	// Segments are the already-filtered skip segments for this video.
	Segments []Segment
	// Session identifies the view in logs; a random one is generated when empty.
	Session string
}

type lane struct {
	kind     TrackKind
	pipeline Pipeline
}

// Controller owns the playback state, readiness flags, clock and current variant for one
// video view. It is not safe for concurrent use: every method must run on the host event loop.
type Controller struct {
	quirks   Quirks
	notifier Notifier
	dispatch Dispatcher
	autoplay bool
	logger   *log.Entry

	video, audio Pipeline

	variant Variant
	loaded  bool
	state   State

	videoReady, audioReady bool
	// stalled is set when a pipeline ran dry while playing; a later readiness flip re-syncs.
	stalled bool

	clock   Clock
	volume  float64
	style   Style
	skipper *SkipEngine
}

// New creates a controller in StateInitial.
func New(options Options) *Controller {
	if options.Quirks == nil {
		options.Quirks = ReferenceQuirks{}
	}
	if options.Notifier == nil {
		options.Notifier = NotifierFunc(func(string) {})
	}
	if options.Dispatcher == nil {
		options.Dispatcher = Immediate
	}
	if options.Session == "" {
		options.Session = uuid.NewString()
	}

	return &Controller{
		quirks:   options.Quirks,
		notifier: options.Notifier,
		dispatch: options.Dispatcher,
		autoplay: options.Autoplay,
		logger: log.WithFields(map[string]any{
			"session":  options.Session,
			"platform": options.Quirks.Name(),
		}),
		volume:  clampVolume(options.Volume.OrElse(1)),
		style:   DefaultStyle(),
		skipper: NewSkipEngine(options.Segments),
	}
}

// Mount hands the controller its two pipelines and registers the lifecycle handlers.
func (c *Controller) Mount(video, audio Pipeline) {
	c.video, c.audio = video, audio

	video.OnEvent(func(e EventKind) {
		c.dispatch(func() { c.handle(TrackVideo, e) })
	})
	audio.OnEvent(func(e EventKind) {
		c.dispatch(func() { c.handle(TrackAudio, e) })
	})
}

// Unmount detaches the handlers; the pipelines themselves belong to the caller.
func (c *Controller) Unmount() {
	if c.video != nil {
		c.video.OnEvent(nil)
	}
	if c.audio != nil {
		c.audio.OnEvent(nil)
	}
	c.video, c.audio = nil, nil
}

func (c *Controller) mounted() bool {
	return c.video != nil && c.audio != nil
}

// Load attaches the initial variant. The state stays StateInitial until playback is requested.
func (c *Controller) Load(variant Variant) error {
	if !c.mounted() {
		return ErrNotMounted
	}
	if err := variant.Validate(); err != nil {
		return err
	}
	if err := c.attach(variant, 0); err != nil {
		return err
	}

	c.variant = variant
	c.loaded = true
	c.videoReady, c.audioReady = false, false
	c.logger.Infof("loaded %s", variant.Label())
	return nil
}

// State returns the current playback state.
func (c *Controller) State() State { return c.state }

// Clock returns the displayed position and duration.
func (c *Controller) Clock() Clock { return c.clock }

// Variant returns the current stream variant.
func (c *Controller) Variant() Variant { return c.variant }

// Volume returns the output volume in the 0..1 range.
func (c *Controller) Volume() float64 { return c.volume }

// Style returns the player's UI affordances.
func (c *Controller) Style() Style { return c.style }

// SetStyle replaces the player's UI affordances.
func (c *Controller) SetStyle(style Style) { c.style = style }

// Flags returns the self-reported readiness flags of the video and audio pipelines.
func (c *Controller) Flags() (video, audio bool) { return c.videoReady, c.audioReady }

// Segments returns the registered skip segments.
func (c *Controller) Segments() []Segment { return c.skipper.Segments() }

// Ready evaluates the aggregate readiness for the current variant and platform.
func (c *Controller) Ready() bool {
	if !c.mounted() {
		return false
	}

	r := Readiness{VideoReady: c.videoReady, AudioReady: c.audioReady}
	if c.variant.UsesVideo() {
		r.VideoLevel = c.level(TrackVideo, c.video)
	}
	if c.variant.UsesAudio() {
		r.AudioLevel = c.level(TrackAudio, c.audio)
	}
	return Ready(c.variant.Kind, c.quirks, r)
}

func (c *Controller) level(kind TrackKind, p Pipeline) ReadinessLevel {
	level, err := p.ReadinessLevel()
	if err != nil {
		c.logger.Debugf("%s readiness level: %v", kind, err)
		return HaveNothing
	}
	return level
}

// Play starts playback when the variant is ready. Not being ready is not an error: the
// state is left unchanged and the user may press play again.
func (c *Controller) Play() error {
	if !c.mounted() {
		return ErrNotMounted
	}
	if !c.Ready() {
		c.logger.Debugf("play deferred: %s not ready", c.variant.Kind)
		return nil
	}

	for _, l := range c.lanes() {
		if err := l.pipeline.SetVolume(c.volume); err != nil {
			return pipelineErr(l.kind, "set volume", err)
		}
	}

	if err := c.startAll(); err != nil {
		return err
	}
	c.alignAudio()

	c.stalled = false
	c.setState(StatePlaying)
	return nil
}

// Resume restarts playback from StateLoading or StatePaused, or re-syncs a playing
// controller that stalled. On the reference platform the audio clock is first aligned to
// the video clock to drop drift accumulated while stopped.
func (c *Controller) Resume() error {
	if !c.mounted() {
		return ErrNotMounted
	}

	switch c.state {
	case StateLoading, StatePaused:
	case StatePlaying:
		if !c.stalled {
			return nil
		}
	default:
		return nil
	}

	if !c.quirks.UsesPolledReadiness() {
		c.alignAudio()
	}

	if err := c.startAll(); err != nil {
		return err
	}

	c.stalled = false
	c.setState(StatePlaying)
	return nil
}

// Pause stops every active pipeline and moves to StatePaused when all of them accepted.
func (c *Controller) Pause() error {
	if !c.mounted() {
		return ErrNotMounted
	}

	var errs []error
	for _, l := range c.lanes() {
		if err := l.pipeline.Pause(); err != nil {
			errs = append(errs, pipelineErr(l.kind, "pause", err))
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	c.setState(StatePaused)
	return nil
}

// Toggle flips between playing and paused. A pending load must resolve first, so
// toggling in StateLoading does nothing.
func (c *Controller) Toggle() error {
	switch c.state {
	case StatePlaying:
		return c.Pause()
	case StatePaused:
		return c.Resume()
	case StateInitial:
		return c.Play()
	default:
		return nil
	}
}

// SetVideoReady updates the video flag and resumes once the aggregate becomes ready.
func (c *Controller) SetVideoReady(ready bool) error {
	c.videoReady = ready
	return c.resumeIfReady()
}

// SetAudioReady updates the audio flag and resumes once the aggregate becomes ready.
func (c *Controller) SetAudioReady(ready bool) error {
	c.audioReady = ready
	return c.resumeIfReady()
}

func (c *Controller) setReady(track TrackKind, ready bool) error {
	if track == TrackAudio {
		return c.SetAudioReady(ready)
	}
	return c.SetVideoReady(ready)
}

func (c *Controller) resumeIfReady() error {
	if c.state == StateInitial || !c.Ready() {
		return nil
	}
	return c.Resume()
}

// SetVolume stores the volume and applies it to the active pipelines.
func (c *Controller) SetVolume(volume float64) error {
	c.volume = clampVolume(volume)
	if !c.mounted() {
		return ErrNotMounted
	}

	for _, l := range c.lanes() {
		if err := l.pipeline.SetVolume(c.volume); err != nil {
			return pipelineErr(l.kind, "set volume", err)
		}
	}
	return nil
}

// OnStall records that a pipeline ran out of data. It does not force StateLoading; the
// failed readiness check holds playback until the flag flips back.
func (c *Controller) OnStall(track TrackKind) error {
	if c.state == StatePlaying {
		c.stalled = true
	}
	c.logger.Debugf("%s pipeline stalled", track)
	return c.setReady(track, false)
}

// OnCanPlay records that a pipeline buffered enough to play.
func (c *Controller) OnCanPlay(track TrackKind) error {
	if err := c.setReady(track, true); err != nil {
		return err
	}
	if c.autoplay && c.state == StateInitial && c.loaded {
		return c.Play()
	}
	return nil
}

// OnMetadataLoaded picks up the duration from the pipeline that is the clock authority.
func (c *Controller) OnMetadataLoaded(track TrackKind) error {
	if !c.mounted() {
		return ErrNotMounted
	}
	authority, kind := c.authority()
	if kind != track {
		return nil
	}

	duration, err := authority.Duration()
	if err != nil {
		return pipelineErr(kind, "duration", err)
	}
	if duration > 0 && !math.IsInf(duration, 0) {
		c.clock.Duration = duration
	}
	return nil
}

// OnTick refreshes the clock from the timing authority and, while playing, runs the drift
// corrector and the segment skip engine.
func (c *Controller) OnTick() error {
	if !c.mounted() {
		return ErrNotMounted
	}

	// Buffering events cannot be trusted on polled platforms, so the tick resumes and
	// autoplays instead.
	if c.quirks.UsesPolledReadiness() {
		switch {
		case c.state == StateLoading:
			if err := c.resumeIfReady(); err != nil {
				return err
			}
		case c.state == StateInitial && c.autoplay && c.loaded && c.Ready():
			if err := c.Play(); err != nil {
				return err
			}
		}
	}

	// While loading the display keeps the optimistic seek target.
	if c.state != StateLoading {
		authority, kind := c.authority()
		current, err := authority.Clock()
		if err != nil {
			return pipelineErr(kind, "clock", err)
		}
		c.clock.Current = current

		if c.clock.Duration <= 0 {
			if duration, err := authority.Duration(); err == nil && duration > 0 && !math.IsInf(duration, 0) {
				c.clock.Duration = duration
			}
		}
	}

	if c.state != StatePlaying {
		return nil
	}

	if _, err := c.CorrectDrift(); err != nil {
		c.logger.Warnf("drift correction: %v", err)
	}

	if segment, ok := c.skipper.Check(c.clock.Current); ok {
		return c.skip(segment)
	}
	return nil
}

// CorrectDrift snaps the video clock to the audio clock when they diverge beyond the
// tolerance. It only acts on dual-track variants and never on the divergent platform, whose
// pipelines are driven from the same seek target and not cross-corrected mid-flight.
func (c *Controller) CorrectDrift() (bool, error) {
	if !c.mounted() {
		return false, ErrNotMounted
	}
	if c.variant.Kind != KindDual || c.quirks.UsesPolledReadiness() {
		return false, nil
	}

	video, err := c.video.Clock()
	if err != nil {
		return false, pipelineErr(TrackVideo, "clock", err)
	}
	audio, err := c.audio.Clock()
	if err != nil {
		return false, pipelineErr(TrackAudio, "clock", err)
	}

	target, ok := CorrectDrift(video, audio)
	if !ok {
		return false, nil
	}
	if err := c.video.SetClock(target); err != nil {
		return false, pipelineErr(TrackVideo, "set clock", err)
	}

	c.logger.Debugf("drift %.3fs corrected, video snapped to %.3f", video-audio, target)
	c.clock.Current = target
	return true, nil
}

func (c *Controller) skip(segment Segment) error {
	c.logger.Infof("skipping %s segment %.1f -> %.1f", segment.Category, segment.Start, segment.End)
	if err := c.seek(segment.End); err != nil {
		return fmt.Errorf("skip %s segment: %w", segmentLabel(segment.Category), err)
	}
	c.notifier.Notify("skipped " + segmentLabel(segment.Category) + " segment")
	return nil
}

func segmentLabel(category string) string {
	if category == "" {
		return "sponsor"
	}
	return category
}

// handle runs a pipeline event on the host loop and reports failures as toasts.
func (c *Controller) handle(track TrackKind, e EventKind) {
	if !c.mounted() {
		return
	}

	var err error
	switch e {
	case EventStalled:
		err = c.OnStall(track)
	case EventCanPlay:
		err = c.OnCanPlay(track)
	case EventMetadataLoaded:
		err = c.OnMetadataLoaded(track)
	}

	if err != nil {
		c.logger.Warnf("%s %s: %v", track, e, err)
		c.notifier.Notify(err.Error())
	}
}

// lanes lists the pipelines that carry a source for the current variant.
func (c *Controller) lanes() []lane {
	var lanes []lane
	if c.variant.UsesVideo() {
		lanes = append(lanes, lane{TrackVideo, c.video})
	}
	if c.variant.UsesAudio() {
		lanes = append(lanes, lane{TrackAudio, c.audio})
	}
	return lanes
}

// authority is the pipeline whose clock drives the display: video whenever it has a source.
func (c *Controller) authority() (Pipeline, TrackKind) {
	if c.variant.UsesVideo() {
		return c.video, TrackVideo
	}
	return c.audio, TrackAudio
}

func (c *Controller) startAll() error {
	var errs []error
	for _, l := range c.lanes() {
		if err := l.pipeline.Play(); err != nil {
			errs = append(errs, pipelineErr(l.kind, "play", err))
		}
	}
	return errors.Join(errs...)
}

// alignAudio moves the audio clock onto the video clock for dual-track variants.
func (c *Controller) alignAudio() {
	if c.variant.Kind != KindDual {
		return
	}

	t, err := c.video.Clock()
	if err != nil {
		c.logger.Debugf("align audio: %v", err)
		return
	}
	if err := c.audio.SetClock(t); err != nil {
		c.logger.Warnf("align audio to %.3f: %v", t, err)
	}
}

func (c *Controller) setState(s State) {
	if c.state != s {
		c.logger.Debugf("state %s -> %s", c.state, s)
	}
	c.state = s
}

func clampVolume(v float64) float64 {
	if math.IsNaN(v) {
		return 1
	}
	return math.Min(1, math.Max(0, v))
}
