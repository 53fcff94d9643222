// Package tui hosts one video view in a Bubble Tea program. Its Update is the single event
// loop every controller call runs on.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pipewatch/pipewatch/catalog"
	"github.com/pipewatch/pipewatch/internal/ui"
	"github.com/pipewatch/pipewatch/player"
	"github.com/pipewatch/pipewatch/playback"
	"github.com/pipewatch/pipewatch/sponsorblock"
	"github.com/pipewatch/pipewatch/style"
	"github.com/pipewatch/pipewatch/util"
	"github.com/samber/mo"
)

// pipeline is what the view needs from a media process beyond playback.Pipeline.
type pipeline interface {
	playback.Pipeline
	SetFullscreen(on bool) error
	SetChapters(segments []playback.Segment) error
	IsRunning() bool
	Close() error
}

func mpvPipelines(title string) (video, audio pipeline) {
	v, a := player.Pair(title, nil)
	return v, a
}

// statefulBubble holds the view state, the child components and the playback controller.
type statefulBubble struct {
	state   state
	keymap  *statefulKeymap
	options *Options

	// components
	spinnerC  spinner.Model
	progressC progress.Model
	helpC     help.Model
	notifier  *ui.Model

	catalog  *catalog.Client
	segments *sponsorblock.Client

	// newPipelines spawns the two media processes of the view.
	newPipelines func(title string) (video, audio pipeline)
	// send delivers a message into the running program from any goroutine.
	send func(tea.Msg)

	video        *catalog.Video
	format       string
	controller   *playback.Controller
	videoP       pipeline
	audioP       pipeline
	resumeAt     mo.Option[float64]
	metadataSeen bool

	idleGeneration int
	lastError      error
	quitting       bool

	width, height int
}

var titleStyle = lipgloss.NewStyle().Foreground(style.Base).Background(style.Lavender).Padding(0, 1)

func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.setState(errorState)
}

func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()

	b.width = width - x
	b.height = height - y
	b.progressC.Width = b.width
	b.helpC.Width = b.width
}

// dispatch marshals a pipeline handler onto the program loop.
func (b *statefulBubble) dispatch(fn func()) {
	if b.send != nil {
		b.send(dispatchMsg(fn))
	}
}

func newBubble(options *Options) *statefulBubble {
	bubble := statefulBubble{
		keymap:       newStatefulKeymap(),
		options:      options,
		notifier:     &ui.Model{},
		catalog:      catalog.FromConfig(),
		segments:     sponsorblock.FromConfig(),
		newPipelines: mpvPipelines,
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.progressC = progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.setState(loadingState)
	return &bubble
}
