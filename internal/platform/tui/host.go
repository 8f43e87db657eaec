package tui

import (
	"context"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vovakirdan/liberty/internal/window"
)

// FrameSource supplies the text of the last rendered frame.
type FrameSource interface {
	Output() string
}

// Config configures a terminal host.
type Config struct {
	Title    string
	Width    int // Initial size in cells; zero queries the terminal
	Height   int
	TickRate int // Ticks per second (default 60)

	// ShowHelp reserves the bottom row for key help.
	ShowHelp bool

	// ProgramOptions are passed to the Bubble Tea program, e.g. input and
	// output for an SSH session.
	ProgramOptions []tea.ProgramOption
}

// Host runs the frame loop inside a Bubble Tea program. Ticks are driven by
// tea.Tick at the configured rate and delivered from the program's update
// loop, so the handler is only ever called from one goroutine.
type Host struct {
	cfg    Config
	frames FrameSource
	keys   KeyMap

	mu            sync.RWMutex
	width, height int
	program       *tea.Program

	window.Lifecycle
}

// NewHost creates a terminal host showing frames from src.
func NewHost(cfg Config, src FrameSource) *Host {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = TerminalSize(os.Stdout, 80, 24)
	}
	h := &Host{
		cfg:    cfg,
		frames: src,
		keys:   DefaultKeyMap(),
	}
	h.width, h.height = h.viewport(cfg.Width, cfg.Height)
	return h
}

// TerminalSize returns the size of f if it is a terminal, or the defaults.
func TerminalSize(f *os.File, defW, defH int) (int, int) {
	if w, h, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && h > 0 {
		return w, h
	}
	return defW, defH
}

// viewport converts a terminal size to the area available for frames.
func (h *Host) viewport(w, ht int) (int, int) {
	if h.cfg.ShowHelp {
		ht--
	}
	return w, max(ht, 0)
}

// Title returns the window title.
func (h *Host) Title() string {
	return h.cfg.Title
}

// Size returns the frame viewport in cells.
func (h *Host) Size() (int, int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.width, h.height
}

func (h *Host) setSize(w, ht int) window.Resize {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.width, h.height = h.viewport(w, ht)
	return window.Resize{Width: h.width, Height: h.height}
}

// Send injects an event into a running host. It is dropped if the program
// has not started or has already finished. Send blocks until the update
// loop accepts the event, so it must not be called from the handler.
func (h *Host) Send(ev window.Event) {
	h.mu.RLock()
	p := h.program
	h.mu.RUnlock()
	if p == nil {
		return
	}
	if r, ok := ev.(window.Resize); ok {
		p.Send(tea.WindowSizeMsg{Width: r.Width, Height: r.Height})
		return
	}
	p.Send(eventMsg{ev: ev})
}

// Run starts the Bubble Tea program and blocks until a quit key, a Close
// event or ctx cancellation.
func (h *Host) Run(ctx context.Context, handler window.Handler) error {
	if err := h.Start(); err != nil {
		return err
	}
	defer h.Finish()

	opts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithMouseCellMotion(),
	}, h.cfg.ProgramOptions...)

	p := tea.NewProgram(newModel(h, handler), opts...)
	h.mu.Lock()
	h.program = p
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		h.program = nil
		h.mu.Unlock()
	}()

	_, err := p.Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// Ensure Host implements window.Host
var _ window.Host = (*Host)(nil)

// eventMsg carries an injected window event into the update loop.
type eventMsg struct {
	ev window.Event
}

// model is the Bubble Tea model for one host run.
type model struct {
	host    *Host
	handler window.Handler
	help    help.Model
	closing bool
}

func newModel(h *Host, handler window.Handler) model {
	return model{host: h, handler: handler, help: help.New()}
}

// Init starts the tick loop.
func (m model) Init() tea.Cmd {
	return tickCmd(m.host.cfg.TickRate)
}

// Update handles messages. Events are applied in arrival order and a tick
// fires once per TickMsg.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.closing {
		return m, nil
	}

	switch msg := msg.(type) {
	case TickMsg:
		m.handler.Tick(m.host)
		return m, tickCmd(m.host.cfg.TickRate)
	case eventMsg:
		return m.apply(msg.ev)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m.apply(m.host.setSize(msg.Width, msg.Height))
	}

	if ev := m.host.keys.MapMsg(msg); ev != nil {
		return m.apply(ev)
	}
	return m, nil
}

// apply delivers one event. A Close ends the program without another tick.
func (m model) apply(ev window.Event) (tea.Model, tea.Cmd) {
	if _, ok := ev.(window.Close); ok {
		m.closing = true
		m.host.Closing()
		return m, tea.Quit
	}
	m.handler.HandleEvent(ev)
	return m, nil
}

// View shows the last rendered frame.
func (m model) View() string {
	if m.closing {
		return ""
	}
	frame := m.host.frames.Output()
	if !m.host.cfg.ShowHelp {
		return frame
	}
	return frame + "\n" + m.help.View(m.host.keys)
}
