package update

import (
	"github.com/charmbracelet/bubbles/help"
	charmLog "github.com/charmbracelet/log"

	"github.com/frogpad/frogpad/internal/config"
	"github.com/frogpad/frogpad/internal/logging"
	"github.com/frogpad/frogpad/internal/modal"
	"github.com/frogpad/frogpad/internal/model"
	"github.com/frogpad/frogpad/internal/persist"
	"github.com/frogpad/frogpad/internal/quickdate"
	"github.com/frogpad/frogpad/internal/store"
	"github.com/frogpad/frogpad/internal/textfield"
)

type Tab int

const (
	TabTasks Tab = iota
	TabCalendar
	TabOptions
)

var tabNames = []string{"Tasks", "Calendar", "Options"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "Unknown"
	}
	return tabNames[t]
}

func (t Tab) next() Tab     { return (t + 1) % Tab(len(tabNames)) }
func (t Tab) previous() Tab { return (t + Tab(len(tabNames)) - 1) % Tab(len(tabNames)) }

type Mode string

const (
	ModeRunning Mode = "running"
	ModeCommand Mode = "command"
	ModeExiting Mode = "exiting"
)

// StatusBar is the transient message in the bottom bar. Frames counts the
// refresh ticks it has been visible for.
type StatusBar struct {
	Text    string
	IsError bool
	Frames  int
}

func (s StatusBar) Visible() bool { return s.Text != "" }

type Model struct {
	CurrentTab Tab
	Mode       Mode
	Status     StatusBar
	Width      int
	Height     int

	cfg      config.Config
	store    *store.Store
	modal    modal.Controller
	command  *textfield.Field
	snapshot []model.TaskList
	dataPath string
	// exportDir receives files written by the export command.
	exportDir string

	log       *charmLog.Logger
	clock     quickdate.Clock
	clipboard Clipboard
	keys      keyMap
	help      help.Model
	// ticking is set while a frame tick is in flight.
	ticking bool
	// loading holds input back until the startup load has landed.
	loading bool
}

// Deps are the collaborators a Model is built from. Zero values fall back to
// working defaults. Without a Store the model loads the configured data file
// at startup; a supplied Store is used as is.
type Deps struct {
	Store     *store.Store
	Logger    *charmLog.Logger
	Clock     quickdate.Clock
	Clipboard Clipboard
	ExportDir string
}

func NewModel() Model {
	return NewModelWithConfig(config.Default(""), Deps{})
}

func NewModelWithConfig(cfg config.Config, deps Deps) Model {
	opts := store.Options{DeleteOnCompletion: cfg.DeleteOnCompletion}
	s := deps.Store
	if s == nil {
		s = store.New(nil, opts)
	} else {
		s.SetOptions(opts)
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	var clock quickdate.Clock = quickdate.SystemClock{}
	if deps.Clock != nil {
		clock = deps.Clock
	}
	var clip Clipboard = SystemClipboard{}
	if deps.Clipboard != nil {
		clip = deps.Clipboard
	}
	exportDir := deps.ExportDir
	if exportDir == "" {
		exportDir = "."
	}

	return Model{
		CurrentTab: TabTasks,
		Mode:       ModeRunning,
		cfg:        cfg,
		store:      s,
		command:    textfield.New(),
		snapshot:   s.Snapshot(),
		dataPath:   cfg.DataFile,
		exportDir:  exportDir,
		log:        logger,
		clock:      clock,
		clipboard:  clip,
		keys:       newKeyMap(),
		help:       help.New(),
		loading:    deps.Store == nil,
	}
}

// Store exposes the task store for callers that seed or inspect it.
func (m Model) Store() *store.Store { return m.store }

func (m Model) Config() config.Config { return m.cfg }

// DataPath is where a bare save or load goes: the last file loaded or saved,
// starting from the configured data file.
func (m Model) DataPath() string { return m.dataPath }

func (m Model) Dirty() bool {
	return persist.IsDirty(m.store.Lists(), m.snapshot)
}

// Popup returns the open popup, or nil.
func (m Model) Popup() modal.Popup { return m.modal.Active() }

func (m Model) CommandLine() string { return m.command.Text() }

// Loading reports whether the startup load is still outstanding.
func (m Model) Loading() bool { return m.loading }

type frameMsg struct{}

// dataLoadedMsg carries the result of the startup load.
type dataLoadedMsg struct {
	path  string
	lists []model.TaskList
	err   error
}
