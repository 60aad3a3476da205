package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"loctodo/internal/gateway"
	"loctodo/internal/geocode"
	"loctodo/internal/model"
	"loctodo/internal/scheduler"
)

type View string

const (
	ViewAuth        View = "Auth"
	ViewTasks       View = "Tasks"
	ViewBookmarks   View = "Bookmarks"
	ViewSuggestions View = "Suggestions"
)

// debounceDelay is how long location-search input must be quiet before a
// geocoding request fires. A new keystroke restarts the wait.
const debounceDelay = 500 * time.Millisecond

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks       string
	Bookmarks   string
	Suggestions string
	Help        string
	Quit        string
}

// SessionController is the slice of the session package the UI drives.
type SessionController interface {
	Session() model.Session
	SignUp(ctx context.Context, email, password string) error
	SignIn(ctx context.Context, email, password string) error
	SignOut(ctx context.Context) error
	EnterGuest()
	Restore(ctx context.Context) error
}

type GeoSearcher interface {
	Search(ctx context.Context, query string) ([]geocode.Place, error)
}

type Suggester interface {
	Generate(ctx context.Context, lat, lon float64) []model.Suggestion
}

// AuthField names the focused input on the auth screen.
type AuthField int

const (
	AuthFieldEmail AuthField = iota
	AuthFieldPassword
)

type AuthFormState struct {
	Focused AuthField
	Busy    bool
}

// CaptureStage tracks the two-step task entry: free text first, then a
// location from search results or typed coordinates.
type CaptureStage int

const (
	CaptureIdle CaptureStage = iota
	CaptureText
	CaptureLocation
)

type PendingTask struct {
	Stage    CaptureStage
	Text     string
	Time     string
	Place    string
	Priority model.Priority
}

type SearchState struct {
	Query   string
	Results []geocode.Place
	Cursor  int
	// seq increments per keystroke; stale debounce ticks and late
	// responses carry an older value and are dropped.
	seq int
}

type FilterState struct {
	Category model.Category
	Active   bool
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView View
	Session     model.Session

	controller SessionController
	store      gateway.Store
	geocoder   GeoSearcher
	suggester  Suggester
	Scheduler  *scheduler.Engine

	Tasks       []model.Task
	Bookmarks   []model.Bookmark
	Suggestions []model.Suggestion
	Filter      FilterState

	Auth    AuthFormState
	Pending PendingTask
	Search  SearchState
	Palette CommandPaletteState

	// Position the suggestion generator and new bookmarks use. Comes from
	// config and stays fixed for the life of the program.
	Latitude  float64
	Longitude float64

	Status      StatusBar
	Keys        GlobalKeyMap
	HelpVisible bool
	Quitting    bool
	LastError   error

	scheduledReminders map[string]bool

	// Bubble components used for rich TUI controls
	emailInput    textinput.Model
	passwordInput textinput.Model
	taskInput     textinput.Model
	searchInput   textinput.Model
	commandInput  textinput.Model
	taskList      list.Model
	bookmarkList  list.Model
	loadSpinner   spinner.Model
	helpModel     help.Model
	spinnerActive bool
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type SwitchViewMsg struct {
	View View
}

type SessionChangedMsg struct {
	Session model.Session
}

type SignUpDoneMsg struct {
	Err error
}

type SignInDoneMsg struct {
	Err error
}

type SignOutDoneMsg struct {
	Err error
}

type TasksLoadedMsg struct {
	Tasks []model.Task
}

type BookmarksLoadedMsg struct {
	Bookmarks []model.Bookmark
}

type SuggestionsMsg struct {
	Suggestions []model.Suggestion
}

type SearchTickMsg struct {
	Seq int
}

type SearchResultsMsg struct {
	Seq    int
	Places []geocode.Place
	Err    error
}

type ReminderDueMsg struct {
	Reminder scheduler.Reminder
}

// Deps are the wired components the UI drives.
type Deps struct {
	Controller SessionController
	Store      gateway.Store
	Geocoder   GeoSearcher
	Suggester  Suggester
	Scheduler  *scheduler.Engine
}

func NewModel(deps Deps, cfg RuntimeConfig) Model {
	m := Model{
		CurrentView:        ViewAuth,
		Session:            model.AnonymousSession(),
		controller:         deps.Controller,
		store:              deps.Store,
		geocoder:           deps.Geocoder,
		suggester:          deps.Suggester,
		Scheduler:          deps.Scheduler,
		Latitude:           cfg.DefaultLatitude,
		Longitude:          cfg.DefaultLongitude,
		scheduledReminders: make(map[string]bool),
		Keys: GlobalKeyMap{
			Tasks:       "1",
			Bookmarks:   "2",
			Suggestions: "3",
			Help:        "?",
			Quit:        "q",
		},
	}
	if deps.Controller != nil {
		m.Session = deps.Controller.Session()
		if m.Session.State != model.SessionAnonymous {
			m.CurrentView = ViewTasks
		}
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.emailInput = textinput.New()
	m.emailInput.Prompt = "email> "
	m.emailInput.CharLimit = 128
	m.emailInput.Width = 40
	m.emailInput.Focus()

	m.passwordInput = textinput.New()
	m.passwordInput.Prompt = "password> "
	m.passwordInput.EchoMode = textinput.EchoPassword
	m.passwordInput.CharLimit = 128
	m.passwordInput.Width = 40

	m.taskInput = textinput.New()
	m.taskInput.Prompt = "task> "
	m.taskInput.CharLimit = 256
	m.taskInput.Width = 48

	m.searchInput = textinput.New()
	m.searchInput.Prompt = "where> "
	m.searchInput.CharLimit = 128
	m.searchInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.taskList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.taskList.Title = "Tasks"
	m.taskList.SetShowHelp(false)
	m.taskList.SetFilteringEnabled(false)

	m.bookmarkList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.bookmarkList.Title = "Bookmarks"
	m.bookmarkList.SetShowHelp(false)
	m.bookmarkList.SetFilteringEnabled(false)

	m.loadSpinner = spinner.New()
	m.loadSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
}

func (m *Model) syncBubbleData() {
	items := make([]list.Item, 0, len(m.Tasks))
	for _, t := range m.visibleTasks() {
		desc := model.FormatCoordinates(t.Latitude, t.Longitude)
		if t.Completed {
			desc = "done | " + desc
		}
		items = append(items, listItem{title: t.Text, description: desc})
	}
	m.taskList.SetItems(items)

	bookmarkItems := make([]list.Item, 0, len(m.Bookmarks))
	for _, b := range m.Bookmarks {
		bookmarkItems = append(bookmarkItems, listItem{
			title:       b.Name,
			description: model.FormatCoordinates(b.Latitude, b.Longitude),
		})
	}
	m.bookmarkList.SetItems(bookmarkItems)

	if m.Palette.Active {
		m.commandInput.Focus()
	}
}

// visibleTasks applies the category filter. Categorization is derived
// from task text on demand; it is never stored.
func (m Model) visibleTasks() []model.Task {
	if !m.Filter.Active {
		return m.Tasks
	}
	out := make([]model.Task, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		if categoryOf(t) == m.Filter.Category {
			out = append(out, t)
		}
	}
	return out
}

func (m Model) selectedTask() (model.Task, bool) {
	visible := m.visibleTasks()
	idx := m.taskList.Index()
	if idx < 0 || idx >= len(visible) {
		return model.Task{}, false
	}
	return visible[idx], true
}

func (m Model) selectedBookmark() (model.Bookmark, bool) {
	idx := m.bookmarkList.Index()
	if idx < 0 || idx >= len(m.Bookmarks) {
		return model.Bookmark{}, false
	}
	return m.Bookmarks[idx], true
}
