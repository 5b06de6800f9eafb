package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"attrpicker/internal/catalog"
	"attrpicker/internal/config"
	"attrpicker/internal/debug"
	appErrors "attrpicker/internal/errors"
	"attrpicker/internal/match"
	"attrpicker/internal/store"
	"attrpicker/internal/telemetry"
	"attrpicker/internal/ui/theme"
	"attrpicker/internal/validation"
)

const (
	maxPickerWidth = 60
	minPickerWidth = 24

	// RequiredMessage is shown when saving with no attribute attached.
	RequiredMessage = "Add at least one attribute"
	// LoadFailedMessage is shown when the catalog cannot be listed.
	LoadFailedMessage = "Failed to load attributes."
)

var logApp = debug.Scoped("app")

// Config configures the UI application. Store and Registry default to
// in-memory implementations; a nil Emitter disables telemetry.
type Config struct {
	Client       catalog.Client
	Store        store.Store
	Registry     validation.Registry
	Emitter      *telemetry.Emitter
	Picker       config.Picker
	OutputFormat string
	Source       string // shown in the footer
	Version      string

	// Clipboard defaults to the system clipboard.
	Clipboard func(string) error
	// Themes defaults to theme.Active(). Its Saver persists cycling.
	Themes *theme.Manager
}

// Result is what the user saved.
type Result struct {
	Submitted  bool
	Selections []store.Selection
}

// App implements the Bubble Tea model for the attribute picker.
type App struct {
	store    store.Store
	client   catalog.Client
	registry validation.Registry
	emitter  *telemetry.Emitter
	picker   AttributeComboBox
	keys     KeyMap

	width       int
	height      int
	ready       bool
	loading     bool
	showHelp    bool
	submitted   bool
	sourceLabel string
	version     string

	outputFormat   string
	renderMarkdown func(string) string

	noticeID      string
	noticeShownAt time.Time
	now           func() time.Time
	tick          func(id string) tea.Cmd

	clipboard func(string) error
	themes    *theme.Manager

	offered      []match.Option
	required     bool
	storeChanged bool
	unsubscribe  func()
}

// NewApp builds the picker application. The catalog is loaded by Init.
func NewApp(cfg Config) *App {
	st := cfg.Store
	if st == nil {
		st = store.New()
	}
	reg := cfg.Registry
	if reg == nil {
		reg = validation.NewMemoryRegistry()
	}
	copyFn := cfg.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	themes := cfg.Themes
	if themes == nil {
		themes = theme.Active()
	}
	source := cfg.Source
	if source == "" {
		source = "catalog"
	}

	picker := NewAttributeComboBox(cfg.Client, store.AvailableAttributes(st)).
		WithEmitter(cfg.Emitter).
		WithCreate(true, cfg.Picker.CreateGlobal).
		WithCombo(func(c ComboBox) ComboBox {
			return c.WithMaxVisible(cfg.Picker.MaxVisible).
				WithAsyncThreshold(cfg.Picker.AsyncThreshold).
				WithMatcher(match.Matcher{Fuzzy: cfg.Picker.Fuzzy}).
				WithErrorID("product-attributes").
				WithRegistry(reg).
				WithErrorMessage(RequiredMessage)
		})

	m := &App{
		store:         st,
		client:        cfg.Client,
		registry:      reg,
		emitter:       cfg.Emitter,
		picker:        picker,
		keys:          DefaultKeyMap(),
		sourceLabel:   source,
		version:       cfg.Version,
		outputFormat:  cfg.OutputFormat,
		now:           time.Now,
		tick:          scheduleNoticeTick,
		clipboard:     copyFn,
		themes:        themes,
	}
	m.offered = store.AttributeOptions(st)
	m.syncRequired()
	m.unsubscribe = st.Subscribe(m.onStoreChange)
	return m
}

func (m *App) Init() tea.Cmd {
	m.loading = true
	return tea.Batch(m.picker.Focus(), loadAttributesCmd(m.client))
}

func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if m.storeChanged {
		m.storeChanged = false
		cmd = tea.Batch(cmd, m.syncPicker())
	}
	return m, cmd
}

func (m *App) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		width := clampDimension(msg.Width-4, minPickerWidth, maxPickerWidth)
		m.picker = m.picker.WithCombo(func(c ComboBox) ComboBox { return c.WithWidth(width) })
		m.renderMarkdown = buildMarkdownRenderer(m.outputFormat, clampDimension(msg.Width-12, 20, 72))
		return nil

	case attributesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			logApp("load failed: %v", msg.err)
			return m.pushNotice(LoadFailedMessage, store.SeverityError)
		}
		if err := m.store.Dispatch(store.LoadAttributes{Attributes: msg.attributes}); err != nil {
			return m.pushNotice(appErrors.MessageOf(err), store.SeverityError)
		}
		return nil

	case AttributeSelectedMsg:
		return m.attach(msg)

	case AttributeNoticeMsg:
		severity := store.SeverityInfo
		if msg.IsError {
			severity = store.SeverityError
		}
		return m.pushNotice(msg.Message, severity)

	case noticeTickMsg:
		return m.expireNotice(msg.id)

	case clipboardResultMsg:
		if msg.err != nil {
			return m.pushNotice("Could not copy to clipboard.", store.SeverityError)
		}
		return m.pushNotice(fmt.Sprintf("Copied '%s' to clipboard.", msg.text), store.SeveritySuccess)

	case tea.KeyMsg:
		if handled, cmd := m.handleKey(msg); handled {
			return cmd
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return cmd
}

func (m *App) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if m.showHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Escape) {
			m.showHelp = false
		}
		if key.Matches(msg, m.keys.Quit) {
			return true, m.quit()
		}
		return true, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return true, m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return true, nil
	case key.Matches(msg, m.keys.Submit):
		return true, m.submit()
	case key.Matches(msg, m.keys.RemoveLast):
		return true, m.removeLast()
	case key.Matches(msg, m.keys.CopySlug):
		return true, m.copyLastSlug()
	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return true, loadAttributesCmd(m.client)
	case key.Matches(msg, m.keys.Dismiss):
		if n, ok := store.LatestNotice(m.store); ok {
			_ = m.store.Dispatch(store.DismissNotice{ID: n.ID})
		}
		m.noticeID = ""
		return true, m.showNextNotice()
	case key.Matches(msg, m.keys.Theme):
		name, err := m.themes.Next()
		if err != nil {
			logApp("%v", err)
		}
		return true, m.pushNotice("Theme: "+name, store.SeverityInfo)
	}
	return false, nil
}

// attach records a committed attribute on the product and readies the
// picker for the next one.
func (m *App) attach(msg AttributeSelectedMsg) tea.Cmd {
	if msg.IsNew && !msg.Local {
		if err := m.store.Dispatch(store.AddAttribute{Attribute: msg.Attribute}); err != nil {
			return m.pushNotice(appErrors.MessageOf(err), store.SeverityError)
		}
	}
	if err := m.store.Dispatch(store.SelectAttribute{Attribute: msg.Attribute, Local: msg.Local}); err != nil {
		return m.pushNotice(appErrors.MessageOf(err), store.SeverityError)
	}
	logApp("attached %q (new=%v local=%v)", msg.Attribute.Name, msg.IsNew, msg.Local)

	record := recordCmd(m.emitter, telemetry.EventAttributeSelected, map[string]any{
		"source": m.picker.Source,
		"is_new": msg.IsNew,
		"local":  msg.Local,
	})
	m.picker.Reset()
	notice := m.pushNotice(fmt.Sprintf("Added %q.", msg.Attribute.Name), store.SeveritySuccess)
	return tea.Batch(record, notice)
}

func (m *App) removeLast() tea.Cmd {
	selected := store.Selected(m.store)
	if len(selected) == 0 {
		return nil
	}
	last := selected[len(selected)-1]
	if err := m.store.Dispatch(store.RemoveSelection{Index: len(selected) - 1}); err != nil {
		return m.pushNotice(appErrors.MessageOf(err), store.SeverityError)
	}
	return m.pushNotice(fmt.Sprintf("Removed %q.", last.Attribute.Name), store.SeverityInfo)
}

func (m *App) copyLastSlug() tea.Cmd {
	selected := store.Selected(m.store)
	if len(selected) == 0 {
		return nil
	}
	attr := selected[len(selected)-1].Attribute
	slug := attr.Slug
	if slug == "" {
		slug = catalog.Slugify(attr.Name)
	}
	return copyCmd(m.clipboard, slug)
}

// submit reveals validation errors and exits only when there are none.
func (m *App) submit() tea.Cmd {
	m.registry.ShowAll()
	if ids := validation.IDs(m.registry); len(ids) > 0 {
		logApp("submit blocked by %s", strings.Join(ids, ", "))
		return nil
	}
	m.submitted = true
	return m.quit()
}

func (m *App) quit() tea.Cmd {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	m.picker.Unmount()
	return tea.Quit
}

// onStoreChange notes when a dispatch changed what the picker offers or
// whether it is required. Every dispatch happens inside Update, which
// resyncs the picker before returning.
func (m *App) onStoreChange(s store.State) {
	offered := store.AttributeOptions(s)
	required := len(store.Selected(s)) == 0
	if required == m.required && sameOptions(offered, m.offered) {
		return
	}
	m.offered = offered
	m.storeChanged = true
}

// syncPicker feeds the picker the attributes not yet attached.
func (m *App) syncPicker() tea.Cmd {
	cmd := m.picker.SetAttributes(store.AvailableAttributes(m.store))
	m.syncRequired()
	return cmd
}

// syncRequired makes the picker required only while nothing is attached.
func (m *App) syncRequired() {
	required := len(store.Selected(m.store)) == 0
	m.required = required
	m.picker = m.picker.WithCombo(func(c ComboBox) ComboBox { return c.WithRequired(required) })
}

func sameOptions(a, b []match.Option) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (m *App) pushNotice(message string, severity store.Severity) tea.Cmd {
	if err := m.store.Dispatch(store.PushNotice{Notice: store.Notice{Message: message, Severity: severity}}); err != nil {
		logApp("push notice: %v", err)
		return nil
	}
	n, ok := store.LatestNotice(m.store)
	if !ok {
		return nil
	}
	m.noticeID = n.ID
	m.noticeShownAt = m.now()
	return m.tick(n.ID)
}

// expireNotice dismisses the shown notice once it has been up long enough.
func (m *App) expireNotice(id string) tea.Cmd {
	if id != m.noticeID {
		return nil
	}
	if !noticeExpired(m.noticeShownAt, m.now()) {
		return m.tick(id)
	}
	_ = m.store.Dispatch(store.DismissNotice{ID: id})
	m.noticeID = ""
	return m.showNextNotice()
}

func (m *App) showNextNotice() tea.Cmd {
	n, ok := store.LatestNotice(m.store)
	if !ok {
		return nil
	}
	m.noticeID = n.ID
	m.noticeShownAt = m.now()
	return m.tick(n.ID)
}

// Result reports whether the user saved and what was attached.
func (m *App) Result() Result {
	return Result{Submitted: m.submitted, Selections: store.Selected(m.store)}
}
