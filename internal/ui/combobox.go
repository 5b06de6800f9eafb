package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"attrpicker/internal/config"
	"attrpicker/internal/match"
	"attrpicker/internal/validation"
)

// ComboBoxState represents the current state of the combo box.
type ComboBoxState int

const (
	// ComboBoxClosed - dropdown closed, input shows the committed label.
	ComboBoxClosed ComboBoxState = iota
	// ComboBoxBrowsing - dropdown open with the full list.
	ComboBoxBrowsing
	// ComboBoxFiltering - dropdown open with the list narrowed by the input.
	ComboBoxFiltering
	// ComboBoxCommitting - an asynchronous commit is in flight; input is locked.
	ComboBoxCommitting
)

func (s ComboBoxState) String() string {
	switch s {
	case ComboBoxBrowsing:
		return "browsing"
	case ComboBoxFiltering:
		return "filtering"
	case ComboBoxCommitting:
		return "committing"
	default:
		return "closed"
	}
}

// AutoCompleteMode selects how typed text drives the dropdown.
type AutoCompleteMode int

const (
	// AutoCompleteList narrows the list to matching options.
	AutoCompleteList AutoCompleteMode = iota
	// AutoCompleteInline keeps the full list and completes the input inline.
	AutoCompleteInline
	// AutoCompleteBoth narrows the list and completes inline.
	AutoCompleteBoth
	// AutoCompleteNone neither filters nor completes.
	AutoCompleteNone
)

// ParseAutoCompleteMode maps "list", "inline", "both" and "none".
func ParseAutoCompleteMode(s string) (AutoCompleteMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "list":
		return AutoCompleteList, true
	case "inline":
		return AutoCompleteInline, true
	case "both":
		return AutoCompleteBoth, true
	case "none":
		return AutoCompleteNone, true
	}
	return AutoCompleteList, false
}

func (m AutoCompleteMode) filters() bool {
	return m == AutoCompleteList || m == AutoCompleteBoth
}

func (m AutoCompleteMode) completesInline() bool {
	return m == AutoCompleteInline || m == AutoCompleteBoth
}

// DefaultErrorMessage is registered for a required combo box left empty.
const DefaultErrorMessage = "Please select a valid option"

// ComboBoxChangedMsg is sent once whenever the committed value changes.
type ComboBoxChangedMsg struct {
	ID    string
	Value string
	Label string
}

// comboFilterMsg carries the result of a background filter pass.
type comboFilterMsg struct {
	id         string
	generation uint64
	query      string
	results    []match.Option
}

// ComboBox is a searchable single-select field. The typed search term and
// the committed value are tracked separately and reconciled when the
// dropdown closes.
type ComboBox struct {
	// Configuration (set at creation)
	ID             string
	Label          string
	Placeholder    string
	Width          int
	MaxVisible     int
	Required       bool
	ErrorID        string // defaults to ID
	ErrorMessage   string
	AutoComplete   AutoCompleteMode
	AsyncThreshold int    // filter in the background above this many options
	EmptyText      string // shown instead of "No matches" when nothing is typed

	options  []match.Option
	matcher  match.Matcher
	cache    *match.Cache
	registry validation.Registry
	// trailing may append one synthetic option after the matches.
	trailing func(query string, options []match.Option) (match.Option, bool)

	// Current state
	state          ComboBoxState
	textInput      textinput.Model
	value          string // committed value, "" when nothing is selected
	priorValue     string // value to restore if a commit is aborted
	visible        []match.Option
	hasTrailing    bool
	highlightIndex int
	list           Virtualizer
	generation     uint64
	filterPending  bool // a background filter for generation has not reported
	focused        bool
	unmounted      bool
}

// NewComboBox creates a ComboBox over options.
func NewComboBox(options []match.Option) ComboBox {
	ti := textinput.New()
	ti.CharLimit = 100
	ti.Prompt = "> "

	c := ComboBox{
		ID:             "control-" + uuid.NewString(),
		Width:          40,
		MaxVisible:     config.DefaultMaxVisible,
		ErrorMessage:   DefaultErrorMessage,
		AsyncThreshold: config.DefaultAsyncThreshold,
		options:        options,
		cache:          &match.Cache{},
		state:          ComboBoxClosed,
		textInput:      ti,
		highlightIndex: -1,
	}
	c.textInput.Width = c.Width - 4
	c.list = Virtualizer{RowHeight: 1, MaxHeight: c.MaxVisible, Overscan: 1, MinRendered: 1}
	c.showAll()
	return c
}

// WithID sets the widget id, which is also the default validation key.
func (c ComboBox) WithID(id string) ComboBox {
	if strings.TrimSpace(id) != "" {
		c.ID = id
	}
	return c
}

// WithLabel sets the label rendered above the input.
func (c ComboBox) WithLabel(s string) ComboBox {
	c.Label = s
	return c
}

// WithPlaceholder sets the placeholder text.
func (c ComboBox) WithPlaceholder(s string) ComboBox {
	c.Placeholder = s
	c.textInput.Placeholder = s
	return c
}

// WithWidth sets the display width.
func (c ComboBox) WithWidth(w int) ComboBox {
	c.Width = w
	c.textInput.Width = w - 4
	return c
}

// WithMaxVisible sets the maximum visible rows before the list scrolls.
func (c ComboBox) WithMaxVisible(n int) ComboBox {
	if n <= 0 {
		n = config.DefaultMaxVisible
	}
	c.MaxVisible = n
	c.list.MaxHeight = n
	c.list.ScrollToIndex(c.highlightIndex)
	return c
}

// WithAutoComplete sets the autocomplete mode.
func (c ComboBox) WithAutoComplete(m AutoCompleteMode) ComboBox {
	c.AutoComplete = m
	return c
}

// WithAsyncThreshold sets the option count above which filtering runs as a
// background command. Zero or less keeps filtering synchronous.
func (c ComboBox) WithAsyncThreshold(n int) ComboBox {
	c.AsyncThreshold = n
	return c
}

// WithMatcher swaps the ranking used for filtering and reconciliation.
func (c ComboBox) WithMatcher(m match.Matcher) ComboBox {
	c.matcher = m
	c.cache = &match.Cache{Matcher: m}
	return c
}

// WithEmptyText sets the text shown when the list is empty and nothing is typed.
func (c ComboBox) WithEmptyText(s string) ComboBox {
	c.EmptyText = s
	return c
}

// WithRegistry binds the field to a validation registry.
func (c ComboBox) WithRegistry(r validation.Registry) ComboBox {
	c.registry = r
	c.syncValidation()
	return c
}

// WithRequired marks the field as required.
func (c ComboBox) WithRequired(required bool) ComboBox {
	c.Required = required
	c.syncValidation()
	return c
}

// WithErrorID overrides the validation key.
func (c ComboBox) WithErrorID(id string) ComboBox {
	if c.registry != nil && c.errorID() != id {
		c.registry.ClearError(c.errorID())
	}
	c.ErrorID = id
	c.syncValidation()
	return c
}

// WithErrorMessage overrides the message registered when empty.
func (c ComboBox) WithErrorMessage(msg string) ComboBox {
	if msg != "" {
		c.ErrorMessage = msg
	}
	c.syncValidation()
	return c
}

// Init implements tea.Model.
func (c ComboBox) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (c ComboBox) Update(msg tea.Msg) (ComboBox, tea.Cmd) {
	if c.unmounted {
		return c, nil
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case comboFilterMsg:
		c.applyFilterResult(msg)
	case tea.KeyMsg:
		if !c.focused {
			return c, nil
		}
		cmd = c.handleKeyMsg(msg)
	default:
		c.textInput, cmd = c.textInput.Update(msg)
	}
	c.syncValidation()
	return c, cmd
}

func (c *ComboBox) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	switch c.state {
	case ComboBoxClosed:
		return c.handleClosedKey(msg)
	case ComboBoxBrowsing, ComboBoxFiltering:
		return c.handleOpenKey(msg)
	}
	// Committing: input is locked until the commit resolves.
	return nil
}

func (c *ComboBox) handleClosedKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyDown:
		c.state = ComboBoxBrowsing
		c.showAll()
		return nil

	case tea.KeyEnter, tea.KeyTab:
		// Keep current value; the parent decides what happens next.
		return nil

	case tea.KeyEsc:
		// Two-stage escape: revert divergent input, otherwise pass through.
		if label := c.selectedLabel(); c.textInput.Value() != label {
			c.textInput.SetValue(label)
		}
		return nil

	case tea.KeyRunes, tea.KeyBackspace, tea.KeySpace:
		// Typing over a committed label replaces it.
		if c.value != "" && c.textInput.Value() == c.selectedLabel() {
			c.textInput.SetValue("")
		}
		return c.updateInput(msg)
	}

	var cmd tea.Cmd
	c.textInput, cmd = c.textInput.Update(msg)
	return cmd
}

func (c *ComboBox) handleOpenKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyUp, tea.KeyDown, tea.KeyPgUp, tea.KeyPgDown, tea.KeyEnter, tea.KeyTab:
		c.settleFilter()
	}

	switch msg.Type {
	case tea.KeyUp:
		c.moveHighlight(-1)
		return nil

	case tea.KeyDown:
		c.moveHighlight(1)
		return nil

	case tea.KeyPgUp:
		c.moveHighlight(-c.MaxVisible)
		return nil

	case tea.KeyPgDown:
		c.moveHighlight(c.MaxVisible)
		return nil

	case tea.KeyEnter, tea.KeyTab:
		return c.selectHighlighted()

	case tea.KeyEsc:
		return c.reconcile()

	case tea.KeyDelete:
		// Delete with ghost text visible rejects the completion.
		if c.HasGhostText() {
			c.highlightIndex = -1
		}
		return nil

	case tea.KeyRunes, tea.KeyBackspace, tea.KeySpace:
		return c.updateInput(msg)
	}

	var cmd tea.Cmd
	c.textInput, cmd = c.textInput.Update(msg)
	return cmd
}

// updateInput feeds msg to the text input and refilters when the text changed.
func (c *ComboBox) updateInput(msg tea.KeyMsg) tea.Cmd {
	before := c.textInput.Value()
	var cmd tea.Cmd
	c.textInput, cmd = c.textInput.Update(msg)
	if c.textInput.Value() == before {
		return cmd
	}
	c.state = ComboBoxFiltering
	return tea.Batch(cmd, c.refilter())
}

// refilter recomputes the visible list for the current input. Large option
// sets are filtered by a background command tagged with a generation; only
// the newest generation is ever applied.
func (c *ComboBox) refilter() tea.Cmd {
	query := c.textInput.Value()
	if !c.AutoComplete.filters() {
		c.setVisible(query, c.options)
		if c.AutoComplete.completesInline() {
			c.highlightBestMatch(query)
		}
		return nil
	}

	c.bumpGeneration()
	if c.AsyncThreshold > 0 && len(c.options) > c.AsyncThreshold {
		id, gen, opts, m := c.ID, c.generation, c.options, c.matcher
		c.filterPending = true
		c.highlightIndex = -1
		return func() tea.Msg {
			return comboFilterMsg{id: id, generation: gen, query: query, results: m.Match(query, opts)}
		}
	}
	c.setVisible(query, c.cache.Match(query, c.options))
	return nil
}

func (c *ComboBox) applyFilterResult(msg comboFilterMsg) {
	if msg.id != c.ID || msg.generation != c.generation || !c.IsDropdownOpen() {
		return
	}
	c.filterPending = false
	c.setVisible(msg.query, msg.results)
}

// settleFilter applies the current input synchronously when a background
// filter is still outstanding, so list keys never act on a stale list.
func (c *ComboBox) settleFilter() {
	if !c.filterPending {
		return
	}
	c.bumpGeneration()
	query := c.textInput.Value()
	c.setVisible(query, c.cache.Match(query, c.options))
}

// bumpGeneration invalidates every filter result still in flight.
func (c *ComboBox) bumpGeneration() {
	c.generation++
	c.filterPending = false
}

// setVisible installs results (plus any trailing option) as the list.
func (c *ComboBox) setVisible(query string, results []match.Option) {
	visible := make([]match.Option, 0, len(results)+1)
	visible = append(visible, results...)
	c.hasTrailing = false
	if c.trailing != nil {
		if opt, ok := c.trailing(query, c.options); ok {
			visible = append(visible, opt)
			c.hasTrailing = true
		}
	}
	c.visible = visible
	c.list.Reset(len(visible))
	c.highlightIndex = c.initialHighlight(query)
	c.list.ScrollToIndex(c.highlightIndex)
}

// showAll resets the list to every option with the committed value highlighted.
func (c *ComboBox) showAll() {
	c.bumpGeneration()
	c.setVisible("", c.options)
}

func (c *ComboBox) initialHighlight(query string) int {
	if strings.TrimSpace(query) == "" {
		for i, opt := range c.visible {
			if opt.Value == c.value && !opt.Disabled {
				return i
			}
		}
		return c.firstEnabled()
	}
	if exact, ok := match.FindExactMatchBy(match.FieldLabel, query, c.visible); ok && !exact.Disabled {
		for i, opt := range c.visible {
			if opt.Value == exact.Value {
				return i
			}
		}
	}
	return c.firstEnabled()
}

func (c *ComboBox) highlightBestMatch(query string) {
	best, ok := c.matcher.BestMatch(query, c.options)
	if !ok {
		c.highlightIndex = -1
		return
	}
	for i, opt := range c.visible {
		if opt.Value == best.Value {
			c.highlightIndex = i
			c.list.ScrollToIndex(i)
			return
		}
	}
}

func (c *ComboBox) firstEnabled() int {
	for i, opt := range c.visible {
		if !opt.Disabled {
			return i
		}
	}
	return -1
}

// moveHighlight steps delta rows, skipping disabled options. It stops at the
// ends of the list instead of wrapping.
func (c *ComboBox) moveHighlight(delta int) {
	if len(c.visible) == 0 || delta == 0 {
		return
	}
	step := 1
	if delta < 0 {
		step = -1
	}
	target := c.highlightIndex + delta
	if target < 0 {
		target = 0
	}
	if target >= len(c.visible) {
		target = len(c.visible) - 1
	}
	for i := target; i >= 0 && i < len(c.visible); i += step {
		if !c.visible[i].Disabled {
			c.highlightIndex = i
			c.list.ScrollToIndex(i)
			return
		}
	}
	// Nothing enabled in that direction; search back toward the start point.
	for i := target - step; i >= 0 && i < len(c.visible); i -= step {
		if i == c.highlightIndex {
			return
		}
		if !c.visible[i].Disabled {
			c.highlightIndex = i
			c.list.ScrollToIndex(i)
			return
		}
	}
}

// selectHighlighted commits the highlighted option. With nothing highlighted
// it closes the dropdown with reconciliation.
func (c *ComboBox) selectHighlighted() tea.Cmd {
	opt, ok := c.Highlighted()
	if !ok {
		return c.reconcile()
	}
	if opt.Disabled {
		return nil
	}
	return c.commit(opt)
}

// commit makes opt the selection and reports it.
func (c *ComboBox) commit(opt match.Option) tea.Cmd {
	c.value = opt.Value
	c.textInput.SetValue(opt.Label)
	c.state = ComboBoxClosed
	c.bumpGeneration()
	return changedCmd(c.ID, opt)
}

// reconcile closes the dropdown without an explicit pick. Input matching the
// committed label (or empty input) keeps the selection; otherwise an exact
// value, exact label or best match is selected; otherwise the input reverts.
func (c *ComboBox) reconcile() tea.Cmd {
	prior := c.value
	priorLabel := c.selectedLabel()
	term := strings.TrimSpace(c.textInput.Value())
	c.state = ComboBoxClosed
	c.bumpGeneration()

	if term == "" || term == priorLabel {
		c.textInput.SetValue(priorLabel)
		return nil
	}

	opt, ok := c.reconcileMatch(term)
	if !ok {
		c.textInput.SetValue(priorLabel)
		return nil
	}
	c.value = opt.Value
	c.textInput.SetValue(opt.Label)
	if opt.Value == prior {
		return nil
	}
	return changedCmd(c.ID, opt)
}

func (c *ComboBox) reconcileMatch(term string) (match.Option, bool) {
	enabled := make([]match.Option, 0, len(c.options))
	for _, opt := range c.options {
		if !opt.Disabled {
			enabled = append(enabled, opt)
		}
	}
	if opt, ok := match.FindExactMatchBy(match.FieldValue, term, enabled); ok {
		return opt, true
	}
	if opt, ok := match.FindExactMatchBy(match.FieldLabel, term, enabled); ok {
		return opt, true
	}
	return c.matcher.BestMatch(term, enabled)
}

func changedCmd(id string, opt match.Option) tea.Cmd {
	return func() tea.Msg {
		return ComboBoxChangedMsg{ID: id, Value: opt.Value, Label: opt.Label}
	}
}

// beginCommit locks the widget while an asynchronous commit runs. The value
// reads as sentinel until finishCommit or abortCommit.
func (c *ComboBox) beginCommit(sentinel, label string) {
	c.priorValue = c.value
	c.value = sentinel
	c.state = ComboBoxCommitting
	c.bumpGeneration()
	c.textInput.SetValue(label)
}

// finishCommit selects value, which must already be among the options.
func (c *ComboBox) finishCommit(value string) {
	c.state = ComboBoxClosed
	c.priorValue = ""
	if opt, ok := c.optionByValue(value); ok {
		c.value = opt.Value
		c.textInput.SetValue(opt.Label)
	} else {
		c.value = ""
		c.textInput.SetValue("")
	}
	c.syncValidation()
}

// abortCommit restores the value held before beginCommit.
func (c *ComboBox) abortCommit() {
	c.state = ComboBoxClosed
	c.value = c.priorValue
	c.priorValue = ""
	if _, ok := c.optionByValue(c.value); !ok {
		c.value = ""
	}
	c.textInput.SetValue(c.selectedLabel())
	c.syncValidation()
}

func (c ComboBox) optionByValue(v string) (match.Option, bool) {
	if v == "" {
		return match.Option{}, false
	}
	for _, opt := range c.options {
		if opt.Value == v {
			return opt, true
		}
	}
	return match.Option{}, false
}

func (c ComboBox) selectedLabel() string {
	opt, _ := c.optionByValue(c.value)
	return opt.Label
}

func (c ComboBox) errorID() string {
	if c.ErrorID != "" {
		return c.ErrorID
	}
	return c.ID
}

// syncValidation registers a hidden error while a required field is empty
// and clears it otherwise. A visible entry with the same message stays
// visible.
func (c ComboBox) syncValidation() {
	if c.registry == nil || c.unmounted {
		return
	}
	id := c.errorID()
	if !c.Required || c.value != "" {
		c.registry.ClearError(id)
		return
	}
	if existing, ok := c.registry.GetError(id); ok && existing.Message == c.ErrorMessage {
		return
	}
	c.registry.SetError(id, validation.Error{Message: c.ErrorMessage, Hidden: true})
}

// Value returns the committed value.
func (c ComboBox) Value() string {
	return c.value
}

// SetValue re-syncs the widget to an externally supplied value. A value
// that matches no option resets the selection.
func (c *ComboBox) SetValue(v string) {
	if opt, ok := c.optionByValue(v); ok {
		c.value = opt.Value
		c.textInput.SetValue(opt.Label)
	} else {
		c.value = ""
		c.textInput.SetValue("")
	}
	if c.state == ComboBoxCommitting {
		c.state = ComboBoxClosed
	}
	c.syncValidation()
}

// SetOptions replaces the option set. A selection that is no longer present
// is reset.
func (c *ComboBox) SetOptions(opts []match.Option) tea.Cmd {
	c.options = opts
	if c.state != ComboBoxCommitting {
		if _, ok := c.optionByValue(c.value); !ok {
			c.value = ""
		}
		if !c.IsDropdownOpen() {
			c.textInput.SetValue(c.selectedLabel())
		}
	}
	c.syncValidation()

	if c.state == ComboBoxFiltering {
		return c.refilter()
	}
	c.showAll()
	return nil
}

// Options returns the current option set.
func (c ComboBox) Options() []match.Option {
	return c.options
}

// Focus opens the dropdown on the full list and returns a blink command.
// The search term is cleared so the stale label does not filter the list.
func (c *ComboBox) Focus() tea.Cmd {
	c.focused = true
	if c.state != ComboBoxCommitting {
		c.textInput.SetValue("")
		c.state = ComboBoxBrowsing
		c.showAll()
	}
	return c.textInput.Focus()
}

// Blur closes the dropdown with reconciliation and removes focus.
func (c *ComboBox) Blur() tea.Cmd {
	var cmd tea.Cmd
	if c.IsDropdownOpen() {
		cmd = c.reconcile()
	}
	c.focused = false
	c.textInput.Blur()
	c.syncValidation()
	return cmd
}

// Unmount clears the field's validation entry and turns every later
// message into a no-op.
func (c *ComboBox) Unmount() {
	if c.registry != nil {
		c.registry.ClearError(c.errorID())
	}
	c.unmounted = true
	c.focused = false
	c.state = ComboBoxClosed
	c.bumpGeneration()
	c.textInput.Blur()
}

// Focused returns whether the combo box is focused.
func (c ComboBox) Focused() bool {
	return c.focused
}

// IsDropdownOpen returns whether the dropdown is currently visible.
func (c ComboBox) IsDropdownOpen() bool {
	return c.state == ComboBoxBrowsing || c.state == ComboBoxFiltering
}

// State returns the current state.
func (c ComboBox) State() ComboBoxState {
	return c.state
}

// VisibleOptions returns the list the dropdown currently shows.
func (c ComboBox) VisibleOptions() []match.Option {
	return c.visible
}

// HighlightIndex returns the highlighted row, or -1.
func (c ComboBox) HighlightIndex() int {
	return c.highlightIndex
}

// Highlighted returns the highlighted option.
func (c ComboBox) Highlighted() (match.Option, bool) {
	if c.highlightIndex < 0 || c.highlightIndex >= len(c.visible) {
		return match.Option{}, false
	}
	return c.visible[c.highlightIndex], true
}

// InputValue returns the current search term.
func (c ComboBox) InputValue() string {
	return c.textInput.Value()
}

// GhostText returns the inline completion for the highlighted option.
func (c ComboBox) GhostText() string {
	if !c.AutoComplete.completesInline() || c.state != ComboBoxFiltering {
		return ""
	}
	if c.hasTrailing && c.highlightIndex == len(c.visible)-1 {
		return ""
	}
	opt, ok := c.Highlighted()
	if !ok {
		return ""
	}
	typed := []rune(c.textInput.Value())
	label := []rune(opt.Label)
	if len(typed) == 0 || len(typed) >= len(label) {
		return ""
	}
	if !strings.EqualFold(string(label[:len(typed)]), string(typed)) {
		return ""
	}
	return string(label[len(typed):])
}

// HasGhostText returns whether ghost text is currently visible.
func (c ComboBox) HasGhostText() bool {
	return c.GhostText() != ""
}
