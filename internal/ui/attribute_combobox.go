package ui

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"attrpicker/internal/catalog"
	"attrpicker/internal/debug"
	appErrors "attrpicker/internal/errors"
	"attrpicker/internal/match"
	"attrpicker/internal/telemetry"
)

const (
	// CreateFailedMessage is shown when creating an attribute fails for any
	// reason other than a conflict reported by the catalog.
	CreateFailedMessage = "Failed to create new attribute."
	// EmptyCatalogText invites the user to create the first attribute.
	EmptyCatalogText = "Nothing yet. Type to create."

	defaultCreateTimeout   = 15 * time.Second
	defaultTelemetrySource = "product-editor"
)

var logCreate = debug.Scoped("create")

// PendingStatus tracks free-text entity creation.
type PendingStatus int

const (
	PendingNone PendingStatus = iota
	PendingDraft
	PendingCreating
)

// PendingCreate is the typed text offered for creation.
type PendingCreate struct {
	Label  string
	Status PendingStatus
}

// AttributeSelectedMsg is sent once per committed attribute. Local
// attributes were never created in the catalog and carry no id.
type AttributeSelectedMsg struct {
	Attribute catalog.Attribute
	IsNew     bool
	Local     bool
}

// AttributeNoticeMsg asks the owner to show a dismissible notice.
type AttributeNoticeMsg struct {
	Message string
	IsError bool
}

type attributeCreatedMsg struct {
	id        string
	requestID uint64
	attribute catalog.Attribute
	err       error
}

// AttributeComboBox is a ComboBox over catalog attributes that can create a
// missing attribute from the typed text.
type AttributeComboBox struct {
	CreateAsGlobal bool
	AllowCreate    bool
	Source         string // telemetry source property
	CreateTimeout  time.Duration

	combo      ComboBox
	client     catalog.Client
	emitter    *telemetry.Emitter
	attributes []catalog.Attribute
	pending    PendingCreate
	requestID  uint64
	unmounted  bool
}

// NewAttributeComboBox builds the picker over attrs backed by client.
func NewAttributeComboBox(client catalog.Client, attrs []catalog.Attribute) AttributeComboBox {
	a := AttributeComboBox{
		CreateAsGlobal: true,
		AllowCreate:    true,
		Source:         defaultTelemetrySource,
		CreateTimeout:  defaultCreateTimeout,
		client:         client,
		attributes:     append([]catalog.Attribute(nil), attrs...),
	}
	a.combo = NewComboBox(catalog.Options(a.attributes)).
		WithLabel("Attribute").
		WithPlaceholder("Search or create attribute").
		WithEmptyText(EmptyCatalogText)
	a.combo.trailing = createOption
	return a
}

// createOption offers `Create "<text>"` when text matches no label or value.
func createOption(query string, options []match.Option) (match.Option, bool) {
	text := strings.TrimSpace(query)
	if text == "" {
		return match.Option{}, false
	}
	if _, ok := match.FindExactMatchBy(match.FieldLabel, text, options); ok {
		return match.Option{}, false
	}
	if _, ok := match.FindExactMatchBy(match.FieldValue, text, options); ok {
		return match.Option{}, false
	}
	return match.Option{Label: `Create "` + text + `"`, Value: catalog.CreateOptionValue}, true
}

// WithCombo adjusts the wrapped ComboBox.
func (a AttributeComboBox) WithCombo(fn func(ComboBox) ComboBox) AttributeComboBox {
	a.combo = fn(a.combo)
	a.combo.trailing = a.trailing()
	return a
}

// WithEmitter records creation events through e.
func (a AttributeComboBox) WithEmitter(e *telemetry.Emitter) AttributeComboBox {
	a.emitter = e
	return a
}

// WithCreate configures creation. Local creation skips the catalog and
// yields a product-only attribute.
func (a AttributeComboBox) WithCreate(allow, global bool) AttributeComboBox {
	a.AllowCreate = allow
	a.CreateAsGlobal = global
	a.combo.trailing = a.trailing()
	if !allow {
		a.combo.EmptyText = ""
	} else {
		a.combo.EmptyText = EmptyCatalogText
	}
	return a
}

func (a AttributeComboBox) trailing() func(string, []match.Option) (match.Option, bool) {
	if !a.AllowCreate {
		return nil
	}
	return createOption
}

// Init implements tea.Model.
func (a AttributeComboBox) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a AttributeComboBox) Update(msg tea.Msg) (AttributeComboBox, tea.Cmd) {
	if a.unmounted {
		return a, nil
	}

	switch msg := msg.(type) {
	case attributeCreatedMsg:
		return a.handleCreated(msg)

	case ComboBoxChangedMsg:
		if msg.ID != a.combo.ID {
			return a, nil
		}
		return a, a.selectedCmd(msg.Value)

	case tea.KeyMsg:
		if a.combo.Focused() && a.combo.IsDropdownOpen() &&
			(msg.Type == tea.KeyEnter || msg.Type == tea.KeyTab) {
			a.combo.settleFilter()
			if opt, ok := a.combo.Highlighted(); ok && opt.Value == catalog.CreateOptionValue {
				return a.startCreate()
			}
		}
	}

	var cmd tea.Cmd
	a.combo, cmd = a.combo.Update(msg)
	a.syncPending()
	return a, cmd
}

// syncPending tracks whether the typed text is a creation draft.
func (a *AttributeComboBox) syncPending() {
	if a.pending.Status == PendingCreating {
		return
	}
	if !a.AllowCreate || !a.combo.IsDropdownOpen() {
		a.pending = PendingCreate{}
		return
	}
	if _, ok := createOption(a.combo.InputValue(), a.combo.Options()); ok {
		a.pending = PendingCreate{Label: strings.TrimSpace(a.combo.InputValue()), Status: PendingDraft}
		return
	}
	a.pending = PendingCreate{}
}

func (a AttributeComboBox) selectedCmd(value string) tea.Cmd {
	id, ok := catalog.ParseOptionValue(value)
	if !ok {
		return nil
	}
	attr, ok := catalog.Find(a.attributes, id)
	if !ok || attr.Disabled {
		return nil
	}
	return func() tea.Msg {
		return AttributeSelectedMsg{Attribute: attr}
	}
}

// startCreate handles a pick of the synthetic create option. A second pick
// while a request is in flight is ignored.
func (a AttributeComboBox) startCreate() (AttributeComboBox, tea.Cmd) {
	if a.pending.Status == PendingCreating {
		return a, nil
	}
	name := strings.TrimSpace(a.combo.InputValue())
	if name == "" {
		return a, nil
	}

	record := recordCmd(a.emitter, telemetry.EventAddCustomAttribute, map[string]any{"source": a.Source})

	if !a.CreateAsGlobal {
		a.pending = PendingCreate{}
		a.combo.SetValue("")
		a.combo.state = ComboBoxClosed
		local := catalog.Attribute{Name: name}
		return a, tea.Batch(record, func() tea.Msg {
			return AttributeSelectedMsg{Attribute: local, IsNew: true, Local: true}
		})
	}

	a.requestID++
	a.pending = PendingCreate{Label: name, Status: PendingCreating}
	a.combo.beginCommit(catalog.CreateOptionValue, name)
	logCreate("request %d: %q", a.requestID, name)

	id, reqID, client, timeout := a.combo.ID, a.requestID, a.client, a.CreateTimeout
	create := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		attr, err := client.CreateAttribute(ctx, name)
		return attributeCreatedMsg{id: id, requestID: reqID, attribute: attr, err: err}
	}
	return a, tea.Batch(record, create)
}

func (a AttributeComboBox) handleCreated(msg attributeCreatedMsg) (AttributeComboBox, tea.Cmd) {
	if msg.id != a.combo.ID || msg.requestID != a.requestID || a.pending.Status != PendingCreating {
		logCreate("dropping stale result for request %d", msg.requestID)
		return a, nil
	}
	a.pending = PendingCreate{}

	if msg.err != nil {
		logCreate("request %d failed: %v", msg.requestID, msg.err)
		a.combo.abortCommit()
		text := CreateFailedMessage
		if appErrors.IsCode(msg.err, appErrors.CodeCreateConflict) {
			text = appErrors.MessageOf(msg.err)
		}
		return a, func() tea.Msg {
			return AttributeNoticeMsg{Message: text, IsError: true}
		}
	}

	attr := msg.attribute
	a.attributes = append(a.attributes, attr)
	a.combo.options = catalog.Options(a.attributes)
	a.combo.finishCommit(catalog.OptionValue(attr.ID))
	a.combo.showAll()
	return a, func() tea.Msg {
		return AttributeSelectedMsg{Attribute: attr, IsNew: true}
	}
}

// SetAttributes replaces the catalog the picker offers.
func (a *AttributeComboBox) SetAttributes(attrs []catalog.Attribute) tea.Cmd {
	a.attributes = append([]catalog.Attribute(nil), attrs...)
	return a.combo.SetOptions(catalog.Options(a.attributes))
}

// Reset clears the selection so the next attribute can be picked.
func (a *AttributeComboBox) Reset() {
	a.combo.SetValue("")
	a.pending = PendingCreate{}
}

// View implements tea.Model.
func (a AttributeComboBox) View() string {
	view := a.combo.View()
	if a.pending.Status == PendingCreating {
		view += "\n" + styleComboBoxHint().Render(`  Creating "`+a.pending.Label+`"…`)
	}
	return view
}

// Focus focuses the wrapped combo box.
func (a *AttributeComboBox) Focus() tea.Cmd {
	return a.combo.Focus()
}

// Blur blurs the wrapped combo box.
func (a *AttributeComboBox) Blur() tea.Cmd {
	cmd := a.combo.Blur()
	a.syncPending()
	return cmd
}

// Unmount drops any in-flight creation result and clears validation.
func (a *AttributeComboBox) Unmount() {
	a.unmounted = true
	a.pending = PendingCreate{}
	a.combo.Unmount()
}

// Pending returns the creation sub-state.
func (a AttributeComboBox) Pending() PendingCreate {
	return a.pending
}

// Value returns the wrapped combo box's committed value.
func (a AttributeComboBox) Value() string {
	return a.combo.Value()
}

// Combo exposes the wrapped combo box.
func (a AttributeComboBox) Combo() ComboBox {
	return a.combo
}

// Attributes returns the catalog the picker offers.
func (a AttributeComboBox) Attributes() []catalog.Attribute {
	return a.attributes
}

// recordCmd emits a telemetry event off the UI loop.
func recordCmd(e *telemetry.Emitter, name string, props map[string]any) tea.Cmd {
	if !e.Enabled() {
		return nil
	}
	return func() tea.Msg {
		e.Record(context.Background(), name, props)
		return nil
	}
}
