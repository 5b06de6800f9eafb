package ui

import (
	"fmt"
	"testing"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"attrpicker/internal/match"
	"attrpicker/internal/validation"
)

func fruitOptions() []match.Option {
	return []match.Option{
		{Label: "Apple", Value: "apple"},
		{Label: "Banana", Value: "banana"},
		{Label: "Grape", Value: "grape"},
		{Label: "Apricot", Value: "apricot"},
	}
}

func countryOptions() []match.Option {
	return []match.Option{
		{Label: "Australia", Value: "AU"},
		{Label: "Canada", Value: "CA"},
		{Label: "New Zealand", Value: "NZ"},
		{Label: "Norway", Value: "NO"},
	}
}

// newTestComboBox returns a focused combo box with a static cursor so text
// input never schedules blink commands.
func newTestComboBox(opts []match.Option) ComboBox {
	cb := NewComboBox(opts)
	cb.textInput.Cursor.SetMode(cursor.CursorStatic)
	cb.Focus()
	return cb
}

func runesKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeKey(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

// typeText feeds s one rune at a time and returns the commands produced.
func typeText(cb ComboBox, s string) (ComboBox, []tea.Cmd) {
	var cmds []tea.Cmd
	for _, r := range s {
		var cmd tea.Cmd
		cb, cmd = cb.Update(runesKey(string(r)))
		cmds = append(cmds, cmd)
	}
	return cb, cmds
}

// drainCmd runs cmd and any batch it expands to, collecting non-nil messages.
func drainCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drainCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func changedMsgs(cmd tea.Cmd) []ComboBoxChangedMsg {
	var out []ComboBoxChangedMsg
	for _, msg := range drainCmd(cmd) {
		if m, ok := msg.(ComboBoxChangedMsg); ok {
			out = append(out, m)
		}
	}
	return out
}

func visibleLabels(cb ComboBox) []string {
	labels := make([]string, 0, len(cb.VisibleOptions()))
	for _, opt := range cb.VisibleOptions() {
		labels = append(labels, opt.Label)
	}
	return labels
}

func TestNewComboBox(t *testing.T) {
	t.Run("DefaultValues", func(t *testing.T) {
		cb := NewComboBox(nil)
		if cb.Width != 40 {
			t.Errorf("expected default width 40, got %d", cb.Width)
		}
		if cb.MaxVisible != 8 {
			t.Errorf("expected default MaxVisible 8, got %d", cb.MaxVisible)
		}
		if cb.state != ComboBoxClosed {
			t.Errorf("expected initial state closed, got %v", cb.state)
		}
		if cb.focused {
			t.Error("expected focused to be false initially")
		}
		if len(cb.ID) <= len("control-") || cb.ID[:len("control-")] != "control-" {
			t.Errorf("expected generated control id, got %q", cb.ID)
		}
	})

	t.Run("UniqueIDs", func(t *testing.T) {
		if NewComboBox(nil).ID == NewComboBox(nil).ID {
			t.Error("expected distinct generated ids")
		}
	})

	t.Run("BlankIDKeepsGenerated", func(t *testing.T) {
		cb := NewComboBox(nil)
		id := cb.ID
		if got := cb.WithID("  ").ID; got != id {
			t.Errorf("blank WithID replaced id with %q", got)
		}
	})
}

func TestParseAutoCompleteMode(t *testing.T) {
	tests := []struct {
		in   string
		want AutoCompleteMode
		ok   bool
	}{
		{"", AutoCompleteList, true},
		{"list", AutoCompleteList, true},
		{" Inline ", AutoCompleteInline, true},
		{"both", AutoCompleteBoth, true},
		{"none", AutoCompleteNone, true},
		{"sideways", AutoCompleteList, false},
	}
	for _, tt := range tests {
		got, ok := ParseAutoCompleteMode(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseAutoCompleteMode(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestComboBoxFiltering(t *testing.T) {
	t.Run("PrefixBeforeContains", func(t *testing.T) {
		cb := newTestComboBox(fruitOptions())
		cb, _ = typeText(cb, "ap")

		got := visibleLabels(cb)
		want := []string{"Apple", "Apricot", "Grape"}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			t.Errorf("visible = %v, want %v", got, want)
		}
		if cb.State() != ComboBoxFiltering {
			t.Errorf("expected filtering state, got %v", cb.State())
		}
		if cb.HighlightIndex() != 0 {
			t.Errorf("expected first row highlighted, got %d", cb.HighlightIndex())
		}
	})

	t.Run("DiacriticInsensitive", func(t *testing.T) {
		cb := newTestComboBox([]match.Option{
			{Label: "Matière", Value: "matiere"},
			{Label: "Taille", Value: "taille"},
		})
		cb, _ = typeText(cb, "MATIE")
		if got := visibleLabels(cb); len(got) != 1 || got[0] != "Matière" {
			t.Errorf("visible = %v", got)
		}
	})

	t.Run("BackspaceWidens", func(t *testing.T) {
		cb := newTestComboBox(fruitOptions())
		cb, _ = typeText(cb, "apr")
		if got := len(cb.VisibleOptions()); got != 1 {
			t.Fatalf("expected 1 option for 'apr', got %d", got)
		}
		cb, _ = cb.Update(typeKey(tea.KeyBackspace))
		if got := len(cb.VisibleOptions()); got != 3 {
			t.Errorf("expected 3 options for 'ap', got %d", got)
		}
	})

	t.Run("ExactLabelHighlighted", func(t *testing.T) {
		cb := newTestComboBox([]match.Option{
			{Label: "Small", Value: "s"},
			{Label: "Sm", Value: "sm"},
		})
		cb, _ = typeText(cb, "sm")
		opt, ok := cb.Highlighted()
		if !ok || opt.Value != "sm" {
			t.Errorf("expected exact label highlighted, got %+v", opt)
		}
	})
}

func TestComboBoxSelection(t *testing.T) {
	t.Run("EnterCommitsHighlighted", func(t *testing.T) {
		cb := newTestComboBox(fruitOptions())
		cb, _ = typeText(cb, "ban")
		cb, cmd := cb.Update(typeKey(tea.KeyEnter))

		msgs := changedMsgs(cmd)
		if len(msgs) != 1 {
			t.Fatalf("expected exactly one change message, got %d", len(msgs))
		}
		if msgs[0].Value != "banana" || msgs[0].ID != cb.ID {
			t.Errorf("unexpected change message %+v", msgs[0])
		}
		if cb.Value() != "banana" || cb.InputValue() != "Banana" {
			t.Errorf("expected Banana committed, got value %q input %q", cb.Value(), cb.InputValue())
		}
		if cb.IsDropdownOpen() {
			t.Error("expected dropdown closed after commit")
		}
	})

	t.Run("TabCommitsLikeEnter", func(t *testing.T) {
		cb := newTestComboBox(fruitOptions())
		cb, _ = cb.Update(typeKey(tea.KeyDown))
		cb, cmd := cb.Update(typeKey(tea.KeyTab))
		if msgs := changedMsgs(cmd); len(msgs) != 1 || msgs[0].Value != "banana" {
			t.Errorf("expected banana committed by tab, got %+v", msgs)
		}
	})

	t.Run("ReselectSameValueStillReports", func(t *testing.T) {
		cb := newTestComboBox(fruitOptions())
		cb, _ = cb.Update(typeKey(tea.KeyEnter))
		cb.Focus()
		cb, cmd := cb.Update(typeKey(tea.KeyEnter))
		if msgs := changedMsgs(cmd); len(msgs) != 1 || msgs[0].Value != "apple" {
			t.Errorf("expected explicit reselect to report once, got %+v", msgs)
		}
	})

	t.Run("FocusHighlightsCommittedValue", func(t *testing.T) {
		cb := newTestComboBox(fruitOptions())
		cb.SetValue("grape")
		cb.Focus()
		if cb.InputValue() != "" {
			t.Errorf("expected focus to clear the search term, got %q", cb.InputValue())
		}
		if opt, ok := cb.Highlighted(); !ok || opt.Value != "grape" {
			t.Errorf("expected committed value highlighted, got %+v", opt)
		}
	})
}

func TestComboBoxReconcile(t *testing.T) {
	t.Run("ExactValueOnEscape", func(t *testing.T) {
		cb := newTestComboBox(countryOptions())
		cb, _ = typeText(cb, "nz")
		cb, cmd := cb.Update(typeKey(tea.KeyEsc))

		if cb.Value() != "NZ" || cb.InputValue() != "New Zealand" {
			t.Errorf("expected New Zealand, got value %q input %q", cb.Value(), cb.InputValue())
		}
		if msgs := changedMsgs(cmd); len(msgs) != 1 || msgs[0].Label != "New Zealand" {
			t.Errorf("expected one change to New Zealand, got %+v", msgs)
		}
	})

	t.Run("WordsInAnyOrder", func(t *testing.T) {
		cb := newTestComboBox(countryOptions())
		cb, _ = typeText(cb, "Zealand New")
		if got := visibleLabels(cb); len(got) != 1 || got[0] != "New Zealand" {
			t.Fatalf("visible = %v", got)
		}
		cb, _ = cb.Update(typeKey(tea.KeyEsc))
		if cb.Value() != "NZ" {
			t.Errorf("expected NZ, got %q", cb.Value())
		}
	})

	t.Run("NoMatchReverts", func(t *testing.T) {
		cb := newTestComboBox(countryOptions())
		cb.SetValue("CA")
		cb.Focus()
		cb, _ = typeText(cb, "Qzzz")
		cb, cmd := cb.Update(typeKey(tea.KeyEsc))

		if cb.Value() != "CA" || cb.InputValue() != "Canada" {
			t.Errorf("expected revert to Canada, got value %q input %q", cb.Value(), cb.InputValue())
		}
		if msgs := changedMsgs(cmd); len(msgs) != 0 {
			t.Errorf("expected no change message, got %+v", msgs)
		}
	})

	t.Run("NoMatchWithoutSelectionClears", func(t *testing.T) {
		cb := newTestComboBox(countryOptions())
		cb, _ = typeText(cb, "Qzzz")
		cb, _ = cb.Update(typeKey(tea.KeyEsc))
		if cb.Value() != "" || cb.InputValue() != "" {
			t.Errorf("expected empty, got value %q input %q", cb.Value(), cb.InputValue())
		}
	})

	t.Run("UnchangedValueIsSilent", func(t *testing.T) {
		cb := newTestComboBox(countryOptions())
		cb.SetValue("NO")
		cb.Focus()
		cb, _ = typeText(cb, "Norway")
		cb, cmd := cb.Update(typeKey(tea.KeyEsc))
		if cb.Value() != "NO" {
			t.Errorf("expected NO kept, got %q", cb.Value())
		}
		if msgs := changedMsgs(cmd); len(msgs) != 0 {
			t.Errorf("expected no change message, got %+v", msgs)
		}
	})

	t.Run("BestMatchOnBlur", func(t *testing.T) {
		cb := newTestComboBox(countryOptions())
		cb, _ = typeText(cb, "can")
		cmd := cb.Blur()
		if cb.Value() != "CA" {
			t.Errorf("expected CA, got %q", cb.Value())
		}
		if cb.Focused() || cb.IsDropdownOpen() {
			t.Error("expected blurred and closed")
		}
		if msgs := changedMsgs(cmd); len(msgs) != 1 {
			t.Errorf("expected one change message, got %d", len(msgs))
		}
	})

	t.Run("SecondEscapeKeepsValue", func(t *testing.T) {
		cb := newTestComboBox(countryOptions())
		cb, _ = typeText(cb, "nor")
		cb, _ = cb.Update(typeKey(tea.KeyEsc))
		cb, cmd := cb.Update(typeKey(tea.KeyEsc))
		if cb.Value() != "NO" || cb.InputValue() != "Norway" {
			t.Errorf("second escape changed state: %q %q", cb.Value(), cb.InputValue())
		}
		if cmd != nil {
			t.Error("expected no command from second escape")
		}
	})

	t.Run("DisabledNeverReconciled", func(t *testing.T) {
		cb := newTestComboBox([]match.Option{
			{Label: "Red", Value: "red", Disabled: true},
			{Label: "Reddish", Value: "reddish"},
		})
		cb, _ = typeText(cb, "red")
		cb, _ = cb.Update(typeKey(tea.KeyEsc))
		if cb.Value() != "reddish" {
			t.Errorf("expected enabled option chosen, got %q", cb.Value())
		}
	})
}

func TestComboBoxNavigation(t *testing.T) {
	opts := []match.Option{
		{Label: "Alpha", Value: "a", Disabled: true},
		{Label: "Bravo", Value: "b"},
		{Label: "Charlie", Value: "c", Disabled: true},
		{Label: "Delta", Value: "d"},
	}

	t.Run("InitialHighlightSkipsDisabled", func(t *testing.T) {
		cb := newTestComboBox(opts)
		if cb.HighlightIndex() != 1 {
			t.Errorf("expected highlight 1, got %d", cb.HighlightIndex())
		}
	})

	t.Run("DownSkipsDisabled", func(t *testing.T) {
		cb := newTestComboBox(opts)
		cb, _ = cb.Update(typeKey(tea.KeyDown))
		if cb.HighlightIndex() != 3 {
			t.Errorf("expected highlight 3, got %d", cb.HighlightIndex())
		}
	})

	t.Run("StopsAtEnds", func(t *testing.T) {
		cb := newTestComboBox(opts)
		cb, _ = cb.Update(typeKey(tea.KeyDown))
		cb, _ = cb.Update(typeKey(tea.KeyDown))
		if cb.HighlightIndex() != 3 {
			t.Errorf("expected highlight to stay at 3, got %d", cb.HighlightIndex())
		}
		cb, _ = cb.Update(typeKey(tea.KeyUp))
		cb, _ = cb.Update(typeKey(tea.KeyUp))
		if cb.HighlightIndex() != 1 {
			t.Errorf("expected highlight to stop at 1, got %d", cb.HighlightIndex())
		}
	})

	t.Run("DownOpensClosedDropdown", func(t *testing.T) {
		cb := newTestComboBox(opts)
		cb, _ = cb.Update(typeKey(tea.KeyEsc))
		if cb.IsDropdownOpen() {
			t.Fatal("expected closed after escape")
		}
		cb, _ = cb.Update(typeKey(tea.KeyDown))
		if cb.State() != ComboBoxBrowsing {
			t.Errorf("expected browsing, got %v", cb.State())
		}
	})

	t.Run("UnfocusedIgnoresKeys", func(t *testing.T) {
		cb := NewComboBox(opts)
		cb, _ = cb.Update(typeKey(tea.KeyDown))
		if cb.IsDropdownOpen() {
			t.Error("unfocused combo box opened")
		}
	})

	t.Run("ScrollFollowsHighlight", func(t *testing.T) {
		many := make([]match.Option, 50)
		for i := range many {
			many[i] = match.Option{Label: fmt.Sprintf("Option %02d", i), Value: fmt.Sprint(i)}
		}
		cb := newTestComboBox(many).WithMaxVisible(5)
		for i := 0; i < 7; i++ {
			cb, _ = cb.Update(typeKey(tea.KeyDown))
		}
		if cb.HighlightIndex() != 7 {
			t.Fatalf("expected highlight 7, got %d", cb.HighlightIndex())
		}
		if cb.list.ScrollOffset != 3 {
			t.Errorf("expected scroll offset 3, got %d", cb.list.ScrollOffset)
		}
		cb, _ = cb.Update(typeKey(tea.KeyPgDown))
		if cb.HighlightIndex() != 12 {
			t.Errorf("expected page down to 12, got %d", cb.HighlightIndex())
		}
	})
}

func TestComboBoxAsyncFilter(t *testing.T) {
	opts := make([]match.Option, 0, 20)
	for i := 0; i < 20; i++ {
		opts = append(opts, match.Option{Label: fmt.Sprintf("Item %d", i), Value: fmt.Sprint(i)})
	}
	opts = append(opts, match.Option{Label: "Apple", Value: "apple"}, match.Option{Label: "Grape", Value: "grape"})

	cb := newTestComboBox(opts).WithAsyncThreshold(10)

	cb, cmds := typeText(cb, "a")
	first := drainCmd(cmds[0])
	cb, cmds = typeText(cb, "p")
	second := drainCmd(cmds[0])
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected one filter message per keystroke, got %d and %d", len(first), len(second))
	}

	cb, _ = cb.Update(second[0])
	want := []string{"Apple", "Grape"}
	if got := visibleLabels(cb); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("visible = %v, want %v", got, want)
	}

	// The older result lands late and must be discarded.
	cb, _ = cb.Update(first[0])
	if got := visibleLabels(cb); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("stale result applied: visible = %v", got)
	}

	// Results for a closed dropdown are discarded too.
	cb, cmds = typeText(cb, "p")
	late := drainCmd(cmds[0])
	cb, _ = cb.Update(typeKey(tea.KeyEsc))
	cb, _ = cb.Update(late[0])
	if cb.IsDropdownOpen() {
		t.Error("late filter result reopened the dropdown")
	}

	// Enter before the filter reports commits a match for the typed text,
	// never the row highlighted for the previous input.
	large := make([]match.Option, 0, 600)
	for i := 0; i < 599; i++ {
		large = append(large, match.Option{Label: fmt.Sprintf("Item %03d", i), Value: fmt.Sprintf("v%d", i)})
	}
	large = append(large, match.Option{Label: "Zebra", Value: "zebra"})

	big := newTestComboBox(large).WithAsyncThreshold(500)
	big, cmds = typeText(big, "zeb")
	if _, ok := big.Highlighted(); ok {
		t.Error("expected no highlight while the filter is outstanding")
	}
	big, cmd := big.Update(typeKey(tea.KeyEnter))
	if big.Value() != "zebra" || big.InputValue() != "Zebra" {
		t.Fatalf("Enter committed %q (input %q), want zebra", big.Value(), big.InputValue())
	}
	if got := changedMsgs(cmd); len(got) != 1 || got[0].Value != "zebra" {
		t.Errorf("expected one change to zebra, got %+v", got)
	}

	// The outstanding results arrive afterwards and change nothing.
	for _, c := range cmds {
		for _, msg := range drainCmd(c) {
			big, _ = big.Update(msg)
		}
	}
	if big.Value() != "zebra" || big.IsDropdownOpen() {
		t.Errorf("late results disturbed the selection: value %q open %v", big.Value(), big.IsDropdownOpen())
	}
}

func TestComboBoxAutoCompleteModes(t *testing.T) {
	opts := []match.Option{
		{Label: "Apple", Value: "apple"},
		{Label: "Banana", Value: "banana"},
	}

	t.Run("InlineKeepsListAndCompletes", func(t *testing.T) {
		cb := newTestComboBox(opts).WithAutoComplete(AutoCompleteInline)
		cb, _ = typeText(cb, "ba")
		if len(cb.VisibleOptions()) != 2 {
			t.Errorf("expected full list, got %v", visibleLabels(cb))
		}
		if cb.HighlightIndex() != 1 {
			t.Errorf("expected Banana highlighted, got %d", cb.HighlightIndex())
		}
		if got := cb.GhostText(); got != "nana" {
			t.Errorf("ghost = %q, want nana", got)
		}
	})

	t.Run("BothFiltersAndCompletes", func(t *testing.T) {
		cb := newTestComboBox(opts).WithAutoComplete(AutoCompleteBoth)
		cb, _ = typeText(cb, "AP")
		if got := visibleLabels(cb); len(got) != 1 || got[0] != "Apple" {
			t.Errorf("visible = %v", got)
		}
		if got := cb.GhostText(); got != "ple" {
			t.Errorf("ghost = %q, want ple", got)
		}
	})

	t.Run("ListHasNoGhost", func(t *testing.T) {
		cb := newTestComboBox(opts)
		cb, _ = typeText(cb, "ap")
		if cb.HasGhostText() {
			t.Error("list mode should not show ghost text")
		}
	})

	t.Run("NoneNeitherFiltersNorCompletes", func(t *testing.T) {
		cb := newTestComboBox(opts).WithAutoComplete(AutoCompleteNone)
		cb, _ = typeText(cb, "ba")
		if len(cb.VisibleOptions()) != 2 || cb.HasGhostText() {
			t.Errorf("expected full list without ghost, got %v %q", visibleLabels(cb), cb.GhostText())
		}
	})

	t.Run("DeleteRejectsGhost", func(t *testing.T) {
		cb := newTestComboBox(opts).WithAutoComplete(AutoCompleteInline)
		cb, _ = typeText(cb, "ba")
		cb, _ = cb.Update(typeKey(tea.KeyDelete))
		if cb.HasGhostText() || cb.HighlightIndex() != -1 {
			t.Errorf("expected ghost rejected, highlight %d", cb.HighlightIndex())
		}
	})
}

func TestComboBoxExternalSync(t *testing.T) {
	t.Run("SetValueUnknownResets", func(t *testing.T) {
		cb := newTestComboBox(fruitOptions())
		cb.SetValue("banana")
		cb.SetValue("kiwi")
		if cb.Value() != "" || cb.InputValue() != "" {
			t.Errorf("expected reset, got %q %q", cb.Value(), cb.InputValue())
		}
	})

	t.Run("SetOptionsDropsVanishedSelection", func(t *testing.T) {
		cb := NewComboBox(fruitOptions())
		cb.SetValue("grape")
		cb.SetOptions(fruitOptions()[:2])
		if cb.Value() != "" || cb.InputValue() != "" {
			t.Errorf("expected selection reset, got %q %q", cb.Value(), cb.InputValue())
		}
	})

	t.Run("SetOptionsKeepsPresentSelection", func(t *testing.T) {
		cb := NewComboBox(fruitOptions())
		cb.SetValue("apple")
		cb.SetOptions(fruitOptions()[:2])
		if cb.Value() != "apple" || cb.InputValue() != "Apple" {
			t.Errorf("expected apple kept, got %q %q", cb.Value(), cb.InputValue())
		}
	})

	t.Run("SetOptionsRefiltersOpenList", func(t *testing.T) {
		cb := newTestComboBox(fruitOptions())
		cb, _ = typeText(cb, "ap")
		cb.SetOptions(append(fruitOptions(), match.Option{Label: "Papaya", Value: "papaya"}))
		if got := visibleLabels(cb); len(got) != 4 || got[3] != "Papaya" {
			t.Errorf("visible = %v", got)
		}
	})
}

func TestComboBoxCommitting(t *testing.T) {
	cb := newTestComboBox(fruitOptions())
	cb.SetValue("apple")
	cb.beginCommit("pending", "Kiwi")

	if cb.State() != ComboBoxCommitting || cb.Value() != "pending" {
		t.Fatalf("expected committing with sentinel, got %v %q", cb.State(), cb.Value())
	}
	cb, cmd := cb.Update(runesKey("x"))
	if cmd != nil || cb.InputValue() != "Kiwi" {
		t.Errorf("input should be locked while committing, got %q", cb.InputValue())
	}

	cb.abortCommit()
	if cb.State() != ComboBoxClosed || cb.Value() != "apple" || cb.InputValue() != "Apple" {
		t.Errorf("abort did not restore: %v %q %q", cb.State(), cb.Value(), cb.InputValue())
	}

	cb.beginCommit("pending", "Grape")
	cb.finishCommit("grape")
	if cb.Value() != "grape" || cb.InputValue() != "Grape" {
		t.Errorf("finish did not select grape: %q %q", cb.Value(), cb.InputValue())
	}
}

func TestComboBoxValidation(t *testing.T) {
	t.Run("RequiredEmptyRegistersHidden", func(t *testing.T) {
		reg := validation.NewMemoryRegistry()
		cb := NewComboBox(fruitOptions()).WithID("fruit").WithRegistry(reg).WithRequired(true)

		got, ok := reg.GetError("fruit")
		if !ok || !got.Hidden || got.Message != DefaultErrorMessage {
			t.Fatalf("expected hidden default error, got %+v %v", got, ok)
		}
		if _, visible := validation.Visible(reg, cb.ID); visible {
			t.Error("error should start hidden")
		}
	})

	t.Run("SelectionClearsError", func(t *testing.T) {
		reg := validation.NewMemoryRegistry()
		cb := NewComboBox(fruitOptions()).WithRegistry(reg).WithRequired(true)
		cb.textInput.Cursor.SetMode(cursor.CursorStatic)
		cb.Focus()
		cb, _ = cb.Update(typeKey(tea.KeyEnter))
		if _, ok := reg.GetError(cb.ID); ok {
			t.Error("expected error cleared after selection")
		}
		cb.SetValue("")
		if _, ok := reg.GetError(cb.ID); !ok {
			t.Error("expected error back after clearing the value")
		}
	})

	t.Run("ShowAllMakesVisible", func(t *testing.T) {
		reg := validation.NewMemoryRegistry()
		cb := NewComboBox(fruitOptions()).WithRegistry(reg).WithRequired(true).WithErrorMessage("Pick a fruit")
		reg.ShowAll()
		msg, ok := validation.Visible(reg, cb.ID)
		if !ok || msg != "Pick a fruit" {
			t.Fatalf("expected visible custom message, got %q %v", msg, ok)
		}
		// A later sync keeps the entry visible.
		cb.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
		if _, ok := validation.Visible(reg, cb.ID); !ok {
			t.Error("re-sync hid a shown error")
		}
	})

	t.Run("CustomErrorID", func(t *testing.T) {
		reg := validation.NewMemoryRegistry()
		cb := NewComboBox(nil).WithRegistry(reg).WithRequired(true).WithErrorID("attribute-name")
		if _, ok := reg.GetError(cb.ID); ok {
			t.Error("entry left under the generated id")
		}
		if _, ok := reg.GetError("attribute-name"); !ok {
			t.Error("expected entry under the custom id")
		}
	})

	t.Run("NotRequiredNeverRegisters", func(t *testing.T) {
		reg := validation.NewMemoryRegistry()
		NewComboBox(nil).WithRegistry(reg)
		if len(reg.Errors()) != 0 {
			t.Errorf("expected empty registry, got %d", len(reg.Errors()))
		}
	})

	t.Run("UnmountClearsAndFreezes", func(t *testing.T) {
		reg := validation.NewMemoryRegistry()
		cb := newTestComboBox(fruitOptions()).WithRegistry(reg).WithRequired(true)
		cb.Unmount()
		if len(reg.Errors()) != 0 {
			t.Errorf("expected registry cleared, got %d", len(reg.Errors()))
		}
		cb, cmd := cb.Update(typeKey(tea.KeyEnter))
		if cmd != nil || cb.Value() != "" {
			t.Error("unmounted combo box handled input")
		}
		if len(reg.Errors()) != 0 {
			t.Error("unmounted combo box re-registered its error")
		}
	})
}
