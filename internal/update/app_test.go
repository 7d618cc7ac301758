package update

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/frogpad/frogpad/internal/config"
	"github.com/frogpad/frogpad/internal/modal"
	"github.com/frogpad/frogpad/internal/model"
	"github.com/frogpad/frogpad/internal/persist"
	"github.com/frogpad/frogpad/internal/quickdate"
	"github.com/frogpad/frogpad/internal/store"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

var today = model.Date{Year: 2024, Month: time.January, Day: 15}

func sampleLists() []model.TaskList {
	return []model.TaskList{
		model.NewTaskList("work",
			model.Task{Name: "a", Status: model.StatusNotStarted, Date: today},
			model.Task{Name: "b", Status: model.StatusNotStarted, Date: today},
		),
	}
}

func newTestModel(t *testing.T, lists []model.TaskList, tweak func(*config.Config)) (Model, *fakeClipboard) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default("")
	cfg.DataFile = filepath.Join(dir, "list.json")
	if tweak != nil {
		tweak(&cfg)
	}
	clip := &fakeClipboard{}
	m := NewModelWithConfig(cfg, Deps{
		Store:     store.New(lists, store.Options{}),
		Clock:     quickdate.FixedClock(today),
		Clipboard: clip,
		ExportDir: dir,
	})
	return m, clip
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func press(m Model, keys ...tea.KeyMsg) Model {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m = press(m, runes(string(r)))
	}
	return m
}

// command runs a colon command and returns the model with the command the
// update produced.
func command(m Model, line string) (Model, tea.Cmd) {
	m = press(m, runes(":"))
	m = typeText(m, line)
	next, cmd := m.Update(keyType(tea.KeyEnter))
	return next.(Model), cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel()
	if m.CurrentTab != TabTasks {
		t.Fatalf("expected tasks tab, got %s", m.CurrentTab)
	}
	if m.Mode != ModeRunning {
		t.Fatalf("expected running mode, got %s", m.Mode)
	}
	if m.DataPath() != config.DefaultDataFile {
		t.Fatalf("expected default data path, got %q", m.DataPath())
	}
	if m.Dirty() {
		t.Fatalf("fresh model should be clean")
	}
}

func TestGlobalKeysCycleTabs(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	m = press(m, runes("n"))
	if m.CurrentTab != TabCalendar {
		t.Fatalf("expected calendar, got %s", m.CurrentTab)
	}
	m = press(m, runes("n"), runes("n"))
	if m.CurrentTab != TabTasks {
		t.Fatalf("expected wrap to tasks, got %s", m.CurrentTab)
	}
	m = press(m, runes("N"))
	if m.CurrentTab != TabOptions {
		t.Fatalf("expected options, got %s", m.CurrentTab)
	}
}

func TestTasksKeysNavigateAndMark(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	m = press(m, runes("j"), runes("m"))

	if sel := m.Store().Selection(); sel.Task != 1 {
		t.Fatalf("expected second task selected, got %+v", sel)
	}
	if got := m.Store().Lists()[0].Tasks[1].Status; got != model.StatusInProgress {
		t.Fatalf("expected in progress, got %s", got)
	}
	if !m.Dirty() {
		t.Fatalf("status change should make the store dirty")
	}

	m = press(m, runes("k"))
	if sel := m.Store().Selection(); sel.Task != 0 {
		t.Fatalf("expected first task selected, got %+v", sel)
	}
}

func TestAddTaskThroughEditor(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	m = press(m, runes("a"))
	editor, ok := m.Popup().(*modal.Editor)
	if !ok {
		t.Fatalf("expected editor popup, got %T", m.Popup())
	}
	if editor.Title() != "New Task" {
		t.Fatalf("unexpected editor title %q", editor.Title())
	}

	m = typeText(m, "quiz night")
	if m.Mode != ModeRunning || m.CurrentTab != TabTasks {
		t.Fatalf("global keys fired while the editor was open: mode=%s tab=%s", m.Mode, m.CurrentTab)
	}
	m = press(m, keyType(tea.KeyEnter))
	if m.Popup() != nil {
		t.Fatalf("editor should close on enter")
	}

	tasks := m.Store().Lists()[0].Tasks
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	added := tasks[2]
	if added.Name != "quiz night" || added.Date != today || added.Status != model.StatusNotStarted {
		t.Fatalf("unexpected new task %+v", added)
	}
}

func TestAddTaskOnEmptyStoreCreatesList(t *testing.T) {
	m, _ := newTestModel(t, nil, nil)
	m = press(m, runes("a"))
	m = typeText(m, "first")
	m = press(m, keyType(tea.KeyEnter))

	names := m.Store().ListNames()
	if len(names) != 1 || names[0] != store.DefaultListName {
		t.Fatalf("expected a default list, got %v", names)
	}
}

func TestEditorEscapeDiscardsChanges(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	m = press(m, runes("e"))
	m = typeText(m, "zzz")
	m = press(m, keyType(tea.KeyEsc))

	if m.Popup() != nil {
		t.Fatalf("editor should close on esc")
	}
	if got := m.Store().Lists()[0].Tasks[0].Name; got != "a" {
		t.Fatalf("canceled edit changed the task to %q", got)
	}
}

func TestEditTaskReplacesSelection(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	m = press(m, runes("e"))
	m = typeText(m, "!")
	m = press(m, keyType(tea.KeyEnter))

	if got := m.Store().Lists()[0].Tasks[0].Name; got != "a!" {
		t.Fatalf("expected edited name, got %q", got)
	}
	if len(m.Store().Lists()[0].Tasks) != 2 {
		t.Fatalf("edit must not add a task")
	}
}

func TestAddSubTaskExpandsAndSelects(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	m = press(m, runes("A"))
	editor, ok := m.Popup().(*modal.Editor)
	if !ok || editor.Title() != "New Sub-Task" {
		t.Fatalf("expected sub-task editor, got %T", m.Popup())
	}
	m = typeText(m, "child")
	m = press(m, keyType(tea.KeyEnter))

	parent := m.Store().Lists()[0].Tasks[0]
	if len(parent.SubTasks) != 1 || parent.SubTasks[0].Name != "child" || !parent.Expanded {
		t.Fatalf("unexpected parent after sub-task add: %+v", parent)
	}
	if sel := m.Store().Selection(); sel.Task != 0 || sel.Sub != 1 {
		t.Fatalf("expected new sub-task selected, got %+v", sel)
	}

	m = press(m, keyType(tea.KeySpace))
	if m.Store().Lists()[0].Tasks[0].Expanded {
		t.Fatalf("space should collapse the parent")
	}
}

func TestDeleteAsksForConfirmation(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)

	m = press(m, runes("d"))
	confirm, ok := m.Popup().(*modal.Confirm)
	if !ok || confirm.Title() != "Confirm delete" {
		t.Fatalf("expected delete confirmation, got %T", m.Popup())
	}
	m = press(m, runes("n"))
	if len(m.Store().Lists()[0].Tasks) != 2 {
		t.Fatalf("declined delete removed a task")
	}

	m = press(m, runes("d"), runes("y"))
	tasks := m.Store().Lists()[0].Tasks
	if len(tasks) != 1 || tasks[0].Name != "b" {
		t.Fatalf("expected only b left, got %+v", tasks)
	}
}

func TestDeleteWithNothingAddressedOpensNothing(t *testing.T) {
	m, _ := newTestModel(t, []model.TaskList{model.NewTaskList("empty")}, nil)
	m = press(m, runes("d"))
	if m.Popup() != nil {
		t.Fatalf("delete on an empty list should not open a popup")
	}
}

func TestNewListPrompt(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	m, _ = command(m, "t newlist")
	if _, ok := m.Popup().(*modal.Prompt); !ok {
		t.Fatalf("expected prompt popup, got %T", m.Popup())
	}
	m = typeText(m, "home")
	m = press(m, keyType(tea.KeyEnter))
	if names := m.Store().ListNames(); len(names) != 2 || names[1] != "home" {
		t.Fatalf("expected home list, got %v", names)
	}

	m, _ = command(m, "t newlist")
	m = typeText(m, "  ")
	m = press(m, keyType(tea.KeyEnter))
	if m.Store().Len() != 2 {
		t.Fatalf("blank list name should be ignored, got %v", m.Store().ListNames())
	}
}

func TestCommandModeEditing(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	m = press(m, runes(":"))
	if m.Mode != ModeCommand {
		t.Fatalf("expected command mode, got %s", m.Mode)
	}
	m = typeText(m, "t newx")
	m = press(m, keyType(tea.KeyBackspace))
	m = typeText(m, "list")
	if m.CommandLine() != "t newlist" {
		t.Fatalf("unexpected command line %q", m.CommandLine())
	}
	m = press(m, keyType(tea.KeyEnter))
	if m.Mode != ModeRunning {
		t.Fatalf("enter should leave command mode")
	}
	if _, ok := m.Popup().(*modal.Prompt); !ok {
		t.Fatalf("command did not run, popup %T", m.Popup())
	}
}

func TestCommandModeEscapeAborts(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	m = press(m, runes(":"))
	m = typeText(m, "q!")
	m = press(m, keyType(tea.KeyEsc))
	if m.Mode != ModeRunning || m.CommandLine() != "" {
		t.Fatalf("esc should abort: mode=%s line=%q", m.Mode, m.CommandLine())
	}
	if m.Status.Visible() {
		t.Fatalf("aborted command should not report anything: %+v", m.Status)
	}
}

func TestCommandSwitchesTabs(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	m, _ = command(m, "c")
	if m.CurrentTab != TabCalendar {
		t.Fatalf("expected calendar, got %s", m.CurrentTab)
	}
	m, _ = command(m, "options")
	if m.CurrentTab != TabOptions {
		t.Fatalf("expected options, got %s", m.CurrentTab)
	}
	m, _ = command(m, "t")
	if m.CurrentTab != TabTasks {
		t.Fatalf("expected tasks, got %s", m.CurrentTab)
	}
}

func TestUnknownCommandShowsError(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	m, cmd := command(m, "bogus")
	if !m.Status.IsError || m.Status.Text != `Unknown Command: "bogus"` {
		t.Fatalf("unexpected status %+v", m.Status)
	}
	if cmd == nil {
		t.Fatalf("posting an error should start the frame ticker")
	}

	m = press(m, runes(":"))
	if m.Status.Visible() {
		t.Fatalf("entering command mode should clear the error")
	}
}

func TestErrorExpiresAfterConfiguredTicks(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), func(c *config.Config) {
		c.ErrorDisplaySeconds = 1
		c.RefreshRate = 3
	})
	m, cmd := command(m, "bogus")
	if cmd == nil {
		t.Fatalf("expected a tick")
	}

	m, cmd = command(m, "bogus again")
	if cmd != nil {
		t.Fatalf("a second error must not start another ticker")
	}

	for i := 0; i < 2; i++ {
		next, cmd := m.Update(frameMsg{})
		m = next.(Model)
		if !m.Status.Visible() || cmd == nil {
			t.Fatalf("error cleared too early at frame %d", i+1)
		}
	}
	next, cmd := m.Update(frameMsg{})
	m = next.(Model)
	if m.Status.Visible() {
		t.Fatalf("error should clear after 3 frames, status %+v", m.Status)
	}
	if cmd != nil {
		t.Fatalf("ticker should stop once the error is gone")
	}
}

func TestCommandErrorsMapToMessages(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.json")
	if err := os.WriteFile(garbage, []byte("not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cases := map[string]string{
		"t load " + filepath.Join(dir, "missing", "x.json"): "Invalid File Path",
		"t load " + garbage:                                  "Invalid File Format",
		"t import " + garbage:                                "Invalid File Format",
		"t export 5":                                         "Invalid Index",
		"t export x":                                         "Not A Number",
		"t import":                                           "Missing Field",
		"":                                                   "Empty Command",
	}
	for line, want := range cases {
		m, _ := newTestModel(t, sampleLists(), nil)
		m, _ = command(m, line)
		if !m.Status.IsError || m.Status.Text != want {
			t.Fatalf("%q: expected %q, got %+v", line, want, m.Status)
		}
		if m.Store().Len() != 1 || len(m.Store().Lists()[0].Tasks) != 2 {
			t.Fatalf("%q: failed command changed the store", line)
		}
	}
}

func TestQuitWhenCleanExits(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	next, cmd := m.Update(runes("q"))
	m = next.(Model)
	if m.Mode != ModeExiting || !isQuit(cmd) {
		t.Fatalf("clean quit should exit, mode=%s", m.Mode)
	}
	if m.View() != "" {
		t.Fatalf("exiting model should render nothing")
	}
}

func TestQuitWhenDirtyAsksToSave(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	m = press(m, runes("m"), runes("q"))
	confirm, ok := m.Popup().(*modal.Confirm)
	if !ok || confirm.Title() != "Confirm Save" {
		t.Fatalf("expected save confirmation, got %T", m.Popup())
	}

	m = press(m, keyType(tea.KeyEsc))
	if m.Mode != ModeRunning || m.Popup() != nil {
		t.Fatalf("esc should keep the app running, mode=%s", m.Mode)
	}

	m = press(m, runes("q"))
	next, cmd := m.Update(runes("n"))
	m = next.(Model)
	if m.Mode != ModeExiting || !isQuit(cmd) {
		t.Fatalf("declining the save should exit")
	}
	if _, err := os.Stat(m.DataPath()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("declining the save wrote the data file: %v", err)
	}
}

func TestQuitSaveWritesDataFile(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	m = press(m, runes("m"), runes("q"))
	next, cmd := m.Update(runes("y"))
	m = next.(Model)
	if m.Mode != ModeExiting || !isQuit(cmd) {
		t.Fatalf("saving should exit")
	}

	loaded := store.New(nil, store.Options{})
	if err := persist.LoadStore(context.Background(), loaded, m.DataPath()); err != nil {
		t.Fatalf("load saved file: %v", err)
	}
	if !model.EqualLists(loaded.Lists(), m.Store().Lists()) {
		t.Fatalf("saved data differs from the store")
	}
}

func TestQuitSaveFailureStays(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), func(c *config.Config) {
		c.DataFile = filepath.Join(t.TempDir(), "missing", "list.json")
	})
	m = press(m, runes("m"), runes("q"), runes("y"))
	if m.Mode != ModeRunning {
		t.Fatalf("failed save must not exit")
	}
	if !m.Status.IsError || m.Status.Text != "Invalid File Path" {
		t.Fatalf("unexpected status %+v", m.Status)
	}
}

func TestForceQuitIgnoresDirtyState(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	m = press(m, runes("m"))
	m, cmd := command(m, "q!")
	if m.Mode != ModeExiting || !isQuit(cmd) {
		t.Fatalf("quit! should exit unconditionally")
	}

	m, _ = newTestModel(t, sampleLists(), nil)
	m = press(m, runes("m"), runes("a"))
	next, cmd := m.Update(keyType(tea.KeyCtrlC))
	if next.(Model).Mode != ModeExiting || !isQuit(cmd) {
		t.Fatalf("ctrl+c should exit even with a popup open")
	}
}

func TestQuitCommandWhenDirtyPrompts(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	m = press(m, runes("m"))
	m, cmd := command(m, "q")
	if isQuit(cmd) || m.Mode == ModeExiting {
		t.Fatalf("dirty quit command should ask first")
	}
	if _, ok := m.Popup().(*modal.Confirm); !ok {
		t.Fatalf("expected save confirmation, got %T", m.Popup())
	}
}

func TestSaveAndLoadCommands(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	m = press(m, runes("m"))
	m, _ = command(m, "t save")
	if m.Status.IsError || !strings.HasPrefix(m.Status.Text, "Saved ") {
		t.Fatalf("unexpected save status %+v", m.Status)
	}
	if m.Dirty() {
		t.Fatalf("save should reset the dirty state")
	}

	m = press(m, runes("m"))
	if !m.Dirty() {
		t.Fatalf("expected dirty after another change")
	}
	m, _ = command(m, "t load")
	if m.Dirty() {
		t.Fatalf("load should reset the dirty state")
	}
	if got := m.Store().Lists()[0].Tasks[0].Status; got != model.StatusInProgress {
		t.Fatalf("load should restore the saved status, got %s", got)
	}

	other := filepath.Join(filepath.Dir(m.DataPath()), "other.db")
	m, _ = command(m, "t save "+other)
	if m.Status.IsError {
		t.Fatalf("sqlite save failed: %+v", m.Status)
	}
	if m.DataPath() != other {
		t.Fatalf("save with a path should become the current path, got %q", m.DataPath())
	}
}

func TestExportAndImportCommands(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	m, _ = command(m, "t export 0")
	if m.Status.IsError {
		t.Fatalf("export failed: %+v", m.Status)
	}
	exported := filepath.Join(filepath.Dir(m.DataPath()), "work.json")
	if _, err := os.Stat(exported); err != nil {
		t.Fatalf("export file missing: %v", err)
	}

	m, _ = command(m, "c")
	m, _ = command(m, "t import "+exported)
	if m.Status.IsError {
		t.Fatalf("import failed: %+v", m.Status)
	}
	if names := m.Store().ListNames(); len(names) != 2 || names[1] != "work" {
		t.Fatalf("expected imported list appended, got %v", names)
	}
	if m.CurrentTab != TabTasks {
		t.Fatalf("import should switch to the tasks tab")
	}
	if !m.Dirty() {
		t.Fatalf("import should make the store dirty")
	}
}

func TestYank(t *testing.T) {
	m, clip := newTestModel(t, sampleLists(), nil)
	m = press(m, runes("j"), runes("y"))
	if clip.text != "b" {
		t.Fatalf("expected b on the clipboard, got %q", clip.text)
	}
	if m.Status.IsError || m.Status.Text != "Yanked: b" {
		t.Fatalf("unexpected status %+v", m.Status)
	}

	clip.err = errors.New("no xclip")
	m, _ = command(m, "t yank")
	if !m.Status.IsError || m.Status.Text != "Clipboard Unavailable" {
		t.Fatalf("unexpected status %+v", m.Status)
	}

	empty, _ := newTestModel(t, nil, nil)
	empty = press(empty, runes("y"))
	if !empty.Status.IsError || empty.Status.Text != "No Task Selected" {
		t.Fatalf("unexpected status %+v", empty.Status)
	}
}

func TestOptionsTab(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	m = press(m, runes("N"), runes("d"), runes("+"))
	if !m.Config().DeleteOnCompletion {
		t.Fatalf("d should toggle delete on completion")
	}
	if m.Config().ErrorDisplaySeconds != config.DefaultErrorSeconds+1 {
		t.Fatalf("+ should lengthen the error display, got %d", m.Config().ErrorDisplaySeconds)
	}
	m = press(m, runes("-"), runes("-"), runes("-"), runes("-"))
	if m.Config().ErrorDisplaySeconds != 1 {
		t.Fatalf("display time should stop at 1, got %d", m.Config().ErrorDisplaySeconds)
	}

	m = press(m, runes("n"), runes("m"), runes("m"))
	tasks := m.Store().Lists()[0].Tasks
	if len(tasks) != 1 || tasks[0].Name != "b" {
		t.Fatalf("finishing a task should delete it with the option on, got %+v", tasks)
	}
}

// newLoadingModel builds a model that owns its store and loads path at
// startup, the way the binary runs.
func newLoadingModel(t *testing.T, path string) Model {
	t.Helper()
	cfg := config.Default("")
	cfg.DataFile = path
	m := NewModelWithConfig(cfg, Deps{Clock: quickdate.FixedClock(today), Clipboard: &fakeClipboard{}})
	if !m.Loading() || m.Init() == nil {
		t.Fatalf("model without a store should load at startup")
	}
	return m
}

func finishLoad(m Model) Model {
	next, _ := m.Update(m.Init()())
	return next.(Model)
}

func TestStartupLoad(t *testing.T) {
	dir := t.TempDir()

	m := finishLoad(newLoadingModel(t, filepath.Join(dir, "missing.json")))
	if m.Loading() || m.Status.Visible() || m.Store().Len() != 0 {
		t.Fatalf("missing data file should start empty and quiet, status %+v", m.Status)
	}

	saved := filepath.Join(dir, "list.json")
	if err := persist.SaveStore(context.Background(), store.New(sampleLists(), store.Options{}), saved); err != nil {
		t.Fatalf("seed: %v", err)
	}
	m = finishLoad(newLoadingModel(t, saved))
	if m.Store().Len() != 1 || m.Dirty() {
		t.Fatalf("startup load failed: lists=%d dirty=%v", m.Store().Len(), m.Dirty())
	}

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m = finishLoad(newLoadingModel(t, broken))
	if !m.Status.IsError || m.Status.Text != "Invalid File Format" {
		t.Fatalf("unexpected status %+v", m.Status)
	}
	if m.Store().Len() != 0 || m.Loading() {
		t.Fatalf("failed startup load should leave an empty, usable store")
	}
}

func TestInputWaitsForStartupLoad(t *testing.T) {
	saved := filepath.Join(t.TempDir(), "list.json")
	if err := persist.SaveStore(context.Background(), store.New(sampleLists(), store.Options{}), saved); err != nil {
		t.Fatalf("seed: %v", err)
	}
	m := newLoadingModel(t, saved)
	loaded := m.Init()()

	m = press(m, runes("a"))
	m = typeText(m, "early")
	m = press(m, keyType(tea.KeyEnter), runes("q"))
	if m.Popup() != nil || m.Mode != ModeRunning || m.Store().Len() != 0 {
		t.Fatalf("keys acted before the load landed: popup=%T mode=%s", m.Popup(), m.Mode)
	}
	if !strings.Contains(m.View(), "Loading") {
		t.Fatalf("bottom bar should show the pending load")
	}

	next, _ := m.Update(loaded)
	m = next.(Model)
	m = press(m, runes("a"))
	m = typeText(m, "late")
	m = press(m, keyType(tea.KeyEnter))
	tasks := m.Store().Lists()[0].Tasks
	if len(tasks) != 3 || tasks[2].Name != "late" {
		t.Fatalf("expected the new task after the loaded ones, got %+v", tasks)
	}

	next, _ = m.Update(loaded)
	m = next.(Model)
	if len(m.Store().Lists()[0].Tasks) != 3 || !m.Dirty() {
		t.Fatalf("a repeated load result replaced unsaved work")
	}

	pending := newLoadingModel(t, saved)
	next, cmd := pending.Update(keyType(tea.KeyCtrlC))
	if next.(Model).Mode != ModeExiting || !isQuit(cmd) {
		t.Fatalf("ctrl+c should exit while loading")
	}
}

func TestSuppliedStoreSkipsStartupLoad(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	if m.Loading() || m.Init() != nil {
		t.Fatalf("a supplied store should not be reloaded")
	}
}

func TestViewRendersTabsAndBars(t *testing.T) {
	m, _ := newTestModel(t, sampleLists(), nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = next.(Model)
	if m.Width != 120 || m.Height != 30 {
		t.Fatalf("window size not stored")
	}

	out := m.View()
	for _, want := range []string{"FrogPad", "Task Lists:", "work"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}

	m = press(m, runes(":"))
	m = typeText(m, "t save")
	if !strings.Contains(m.View(), ":t save") {
		t.Fatalf("command line not rendered")
	}

	m = press(m, keyType(tea.KeyEsc), runes("n"))
	if !strings.Contains(m.View(), "January 2024") {
		t.Fatalf("calendar should show the current month")
	}
	m = press(m, runes("n"))
	if !strings.Contains(m.View(), "Delete task on completion: N") {
		t.Fatalf("options not rendered")
	}
}
