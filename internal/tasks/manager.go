package tasks

import (
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// KV is the persistence service holding the serialized task list.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

type editSession struct {
	id    int64
	draft string
}

// Manager is the only mutator of the task list. Every mutating method
// writes the whole list to its slot before the change becomes visible in
// memory, so the two never diverge.
type Manager struct {
	kv     KV
	key    string
	logger *log.Logger
	now    func() time.Time

	tasks  []Task
	filter Filter
	edit   *editSession
	lastID int64
}

func NewManager(kv KV, key string, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Manager{
		kv:     kv,
		key:    key,
		logger: logger,
		now:    time.Now,
		filter: FilterAll,
	}
}

// Load hydrates the list from the slot. A missing or unreadable payload
// yields an empty list; only a failing storage read is returned.
func (m *Manager) Load() error {
	m.tasks = nil
	m.edit = nil
	m.lastID = 0

	data, ok, err := m.kv.Get(m.key)
	if err != nil {
		return fmt.Errorf("read slot %q: %w", m.key, err)
	}
	if !ok {
		m.logger.Debug("slot empty", "key", m.key)
		return nil
	}

	var loaded []Task
	if err := json.Unmarshal(data, &loaded); err != nil {
		m.logger.Warn("ignoring malformed slot", "key", m.key, "err", err)
		return nil
	}

	seen := make(map[int64]struct{}, len(loaded))
	for _, t := range loaded {
		if strings.TrimSpace(t.Text) == "" {
			m.logger.Warn("dropping task with empty text", "id", t.ID)
			continue
		}
		if _, dup := seen[t.ID]; dup {
			m.logger.Warn("dropping task with duplicate id", "id", t.ID)
			continue
		}
		seen[t.ID] = struct{}{}
		m.tasks = append(m.tasks, t)
		m.lastID = max(m.lastID, t.ID)
	}
	m.logger.Debug("loaded tasks", "key", m.key, "count", len(m.tasks))
	return nil
}

// AddTask appends a task with the trimmed text. It reports false without
// touching the slot when the text is blank.
func (m *Manager) AddTask(raw string) (Task, bool, error) {
	text := cleanText(raw)
	if text == "" {
		return Task{}, false, nil
	}
	t := Task{ID: m.nextID(), Text: text}
	next := append(slices.Clone(m.tasks), t)
	if err := m.commit(next); err != nil {
		return Task{}, false, err
	}
	m.lastID = t.ID
	m.logger.Debug("added task", "id", t.ID)
	return t, true, nil
}

func (m *Manager) ToggleCompletion(id int64) (bool, error) {
	i := m.index(id)
	if i < 0 {
		return false, nil
	}
	next := slices.Clone(m.tasks)
	next[i].Completed = !next[i].Completed
	if err := m.commit(next); err != nil {
		return false, err
	}
	m.logger.Debug("toggled task", "id", id, "completed", next[i].Completed)
	return true, nil
}

// BeginEdit opens an edit session, replacing any session already open.
func (m *Manager) BeginEdit(id int64, currentText string) {
	m.edit = &editSession{id: id, draft: currentText}
}

// SetEditDraft updates the draft buffer of the open session.
func (m *Manager) SetEditDraft(text string) {
	if m.edit != nil {
		m.edit.draft = text
	}
}

func (m *Manager) Editing() (id int64, draft string, ok bool) {
	if m.edit == nil {
		return 0, "", false
	}
	return m.edit.id, m.edit.draft, true
}

// CommitEdit writes the trimmed draft to the target task. A blank draft
// keeps the session open; a vanished target closes it without writing.
func (m *Manager) CommitEdit() (bool, error) {
	if m.edit == nil {
		return false, nil
	}
	text := cleanText(m.edit.draft)
	if text == "" {
		return false, nil
	}
	i := m.index(m.edit.id)
	if i < 0 {
		m.edit = nil
		return false, nil
	}
	next := slices.Clone(m.tasks)
	next[i].Text = text
	if err := m.commit(next); err != nil {
		return false, err
	}
	m.logger.Debug("edited task", "id", next[i].ID)
	m.edit = nil
	return true, nil
}

func (m *Manager) CancelEdit() {
	m.edit = nil
}

// DeleteTask removes the task and closes an edit session aimed at it.
func (m *Manager) DeleteTask(id int64) (bool, error) {
	i := m.index(id)
	if i < 0 {
		return false, nil
	}
	next := slices.Delete(slices.Clone(m.tasks), i, i+1)
	if err := m.commit(next); err != nil {
		return false, err
	}
	if m.edit != nil && m.edit.id == id {
		m.edit = nil
	}
	m.logger.Debug("deleted task", "id", id)
	return true, nil
}

// Reset empties the list and removes its slot. Ids issued so far are
// not reused.
func (m *Manager) Reset() error {
	if err := m.kv.Delete(m.key); err != nil {
		m.logger.Error("reset failed", "key", m.key, "err", err)
		return fmt.Errorf("delete slot %q: %w", m.key, err)
	}
	m.tasks = nil
	m.edit = nil
	m.logger.Info("reset tasks", "key", m.key)
	return nil
}

func (m *Manager) SetFilter(f Filter) {
	m.filter = f
}

func (m *Manager) Filter() Filter {
	return m.filter
}

// VisibleTasks yields the tasks matching the current filter in stored
// order. The filter is read when iteration starts.
func (m *Manager) VisibleTasks() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		f := m.filter
		for _, t := range m.tasks {
			if !f.Match(t) {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Tasks returns a copy of the full list.
func (m *Manager) Tasks() []Task {
	return slices.Clone(m.tasks)
}

func (m *Manager) Find(id int64) (Task, bool) {
	i := m.index(id)
	if i < 0 {
		return Task{}, false
	}
	return m.tasks[i], true
}

func (m *Manager) Counts() (total, completed int) {
	for _, t := range m.tasks {
		if t.Completed {
			completed++
		}
	}
	return len(m.tasks), completed
}

// cleanText trims the text and replaces invalid UTF-8 the same way the
// JSON encoder would, so memory matches the slot byte for byte.
func cleanText(raw string) string {
	return strings.ToValidUTF8(strings.TrimSpace(raw), "\uFFFD")
}

func (m *Manager) index(id int64) int {
	return slices.IndexFunc(m.tasks, func(t Task) bool { return t.ID == id })
}

// nextID derives an id from the wall clock, bumped past the last one
// issued so rapid adds never collide.
func (m *Manager) nextID() int64 {
	id := m.now().UnixMilli()
	if id <= m.lastID {
		id = m.lastID + 1
	}
	return id
}

func (m *Manager) commit(next []Task) error {
	if next == nil {
		next = []Task{}
	}
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := m.kv.Put(m.key, data); err != nil {
		m.logger.Error("persist failed", "key", m.key, "err", err)
		return fmt.Errorf("write slot %q: %w", m.key, err)
	}
	m.tasks = next
	return nil
}
