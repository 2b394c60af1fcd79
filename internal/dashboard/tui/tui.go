// Package tui provides the terminal dashboard.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"nexttodo/internal/dashboard"
	"nexttodo/internal/models"
)

// Run starts the dashboard against the given API base URL and blocks
// until the user quits.
func Run(ctx context.Context, baseURL string) error {
	client := dashboard.NewClient(baseURL, dashboard.DefaultTimeout)
	program := tea.NewProgram(newModel(client), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type screen int

const (
	screenLogin screen = iota
	screenDashboard
)

type loginField int

const (
	fieldUsername loginField = iota
	fieldPassword
)

type formField int

const (
	fieldTask formField = iota
	fieldDueDate
	fieldPriority
)

var priorities = []string{
	models.PriorityLow,
	models.PriorityMedium,
	models.PriorityHigh,
}

// form holds the create form or a row's edit form. editID is zero for
// the create form; ids are store-assigned and never zero.
type form struct {
	task     string
	dueDate  string
	priority int
	focus    formField
}

type model struct {
	client *dashboard.Client
	state  dashboard.State
	screen screen

	// login screen
	username   string
	password   string
	loginFocus loginField
	loggingIn  bool
	loginErr   string

	// dashboard screen
	cursor   int
	creating bool
	createF  form
	editID   int64
	editF    form
	loading  bool
	saving   bool
	userID   int64
}

type loginDoneMsg struct {
	userID int64
	err    error
}

type todosLoadedMsg struct {
	todos []dashboard.Todo
	err   error
}

type todoCreatedMsg struct {
	todo *dashboard.Todo
	err  error
}

type todoUpdatedMsg struct {
	todo *dashboard.Todo
	err  error
}

type todoDeletedMsg struct {
	id  int64
	err error
}

func newModel(client *dashboard.Client) *model {
	return &model{
		client: client,
		state:  dashboard.NewState(),
		screen: screenLogin,
		createF: form{
			priority: 1, // Medium, the form default
		},
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.screen == screenLogin {
			return m.updateLogin(msg)
		}
		return m.updateDashboard(msg)

	case loginDoneMsg:
		m.loggingIn = false
		if msg.err != nil {
			m.loginErr = errText(msg.err)
			return m, nil
		}
		m.userID = msg.userID
		m.screen = screenDashboard
		m.loading = true
		return m, m.loadTodosCmd()

	case todosLoadedMsg:
		m.loading = false
		if msg.err != nil {
			// The collection stays empty; the failure is surfaced.
			m.state = m.state.WithError(errText(msg.err))
			return m, nil
		}
		m.state = m.state.WithTodos(msg.todos)
		return m, nil

	case todoCreatedMsg:
		m.saving = false
		if msg.err != nil {
			m.state = m.state.WithError(errText(msg.err))
			return m, nil
		}
		// Clear the form only after server confirmation.
		m.state = m.state.WithCreated(*msg.todo)
		m.creating = false
		m.createF = form{priority: 1}
		return m, nil

	case todoUpdatedMsg:
		m.saving = false
		if msg.err != nil {
			m.state = m.state.WithError(errText(msg.err))
			return m, nil
		}
		m.state = m.state.WithUpdated(*msg.todo)
		m.editID = 0
		return m, nil

	case todoDeletedMsg:
		if msg.err != nil {
			m.state = m.state.ClearDeleting(msg.id).WithError(errText(msg.err))
			return m, nil
		}
		m.state = m.state.WithDeleted(msg.id)
		m.clampCursor()
		return m, nil
	}

	return m, nil
}

func (m *model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loggingIn {
		return m, nil
	}

	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		if m.loginFocus == fieldUsername {
			m.loginFocus = fieldPassword
		} else {
			m.loginFocus = fieldUsername
		}
	case "enter":
		if m.username == "" || m.password == "" {
			m.loginErr = "Username and password are required"
			return m, nil
		}
		m.loggingIn = true
		m.loginErr = ""
		return m, m.loginCmd()
	case "backspace":
		if m.loginFocus == fieldUsername {
			m.username = trimLastRune(m.username)
		} else {
			m.password = trimLastRune(m.password)
		}
	default:
		if len(msg.Runes) > 0 {
			if m.loginFocus == fieldUsername {
				m.username += string(msg.Runes)
			} else {
				m.password += string(msg.Runes)
			}
		}
	}
	return m, nil
}

func (m *model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.creating {
		return m.updateForm(msg, &m.createF)
	}
	if m.editID != 0 {
		return m.updateForm(msg, &m.editF)
	}

	todos := m.state.Todos()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(todos)-1 {
			m.cursor++
		}
	case "r", "f5":
		m.loading = true
		return m, m.loadTodosCmd()
	case "n":
		m.creating = true
		m.createF = form{priority: 1}
	case "e":
		if m.cursor < len(todos) {
			todo := todos[m.cursor]
			m.editID = todo.ID
			m.editF = form{
				task:     todo.Task,
				dueDate:  todo.DueDate.Format("2006-01-02"),
				priority: priorityIndex(todo.Priority),
			}
		}
	case "d":
		if m.cursor < len(todos) {
			id := todos[m.cursor].ID
			if m.state.IsDeleting(id) {
				return m, nil
			}
			m.state = m.state.MarkDeleting(id)
			return m, m.deleteTodoCmd(id)
		}
	}
	return m, nil
}

func (m *model) updateForm(msg tea.KeyMsg, f *form) (tea.Model, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.creating = false
		m.editID = 0
	case "tab", "down":
		f.focus = (f.focus + 1) % 3
	case "shift+tab", "up":
		f.focus = (f.focus + 2) % 3
	case "left":
		if f.focus == fieldPriority && f.priority > 0 {
			f.priority--
		}
	case "right":
		if f.focus == fieldPriority && f.priority < len(priorities)-1 {
			f.priority++
		}
	case "enter":
		if f.task == "" || f.dueDate == "" {
			m.state = m.state.WithError("All fields are required")
			return m, nil
		}
		m.saving = true
		if m.creating {
			return m, m.createTodoCmd(*f)
		}
		return m, m.updateTodoCmd(m.editID, *f)
	case "backspace":
		switch f.focus {
		case fieldTask:
			f.task = trimLastRune(f.task)
		case fieldDueDate:
			f.dueDate = trimLastRune(f.dueDate)
		}
	default:
		if len(msg.Runes) == 0 {
			return m, nil
		}
		switch f.focus {
		case fieldTask:
			f.task += string(msg.Runes)
		case fieldDueDate:
			f.dueDate += string(msg.Runes)
		}
	}
	return m, nil
}

func (m *model) View() string {
	if m.screen == screenLogin {
		return m.viewLogin()
	}
	return m.viewDashboard()
}

func (m *model) viewLogin() string {
	var b strings.Builder
	writeTitle(&b, "Sign In")

	b.WriteString(formatField("Username", m.username, m.loginFocus == fieldUsername))
	b.WriteString(formatField("Password", strings.Repeat("*", len(m.password)), m.loginFocus == fieldPassword))
	b.WriteString("\n")

	if m.loggingIn {
		b.WriteString("Signing in...\n")
	} else {
		b.WriteString("Press enter to sign in | tab to switch fields | ctrl+c to quit\n")
	}
	if m.loginErr != "" {
		b.WriteString("\nError: " + m.loginErr + "\n")
	}
	return b.String()
}

func (m *model) viewDashboard() string {
	var b strings.Builder
	writeTitle(&b, "ToDo Dashboard")

	if m.creating {
		m.writeForm(&b, "Add a New ToDo", m.createF)
		return b.String()
	}
	if m.editID != 0 {
		m.writeForm(&b, fmt.Sprintf("Edit ToDo #%d", m.editID), m.editF)
		return b.String()
	}

	if m.loading {
		b.WriteString("Loading todos...\n")
		return b.String()
	}

	todos := m.state.Todos()
	if len(todos) == 0 {
		b.WriteString("No todos yet. Press n to add one.\n")
	}
	for i, todo := range todos {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		marker := ""
		if m.state.IsDeleting(todo.ID) {
			marker = " (deleting...)"
		}
		b.WriteString(fmt.Sprintf("%s[%d] %-8s due %s  %s%s\n",
			cursor,
			todo.ID,
			todo.Priority,
			todo.DueDate.Format("2006-01-02"),
			todo.Task,
			marker,
		))
	}

	b.WriteString("\nn new | e edit | d delete | r refresh | q quit\n")
	if errMsg := m.state.Err(); errMsg != "" {
		b.WriteString("\nError: " + errMsg + "\n")
	}
	return b.String()
}

func (m *model) writeForm(b *strings.Builder, title string, f form) {
	b.WriteString(title + "\n\n")
	b.WriteString(formatField("Task", f.task, f.focus == fieldTask))
	b.WriteString(formatField("Due Date (YYYY-MM-DD)", f.dueDate, f.focus == fieldDueDate))
	b.WriteString(formatField("Priority (left/right)", priorities[f.priority], f.focus == fieldPriority))
	b.WriteString("\n")

	if m.saving {
		b.WriteString("Saving...\n")
	} else {
		b.WriteString("Press enter to save | esc to cancel\n")
	}
	if errMsg := m.state.Err(); errMsg != "" {
		b.WriteString("\nError: " + errMsg + "\n")
	}
}

func (m *model) loginCmd() tea.Cmd {
	username, password := m.username, m.password
	return func() tea.Msg {
		userID, err := m.client.Login(context.Background(), username, password, true)
		return loginDoneMsg{userID: userID, err: err}
	}
}

func (m *model) loadTodosCmd() tea.Cmd {
	return func() tea.Msg {
		todos, err := m.client.ListTodos(context.Background())
		return todosLoadedMsg{todos: todos, err: err}
	}
}

func (m *model) createTodoCmd(f form) tea.Cmd {
	userID := m.userID
	return func() tea.Msg {
		todo, err := m.client.CreateTodo(context.Background(), dashboard.NewTodo{
			Task:     f.task,
			DueDate:  f.dueDate,
			Priority: priorities[f.priority],
			UserID:   userID,
		})
		return todoCreatedMsg{todo: todo, err: err}
	}
}

func (m *model) updateTodoCmd(id int64, f form) tea.Cmd {
	return func() tea.Msg {
		todo, err := m.client.UpdateTodo(context.Background(), id, dashboard.TodoUpdate{
			Task:     f.task,
			DueDate:  f.dueDate,
			Priority: priorities[f.priority],
		})
		return todoUpdatedMsg{todo: todo, err: err}
	}
}

func (m *model) deleteTodoCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		_, err := m.client.DeleteTodo(context.Background(), id)
		return todoDeletedMsg{id: id, err: err}
	}
}

func (m *model) clampCursor() {
	if n := len(m.state.Todos()); m.cursor >= n && n > 0 {
		m.cursor = n - 1
	} else if n == 0 {
		m.cursor = 0
	}
}

func writeTitle(b *strings.Builder, title string) {
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func formatField(label, value string, focused bool) string {
	marker := "  "
	if focused {
		marker = "> "
	}
	return fmt.Sprintf("%s%s: %s\n", marker, label, value)
}

func priorityIndex(priority string) int {
	for i, p := range priorities {
		if p == priority {
			return i
		}
	}
	return 1
}

func trimLastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[:len(runes)-1])
}

func errText(err error) string {
	var apiErr *dashboard.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
