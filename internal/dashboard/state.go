package dashboard

// State is an immutable snapshot of the dashboard's view of the todo
// collection. Every method returns a new State; nothing is mutated in
// place, so a view can hold a snapshot across an in-flight request
// without it changing underneath.
//
// Exactly one error message exists at a time. Any later action's
// success or failure supersedes it.
type State struct {
	todos    []Todo
	deleting map[int64]struct{}
	errMsg   string
}

func NewState() State {
	return State{}
}

// Todos returns the snapshot's records. Callers must not mutate the
// returned slice.
func (s State) Todos() []Todo {
	return s.todos
}

func (s State) Err() string {
	return s.errMsg
}

// IsDeleting reports whether a delete request is in flight for the
// given record.
func (s State) IsDeleting(id int64) bool {
	_, ok := s.deleting[id]
	return ok
}

// WithTodos replaces the collection wholesale, as after the initial
// load. Pending-delete markers and any error are discarded.
func (s State) WithTodos(todos []Todo) State {
	return State{todos: copyTodos(todos)}
}

// WithCreated appends a server-confirmed record and clears the error.
func (s State) WithCreated(todo Todo) State {
	next := s.clone()
	next.todos = append(next.todos, todo)
	next.errMsg = ""
	return next
}

// WithUpdated replaces the record with a matching id by value,
// leaving every other record untouched, and clears the error. A
// record the snapshot has never seen is ignored.
func (s State) WithUpdated(todo Todo) State {
	next := s.clone()
	for i := range next.todos {
		if next.todos[i].ID == todo.ID {
			next.todos[i] = todo
			break
		}
	}
	next.errMsg = ""
	return next
}

// WithDeleted removes the record, drops its pending-delete marker and
// clears the error.
func (s State) WithDeleted(id int64) State {
	next := s.clearDeleting(id)
	todos := next.todos[:0:0]
	for _, todo := range next.todos {
		if todo.ID != id {
			todos = append(todos, todo)
		}
	}
	next.todos = todos
	next.errMsg = ""
	return next
}

// MarkDeleting flags a record as pending-delete before the request
// resolves, so the view can show a per-row indicator.
func (s State) MarkDeleting(id int64) State {
	next := s.clone()
	if next.deleting == nil {
		next.deleting = make(map[int64]struct{})
	}
	next.deleting[id] = struct{}{}
	return next
}

// ClearDeleting drops the pending-delete flag after a failed delete,
// leaving the record visible.
func (s State) ClearDeleting(id int64) State {
	return s.clearDeleting(id)
}

// WithError replaces the single error slot.
func (s State) WithError(msg string) State {
	next := s.clone()
	next.errMsg = msg
	return next
}

func (s State) clearDeleting(id int64) State {
	next := s.clone()
	delete(next.deleting, id)
	if len(next.deleting) == 0 {
		next.deleting = nil
	}
	return next
}

func (s State) clone() State {
	next := State{
		todos:  copyTodos(s.todos),
		errMsg: s.errMsg,
	}
	if len(s.deleting) > 0 {
		next.deleting = make(map[int64]struct{}, len(s.deleting))
		for id := range s.deleting {
			next.deleting[id] = struct{}{}
		}
	}
	return next
}

func copyTodos(todos []Todo) []Todo {
	if len(todos) == 0 {
		return nil
	}
	out := make([]Todo, len(todos))
	copy(out, todos)
	return out
}
