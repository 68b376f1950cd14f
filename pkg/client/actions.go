package client

import "context"

// Store couples the API client with the session and collection state,
// applying the lifecycle transitions for each asynchronous call.
type Store struct {
	api      *Client
	Auth     *Session
	Tasks    *Collection[Task]
	Messages *Collection[Message]
}

// NewStore builds a store around an API client.
func NewStore(api *Client) *Store {
	return &Store{
		api:      api,
		Auth:     NewSession(),
		Tasks:    NewCollection(func(t Task) string { return t.ID }),
		Messages: NewCollection(func(m Message) string { return m.ID }),
	}
}

// Login authenticates and establishes the session.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.Auth.Begin()
	res, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.Auth.Fail(err.Error())
		return err
	}
	s.Auth.Establish(res.User, res.Token)
	return nil
}

// Register creates an account and establishes the session.
func (s *Store) Register(ctx context.Context, name, email, password string) error {
	s.Auth.Begin()
	res, err := s.api.Register(ctx, name, email, password)
	if err != nil {
		s.Auth.Fail(err.Error())
		return err
	}
	s.Auth.Establish(res.User, res.Token)
	return nil
}

// Logout clears the session and held collections.
func (s *Store) Logout() {
	s.Auth.Clear()
	s.Tasks.Replace(nil)
	s.Messages.Replace(nil)
}

// FetchTasks replaces the task collection with the server's list.
func (s *Store) FetchTasks(ctx context.Context) error {
	s.Tasks.Begin()
	tasks, err := s.api.ListTasks(ctx, s.Auth.Token())
	if err != nil {
		s.Tasks.Fail(err.Error())
		return err
	}
	s.Tasks.Replace(tasks)
	return nil
}

// CreateTask creates a task and prepends it to the collection.
func (s *Store) CreateTask(ctx context.Context, input TaskInput) (*Task, error) {
	task, err := s.api.CreateTask(ctx, s.Auth.Token(), input)
	if err != nil {
		s.Tasks.Fail(err.Error())
		return nil, err
	}
	s.Tasks.Prepend(*task)
	return task, nil
}

// UpdateTask applies a partial update and replaces the held task in place.
func (s *Store) UpdateTask(ctx context.Context, id string, input TaskInput) (*Task, error) {
	task, err := s.api.UpdateTask(ctx, s.Auth.Token(), id, input)
	if err != nil {
		s.Tasks.Fail(err.Error())
		return nil, err
	}
	s.Tasks.ReplaceByID(*task)
	return task, nil
}

// DeleteTask removes a task server-side and filters it from the collection.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	if err := s.api.DeleteTask(ctx, s.Auth.Token(), id); err != nil {
		s.Tasks.Fail(err.Error())
		return err
	}
	s.Tasks.RemoveByID(id)
	return nil
}

// FetchMessages replaces the message collection with the server's list.
func (s *Store) FetchMessages(ctx context.Context) error {
	s.Messages.Begin()
	messages, err := s.api.ListMessages(ctx, s.Auth.Token())
	if err != nil {
		s.Messages.Fail(err.Error())
		return err
	}
	s.Messages.Replace(messages)
	return nil
}

// SendMessage persists a message and prepends it to the collection. Relay
// notification is a separate concern; callers emit the socket event
// themselves.
func (s *Store) SendMessage(ctx context.Context, receiverID, content string) (*Message, error) {
	msg, err := s.api.SendMessage(ctx, s.Auth.Token(), receiverID, content)
	if err != nil {
		s.Messages.Fail(err.Error())
		return nil, err
	}
	s.Messages.Prepend(*msg)
	return msg, nil
}

// DeleteMessage removes a message server-side and filters it from the
// collection.
func (s *Store) DeleteMessage(ctx context.Context, id string) error {
	if err := s.api.DeleteMessage(ctx, s.Auth.Token(), id); err != nil {
		s.Messages.Fail(err.Error())
		return err
	}
	s.Messages.RemoveByID(id)
	return nil
}
