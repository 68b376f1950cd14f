package client

import "testing"

type item struct {
	ID   string
	Name string
}

func newItemCollection() *Collection[item] {
	return NewCollection(func(i item) string { return i.ID })
}

func ids(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func sameIDs(a, b []string) bool {
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

func TestCollectionLifecycle(t *testing.T) {
	c := newItemCollection()

	status, items, errMsg := c.Snapshot()
	if status != StatusIdle || len(items) != 0 || errMsg != "" {
		t.Fatalf("fresh collection should be idle and empty, got %s %v %q", status, items, errMsg)
	}

	c.Begin()
	if status, _, _ := c.Snapshot(); status != StatusLoading {
		t.Fatalf("expected loading, got %s", status)
	}

	c.Replace([]item{{ID: "1"}})
	if status, items, _ := c.Snapshot(); status != StatusSucceeded || len(items) != 1 {
		t.Fatalf("expected succeeded with one item, got %s %v", status, items)
	}
}

func TestCollectionFailKeepsStaleItems(t *testing.T) {
	c := newItemCollection()
	c.Replace([]item{{ID: "1"}, {ID: "2"}})

	c.Begin()
	c.Fail("server error")

	status, items, errMsg := c.Snapshot()
	if status != StatusFailed || errMsg != "server error" {
		t.Fatalf("expected failed state, got %s %q", status, errMsg)
	}
	if !sameIDs(ids(items), []string{"1", "2"}) {
		t.Fatalf("failure must keep previously loaded items, got %v", ids(items))
	}
}

func TestCollectionMutationOrdering(t *testing.T) {
	c := newItemCollection()
	c.Replace([]item{{ID: "2", Name: "second"}, {ID: "3", Name: "third"}})

	c.Prepend(item{ID: "1", Name: "first"})
	_, items, _ := c.Snapshot()
	if !sameIDs(ids(items), []string{"1", "2", "3"}) {
		t.Fatalf("create must land at the head, got %v", ids(items))
	}

	c.ReplaceByID(item{ID: "2", Name: "renamed"})
	_, items, _ = c.Snapshot()
	if !sameIDs(ids(items), []string{"1", "2", "3"}) {
		t.Fatalf("update must keep position, got %v", ids(items))
	}
	if items[1].Name != "renamed" {
		t.Fatalf("update must replace the matching item, got %+v", items[1])
	}

	c.ReplaceByID(item{ID: "missing", Name: "ghost"})
	_, items, _ = c.Snapshot()
	if !sameIDs(ids(items), []string{"1", "2", "3"}) {
		t.Fatalf("unknown ID must leave the list untouched, got %v", ids(items))
	}

	c.RemoveByID("2")
	_, items, _ = c.Snapshot()
	if !sameIDs(ids(items), []string{"1", "3"}) {
		t.Fatalf("delete must filter by ID, got %v", ids(items))
	}

	c.RemoveByID("missing")
	_, items, _ = c.Snapshot()
	if !sameIDs(ids(items), []string{"1", "3"}) {
		t.Fatalf("removing an unknown ID must be a no-op, got %v", ids(items))
	}
}

func TestCollectionReplaceDiscardsHeldItems(t *testing.T) {
	c := newItemCollection()
	c.Prepend(item{ID: "local"})

	c.Replace([]item{{ID: "a"}, {ID: "b"}})
	_, items, _ := c.Snapshot()
	if !sameIDs(ids(items), []string{"a", "b"}) {
		t.Fatalf("fetch must replace the whole list, got %v", ids(items))
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := NewSession()
	if status, _ := s.Snapshot(); status != StatusIdle {
		t.Fatalf("fresh session should be idle, got %s", status)
	}
	if s.Token() != "" || s.User() != nil {
		t.Fatal("fresh session must hold no credentials")
	}

	s.Begin()
	s.Establish(User{ID: "user-1", Name: "Alice"}, "token-abc")

	if status, _ := s.Snapshot(); status != StatusSucceeded {
		t.Fatalf("expected succeeded, got %s", status)
	}
	if s.Token() != "token-abc" {
		t.Fatalf("unexpected token %q", s.Token())
	}
	if u := s.User(); u == nil || u.ID != "user-1" {
		t.Fatalf("unexpected user %+v", u)
	}

	s.Begin()
	s.Fail("invalid credentials")
	if status, errMsg := s.Snapshot(); status != StatusFailed || errMsg != "invalid credentials" {
		t.Fatalf("expected failed state, got %s %q", status, errMsg)
	}
	if s.Token() != "token-abc" {
		t.Fatal("failure must keep the previous session intact")
	}

	s.Clear()
	if status, _ := s.Snapshot(); status != StatusIdle {
		t.Fatalf("expected idle after clear, got %s", status)
	}
	if s.Token() != "" || s.User() != nil {
		t.Fatal("clear must drop credentials")
	}
}
