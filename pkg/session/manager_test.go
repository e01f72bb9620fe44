package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/brainwave/pkg/errors"
	"github.com/matzehuels/brainwave/pkg/mindmap"
	"github.com/matzehuels/brainwave/pkg/store"
)

func TestManagerCreateGetDelete(t *testing.T) {
	m := NewManager(ManagerConfig{})
	defer m.Close()

	sess, err := m.Create("ideas", nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := m.Get(sess.ID)
	if err != nil || got != sess {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d", m.Len())
	}
	if err := m.Delete(sess.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Get(sess.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("Get after delete: %v", err)
	}
	if err := m.Delete(sess.ID); !errors.Is(err, errors.ErrCodeSessionNotFound) {
		t.Errorf("Delete twice: %v", err)
	}
	if _, err := m.Create("bad/name", nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Create(bad/name): %v", err)
	}
}

func TestManagerEvictsLeastRecentlyUsed(t *testing.T) {
	m := NewManager(ManagerConfig{MaxSessions: 2})
	a, _ := m.Create("a", nil)
	b, _ := m.Create("b", nil)
	a.touch(time.Now().Add(-time.Hour))
	b.touch(time.Now())

	c, _ := m.Create("c", nil)
	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}
	if _, err := m.Get(a.ID); err == nil {
		t.Error("least recently used session should be evicted")
	}
	for _, s := range []*Session{b, c} {
		if _, err := m.Get(s.ID); err != nil {
			t.Errorf("session %s evicted: %v", s.Name, err)
		}
	}
}

func TestManagerConcurrentAccess(t *testing.T) {
	m := NewManager(ManagerConfig{})
	defer m.Close()
	sess, _ := m.Create("shared", nil)
	sess.touch(time.Now().Add(-time.Hour))
	before := sess.LastAccess()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := m.Get(sess.ID); err != nil {
				t.Error(err)
			}
		}()
		go func() {
			defer wg.Done()
			_ = sess.Info()
			_ = m.List()
		}()
	}
	wg.Wait()

	if !sess.Info().LastAccess.After(before) {
		t.Error("Get should refresh the last access time")
	}
}

func TestManagerCleanup(t *testing.T) {
	m := NewManager(ManagerConfig{TTL: time.Minute})
	old, _ := m.Create("old", nil)
	fresh, _ := m.Create("fresh", nil)
	old.touch(time.Now().Add(-2 * time.Minute))

	if n := m.Cleanup(); n != 1 {
		t.Errorf("Cleanup removed %d, want 1", n)
	}
	if _, err := m.Get(fresh.ID); err != nil {
		t.Error("fresh session removed")
	}

	stop := m.StartCleanup(time.Millisecond)
	stop()
	stop()
}

func TestManagerPersists(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	m := NewManager(ManagerConfig{Store: st, Debounce: time.Hour})

	sess, err := m.Open(ctx, "ideas")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := sess.AddChild(mindmap.RootID, mindmap.Fields{Title: "Saved"}); err != nil {
		t.Fatal(err)
	}
	sess.PanBy(12, 0)
	if err := m.Flush(ctx); err != nil {
		t.Fatal(err)
	}

	data, err := st.Load(ctx, "ideas")
	if err != nil || data == nil {
		t.Fatalf("Load = %v, %v", data, err)
	}
	if len(data.Nodes) != 2 || data.Nodes[1].Title != "Saved" {
		t.Errorf("persisted nodes = %+v", data.Nodes)
	}
	if data.View == nil || data.View.PanX != 12 {
		t.Errorf("persisted view = %+v", data.View)
	}

	reopened, err := m.Open(ctx, "ideas")
	if err != nil {
		t.Fatal(err)
	}
	if reopened.ID == sess.ID {
		t.Error("reopen should create a new session")
	}
	if reopened.Document().Len() != 2 || reopened.View().Pan.X != 12 {
		t.Errorf("reopened document = %d nodes, view %+v", reopened.Document().Len(), reopened.View())
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestManagerCreateWithData(t *testing.T) {
	m := NewManager(ManagerConfig{})
	data := mindmap.Data{Nodes: []mindmap.Node{{ID: "root", Title: "Given"}}}
	sess, err := m.Create("given", &data)
	if err != nil {
		t.Fatal(err)
	}
	if got := sess.Document().Root().Title; got != "Given" {
		t.Errorf("root title = %q", got)
	}
	list := m.List()
	if len(list) != 1 || list[0].Name != "given" || list[0].Nodes != 1 {
		t.Errorf("List = %+v", list)
	}
}
