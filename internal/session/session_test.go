package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/weldyapp/weldy/internal/engine"
	"github.com/weldyapp/weldy/internal/params"
)

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	rec, err := store.Create(ctx, engine.Session{Position: engine.Restart(engine.NodeSetup)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Session.ID == "" {
		t.Fatal("Create should assign an id")
	}

	p := params.Default()
	s := rec.Session
	s.Parameters = &p
	s.Position = engine.Advance(s.Position, "defects")
	if _, err := store.Update(ctx, s); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.Get(ctx, s.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(s, got.Session, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("stored session mismatch (-want +got):\n%s", diff)
	}

	// Mutating the returned copy must not leak into the store.
	got.Session.Parameters.Voltage = 99
	again, _ := store.Get(ctx, s.ID)
	if again.Session.Parameters.Voltage != 18 {
		t.Error("store returned an aliased session")
	}

	list, _ := store.List(ctx)
	if len(list) != 1 {
		t.Errorf("List = %d records, want 1", len(list))
	}

	if err := store.Delete(ctx, s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete err = %v, want ErrNotFound", err)
	}
	if _, err := store.Update(ctx, s); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update after delete err = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, s.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete twice err = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if _, err := store.Create(ctx, engine.Session{ID: "fixed"}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Create(ctx, engine.Session{ID: "fixed"}); err == nil {
		t.Error("expected duplicate id error")
	}
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := store.Create(ctx, engine.Session{})
			if err != nil {
				t.Error(err)
				return
			}
			if _, err := store.Get(ctx, rec.Session.ID); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	list, _ := store.List(ctx)
	if len(list) != 20 {
		t.Errorf("List = %d, want 20", len(list))
	}
}

func TestMemoryStoreModifySerializesActions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	p := params.Default()
	rec, err := store.Create(ctx, engine.Session{Parameters: &p})
	if err != nil {
		t.Fatal(err)
	}
	id := rec.Session.ID

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Modify(ctx, id, func(s engine.Session) (engine.Session, error) {
				next := s.Parameters.ToggleTried(fmt.Sprintf("item_%d", i))
				s.Parameters = &next
				return s, nil
			})
			if err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Session.Parameters.TriedIDs()) != n {
		t.Errorf("tried = %d entries, want %d", len(got.Session.Parameters.TriedIDs()), n)
	}
}

func TestMemoryStoreModifyKeepsSessionOnError(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	rec, err := store.Create(ctx, engine.Session{Position: engine.Restart(engine.NodeSetup)})
	if err != nil {
		t.Fatal(err)
	}

	boom := errors.New("boom")
	_, err = store.Modify(ctx, rec.Session.ID, func(s engine.Session) (engine.Session, error) {
		s.Position = engine.Advance(s.Position, "defects")
		return s, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Modify error = %v, want %v", err, boom)
	}
	got, _ := store.Get(ctx, rec.Session.ID)
	if got.Session.Current != engine.NodeSetup {
		t.Errorf("current = %q, want session unchanged", got.Session.Current)
	}

	if _, err := store.Modify(ctx, "missing", func(s engine.Session) (engine.Session, error) { return s, nil }); !errors.Is(err, ErrNotFound) {
		t.Errorf("Modify(missing) error = %v, want ErrNotFound", err)
	}
}

func TestURLStateRoundTrip(t *testing.T) {
	p := params.New("3/16", 20, 250).MarkTried("voltage", "clean_surface_thoroughly")
	s := engine.Session{
		Position:            engine.Position{History: []string{"setup", "defects"}, Current: "defects/porosity"},
		Parameters:          &p,
		RecommendationIndex: 1,
	}

	q := Encode(s).Encode()
	v, err := url.ParseQuery(q)
	if err != nil {
		t.Fatal(err)
	}
	got := Decode(v)
	if diff := cmp.Diff(s, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
	if v.Get(QueryTried) != "clean_surface_thoroughly,voltage" {
		t.Errorf("tried = %q", v.Get(QueryTried))
	}
}

func TestDecodeDefaults(t *testing.T) {
	s := Decode(url.Values{})
	if s.Current != engine.NodeSetup || s.Parameters != nil {
		t.Errorf("empty query = %+v, want setup without settings", s)
	}

	s = Decode(url.Values{QueryVoltage: {"abc"}, QueryNode: {"defects"}})
	if s.Parameters == nil {
		t.Fatal("voltage present should create settings")
	}
	want := params.Default()
	if diff := cmp.Diff(want, *s.Parameters, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("malformed values should fall back to defaults:\n%s", diff)
	}
}

func TestEncodeOmitsMissingSettings(t *testing.T) {
	v := Encode(engine.Session{Position: engine.Restart(engine.NodeSetup)})
	if v.Has(QueryVoltage) || v.Has(QueryTried) || v.Has(QueryIndex) {
		t.Errorf("unexpected keys in %v", v)
	}
}
