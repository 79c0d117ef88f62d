//go:build unit

package togglelist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strconv"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
)

// mapSession is an in-memory Session for a single visitor.
type mapSession struct {
	values map[string]interface{}
	puts   int
}

var _ Session = (*mapSession)(nil)
var _ Session = (*scs.SessionManager)(nil)

func newMapSession() *mapSession {
	return &mapSession{values: make(map[string]interface{})}
}

func (m *mapSession) Get(ctx context.Context, key string) interface{} { return m.values[key] }
func (m *mapSession) Put(ctx context.Context, key string, val interface{}) {
	m.puts++
	m.values[key] = val
}

func TestList_Toggle(t *testing.T) {
	ctx := context.Background()

	t.Run("absent key then toggle twice", func(t *testing.T) {
		s := newMapSession()
		l := NewList(s, "stored_posts")

		if got := l.Items(ctx); len(got) != 0 {
			t.Fatalf("expected empty list, got %v", got)
		}
		if !l.Toggle(ctx, 5) {
			t.Error("expected first toggle to add the id")
		}
		if got := l.Items(ctx); !reflect.DeepEqual(got, []int64{5}) {
			t.Errorf("expected [5], got %v", got)
		}
		if l.Toggle(ctx, 5) {
			t.Error("expected second toggle to remove the id")
		}
		if got := l.Items(ctx); !reflect.DeepEqual(got, []int64{}) {
			t.Errorf("expected [], got %v", got)
		}
		if s.values["stored_posts"] != "[]" {
			t.Errorf("expected stored value '[]', got %v", s.values["stored_posts"])
		}
	})

	t.Run("keeps insertion order and removes from the middle", func(t *testing.T) {
		l := NewList(newMapSession(), "stored_posts")
		for _, id := range []int64{3, 1, 2} {
			l.Toggle(ctx, id)
		}
		l.Toggle(ctx, 1)
		if got := l.Items(ctx); !reflect.DeepEqual(got, []int64{3, 2}) {
			t.Errorf("expected [3 2], got %v", got)
		}
		l.Toggle(ctx, 1)
		if got := l.Items(ctx); !reflect.DeepEqual(got, []int64{3, 2, 1}) {
			t.Errorf("expected [3 2 1], got %v", got)
		}
	})
}

func TestList_Contains(t *testing.T) {
	ctx := context.Background()
	l := NewList(newMapSession(), "stored_posts")

	if l.Contains(ctx, 1) {
		t.Error("expected Contains on an absent key to be false")
	}
	l.Toggle(ctx, 1)
	if !l.Contains(ctx, 1) {
		t.Error("expected Contains to be true after adding")
	}
	if l.Contains(ctx, 2) {
		t.Error("expected Contains to be false for another id")
	}
}

func TestList_MalformedValues(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name  string
		value interface{}
		want  []int64
	}{
		{"not json", "{oops", []int64{}},
		{"wrong json type", `{"a":1}`, []int64{}},
		{"fractional ids", "[1.5]", []int64{}},
		{"json null", "null", []int64{}},
		{"non string value", 42, []int64{}},
		{"bytes", []byte("[7,8]"), []int64{7, 8}},
		{"duplicates collapse", "[4,4,2,4]", []int64{4, 2}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := newMapSession()
			s.values["stored_posts"] = tc.value
			l := NewList(s, "stored_posts")

			if got := l.Items(ctx); !reflect.DeepEqual(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}

	t.Run("toggle over malformed value starts fresh", func(t *testing.T) {
		s := newMapSession()
		s.values["stored_posts"] = "garbage"
		l := NewList(s, "stored_posts")
		l.Toggle(ctx, 9)
		if got := l.Items(ctx); !reflect.DeepEqual(got, []int64{9}) {
			t.Errorf("expected [9], got %v", got)
		}
	})

	t.Run("toggle never reintroduces duplicates", func(t *testing.T) {
		s := newMapSession()
		s.values["stored_posts"] = "[4,4]"
		l := NewList(s, "stored_posts")
		l.Toggle(ctx, 4)
		if got := l.Items(ctx); !reflect.DeepEqual(got, []int64{}) {
			t.Errorf("expected [], got %v", got)
		}
	})
}

func TestList_Retain(t *testing.T) {
	ctx := context.Background()
	s := newMapSession()
	l := NewList(s, "stored_posts")
	for _, id := range []int64{1, 2, 3} {
		l.Toggle(ctx, id)
	}
	putsBefore := s.puts

	kept := l.Retain(ctx, func(id int64) bool { return true })
	if !reflect.DeepEqual(kept, []int64{1, 2, 3}) {
		t.Errorf("expected everything kept, got %v", kept)
	}
	if s.puts != putsBefore {
		t.Error("expected no write when nothing was dropped")
	}

	kept = l.Retain(ctx, func(id int64) bool { return id != 2 })
	if !reflect.DeepEqual(kept, []int64{1, 3}) {
		t.Errorf("expected [1 3], got %v", kept)
	}
	if got := l.Items(ctx); !reflect.DeepEqual(got, []int64{1, 3}) {
		t.Errorf("expected stored [1 3], got %v", got)
	}
}

func TestSlot(t *testing.T) {
	ctx := context.Background()
	s := newMapSession()
	slot := NewSlot(s, "favorite_review")

	if _, ok := slot.Get(ctx); ok {
		t.Error("expected empty slot")
	}
	if slot.Is(ctx, 1) {
		t.Error("expected Is on an empty slot to be false")
	}

	slot.Set(ctx, 1)
	slot.Set(ctx, 2)
	if got, ok := slot.Get(ctx); !ok || got != 2 {
		t.Errorf("expected slot to hold 2, got %d (ok=%v)", got, ok)
	}
	if slot.Is(ctx, 1) {
		t.Error("expected earlier selection to be overwritten")
	}
	if !slot.Is(ctx, 2) {
		t.Error("expected Is(2) to be true")
	}

	s.values["favorite_review"] = "not a number"
	if _, ok := slot.Get(ctx); ok {
		t.Error("expected malformed slot value to read as empty")
	}
}

// TestList_PersistsAcrossRequests drives the list through a real scs session
// so the stored value survives the codec round trip between requests.
func TestList_PersistsAcrossRequests(t *testing.T) {
	sm := scs.New()
	sm.Store = memstore.New()

	mux := http.NewServeMux()
	mux.HandleFunc("/toggle", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
		if err != nil {
			http.Error(w, "bad id", http.StatusBadRequest)
			return
		}
		NewList(sm, "stored_posts").Toggle(r.Context(), id)
	})
	mux.HandleFunc("/items", func(w http.ResponseWriter, r *http.Request) {
		items := NewList(sm, "stored_posts").Items(r.Context())
		for _, id := range items {
			w.Write([]byte(strconv.FormatInt(id, 10) + ","))
		}
	})
	handler := sm.LoadAndSave(mux)

	var cookie *http.Cookie
	do := func(path string) string {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		for _, c := range rr.Result().Cookies() {
			if c.Name == sm.Cookie.Name {
				cookie = c
			}
		}
		return rr.Body.String()
	}

	if got := do("/items"); got != "" {
		t.Fatalf("expected empty list for a new visitor, got %q", got)
	}
	do("/toggle?id=5")
	if got := do("/items"); got != "5," {
		t.Errorf("expected '5,', got %q", got)
	}
	do("/toggle?id=5")
	if got := do("/items"); got != "" {
		t.Errorf("expected empty list after second toggle, got %q", got)
	}
}
