package events

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passin/backend/internal/models"
	"github.com/passin/backend/pkg/metrics"
)

type fakeStore struct {
	mu        sync.Mutex
	events    []models.Event
	attendees map[uuid.UUID]int
	// raceOnCreate simulates another request inserting the same slug between
	// the lookup and the insert.
	raceOnCreate bool
	failLookup   error
}

func (f *fakeStore) Create(_ context.Context, e *models.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.raceOnCreate {
		return ErrSlugTaken
	}
	for _, existing := range f.events {
		if existing.Slug == e.Slug {
			return ErrSlugTaken
		}
	}
	e.ID = uuid.New()
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeStore) GetBySlug(_ context.Context, slug string) (*models.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failLookup != nil {
		return nil, f.failLookup
	}
	for _, e := range f.events {
		if e.Slug == slug {
			e := e
			return &e, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) GetSummary(_ context.Context, id uuid.UUID) (*models.EventSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.events {
		if e.ID == id {
			return &models.EventSummary{Event: e, AttendeesAmount: f.attendees[id]}, nil
		}
	}
	return nil, nil
}

func newRouter(store Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(store, metrics.New(), nil)
	r := gin.New()
	r.POST("/events", h.Create)
	r.GET("/events/:eventId", h.Get)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreate_ReturnsEventIDAndSlug(t *testing.T) {
	store := &fakeStore{}
	r := newRouter(store)

	w := do(r, http.MethodPost, "/events", `{"title":"Unite Summit","details":"Devs","maximumAttendees":120}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		EventID uuid.UUID `json:"eventId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEqual(t, uuid.Nil, resp.EventID)

	require.Len(t, store.events, 1)
	e := store.events[0]
	assert.Equal(t, resp.EventID, e.ID)
	assert.Equal(t, "unite-summit", e.Slug)
	require.NotNil(t, e.Details)
	assert.Equal(t, "Devs", *e.Details)
	require.NotNil(t, e.MaximumAttendees)
	assert.Equal(t, 120, *e.MaximumAttendees)
}

func TestCreate_NullOptionalFields(t *testing.T) {
	store := &fakeStore{}
	r := newRouter(store)

	w := do(r, http.MethodPost, "/events", `{"title":"Open Day","details":null,"maximumAttendees":null}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, store.events, 1)
	assert.Nil(t, store.events[0].Details)
	assert.Nil(t, store.events[0].MaximumAttendees)
}

func TestCreate_DuplicateSlugRejected(t *testing.T) {
	store := &fakeStore{}
	r := newRouter(store)

	w := do(r, http.MethodPost, "/events", `{"title":"Unite Summit","details":null,"maximumAttendees":null}`)
	require.Equal(t, http.StatusCreated, w.Code)

	// Different title, same slug.
	w = do(r, http.MethodPost, "/events", `{"title":"  UNITE   súmmit ","details":null,"maximumAttendees":null}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), msgDuplicateSlug)
	assert.Len(t, store.events, 1)
}

func TestCreate_ConcurrentInsertMapsToDuplicate(t *testing.T) {
	store := &fakeStore{raceOnCreate: true}
	r := newRouter(store)

	w := do(r, http.MethodPost, "/events", `{"title":"Unite Summit","details":null,"maximumAttendees":null}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), msgDuplicateSlug)
}

func TestCreate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"short title", `{"title":"abc","details":null,"maximumAttendees":null}`, "title"},
		{"missing title", `{"details":null,"maximumAttendees":null}`, "title"},
		{"zero capacity", `{"title":"Unite Summit","details":null,"maximumAttendees":0}`, "maximumAttendees"},
		{"negative capacity", `{"title":"Unite Summit","details":null,"maximumAttendees":-3}`, "maximumAttendees"},
		{"capacity above int4", `{"title":"Unite Summit","details":null,"maximumAttendees":2147483648}`, "maximumAttendees"},
		{"fractional capacity", `{"title":"Unite Summit","details":null,"maximumAttendees":2.5}`, "maximumAttendees"},
		{"title not a string", `{"title":1234,"details":null,"maximumAttendees":null}`, "title"},
		{"empty body", ``, "body"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			w := do(newRouter(store), http.MethodPost, "/events", tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			var body struct {
				Message string              `json:"message"`
				Errors  map[string][]string `json:"errors"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "Error during validation", body.Message)
			assert.Contains(t, body.Errors, tt.field)
			assert.Empty(t, store.events)
		})
	}
}

func TestCreate_StoreFailureIs500(t *testing.T) {
	store := &fakeStore{failLookup: errors.New("connection reset")}
	w := do(newRouter(store), http.MethodPost, "/events", `{"title":"Unite Summit","details":null,"maximumAttendees":null}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestGet(t *testing.T) {
	capacity := 2
	e := models.Event{ID: uuid.New(), Title: "Unite Summit", Slug: "unite-summit", MaximumAttendees: &capacity}
	store := &fakeStore{events: []models.Event{e}, attendees: map[uuid.UUID]int{e.ID: 1}}
	r := newRouter(store)

	w := do(r, http.MethodGet, "/events/"+e.ID.String(), "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Event map[string]any `json:"event"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unite-summit", resp.Event["slug"])
	assert.Equal(t, float64(2), resp.Event["maximumAttendees"])
	assert.Equal(t, float64(1), resp.Event["attendeesAmount"])
	assert.Nil(t, resp.Event["details"])

	w = do(r, http.MethodGet, "/events/"+strings.ToUpper(e.ID.String()), "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/events/"+uuid.NewString(), "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(r, http.MethodGet, "/events/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
