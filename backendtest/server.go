// ABOUTME: In-memory stand-in for the directory backend used by tests
// ABOUTME: Serves /states, /add, /search and /delete over httptest with per-route hit counts

package backendtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/harperreed/mobiledir/models"
)

// Route names used for hit counting.
const (
	RouteHealth = "health"
	RouteStates = "states"
	RouteAdd    = "add"
	RouteSearch = "search"
	RouteDelete = "delete"
)

var numberPattern = regexp.MustCompile(`^[6-9]\d{9}$`)

// Server is a fake backend. Its behaviour follows the reference Flask
// service closely enough to exercise every client path.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	contacts []models.Contact
	states   []string
	hits     map[string]int
	queries  []string
	bodies   []json.RawMessage

	failStates  bool
	statesDelay time.Duration
}

// New starts a fake backend and registers its shutdown with t.
func New(t testing.TB, seed ...models.Contact) *Server {
	t.Helper()

	s := &Server{
		contacts: append([]models.Contact(nil), seed...),
		states:   models.FallbackStates(),
		hits:     map[string]int{},
	}

	r := mux.NewRouter()
	r.HandleFunc("/", s.count(RouteHealth, s.handleHealth)).Methods(http.MethodGet)
	r.HandleFunc("/states", s.count(RouteStates, s.handleStates)).Methods(http.MethodGet)
	r.HandleFunc("/add", s.count(RouteAdd, s.handleAdd)).Methods(http.MethodPost)
	r.HandleFunc("/search", s.count(RouteSearch, s.handleSearch)).Methods(http.MethodGet)
	r.HandleFunc("/delete/{number}", s.count(RouteDelete, s.handleDelete)).Methods(http.MethodDelete)

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// SetStates replaces the list served by GET /states.
func (s *Server) SetStates(states []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = states
}

// FailStates makes GET /states answer 500 with a non-JSON body.
func (s *Server) FailStates() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStates = true
}

// SetStatesDelay makes GET /states wait d before answering.
func (s *Server) SetStatesDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statesDelay = d
}

// Hits returns how many requests reached route.
func (s *Server) Hits(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[route]
}

// Queries returns the raw query strings of every search, in order.
func (s *Server) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// Bodies returns the raw JSON bodies posted to /add, in order.
func (s *Server) Bodies() []json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]json.RawMessage(nil), s.bodies...)
}

// Contacts returns a snapshot of the stored rows.
func (s *Server) Contacts() []models.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Contact(nil), s.contacts...)
}

func (s *Server) count(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[route]++
		s.mu.Unlock()

		next(w, r)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStates(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	delay := s.statesDelay
	s.mu.Unlock()
	time.Sleep(delay)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failStates {
		http.Error(w, "boom", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, s.states)
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body"})
		return
	}

	var in struct {
		Text     *string `json:"text"`
		Number   string  `json:"number"`
		Place    string  `json:"place"`
		District string  `json:"district"`
		State    string  `json:"state"`
	}
	_ = json.Unmarshal(raw, &in)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodies = append(s.bodies, raw)

	var entry models.Contact
	if in.Text != nil {
		fields := strings.Fields(*in.Text)
		if len(fields) < 2 || !numberPattern.MatchString(fields[0]) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Could not find a mobile number and place"})
			return
		}
		entry = models.Contact{Number: fields[0], Place: strings.Join(fields[1:], " ")}
	} else {
		var errs []string
		if !numberPattern.MatchString(strings.TrimSpace(in.Number)) {
			errs = append(errs, "Invalid mobile number. Use 10 digits starting with 6-9.")
		}
		if strings.TrimSpace(in.Place) == "" {
			errs = append(errs, "Place is required.")
		}
		if strings.TrimSpace(in.District) == "" {
			errs = append(errs, "District is required.")
		}
		if strings.TrimSpace(in.State) == "" {
			errs = append(errs, "State is required.")
		}
		if len(errs) > 0 {
			writeJSON(w, http.StatusBadRequest, map[string][]string{"errors": errs})
			return
		}
		entry = models.Contact{
			Number:   strings.TrimSpace(in.Number),
			Place:    strings.TrimSpace(in.Place),
			District: strings.TrimSpace(in.District),
			State:    strings.TrimSpace(in.State),
		}
	}

	for _, c := range s.contacts {
		if c.Number == entry.Number {
			writeJSON(w, http.StatusConflict, map[string]string{"error": "Number already exists"})
			return
		}
	}

	s.contacts = append(s.contacts, entry)
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Number added successfully!", "entry": entry})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	place := strings.ToLower(strings.TrimSpace(q.Get("place")))
	district := strings.ToLower(strings.TrimSpace(q.Get("district")))
	state := strings.ToLower(strings.TrimSpace(q.Get("state")))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, r.URL.RawQuery)

	results := []models.Contact{}
	for _, c := range s.contacts {
		if place != "" && strings.ToLower(c.Place) != place {
			continue
		}
		if district != "" && strings.ToLower(c.District) != district {
			continue
		}
		if state != "" && strings.ToLower(c.State) != state {
			continue
		}
		results = append(results, c)
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	number := mux.Vars(r)["number"]

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.contacts {
		if c.Number == number {
			s.contacts = append(s.contacts[:i], s.contacts[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Number deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "Number not found"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
