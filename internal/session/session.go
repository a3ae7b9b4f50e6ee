package session

import (
	"sync"

	"duet-bot/internal/domain"
)

// State is the conversational state of a single chat.
type State int

const (
	StateMain State = iota
	StateName
	StateFaculty
	StateCourse
	StateEducation
	StateDescription
	StateLink
	StateReview
)

func (s State) String() string {
	switch s {
	case StateMain:
		return "main"
	case StateName:
		return "name"
	case StateFaculty:
		return "faculty"
	case StateCourse:
		return "course"
	case StateEducation:
		return "education"
	case StateDescription:
		return "description"
	case StateLink:
		return "link"
	case StateReview:
		return "review"
	default:
		return "unknown"
	}
}

// Draft holds in-progress onboarding answers. It exists only between the
// first onboarding prompt and the commit; abandoning the flow discards it
// without touching any stored profile.
type Draft struct {
	Name        string           `validate:"required,max=100"`
	Faculty     string           `validate:"required,max=100"`
	Course      int              `validate:"required,min=1"`
	Education   domain.Education `validate:"required"`
	Description string           `validate:"required"`
	Link        string           `validate:"required,max=200"`
}

// Session is the ephemeral per-chat state. It is never persisted; a process
// restart loses in-flight drafts and the displayed-candidate pointer.
type Session struct {
	ChatID      int64
	State       State
	Draft       *Draft
	CandidateID int64

	mu sync.Mutex
}

// Lock serializes turns for this chat. Distinct chats proceed concurrently.
func (s *Session) Lock() { s.mu.Lock() }

func (s *Session) Unlock() { s.mu.Unlock() }

// BeginOnboarding starts a fresh draft at the name prompt.
func (s *Session) BeginOnboarding() {
	s.State = StateName
	s.Draft = &Draft{}
	s.CandidateID = 0
}

// ToMain drops any review pointer and returns to the menu.
func (s *Session) ToMain() {
	s.State = StateMain
	s.Draft = nil
	s.CandidateID = 0
}

// ShowCandidate records the displayed candidate and enters review.
func (s *Session) ShowCandidate(candidateID int64) {
	s.State = StateReview
	s.CandidateID = candidateID
}

// Store is the in-memory session registry keyed by chat id.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

// Get returns the session for chatID, creating it in StateMain on first use.
func (st *Store) Get(chatID int64) *Session {
	st.mu.RLock()
	s, ok := st.sessions[chatID]
	st.mu.RUnlock()
	if ok {
		return s
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[chatID]; ok {
		return s
	}
	s = &Session{ChatID: chatID, State: StateMain}
	st.sessions[chatID] = s
	return s
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
