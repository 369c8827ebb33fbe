package telegram

import (
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Stage is the position of a chat inside the practice flow.
type Stage string

const (
	StageJobTitle       Stage = "ASK_JOB_TITLE"
	StageCompany        Stage = "ASK_COMPANY"
	StageExperience     Stage = "ASK_EXPERIENCE"
	StageJobDescription Stage = "ASK_JOB_DESCRIPTION"
	StageMode           Stage = "CHOOSE_MODE"
	StageQuestions      Stage = "QUESTIONS"
)

// ChatState maps one Telegram chat to its practice session and tracks the
// fields collected so far.
type ChatState struct {
	ChatID         int64
	SessionID      string
	Stage          Stage
	JobTitle       string
	Company        string
	Experience     string
	JobDescription string
	UpdatedAt      time.Time
}

// StateStore keeps per-chat state in memory with an idle TTL, mirroring the
// session store: an active chat never expires mid-conversation.
type StateStore struct {
	cache *gocache.Cache
	ttl   time.Duration
}

func NewStateStore(ttl, cleanupInterval time.Duration) *StateStore {
	return &StateStore{
		cache: gocache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

func (s *StateStore) Get(chatID int64) (*ChatState, bool) {
	value, found := s.cache.Get(chatKey(chatID))
	if !found {
		return nil, false
	}

	state := value.(*ChatState)
	s.cache.Set(chatKey(chatID), state, s.ttl)
	return state, true
}

func (s *StateStore) Set(state *ChatState) {
	state.UpdatedAt = time.Now()
	s.cache.Set(chatKey(state.ChatID), state, s.ttl)
}

func (s *StateStore) Delete(chatID int64) {
	s.cache.Delete(chatKey(chatID))
}

func chatKey(chatID int64) string {
	return "chat:" + strconv.FormatInt(chatID, 10)
}
