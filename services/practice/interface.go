package practice

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"lanspeech/models"
)

// ErrNoActiveSession is returned by SendMessage before StartSession or after
// EndSession.
var ErrNoActiveSession = errors.New("no active session, please start a session first")

// ErrRateLimited marks a generation-provider quota/rate-limit failure, which
// gets a dedicated supportive response rather than the generic fallback.
var ErrRateLimited = errors.New("generation provider rate limited")

// TextGenerator is the external language-generation provider. Implementations
// must surface rate-limiting as an error matching ErrRateLimited.
type TextGenerator interface {
	Generate(ctx context.Context, systemDirective string, history []models.ConversationTurn, userInput string) (string, error)
}

// Engine owns one practice session's dialogue state and produces AI turns.
type Engine interface {
	StartSession(ctx context.Context, sessionType, difficulty string) (string, error)
	SendMessage(ctx context.Context, userMessage string) (*models.AIResponse, error)
	EndSession() *models.SessionSummary
	CurrentSession() *models.PracticeSession
}

// maxHistoryTurns bounds the dialogue history to the last 10 exchanges.
const maxHistoryTurns = 20

// DefaultEngine implements Engine. The generator may be nil, in which case
// every exchange takes the fallback path. Rand and clock are injected so
// tests can pin the canned-response selection and session timing.
type DefaultEngine struct {
	Generator TextGenerator
	Rand      *rand.Rand
	Now       func() time.Time

	mu      sync.Mutex
	session *models.PracticeSession
	history []models.ConversationTurn
}

func NewEngine(gen TextGenerator, rng *rand.Rand, now func() time.Time) *DefaultEngine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if now == nil {
		now = time.Now
	}
	return &DefaultEngine{Generator: gen, Rand: rng, Now: now}
}
