package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/lauraluxe/backend/internal/domain"
	"github.com/lauraluxe/backend/internal/infrastructure/session"
)

// sommelierInstruction is the fixed system instruction for the collaborator.
const sommelierInstruction = `You are an expert luxury perfume sommelier at L'Aura Luxe.
1. Analyze the user's emotional or descriptive input.
2. Recommend 1-3 specific perfumes from the catalog provided.
3. Format your response in a luxurious, poetic, yet professional tone.
4. ALWAYS include a special JSON-like tag at the end of your response with the matched IDs, e.g., [MATCH: 1, 3].
5. Keep the poetic text around 2-3 sentences.`

// Canned assistant messages. The session recovers every collaborator
// failure locally with one of these; no error reaches the caller.
const (
	greetingMessage = "Welcome to the L'Aura Bespoke Studio. I am your AI Scent Sommelier. " +
		"Tell me about your mood, a memory, or the notes you gravitate towards, and I will " +
		"craft the perfect fragrance profile for you."

	emptyReplyFallback = "I apologize, but my sensory sensors are temporarily clouded. " +
		"Could you describe that once more?"

	failureFallback = "Our digital atelier is currently undergoing refinement. " +
		"Please try again in a moment."
)

// SommelierService drives the recommendation session: one outbound
// collaborator call per user turn, match-tag parsing, and resolution of
// matched ids against the catalog.
type SommelierService struct {
	catalog domain.CatalogRepository
	client  domain.GenerativeClient
}

// NewSommelierService creates a sommelier service with dependencies.
func NewSommelierService(catalog domain.CatalogRepository, client domain.GenerativeClient) *SommelierService {
	return &SommelierService{
		catalog: catalog,
		client:  client,
	}
}

// Greet seeds the synthetic assistant greeting on first open of the panel.
func (s *SommelierService) Greet(sess *session.Session) {
	sess.EnsureGreeting(greetingMessage)
}

// Submit runs one chat turn: it appends the trimmed user text, calls the
// collaborator once, parses the reply, and appends the assistant turn.
//
// Preconditions surface as errors: ErrEmptyMessage for blank input and
// ErrSessionBusy while a reply is outstanding (the duplicate submit is
// simply not taken; there is no queueing and no cancellation of the
// in-flight call).
// Collaborator failures never surface; the transcript gains a canned
// apology turn and the session returns to idle, with the match set left
// unchanged. A well-formed match tag replaces the match set wholesale,
// even when none of its ids resolve; a reply without a tag leaves it alone.
func (s *SommelierService) Submit(ctx context.Context, sess *session.Session, userText string) (domain.ChatTurn, error) {
	trimmed, err := sess.BeginSubmit(userText)
	if err != nil {
		return domain.ChatTurn{}, err
	}

	prompt, err := s.buildPrompt(trimmed)
	if err != nil {
		// Projection marshaling cannot realistically fail for the fixed
		// catalog; treat it like any other collaborator failure.
		log.Printf("[SOMMELIER] Failed to build prompt: %v", err)
		turn := domain.ChatTurn{Role: domain.RoleAssistant, Content: failureFallback}
		sess.CompleteSubmit(turn, nil, false)
		return turn, nil
	}

	reply, err := s.client.GenerateReply(ctx, sommelierInstruction, prompt)
	if err != nil {
		log.Printf("[SOMMELIER] Collaborator call failed for session %s: %v", sess.ID, err)
		content := failureFallback
		if errors.Is(err, domain.ErrEmptyReply) {
			content = emptyReplyFallback
		}
		turn := domain.ChatTurn{Role: domain.RoleAssistant, Content: content}
		sess.CompleteSubmit(turn, nil, false)
		return turn, nil
	}

	text, ids, found := ExtractMatchTag(reply)

	var matches []domain.Product
	for _, id := range ids {
		if p, ok := s.catalog.Get(id); ok {
			matches = append(matches, p)
		} else {
			log.Printf("[SOMMELIER] Dropping unresolved match id %q", id)
		}
	}
	if found && matches == nil {
		matches = []domain.Product{}
	}

	turn := domain.ChatTurn{Role: domain.RoleAssistant, Content: text}
	sess.CompleteSubmit(turn, matches, found)
	return turn, nil
}

// buildPrompt combines the user text with the reduced catalog projection.
func (s *SommelierService) buildPrompt(userText string) (string, error) {
	projection, err := json.Marshal(s.catalog.Projection())
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("User: %s. Available scents in catalog: %s", userText, projection), nil
}
