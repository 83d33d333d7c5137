package conversationRepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"agendabot/models"
)

// memoryConversationRepo keeps the ledger in process memory. Used by tests
// and by local runs without a MongoDB instance.
type memoryConversationRepo struct {
	mu            sync.Mutex
	conversations []*models.Conversation
	messages      []models.Message
}

// NewMemoryConversationRepo constructs an in-memory ConversationRepository.
func NewMemoryConversationRepo() ConversationRepository {
	return &memoryConversationRepo{}
}

func (r *memoryConversationRepo) activeLocked(clientName string) *models.Conversation {
	key := models.ClientKey(clientName)
	for _, c := range r.conversations {
		if models.ClientKey(c.ClientName) == key && c.State == models.ConversationActive {
			return c
		}
	}
	return nil
}

func (r *memoryConversationRepo) ActiveConversation(ctx context.Context, clientName string) (*models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c := r.activeLocked(clientName); c != nil {
		copied := *c
		return &copied, nil
	}
	conv := &models.Conversation{
		ID:           uuid.New().String(),
		ClientName:   clientName,
		State:        models.ConversationActive,
		LastActivity: time.Now(),
	}
	r.conversations = append(r.conversations, conv)
	copied := *conv
	return &copied, nil
}

func (r *memoryConversationRepo) AppendMessage(ctx context.Context, clientName, content string, isAgent bool) error {
	conv, err := r.ActiveConversation(ctx, clientName)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.messages = append(r.messages, models.Message{
		ID:             uuid.New().String(),
		ConversationID: conv.ID,
		ClientName:     clientName,
		IsAgent:        isAgent,
		Content:        content,
		Timestamp:      now,
	})
	if c := r.activeLocked(clientName); c != nil {
		c.LastActivity = now
	}
	return nil
}

func (r *memoryConversationRepo) History(ctx context.Context, clientName string, limit int) ([]models.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := models.ClientKey(clientName)
	var out []models.Message
	for _, m := range r.messages {
		if models.ClientKey(m.ClientName) == key {
			out = append(out, m)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (r *memoryConversationRepo) MarkBookingConfirmed(ctx context.Context, clientName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c := r.activeLocked(clientName); c != nil {
		c.State = models.ConversationClosed
		c.BookingConfirmed = true
	}
	return nil
}

func (r *memoryConversationRepo) HasConfirmedBooking(ctx context.Context, clientName string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c := r.activeLocked(clientName); c != nil {
		return c.BookingConfirmed, nil
	}
	return false, nil
}

func (r *memoryConversationRepo) ListRecent(ctx context.Context, limit int) ([]models.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Conversation, len(r.conversations))
	for i, c := range r.conversations {
		out[i] = *c
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastActivity.After(out[j].LastActivity) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryConversationRepo) CountActive(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.conversations {
		if c.State == models.ConversationActive {
			n++
		}
	}
	return n, nil
}

func (r *memoryConversationRepo) CountMessagesSince(ctx context.Context, since time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.messages {
		if !m.Timestamp.Before(since) {
			n++
		}
	}
	return n, nil
}
