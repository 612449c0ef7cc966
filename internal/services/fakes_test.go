package services_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/ai"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/store"
	"github.com/google/uuid"
)

// memStore is an in-memory store.Store. Setting failWith makes every call
// return that error.
type memStore struct {
	mu       sync.Mutex
	users    map[string]models.User
	forms    map[uuid.UUID]models.MedicalForm
	convs    map[uuid.UUID]models.Conversation
	messages []models.Message
	failWith error
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[string]models.User),
		forms: make(map[uuid.UUID]models.MedicalForm),
		convs: make(map[uuid.UUID]models.Conversation),
	}
}

func (m *memStore) fail() error {
	return m.failWith
}

func (m *memStore) EnsureUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return err
	}
	if _, ok := m.users[user.ID]; !ok {
		m.users[user.ID] = *user
	}
	return nil
}

func (m *memStore) CreateForm(_ context.Context, form *models.MedicalForm) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return err
	}
	if form.ID == uuid.Nil {
		form.ID = uuid.New()
	}
	form.CreatedAt = time.Now().UTC().Add(time.Duration(len(m.forms)) * time.Millisecond)
	m.forms[form.ID] = *form
	return nil
}

func (m *memStore) GetForm(_ context.Context, id uuid.UUID) (*models.MedicalForm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return nil, err
	}
	f, ok := m.forms[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &f, nil
}

func (m *memStore) ListForms(_ context.Context, userID string) ([]models.MedicalForm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return nil, err
	}
	var out []models.MedicalForm
	for _, f := range m.forms {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) LatestForm(ctx context.Context, userID string) (*models.MedicalForm, error) {
	forms, err := m.ListForms(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(forms) == 0 {
		return nil, store.ErrNotFound
	}
	return &forms[0], nil
}

func (m *memStore) CreateConversation(_ context.Context, conv *models.Conversation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return err
	}
	if conv.ID == uuid.Nil {
		conv.ID = uuid.New()
	}
	now := time.Now().UTC()
	conv.CreatedAt, conv.UpdatedAt = now, now
	m.convs[conv.ID] = *conv
	return nil
}

func (m *memStore) GetConversationWithForm(_ context.Context, id uuid.UUID) (*models.Conversation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return nil, err
	}
	c, ok := m.convs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if f, ok := m.forms[c.FormID]; ok {
		c.MedicalForm = &f
	}
	return &c, nil
}

func (m *memStore) ListConversations(_ context.Context, userID string) ([]store.ConversationWithCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return nil, err
	}
	out := []store.ConversationWithCount{}
	for _, c := range m.convs {
		if c.UserID != userID {
			continue
		}
		if f, ok := m.forms[c.FormID]; ok {
			c.MedicalForm = &f
		}
		var n int64
		for _, msg := range m.messages {
			if msg.ConversationID == c.ID {
				n++
			}
		}
		out = append(out, store.ConversationWithCount{Conversation: c, MessageCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *memStore) TouchConversation(_ context.Context, id uuid.UUID, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return err
	}
	c, ok := m.convs[id]
	if !ok {
		return store.ErrNotFound
	}
	c.UpdatedAt = now
	m.convs[id] = c
	return nil
}

func (m *memStore) ConversationActivity(ctx context.Context, userID string) (int64, *time.Time, error) {
	convs, err := m.ListConversations(ctx, userID)
	if err != nil || len(convs) == 0 {
		return 0, nil, err
	}
	last := convs[0].UpdatedAt
	return int64(len(convs)), &last, nil
}

func (m *memStore) ListMessages(_ context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return nil, err
	}
	out := []models.Message{}
	for _, msg := range m.messages {
		if msg.ConversationID == conversationID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *memStore) RecentMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]models.Message, error) {
	all, err := m.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (m *memStore) CountMessages(ctx context.Context, conversationID uuid.UUID) (int64, error) {
	all, err := m.ListMessages(ctx, conversationID)
	return int64(len(all)), err
}

func (m *memStore) AppendMessage(_ context.Context, msg *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail(); err != nil {
		return err
	}
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	m.messages = append(m.messages, *msg)
	return nil
}

var _ store.Store = (*memStore)(nil)

// recordingAssistant captures requests and answers with fixed text. When gate
// is set, calls block until it is closed or ctx ends.
type recordingAssistant struct {
	mu       sync.Mutex
	requests []ai.Request
	initial  int
	gate     chan struct{}
}

func (r *recordingAssistant) wait(ctx context.Context) error {
	if r.gate == nil {
		return nil
	}
	select {
	case <-r.gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *recordingAssistant) Respond(ctx context.Context, req ai.Request) (ai.Reply, error) {
	if err := r.wait(ctx); err != nil {
		return ai.Reply{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
	return ai.Reply{Text: "reply to: " + req.Message}, nil
}

func (r *recordingAssistant) InitialAssessment(ctx context.Context, form *models.MedicalForm) (ai.Reply, error) {
	if err := r.wait(ctx); err != nil {
		return ai.Reply{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.initial++
	return ai.Reply{Text: "initial assessment for " + form.Name}, nil
}

// failingProvider is an ai.Provider that always errors.
type failingProvider struct{}

func (failingProvider) Name() string { return "failing" }

func (failingProvider) Generate(context.Context, []ai.Content) (string, error) {
	return "", errors.New("quota exceeded")
}
