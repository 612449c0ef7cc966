package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/medassist-backend/internal/models"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConversationWithCount is a conversation row plus the size of its transcript.
type ConversationWithCount struct {
	models.Conversation
	MessageCount int64
}

// Store is the persistence contract used by the services. Lookups that find
// nothing return ErrNotFound; exhausted connectivity retries return ErrUnavailable.
type Store interface {
	EnsureUser(ctx context.Context, user *models.User) error

	CreateForm(ctx context.Context, form *models.MedicalForm) error
	GetForm(ctx context.Context, id uuid.UUID) (*models.MedicalForm, error)
	ListForms(ctx context.Context, userID string) ([]models.MedicalForm, error)
	LatestForm(ctx context.Context, userID string) (*models.MedicalForm, error)

	CreateConversation(ctx context.Context, conv *models.Conversation) error
	GetConversationWithForm(ctx context.Context, id uuid.UUID) (*models.Conversation, error)
	ListConversations(ctx context.Context, userID string) ([]ConversationWithCount, error)
	TouchConversation(ctx context.Context, id uuid.UUID, now time.Time) error
	ConversationActivity(ctx context.Context, userID string) (int64, *time.Time, error)

	ListMessages(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error)
	RecentMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]models.Message, error)
	CountMessages(ctx context.Context, conversationID uuid.UUID) (int64, error)
	AppendMessage(ctx context.Context, msg *models.Message) error
}

type GormStore struct {
	db     *gorm.DB
	policy RetryPolicy
}

func New(db *gorm.DB, policy RetryPolicy) *GormStore {
	return &GormStore{db: db, policy: policy}
}

func (s *GormStore) run(ctx context.Context, op string, fn func(tx *gorm.DB) error) error {
	err := Retry(ctx, s.policy, op, func() error {
		return fn(s.db.WithContext(ctx))
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// insertOnce makes an insert safe to retry. The id assigned on the first
// attempt is kept, so replaying a write that committed before the connection
// dropped is a no-op.
var insertOnce = clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}

// EnsureUser inserts the user unless a row with the same id exists already.
func (s *GormStore) EnsureUser(ctx context.Context, user *models.User) error {
	return s.run(ctx, "store.ensure_user", func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(user).Error
	})
}

func (s *GormStore) CreateForm(ctx context.Context, form *models.MedicalForm) error {
	return s.run(ctx, "store.create_form", func(tx *gorm.DB) error {
		return tx.Clauses(insertOnce).Create(form).Error
	})
}

func (s *GormStore) GetForm(ctx context.Context, id uuid.UUID) (*models.MedicalForm, error) {
	var form models.MedicalForm
	err := s.run(ctx, "store.get_form", func(tx *gorm.DB) error {
		return tx.First(&form, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (s *GormStore) ListForms(ctx context.Context, userID string) ([]models.MedicalForm, error) {
	var forms []models.MedicalForm
	err := s.run(ctx, "store.list_forms", func(tx *gorm.DB) error {
		return tx.Select("id", "user_id", "name", "age", "created_at").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&forms).Error
	})
	return forms, err
}

func (s *GormStore) LatestForm(ctx context.Context, userID string) (*models.MedicalForm, error) {
	var form models.MedicalForm
	err := s.run(ctx, "store.latest_form", func(tx *gorm.DB) error {
		return tx.Where("user_id = ?", userID).Order("created_at DESC").First(&form).Error
	})
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (s *GormStore) CreateConversation(ctx context.Context, conv *models.Conversation) error {
	return s.run(ctx, "store.create_conversation", func(tx *gorm.DB) error {
		return tx.Clauses(insertOnce).Omit("MedicalForm", "User").Create(conv).Error
	})
}

// GetConversationWithForm loads the conversation and its full medical form.
// MedicalForm is nil when the form row is gone.
func (s *GormStore) GetConversationWithForm(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.run(ctx, "store.get_conversation", func(tx *gorm.DB) error {
		return tx.Preload("MedicalForm").First(&conv, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListConversations returns the user's conversations, most recently updated
// first, each with a form summary and its message count.
func (s *GormStore) ListConversations(ctx context.Context, userID string) ([]ConversationWithCount, error) {
	var convs []models.Conversation
	err := s.run(ctx, "store.list_conversations", func(tx *gorm.DB) error {
		return tx.Preload("MedicalForm", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "age", "created_at")
		}).
			Where("user_id = ?", userID).
			Order("updated_at DESC").
			Find(&convs).Error
	})
	if err != nil || len(convs) == 0 {
		return []ConversationWithCount{}, err
	}

	type countRow struct {
		ConversationID uuid.UUID
		Count          int64
	}
	var rows []countRow
	ids := lo.Map(convs, func(c models.Conversation, _ int) uuid.UUID { return c.ID })
	err = s.run(ctx, "store.count_messages", func(tx *gorm.DB) error {
		return tx.Model(&models.Message{}).
			Select("conversation_id, COUNT(*) AS count").
			Where("conversation_id IN ?", ids).
			Group("conversation_id").
			Scan(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	counts := lo.Associate(rows, func(r countRow) (uuid.UUID, int64) { return r.ConversationID, r.Count })

	return lo.Map(convs, func(c models.Conversation, _ int) ConversationWithCount {
		return ConversationWithCount{Conversation: c, MessageCount: counts[c.ID]}
	}), nil
}

func (s *GormStore) TouchConversation(ctx context.Context, id uuid.UUID, now time.Time) error {
	return s.run(ctx, "store.touch_conversation", func(tx *gorm.DB) error {
		res := tx.Model(&models.Conversation{}).Where("id = ?", id).UpdateColumn("updated_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ConversationActivity returns how many conversations the user has and when
// the most recent one was last updated.
func (s *GormStore) ConversationActivity(ctx context.Context, userID string) (int64, *time.Time, error) {
	var count int64
	err := s.run(ctx, "store.conversation_activity", func(tx *gorm.DB) error {
		return tx.Model(&models.Conversation{}).Where("user_id = ?", userID).Count(&count).Error
	})
	if err != nil || count == 0 {
		return 0, nil, err
	}

	var latest models.Conversation
	err = s.run(ctx, "store.conversation_activity", func(tx *gorm.DB) error {
		return tx.Select("id", "updated_at").Where("user_id = ?", userID).Order("updated_at DESC").First(&latest).Error
	})
	if err != nil {
		return 0, nil, err
	}
	return count, &latest.UpdatedAt, nil
}

// ListMessages returns the full transcript, oldest first.
func (s *GormStore) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]models.Message, error) {
	messages := []models.Message{}
	err := s.run(ctx, "store.list_messages", func(tx *gorm.DB) error {
		return tx.Where("conversation_id = ?", conversationID).Order("created_at ASC").Find(&messages).Error
	})
	return messages, err
}

// RecentMessages returns the last limit messages, oldest first.
func (s *GormStore) RecentMessages(ctx context.Context, conversationID uuid.UUID, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := s.run(ctx, "store.recent_messages", func(tx *gorm.DB) error {
		return tx.Where("conversation_id = ?", conversationID).
			Order("created_at DESC").
			Limit(limit).
			Find(&messages).Error
	})
	if err != nil {
		return nil, err
	}
	return lo.Reverse(messages), nil
}

func (s *GormStore) CountMessages(ctx context.Context, conversationID uuid.UUID) (int64, error) {
	var count int64
	err := s.run(ctx, "store.count_messages", func(tx *gorm.DB) error {
		return tx.Model(&models.Message{}).Where("conversation_id = ?", conversationID).Count(&count).Error
	})
	return count, err
}

func (s *GormStore) AppendMessage(ctx context.Context, msg *models.Message) error {
	if !msg.Role.Valid() {
		return fmt.Errorf("invalid message role %q", msg.Role)
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	return s.run(ctx, "store.append_message", func(tx *gorm.DB) error {
		return tx.Clauses(insertOnce).Omit("Conversation").Create(msg).Error
	})
}

var _ Store = (*GormStore)(nil)
