package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/techstyle/chatdesk/internal/domain"
)

// Store is the durable storage gateway backed by SQLite. One struct
// implements both store interfaces.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path, ensuring the parent
// directory exists, and runs the schema migration.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening db at %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging db at %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS conversations (
			id TEXT PRIMARY KEY,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		);

		CREATE TABLE IF NOT EXISTS messages (
			id TEXT PRIMARY KEY,
			conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
			sender TEXT NOT NULL CHECK (sender IN ('user', 'ai')),
			text TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_messages_conversation_created
			ON messages(conversation_id, created_at);
	`)
	if err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}
	return nil
}

func (s *Store) CreateConversation(ctx context.Context) (*domain.Conversation, error) {
	conv := &domain.Conversation{
		ID:        domain.ConversationID(uuid.NewString()),
		CreatedAt: time.Now().UTC(),
	}
	conv.UpdatedAt = conv.CreatedAt

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (id, created_at, updated_at) VALUES (?, ?, ?)`,
		string(conv.ID), conv.CreatedAt, conv.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting conversation: %w", err)
	}
	return conv, nil
}

func (s *Store) GetConversation(ctx context.Context, id domain.ConversationID) (*domain.Conversation, error) {
	var conv domain.Conversation
	var rawID string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, created_at, updated_at FROM conversations WHERE id = ?`,
		string(id),
	).Scan(&rawID, &conv.CreatedAt, &conv.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting conversation %s: %w", id, err)
	}
	conv.ID = domain.ConversationID(rawID)
	return &conv, nil
}

func (s *Store) TouchConversation(ctx context.Context, id domain.ConversationID) error {
	now := time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`UPDATE conversations SET updated_at = ? WHERE id = ? AND updated_at < ?`,
		now, string(id), now,
	)
	if err != nil {
		return fmt.Errorf("touching conversation %s: %w", id, err)
	}
	return nil
}

// AppendMessage inserts the message and advances the conversation's
// last-activity timestamp in one transaction.
func (s *Store) AppendMessage(ctx context.Context, msg *domain.Message) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning append tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO messages (id, conversation_id, sender, text, created_at) VALUES (?, ?, ?, ?, ?)`,
		string(msg.ID), string(msg.ConversationID), string(msg.Sender), msg.Text, msg.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE conversations SET updated_at = ? WHERE id = ? AND updated_at < ?`,
		msg.CreatedAt.UTC(), string(msg.ConversationID), msg.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("touching conversation on append: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing append tx: %w", err)
	}
	return nil
}

// GetRecentMessages returns up to limit newest messages in chronological
// order. The query fetches newest-first with a bound and reverses, so it
// stays cheap for long conversations. limit <= 0 returns everything.
func (s *Store) GetRecentMessages(ctx context.Context, id domain.ConversationID, limit int) ([]*domain.Message, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, sender, text, created_at FROM messages
			 WHERE conversation_id = ?
			 ORDER BY created_at DESC, rowid DESC
			 LIMIT ?`,
			string(id), limit,
		)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, sender, text, created_at FROM messages
			 WHERE conversation_id = ?
			 ORDER BY created_at ASC, rowid ASC`,
			string(id),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("selecting messages for %s: %w", id, err)
	}
	defer rows.Close()

	var out []*domain.Message
	for rows.Next() {
		var (
			msgID, sender, text string
			createdAt           time.Time
		)
		if err := rows.Scan(&msgID, &sender, &text, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning message row: %w", err)
		}
		out = append(out, &domain.Message{
			ID:             domain.MessageID(msgID),
			ConversationID: id,
			Sender:         domain.Sender(sender),
			Text:           text,
			CreatedAt:      createdAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating message rows: %w", err)
	}

	if limit > 0 {
		// Reverse to chronological order.
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}
