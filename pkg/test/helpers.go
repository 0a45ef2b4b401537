package test

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"

	"blogapp/internal/adapter/database/sqlite"
	"blogapp/internal/core/domain"
	"blogapp/internal/core/util"
)

func init() {
	util.PasswordCost = bcrypt.MinCost
}

// InitTestDB opens a fresh migrated in-memory database. A single connection
// keeps every query on the same in-memory instance.
func InitTestDB() *sqlite.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		log.Fatal(err)
	}

	db.SetMaxOpenConns(1)

	if _, err = db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		log.Fatal(err)
	}

	if err := sqlite.RunMigrations(db); err != nil {
		log.Fatal(err)
	}

	return sqlite.Wrap(db)
}

// CreatePost inserts a post row directly; posts have no repository of their
// own.
func CreatePost(db *sqlite.DB, categoryID int, authorID int, status domain.PostStatus) {
	now := time.Now()

	_, err := db.Exec(
		"INSERT INTO posts (uuid, title, status, category_id, author_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		uuid.NewString(), "Post "+uuid.NewString()[:8], string(status), categoryID, authorID, now, now,
	)
	if err != nil {
		log.Fatal(err)
	}
}

type SentEmail struct {
	Kind  string
	Email string
	Code  string
}

// RecordingSender captures notifications instead of delivering them.
type RecordingSender struct {
	mu   sync.Mutex
	Sent []SentEmail
	Err  error
}

func (r *RecordingSender) SendVerificationEmail(ctx context.Context, user domain.User) error {
	return r.record("verification", user)
}

func (r *RecordingSender) SendResetPasswordEmail(ctx context.Context, user domain.User) error {
	return r.record("reset", user)
}

func (r *RecordingSender) record(kind string, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}

	code := ""
	if user.VerificationCode != nil {
		code = *user.VerificationCode
	}

	r.Sent = append(r.Sent, SentEmail{Kind: kind, Email: user.Email, Code: code})
	return nil
}

func (r *RecordingSender) Last() (SentEmail, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.Sent) == 0 {
		return SentEmail{}, false
	}
	return r.Sent[len(r.Sent)-1], true
}
