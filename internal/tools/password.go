package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/minitools-mcp/internal/history"
	"github.com/ironsheep/minitools-mcp/internal/password"
)

// PasswordHistoryKey is the store key for recently generated passwords.
const PasswordHistoryKey = "passwordHistory"

// Kinds of generated secret.
const (
	KindPassword   = "password"
	KindPassphrase = "passphrase"
)

// PasswordRecord is one remembered password.
type PasswordRecord struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Password  string    `json:"password"`
	Kind      string    `json:"kind"`
	Strength  string    `json:"strength"`
}

// PasswordRequest describes one generation. Passphrase selects word mode,
// which uses Words and Separator; otherwise Options applies.
type PasswordRequest struct {
	Options    password.Options
	Passphrase bool
	Words      int     // 0 selects password.DefaultWords
	Separator  *string // nil selects password.DefaultSeparator
	NoHistory  bool
}

// PasswordResult is a generated password and its strength.
type PasswordResult struct {
	Password string            `json:"password"`
	Kind     string            `json:"kind"`
	Strength password.Strength `json:"strength"`
	Recorded bool              `json:"recorded"`
}

// PasswordTool generates passwords and remembers them unless asked not to.
type PasswordTool struct {
	gen     *password.Generator
	history *history.List[PasswordRecord]
	now     func() time.Time
}

// NewPasswordTool creates a PasswordTool keeping up to limit passwords in
// store. A nil gen draws from crypto/rand.
func NewPasswordTool(store history.Store, limit int, gen *password.Generator) *PasswordTool {
	if gen == nil {
		gen = password.New(nil)
	}
	return &PasswordTool{
		gen:     gen,
		history: history.NewList[PasswordRecord](store, PasswordHistoryKey, limit, nil),
		now:     time.Now,
	}
}

// Generate builds a password or passphrase for req and scores it.
func (t *PasswordTool) Generate(ctx context.Context, req PasswordRequest) (*PasswordResult, error) {
	var (
		secret string
		err    error
		kind   = KindPassword
	)
	if req.Passphrase {
		kind = KindPassphrase
		words := req.Words
		if words == 0 {
			words = password.DefaultWords
		}
		sep := password.DefaultSeparator
		if req.Separator != nil {
			sep = *req.Separator
		}
		secret, err = t.gen.Passphrase(words, sep)
	} else {
		secret, err = t.gen.Generate(req.Options)
	}
	if err != nil {
		return nil, err
	}

	out := &PasswordResult{Password: secret, Kind: kind, Strength: password.Score(secret)}
	if req.NoHistory {
		return out, nil
	}

	rec := PasswordRecord{
		ID:        uuid.NewString(),
		Timestamp: t.now().UTC(),
		Password:  secret,
		Kind:      kind,
		Strength:  out.Strength.Label,
	}
	if _, err := t.history.Push(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to record password history: %w", err)
	}
	out.Recorded = true
	return out, nil
}

// Strength scores an existing password. History is not touched.
func (t *PasswordTool) Strength(secret string) password.Strength {
	return password.Score(secret)
}

// History returns recently generated passwords, newest first.
func (t *PasswordTool) History(ctx context.Context) ([]PasswordRecord, error) {
	return t.history.Get(ctx)
}

// Clear removes all remembered passwords.
func (t *PasswordTool) Clear(ctx context.Context) error {
	return t.history.Clear(ctx)
}
