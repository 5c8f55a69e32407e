package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bizmatters/healthpath/internal/answers"
	"github.com/bizmatters/healthpath/internal/logger"
	"github.com/bizmatters/healthpath/internal/plan"
	"github.com/bizmatters/healthpath/internal/storage"
)

// Storage keys
const (
	AnswersKey = "healthpath_answers"
	PlanKey    = "healthpath_plan"
)

// StorageError describes a failed read or write of durable state. It is
// logged and never returned to callers.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Persister saves and restores sessions under the two fixed keys
type Persister struct {
	kv  storage.KV
	log *logger.Logger
}

// NewPersister creates a persister over kv
func NewPersister(kv storage.KV, log *logger.Logger) *Persister {
	return &Persister{kv: kv, log: log}
}

// Save writes the answers, and the plan when one exists. Failures are logged
// and swallowed.
func (p *Persister) Save(ctx context.Context, s *Session) {
	data, err := json.Marshal(s.Answers)
	if err != nil {
		p.warn(&StorageError{Op: "encode", Key: AnswersKey, Err: err})
		return
	}
	if err := p.kv.Set(ctx, AnswersKey, string(data)); err != nil {
		p.warn(&StorageError{Op: "write", Key: AnswersKey, Err: err})
	}

	if s.Plan == nil {
		return
	}
	data, err = json.Marshal(s.Plan)
	if err != nil {
		p.warn(&StorageError{Op: "encode", Key: PlanKey, Err: err})
		return
	}
	if err := p.kv.Set(ctx, PlanKey, string(data)); err != nil {
		p.warn(&StorageError{Op: "write", Key: PlanKey, Err: err})
	}
}

// Load restores a session. Missing or corrupt records are treated as absent.
// The boolean reports whether any answer was restored.
func (p *Persister) Load(ctx context.Context) (*Session, bool) {
	s := New()

	if raw, ok := p.read(ctx, AnswersKey); ok {
		store := answers.NewStore()
		if err := json.Unmarshal([]byte(raw), store); err != nil {
			p.warn(&StorageError{Op: "decode", Key: AnswersKey, Err: err})
		} else {
			s.Answers = store
		}
	}

	if raw, ok := p.read(ctx, PlanKey); ok {
		var doc plan.Document
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			p.warn(&StorageError{Op: "decode", Key: PlanKey, Err: err})
		} else {
			s.Plan = &doc
		}
	}

	return s, s.Answers.Len() > 0
}

// Clear removes both records and resets s
func (p *Persister) Clear(ctx context.Context, s *Session) {
	for _, key := range []string{AnswersKey, PlanKey} {
		if err := p.kv.Delete(ctx, key); err != nil {
			p.warn(&StorageError{Op: "delete", Key: key, Err: err})
		}
	}
	if s != nil {
		s.Reset()
	}
}

func (p *Persister) read(ctx context.Context, key string) (string, bool) {
	raw, ok, err := p.kv.Get(ctx, key)
	if err != nil {
		p.warn(&StorageError{Op: "read", Key: key, Err: err})
		return "", false
	}
	return raw, ok
}

func (p *Persister) warn(err *StorageError) {
	p.log.Warn("Failed to access local storage", "op", err.Op, "key", err.Key, "error", err.Err.Error())
}
