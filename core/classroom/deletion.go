package classroom

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/trezcool/classbook/core"
)

// DeletionKind names what a two-phase deletion removes.
type DeletionKind string

const (
	DeleteStudent    DeletionKind = "student"
	DeleteSubject    DeletionKind = "subject"
	DeleteAssignment DeletionKind = "assignment"
	DeleteCounseling DeletionKind = "counseling"
)

func (k DeletionKind) Valid() bool {
	switch k {
	case DeleteStudent, DeleteSubject, DeleteAssignment, DeleteCounseling:
		return true
	default:
		return false
	}
}

var newToken = func() string { return uuid.New().String() } // mockable

// maxTokens bounds the pending and committed tokens remembered; the oldest are forgotten first.
const maxTokens = 64

// Confirmation describes a requested deletion. Nothing is removed until its token is committed.
type Confirmation struct {
	Token  string       `json:"token"`
	Kind   DeletionKind `json:"kind"`
	ID     string       `json:"id"`
	Prompt string       `json:"prompt"`
}

type pendingDeletion struct {
	kind DeletionKind
	id   string
	date core.DateKey // counseling only
}

// RequestDeletion checks that the target exists and returns the confirmation to show the user.
func (c *Classroom) RequestDeletion(kind DeletionKind, id string) (Confirmation, error) {
	pd := pendingDeletion{kind: kind, id: id}
	var prompt string

	switch kind {
	case DeleteStudent:
		st, ok := c.Roster.Get(id)
		if !ok {
			return Confirmation{}, core.ErrNotFound
		}
		prompt = fmt.Sprintf("Delete student %s %s?", st.Number, st.Name)
	case DeleteSubject:
		sub, ok := c.Curriculum.Subject(id)
		if !ok {
			return Confirmation{}, core.ErrNotFound
		}
		var n int
		for _, a := range c.Curriculum.Assignments() {
			if a.SubjectID == id {
				n++
			}
		}
		prompt = fmt.Sprintf("Delete subject %s and its %d assignment(s)?", sub.Title, n)
	case DeleteAssignment:
		a, ok := c.Curriculum.Assignment(id)
		if !ok {
			return Confirmation{}, core.ErrNotFound
		}
		prompt = fmt.Sprintf("Delete assignment %s due %s?", a.Title, a.DueDate)
	case DeleteCounseling:
		date, _, ok := c.Counseling.Find(id)
		if !ok {
			return Confirmation{}, core.ErrNotFound
		}
		pd.date = date
		prompt = fmt.Sprintf("Delete counseling record of %s?", date)
	default:
		return Confirmation{}, core.NewArgumentError("invalid deletion kind %q", kind)
	}

	token := newToken()
	c.mu.Lock()
	c.track(token, pd)
	c.mu.Unlock()

	return Confirmation{Token: token, Kind: kind, ID: id, Prompt: prompt}, nil
}

// track remembers a pending token. Must be called with c.mu held.
func (c *Classroom) track(token string, pd pendingDeletion) {
	c.pending[token] = pd
	c.tokens = append(c.tokens, token)
	for len(c.tokens) > maxTokens {
		oldest := c.tokens[0]
		c.tokens = c.tokens[1:]
		delete(c.pending, oldest)
		delete(c.committed, oldest)
	}
}

// CommitDeletion applies a requested deletion. Committing the same token again is a no-op;
// an unknown (or long forgotten) token yields core.ErrNotFound.
func (c *Classroom) CommitDeletion(token string) error {
	c.mu.Lock()
	if _, done := c.committed[token]; done {
		c.mu.Unlock()
		return nil
	}
	pd, ok := c.pending[token]
	if !ok {
		c.mu.Unlock()
		return core.ErrNotFound
	}
	delete(c.pending, token)
	c.committed[token] = struct{}{}
	c.mu.Unlock()

	var err error
	switch pd.kind {
	case DeleteStudent:
		err = c.Roster.Delete(pd.id)
	case DeleteSubject:
		var removed []string
		removed, err = c.Curriculum.DeleteSubject(pd.id)
		if err == nil {
			c.logger.Debug("subject deleted", map[string]interface{}{"subject": pd.id, "assignments": removed})
		}
	case DeleteAssignment:
		err = c.Curriculum.DeleteAssignment(pd.id)
	case DeleteCounseling:
		err = c.Counseling.DeleteRecord(pd.date, pd.id)
	}

	if core.IsNotFound(err) {
		// already gone, e.g. deleted through another confirmation
		c.logger.Debug("deletion target already gone", map[string]interface{}{"kind": pd.kind, "id": pd.id})
		return nil
	}
	return err
}
