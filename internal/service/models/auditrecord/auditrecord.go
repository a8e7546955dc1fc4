package auditrecord

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Action is the kind of mutation an audit record describes.
type Action string

const (
	ActionCreated       Action = "created"
	ActionStatusChanged Action = "status_changed"
	ActionCancelled     Action = "cancelled"
)

var ErrInvalidAction = errors.New("invalid audit action")

func (a Action) String() string {
	return string(a)
}

func (a Action) Value() (driver.Value, error) {
	return a.String(), nil
}

// ParseAction converts a string into an Action.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionCreated, ActionStatusChanged, ActionCancelled:
		return Action(s), nil
	default:
		return "", ErrInvalidAction
	}
}

// AuditRecord is one append-only log entry describing a mutation. Records are
// written in the same transaction as the mutation they describe and are never
// updated or deleted through the service.
type AuditRecord struct {
	ID        int64           `json:"id"`
	TableName string          `json:"tableName"`
	Action    Action          `json:"action"`
	RecordID  int64           `json:"recordId"`
	ActorID   int64           `json:"actorId"`
	OldValue  json.RawMessage `json:"oldValue,omitempty"`
	NewValue  json.RawMessage `json:"newValue,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
