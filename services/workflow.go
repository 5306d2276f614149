package services

import (
	"errors"
	"fmt"

	"github.com/pocketbase/pocketbase/core"
)

var (
	// ErrInvalidTransition is returned for a status move the workflow
	// does not define.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrRoleNotAllowed is returned when the acting role cannot perform
	// an otherwise valid transition.
	ErrRoleNotAllowed = errors.New("role not allowed for this transition")
)

// transition identifies one edge of a workflow.
type transition struct {
	from string
	to   string
}

// Indent workflow: draft → submitted → site_approved → approved, with
// rejection at either approval level and cancellation before final
// approval. Level one approval sits with the site store keeper, level
// two with head office purchase.
var indentTransitions = map[transition][]string{
	{"draft", "submitted"}:         {"admin", "stores", "purchase", "hr"},
	{"draft", "cancelled"}:         {"admin", "stores", "purchase", "hr"},
	{"submitted", "site_approved"}: {"admin", "stores"},
	{"submitted", "rejected"}:      {"admin", "stores"},
	{"submitted", "cancelled"}:     {"admin", "stores", "purchase"},
	{"site_approved", "approved"}:  {"admin", "purchase"},
	{"site_approved", "rejected"}:  {"admin", "purchase"},
	{"site_approved", "cancelled"}: {"admin", "purchase"},
}

// Purchase order workflow: draft → pending_approval → approved → sent →
// completed. Only admin signs off the approval itself.
var poTransitions = map[transition][]string{
	{"draft", "pending_approval"}:     {"admin", "purchase"},
	{"draft", "cancelled"}:            {"admin", "purchase"},
	{"pending_approval", "approved"}:  {"admin"},
	{"pending_approval", "rejected"}:  {"admin"},
	{"pending_approval", "cancelled"}: {"admin", "purchase"},
	{"approved", "sent"}:              {"admin", "purchase"},
	{"approved", "cancelled"}:         {"admin"},
	{"sent", "completed"}:             {"admin", "purchase", "stores"},
}

// CanTransitionIndent checks whether role may move an indent from one
// status to another.
func CanTransitionIndent(from, to, role string) error {
	return checkTransition(indentTransitions, from, to, role)
}

// CanTransitionPO checks whether role may move a purchase order from one
// status to another.
func CanTransitionPO(from, to, role string) error {
	return checkTransition(poTransitions, from, to, role)
}

func checkTransition(table map[transition][]string, from, to, role string) error {
	roles, ok := table[transition{from, to}]
	if !ok {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, from, to)
	}
	for _, r := range roles {
		if r == role {
			return nil
		}
	}
	return fmt.Errorf("%w: %s may not move %s to %s", ErrRoleNotAllowed, role, from, to)
}

// NextIndentStatuses lists the statuses the given role can move an
// indent to from its current status.
func NextIndentStatuses(from, role string) []string {
	return nextStatuses(indentTransitions, from, role)
}

// NextPOStatuses lists the statuses the given role can move a purchase
// order to.
func NextPOStatuses(from, role string) []string {
	return nextStatuses(poTransitions, from, role)
}

func nextStatuses(table map[transition][]string, from, role string) []string {
	var out []string
	// deterministic order for handlers and tests
	for _, to := range []string{"submitted", "pending_approval", "site_approved", "approved", "sent", "completed", "rejected", "cancelled"} {
		roles, ok := table[transition{from, to}]
		if !ok {
			continue
		}
		for _, r := range roles {
			if r == role {
				out = append(out, to)
				break
			}
		}
	}
	return out
}

// IndentEditable reports whether an indent's header and items may still
// be changed.
func IndentEditable(status string) bool {
	return status == "draft"
}

// POEditable reports whether a purchase order's header and line items may
// still be changed.
func POEditable(status string) bool {
	return status == "draft"
}

// ApplyTransition moves a document record to its next status and appends
// an audit row to approval_events. The action is the verb the actor
// took (submit, approve, reject, send, complete, cancel). Run it inside
// the caller's transaction so the status change and the audit row
// commit together.
func ApplyTransition(app core.App, record *core.Record, docType, action, to, actorID, comment string) error {
	from := record.GetString("status")

	record.Set("status", to)
	if err := app.Save(record); err != nil {
		return fmt.Errorf("save %s status: %w", docType, err)
	}

	col, err := app.FindCollectionByNameOrId("approval_events")
	if err != nil {
		return fmt.Errorf("approval_events collection: %w", err)
	}

	event := core.NewRecord(col)
	event.Set("doc_type", docType)
	event.Set("doc_id", record.Id)
	event.Set("action", action)
	event.Set("actor", actorID)
	event.Set("from_status", from)
	event.Set("to_status", to)
	event.Set("comment", comment)
	if err := app.Save(event); err != nil {
		return fmt.Errorf("save approval event: %w", err)
	}

	return nil
}
