package domain

import "github.com/google/uuid"

// CanMutate reports whether actor may update or delete a resource owned
// by ownerID. Two actors qualify: the owner, or any administrator.
// A nil actor (anonymous caller) is always denied.
//
// This predicate is advisory in presentation code and authoritative in
// the service layer: every mutating operation re-checks it regardless of
// what controls the client rendered.
func CanMutate(ownerID uuid.UUID, actor *User) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin || actor.ID == ownerID
}
