// Package permissions holds the object-level authorization rule: safe
// operations are open to any authenticated user, mutations only to the
// owner of the resolved resource.
package permissions

import "cinescope/proj/internal/domain/models"

// Owned is any resource carrying the identity that created it.
type Owned interface {
	OwnerID() int64
}

func CanRead(u *models.User) bool {
	return u != nil && !u.IsAnonymous()
}

// CanModify reports whether u may update or delete res. The resource
// must already be resolved; the rule is never applied per-collection.
func CanModify(u *models.User, res Owned) bool {
	if !CanRead(u) {
		return false
	}
	return res.OwnerID() == u.ID
}
