package service

import "vidstream/internal/model"

// authorizeOwner is the ownership guard: a mutation is allowed only
// when the authenticated principal is the recorded owner of the
// loaded resource. Services call it after loading the resource and
// before any mutating store call; the owner field is never taken from
// client input.
func authorizeOwner(principalID string, ownerID string) error {
	if principalID == "" || principalID != ownerID {
		return model.ErrForbidden
	}
	return nil
}
