package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	// v2: the cached user value is an envelope that carries the password
	// hash; v1 entries stored the bare API model and must not be read back.
	UserKeyPrefix      = "user:v2:%d"
	ContactKeyPrefix   = "contact:%d:%d"
	ContactFacetPrefix = "facets:%d:%s"
)

const (
	UserTTL         = 5 * time.Minute
	ContactTTL      = 10 * time.Minute
	ContactFacetTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

// ContactKey identifies a contact within its owner's namespace so one
// user's cached contact can never leak to another.
func ContactKey(ownerID, contactID uint) string {
	return fmt.Sprintf(ContactKeyPrefix, ownerID, contactID)
}

// ContactFacetKey identifies a cached facet listing (cities, states,
// countries, types) for one owner.
func ContactFacetKey(ownerID uint, facet string) string {
	return fmt.Sprintf(ContactFacetPrefix, ownerID, facet)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// InvalidateContact drops the cached contact and every facet listing for
// the owner, since any contact write can change facet values.
func InvalidateContact(ctx context.Context, ownerID, contactID uint) {
	Invalidate(ctx, ContactKey(ownerID, contactID))
	for _, facet := range []string{"cities", "states", "countries", "contact_types", "communication_methods"} {
		Invalidate(ctx, ContactFacetKey(ownerID, facet))
	}
}
