package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// PageUUID derives the stable record identifier for a page handle so repeated
// saves of the same handle upsert rather than fork new rows.
func PageUUID(handle string) uuid.UUID {
	return UUID("go-storefront:page:" + strings.ToLower(strings.TrimSpace(handle)))
}

// ProductUUID derives the stable record identifier for a product handle.
func ProductUUID(handle string) uuid.UUID {
	return UUID("go-storefront:product:" + strings.ToLower(strings.TrimSpace(handle)))
}

// SectionID derives a stable section identifier for template-instantiated
// sections. Instantiating the same template kind twice yields the same IDs,
// keeping edit targets stable across rebuilds.
func SectionID(templateKind, sectionType string, position int) string {
	key := "go-storefront:section:" + strings.TrimSpace(templateKind) + ":" + strings.TrimSpace(sectionType) + ":" + strconv.Itoa(position)
	return UUID(key).String()
}
