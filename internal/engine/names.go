package engine

import (
	"math/rand"
	"strings"
)

// randomPlayerName generates a display name of 5 distinct random letters
// followed by 3 distinct random digits, e.g. "kzqme731". Names are not
// secrets, so math/rand is fine; uniqueness within a session is enforced by
// the caller retrying on collision.
func randomPlayerName() string {
	var b strings.Builder
	for _, i := range rand.Perm(26)[:5] {
		b.WriteByte('a' + byte(i))
	}
	for _, i := range rand.Perm(10)[:3] {
		b.WriteByte('0' + byte(i))
	}
	return b.String()
}
