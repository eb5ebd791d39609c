// Package ident derives stable statement identifiers. Identical inputs
// always produce the identical UUID, which makes resubmission of the same
// logical event idempotent downstream.
package ident

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
)

// Derive computes a version-5 UUID from the platform identity, the verb,
// and the ordered identifier parts. Each part is length-prefixed before
// hashing so distinct part sequences can never collide through separator
// confusion ("a"+"bc" vs "ab"+"c").
func Derive(platform, verb string, parts []string) uuid.UUID {
	ns := uuid.NewSHA1(uuid.NameSpaceURL, []byte(platform))
	var buf bytes.Buffer
	writePart(&buf, verb)
	for _, p := range parts {
		writePart(&buf, p)
	}
	return uuid.NewSHA1(ns, buf.Bytes())
}

func writePart(buf *bytes.Buffer, p string) {
	fmt.Fprintf(buf, "%d:%s", len(p), p)
}
