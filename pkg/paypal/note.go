package paypal

import (
	"fmt"
	"regexp"
	"strconv"
)

// Payout notes look like "Settlement from a@x.com to b@y.com (2814976639)".
// The trailing parenthesized number is the destination tag; it is the only
// part reconciliation depends on, the rest is for humans reading their PayPal
// activity.

var noteTagPattern = regexp.MustCompile(`\((\d+)\)\s*$`)

// BuildNote renders the payout note for a settlement from sender to receiver
// under the given destination tag.
func BuildNote(sender, receiver string, tag uint32) string {
	return fmt.Sprintf("Settlement from %s to %s (%d)", sender, receiver, tag)
}

// ParseNoteTag extracts the destination tag from a payout note.
func ParseNoteTag(note string) (uint32, error) {
	m := noteTagPattern.FindStringSubmatch(note)
	if m == nil {
		return 0, fmt.Errorf("note %q carries no destination tag", note)
	}
	tag, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("note %q carries an invalid destination tag: %w", note, err)
	}
	return uint32(tag), nil
}
