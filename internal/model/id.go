package model

import (
	"strconv"
	"strings"
	"time"
)

var idTags = map[Intent]string{
	IntentInvoice: "INV",
	IntentTask:    "TSK",
	IntentContact: "CON",
	IntentExpense: "EXP",
}

// NewID allocates a human-legible record identifier of the form
// {TAG}-{unix-seconds}. Two records of the same kind allocated within the
// same second collide; the primary-key constraint catches that at insert.
func NewID(kind Intent) string {
	return NewIDAt(kind, time.Now())
}

// NewIDAt is NewID with an explicit clock, for derived IDs and tests.
func NewIDAt(kind Intent, t time.Time) string {
	tag, ok := idTags[kind]
	if !ok {
		tag = string(kind)
	}
	return tag + "-" + strconv.FormatInt(t.Unix(), 10)
}

// IDTimestamp recovers the allocation time from a record identifier by
// parsing its numeric suffix. Unparsable IDs yield 0, which sorts them to
// the oldest position in activity ordering.
func IDTimestamp(id string) int64 {
	_, suffix, found := strings.Cut(id, "-")
	if !found {
		return 0
	}
	ts, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil {
		return 0
	}
	return ts
}
