package main

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContact(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	contact := newContact("Dave Miller", "555-0101", "Miller LLC", now)

	assert.Equal(t, "CON-"+strconv.FormatInt(now.Unix(), 10), contact.ID)
	assert.Equal(t, "Dave Miller", contact.Name)
	assert.Equal(t, "555-0101", contact.Phone)
	require.NotNil(t, contact.Company)
	assert.Equal(t, "Miller LLC", *contact.Company)

	// Same timestamp format as capture-derived contacts.
	assert.Equal(t, now.Format(time.RFC3339), contact.CreatedAt)
	_, err := time.Parse(time.RFC3339, contact.CreatedAt)
	assert.NoError(t, err)
}

func TestNewContactEmptyCompanyIsAbsent(t *testing.T) {
	contact := newContact("Zoe", "", "", time.Now())
	assert.Nil(t, contact.Company)
}
