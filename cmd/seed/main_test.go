package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/passin/backend/pkg/utils"
)

func TestDemoEventSlugMatchesTitle(t *testing.T) {
	e := demoEvent()
	assert.Equal(t, utils.GenerateSlug(e.Title), e.Slug)
	assert.Equal(t, "05cb3e61-67d4-4e6a-8bc6-6f5b4d759bbb", e.ID.String())
	if assert.NotNil(t, e.MaximumAttendees) {
		assert.Equal(t, 120, *e.MaximumAttendees)
	}
}
