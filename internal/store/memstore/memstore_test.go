package memstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policypulse/backend/internal/models"
	"github.com/policypulse/backend/internal/store/memstore"
)

func TestReplaceAndAll(t *testing.T) {
	s := memstore.New()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.All())

	records := []models.LabeledRecord{
		{Document: models.Document{ID: "a", Text: "one"}},
		{Document: models.Document{ID: "b", Text: "two"}},
	}
	s.Replace(records)
	assert.Equal(t, 2, s.Len())

	got := s.All()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
}

func TestReplaceOverwrites(t *testing.T) {
	s := memstore.New()
	s.Replace([]models.LabeledRecord{{Document: models.Document{ID: "a"}}})
	s.Replace([]models.LabeledRecord{{Document: models.Document{ID: "b"}}})

	got := s.All()
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestAllReturnsCopy(t *testing.T) {
	s := memstore.New()
	s.Replace([]models.LabeledRecord{{Document: models.Document{ID: "a", Text: "original"}}})

	got := s.All()
	got[0].Text = "mutated"

	assert.Equal(t, "original", s.All()[0].Text)
}
