package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractContact(t *testing.T) {
	tests := []struct {
		description string
		want        string
		found       bool
	}{
		{"Payment from Alice", "Alice", true},
		{"Sent to Bob", "Bob", true},
		{"Dinner with Carol (split)", "Carol", true},
		{"Transfer from account 1033623433", "", false},
		{"payment from alice", "", false},
		{"Grocery Store", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			name, ok := ExtractContact(tt.description)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestExtractContact_FromBeforeTo(t *testing.T) {
	name, ok := ExtractContact("Refund to Dave from Erin")

	assert.True(t, ok)
	assert.Equal(t, "Erin", name)
}
