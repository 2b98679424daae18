package util

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
)

func TestNewID(t *testing.T) {
	t.Run("parses as uuid", func(t *testing.T) {
		id := NewID()
		if _, err := uuid.Parse(id); err != nil {
			t.Errorf("NewID() = %q is not a uuid: %v", id, err)
		}
	})

	t.Run("generates unique IDs", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 1000; i++ {
			id := NewID()
			if seen[id] {
				t.Errorf("duplicate id generated: %q", id)
			}
			seen[id] = true
		}
	})
}

func TestNewObjectID(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9a-f]{24}$`)
	for i := 0; i < 100; i++ {
		id := NewObjectID()
		if !pattern.MatchString(id) {
			t.Errorf("id %q is not 24 lowercase hex characters", id)
		}
	}
}
