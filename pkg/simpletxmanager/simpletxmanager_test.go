package simpletxmanager

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "serialization failure", err: &pq.Error{Code: "40001"}, want: true},
		{name: "wrapped serialization failure", err: fmt.Errorf("create: %w", &pq.Error{Code: "40001"}), want: true},
		{name: "other pq error", err: &pq.Error{Code: "23505"}, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSerializationFailure(tt.err))
		})
	}
}
