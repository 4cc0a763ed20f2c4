package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
		errMsg  string
	}{
		{name: "short key", id: "E1"},
		{name: "uuid", id: "7c9e6679-7425-40de-944b-e07fc1f90ae7"},
		{name: "dotted and colon", id: "event:2026.05_01"},
		{name: "max length", id: strings.Repeat("a", MaxIDLen)},
		{name: "empty", id: "", wantErr: true, errMsg: "cannot be empty"},
		{name: "too long", id: strings.Repeat("a", MaxIDLen+1), wantErr: true, errMsg: "must not exceed"},
		{name: "space", id: "E 1", wantErr: true, errMsg: "can only contain"},
		{name: "leading dash", id: "-E1", wantErr: true, errMsg: "can only contain"},
		{name: "path traversal", id: "../E1", wantErr: true, errMsg: "can only contain"},
		{name: "cyrillic", id: "событие", wantErr: true, errMsg: "can only contain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID("record id", tt.id)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidID)
			assert.Contains(t, err.Error(), "record id")
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
