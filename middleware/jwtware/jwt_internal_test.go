package jwtware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		scheme  string
		want    string
		wantErr bool
	}{
		{name: "bearer", header: "Bearer abc.def.ghi", scheme: "Bearer", want: "abc.def.ghi"},
		{name: "custom scheme", header: "Token abc", scheme: "Token", want: "abc"},
		{name: "empty header", header: "", scheme: "Bearer", wantErr: true},
		{name: "scheme only", header: "Bearer", scheme: "Bearer", wantErr: true},
		{name: "empty token", header: "Bearer ", scheme: "Bearer", wantErr: true},
		{name: "double space", header: "Bearer  abc", scheme: "Bearer", wantErr: true},
		{name: "trailing segment", header: "Bearer abc def", scheme: "Bearer", wantErr: true},
		{name: "tab in token", header: "Bearer abc\tdef", scheme: "Bearer", wantErr: true},
		{name: "case sensitive scheme", header: "bearer abc", scheme: "Bearer", wantErr: true},
		{name: "other scheme", header: "Basic abc", scheme: "Bearer", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractToken(tt.header, tt.scheme)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrJWTMissingOrMalformed)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
