package like

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Taichi-iskw/vidshare/cmd/cmdutil"
	"github.com/Taichi-iskw/vidshare/internal/app"
	"github.com/Taichi-iskw/vidshare/internal/service/toggle"
)

// Mock toggle engine
type mockEngine struct {
	ToggleLikeFunc func(ctx context.Context, actor uuid.UUID, target toggle.Target) (*toggle.Result, error)
}

func (m *mockEngine) ToggleLike(ctx context.Context, actor uuid.UUID, target toggle.Target) (*toggle.Result, error) {
	return m.ToggleLikeFunc(ctx, actor, target)
}

func (m *mockEngine) ToggleSubscription(ctx context.Context, actor uuid.UUID, channelID string) (*toggle.Result, error) {
	return nil, nil
}

var actor = uuid.MustParse("aaaaaaaa-0000-4000-8000-000000000001")

func TestParseTarget(t *testing.T) {
	tests := []struct {
		kind    string
		want    toggle.Target
		wantErr bool
	}{
		{kind: "video", want: toggle.VideoTarget{VideoID: "x"}},
		{kind: "comment", want: toggle.CommentTarget{CommentID: "x"}},
		{kind: "tweet", want: toggle.TweetTarget{TweetID: "x"}},
		{kind: "playlist", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			got, err := parseTarget(tt.kind, "x")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToggleCommand(t *testing.T) {
	tests := []struct {
		name        string
		present     bool
		wantMessage string
	}{
		{name: "added", present: true, wantMessage: "like added"},
		{name: "removed", present: false, wantMessage: "like removed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &mockEngine{
				ToggleLikeFunc: func(ctx context.Context, a uuid.UUID, target toggle.Target) (*toggle.Result, error) {
					assert.Equal(t, actor, a)
					assert.Equal(t, toggle.CommentTarget{CommentID: "c-1"}, target)
					return &toggle.Result{Present: tt.present}, nil
				},
			}

			cmd := NewLikeCommand(cmdutil.Static(&app.Services{Toggles: m}))
			var buf bytes.Buffer
			cmd.SetOut(&buf)
			cmd.SetArgs([]string{"toggle", "comment", "c-1", "--as", actor.String()})
			require.NoError(t, cmd.Execute())

			var out map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
			assert.Equal(t, tt.wantMessage, out["message"])
			assert.Equal(t, tt.present, out["payload"].(map[string]any)["present"])
		})
	}
}
