package tweet

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
	"github.com/Taichi-iskw/vidshare/internal/model"
	"github.com/Taichi-iskw/vidshare/internal/page"
)

// Mock tweet service
type mockTweetService struct {
	CreateTweetFunc    func(ctx context.Context, actor uuid.UUID, content string) (*model.Tweet, error)
	ListUserTweetsFunc func(ctx context.Context, userID string, params page.Params) (*page.Page[model.Tweet], error)
}

func (m *mockTweetService) CreateTweet(ctx context.Context, actor uuid.UUID, content string) (*model.Tweet, error) {
	return m.CreateTweetFunc(ctx, actor, content)
}

func (m *mockTweetService) UpdateTweet(ctx context.Context, actor uuid.UUID, tweetID, content string) (*model.Tweet, error) {
	return nil, nil
}

func (m *mockTweetService) DeleteTweet(ctx context.Context, actor uuid.UUID, tweetID string) error {
	return nil
}

func (m *mockTweetService) ListUserTweets(ctx context.Context, userID string, params page.Params) (*page.Page[model.Tweet], error) {
	return m.ListUserTweetsFunc(ctx, userID, params)
}

var actor = uuid.MustParse("aaaaaaaa-0000-4000-8000-000000000001")

func TestTweetCommands(t *testing.T) {
	m := &mockTweetService{
		CreateTweetFunc: func(ctx context.Context, a uuid.UUID, content string) (*model.Tweet, error) {
			return &model.Tweet{OwnerID: a, Content: content}, nil
		},
		ListUserTweetsFunc: func(ctx context.Context, userID string, params page.Params) (*page.Page[model.Tweet], error) {
			return &page.Page[model.Tweet]{Items: []model.Tweet{}, Page: 1, Limit: 15}, nil
		},
	}

	tests := []struct {
		name        string
		args        []string
		wantMessage string
		wantStatus  float64
	}{
		{name: "add", args: []string{"add", "--as", actor.String(), "--content", "hi"}, wantMessage: "tweet created", wantStatus: 201},
		{name: "empty list", args: []string{"list", actor.String()}, wantMessage: "tweets fetched", wantStatus: 200},
		{name: "delete", args: []string{"delete", "t-1", "--as", actor.String()}, wantMessage: "tweet deleted", wantStatus: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewTweetCommand(cmdutil.Static(&app.Services{Tweets: m}))
			var buf bytes.Buffer
			cmd.SetOut(&buf)
			cmd.SetArgs(tt.args)
			require.NoError(t, cmd.Execute())

			var out map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
			assert.Equal(t, tt.wantMessage, out["message"])
			assert.Equal(t, tt.wantStatus, out["status_code"])
		})
	}
}
