package notify

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"

	"github.com/pvaldas/sprintbot/internal/giphy"
)

type MockChatSession struct {
	mock.Mock
}

func (m *MockChatSession) GuildMembers(guildID string, after string, limit int, options ...discordgo.RequestOption) ([]*discordgo.Member, error) {
	args := m.Called(guildID, after, limit)
	if members, ok := args.Get(0).([]*discordgo.Member); ok {
		return members, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChatSession) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, content)
	if msg, ok := args.Get(0).(*discordgo.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockChatSession) ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, embed)
	if msg, ok := args.Get(0).(*discordgo.Message); ok {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockGifSearcher struct {
	mock.Mock
}

func (m *MockGifSearcher) Search(ctx context.Context, query string, offset, limit int) ([]giphy.Gif, error) {
	args := m.Called(query, offset, limit)
	if gifs, ok := args.Get(0).([]giphy.Gif); ok {
		return gifs, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Dispatch(event CompletionEvent) {
	m.Called(event)
}
