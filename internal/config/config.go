package config

import (
	"fmt"
	"os"
)

// channelEnvVars maps a program code to the environment variable holding
// its destination channel id.
var channelEnvVars = map[string]string{
	"WD": "WD_CHANNEL_ID",
	"DA": "DA_CHANNEL_ID",
	"DS": "DS_CHANNEL_ID",
	"DE": "DE_CHANNEL_ID",
}

type Config struct {
	ServerAddr     string
	DatabaseDSN    string
	AllowedOrigins []string

	DiscordToken string
	GuildID      string
	GiphyAPIKey  string

	// ChannelRouting maps a program code (the letters before the dash in a
	// sprint code) to a channel id. Codes without an entry route to
	// DefaultChannelID.
	ChannelRouting   map[string]string
	DefaultChannelID string
}

func NewConfig(serverAddr, databaseDSN string, allowedOrigins []string) (*Config, error) {
	if serverAddr == "" {
		return nil, fmt.Errorf("server address cannot be empty")
	}
	if databaseDSN == "" {
		return nil, fmt.Errorf("database DSN cannot be empty")
	}

	cfg := &Config{
		ServerAddr:     serverAddr,
		DatabaseDSN:    databaseDSN,
		AllowedOrigins: allowedOrigins,
		DiscordToken:   os.Getenv("DISCORD_BOT_TOKEN"),
		GuildID:        os.Getenv("DISCORD_GUILD_ID"),
		GiphyAPIKey:    os.Getenv("GIPHY_API_KEY"),
	}

	if cfg.DiscordToken == "" {
		return nil, fmt.Errorf("DISCORD_BOT_TOKEN must be set")
	}
	if cfg.GuildID == "" {
		return nil, fmt.Errorf("DISCORD_GUILD_ID must be set")
	}
	if cfg.GiphyAPIKey == "" {
		return nil, fmt.Errorf("GIPHY_API_KEY must be set")
	}

	cfg.ChannelRouting = routingFromEnv()

	// Every sprint code must route somewhere, so the fallback channel is
	// required even when all program channels are configured.
	cfg.DefaultChannelID = os.Getenv("GENERAL_CHANNEL_ID")
	if cfg.DefaultChannelID == "" {
		return nil, fmt.Errorf("GENERAL_CHANNEL_ID must be set")
	}

	return cfg, nil
}

func routingFromEnv() map[string]string {
	routes := make(map[string]string, len(channelEnvVars))
	for code, envVar := range channelEnvVars {
		if id := os.Getenv(envVar); id != "" {
			routes[code] = id
		}
	}
	return routes
}
