package core

import "time"

type Config struct {
	Spotify    SpotifyConfig
	SoundCloud SoundCloudConfig
	YouTube    YouTubeConfig
	Download   DownloadConfig
	Log        LogConfig
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
}

type SoundCloudConfig struct {
	ClientID     string
	ClientSecret string
}

type YouTubeConfig struct {
	APIKey  string
	Timeout time.Duration
}

type DownloadConfig struct {
	OutputDir   string
	YTDLPPath   string
	HTTPTimeout time.Duration
}

type LogConfig struct {
	Level string
}

func DefaultConfig() *Config {
	return &Config{
		YouTube: YouTubeConfig{
			Timeout: 10 * time.Second,
		},
		Download: DownloadConfig{
			OutputDir:   ".",
			YTDLPPath:   "yt-dlp",
			HTTPTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
