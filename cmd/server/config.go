package main

import (
	"time"

	"cpprofile-backend/internal/components/telemetry"
	"cpprofile-backend/internal/scrapers/codechef"
	"cpprofile-backend/internal/scrapers/codeforces"
	"cpprofile-backend/internal/scrapers/leetcode"
)

type PlatformConfig struct {
	BaseUrl string `json:"base_url"`
}

type PlatformsConfig struct {
	CodeChef   PlatformConfig `json:"codechef"`
	LeetCode   PlatformConfig `json:"leetcode"`
	Codeforces PlatformConfig `json:"codeforces"`
}

type Config struct {
	Port                int              `json:"port"`
	FetchTimeoutSeconds int              `json:"fetch_timeout_seconds"`
	CorsOrigins         []string         `json:"cors_origins"`
	Platforms           PlatformsConfig  `json:"platforms"`
	Telemetry           telemetry.Config `json:"telemetry"`
}

func (c Config) fetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

func defaultConfig() Config {
	return Config{
		Port:                3000,
		FetchTimeoutSeconds: 30,
		CorsOrigins:         []string{"*"},
		Platforms: PlatformsConfig{
			CodeChef:   PlatformConfig{BaseUrl: codechef.DefaultBaseUrl},
			LeetCode:   PlatformConfig{BaseUrl: leetcode.DefaultBaseUrl},
			Codeforces: PlatformConfig{BaseUrl: codeforces.DefaultBaseUrl},
		},
	}
}
