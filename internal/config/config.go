package config

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultAICooldown    = 5 * time.Second
	defaultSweepSchedule = "0 2 * * *" // daily at 02:00
)

type Config struct {
	ProjectID     string
	Region        string
	LogLevel      string
	KMSKeyName    string
	VertexModel   string
	AICooldown    time.Duration
	SweepSchedule string
}

func New() *Config {
	return &Config{
		ProjectID:     os.Getenv("PROJECTID"),
		Region:        os.Getenv("REGION"),
		LogLevel:      os.Getenv("LOGLEVEL"),
		KMSKeyName:    os.Getenv("KMSKEYNAME"),
		VertexModel:   os.Getenv("VERTEXMODEL"),
		AICooldown:    getCooldown(os.Getenv("AICOOLDOWNSECONDS")),
		SweepSchedule: getSweepSchedule(os.Getenv("SWEEPSCHEDULE")),
	}
}

func getCooldown(raw string) time.Duration {
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		return defaultAICooldown
	}
	return time.Duration(seconds) * time.Second
}

func getSweepSchedule(raw string) string {
	if raw == "" {
		return defaultSweepSchedule
	}
	return raw
}
