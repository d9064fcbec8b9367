package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tubebridge/server/internal/app"
)

type configVar[T any] struct {
	envKey       string
	flagKey      string
	defaultValue T
}

var (
	host = configVar[string]{
		envKey:       "SERVER_HOST",
		flagKey:      "host",
		defaultValue: "0.0.0.0",
	}
	port = configVar[int]{
		envKey:       "SERVER_PORT",
		flagKey:      "port",
		defaultValue: 8080,
	}
	logLevel = configVar[string]{
		envKey:       "SERVER_LOG_LEVEL",
		flagKey:      "log-level",
		defaultValue: "INFO",
	}
	controlsHideTimeoutMs = configVar[int]{
		envKey:       "SERVER_CONTROLS_HIDE_TIMEOUT_MS",
		flagKey:      "controls-hide-timeout-ms",
		defaultValue: 3000,
	}
	fullscreenReseekDelayMs = configVar[int]{
		envKey:       "SERVER_FULLSCREEN_RESEEK_DELAY_MS",
		flagKey:      "fullscreen-reseek-delay-ms",
		defaultValue: 500,
	}
	sessionTTLHours = configVar[int]{
		envKey:       "SERVER_SESSION_TTL_HOURS",
		flagKey:      "session-ttl-hours",
		defaultValue: 24,
	}
	redisHost = configVar[string]{
		envKey:       "REDIS_HOST",
		flagKey:      "redis-host",
		defaultValue: "localhost",
	}
	redisPort = configVar[int]{
		envKey:       "REDIS_PORT",
		flagKey:      "redis-port",
		defaultValue: 6379,
	}
	redisPassword = configVar[string]{
		envKey:       "REDIS_PASSWORD",
		flagKey:      "redis-password",
		defaultValue: "",
	}
)

func loadAppConfig() *app.AppConfig {
	pflag.String(host.flagKey, host.defaultValue, "Server host")
	pflag.Int(port.flagKey, port.defaultValue, "Server port")
	pflag.String(logLevel.flagKey, logLevel.defaultValue, "Logging level")
	pflag.Int(controlsHideTimeoutMs.flagKey, controlsHideTimeoutMs.defaultValue, "Delay before player controls auto-hide, in milliseconds")
	pflag.Int(fullscreenReseekDelayMs.flagKey, fullscreenReseekDelayMs.defaultValue, "Delay before the compensating seek after a fullscreen switch, in milliseconds")
	pflag.Int(sessionTTLHours.flagKey, sessionTTLHours.defaultValue, "Player session time to live, in hours")
	pflag.String(redisHost.flagKey, redisHost.defaultValue, "Redis host")
	pflag.Int(redisPort.flagKey, redisPort.defaultValue, "Redis port")
	pflag.String(redisPassword.flagKey, redisPassword.defaultValue, "Redis password")
	pflag.Parse()

	viper.BindPFlags(pflag.CommandLine)

	viper.BindEnv(host.flagKey, host.envKey)
	viper.BindEnv(port.flagKey, port.envKey)
	viper.BindEnv(logLevel.flagKey, logLevel.envKey)
	viper.BindEnv(controlsHideTimeoutMs.flagKey, controlsHideTimeoutMs.envKey)
	viper.BindEnv(fullscreenReseekDelayMs.flagKey, fullscreenReseekDelayMs.envKey)
	viper.BindEnv(sessionTTLHours.flagKey, sessionTTLHours.envKey)
	viper.BindEnv(redisHost.flagKey, redisHost.envKey)
	viper.BindEnv(redisPort.flagKey, redisPort.envKey)
	viper.BindEnv(redisPassword.flagKey, redisPassword.envKey)

	viper.SetDefault(host.flagKey, host.defaultValue)
	viper.SetDefault(port.flagKey, port.defaultValue)
	viper.SetDefault(logLevel.flagKey, logLevel.defaultValue)
	viper.SetDefault(controlsHideTimeoutMs.flagKey, controlsHideTimeoutMs.defaultValue)
	viper.SetDefault(fullscreenReseekDelayMs.flagKey, fullscreenReseekDelayMs.defaultValue)
	viper.SetDefault(sessionTTLHours.flagKey, sessionTTLHours.defaultValue)
	viper.SetDefault(redisHost.flagKey, redisHost.defaultValue)
	viper.SetDefault(redisPort.flagKey, redisPort.defaultValue)
	viper.SetDefault(redisPassword.flagKey, redisPassword.defaultValue)

	return &app.AppConfig{
		Host:                    viper.GetString(host.flagKey),
		Port:                    viper.GetInt(port.flagKey),
		LogLevel:                viper.GetString(logLevel.flagKey),
		ControlsHideTimeoutMs:   viper.GetInt(controlsHideTimeoutMs.flagKey),
		FullscreenReseekDelayMs: viper.GetInt(fullscreenReseekDelayMs.flagKey),
		SessionTTLHours:         viper.GetInt(sessionTTLHours.flagKey),
		RedisHost:               viper.GetString(redisHost.flagKey),
		RedisPort:               viper.GetInt(redisPort.flagKey),
		RedisPassword:           viper.GetString(redisPassword.flagKey),
	}
}

func main() {
	ctx := context.Background()

	appConfig := loadAppConfig()

	jsonConfig, _ := json.MarshalIndent(appConfig, "", "  ")
	fmt.Printf("starting app with config: %s\n", jsonConfig)

	log.Fatal(app.Run(ctx, appConfig))
}
