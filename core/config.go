package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conf is set by NewConfig. Most consumers receive a *Config explicitly;
// the global remains for template rendering and JWT middleware setup.
var Conf *Config

type (
	ServerConfig struct {
		Host                      string
		DebugHost                 string
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	// CapstoneConfig points at the collaborator API owning all durable state.
	CapstoneConfig struct {
		BaseURL string
		APIKey  string
		Timeout time.Duration
	}

	AssistantConfig struct {
		PollInterval time.Duration
		MaxAttempts  int
	}

	CampusConfig struct {
		// TimeSlots entries are "HH:mm-HH:mm" or "Label|HH:mm-HH:mm".
		TimeSlots []string
	}

	Config struct {
		Env      string
		Build    string
		AppName  string
		Debug    bool
		TestMode bool

		SecretKey        string
		WorkDir          string
		FrontendBaseURL  string
		DefaultFromEmail mail.Address
		SendgridApiKey   string
		RollbarToken     string

		Server    ServerConfig
		Capstone  CapstoneConfig
		Assistant AssistantConfig
		Campus    CampusConfig
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "FPT Capstone Tracking")
	v.SetDefault("secretKey", "poq5-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("rollbarToken", "")

	v.SetDefault("serverHost", "0.0.0.0:8000")
	v.SetDefault("serverDebugHost", "0.0.0.0:4000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)

	v.SetDefault("capstoneBaseURL", "http://localhost:5000/api")
	v.SetDefault("capstoneApiKey", "")
	v.SetDefault("capstoneTimeout", 30*time.Second)

	v.SetDefault("assistantPollInterval", 2*time.Second)
	v.SetDefault("assistantMaxAttempts", 60)

	// campus defaults; override per deployment
	v.SetDefault("campusTimeSlots", []string{"08:00-12:00", "13:00-17:00"})

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	wd := Getwd()

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:      env,
		Build:    v.GetString("build"),
		AppName:  v.GetString("appName"),
		Debug:    v.GetBool("debug"),
		TestMode: env == "TEST",

		SecretKey:        v.GetString("secretKey"),
		WorkDir:          wd,
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		DefaultFromEmail: mail.Address{Name: v.GetString("appName"), Address: v.GetString("defaultFromEmail")},
		SendgridApiKey:   v.GetString("sendgridApiKey"),
		RollbarToken:     v.GetString("rollbarToken"),

		Server: ServerConfig{
			Host:                      v.GetString("serverHost"),
			DebugHost:                 v.GetString("serverDebugHost"),
			ShutdownTimeout:           v.GetDuration("serverShutdownTimeout"),
			JWTExpirationDelta:        v.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: v.GetDuration("jwtRefreshExpirationDelta"),
		},
		Capstone: CapstoneConfig{
			BaseURL: v.GetString("capstoneBaseURL"),
			APIKey:  v.GetString("capstoneApiKey"),
			Timeout: v.GetDuration("capstoneTimeout"),
		},
		Assistant: AssistantConfig{
			PollInterval: v.GetDuration("assistantPollInterval"),
			MaxAttempts:  v.GetInt("assistantMaxAttempts"),
		},
		Campus: CampusConfig{
			TimeSlots: v.GetStringSlice("campusTimeSlots"),
		},
	}

	Conf = conf
	return conf
}
