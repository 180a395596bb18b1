package core

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env       string // DEV (default), TEST, QA, PROD
	Debug     bool
	TestMode  bool
	Build     string
	AppName   string
	SecretKey string
	WorkDir   string

	FrontendBaseURL string

	Server struct {
		Host                      string
		Port                      int
		DebugHost                 string
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	Database struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          int
		DisableTLS    bool
	}

	Mail struct {
		DefaultFromEmail string
		OperatorEmail    string // fixed recipient for submission notifications
		SendgridAPIKey   string
	}

	Push struct {
		Endpoint  string
		ServerKey string // legacy key-based authorization
	}

	Notifications struct {
		Email bool
		Push  bool
	}

	Receipts struct {
		Storage string // "inline" (base64 data URL) | "blob" (object storage)
		Minio   struct {
			Endpoint  string
			AccessKey string
			SecretKey string
			Bucket    string
			UseSSL    bool
		}
	}

	Rollbar struct {
		Token string
	}
}

func (conf *Config) IsProd() bool { return conf.Env == "PROD" }

func (conf *Config) DefaultFromEmail() mail.Address {
	return mail.Address{Name: conf.AppName, Address: conf.Mail.DefaultFromEmail}
}

func (conf *Config) OperatorEmail() mail.Address {
	return mail.Address{Name: conf.AppName, Address: conf.Mail.OperatorEmail}
}

func (conf *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", conf.Server.Host, conf.Server.Port)
}

func (conf *Config) DatabaseAddress() string {
	return fmt.Sprintf("%s:%d", conf.Database.Host, conf.Database.Port)
}

// NewConfig loads the app configuration: defaults first, then an optional
// config/.env.<env> file, then environment variables (prefixed with <ENV>_).
func NewConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("build", "develop")
	v.SetDefault("appName", "ADX Setup")
	v.SetDefault("secretKey", "w3lc0me-t0-4dx-s3tup-ch4ng3-m3-1n-pr0d")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")

	v.SetDefault("serverHost", "0.0.0.0")
	v.SetDefault("serverPort", 8000)
	v.SetDefault("serverDebugHost", "0.0.0.0:4000")
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)

	v.SetDefault("databaseEngine", "postgres")
	v.SetDefault("databaseName", "adxsetup")
	v.SetDefault("databaseUser", "")
	v.SetDefault("databasePassword", "")
	v.SetDefault("databaseAdminUser", "")
	v.SetDefault("databaseAdminPassword", "")
	v.SetDefault("databaseHost", "localhost")
	v.SetDefault("databasePort", 5432)
	v.SetDefault("databaseDisableTLS", true)

	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("operatorEmail", "lectureradx@gmail.com")
	v.SetDefault("sendgridApiKey", "")

	v.SetDefault("pushEndpoint", "https://fcm.googleapis.com/fcm/send")
	v.SetDefault("pushServerKey", "")

	v.SetDefault("notifyEmail", true)
	v.SetDefault("notifyPush", false)

	v.SetDefault("receiptStorage", "inline")
	v.SetDefault("minioEndpoint", "localhost:9000")
	v.SetDefault("minioAccessKey", "")
	v.SetDefault("minioSecretKey", "")
	v.SetDefault("minioBucket", "receipts")
	v.SetDefault("minioUseSSL", false)

	v.SetDefault("rollbarToken", "")

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	v.SetEnvPrefix(env)

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("config.os.Getwd: %v", err)
	}

	// load config/.env.<env> if it exists (ignore if it does not)
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
		Env:             env,
		Debug:           v.GetBool("debug"),
		TestMode:        env == "TEST",
		Build:           v.GetString("build"),
		AppName:         v.GetString("appName"),
		SecretKey:       v.GetString("secretKey"),
		WorkDir:         wd,
		FrontendBaseURL: v.GetString("frontendBaseURL"),
	}
	conf.Server.Host = v.GetString("serverHost")
	conf.Server.Port = v.GetInt("serverPort")
	conf.Server.DebugHost = v.GetString("serverDebugHost")
	conf.Server.ShutdownTimeout = v.GetDuration("serverShutdownTimeout")
	conf.Server.JWTExpirationDelta = v.GetDuration("jwtExpirationDelta")
	conf.Server.JWTRefreshExpirationDelta = v.GetDuration("jwtRefreshExpirationDelta")

	conf.Database.Engine = v.GetString("databaseEngine")
	conf.Database.Name = v.GetString("databaseName")
	conf.Database.User = v.GetString("databaseUser")
	conf.Database.Password = v.GetString("databasePassword")
	conf.Database.AdminUser = v.GetString("databaseAdminUser")
	conf.Database.AdminPassword = v.GetString("databaseAdminPassword")
	conf.Database.Host = v.GetString("databaseHost")
	conf.Database.Port = v.GetInt("databasePort")
	conf.Database.DisableTLS = v.GetBool("databaseDisableTLS")

	conf.Mail.DefaultFromEmail = v.GetString("defaultFromEmail")
	conf.Mail.OperatorEmail = v.GetString("operatorEmail")
	conf.Mail.SendgridAPIKey = v.GetString("sendgridApiKey")

	conf.Push.Endpoint = v.GetString("pushEndpoint")
	conf.Push.ServerKey = v.GetString("pushServerKey")

	conf.Notifications.Email = v.GetBool("notifyEmail")
	conf.Notifications.Push = v.GetBool("notifyPush")

	conf.Receipts.Storage = v.GetString("receiptStorage")
	conf.Receipts.Minio.Endpoint = v.GetString("minioEndpoint")
	conf.Receipts.Minio.AccessKey = v.GetString("minioAccessKey")
	conf.Receipts.Minio.SecretKey = v.GetString("minioSecretKey")
	conf.Receipts.Minio.Bucket = v.GetString("minioBucket")
	conf.Receipts.Minio.UseSSL = v.GetBool("minioUseSSL")

	conf.Rollbar.Token = v.GetString("rollbarToken")
	return conf
}
