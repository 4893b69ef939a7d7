package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Port             string `mapstructure:"PORT"`
	ServiceName      string `mapstructure:"SERVICE_NAME"`
	PostgresUsername string `mapstructure:"POSTGRES_USERNAME"`
	PostgresPassword string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresDatabase string `mapstructure:"POSTGRES_DATABASE"`
	PostgresSSLMode  string `mapstructure:"POSTGRES_SSLMODE"`
	PostgresHost     string `mapstructure:"POSTGRES_HOST"`
	PostgresPort     string `mapstructure:"POSTGRES_PORT"`
	RabbitMQURL      string `mapstructure:"RABBITMQ_URL"`

	AccessTokenSecret  string `mapstructure:"ACCESS_TOKEN_SECRET"`
	RefreshTokenSecret string `mapstructure:"REFRESH_TOKEN_SECRET"`
	AccessTokenExpiry  string `mapstructure:"ACCESS_TOKEN_EXPIRATION"`
	RefreshTokenExpiry string `mapstructure:"REFRESH_TOKEN_EXPIRATION"`
	OtpExpiryMinutes   int    `mapstructure:"OTP_EXPIRATION_MINUTES"`

	RazorpayURI      string `mapstructure:"RAZORPAY_URI"`
	RazorpayUsername string `mapstructure:"RAZORPAY_USERNAME"`
	RazorpayPassword string `mapstructure:"RAZORPAY_PASSWORD"`
	RazorpayAccount  string `mapstructure:"RAZORPAY_ACCOUNT"`

	AWSEndpoint      string `mapstructure:"AWS_ENDPOINT"`
	AWSBucket        string `mapstructure:"AWS_BUCKET"`
	AWSDefaultRegion string `mapstructure:"AWS_DEFAULT_REGION"`
	AWSAccessKey     string `mapstructure:"AWS_ACCESS_KEY"`
	AWSSecretKey     string `mapstructure:"AWS_SECRET_KEY"`

	SMTPHost  string `mapstructure:"SMTP_HOST"`
	SMTPPort  int    `mapstructure:"SMTP_PORT"`
	SMTPUser  string `mapstructure:"SMTP_USER"`
	SMTPPass  string `mapstructure:"SMTP_PASS"`
	SMTPEmail string `mapstructure:"SMTP_EMAIL"`

	TwilioSID    string `mapstructure:"TWILIO_SID"`
	TwilioToken  string `mapstructure:"TWILIO_TOKEN"`
	TwilioMobile string `mapstructure:"TWILIO_MOBILE"`
}

func Read() *AppConfig {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()

	bindEnvVariables()
	setDefaults()

	var appConfig AppConfig
	err := viper.Unmarshal(&appConfig)
	if err != nil {
		panic(fmt.Errorf("fatal error unmarshalling config: %w", err))
	}

	return &appConfig
}

func bindEnvVariables() {
	_ = viper.BindEnv("PORT")
	_ = viper.BindEnv("SERVICE_NAME")
	_ = viper.BindEnv("POSTGRES_USERNAME")
	_ = viper.BindEnv("POSTGRES_PASSWORD")
	_ = viper.BindEnv("POSTGRES_DATABASE")
	_ = viper.BindEnv("POSTGRES_SSLMODE")
	_ = viper.BindEnv("POSTGRES_HOST")
	_ = viper.BindEnv("POSTGRES_PORT")
	_ = viper.BindEnv("RABBITMQ_URL")
	_ = viper.BindEnv("ACCESS_TOKEN_SECRET")
	_ = viper.BindEnv("REFRESH_TOKEN_SECRET")
	_ = viper.BindEnv("ACCESS_TOKEN_EXPIRATION")
	_ = viper.BindEnv("REFRESH_TOKEN_EXPIRATION")
	_ = viper.BindEnv("OTP_EXPIRATION_MINUTES")
	_ = viper.BindEnv("RAZORPAY_URI")
	_ = viper.BindEnv("RAZORPAY_USERNAME")
	_ = viper.BindEnv("RAZORPAY_PASSWORD")
	_ = viper.BindEnv("RAZORPAY_ACCOUNT")
	_ = viper.BindEnv("AWS_ENDPOINT")
	_ = viper.BindEnv("AWS_BUCKET")
	_ = viper.BindEnv("AWS_DEFAULT_REGION")
	_ = viper.BindEnv("AWS_ACCESS_KEY")
	_ = viper.BindEnv("AWS_SECRET_KEY")
	_ = viper.BindEnv("SMTP_HOST")
	_ = viper.BindEnv("SMTP_PORT")
	_ = viper.BindEnv("SMTP_USER")
	_ = viper.BindEnv("SMTP_PASS")
	_ = viper.BindEnv("SMTP_EMAIL")
	_ = viper.BindEnv("TWILIO_SID")
	_ = viper.BindEnv("TWILIO_TOKEN")
	_ = viper.BindEnv("TWILIO_MOBILE")
}

func setDefaults() {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("SERVICE_NAME", "resale")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", "5432")
	viper.SetDefault("ACCESS_TOKEN_SECRET", "dev-access-secret")
	viper.SetDefault("REFRESH_TOKEN_SECRET", "dev-refresh-secret")
	viper.SetDefault("ACCESS_TOKEN_EXPIRATION", "168h")
	viper.SetDefault("REFRESH_TOKEN_EXPIRATION", "720h")
	viper.SetDefault("OTP_EXPIRATION_MINUTES", 1)
	viper.SetDefault("RAZORPAY_URI", "https://api.razorpay.com/v1")
	viper.SetDefault("SMTP_PORT", 587)
}
