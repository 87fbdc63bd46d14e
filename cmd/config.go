package cmd

import "time"

type Config struct {
	HTTPPort       string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	DBMaxOpenConns int

	ExpiryWarnAfter   time.Duration
	ExpiryExpireAfter time.Duration
	ExpiryCron        string

	SMTPAddr     string
	SMTPHost     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	SMSGatewayURL    string
	SMSGatewayAPIKey string

	NotifyAcceptBaseURL string
}
