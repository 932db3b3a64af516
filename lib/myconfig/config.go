package myconfig

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "USERAREA"

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	GCloud      GCloudConfig      `mapstructure:"gcloud"`
	Lock        LockConfig        `mapstructure:"lock"`
	Cart        CartConfig        `mapstructure:"cart"`
	Payment     PaymentConfig     `mapstructure:"payment"`
	FrontOffice FrontOfficeConfig `mapstructure:"frontoffice"`
	Signature   SignatureConfig   `mapstructure:"signature"`
	HTTPClient  HTTPClientConfig  `mapstructure:"httpclient"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Async       AsyncConfig       `mapstructure:"async"`
	Log         LogConfig         `mapstructure:"log"`
}

type LogConfig struct {
	// DEBUG, INFO, WARN or ERROR
	Level string `mapstructure:"level"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type DatabaseConfig struct {
	// empty means: keep everything in memory
	URL string `mapstructure:"url"`
}

type GCloudConfig struct {
	ProjectID  string `mapstructure:"projectId"`
	LocationID string `mapstructure:"locationId"`
	QueueName  string `mapstructure:"queueName"`
}

type LockConfig struct {
	Tables         []string      `mapstructure:"tables"`
	TimeoutMinutes int           `mapstructure:"timeoutMinutes"`
	SweepCron      string        `mapstructure:"sweepCron"`
	LeaseMinHold   time.Duration `mapstructure:"leaseMinHold"`
	LeaseMaxHold   time.Duration `mapstructure:"leaseMaxHold"`
}

func (c LockConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMinutes) * time.Minute
}

type CartConfig struct {
	AwaitingPaymentStatus string `mapstructure:"awaitingPaymentStatus"`
}

type PaymentConfig struct {
	PlatformURL    string `mapstructure:"platformUrl"`
	CreateEndpoint string `mapstructure:"createEndpoint"`
	CallbackURL    string `mapstructure:"callbackUrl"`
	// the fake platform never calls back; settle a transaction with POST /fake/transactions/{id}/settle?status=PAID
	UseFakePlatform   bool     `mapstructure:"useFakePlatform"`
	SearchableColumns []string `mapstructure:"searchableColumns"`
}

type FrontOfficeConfig struct {
	URL                     string `mapstructure:"url"`
	PaymentUpdateEndpoint   string `mapstructure:"paymentUpdateEndpoint"`
	SignatureDeleteEndpoint string `mapstructure:"signatureDeleteEndpoint"`
}

type SignatureConfig struct {
	URL            string `mapstructure:"url"`
	ModifyEndpoint string `mapstructure:"modifyEndpoint"`
	DeleteEndpoint string `mapstructure:"deleteEndpoint"`
	ListEndpoint   string `mapstructure:"listEndpoint"`
}

type HTTPClientConfig struct {
	ConnectTimeout time.Duration `mapstructure:"connectTimeout"`
	ReadTimeout    time.Duration `mapstructure:"readTimeout"`
	RetryCount     int           `mapstructure:"retryCount"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwtSecret"`
}

type AsyncConfig struct {
	MaxConcurrent int64 `mapstructure:"maxConcurrent"`
}

var defaults = map[string]any{
	"server.port":                         8080,
	"database.url":                        "",
	"log.level":                           "INFO",
	"gcloud.projectId":                    os.Getenv("GOOGLE_CLOUD_PROJECT"),
	"gcloud.locationId":                   "europe-west1",
	"gcloud.queueName":                    "default",
	"lock.tables":                         []string{"application"},
	"lock.timeoutMinutes":                 30,
	"lock.sweepCron":                      "*/5 * * * *",
	"lock.leaseMinHold":                   "1m",
	"lock.leaseMaxHold":                   "4m",
	"cart.awaitingPaymentStatus":          "AwaitingPayment",
	"payment.platformUrl":                 "http://localhost:9090/",
	"payment.createEndpoint":              "api/transactions",
	"payment.callbackUrl":                 "http://localhost:8080/payments/callback",
	"payment.useFakePlatform":             false,
	"payment.searchableColumns":           []string{"TransactionID", "ConfirmationID", "ApplicationNumbers", "PaidBy"},
	"frontoffice.url":                     "http://localhost:9091",
	"frontoffice.paymentUpdateEndpoint":   "/api/payments/update",
	"frontoffice.signatureDeleteEndpoint": "/api/signatures",
	"signature.url":                       "http://localhost:9092",
	"signature.modifyEndpoint":            "/api/applications/modify",
	"signature.deleteEndpoint":            "/api/applications/delete",
	"signature.listEndpoint":              "/api/applications",
	"httpclient.connectTimeout":           "5s",
	"httpclient.readTimeout":              "30s",
	"httpclient.retryCount":               0,
	"auth.jwtSecret":                      "local-development-secret",
	"async.maxConcurrent":                 8,
}

// Load merges defaults, the optional yaml file at path and USERAREA_* environment variables (highest precedence)
func Load(path string) (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("error reading config file %s: %s", path, err)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %s", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	if c.Lock.TimeoutMinutes <= 0 {
		return fmt.Errorf("lock.timeoutMinutes must be positive, got %d", c.Lock.TimeoutMinutes)
	}
	if c.Lock.LeaseMaxHold < c.Lock.LeaseMinHold {
		return fmt.Errorf("lock.leaseMaxHold (%s) must not be shorter than lock.leaseMinHold (%s)", c.Lock.LeaseMaxHold, c.Lock.LeaseMinHold)
	}
	if c.Cart.AwaitingPaymentStatus == "" {
		return fmt.Errorf("cart.awaitingPaymentStatus is required")
	}
	if c.Async.MaxConcurrent <= 0 {
		return fmt.Errorf("async.maxConcurrent must be positive, got %d", c.Async.MaxConcurrent)
	}
	return nil
}
