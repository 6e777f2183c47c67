package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

/*
Sources, lowest precedence first:
defaults, YAML file (flag -c or CONFIG_FILE), .env file (flag -e),
environment variables, command line flag -a for the listen address.
*/

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	MatchExact     = "exact"
	MatchSubstring = "substring"
	MatchList      = "list"

	BackendNone  = "none"
	BackendMQTT  = "mqtt"
	BackendKafka = "kafka"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// names that are already used by the scan response envelope
var reservedFieldNames = map[string]bool{"found": true, "barcode": true, "error": true}

type ServerConfig struct {
	RunAddress string `yaml:"run_address" env:"RUN_ADDRESS"`
	LogLevel   string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat  string `yaml:"log_format" env:"LOG_FORMAT"`
	StaticDir  string `yaml:"static_dir" env:"STATIC_DIR"`

	Database  DatabaseConfig  `yaml:"database"`
	Scan      ScanConfig      `yaml:"scan"`
	Export    ExportConfig    `yaml:"export"`
	FTP       FTPConfig       `yaml:"ftp"`
	Messaging MessagingConfig `yaml:"messaging"`
	Admin     AdminConfig     `yaml:"admin"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver" env:"DB_DRIVER"`
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env:"DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"DB_SSLMODE"`
	// Path is the database file when Driver is sqlite.
	Path string `yaml:"path" env:"DB_PATH"`

	Table         string `yaml:"table" env:"DB_TABLE"`
	SSCCColumn    string `yaml:"sscc_column" env:"SSCC_COLUMN"`
	OrderColumn   string `yaml:"order_column" env:"DB_ORDER_COLUMN"`
	MatchPolicy   string `yaml:"match_policy" env:"DB_MATCH_POLICY"`
	ListDelimiter string `yaml:"list_delimiter" env:"DB_LIST_DELIMITER"`
	// Fields is a comma separated list of Logical=column pairs, a bare name
	// maps to the column of the same name.
	Fields           string `yaml:"fields" env:"DB_FIELDS"`
	ReferenceColumns string `yaml:"reference_columns" env:"DB_REFERENCE_COLUMNS"`

	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"DB_CONNECT_TIMEOUT"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env:"DB_QUERY_TIMEOUT"`
	Migrate        bool          `yaml:"migrate" env:"DB_MIGRATE"`

	FieldMapping []FieldMap `yaml:"-" json:"field_mapping"`
	References   []string   `yaml:"-" json:"references"`
}

// FieldMap binds a name exposed to callers to a physical column.
type FieldMap struct {
	Name   string `json:"name"`
	Column string `json:"column"`
}

type ScanConfig struct {
	NotFoundStatus     int  `yaml:"not_found_status" env:"SCAN_NOT_FOUND_STATUS"`
	ValidateCheckDigit bool `yaml:"validate_check_digit" env:"SCAN_VALIDATE_CHECK_DIGIT"`
	RecentCapacity     int  `yaml:"recent_capacity" env:"SCAN_RECENT_CAPACITY"`
}

type ExportConfig struct {
	OutputDir       string `yaml:"output_dir" env:"XML_OUTPUT_DIR"`
	DefaultStatus   string `yaml:"default_status" env:"STATUS_TO_SCAN"`
	DefaultCode     int    `yaml:"default_code" env:"STATUS_DEFAULT_CODE"`
	UniqueSuffix    bool   `yaml:"unique_suffix" env:"EXPORT_UNIQUE_SUFFIX"`
	LookupReference bool   `yaml:"lookup_reference" env:"EXPORT_LOOKUP_REFERENCE"`
}

type FTPConfig struct {
	Enabled            bool          `yaml:"enabled" env:"FTP_ENABLED"`
	Host               string        `yaml:"host" env:"FTP_HOST"`
	Port               int           `yaml:"port" env:"FTP_PORT"`
	User               string        `yaml:"user" env:"FTP_USER"`
	Password           string        `yaml:"password" env:"FTP_PASSWORD"`
	RemoteDir          string        `yaml:"remote_dir" env:"FTP_REMOTE_DIR"`
	Timeout            time.Duration `yaml:"timeout" env:"FTP_TIMEOUT"`
	InsecureSkipVerify bool          `yaml:"insecure_skip_verify" env:"FTP_INSECURE_SKIP_VERIFY"`
	RetryAttempts      int           `yaml:"retry_attempts" env:"FTP_RETRY_ATTEMPTS"`
	RetryInterval      time.Duration `yaml:"retry_interval" env:"FTP_RETRY_INTERVAL"`
}

type MessagingConfig struct {
	Backend      string `yaml:"backend" env:"MESSAGING_BACKEND"`
	MQTTBroker   string `yaml:"mqtt_broker" env:"MQTT_BROKER"`
	MQTTPort     int    `yaml:"mqtt_port" env:"MQTT_PORT"`
	MQTTClientID string `yaml:"mqtt_client_id" env:"MQTT_CLIENT_ID"`
	KafkaBrokers string `yaml:"kafka_brokers" env:"KAFKA_BROKERS"`
	ScanTopic    string `yaml:"scan_topic" env:"MESSAGING_SCAN_TOPIC"`
	StatusTopic  string `yaml:"status_topic" env:"MESSAGING_STATUS_TOPIC"`
}

type AdminConfig struct {
	User      string        `yaml:"user" env:"ADMIN_USER"`
	Password  string        `yaml:"password" env:"ADMIN_PASSWORD"`
	Secret    string        `yaml:"secret" env:"ADMIN_SECRET"`
	CookieTTL time.Duration `yaml:"cookie_ttl" env:"ADMIN_COOKIE_TTL"`
}

// Enabled reports whether the debug endpoints require a login.
func (a AdminConfig) Enabled() bool {
	return a.Password != ""
}

// Defaults mirror the add-on defaults of the scanner deployments.
func Defaults() *ServerConfig {
	return &ServerConfig{
		RunAddress: "0.0.0.0:5000",
		LogLevel:   "info",
		LogFormat:  "text",
		Database: DatabaseConfig{
			Driver:           DriverMySQL,
			Host:             "localhost",
			Port:             3306,
			User:             "root",
			Name:             "homeassistant",
			SSLMode:          "prefer",
			Path:             "ssccscan.db",
			Table:            "wareneingang",
			SSCCColumn:       "SSCCs",
			OrderColumn:      "id",
			MatchPolicy:      MatchExact,
			ListDelimiter:    ",",
			Fields:           "Recipient,DeliveryDate,OrderNumber,Quantity",
			ReferenceColumns: "OrderNumber",
			ConnectTimeout:   5 * time.Second,
			QueryTimeout:     5 * time.Second,
		},
		Scan: ScanConfig{
			NotFoundStatus: 200,
			RecentCapacity: 10,
		},
		Export: ExportConfig{
			OutputDir:       "/data",
			DefaultStatus:   "Hallenscan",
			DefaultCode:     10,
			LookupReference: true,
		},
		FTP: FTPConfig{
			Port:          21,
			RemoteDir:     "/",
			Timeout:       10 * time.Second,
			RetryAttempts: 3,
			RetryInterval: 30 * time.Second,
		},
		Messaging: MessagingConfig{
			Backend:      BackendNone,
			MQTTPort:     1883,
			MQTTClientID: "ssccscan",
			ScanTopic:    "ssccscan/scans",
			StatusTopic:  "ssccscan/status",
		},
		Admin: AdminConfig{
			User:      "admin",
			CookieTTL: 12 * time.Hour,
		},
	}
}

func NewConfig() (*ServerConfig, error) {
	var runAddress, configFile, envFile string

	flag.StringVar(&runAddress, "a", "", "Base address to listen on")
	flag.StringVar(&configFile, "c", os.Getenv("CONFIG_FILE"), "Path to YAML config file")
	flag.StringVar(&envFile, "e", ".env", "Path to .env file")
	flag.Parse()

	params, err := Load(configFile, envFile)
	if err != nil {
		return nil, err
	}

	if runAddress != "" {
		params.RunAddress = runAddress
	}

	return params, nil
}

// Load builds and validates the configuration from an optional YAML file, an
// optional .env file and the environment. Missing files are not an error.
func Load(configFile string, envFile string) (*ServerConfig, error) {
	params := Defaults()

	if configFile != "" {
		data, err := os.ReadFile(configFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, params); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", configFile, err)
			}
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	if err := env.Parse(params); err != nil {
		return nil, err
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// Validate checks the configuration and fills in the parsed field mapping.
func (c *ServerConfig) Validate() error {
	d := &c.Database

	switch d.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", d.Driver)
	}
	if d.Driver == DriverSQLite && d.Path == "" {
		return errors.New("sqlite driver requires DB_PATH")
	}

	switch d.MatchPolicy {
	case MatchExact, MatchSubstring, MatchList:
	default:
		return fmt.Errorf("unsupported match policy %q", d.MatchPolicy)
	}
	if d.MatchPolicy == MatchList && d.ListDelimiter == "" {
		return errors.New("list match policy requires a delimiter")
	}

	if err := checkIdentifier("table", d.Table); err != nil {
		return err
	}
	if err := checkIdentifier("sscc column", d.SSCCColumn); err != nil {
		return err
	}
	if d.OrderColumn != "" {
		if err := checkIdentifier("order column", d.OrderColumn); err != nil {
			return err
		}
	}

	mapping, err := ParseFieldMapping(d.Fields)
	if err != nil {
		return err
	}
	d.FieldMapping = mapping

	d.References = nil
	for _, col := range splitList(d.ReferenceColumns) {
		if err := checkIdentifier("reference column", col); err != nil {
			return err
		}
		d.References = append(d.References, col)
	}

	if d.ConnectTimeout <= 0 || d.QueryTimeout <= 0 {
		return errors.New("database timeouts must be positive")
	}

	if c.Scan.NotFoundStatus != 200 && c.Scan.NotFoundStatus != 404 {
		return fmt.Errorf("not found status must be 200 or 404, got %d", c.Scan.NotFoundStatus)
	}

	if c.Export.OutputDir == "" {
		return errors.New("XML output directory is required")
	}

	if c.FTP.Enabled && c.FTP.Host == "" {
		return errors.New("FTP is enabled but FTP_HOST is empty")
	}
	if c.FTP.Timeout <= 0 || c.FTP.RetryInterval <= 0 {
		return errors.New("FTP timeout and retry interval must be positive")
	}
	if c.FTP.RetryAttempts < 0 {
		return fmt.Errorf("FTP retry attempts must not be negative, got %d", c.FTP.RetryAttempts)
	}

	switch c.Messaging.Backend {
	case BackendNone, "":
		c.Messaging.Backend = BackendNone
	case BackendMQTT:
		if c.Messaging.MQTTBroker == "" {
			return errors.New("mqtt backend requires MQTT_BROKER")
		}
	case BackendKafka:
		if len(c.Messaging.Brokers()) == 0 {
			return errors.New("kafka backend requires KAFKA_BROKERS")
		}
	default:
		return fmt.Errorf("unknown messaging backend %q", c.Messaging.Backend)
	}

	if c.Admin.Enabled() && c.Admin.Secret == "" {
		return errors.New("ADMIN_SECRET is required when ADMIN_PASSWORD is set")
	}

	return nil
}

// Brokers returns the configured Kafka broker addresses.
func (m MessagingConfig) Brokers() []string {
	return splitList(m.KafkaBrokers)
}

// ParseFieldMapping parses "Recipient,Quantity=menge" style mappings.
func ParseFieldMapping(s string) ([]FieldMap, error) {
	var result []FieldMap
	seen := make(map[string]bool)

	for _, item := range splitList(s) {
		name, column, found := strings.Cut(item, "=")
		name = strings.TrimSpace(name)
		column = strings.TrimSpace(column)
		if !found {
			column = name
		}
		if name == "" {
			return nil, fmt.Errorf("empty field name in mapping %q", item)
		}
		if reservedFieldNames[strings.ToLower(name)] {
			return nil, fmt.Errorf("field name %q is reserved", name)
		}
		if seen[name] {
			return nil, fmt.Errorf("field name %q is mapped twice", name)
		}
		if err := checkIdentifier("field column", column); err != nil {
			return nil, err
		}
		seen[name] = true
		result = append(result, FieldMap{Name: name, Column: column})
	}
	return result, nil
}

// Redacted returns a copy safe to show to operators.
func (c *ServerConfig) Redacted() ServerConfig {
	r := *c
	r.Database.Password = mask(r.Database.Password)
	r.FTP.Password = mask(r.FTP.Password)
	r.Admin.Password = mask(r.Admin.Password)
	r.Admin.Secret = mask(r.Admin.Secret)
	return r
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "***"
}

func checkIdentifier(what string, name string) error {
	if !identifierRe.MatchString(name) {
		return fmt.Errorf("invalid %s name %q", what, name)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
