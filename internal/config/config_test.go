package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFieldMapping(t *testing.T) {

	testCases := []struct {
		input    string
		expected []FieldMap
		wantErr  bool
	}{
		{"Recipient", []FieldMap{{"Recipient", "Recipient"}}, false},
		{"Recipient, Quantity=menge", []FieldMap{{"Recipient", "Recipient"}, {"Quantity", "menge"}}, false},
		{"", nil, false},
		{"barcode", nil, true},
		{"Found=x", nil, true},
		{"Recipient,Recipient=other", nil, true},
		{"Recipient=drop table", nil, true},
		{"=col", nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result, err := ParseFieldMapping(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, result)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	conf, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, DriverMySQL, conf.Database.Driver)
	assert.Equal(t, "wareneingang", conf.Database.Table)
	assert.Equal(t, "SSCCs", conf.Database.SSCCColumn)
	assert.Equal(t, 10, conf.Scan.RecentCapacity)
	assert.Equal(t, 200, conf.Scan.NotFoundStatus)
	assert.Equal(t, []string{"OrderNumber"}, conf.Database.References)
	assert.Len(t, conf.Database.FieldMapping, 4)
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()

	configFile := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(configFile, []byte(`
run_address: "localhost:9000"
database:
  driver: sqlite
  path: /tmp/scan.db
  table: shipments
  match_policy: list
  connect_timeout: 2s
export:
  output_dir: /srv/xml
`), 0o600)
	require.NoError(t, err)

	envFile := filepath.Join(dir, ".env")
	err = os.WriteFile(envFile, []byte("SSCC_COLUMN=sscc_list\n"), 0o600)
	require.NoError(t, err)
	t.Cleanup(func() { os.Unsetenv("SSCC_COLUMN") })

	t.Setenv("DB_TABLE", "lieferungen")

	conf, err := Load(configFile, envFile)
	require.NoError(t, err)

	assert.Equal(t, "localhost:9000", conf.RunAddress)
	assert.Equal(t, DriverSQLite, conf.Database.Driver)
	assert.Equal(t, "lieferungen", conf.Database.Table)
	assert.Equal(t, "sscc_list", conf.Database.SSCCColumn)
	assert.Equal(t, MatchList, conf.Database.MatchPolicy)
	assert.Equal(t, 2*time.Second, conf.Database.ConnectTimeout)
	assert.Equal(t, "/srv/xml", conf.Export.OutputDir)
}

func TestValidate(t *testing.T) {

	testCases := []struct {
		name   string
		modify func(c *ServerConfig)
	}{
		{"unknown driver", func(c *ServerConfig) { c.Database.Driver = "oracle" }},
		{"unknown policy", func(c *ServerConfig) { c.Database.MatchPolicy = "fuzzy" }},
		{"bad table", func(c *ServerConfig) { c.Database.Table = "x; DROP TABLE y" }},
		{"bad column", func(c *ServerConfig) { c.Database.SSCCColumn = "" }},
		{"bad not found status", func(c *ServerConfig) { c.Scan.NotFoundStatus = 410 }},
		{"ftp without host", func(c *ServerConfig) { c.FTP.Enabled = true }},
		{"zero ftp timeout", func(c *ServerConfig) { c.FTP.Timeout = 0 }},
		{"zero retry interval", func(c *ServerConfig) { c.FTP.RetryInterval = 0 }},
		{"negative retry attempts", func(c *ServerConfig) { c.FTP.RetryAttempts = -1 }},
		{"mqtt without broker", func(c *ServerConfig) { c.Messaging.Backend = BackendMQTT }},
		{"kafka without brokers", func(c *ServerConfig) { c.Messaging.Backend = BackendKafka }},
		{"admin without secret", func(c *ServerConfig) { c.Admin.Password = "pw" }},
		{"no output dir", func(c *ServerConfig) { c.Export.OutputDir = "" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conf := Defaults()
			tc.modify(conf)
			assert.Error(t, conf.Validate())
		})
	}
}

func TestRedacted(t *testing.T) {
	conf := Defaults()
	conf.Database.Password = "db-secret"
	conf.FTP.Password = "ftp-secret"
	conf.Admin.Secret = "jwt"

	r := conf.Redacted()
	assert.Equal(t, "***", r.Database.Password)
	assert.Equal(t, "***", r.FTP.Password)
	assert.Equal(t, "***", r.Admin.Secret)
	assert.Equal(t, "", r.Admin.Password)
	assert.Equal(t, "db-secret", conf.Database.Password)
}
