package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/wellywell/ssccscan/internal/config"
	"github.com/wellywell/ssccscan/internal/metrics"
	"github.com/wellywell/ssccscan/internal/types"
)

type Database struct {
	db      *sql.DB
	dialect dialect
	conf    *config.DatabaseConfig
}

// NewDatabase opens a pool for the configured driver. The server is not
// contacted here unless the demo schema is to be migrated, an unreachable
// database surfaces on the first query.
func NewDatabase(conf *config.DatabaseConfig) (*Database, error) {
	if conf.Migrate {
		if err := Migrate(conf); err != nil {
			return nil, fmt.Errorf("failed to migrate %w", err)
		}
	}
	return open(conf)
}

func open(conf *config.DatabaseConfig) (*Database, error) {
	var (
		sqlDB *sql.DB
		d     dialect
		err   error
	)

	switch conf.Driver {
	case config.DriverMySQL:
		sqlDB, err = sql.Open("mysql", mysqlDSN(conf))
		d = mysqlDialect{}
	case config.DriverPostgres:
		sqlDB, err = sql.Open("pgx", postgresDSN(conf))
		d = postgresDialect{}
	case config.DriverSQLite:
		sqlDB, err = sql.Open("sqlite", sqliteDSN(conf))
		d = sqliteDialect{}
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", conf.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", conf.Driver, err)
	}

	if conf.Driver == config.DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	return &Database{db: sqlDB, dialect: d, conf: conf}, nil
}

func mysqlDSN(conf *config.DatabaseConfig) string {
	c := mysql.NewConfig()
	c.User = conf.User
	c.Passwd = conf.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(conf.Host, strconv.Itoa(conf.Port))
	c.DBName = conf.Name
	c.Timeout = conf.ConnectTimeout
	c.ReadTimeout = conf.QueryTimeout
	c.WriteTimeout = conf.QueryTimeout
	c.ParseTime = true
	return c.FormatDSN()
}

func postgresDSN(conf *config.DatabaseConfig) string {
	q := url.Values{}
	q.Set("sslmode", conf.SSLMode)
	q.Set("connect_timeout", strconv.Itoa(connectTimeoutSeconds(conf.ConnectTimeout)))

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(conf.User, conf.Password),
		Host:     net.JoinHostPort(conf.Host, strconv.Itoa(conf.Port)),
		Path:     "/" + conf.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// connectTimeoutSeconds rounds up, libpq reads 0 as no timeout.
func connectTimeoutSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}

func sqliteDSN(conf *config.DatabaseConfig) string {
	busy := conf.ConnectTimeout.Milliseconds()
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)", conf.Path, busy)
}

func (d *Database) Close() error {
	return d.db.Close()
}

// Ping checks connectivity within the connect timeout.
func (d *Database) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.conf.ConnectTimeout)
	defer cancel()

	if err := d.db.PingContext(ctx); err != nil {
		return classify(err)
	}
	return nil
}

// FindShipment resolves a barcode to the most recent matching row.
func (d *Database) FindShipment(ctx context.Context, barcode string) (*types.ShipmentRecord, error) {
	defer metrics.ObserveQuery("find_shipment", time.Now())

	columns := make([]string, 0, len(d.conf.FieldMapping))
	for _, f := range d.conf.FieldMapping {
		columns = append(columns, f.Column)
	}

	sscc, values, err := d.findRow(ctx, barcode, columns)
	if err != nil {
		return nil, err
	}

	record := &types.ShipmentRecord{SSCC: sscc, Fields: make([]types.Field, len(values))}
	for i, f := range d.conf.FieldMapping {
		record.Fields[i] = types.Field{Name: f.Name, Value: values[i]}
	}
	return record, nil
}

// FindWorkflowReference returns the first non-empty reference column value of
// the row matching sscc, or "" when there is no such row.
func (d *Database) FindWorkflowReference(ctx context.Context, sscc string) (string, error) {
	if len(d.conf.References) == 0 {
		return "", nil
	}
	defer metrics.ObserveQuery("find_reference", time.Now())

	_, values, err := d.findRow(ctx, sscc, d.conf.References)
	if err != nil {
		var notFound *ShipmentNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", err
	}

	for _, v := range values {
		if v == nil {
			continue
		}
		s := strings.TrimSpace(fmt.Sprint(v))
		if s != "" {
			return s, nil
		}
	}
	return "", nil
}

// findRow runs the match policy query and returns the SSCC column value and
// the requested columns of the first qualifying row.
func (d *Database) findRow(ctx context.Context, barcode string, columns []string) (string, []any, error) {
	ctx, cancel := context.WithTimeout(ctx, d.conf.QueryTimeout)
	defer cancel()

	query, arg := d.buildQuery(columns, barcode)

	rows, err := d.db.QueryContext(ctx, d.dialect.Q(query), arg)
	if err != nil {
		return "", nil, classify(err)
	}
	defer rows.Close()

	for rows.Next() {
		var sscc sql.NullString
		values := make([]any, len(columns))
		dest := make([]any, len(columns)+1)
		dest[0] = &sscc
		for i := range values {
			dest[i+1] = &values[i]
		}

		if err := rows.Scan(dest...); err != nil {
			return "", nil, fmt.Errorf("failed unpacking row %w", err)
		}

		if d.conf.MatchPolicy == config.MatchList && !listContains(sscc.String, d.conf.ListDelimiter, barcode) {
			continue
		}

		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		return sscc.String, values, nil
	}

	if err := rows.Err(); err != nil {
		return "", nil, classify(err)
	}
	return "", nil, fmt.Errorf("%w", &ShipmentNotFoundError{SSCC: barcode})
}

func (d *Database) buildQuery(columns []string, barcode string) (string, string) {
	q := d.dialect.Quote

	selected := make([]string, 0, len(columns)+1)
	selected = append(selected, q(d.conf.SSCCColumn))
	for _, c := range columns {
		selected = append(selected, q(c))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s WHERE ", strings.Join(selected, ", "), q(d.conf.Table))

	arg := barcode
	switch d.conf.MatchPolicy {
	case config.MatchSubstring, config.MatchList:
		fmt.Fprintf(&b, "%s LIKE ? ESCAPE '%c'", q(d.conf.SSCCColumn), likeEscape)
		arg = likePattern(barcode)
	default:
		fmt.Fprintf(&b, "%s = ?", q(d.conf.SSCCColumn))
	}

	if d.conf.OrderColumn != "" {
		fmt.Fprintf(&b, " ORDER BY %s DESC", q(d.conf.OrderColumn))
	}
	if d.conf.MatchPolicy != config.MatchList {
		b.WriteString(" LIMIT 1")
	}
	return b.String(), arg
}

func listContains(value string, delimiter string, barcode string) bool {
	for _, item := range strings.Split(value, delimiter) {
		if strings.TrimSpace(item) == barcode {
			return true
		}
	}
	return false
}
