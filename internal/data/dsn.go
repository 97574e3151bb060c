package data

import (
	"fmt"
	"time"
)

// ConnectionConfig is one candidate database target. Configs are built once
// from the environment and never mutated; the resolver walks an ordered list
// of them until one accepts a connection.
type ConnectionConfig struct {
	Name     string
	Driver   string // postgres, mysql, mssql, sqlite
	URL      string // raw DSN; overrides the discrete fields when set
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	Timeout  time.Duration // per-attempt budget
}

// AttemptTimeout returns the per-candidate timeout with a sane floor.
func (c ConnectionConfig) AttemptTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 10 * time.Second
	}
	return c.Timeout
}

// DSN renders the driver-specific connection string.
func (c ConnectionConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	switch c.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&timeout=%ds",
			c.User, c.Password, c.Host, c.Port, c.Database, int(c.AttemptTimeout().Seconds()))
	case "mssql":
		return fmt.Sprintf("sqlserver://%s:%s@%s:%d?database=%s",
			c.User, c.Password, c.Host, c.Port, c.Database)
	case "sqlite":
		return c.Database
	default: // postgres
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=%d",
			c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode, int(c.AttemptTimeout().Seconds()))
	}
}

// DriverName maps the config driver to the database/sql driver name.
func (c ConnectionConfig) DriverName() string {
	switch c.Driver {
	case "mysql", "sqlite":
		return c.Driver
	case "mssql":
		return "sqlserver"
	default:
		return "postgres"
	}
}

// livenessQuery is the trivial statement used to prove a candidate actually
// answers queries, not merely accepts TCP.
func livenessQuery(driver string) string {
	switch driver {
	case "postgres", "", "mysql":
		return "SELECT NOW()"
	default:
		return "SELECT 1"
	}
}

// Dialect captures the SQL syntax differences the query builder cares about.
type Dialect struct {
	driver string
}

// DialectFor returns the dialect for a config driver name.
func DialectFor(driver string) Dialect {
	return Dialect{driver: driver}
}

// Placeholder returns the n-th (1-based) bind placeholder.
func (d Dialect) Placeholder(n int) string {
	switch d.driver {
	case "postgres", "":
		return fmt.Sprintf("$%d", n)
	case "mssql":
		return fmt.Sprintf("@p%d", n)
	default:
		return "?"
	}
}

// Quote wraps a spec-supplied identifier in the driver's quoting style, so
// even reserved words like "interval" are safe as column names.
func (d Dialect) Quote(ident string) string {
	switch d.driver {
	case "mysql":
		return "`" + ident + "`"
	case "mssql":
		return "[" + ident + "]"
	default:
		return `"` + ident + `"`
	}
}

// LimitOffset renders the pagination clause. limit and offset are already
// validated integers, so rendering them inline is safe.
func (d Dialect) LimitOffset(limit, offset int) string {
	switch d.driver {
	case "mssql":
		return fmt.Sprintf(" OFFSET %d ROWS FETCH NEXT %d ROWS ONLY", offset, limit)
	case "mysql":
		return fmt.Sprintf(" LIMIT %d, %d", offset, limit)
	default:
		return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}
}
