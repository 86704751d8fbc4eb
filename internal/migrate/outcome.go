package migrate

import (
	"database/sql/driver"
	"errors"
	"net"
	"strconv"
	"strings"
	"syscall"

	"github.com/go-sql-driver/mysql"
)

// FailureKind classifies a failed run.
type FailureKind int

const (
	KindNone FailureKind = iota
	KindCredentials
	KindUnknownDatabase
	KindConnection
	KindSchema
	KindSeed
)

// ErrConnect marks errors raised while establishing the connection.
var ErrConnect = errors.New("database connection failed")

// MySQL server error numbers.
const (
	erDBAccessDenied     = 1044
	erAccessDenied       = 1045
	erBadDB              = 1049
	erAccessDeniedNoPass = 1698
	crConnectionError    = 2002
	crConnHostError      = 2003
	crUnknownHost        = 2005
)

func (k FailureKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindCredentials:
		return "credentials"
	case KindUnknownDatabase:
		return "unknown-database"
	case KindConnection:
		return "connection"
	case KindSchema:
		return "schema"
	case KindSeed:
		return "seed"
	default:
		return "unknown"
	}
}

// Message returns the user-facing explanation.
func (k FailureKind) Message() string {
	switch k {
	case KindCredentials:
		return "Your database credentials are wrong!"
	case KindUnknownDatabase:
		return "The database does not exist. Create it and run the installer again."
	case KindConnection:
		return "Unable to reach the database server. Check the host and port."
	case KindSchema:
		return "Database migrations failed."
	case KindSeed:
		return "Database seeding failed."
	default:
		return ""
	}
}

// Outcome is the result of a migrate+seed run.
type Outcome struct {
	OK   bool
	Kind FailureKind
	Err  error
}

// Message returns the user-facing message, empty on success.
func (o Outcome) Message() string {
	if o.OK {
		return ""
	}
	return o.Kind.Message()
}

// Classify maps err to a FailureKind, falling back to phase when nothing
// more specific is recognized.
func Classify(err error, phase FailureKind) FailureKind {
	if err == nil {
		return KindNone
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		if kind, ok := classifyCode(int(myErr.Number)); ok {
			return kind
		}
		return phase
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		if kind, ok := classifyOutput(cmdErr.Output); ok {
			return kind
		}
		return phase
	}

	var opErr *net.OpError
	switch {
	case errors.Is(err, ErrConnect),
		errors.Is(err, driver.ErrBadConn),
		errors.Is(err, mysql.ErrInvalidConn),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.As(err, &opErr):
		return KindConnection
	}
	return phase
}

func classifyCode(code int) (FailureKind, bool) {
	switch code {
	case erAccessDenied, erDBAccessDenied, erAccessDeniedNoPass:
		return KindCredentials, true
	case erBadDB:
		return KindUnknownDatabase, true
	case crConnectionError, crConnHostError, crUnknownHost:
		return KindConnection, true
	}
	return KindNone, false
}

// classifyOutput recognizes the "SQLSTATE[...] [code]" markers that PDO
// prints when a framework command fails.
func classifyOutput(output string) (FailureKind, bool) {
	for _, code := range []int{
		erAccessDenied, erDBAccessDenied, erAccessDeniedNoPass,
		erBadDB,
		crConnectionError, crConnHostError, crUnknownHost,
	} {
		if strings.Contains(output, "["+strconv.Itoa(code)+"]") {
			return classifyCode(code)
		}
	}
	if strings.Contains(strings.ToLower(output), "connection refused") {
		return KindConnection, true
	}
	return KindNone, false
}
