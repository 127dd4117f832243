package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
)

// buildDSN renders a postgres:// URL from the database block.
//
// The password is URL-escaped and the host/port pair goes through
// net.JoinHostPort so IPv6 hosts get their brackets.
func buildDSN(d DatabaseConfig) string {
	hostPort := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(d.User),
		url.QueryEscape(d.Password),
		hostPort,
		d.Name,
		d.SSLMode,
	)
}
