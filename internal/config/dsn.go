package config

import (
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// dbSecret is the key-value shape the secrets collaborator delivers.
// Port may arrive as a number, a string, or not at all (embedded in host).
type dbSecret struct {
	Host     string `json:"host"`
	Port     any    `json:"port"`
	Name     string `json:"dbname"`
	User     string `json:"username"`
	Password string `json:"password"`
}

// hasSource reports whether any connection source is configured.
func (c DatabaseConfig) hasSource() bool {
	if c.URL != "" || c.SecretJSON != "" {
		return true
	}
	return c.Host != "" && c.Name != "" && c.User != "" && c.Password != ""
}

// DSN assembles the PostgreSQL connection string.
//
// A full URL wins. Otherwise the five connection fields come from the
// JSON secret blob or the discrete env vars. A port embedded in the host
// string ("db.example.com:5433") is honored when no explicit port is set;
// the default is 5432.
func (c DatabaseConfig) DSN() (string, error) {
	if c.URL != "" {
		return c.URL, nil
	}

	host, port, name, user, password := c.Host, portString(c.Port), c.Name, c.User, c.Password

	if c.SecretJSON != "" {
		var secret dbSecret
		if err := json.Unmarshal([]byte(c.SecretJSON), &secret); err != nil {
			return "", fmt.Errorf("parse DB_SECRET_JSON: %w", err)
		}
		host, port = secret.Host, portString(secret.Port)
		name, user, password = secret.Name, secret.User, secret.Password
	}

	if host == "" || name == "" || user == "" {
		return "", fmt.Errorf("incomplete database configuration: host, dbname, and username are required")
	}

	hostOnly, embeddedPort := splitHostPort(host)
	if port == "" {
		port = embeddedPort
	}
	if port == "" {
		port = "5432"
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, password),
		Host:   net.JoinHostPort(hostOnly, port),
		Path:   "/" + name,
	}
	return u.String(), nil
}

// portString renders a loosely-typed port value, "" when absent or zero.
func portString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		if t == 0 {
			return ""
		}
		return strconv.Itoa(t)
	case float64:
		if t == 0 {
			return ""
		}
		return strconv.Itoa(int(t))
	default:
		return ""
	}
}

// splitHostPort separates an optional trailing ":port" from a host string.
func splitHostPort(host string) (string, string) {
	i := strings.LastIndex(host, ":")
	if i < 0 {
		return host, ""
	}
	return host[:i], host[i+1:]
}
