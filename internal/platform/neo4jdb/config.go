package neo4jdb

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/navgraph/internal/platform/envutil"
)

// Config is the connection descriptor for the graph store. Either URI or Host
// must be set; URI wins and may carry credentials in its user info.
type Config struct {
	URI      string
	Scheme   string
	Host     string
	Port     int
	User     string
	Password string
	Database string

	ConnectTimeout  time.Duration
	QueryTimeout    time.Duration
	MaxPoolSize     int
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

var defaultPorts = map[string]int{
	"bolt":      7687,
	"bolt+s":    7687,
	"bolt+ssc":  7687,
	"neo4j":     7687,
	"neo4j+s":   7687,
	"neo4j+ssc": 7687,
}

func ConfigFromEnv() Config {
	return Config{
		URI:             envutil.String("NEO4J_URI", ""),
		Scheme:          envutil.String("NEO4J_SCHEME", "bolt"),
		Host:            envutil.String("NEO4J_HOST", ""),
		Port:            envutil.Int("NEO4J_PORT", 0),
		User:            envutil.String("NEO4J_USER", "neo4j"),
		Password:        envutil.String("NEO4J_PASSWORD", ""),
		Database:        envutil.String("NEO4J_DATABASE", ""),
		ConnectTimeout:  envutil.Seconds("NEO4J_TIMEOUT_SECONDS", 10*time.Second),
		QueryTimeout:    envutil.Seconds("NEO4J_QUERY_TIMEOUT_SECONDS", 5*time.Second),
		MaxPoolSize:     envutil.PositiveInt("NEO4J_MAX_POOL_SIZE", 50),
		BreakerFailures: uint32(envutil.PositiveInt("NEO4J_BREAKER_FAILURES", 5)),
		BreakerCooldown: envutil.Seconds("NEO4J_BREAKER_COOLDOWN_SECONDS", 30*time.Second),
	}
}

func (c Config) Enabled() bool {
	return strings.TrimSpace(c.URI) != "" || strings.TrimSpace(c.Host) != ""
}

// ConnectionURI returns scheme://host:port without credentials, and the
// effective user and password.
func (c Config) ConnectionURI() (uri, user, password string, err error) {
	user, password = c.User, c.Password

	scheme, host, port := strings.ToLower(strings.TrimSpace(c.Scheme)), strings.TrimSpace(c.Host), c.Port
	if raw := strings.TrimSpace(c.URI); raw != "" {
		u, perr := url.Parse(raw)
		if perr != nil {
			return "", "", "", fmt.Errorf("neo4jdb: parse uri: %w", perr)
		}
		scheme, host = strings.ToLower(u.Scheme), u.Hostname()
		port = 0
		if p := u.Port(); p != "" {
			port, perr = strconv.Atoi(p)
			if perr != nil {
				return "", "", "", fmt.Errorf("neo4jdb: invalid port %q", p)
			}
		}
		if u.User != nil {
			if name := u.User.Username(); name != "" {
				user = name
			}
			if pass, ok := u.User.Password(); ok {
				password = pass
			}
		}
	}
	if scheme == "" {
		scheme = "bolt"
	}
	def, ok := defaultPorts[scheme]
	if !ok {
		if scheme == "http" || scheme == "https" {
			return "", "", "", fmt.Errorf("neo4jdb: scheme %q is not supported, use bolt or neo4j", scheme)
		}
		return "", "", "", fmt.Errorf("neo4jdb: unknown scheme %q", scheme)
	}
	if host == "" {
		return "", "", "", fmt.Errorf("neo4jdb: host required")
	}
	if port <= 0 {
		port = def
	}
	return scheme + "://" + net.JoinHostPort(host, strconv.Itoa(port)), user, password, nil
}
