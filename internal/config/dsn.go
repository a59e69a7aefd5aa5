package config

import (
	"fmt"
	"net"
	neturl "net/url"
	"strconv"
	"strings"
)

// DSNValue renders a go-sql-driver style DSN unless an explicit one is set.
func (c DatabaseRuntimeConfig) DSNValue() string {
	if v := strings.TrimSpace(c.DSN); v != "" {
		return v
	}

	host := firstNonEmpty(c.Host, defaultDBHost)
	port := c.Port
	if port == 0 {
		port = defaultDBPort
	}
	user := firstNonEmpty(c.User, defaultDBUser)
	name := firstNonEmpty(c.Name, defaultDBName)

	params := neturl.Values{}
	for key, value := range copyStringMap(c.Params) {
		params.Set(key, value)
	}
	if params.Get("charset") == "" {
		params.Set("charset", firstNonEmpty(c.Charset, defaultDBCharset))
	}
	if params.Get("parseTime") == "" {
		params.Set("parseTime", strconv.FormatBool(c.ParseTime))
	}
	if params.Get("loc") == "" {
		params.Set("loc", firstNonEmpty(c.Loc, defaultDBLoc))
	}

	auth := user
	if c.Password != "" {
		auth += ":" + c.Password
	}

	dsn := fmt.Sprintf("%s@tcp(%s)/%s", auth, net.JoinHostPort(host, strconv.Itoa(port)), name)
	if query := params.Encode(); query != "" {
		dsn += "?" + query
	}
	return dsn
}

// RedisURLValue returns the storage redis URL with a scheme.
func (c StorageConfig) RedisURLValue() string {
	if u := normalizeRedisRawURL(c.RedisURL); u != "" {
		return u
	}
	return defaultRedisURL
}

// NotifyRedisURL returns the pub/sub URL, or "" when notifications stay local.
func (c NotifyConfig) NotifyRedisURL() string {
	return normalizeRedisRawURL(c.RedisURL)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			return t
		}
	}
	return ""
}
