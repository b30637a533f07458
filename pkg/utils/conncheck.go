package utils

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"time"

	"github.com/mpapenbr/race-engineer-service-go/log"
)

// WaitForTCP returns an error if no connection to addr could be established
// within timeout
func WaitForTCP(ctx context.Context, addr string, timeout time.Duration) error {
	timeoutReached := time.Now().Add(timeout)
	start := time.Now()
	log.Debug("wait for tcp connection",
		log.String("addr", addr),
		log.String("timeout", timeout.String()))
	var d net.Dialer
	for time.Now().Before(timeoutReached) {
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err == nil {
			conn.Close()

			log.Debug("tcp connection successful",
				log.String("addr", addr),
				log.String("duration", time.Since(start).String()))
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
	return fmt.Errorf("%s could not be reached after %v", addr, timeout)
}

// ExtractFromDBURL returns host:port of a postgres connection url.
// The default port 5432 is used if the url has none.
func ExtractFromDBURL(url string) string {
	return extractAddr(
		"^postgres(ql)?://(.*@)?(?P<addr>(?P<host>[^/?]*?)(:(?P<port>\\d+))?)([/?].*)?$",
		url, 5432)
}

// ExtractFromNatsURL returns host:port of the first server of a nats url.
// The default port 4222 is used if the url has none.
func ExtractFromNatsURL(url string) string {
	return extractAddr(
		"^(nats|tls)://(.*@)?(?P<addr>(?P<host>[^/,:]*?)(:(?P<port>\\d+))?)([/,].*)?$",
		url, 4222)
}

func extractAddr(regEx, url string, defaultPort int) string {
	param := resolveRegex(regEx, url)
	if param["host"] == "" {
		return ""
	}
	if port, ok := param["port"]; ok && port != "" {
		return param["addr"] // if port is found, the addr contains our wanted value
	}
	return fmt.Sprintf("%s:%d", param["host"], defaultPort)
}

func resolveRegex(regEx, url string) (paramsMap map[string]string) {
	compRegEx := regexp.MustCompile(regEx)
	match := compRegEx.FindStringSubmatch(url)

	paramsMap = make(map[string]string)
	for i, name := range compRegEx.SubexpNames() {
		if i > 0 && i < len(match) {
			paramsMap[name] = match[i]
		}
	}
	return paramsMap
}
