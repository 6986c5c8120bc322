package store

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/tzhao/polysignal/internal/config"
)

// BuildConnString assembles the pgxpool connection URL for the snapshot
// store, folding pool sizing into the query so ParseConfig needs no further
// tuning. Credentials are escaped so reserved characters survive the URL
// form.
func BuildConnString(cfg config.DBConfig) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = config.DefaultDBSSLMode
	}

	params := url.Values{}
	params.Set("sslmode", sslMode)
	if cfg.MaxConns > 0 {
		params.Set("pool_max_conns", strconv.Itoa(cfg.MaxConns))
	}
	if cfg.MinConns > 0 {
		params.Set("pool_min_conns", strconv.Itoa(cfg.MinConns))
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?%s",
		url.QueryEscape(cfg.User),
		url.QueryEscape(cfg.Password),
		cfg.Host,
		cfg.Port,
		cfg.Name,
		params.Encode(),
	)
}
