package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stockroom-api/pkg/config"
)

const defaultMaxConns = 10

var errNoIPv4 = errors.New("sin dirección IPv4")

// NewPool abre el pool del libro de inventario y verifica la conexión con un ping.
// Los contenedores sin IPv6 no alcanzan hosts que solo publican AAAA, por eso todo dial sale por tcp4.
func NewPool(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(connString(ctx, cfg))
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}
	configurePool(poolConfig, cfg)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("crear pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping DB: %w", err)
	}
	return pool, nil
}

// connString prefiere DATABASE_URL y fija el host a su IPv4 cuando se puede resolver.
func connString(ctx context.Context, cfg config.DBConfig) string {
	if cfg.DatabaseURL != "" {
		return pinURLToIPv4(ctx, cfg.DatabaseURL)
	}
	if ip, err := lookupIPv4(ctx, cfg.Host); err == nil {
		cfg.Host = ip
	}
	return cfg.DSN()
}

func configurePool(pc *pgxpool.Config, cfg config.DBConfig) {
	pc.MaxConns = defaultMaxConns
	if cfg.MaxConns > 0 {
		pc.MaxConns = int32(cfg.MaxConns)
	}
	pc.MinConns = 1
	pc.MaxConnLifetime = time.Hour
	pc.MaxConnIdleTime = 30 * time.Minute
	pc.HealthCheckPeriod = time.Minute

	pc.ConnConfig.DialFunc = dialIPv4
	// unit_price de items es NUMERIC
	pc.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
}

func dialIPv4(ctx context.Context, network, addr string) (net.Conn, error) {
	var d net.Dialer
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, err
	}
	ip, err := lookupIPv4(ctx, host)
	if err != nil {
		return d.DialContext(ctx, network, addr)
	}
	return d.DialContext(ctx, "tcp4", net.JoinHostPort(ip, port))
}

// publicResolver se usa cuando el DNS del contenedor solo contesta AAAA.
var publicResolver = &net.Resolver{
	PreferGo: true,
	Dial: func(ctx context.Context, _, _ string) (net.Conn, error) {
		var d net.Dialer
		return d.DialContext(ctx, "udp", "8.8.8.8:53")
	},
}

// lookupIPv4 devuelve el literal tal cual si ya es IPv4 y falla si es IPv6.
func lookupIPv4(ctx context.Context, host string) (string, error) {
	if ip := net.ParseIP(host); ip != nil {
		if ip.To4() == nil {
			return "", fmt.Errorf("%s: %w", host, errNoIPv4)
		}
		return host, nil
	}
	for _, r := range []*net.Resolver{net.DefaultResolver, publicResolver} {
		ips, err := r.LookupIP(ctx, "ip4", host)
		if err != nil {
			continue
		}
		for _, ip := range ips {
			if v4 := ip.To4(); v4 != nil {
				return v4.String(), nil
			}
		}
	}
	return "", fmt.Errorf("%s: %w", host, errNoIPv4)
}

func pinURLToIPv4(ctx context.Context, raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	ip, err := lookupIPv4(ctx, u.Hostname())
	if err != nil {
		return raw
	}
	port := u.Port()
	if port == "" {
		port = "5432"
	}
	u.Host = net.JoinHostPort(ip, port)
	return u.String()
}
