package db

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/prefeitura-itaguai/biometrico-saude/config"
)

// Database guarda o pool do Postgres local. O banco local só tem autoridade
// sobre contas do portal (usuarios) e registros de ponto de contingência
// (registros_fallback) gravados quando a API remota está fora.
type Database struct {
	pool *pgxpool.Pool
}

func NewPool(ctx context.Context, c config.DB) (*Database, error) {
	// encode para evitar erro de URL
	user := url.QueryEscape(c.User)
	pass := url.QueryEscape(c.Pass)
	host := url.QueryEscape(c.Host)
	dbname := url.QueryEscape(c.Name)

	zap.S().Infof("Conectando em %s:%s/%s ...", host, c.Port, dbname)

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, pass, host, c.Port, dbname)

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.ParseConfig: %w", err)
	}

	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	zap.S().Info("Banco conectado")

	return &Database{pool: pool}, nil
}

func (d *Database) Pool() *pgxpool.Pool {
	return d.pool
}

func (d *Database) Close() {
	zap.S().Info("Encerrando conexão com o banco")
	d.pool.Close()
}

func (d *Database) Ping(ctx context.Context) error {
	return d.pool.Ping(ctx)
}
