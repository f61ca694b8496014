package neo4jdb

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/careergraph-backend/internal/platform/logger"
)

// Client owns the driver. It is built once by the caller and handed to the
// graph layer; there is no package-level handle.
type Client struct {
	Driver   neo4j.DriverWithContext
	Database string
	cfg      Config
	log      *logger.Logger
}

func New(ctx context.Context, cfg Config, log *logger.Logger) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("neo4jdb: logger required")
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	auth := neo4j.BasicAuth(cfg.User, cfg.Password, "")
	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth, func(c *neo4j.Config) {
		c.MaxConnectionPoolSize = cfg.MaxPoolSize
		c.SocketConnectTimeout = cfg.ConnectTimeout
		c.MaxTransactionRetryTime = cfg.MaxTxRetryTime
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jdb: init driver: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	vctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := driver.VerifyConnectivity(vctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4jdb: verify connectivity: %w", err)
	}

	c := &Client{
		Driver:   driver,
		Database: cfg.Database,
		cfg:      cfg,
		log:      log.With("client", "Neo4jDB"),
	}
	if cfg.EnsureSchema {
		c.EnsureSchema(ctx)
	}
	return c, nil
}

func NewFromEnv(ctx context.Context, log *logger.Logger) (*Client, error) {
	cfg, err := ResolveConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg, log)
}

var schemaStatements = []string{
	`CREATE CONSTRAINT user_email_unique IF NOT EXISTS FOR (u:User) REQUIRE u.email IS UNIQUE`,
	`CREATE CONSTRAINT skill_name_unique IF NOT EXISTS FOR (s:Skill) REQUIRE s.name IS UNIQUE`,
	`CREATE CONSTRAINT certification_name_unique IF NOT EXISTS FOR (c:Certification) REQUIRE c.name IS UNIQUE`,
	`CREATE INDEX education_key IF NOT EXISTS FOR (e:Education) ON (e.university, e.degree, e.major, e.graduation_date)`,
	`CREATE INDEX experience_key IF NOT EXISTS FOR (x:Experience) ON (x.company, x.position)`,
}

// EnsureSchema creates the uniqueness constraints and key indexes.
// Best-effort: failures are logged and ignored.
func (c *Client) EnsureSchema(ctx context.Context) {
	if c == nil || c.Driver == nil {
		return
	}
	session := c.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: c.Database,
	})
	defer session.Close(ctx)

	for _, stmt := range schemaStatements {
		res, err := session.Run(ctx, stmt, nil)
		if err == nil {
			_, err = res.Consume(ctx)
		}
		if err != nil {
			c.log.Warn("neo4j schema init failed (continuing)", "statement", stmt, "error", err)
		}
	}
}

func (c *Client) Ping(ctx context.Context) error {
	if c == nil || c.Driver == nil {
		return fmt.Errorf("neo4jdb: client closed")
	}
	return c.Driver.VerifyConnectivity(ctx)
}

func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.Driver == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := c.Driver.Close(ctx)
	c.Driver = nil
	return err
}
