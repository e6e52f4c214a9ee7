package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/piresc/mycompta/internal/pkg/database"
	"github.com/piresc/mycompta/internal/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Checker reports whether a dependency is reachable
type Checker interface {
	CheckHealth(ctx context.Context) error
}

// CheckerFunc adapts a function to Checker
type CheckerFunc func(ctx context.Context) error

// CheckHealth calls f
func (f CheckerFunc) CheckHealth(ctx context.Context) error {
	return f(ctx)
}

// MongoChecker pings the MongoDB primary
type MongoChecker struct {
	client *database.MongoClient
}

// NewMongoChecker creates a MongoDB checker
func NewMongoChecker(client *database.MongoClient) *MongoChecker {
	return &MongoChecker{client: client}
}

// CheckHealth checks if MongoDB is healthy
func (m *MongoChecker) CheckHealth(ctx context.Context) error {
	if m.client == nil {
		return nil
	}
	return m.client.GetClient().Ping(ctx, readpref.Primary())
}

// RedisChecker pings Redis
type RedisChecker struct {
	client *database.RedisClient
}

// NewRedisChecker creates a Redis checker
func NewRedisChecker(client *database.RedisClient) *RedisChecker {
	return &RedisChecker{client: client}
}

// CheckHealth checks if Redis is healthy
func (r *RedisChecker) CheckHealth(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Client.Ping(ctx).Err()
}

// PostgresChecker pings PostgreSQL
type PostgresChecker struct {
	client *database.PostgresClient
}

// NewPostgresChecker creates a PostgreSQL checker
func NewPostgresChecker(client *database.PostgresClient) *PostgresChecker {
	return &PostgresChecker{client: client}
}

// CheckHealth checks if PostgreSQL is healthy
func (p *PostgresChecker) CheckHealth(ctx context.Context) error {
	if p.client == nil {
		return nil
	}
	return p.client.GetDB().PingContext(ctx)
}

// Service runs the registered checkers
type Service struct {
	checkers map[string]Checker
	timeout  time.Duration
}

// NewService creates an empty health service
func NewService() *Service {
	return &Service{checkers: make(map[string]Checker), timeout: 3 * time.Second}
}

// AddChecker registers a checker for a dependency
func (s *Service) AddChecker(name string, checker Checker) {
	s.checkers[name] = checker
}

// Report is the readiness response body
type Report struct {
	Status       string                    `json:"status"`
	Service      string                    `json:"service"`
	Timestamp    time.Time                 `json:"timestamp"`
	Dependencies map[string]DependencyInfo `json:"dependencies"`
}

// DependencyInfo is the state of one dependency
type DependencyInfo struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Check runs every checker and aggregates the result
func (s *Service) Check(ctx context.Context) Report {
	report := Report{
		Status:       "ready",
		Timestamp:    time.Now().UTC(),
		Dependencies: make(map[string]DependencyInfo, len(s.checkers)),
	}

	names := make([]string, 0, len(s.checkers))
	for name := range s.checkers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := s.checkers[name].CheckHealth(ctx); err != nil {
			logger.WarnCtx(ctx, "Health check failed",
				logger.String("dependency", name),
				logger.Err(err))
			report.Dependencies[name] = DependencyInfo{Status: "unhealthy", Error: err.Error()}
			report.Status = "unhealthy"
			continue
		}
		report.Dependencies[name] = DependencyInfo{Status: "healthy"}
	}

	return report
}

// ReadyHandler answers 200 when every dependency is healthy, 503 otherwise
func (s *Service) ReadyHandler(serviceName string) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), s.timeout)
		defer cancel()

		report := s.Check(ctx)
		report.Service = serviceName

		if report.Status != "ready" {
			return c.JSON(http.StatusServiceUnavailable, report)
		}
		return c.JSON(http.StatusOK, report)
	}
}
