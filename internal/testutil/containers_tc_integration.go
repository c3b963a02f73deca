//go:build integration

// Пакет testutil — окружение интеграционных тестов: контейнеры Postgres, Redpanda и Redis, фабрика заказов.
package testutil

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
	"github.com/testcontainers/testcontainers-go/wait"
)

// StopFunc — останавливает и удаляет контейнер.
type StopFunc func(context.Context) error

var tcLogger = log.New(os.Stdout, "[tc] ", log.LstdFlags)

func shortID(c tc.Container) string {
	id := c.GetContainerID()
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// lifecycleLog — одна строка на ключевые этапы жизни контейнера.
func lifecycleLog(l *log.Logger) tc.ContainerLifecycleHooks {
	stage := func(name string) tc.ContainerHook {
		return func(_ context.Context, c tc.Container) error {
			l.Printf("%s id=%s", name, shortID(c))
			return nil
		}
	}
	return tc.ContainerLifecycleHooks{
		PreCreates: []tc.ContainerRequestHook{
			func(_ context.Context, req tc.ContainerRequest) error {
				l.Printf("create image=%s", req.Image)
				return nil
			},
		},
		PostReadies:    []tc.ContainerHook{stage("ready")},
		PreTerminates:  []tc.ContainerHook{stage("terminate")},
		PostTerminates: []tc.ContainerHook{stage("terminated")},
	}
}

// PGContainer — запущенный Postgres и DSN для подключения.
type PGContainer struct {
	Container *postgres.PostgresContainer
	DSN       string
}

// StartPostgresTC — Postgres 16 с базой flowers.
func StartPostgresTC(ctx context.Context) (*PGContainer, StopFunc, error) {
	pg, err := postgres.Run(
		ctx,
		"postgres:16-alpine",
		tc.WithLifecycleHooks(lifecycleLog(tcLogger)),
		postgres.WithDatabase("flowers"),
		postgres.WithUsername("flowers"),
		postgres.WithPassword("flowers"),
		tc.WithWaitStrategy(
			wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				// Postgres пишет эту строку дважды: после initdb и после рестарта.
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(60*time.Second),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run postgres: %w", err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, nil, fmt.Errorf("conn string: %w", err)
	}

	stop := func(c context.Context) error { return pg.Terminate(c) }
	return &PGContainer{Container: pg, DSN: dsn}, stop, nil
}

// KafkaEnv — запущенный Redpanda (Kafka API).
type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
}

// StartKafkaTC — Redpanda с автосозданием топиков.
func StartKafkaTC(ctx context.Context) (*KafkaEnv, StopFunc, error) {
	rp, err := redpanda.Run(
		ctx,
		"docker.redpanda.com/redpandadata/redpanda:v23.3.8",
		tc.WithLifecycleHooks(lifecycleLog(tcLogger)),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		_ = tc.TerminateContainer(rp)
		return nil, nil, fmt.Errorf("seed broker: %w", err)
	}

	stop := func(_ context.Context) error { return tc.TerminateContainer(rp) }
	return &KafkaEnv{Container: rp, Brokers: []string{seed}}, stop, nil
}

// StartRedisTC — Redis 7 (generic-контейнер); возвращает адрес host:port.
func StartRedisTC(ctx context.Context) (string, StopFunc, error) {
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:          "redis:7-alpine",
			ExposedPorts:   []string{"6379/tcp"},
			WaitingFor:     wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
			LifecycleHooks: []tc.ContainerLifecycleHooks{lifecycleLog(tcLogger)},
		},
		Started: true,
	})
	if err != nil {
		return "", nil, fmt.Errorf("run redis: %w", err)
	}

	endpoint, err := c.Endpoint(ctx, "")
	if err != nil {
		_ = c.Terminate(ctx)
		return "", nil, fmt.Errorf("redis endpoint: %w", err)
	}

	stop := func(c2 context.Context) error { return c.Terminate(c2) }
	return endpoint, stop, nil
}
