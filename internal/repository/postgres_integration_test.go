//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wordbook/api/internal/catalog"
	"github.com/wordbook/api/internal/database"
	"github.com/wordbook/api/internal/model"
)

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "dictionary",
				"POSTGRES_PASSWORD": "dictionary",
				"POSTGRES_DB":       "dictionary",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://dictionary:dictionary@%s:%s/dictionary?sslmode=disable", host, port.Port())
	db, err := database.Open(postgres.Open(dsn), "error")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestPostgres_CatalogPaging(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()
	words := NewWordRepository(db)

	n, err := words.CreateMany(ctx, []string{"ant", "bee", "cat", "catalog", "cab", "a_b", "axb"}, 3)
	require.NoError(t, err)
	require.Equal(t, int64(7), n)

	got, err := words.Range(ctx, catalog.RangeQuery{Prefix: "a_", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"a_b"}, valuesOf(got))

	p := catalog.NewPaginator(words)
	var visited []string
	q := catalog.Query{Limit: 2}
	for {
		page, err := p.ListWords(ctx, q)
		require.NoError(t, err)
		assert.Equal(t, int64(7), page.TotalDocs)
		visited = append(visited, valuesOf(page.Results)...)
		if !page.HasNext {
			break
		}
		q.Next = *page.Next
	}
	assert.Len(t, visited, 7)

	_, err = p.ListWords(ctx, catalog.Query{Previous: "00000000-0000-0000-0000-000000000000"})
	assert.ErrorIs(t, err, catalog.ErrInvalidCursor)
}

func TestPostgres_DuplicateUser(t *testing.T) {
	db := setupPostgres(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &model.User{Name: "Ada", Email: "ada@example.com", Password: "x"}))
	err := users.Create(ctx, &model.User{Name: "Ada", Email: "ADA@example.com", Password: "x"})
	assert.ErrorIs(t, err, model.ErrDuplicate)
}
