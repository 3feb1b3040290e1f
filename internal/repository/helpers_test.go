package repository

import (
	"context"
	"strings"
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var validContent = strings.Repeat("A patient look at soil, seeds and water. ", 8)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), database.GormConfig())
	require.NoError(t, err)

	return gormDB, mock
}

func createAuthor(t *testing.T, repo AuthorRepository, name, phone string) *models.Author {
	t.Helper()
	a := &models.Author{Name: name, PhoneNumber: phone}
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}
