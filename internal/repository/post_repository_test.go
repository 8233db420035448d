package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"postboard/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })

	return sqlxDB, mock
}

func stringPtr(s string) *string {
	return &s
}

var postRowColumns = []string{"id", "title", "content", "is_deleted", "created_at", "updated_at"}

func TestNewPostRepository(t *testing.T) {
	db, _ := setupMockDB(t)

	repo := NewPostRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.DB)
}

func TestPostRepositoryImpl_Create(t *testing.T) {
	tests := []struct {
		name        string
		post        *models.Post
		setupMock   func(mock sqlmock.Sqlmock)
		expectedID  int64
		expectedErr error
		errorMsg    string
	}{
		{
			name: "creates post and assigns id",
			post: &models.Post{Title: "Hello", Content: stringPtr("World")},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO posts (title, content, is_deleted, created_at, updated_at)`)).
					WithArgs("Hello", "World", false, sqlmock.AnyArg(), sqlmock.AnyArg()).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
			},
			expectedID: 7,
		},
		{
			name: "creates post without content",
			post: &models.Post{Title: "No body"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO posts`)).
					WithArgs("No body", nil, false, sqlmock.AnyArg(), sqlmock.AnyArg()).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
			},
			expectedID: 8,
		},
		{
			name: "unique index violation maps to duplicate title",
			post: &models.Post{Title: "Hello"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO posts`)).
					WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
			},
			expectedErr: ErrDuplicateTitle,
		},
		{
			name: "database error",
			post: &models.Post{Title: "Hello"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO posts`)).
					WillReturnError(errors.New("connection reset"))
			},
			errorMsg: "failed to create post",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewPostRepository(db)
			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.post)

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
			case tt.errorMsg != "":
				assert.ErrorContains(t, err, tt.errorMsg)
				assert.NotErrorIs(t, err, ErrDuplicateTitle)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.post.ID)
				assert.False(t, tt.post.CreatedAt.IsZero())
				assert.Equal(t, tt.post.CreatedAt, tt.post.UpdatedAt)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepositoryImpl_GetByID(t *testing.T) {
	now := time.Now().UTC()

	t.Run("returns post", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, content, is_deleted, created_at, updated_at FROM posts WHERE id = ?`)).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(postRowColumns).AddRow(3, "Hello", "World", false, now, now))

		post, err := repo.GetByID(context.Background(), 3)

		require.NoError(t, err)
		assert.Equal(t, int64(3), post.ID)
		assert.Equal(t, "Hello", post.Title)
		require.NotNil(t, post.Content)
		assert.Equal(t, "World", *post.Content)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("null content stays nil", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM posts WHERE id = ?`)).
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows(postRowColumns).AddRow(4, "Empty", nil, false, now, now))

		post, err := repo.GetByID(context.Background(), 4)

		require.NoError(t, err)
		assert.Nil(t, post.Content)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM posts WHERE id = ?`)).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		post, err := repo.GetByID(context.Background(), 99)

		assert.Nil(t, post)
		assert.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM posts WHERE id = ?`)).
			WithArgs(int64(1)).
			WillReturnError(errors.New("connection failed"))

		post, err := repo.GetByID(context.Background(), 1)

		assert.Nil(t, post)
		assert.ErrorContains(t, err, "failed to get post")
		assert.NotErrorIs(t, err, ErrPostNotFound)
	})
}

func TestPostRepositoryImpl_List(t *testing.T) {
	now := time.Now().UTC()

	t.Run("active posts ordered by id desc with limit and offset", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM posts WHERE is_deleted = ? ORDER BY id DESC LIMIT ? OFFSET ?`)).
			WithArgs(false, 5, 10).
			WillReturnRows(sqlmock.NewRows(postRowColumns).
				AddRow(2, "Second", "b", false, now, now).
				AddRow(1, "First", "a", false, now, now))

		posts, err := repo.List(context.Background(), PostFilter{Skip: 10, Limit: 5, ActiveOnly: true})

		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, int64(2), posts[0].ID)
		assert.Equal(t, int64(1), posts[1].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("all posts without filter", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, title, content, is_deleted, created_at, updated_at FROM posts ORDER BY id DESC LIMIT ? OFFSET ?`)).
			WithArgs(10, 0).
			WillReturnRows(sqlmock.NewRows(postRowColumns))

		posts, err := repo.List(context.Background(), PostFilter{Limit: 10})

		require.NoError(t, err)
		assert.NotNil(t, posts)
		assert.Empty(t, posts)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`FROM posts`)).
			WillReturnError(errors.New("timeout"))

		posts, err := repo.List(context.Background(), PostFilter{Limit: 10})

		assert.Nil(t, posts)
		assert.ErrorContains(t, err, "failed to list posts")
	})
}

func TestPostRepositoryImpl_Count(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM posts WHERE is_deleted = ?`)).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := repo.Count(context.Background(), true)

	require.NoError(t, err)
	assert.Equal(t, 12, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryImpl_ExistsByTitle(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		expected bool
	}{
		{name: "title taken", count: 1, expected: true},
		{name: "title free", count: 0, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewPostRepository(db)

			mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM posts WHERE title = ? AND is_deleted = ?`)).
				WithArgs("Hello", false).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			exists, err := repo.ExistsByTitle(context.Background(), "Hello")

			require.NoError(t, err)
			assert.Equal(t, tt.expected, exists)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepositoryImpl_Update(t *testing.T) {
	post := &models.Post{
		ID:        5,
		Title:     "Updated",
		Content:   stringPtr("Body"),
		UpdatedAt: time.Now().UTC(),
	}

	tests := []struct {
		name        string
		setupMock   func(mock sqlmock.Sqlmock)
		expectedErr error
		errorMsg    string
	}{
		{
			name: "updates post",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE posts SET title = ?, content = ?, updated_at = ? WHERE id = ?`)).
					WithArgs("Updated", "Body", post.UpdatedAt, int64(5)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "no rows means not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE posts`)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedErr: ErrPostNotFound,
		},
		{
			name: "title collision",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE posts`)).
					WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: posts.title (2067)"))
			},
			expectedErr: ErrDuplicateTitle,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE posts`)).
					WillReturnError(errors.New("disk I/O error"))
			},
			errorMsg: "failed to update post",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewPostRepository(db)
			tt.setupMock(mock)

			err := repo.Update(context.Background(), post)

			switch {
			case tt.expectedErr != nil:
				assert.ErrorIs(t, err, tt.expectedErr)
			case tt.errorMsg != "":
				assert.ErrorContains(t, err, tt.errorMsg)
			default:
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPostRepositoryImpl_Delete(t *testing.T) {
	t.Run("deletes post", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts WHERE id = ?`)).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(context.Background(), 5))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing post", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostRepository(db)

		mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM posts WHERE id = ?`)).
			WithArgs(int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(context.Background(), 5), ErrPostNotFound)
	})
}
