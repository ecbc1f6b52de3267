package repository

import (
	"context"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_CreateAndList(t *testing.T) {
	db := openTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "cauthor")
	commenter := createTestUser(t, db, "commenter")
	post := createTestPost(t, db, author, "talk about this")

	first := &models.Comment{PostID: post.ID, UserID: commenter.ID, Username: commenter.Username, Text: "first"}
	require.NoError(t, repo.Create(ctx, first))
	second := &models.Comment{PostID: post.ID, UserID: author.ID, Username: author.Username, Text: "second"}
	require.NoError(t, repo.Create(ctx, second))

	comments, err := repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Text)
	assert.Equal(t, "commenter", comments[0].Username)
}

func TestCommentRepository_Delete(t *testing.T) {
	db := openTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := createTestUser(t, db, "cdauthor")
	post := createTestPost(t, db, author, "short-lived thread")

	comment := &models.Comment{PostID: post.ID, UserID: author.ID, Username: author.Username, Text: "oops"}
	require.NoError(t, repo.Create(ctx, comment))

	require.NoError(t, repo.Delete(ctx, comment.ID))

	comments, err := repo.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	err = repo.Delete(ctx, comment.ID)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
