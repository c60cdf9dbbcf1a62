package store

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kart-io/docquery/internal/model"
)

func newTestFactory(t *testing.T) Factory {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	factory, err := NewFactory(db)
	require.NoError(t, err)
	return factory
}

func TestDocumentsCreateAndGet(t *testing.T) {
	factory := newTestFactory(t)
	docs := factory.Documents()
	ctx := context.Background()

	doc := &model.Document{
		FileName:    "report.pdf",
		StoragePath: "/data/01ABC_report.pdf",
		TextContent: "quarterly results",
	}
	require.NoError(t, docs.Create(ctx, doc))
	require.NotZero(t, doc.ID)

	got, err := docs.Get(ctx, doc.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "report.pdf", got.FileName)
	assert.Equal(t, "/data/01ABC_report.pdf", got.StoragePath)
	assert.Equal(t, "quarterly results", got.TextContent)
}

func TestDocumentsGetUnknownReturnsNil(t *testing.T) {
	factory := newTestFactory(t)
	docs := factory.Documents()

	got, err := docs.Get(context.Background(), 9999)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDocumentsList(t *testing.T) {
	factory := newTestFactory(t)
	docs := factory.Documents()
	ctx := context.Background()

	for _, name := range []string{"a.pdf", "b.pdf", "c.png"} {
		require.NoError(t, docs.Create(ctx, &model.Document{FileName: name, TextLength: len(name)}))
	}

	summaries, err := docs.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 3)
	for _, s := range summaries {
		assert.NotZero(t, s.ID)
		assert.NotEmpty(t, s.FileName)
		assert.Positive(t, s.TextLength)
	}
}

func TestDocumentsDelete(t *testing.T) {
	factory := newTestFactory(t)
	docs := factory.Documents()
	ctx := context.Background()

	doc := &model.Document{FileName: "tmp.pdf"}
	require.NoError(t, docs.Create(ctx, doc))

	require.NoError(t, docs.Delete(ctx, doc.ID))

	got, err := docs.Get(ctx, doc.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	count, err := docs.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
