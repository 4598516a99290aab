package archive

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p, err := New(Config{})
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = New(Config{Provider: " NONE "})
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = New(Config{Provider: "local", LocalDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, ProviderLocal, p.Name())

	_, err = New(Config{Provider: "local"})
	assert.Error(t, err)

	_, err = New(Config{Provider: "s3", S3Region: "eu-west-1"})
	assert.Error(t, err)

	_, err = New(Config{Provider: "ftp"})
	assert.EqualError(t, err, `archive: unknown provider "ftp"`)
}

func TestObjectKey(t *testing.T) {
	at := time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "exports/2024/03/dashboard.pdf", ObjectKey("", "dashboard.pdf", at))
	assert.Equal(t, "reports/2024/03/dashboard.xlsx", ObjectKey("/reports/", "../dashboard.xlsx", at))
}

func TestLocalProvider(t *testing.T) {
	dir := t.TempDir()
	p, err := NewLocalProvider(dir)
	require.NoError(t, err)
	ctx := context.Background()

	res, err := p.Store(ctx, "exports/2024/03/a.pdf", "application/pdf", []byte("%PDF-1.3"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "exports", "2024", "03", "a.pdf"), res.Location)
	assert.Equal(t, int64(8), res.Size)

	data, err := os.ReadFile(res.Location)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3", string(data))

	// Overwrites silently
	_, err = p.Store(ctx, "exports/2024/03/a.pdf", "application/pdf", []byte("v2"))
	require.NoError(t, err)

	require.NoError(t, p.Delete(ctx, "exports/2024/03/a.pdf"))
	_, err = os.Stat(res.Location)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, p.Delete(ctx, "exports/2024/03/a.pdf"), "deleting a missing file is not an error")
}
