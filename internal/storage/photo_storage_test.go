package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) (*PhotoStorage, string) {
	t.Helper()
	root := t.TempDir()
	s, err := NewPhotoStorage(root, "/uploads/", 1)
	require.NoError(t, err)
	return s, root
}

func TestPhotoStorage_SaveAndDelete(t *testing.T) {
	s, root := newTestStorage(t)

	rel, n, err := s.Save(context.Background(), "42", "pothole.JPG", bytes.NewReader([]byte("jpeg-bytes")))
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)
	assert.True(t, strings.HasPrefix(rel, "42/"))
	assert.True(t, strings.HasSuffix(rel, ".jpg"))

	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)

	assert.Equal(t, "/uploads/"+rel, s.PublicURL(rel))

	require.NoError(t, s.Delete(context.Background(), rel))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))

	// повторное удаление не ошибка
	assert.NoError(t, s.Delete(context.Background(), rel))
}

func TestPhotoStorage_SaveRejectsOversize(t *testing.T) {
	s, root := newTestStorage(t)

	big := bytes.Repeat([]byte{'x'}, 1024*1024+1)
	_, _, err := s.Save(context.Background(), "7", "big.png", bytes.NewReader(big))
	require.Error(t, err)

	entries, err := os.ReadDir(filepath.Join(root, "7"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPhotoStorage_SanitizesFolderAndName(t *testing.T) {
	s, root := newTestStorage(t)

	rel, _, err := s.Save(context.Background(), "../../etc", "../passwd.png", strings.NewReader("x"))
	require.NoError(t, err)

	abs := filepath.Join(root, filepath.FromSlash(rel))
	assert.True(t, strings.HasPrefix(abs, root))
}

func TestPhotoStorage_DeleteRejectsTraversal(t *testing.T) {
	s, _ := newTestStorage(t)
	assert.Error(t, s.Delete(context.Background(), "../outside.png"))
}

func TestPhotoStorage_CancelledContext(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.Save(ctx, "1", "a.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
