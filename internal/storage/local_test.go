package storage

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSaver_Save(t *testing.T) {
	dir := t.TempDir()
	saver, err := NewLocalSaver(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	name, err := saver.Save(context.Background(), "label.png", strings.NewReader("image-bytes"))
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d{8}_\d{6}_label\.png$`), name)

	data, err := os.ReadFile(saver.Path(name))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestLocalSaver_SanitizesFilename(t *testing.T) {
	saver, err := NewLocalSaver(t.TempDir())
	require.NoError(t, err)

	name, err := saver.Save(context.Background(), "../../etc/pass wd$.png", strings.NewReader("x"))
	require.NoError(t, err)

	assert.NotContains(t, name, "/")
	assert.True(t, strings.HasSuffix(name, "pass_wd_.png"), "got %s", name)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "label.png", sanitizeFilename("label.png"))
	assert.Equal(t, "a_b.jpg", sanitizeFilename("a b.jpg"))
	assert.Equal(t, "upload", sanitizeFilename(""))
	assert.Equal(t, "upload", sanitizeFilename(".."))
}
