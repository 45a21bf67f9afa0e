package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hwu1001/v1zix.github.io/internal/config"
)

func writeToolConfig(t *testing.T, root, siteFile string) string {
	t.Helper()
	path := filepath.Join(root, "lumen.yaml")
	doc := "outputDir: " + filepath.Join(root, "public") + "\n" +
		"contentDir: " + filepath.Join(root, "content") + "\n" +
		"layoutsDir: " + filepath.Join(root, "layouts") + "\n" +
		"staticDir: " + filepath.Join(root, "static") + "\n" +
		"siteConfig: " + siteFile + "\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func TestConfigShow(t *testing.T) {
	root := t.TempDir()
	siteFile := filepath.Join(root, "site.yaml")
	data, err := config.DefaultSite().YAML()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(siteFile, data, 0o644))

	out, err := run(t, "config", "show", "--config", writeToolConfig(t, root, siteFile), "--log-level", "error")
	require.NoError(t, err)

	parsed, err := config.ParseSite([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultSite(), parsed)
}

func TestConfigShowRejectsInvalidSite(t *testing.T) {
	root := t.TempDir()
	siteFile := filepath.Join(root, "site.yaml")
	require.NoError(t, os.WriteFile(siteFile, []byte("url: https://example.com\ntitle: x\npostsPerPage: 0\nauthor: {name: a}\n"), 0o644))

	_, err := run(t, "config", "show", "--config", writeToolConfig(t, root, siteFile), "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postsPerPage")
}

func TestBuildCommand(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "content", "pages"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "content", "pages", "about.md"), []byte("---\ntitle: About me\n---\nHi.\n"), 0o644))

	// No site file: the built-in configuration is used.
	_, err := run(t, "build", "--config", writeToolConfig(t, root, filepath.Join(root, "site.yaml")), "--log-level", "error")
	require.NoError(t, err)

	home, err := os.ReadFile(filepath.Join(root, "public", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(home), "Blog by Henry Wu")
	assert.FileExists(t, filepath.Join(root, "public", "pages", "about", "index.html"))
}
