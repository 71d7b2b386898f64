package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"lamina/internal/config"
	"lamina/internal/form"
	"lamina/internal/gallery"
	"lamina/internal/workflow"
)

var testJPEG = []byte{0xff, 0xd8, 0xff, 0xe0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

// fakeService records prompts and returns testJPEG.
type fakeService struct {
	mu      sync.Mutex
	prompts []string
	edits   int
}

func (s *fakeService) GenerateFromText(_ context.Context, p, _ string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, p)
	return testJPEG, nil
}

func (s *fakeService) EditWithDirective(context.Context, []byte, string, string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edits++
	return testJPEG, nil
}

func (s *fakeService) GenerateImprovementDirective(context.Context, form.Fields) (string, error) {
	return "add a bold diagonal accent", nil
}

type testEnv struct {
	dir     string
	cfgFile string
	dbPath  string
	outDir  string
	svc     *fakeService
}

// setupEnv writes a config under a temp dir and swaps in a fake service.
func setupEnv(t *testing.T, withKey bool) *testEnv {
	t.Helper()
	for _, name := range []string{"API_KEY", "GOOGLE_API_KEY", "GEMINI_API_KEY", "LAMINA_DB", "LAMINA_OUTPUT_DIR", "LAMINA_DEBUG"} {
		t.Setenv(name, "")
	}
	if withKey {
		t.Setenv("GEMINI_API_KEY", "test-key")
	}

	dir := t.TempDir()
	env := &testEnv{
		dir:     dir,
		cfgFile: filepath.Join(dir, "config.yaml"),
		dbPath:  filepath.Join(dir, "data", "lamina.db"),
		outDir:  filepath.Join(dir, "out"),
		svc:     &fakeService{},
	}

	cfg := config.DefaultConfig()
	cfg.Storage.DatabasePath = env.dbPath
	cfg.Output.Dir = env.outDir
	require.NoError(t, cfg.Save(env.cfgFile))

	orig := newService
	newService = func(context.Context, *config.Config) (workflow.ImageService, error) {
		return env.svc, nil
	}
	t.Cleanup(func() { newService = orig })

	return env
}

func (e *testEnv) writeForm(t *testing.T, name string, f form.Fields) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, form.SaveFile(path, f))
	return path
}

func (e *testEnv) saved(t *testing.T) gallery.Collection {
	t.Helper()
	b, err := gallery.OpenSQLite(gallery.DriverModernc, e.dbPath)
	require.NoError(t, err)
	defer b.Close()
	return gallery.New(b, gallery.DefaultKey).Load(context.Background())
}

// execute runs the root command with fresh flag values.
func (e *testEnv) execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", e.cfgFile}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestPromptCommand(t *testing.T) {
	env := setupEnv(t, false)
	path := env.writeForm(t, "post.yaml", form.Fields{Header: "X", TitleLine1: "Y", Texture: "linen"})

	t.Run("generation", func(t *testing.T) {
		out, err := env.execute(t, "", "prompt", "--form", path)
		require.NoError(t, err)
		assert.Contains(t, out, "X")
		assert.Contains(t, out, "Y")
		assert.Contains(t, out, "linen")
	})

	t.Run("template ignores visual fields", func(t *testing.T) {
		out, err := env.execute(t, "", "prompt", "--form", path, "--kind", "template")
		require.NoError(t, err)
		assert.Contains(t, out, "X")
		assert.NotContains(t, out, "linen")
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := env.execute(t, "", "prompt", "--form", path, "--kind", "poster")
		assert.Error(t, err)
	})
}

func TestGenerateCommand(t *testing.T) {
	env := setupEnv(t, true)
	path := env.writeForm(t, "post.yaml", form.Fields{Header: "X", TitleLine1: "Y"})

	out, err := env.execute(t, "", "generate", "--form", path, "--improve", "--save")
	require.NoError(t, err)

	require.Len(t, env.svc.prompts, 1)
	assert.Contains(t, env.svc.prompts[0], "X")
	assert.Contains(t, env.svc.prompts[0], "Y")
	assert.Equal(t, 1, env.svc.edits)

	for _, name := range []string{"lamina-generada.jpg", "lamina-mejorada-ia.jpg"} {
		data, err := os.ReadFile(filepath.Join(env.outDir, name))
		require.NoError(t, err, name)
		assert.Equal(t, testJPEG, data)
	}
	assert.Contains(t, out, "saved: lamina-")

	normal, improved := env.saved(t).Partition()
	assert.Len(t, normal, 1)
	assert.Len(t, improved, 1)
}

func TestGenerateCommand_Template(t *testing.T) {
	env := setupEnv(t, true)
	path := env.writeForm(t, "post.yaml", form.Fields{Header: "X"})
	tpl := filepath.Join(env.dir, "base.jpg")
	require.NoError(t, os.WriteFile(tpl, testJPEG, 0644))

	_, err := env.execute(t, "", "generate", "--form", path, "--template", tpl)
	require.NoError(t, err)
	assert.Empty(t, env.svc.prompts)
	assert.Equal(t, 1, env.svc.edits)
}

func TestGenerateCommand_MissingCredential(t *testing.T) {
	env := setupEnv(t, false)

	_, err := env.execute(t, "", "generate")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingCredential)
	assert.Empty(t, env.svc.prompts)
}

func TestGalleryCommands(t *testing.T) {
	env := setupEnv(t, true)
	_, err := env.execute(t, "", "generate", "--save")
	require.NoError(t, err)

	coll := env.saved(t)
	require.Len(t, coll, 1)
	id := coll[0].ID

	t.Run("list", func(t *testing.T) {
		out, err := env.execute(t, "", "gallery", "list")
		require.NoError(t, err)
		assert.Contains(t, out, "Láminas Normales (1)")
		assert.Contains(t, out, "Láminas Mejoradas con IA (0)")
		assert.Contains(t, out, id)
	})

	t.Run("export", func(t *testing.T) {
		dst := filepath.Join(env.dir, "exported", "copy.jpg")
		_, err := env.execute(t, "", "gallery", "export", id, dst)
		require.NoError(t, err)
		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, testJPEG, data)
	})

	t.Run("export unknown id", func(t *testing.T) {
		_, err := env.execute(t, "", "gallery", "export", "lamina-0", filepath.Join(env.dir, "x.jpg"))
		assert.Error(t, err)
	})

	t.Run("delete declined", func(t *testing.T) {
		out, err := env.execute(t, "n\n", "gallery", "delete", id)
		require.NoError(t, err)
		assert.Contains(t, out, "¿Estás seguro")
		assert.Contains(t, out, "Cancelled")
		assert.Len(t, env.saved(t), 1)
	})

	t.Run("delete confirmed", func(t *testing.T) {
		out, err := env.execute(t, "y\n", "gallery", "delete", id)
		require.NoError(t, err)
		assert.Contains(t, out, "deleted: "+id)
		assert.Empty(t, env.saved(t))
	})

	t.Run("publish not configured", func(t *testing.T) {
		_, err := env.execute(t, "", "gallery", "publish")
		assert.Error(t, err)
	})
}

func TestGalleryList_WithoutCredential(t *testing.T) {
	env := setupEnv(t, false)
	out, err := env.execute(t, "", "gallery", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No saved láminas.")
}

func TestBatchCommand(t *testing.T) {
	env := setupEnv(t, true)
	a := env.writeForm(t, "a.yaml", form.Fields{Header: "first"})
	b := env.writeForm(t, "b.yaml", form.Fields{Header: "second"})

	out, err := env.execute(t, "", "batch", a, b, "--concurrency", "2", "--save")
	require.NoError(t, err)

	assert.Len(t, env.svc.prompts, 2)
	assert.FileExists(t, filepath.Join(env.outDir, "a.jpg"))
	assert.FileExists(t, filepath.Join(env.outDir, "b.jpg"))
	assert.Contains(t, out, "done: "+a)

	coll := env.saved(t)
	require.Len(t, coll, 2)
	assert.NotEqual(t, coll[0].ID, coll[1].ID)
}

func TestBatchCommand_BadForm(t *testing.T) {
	env := setupEnv(t, true)
	bad := filepath.Join(env.dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("header: [unterminated"), 0644))

	_, err := env.execute(t, "", "batch", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestConfigInit(t *testing.T) {
	env := setupEnv(t, false)
	target := filepath.Join(env.dir, "fresh", "config.yaml")

	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", target, "config", "init"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Empty(t, cfg.Gemini.APIKey)

	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"--config", target, "config", "init"})
	assert.Error(t, rootCmd.ExecuteContext(context.Background()))

	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"--config", target, "config", "init", "--force"})
	assert.NoError(t, rootCmd.ExecuteContext(context.Background()))
}
