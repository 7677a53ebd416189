package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

type cliResult struct {
	code   int
	stdout string
	stderr string
}

func clearDotenvEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DOTENV_FILE", "DOTENV_QUOTE", "DOTENV_EXPORT", "DOTENV_CONFIG", "DOTENV_NO_COLOR", "DOTENV_FORMAT"} {
		t.Setenv(key, "")
	}
}

func runCLI(t *testing.T, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := execute(context.Background(), args, &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// chdirTemp moves into an empty directory so no .env or config above the
// package directory is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testChdir(t, dir)
	return dir
}

func TestCLI_SetThenGet(t *testing.T) {
	clearDotenvEnv(t)
	path := writeEnvFile(t, "")

	res := runCLI(t, "-f", path, "set", "HELLO", "WORLD")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "HELLO=\"WORLD\"\n", res.stdout)

	res = runCLI(t, "-f", path, "get", "HELLO")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "HELLO=\"WORLD\"\n", res.stdout)

	assert.Equal(t, "HELLO=\"WORLD\"\n", readFile(t, path))
}

func TestCLI_SetPreservesOtherLines(t *testing.T) {
	clearDotenvEnv(t)
	path := writeEnvFile(t, "# database\nDB_HOST=localhost\n\nDB_PORT=5432 # default\n")

	res := runCLI(t, "-f", path, "set", "DB_HOST", "db.internal")
	require.Equal(t, ExitSuccess, res.code, res.stderr)

	assert.Equal(t, "# database\nDB_HOST=\"db.internal\"\n\nDB_PORT=5432 # default\n", readFile(t, path))
}

func TestCLI_QuoteAndExportFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default", []string{"set", "A", "b c"}, "A=\"b c\"\n"},
		{"never", []string{"-q", "never", "set", "A", "bc"}, "A=bc\n"},
		{"auto bare", []string{"--quote", "auto", "set", "A", "bc"}, "A=bc\n"},
		{"auto spaced", []string{"--quote", "auto", "set", "A", "b c"}, "A=\"b c\"\n"},
		{"export", []string{"--export", "set", "A", "bc"}, "export A=\"bc\"\n"},
		{"export never", []string{"-e", "-q", "never", "set", "A", "bc"}, "export A=bc\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearDotenvEnv(t)
			path := writeEnvFile(t, "")

			res := runCLI(t, append([]string{"-f", path}, tt.args...)...)
			require.Equal(t, ExitSuccess, res.code, res.stderr)
			assert.Equal(t, tt.want, readFile(t, path))
		})
	}
}

func TestCLI_MissingFile(t *testing.T) {
	clearDotenvEnv(t)
	dir := chdirTemp(t)
	missing := filepath.Join(dir, "nope.env")

	tests := []struct {
		name string
		args []string
	}{
		{"get", []string{"-f", missing, "get", "A"}},
		{"set", []string{"-f", missing, "set", "A", "b"}},
		{"unset", []string{"-f", missing, "unset", "A"}},
		{"list", []string{"-f", missing, "list"}},
		{"default get", []string{"get", "A"}},
		{"default set", []string{"set", "A", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, tt.args...)
			assert.Equal(t, ExitFileNotFound, res.code)
			assert.Empty(t, res.stdout)
		})
	}

	_, err := os.Stat(missing)
	assert.True(t, os.IsNotExist(err), "set must not create the file")
	_, err = os.Stat(filepath.Join(dir, ".env"))
	assert.True(t, os.IsNotExist(err), "set must not create the default file")
}

func TestCLI_DefaultPathWalksUp(t *testing.T) {
	clearDotenvEnv(t)
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".env"), []byte("A=1\n"), 0644))
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0755))
	testChdir(t, sub)

	res := runCLI(t, "get", "A")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "A=\"1\"\n", res.stdout)

	res = runCLI(t, "set", "B", "2")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "A=1\nB=\"2\"\n", readFile(t, filepath.Join(root, ".env")))
}

func TestCLI_GetMissingKey(t *testing.T) {
	clearDotenvEnv(t)
	path := writeEnvFile(t, "A=1\n")

	res := runCLI(t, "-f", path, "get", "B")
	assert.Equal(t, ExitFailure, res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "B")
}

func TestCLI_GetLastAssignmentWins(t *testing.T) {
	clearDotenvEnv(t)
	path := writeEnvFile(t, "A=1\nA='2'\n")

	res := runCLI(t, "-f", path, "get", "A")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "A=\"2\"\n", res.stdout)
}

func TestCLI_Unset(t *testing.T) {
	clearDotenvEnv(t)
	path := writeEnvFile(t, "A=1\nB=2\nA=3\n")

	res := runCLI(t, "-f", path, "unset", "A")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "Successfully removed A\n", res.stdout)
	assert.Equal(t, "B=2\n", readFile(t, path))

	res = runCLI(t, "-f", path, "unset", "A")
	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stderr, "key A not removed from "+path+" - key doesn't exist.")
	assert.Equal(t, "B=2\n", readFile(t, path))
}

func TestCLI_List(t *testing.T) {
	clearDotenvEnv(t)
	path := writeEnvFile(t, "# comment\nA=1\nB=\"two words\"\nA=3\n")

	t.Run("simple", func(t *testing.T) {
		res := runCLI(t, "-f", path, "list")
		require.Equal(t, ExitSuccess, res.code, res.stderr)
		assert.Equal(t, "A=1\nB=two words\nA=3\n", res.stdout)
	})

	t.Run("json", func(t *testing.T) {
		res := runCLI(t, "-f", path, "list", "--format", "json")
		require.Equal(t, ExitSuccess, res.code, res.stderr)
		require.True(t, gjson.Valid(res.stdout))
		assert.Equal(t, "3", gjson.Get(res.stdout, "A").String())
		assert.Equal(t, "two words", gjson.Get(res.stdout, "B").String())
	})

	t.Run("yaml", func(t *testing.T) {
		res := runCLI(t, "-f", path, "list", "--format", "yaml")
		require.Equal(t, ExitSuccess, res.code, res.stderr)
		var got map[string]string
		require.NoError(t, yaml.Unmarshal([]byte(res.stdout), &got))
		assert.Equal(t, map[string]string{"A": "3", "B": "two words"}, got)
	})

	t.Run("export", func(t *testing.T) {
		res := runCLI(t, "-f", path, "list", "--format", "export")
		require.Equal(t, ExitSuccess, res.code, res.stderr)
		assert.Equal(t, "export A=1\nexport B='two words'\nexport A=3\n", res.stdout)
	})

	t.Run("format from env", func(t *testing.T) {
		t.Setenv("DOTENV_FORMAT", "shell")
		res := runCLI(t, "-f", path, "list")
		require.Equal(t, ExitSuccess, res.code, res.stderr)
		assert.Equal(t, "A=1\nB='two words'\nA=3\n", res.stdout)
	})
}

func TestCLI_ListDoesNotInterpolate(t *testing.T) {
	clearDotenvEnv(t)
	path := writeEnvFile(t, "A=1\nB=${A}\n")

	res := runCLI(t, "-f", path, "list")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "A=1\nB=${A}\n", res.stdout)
}

func TestCLI_UsageErrors(t *testing.T) {
	clearDotenvEnv(t)
	path := writeEnvFile(t, "A=1\n")

	tests := []struct {
		name string
		args []string
	}{
		{"get without key", []string{"-f", path, "get"}},
		{"set with one arg", []string{"-f", path, "set", "A"}},
		{"unset extra args", []string{"-f", path, "unset", "A", "B"}},
		{"unknown flag", []string{"-f", path, "get", "--bogus", "A"}},
		{"bad quote mode", []string{"-f", path, "-q", "sometimes", "get", "A"}},
		{"bad format", []string{"-f", path, "list", "--format", "xml"}},
		{"invalid key", []string{"-f", path, "set", "BAD KEY", "x"}},
		{"unknown command", []string{"frobnicate"}},
		{"run without command", []string{"-f", path, "run"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, tt.args...)
			assert.Equal(t, ExitUsageError, res.code, res.stderr)
		})
	}

	assert.Equal(t, "A=1\n", readFile(t, path))
}

func TestCLI_PathIsDirectory(t *testing.T) {
	clearDotenvEnv(t)
	dir := t.TempDir()

	res := runCLI(t, "-f", dir, "set", "A", "b")
	assert.NotEqual(t, ExitSuccess, res.code)
	assert.Contains(t, res.stderr, "Error:")
}

func TestCLI_ConfigFile(t *testing.T) {
	clearDotenvEnv(t)
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".dotenvrc.json"),
		[]byte(`{"file": "app.env", "quote": "never", "export": true}`), 0644))

	res := runCLI(t, "set", "A", "b")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "export A=b\n", readFile(t, filepath.Join(dir, "app.env")))

	// flags win over the settings file
	res = runCLI(t, "-q", "always", "set", "B", "c")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "export A=b\nexport B=\"c\"\n", readFile(t, filepath.Join(dir, "app.env")))
}

func TestCLI_EnvironmentVariables(t *testing.T) {
	clearDotenvEnv(t)
	path := writeEnvFile(t, "")
	t.Setenv("DOTENV_FILE", path)
	t.Setenv("DOTENV_QUOTE", "never")

	res := runCLI(t, "set", "A", "b")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "A=b\n", readFile(t, path))
}

func TestCLI_ConfigError(t *testing.T) {
	clearDotenvEnv(t)
	dir := chdirTemp(t)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`{"quote": `), 0644))

	res := runCLI(t, "--config", broken, "list")
	assert.Equal(t, ExitConfigError, res.code)

	res = runCLI(t, "--config", filepath.Join(dir, "missing.json"), "list")
	assert.Equal(t, ExitConfigError, res.code)

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"format": "xml"}`), 0644))
	res = runCLI(t, "--config", invalid, "list")
	assert.Equal(t, ExitConfigError, res.code)
}

func TestCLI_Verbose(t *testing.T) {
	clearDotenvEnv(t)
	path := writeEnvFile(t, "A=1\n")

	res := runCLI(t, "-v", "-f", path, "get", "A")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Using "+path)
	assert.Equal(t, "A=\"1\"\n", res.stdout)
}

func TestCLI_VerboseSettings(t *testing.T) {
	clearDotenvEnv(t)
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("A=1\n"), 0644))

	res := runCLI(t, "-v", "get", "A")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.NotContains(t, res.stderr, "Settings:")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".dotenvrc.json"), []byte(`{"quote": "auto"}`), 0644))
	res = runCLI(t, "-v", "get", "A")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stderr, "Settings: quote=auto export=false format=simple override=true")
}

func TestCLI_Init(t *testing.T) {
	clearDotenvEnv(t)
	dir := chdirTemp(t)

	res := runCLI(t, "init", "--with-config")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "", readFile(t, filepath.Join(dir, ".env")))
	assert.FileExists(t, filepath.Join(dir, ".dotenvrc.json"))

	res = runCLI(t, "init")
	assert.Equal(t, ExitFailure, res.code)
	assert.Contains(t, res.stderr, "already exists")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("A=1\n"), 0644))
	res = runCLI(t, "init", "--force")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "", readFile(t, filepath.Join(dir, ".env")))

	res = runCLI(t, "set", "A", "b")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
}

func TestCLI_Version(t *testing.T) {
	clearDotenvEnv(t)
	res := runCLI(t, "version")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Equal(t, "dotenv dev\nBuilt: unknown\n", res.stdout)
}

func TestCLI_Completion(t *testing.T) {
	clearDotenvEnv(t)
	res := runCLI(t, "completion", "bash")
	require.Equal(t, ExitSuccess, res.code, res.stderr)
	assert.Contains(t, res.stdout, "dotenv")

	res = runCLI(t, "completion", "tcsh")
	assert.Equal(t, ExitUsageError, res.code)
}

func TestCLI_Run(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	clearDotenvEnv(t)
	path := writeEnvFile(t, "GREETING=hello\nTARGET=${GREETING:-x} world\nexport LITERAL='${GREETING}'\n")

	t.Run("sees file values", func(t *testing.T) {
		res := runCLI(t, "-f", path, "run", "sh", "-c", `printf '%s|%s|%s' "$GREETING" "$TARGET" "$LITERAL"`)
		require.Equal(t, ExitSuccess, res.code, res.stderr)
		assert.Equal(t, "hello|hello world|${GREETING}", res.stdout)
	})

	t.Run("exit code passes through", func(t *testing.T) {
		res := runCLI(t, "-f", path, "run", "sh", "-c", "exit 7")
		assert.Equal(t, 7, res.code)
		assert.Empty(t, res.stderr)
	})

	t.Run("override by default", func(t *testing.T) {
		t.Setenv("GREETING", "from-env")
		res := runCLI(t, "-f", path, "run", "sh", "-c", `printf '%s' "$GREETING"`)
		require.Equal(t, ExitSuccess, res.code, res.stderr)
		assert.Equal(t, "hello", res.stdout)
	})

	t.Run("no override", func(t *testing.T) {
		t.Setenv("GREETING", "from-env")
		res := runCLI(t, "-f", path, "run", "--no-override", "sh", "-c", `printf '%s|%s' "$GREETING" "$TARGET"`)
		require.Equal(t, ExitSuccess, res.code, res.stderr)
		assert.Equal(t, "from-env|from-env world", res.stdout)
	})

	t.Run("missing command", func(t *testing.T) {
		res := runCLI(t, "-f", path, "run", "definitely-not-a-command-on-path")
		assert.Equal(t, ExitFailure, res.code)
	})

	t.Run("missing file", func(t *testing.T) {
		res := runCLI(t, "-f", filepath.Join(t.TempDir(), ".env"), "run", "true")
		assert.Equal(t, ExitFileNotFound, res.code)
	})
}

// syncBuffer lets the watch callback write while the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestCLI_ListWatch(t *testing.T) {
	clearDotenvEnv(t)
	path := writeEnvFile(t, "A=1\n")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var stdout, stderr syncBuffer
	done := make(chan int, 1)
	go func() {
		done <- execute(ctx, []string{"-f", path, "list", "--watch"}, &stdout, &stderr)
	}()

	// the watcher may not be registered yet, so keep writing
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for !strings.Contains(stdout.String(), "A=2") {
		select {
		case <-ticker.C:
			require.NoError(t, os.WriteFile(path, []byte("A=2\n"), 0644))
		case <-ctx.Done():
			t.Fatalf("no update seen, stdout: %q stderr: %q", stdout.String(), stderr.String())
		}
	}

	cancel()
	select {
	case code := <-done:
		assert.Equal(t, ExitSuccess, code)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.True(t, strings.HasPrefix(stdout.String(), "A=1\n"))
	assert.Contains(t, stderr.String(), "Watching")
}

func TestWatchFile_NoCallbacksAfterReturn(t *testing.T) {
	path := writeEnvFile(t, "A=1\n")

	ctx, cancel := context.WithCancel(context.Background())
	var (
		mu       sync.Mutex
		changes  int
		returned bool
		late     bool
	)
	onChange := func() {
		mu.Lock()
		defer mu.Unlock()
		changes++
		if returned {
			late = true
		}
	}

	done := make(chan error, 1)
	go func() {
		err := watchFile(ctx, path, onChange, func(error) {})
		mu.Lock()
		returned = true
		mu.Unlock()
		done <- err
	}()

	// wait for one debounced change, then cancel right after another write
	deadline := time.After(10 * time.Second)
	for {
		mu.Lock()
		n := changes
		mu.Unlock()
		if n > 0 {
			break
		}
		require.NoError(t, os.WriteFile(path, []byte("A=2\n"), 0644))
		select {
		case <-time.After(2 * WatchDebounceDelay):
		case <-deadline:
			t.Fatal("no change reported")
		}
	}
	require.NoError(t, os.WriteFile(path, []byte("A=3\n"), 0644))
	time.Sleep(WatchDebounceDelay / 2)
	cancel()

	require.NoError(t, <-done)
	time.Sleep(2 * WatchDebounceDelay)

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, late, "onChange ran after watchFile returned")
}

// testChdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir for older toolchains).
func testChdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}
