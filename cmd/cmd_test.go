package cmd

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mabhi256/jvmch/internal/classfile/classtest"
	"github.com/mabhi256/jvmch/internal/jar"
)

// run executes the root command with fresh flag state in an isolated
// working directory and home.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	for _, c := range rootCmd.Commands() {
		c.Flags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("SHELL", "/bin/sh") // no completion auto-setup
	return dir
}

func writeJar(t *testing.T, path string, entries map[string][]byte, order ...string) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range order {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write(entries[name])
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func entryNames(t *testing.T, path string) []string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	return names
}

func readEntry(t *testing.T, path, name string) string {
	t.Helper()
	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	f, err := r.Open(name)
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	return string(data)
}

func TestAnnotateCommand(t *testing.T) {
	dir := isolate(t)
	src := filepath.Join(dir, "app.jar")
	dst := filepath.Join(dir, "out.jar")
	writeJar(t, src, map[string][]byte{
		"com/example/App.class": classtest.MainClass("com/example/App"),
		"readme.txt":            []byte("hi"),
	}, "com/example/App.class", "readme.txt")

	_, _, err := run(t, "annotate", src, dst)
	require.NoError(t, err)

	assert.Contains(t, readEntry(t, dst, jar.ManifestPath), "Main-Class: com.example.App")
	assert.Equal(t, []string{jar.ManifestPath, "com/example/App.class", "readme.txt"}, entryNames(t, dst))
}

func TestAnnotateAliasAndUseFirst(t *testing.T) {
	dir := isolate(t)
	src := filepath.Join(dir, "two.jar")
	writeJar(t, src, map[string][]byte{
		"b/B.class": classtest.MainClass("b/B"),
		"a/A.class": classtest.MainClass("a/A"),
	}, "b/B.class", "a/A.class")

	_, _, err := run(t, "annotate-jar-with-main-class-attribute", src, filepath.Join(dir, "x.jar"))
	var ambiguous *jar.AmbiguousEntryPointError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, []string{"b.B", "a.A"}, ambiguous.Candidates)
	assert.NoFileExists(t, filepath.Join(dir, "x.jar"))

	_, _, err = run(t, "annotate", "--use-first", src, filepath.Join(dir, "x.jar"))
	require.NoError(t, err)
	assert.Contains(t, readEntry(t, filepath.Join(dir, "x.jar"), jar.ManifestPath), "Main-Class: b.B")
}

func TestAnnotateUseFirstFromConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jvmch.yaml"), []byte("annotate:\n  use_first: true\n"), 0o644))

	src := filepath.Join(dir, "two.jar")
	writeJar(t, src, map[string][]byte{
		"a/A.class": classtest.MainClass("a/A"),
		"b/B.class": classtest.MainClass("b/B"),
	}, "a/A.class", "b/B.class")

	_, _, err := run(t, "annotate", src, src)
	require.NoError(t, err)
	assert.Contains(t, readEntry(t, src, jar.ManifestPath), "Main-Class: a.A")
}

func TestAnnotateVerboseLogsToStderr(t *testing.T) {
	dir := isolate(t)
	src := filepath.Join(dir, "app.jar")
	writeJar(t, src, map[string][]byte{
		"App.class": classtest.MainClass("App"),
		"Bad.class": []byte("not a class"),
	}, "App.class", "Bad.class")

	stdout, stderr, err := run(t, "annotate", "--verbose", src, filepath.Join(dir, "out.jar"))
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "selected main class")
	assert.Contains(t, stderr, "Bad.class")

	_, stderr, err = run(t, "annotate", "--force-overwrite", src, filepath.Join(dir, "quiet.jar"))
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestAnnotateNoEntryPoint(t *testing.T) {
	dir := isolate(t)
	src := filepath.Join(dir, "lib.jar")
	dst := filepath.Join(dir, "out.jar")
	writeJar(t, src, map[string][]byte{"Lib.class": classtest.PlainClass("Lib")}, "Lib.class")
	require.NoError(t, os.WriteFile(dst, []byte("keep"), 0o644))

	_, _, err := run(t, "annotate", src, dst)
	require.ErrorIs(t, err, jar.ErrNoEntryPoint)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}

func TestAnnotateArgumentCount(t *testing.T) {
	isolate(t)
	_, _, err := run(t, "annotate", "only-one.jar")
	assert.Error(t, err)
}

func TestMergeCommand(t *testing.T) {
	dir := isolate(t)
	x := filepath.Join(dir, "x.jar")
	y := filepath.Join(dir, "y.jar")
	dst := filepath.Join(dir, "merged.jar")
	writeJar(t, x, map[string][]byte{"a": []byte("A"), "b": []byte("B")}, "a", "b")
	writeJar(t, y, map[string][]byte{"c": []byte("C"), "d": []byte("D")}, "c", "d")

	_, _, err := run(t, "merge-jar-files", dst, x, y)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, entryNames(t, dst))
	assert.Equal(t, "C", readEntry(t, dst, "c"))
}

func TestMergeNeedsSource(t *testing.T) {
	dir := isolate(t)
	_, _, err := run(t, "merge-jar-files", filepath.Join(dir, "merged.jar"))
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "merged.jar"))
}

func TestInspectCommand(t *testing.T) {
	dir := isolate(t)
	src := filepath.Join(dir, "app.jar")
	writeJar(t, src, map[string][]byte{
		"com/example/App.class": classtest.MainClass("com/example/App"),
	}, "com/example/App.class")

	stdout, _, err := run(t, "inspect", src)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Entry point:")
	assert.Contains(t, stdout, "com.example.App")
}

func TestInspectRejectsUnknownOutput(t *testing.T) {
	dir := isolate(t)
	src := filepath.Join(dir, "app.jar")
	writeJar(t, src, map[string][]byte{"a.txt": []byte("x")}, "a.txt")

	_, _, err := run(t, "inspect", "-o", "html", src)
	assert.ErrorContains(t, err, "invalid output format")
}

func TestVersionCommand(t *testing.T) {
	isolate(t)
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "jvmch version dev\n", stdout)
}

func TestCompleteJarArgs(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.jar"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), nil, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "lib"), 0o755))

	complete := completeJarArgs(2)
	got, directive := complete(&cobra.Command{}, nil, "")
	assert.Equal(t, []string{"app.jar", "lib/"}, got)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	got, _ = complete(&cobra.Command{}, []string{"a.jar", "b.jar"}, "")
	assert.Empty(t, got)
}

func TestNoCompletionSetupWhenStderrIsNotATerminal(t *testing.T) {
	dir := isolate(t)
	t.Setenv("SHELL", "/bin/bash")

	src := filepath.Join(dir, "app.jar")
	writeJar(t, src, map[string][]byte{"App.class": classtest.MainClass("App")}, "App.class")

	stdout, stderr, err := run(t, "annotate", src, filepath.Join(dir, "out.jar"))
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
	assert.NoDirExists(t, filepath.Join(dir, ".local"))

	assert.False(t, isTerminal(&bytes.Buffer{}))
}
