package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}

func TestResolveJavaDefaultsToMain(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Main.java", "class Main {}")
	writeFile(t, dir, "Helper.java", "class Helper {}")

	paths, err := ResolveJava(dir, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Main.java"}, baseNames(paths),
		"Main.java alone when it exists")
}

func TestResolveJavaDefaultsToAllWithoutMain(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Solution.java", "class Solution {}")
	writeFile(t, dir, "Helper.java", "class Helper {}")
	writeFile(t, dir, "notes.txt", "not a source file")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.java"), 0o755))

	paths, err := ResolveJava(dir, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Solution.java", "Helper.java"}, baseNames(paths))
}

func TestResolveJavaEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "no sources here")

	_, err := ResolveJava(dir, "")
	assert.Error(t, err)
}

func TestResolveJavaDirectoryInput(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "src")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, sub, "A.java", "class A {}")
	writeFile(t, sub, "B.java", "class B {}")

	paths, err := ResolveJava(dir, sub)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A.java", "B.java"}, baseNames(paths))
}

func TestResolveJavaCommaList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Main.java", "class Main {}")
	writeFile(t, dir, "Util.java", "class Util {}")

	paths, err := ResolveJava(dir, "Main, Util.java")
	require.NoError(t, err)
	assert.Equal(t, []string{"Main.java", "Util.java"}, baseNames(paths),
		"the .java suffix is optional and order is preserved")
}

func TestResolveJavaAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	abs := writeFile(t, dir, "Main.java", "class Main {}")

	paths, err := ResolveJava(t.TempDir(), abs)
	require.NoError(t, err)
	assert.Equal(t, []string{abs}, paths)
}

func TestResolveJavaUnresolvableItemFailsAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Main.java", "class Main {}")

	_, err := ResolveJava(dir, "Main, Missing")
	assert.ErrorContains(t, err, "Missing")
}

func TestResolveJavaRejectsNonJava(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "plain text")

	_, err := ResolveJava(dir, "notes.txt")
	assert.Error(t, err)
}

func TestResolveJavaDedupes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Main.java", "class Main {}")

	paths, err := ResolveJava(dir, "Main, Main.java, Main")
	require.NoError(t, err)
	assert.Equal(t, []string{"Main.java"}, baseNames(paths))
}

func TestReadSources(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "Main.java", "class Main {}")
	b := writeFile(t, dir, "Util.java", "class Util {}")

	sources, err := ReadSources([]string{a, b})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"Main.java": "class Main {}",
		"Util.java": "class Util {}",
	}, sources)
}

func TestReadSourcesMissingFile(t *testing.T) {
	_, err := ReadSources([]string{filepath.Join(t.TempDir(), "Gone.java")})
	assert.Error(t, err)
}
