package maincmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/mna/nenuphar/internal/maincmd"
	"github.com/mna/nenuphar/lang/compiler"
	"github.com/stretchr/testify/require"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return b
}

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, writeFile(path, src))
	return path
}

func TestTokenizeFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.nen", `fn main() -> int return 1 end`)

	var out, errb bytes.Buffer
	err := maincmd.TokenizeFiles(mainer.Stdio{Stdout: &out, Stderr: &errb}, path)
	require.NoError(t, err)
	require.Empty(t, errb.String())
	require.Contains(t, out.String(), "fn")
	require.Contains(t, out.String(), "end of file")
}

func TestParseFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.nen", `fn main() -> int return 1 end`)

	var out, errb bytes.Buffer
	err := maincmd.ParseFiles(mainer.Stdio{Stdout: &out, Stderr: &errb}, false, path)
	require.NoError(t, err)
	require.Empty(t, errb.String())
	require.Contains(t, out.String(), "Program{")
	require.Contains(t, out.String(), "FunctionDecl{name=main")
}

func TestParseFilesReportsSyntaxError(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.nen", `fn main() -> int return`)

	var out, errb bytes.Buffer
	err := maincmd.ParseFiles(mainer.Stdio{Stdout: &out, Stderr: &errb}, false, path)
	require.Error(t, err)
	require.NotEmpty(t, errb.String())
}

func TestCompileFilesWritesBytecode(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "a.nen", `fn main() -> int return 2 + 3 * 4 end`)
	outPath := filepath.Join(dir, "a.nbc")

	var out, errb bytes.Buffer
	err := maincmd.CompileFiles(mainer.Stdio{Stdout: &out, Stderr: &errb}, outPath, path)
	require.NoError(t, err)
	require.Empty(t, errb.String())
	require.Contains(t, out.String(), "1 constant(s), 1 function(s), 0 extern(s)")

	bin := readFile(t, outPath)
	decoded, err := compiler.Decode(bin)
	require.NoError(t, err)
	require.Len(t, decoded.Constants, 1)
	require.Len(t, decoded.Functions, 1)
}

func TestCompileFilesSkipsOutputOnError(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.nen", `fn f() -> none var a: int = 1 var a: int = 2 return end`)
	outPath := filepath.Join(dir, "bad.nbc")

	var out, errb bytes.Buffer
	err := maincmd.CompileFiles(mainer.Stdio{Stdout: &out, Stderr: &errb}, outPath, path)
	require.Error(t, err)
	require.NotEmpty(t, errb.String())
	require.NoFileExists(t, outPath)
}
