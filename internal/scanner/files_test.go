package scanner

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newSelector() *Selector {
	return New(log.New(io.Discard, "", 0))
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestSelect_DefaultPatternsRecursive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Vault.sol", "contract Vault {}")
	writeFile(t, root, "src/deep/Pool.vy", "# vyper")
	writeFile(t, root, "src/lib.rs", "fn main() {}")
	writeFile(t, root, "src/account.cairo", "func main() {}")
	writeFile(t, root, "sources/coin.move", "module coin {}")
	writeFile(t, root, "README.md", "docs")

	files, err := newSelector().Select(root, nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"Vault.sol",
		"src/deep/Pool.vy",
		"src/lib.rs",
		"src/account.cairo",
		"sources/coin.move",
	}, relPaths(t, root, files))
}

func TestSelect_ExcludesTestFilesCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Token.sol", "contract Token {}")
	writeFile(t, root, "TokenTest.sol", "contract TokenTest {}")
	writeFile(t, root, "test_helpers.sol", "contract H {}")
	writeFile(t, root, "TESTING.vy", "# x")

	files, err := newSelector().Select(root, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Token.sol"}, relPaths(t, root, files))
}

func TestSelect_PatternsStripDotSlash(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "contracts/A.sol", "a")
	writeFile(t, root, "contracts/B.sol", "b")
	writeFile(t, root, "other/C.sol", "c")

	files, err := newSelector().Select(root, []string{"./contracts/*.sol"})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"contracts/A.sol", "contracts/B.sol"}, relPaths(t, root, files))
}

func TestSelect_LiteralPathWithGlobCharacters(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/Pool[v2].sol", "contract Pool {}")

	files, err := newSelector().Select(root, []string{"src/Pool[v2].sol"})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/Pool[v2].sol"}, relPaths(t, root, files))
}

func TestSelect_DeduplicatesOverlappingPatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/Vault.sol", "contract Vault {}")

	files, err := newSelector().Select(root, []string{"src/*.sol", "**/*.sol", "src/Vault.sol"})
	require.NoError(t, err)

	assert.Equal(t, []string{"src/Vault.sol"}, relPaths(t, root, files))
}

func TestSelect_DropsDirectories(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "weird.sol"), 0755))
	writeFile(t, root, "Real.sol", "contract Real {}")

	files, err := newSelector().Select(root, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Real.sol"}, relPaths(t, root, files))
}

func TestSelect_NoMatchesIsEmptyNotError(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes.txt", "nothing here")

	files, err := newSelector().Select(root, []string{"*.sol", "missing.vy"})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestSelect_MissingSourceDir(t *testing.T) {
	_, err := newSelector().Select(filepath.Join(t.TempDir(), "nope"), nil)
	assert.Error(t, err)
}

func TestIsTestFile(t *testing.T) {
	assert.True(t, IsTestFile("/a/b/MyTest.sol"))
	assert.True(t, IsTestFile("attestation.sol"))
	assert.False(t, IsTestFile("/tests/Vault.sol"))
}
