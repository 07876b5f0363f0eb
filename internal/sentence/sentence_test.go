// File: internal/sentence/sentence_test.go
package sentence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const treeJSON = `{
  "word": "is", "coarse": "VERB", "fine": "ROOT",
  "children": [
    {"word": "What", "coarse": "PRON", "fine": "attr"},
    {"word": "angle", "coarse": "NOUN", "fine": "nsubj", "children": [
      {"word": "the", "coarse": "DET", "fine": "det"},
      {"word": "of", "coarse": "ADP", "fine": "prep", "children": [
        {"word": "vector", "coarse": "NOUN", "fine": "pobj", "children": [
          {"word": "the", "coarse": "DET", "fine": "det"}
        ]}
      ]}
    ]}
  ]
}`

func TestParse(t *testing.T) {
	root, err := Parse([]byte(treeJSON))
	require.NoError(t, err)
	assert.Equal(t, "is", root.Word())
	require.Len(t, root.Children(), 2)
	assert.Equal(t, "What", root.Children()[0].Word())

	_, err = Parse([]byte(`{}`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"word": `))
	assert.Error(t, err)
}

func TestFindElements(t *testing.T) {
	root, err := Parse([]byte(treeJSON))
	require.NoError(t, err)

	t.Run("should match coarse and fine together", func(t *testing.T) {
		found := root.FindElements(Query{Coarse: "NOUN", Fine: "pobj"})
		require.Len(t, found, 1)
		assert.Equal(t, "vector", found[0].Word())
	})

	t.Run("should return matches in pre-order", func(t *testing.T) {
		found := root.FindElements(Query{Coarse: "NOUN"})
		require.Len(t, found, 2)
		assert.Equal(t, "angle", found[0].Word())
		assert.Equal(t, "vector", found[1].Word())
	})

	t.Run("should require a child with the ccoarse tag", func(t *testing.T) {
		found := root.FindElements(Query{Coarse: "NOUN", CCoarse: "ADP"})
		require.Len(t, found, 1)
		assert.Equal(t, "angle", found[0].Word())

		assert.Empty(t, root.FindElements(Query{Coarse: "NOUN", CCoarse: "VERB"}))
	})

	t.Run("should include the root itself", func(t *testing.T) {
		found := root.FindElements(Query{Fine: "ROOT"})
		require.Len(t, found, 1)
		assert.Same(t, root, found[0])
	})
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	require.NoError(t, os.WriteFile(path, []byte(treeJSON), 0o600))

	root, err := ParseFile(path)
	require.NoError(t, err)
	assert.Equal(t, "is", root.Word())

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
