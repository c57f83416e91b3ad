package pdfdoc

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPagesFromBytesRejectsGarbage(t *testing.T) {
	_, err := ExtractPagesFromBytes([]byte("not a pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open pdf")
}

func TestExtractPagesMissingFile(t *testing.T) {
	_, err := ExtractPages("testdata/does-not-exist.pdf")
	require.Error(t, err)
}

func TestReorderRejectsGarbage(t *testing.T) {
	var out bytes.Buffer
	err := Reorder(bytes.NewReader([]byte("not a pdf")), &out, []int{0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reorder pdf")
}

func TestReorderFileMissingInput(t *testing.T) {
	err := ReorderFile("testdata/does-not-exist.pdf", t.TempDir()+"/out.pdf", []int{0})
	require.Error(t, err)
}
