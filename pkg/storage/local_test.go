package storage

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDisk(t *testing.T) *localDisk {
	t.Helper()
	return &localDisk{root: t.TempDir(), baseURL: "http://localhost:8080/storage"}
}

func TestLocalPutGetRoundTrip(t *testing.T) {
	d := testDisk(t)

	require.NoError(t, d.Put("products/ring.jpg", []byte("jpeg-bytes")))
	assert.True(t, d.Exists("products/ring.jpg"))

	got, err := d.Get("products/ring.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), got)

	size, err := d.Size("products/ring.jpg")
	require.NoError(t, err)
	assert.EqualValues(t, len("jpeg-bytes"), size)
}

func TestLocalPutStream(t *testing.T) {
	d := testDisk(t)

	require.NoError(t, d.PutStream("products/a.png", bytes.NewBufferString("png-bytes")))

	rc, err := d.GetStream("products/a.png")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), got)
}

func TestLocalDelete(t *testing.T) {
	d := testDisk(t)

	require.NoError(t, d.Put("products/x.jpg", []byte("x")))
	require.NoError(t, d.Delete("products/x.jpg"))
	assert.False(t, d.Exists("products/x.jpg"))

	// deleting a missing file is not an error
	assert.NoError(t, d.Delete("products/x.jpg"))
}

func TestLocalRejectsTraversal(t *testing.T) {
	d := testDisk(t)

	// Clean("/" + path) strips the traversal, so the write stays jailed
	// under the root instead of landing in /etc.
	require.NoError(t, d.Put("../../etc/escape.txt", []byte("nope")))
	assert.True(t, d.Exists("etc/escape.txt"))
}

func TestLocalURL(t *testing.T) {
	d := testDisk(t)
	assert.Equal(t, "http://localhost:8080/storage/products/ring.jpg", d.URL("products/ring.jpg"))
	assert.Equal(t, "http://localhost:8080/storage/products/ring.jpg", d.URL("/products/ring.jpg"))
}
