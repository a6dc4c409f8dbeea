package jar

import (
	"archive/zip"
	"io"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type testEntry struct {
	Name   string
	Data   []byte
	Method uint16
}

var entryTime = time.Date(2020, 5, 17, 10, 30, 0, 0, time.UTC)

func file(name string, data []byte) testEntry {
	return testEntry{Name: name, Data: data, Method: zip.Deflate}
}

func stored(name string, data []byte) testEntry {
	return testEntry{Name: name, Data: data, Method: zip.Store}
}

func dirEntry(name string) testEntry {
	return testEntry{Name: name, Method: zip.Store}
}

func manifestEntry(text string) testEntry {
	return file(ManifestPath, []byte(text))
}

func writeJar(t *testing.T, path string, entries ...testEntry) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		h := &zip.FileHeader{Name: e.Name, Method: e.Method, Modified: entryTime}
		w, err := zw.CreateHeader(h)
		require.NoError(t, err)
		_, err = w.Write(e.Data)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

type readEntry struct {
	Header zip.FileHeader
	Data   []byte
}

func readJar(t *testing.T, path string) []readEntry {
	t.Helper()

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	var out []readEntry
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out = append(out, readEntry{Header: f.FileHeader, Data: data})
	}
	return out
}

func names(entries []readEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Header.Name)
	}
	return out
}

func withoutManifest(entries []readEntry) []readEntry {
	var out []readEntry
	for _, e := range entries {
		if !IsManifestName(e.Header.Name) {
			out = append(out, e)
		}
	}
	return out
}

func findEntry(t *testing.T, entries []readEntry, name string) readEntry {
	t.Helper()
	for _, e := range entries {
		if e.Header.Name == name {
			return e
		}
	}
	t.Fatalf("entry %s not found in %v", name, names(entries))
	return readEntry{}
}
