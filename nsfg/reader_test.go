// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nsfg

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDictionary(t *testing.T) *Dictionary {
	t.Helper()
	f, err := os.Open("testdata/preg.dct")
	require.NoError(t, err)
	defer f.Close()
	d, err := ReadDictionary(f, "preg.dct")
	require.NoError(t, err)
	return d
}

func TestReader(t *testing.T) {
	d := testDictionary(t)
	input := "   11 1 8133316\n\n   22      2100\n   3"
	r := NewReader(strings.NewReader(input), "test", d)

	_, err := r.Record()
	assert.Error(t, err, "Record before Scan")

	require.True(t, r.Scan())
	rec, err := r.Record()
	require.NoError(t, err)
	assert.Equal(t, 1, rec.Line)
	id, ok := rec.Text("caseid")
	assert.True(t, ok)
	assert.Equal(t, "1", id)
	for name, want := range map[string]float64{
		"outcome": 1, "birthord": 1, "birthwgt_lb": 8, "birthwgt_oz": 13, "agepreg": 3316,
	} {
		got, ok := rec.Value(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}
	_, ok = rec.Value("nope")
	assert.False(t, ok)
	_, ok = rec.Text("outcome")
	assert.False(t, ok, "Text of numeric field")

	// Blank line skipped; blank fields are missing.
	require.True(t, r.Scan())
	rec, err = r.Record()
	require.NoError(t, err)
	assert.Equal(t, 3, rec.Line)
	bo, _ := rec.Value("birthord")
	assert.True(t, math.IsNaN(bo))
	age, _ := rec.Value("agepreg")
	assert.Equal(t, 2100.0, age)

	// Short lines have blank trailing fields.
	require.True(t, r.Scan())
	rec, err = r.Record()
	require.NoError(t, err)
	id, _ = rec.Text("caseid")
	assert.Equal(t, "3", id)
	out, _ := rec.Value("outcome")
	assert.True(t, math.IsNaN(out))

	assert.False(t, r.Scan())
	assert.NoError(t, r.Err())
}

func TestReaderSyntaxError(t *testing.T) {
	d := testDictionary(t)
	r := NewReader(strings.NewReader("   1x 1 8133316\n   11 1 8133316\n"), "bad.dat", d)

	require.True(t, r.Scan())
	_, err := r.Record()
	se, ok := err.(*SyntaxError)
	require.True(t, ok, "want *SyntaxError, got %v", err)
	assert.Equal(t, `bad.dat:1: bad value "x" for outcome`, se.Error())

	// Parse errors are not fatal.
	require.True(t, r.Scan())
	_, err = r.Record()
	assert.NoError(t, err)
	assert.False(t, r.Scan())
	assert.NoError(t, r.Err())
}

func TestReadFrameSkipsBadRecords(t *testing.T) {
	d := testDictionary(t)
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	f, err := ReadFrame(strings.NewReader("   1x 1 8133316\n   11 1 8133316\n"), "bad.dat", d, log)
	require.NoError(t, err)
	assert.Equal(t, 1, f.Len())

	var warnings int
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel {
			warnings++
			assert.Contains(t, e.Data[logrus.ErrorKey].(error).Error(), "bad.dat:1")
		}
	}
	assert.Equal(t, 1, warnings)
}

func TestOpenGzip(t *testing.T) {
	plain, err := os.ReadFile("testdata/preg.dat")
	require.NoError(t, err)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err = zw.Write(plain)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := filepath.Join(t.TempDir(), "preg.dat.gz")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	r, err := Open(path)
	require.NoError(t, err)
	var got bytes.Buffer
	_, err = got.ReadFrom(r)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.Equal(t, plain, got.Bytes())

	// Not actually gzip.
	bad := filepath.Join(t.TempDir(), "bad.dat.gz")
	require.NoError(t, os.WriteFile(bad, plain, 0o644))
	_, err = Open(bad)
	assert.Error(t, err)

	_, err = Open(filepath.Join(t.TempDir(), "missing.dat"))
	assert.True(t, os.IsNotExist(err))
}
