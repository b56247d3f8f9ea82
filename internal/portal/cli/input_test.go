package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  hello world  \n"))

	got, err := getSimpleText(r, "Say something", &out)
	require.NoError(t, err)
	require.Equal(t, "hello world", got)
	require.Contains(t, out.String(), "Say something")
}

func TestGetSimpleText_EOFWithPartialLine(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("no newline"))

	got, err := getSimpleText(r, "p", &out)
	require.NoError(t, err)
	require.Equal(t, "no newline", got)
}

func TestGetSimpleText_EOFEmpty(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader(""))

	_, err := getSimpleText(r, "p", &out)
	require.Error(t, err)
}

func TestGetMetadata(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("degree = BSc\nyear=2023\nnot a pair\n\n"))

	fields, err := getMetadata(r, &out)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"degree": "BSc", "year": "2023"}, fields)
	require.Contains(t, out.String(), "Skipping")
}

func TestGetMetadata_Empty(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("\n"))

	fields, err := getMetadata(r, &out)
	require.NoError(t, err)
	require.Nil(t, fields)
}
