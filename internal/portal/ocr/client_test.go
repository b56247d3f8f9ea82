package ocr

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/veridoc/portal/internal/common"
)

func TestNew_EmptyBaseURLDisablesPreview(t *testing.T) {
	c := New("", time.Second)
	require.Nil(t, c)
	require.False(t, c.Enabled())
}

func TestExtract_Fields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/extract/", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		require.Equal(t, "id.png", hdr.Filename)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"name":"Jane Roe","id_number":"STU-001"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	fields, err := c.Extract(context.Background(), "id.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	require.Equal(t, "Jane Roe", fields["name"])
	require.Equal(t, "STU-001", fields["id_number"])
}

func TestExtract_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"error":"unreadable image"}`)
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Extract(context.Background(), "id.png", strings.NewReader("x"))
	require.ErrorContains(t, err, "unreadable image")
}

func TestExtract_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.Extract(context.Background(), "id.png", strings.NewReader("x"))
	require.ErrorIs(t, err, common.ErrUnavailable)
}
