package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUploadBase64SignsAndParsesResponse(t *testing.T) {
	var gotForm map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}
		fmt.Fprint(w, `{"public_id":"avatars/abc","secure_url":"https://res.example/avatars/abc.png"}`)
	}))
	defer srv.Close()

	c := NewClient(Config{CloudName: "demo", APIKey: "key123", APISecret: "sekret"})
	c.uploadURL = srv.URL
	c.now = func() time.Time { return time.Unix(1700000000, 0) }

	img, err := c.UploadBase64(context.Background(), "aGVsbG8=", "avatars")
	require.NoError(t, err)
	require.Equal(t, "avatars/abc", img.PublicID)
	require.Equal(t, "https://res.example/avatars/abc.png", img.URL)

	require.Equal(t, "data:image/png;base64,aGVsbG8=", gotForm["file"])
	require.Equal(t, "avatars", gotForm["folder"])
	require.Equal(t, "1700000000", gotForm["timestamp"])
	require.Equal(t, "key123", gotForm["api_key"])

	payload := fmt.Sprintf("folder=avatars&public_id=%s&timestamp=1700000000sekret", gotForm["public_id"])
	sum := sha1.Sum([]byte(payload))
	require.Equal(t, hex.EncodeToString(sum[:]), gotForm["signature"])
}

func TestUploadBase64SurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"Invalid image file"}}`)
	}))
	defer srv.Close()

	c := NewClient(Config{CloudName: "demo"})
	c.uploadURL = srv.URL

	_, err := c.UploadBase64(context.Background(), "zzz", "avatars")
	require.ErrorContains(t, err, "Invalid image file")
}
