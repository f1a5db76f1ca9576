package geocoding

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForward(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocoding/v5/mapbox.places/Boulder%2C%20CO.json", r.URL.EscapedPath())
		assert.Equal(t, "token", r.URL.Query().Get("access_token"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"features":[{"center":[-105.2705,40.0150]}]}`)
	}))
	defer srv.Close()

	c := &MapboxClient{Token: "token", BaseURL: srv.URL}
	pt, err := c.Forward(context.Background(), "Boulder, CO")
	require.NoError(t, err)
	require.NotNil(t, pt)
	assert.Equal(t, -105.2705, pt.Longitude)
	assert.Equal(t, 40.0150, pt.Latitude)
}

func TestForward_NoMatchReturnsNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"features":[]}`)
	}))
	defer srv.Close()

	c := &MapboxClient{Token: "token", BaseURL: srv.URL}
	pt, err := c.Forward(context.Background(), "Nowhere At All")
	require.NoError(t, err)
	assert.Nil(t, pt)
}

func TestForward_MissingToken(t *testing.T) {
	c := &MapboxClient{}
	_, err := c.Forward(context.Background(), "Boulder, CO")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TOKEN")
}
