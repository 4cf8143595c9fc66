package supabase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(Config{URL: srv.URL + "/", APIKey: "anon-key"})
	require.NoError(t, err)
	return c
}

func TestNew_RequiresURLAndKey(t *testing.T) {
	_, err := New(Config{APIKey: "k"})
	require.Error(t, err)

	_, err = New(Config{URL: "http://localhost"})
	require.Error(t, err)
}

func TestQueryBuilder_URL(t *testing.T) {
	c, err := New(Config{URL: "https://abc.supabase.co/", APIKey: "k"})
	require.NoError(t, err)

	got := c.From("cards").Select("name,title").Eq("handle", "ann").Limit(2).URL()

	require.Equal(t, "https://abc.supabase.co/rest/v1/cards?handle=eq.ann&limit=2&select=name%2Ctitle", got)
}

func TestExecute_SendsKeyHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/cards", r.URL.Path)
		assert.Equal(t, "eq.ann", r.URL.Query().Get("handle"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer anon-key", r.Header.Get("Authorization"))
		w.Write([]byte(`[]`))
	})

	resp, err := c.From("cards").Eq("handle", "ann").Execute(context.Background())
	require.NoError(t, err)
	require.NoError(t, resp.Error())
}

func TestExecute_MaybeSingle(t *testing.T) {
	t.Run("no rows", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		})

		resp, err := c.From("cards").MaybeSingle().Execute(context.Background())
		require.NoError(t, err)
		require.True(t, resp.IsNull())
	})

	t.Run("one row", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"name":"Ann"}]`))
		})

		resp, err := c.From("cards").MaybeSingle().Execute(context.Background())
		require.NoError(t, err)
		require.False(t, resp.IsNull())

		var row struct{ Name string }
		require.NoError(t, resp.JSON(&row))
		require.Equal(t, "Ann", row.Name)
	})

	t.Run("many rows", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"name":"Ann"},{"name":"Bob"}]`))
		})

		_, err := c.From("cards").MaybeSingle().Execute(context.Background())
		require.True(t, errors.Is(err, ErrMultipleRows))
	})
}

func TestResponse_Error(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"42P01","message":"relation \"public.cards\" does not exist"}`))
	})

	resp, err := c.From("cards").MaybeSingle().Execute(context.Background())
	require.NoError(t, err)

	err = resp.Error()
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.Equal(t, "42P01", apiErr.Code)
	require.Contains(t, err.Error(), `relation "public.cards" does not exist`)
}

func TestResponse_ErrorWithoutJSONBody(t *testing.T) {
	resp := &Response{StatusCode: http.StatusBadGateway, Body: []byte("upstream down")}

	require.EqualError(t, resp.Error(), "supabase error: status 502: Bad Gateway")
}
