package card_test

import (
	"bytes"
	"io"
	"net/http"
	"testing"

	"github.com/alovak/namecard/card"
	"github.com/alovak/namecard/card/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func startApp(t *testing.T, cfg *card.Config) *card.App {
	t.Helper()

	cfg.HTTPAddr = "127.0.0.1:0"
	app := card.NewApp(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)), cfg)
	require.NoError(t, app.Start())
	t.Cleanup(app.Shutdown)
	return app
}

func fetch(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestApp_MemoryBackend(t *testing.T) {
	cfg := card.DefaultConfig()
	cfg.Backend = card.BackendMemory
	cfg.DefaultHandle = "ann"
	cfg.RateLimit = 100
	cfg.Cards = []models.SeedCard{{Handle: "ann", Name: "Ann Lee", Email: "a@x.com"}}
	app := startApp(t, cfg)
	base := "http://" + app.Addr

	code, _ := fetch(t, base+"/-/live")
	require.Equal(t, http.StatusOK, code)

	code, _ = fetch(t, base+"/-/ready")
	require.Equal(t, http.StatusOK, code)

	code, body := fetch(t, base+"/")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "Ann Lee")

	code, body = fetch(t, base+"/ann/contact.vcf")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, "EMAIL;TYPE=INTERNET,WORK:a@x.com")

	code, body = fetch(t, base+"/-/metrics")
	require.Equal(t, http.StatusOK, code)
	require.Contains(t, body, `namecard_cards_lookups_total{outcome="found"} 2`)
}

func TestApp_Unconfigured(t *testing.T) {
	app := startApp(t, card.DefaultConfig())
	base := "http://" + app.Addr

	code, _ := fetch(t, base+"/-/ready")
	require.Equal(t, http.StatusServiceUnavailable, code)

	code, body := fetch(t, base+"/ann")
	require.Equal(t, http.StatusServiceUnavailable, code)
	require.Contains(t, body, "Card store is not configured.")
}
