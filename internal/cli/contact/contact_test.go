package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"portfolio-contact-backend/pkg/contactclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("contact", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.APIURL)
	assert.Equal(t, 10, cfg.TimeoutSeconds)
	assert.False(t, cfg.ListServices)
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("CONTACT_API_URL", "https://api.gm.dev")
	t.Setenv("CONTACT_TIMEOUT_SECONDS", "4")

	fs := flag.NewFlagSet("contact", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-timeout", "2", "-name", "Ana", "-service", "talk"})
	require.NoError(t, err)
	assert.Equal(t, "https://api.gm.dev", cfg.APIURL)
	assert.Equal(t, 2, cfg.TimeoutSeconds)
	assert.Equal(t, "Ana", cfg.Name)
	assert.Equal(t, "talk", cfg.Service)
}

func TestParseConfigRejectsBadTimeout(t *testing.T) {
	fs := flag.NewFlagSet("contact", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	_, err := ParseConfig(fs, []string{"-timeout", "0"})
	assert.Error(t, err)

	t.Setenv("CONTACT_TIMEOUT_SECONDS", "soon")
	_, err = ParseConfig(flag.NewFlagSet("contact", flag.ContinueOnError), nil)
	assert.Error(t, err)
}

func TestRunSubmitsFromStdin(t *testing.T) {
	var got contactclient.Submission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	cfg := Config{
		APIURL: srv.URL, TimeoutSeconds: 1,
		Name: "Ana", Email: "ana@x.com", Service: "factory", Message: "-",
	}
	out := &bytes.Buffer{}
	err := Run(context.Background(), cfg, strings.NewReader("Oi\nTudo bem?\n"), out)

	require.NoError(t, err)
	assert.Equal(t, contactclient.Submission{
		Name: "Ana", Email: "ana@x.com", Service: "factory", Message: "Oi\nTudo bem?",
	}, got)
	assert.Equal(t, contactclient.SuccessText+"\n", out.String())
}

func TestRunReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Missing required fields"}`))
	}))
	defer srv.Close()

	out := &bytes.Buffer{}
	err := Run(context.Background(), Config{APIURL: srv.URL, TimeoutSeconds: 1}, nil, out)

	var statusErr *contactclient.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, "Missing required fields", statusErr.Message)
	assert.Equal(t, contactclient.AlertText+"\n", out.String())
}

func TestRunListServices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/services", r.URL.Path)
		_, _ = w.Write([]byte(`{"ok":true,"services":[{"id":"factory","label":"GM Factory - Desenvolvimento Sob Medida"}]}`))
	}))
	defer srv.Close()

	out := &bytes.Buffer{}
	err := Run(context.Background(), Config{APIURL: srv.URL, TimeoutSeconds: 1, ListServices: true}, nil, out)

	require.NoError(t, err)
	assert.Equal(t, "factory\tGM Factory - Desenvolvimento Sob Medida\n", out.String())
}
