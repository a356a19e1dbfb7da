package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/cssdocs"
	main "github.com/fwojciec/cssdocs/cmd/cssdocs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// askServer serves canned ask API responses keyed by query kind and scope.
type askServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string
}

func newAskServer(t *testing.T, bodies map[string]string) *askServer {
	t.Helper()
	s := &askServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := strings.TrimPrefix(r.URL.Path, "/") + ":" + r.URL.Query().Get("path")
		s.mu.Lock()
		s.requests = append(s.requests, key)
		s.mu.Unlock()
		body, ok := bodies[key]
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *askServer) seen() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *askServer) queryFlags() []string {
	return []string{
		"--properties-query", s.URL + "/props?path={path}",
		"--values-query", s.URL + "/values?path={path}",
	}
}

const propertiesBody = `{"query":{"results":{
	"css/properties/display":{"printouts":{"Summary":["Sets the '''display''' type."]},"fullurl":"//docs.example/wiki/css/properties/display"},
	"css/properties/-webkit-box":{"printouts":{"Summary":["Vendor."]},"fullurl":"//docs.example/wiki/css/properties/-webkit-box"}
}}}`

const valuesBody = `{"query":{"results":{
	"css/properties/display#none":{"printouts":{"Property value":["none"],"Property value description":["No box."],"Value for property":[{"fulltext":"css/properties/display"}]},"fullurl":"//docs.example/wiki/css/properties/display#none"},
	"css/properties/display#block":{"printouts":{"Property value":["block"],"Property value description":["Block box."],"Value for property":[]},"fullurl":"//docs.example/wiki/css/properties/display#block"}
}}}`

func newMain(t *testing.T) *main.Main {
	t.Helper()
	return &main.Main{
		WorkDir: t.TempDir(),
		Now: func() time.Time {
			return time.Date(2014, 3, 9, 12, 5, 7, 0, time.UTC)
		},
	}
}

func TestMain_Run_Help(t *testing.T) {
	t.Parallel()

	m := newMain(t)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--help"}, &stdout, &stderr)

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "cssdocs")
	assert.Contains(t, stdout.String(), "--output")
}

func TestMain_Run_RequiresOutput(t *testing.T) {
	t.Parallel()

	m := newMain(t)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"css/properties"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Equal(t, cssdocs.ECONFIG, cssdocs.ErrorCode(err))
}

func TestMain_Run_AliasRequiresConfig(t *testing.T) {
	t.Parallel()

	m := newMain(t)
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--config", "", "--alias", "full", "-o", "css.json", "css/properties"}, &stdout, &stderr)

	require.Error(t, err)
	assert.Equal(t, cssdocs.ECONFIG, cssdocs.ErrorCode(err))
}

func TestMain_Run_Harvest(t *testing.T) {
	t.Parallel()

	server := newAskServer(t, map[string]string{
		"props:css/properties":  propertiesBody,
		"values:css/properties": valuesBody,
	})
	m := newMain(t)
	var stdout, stderr bytes.Buffer

	args := append(server.queryFlags(),
		"--output", "out/css.json",
		"--exclude-vendor-prefixed",
		"--add-protocol",
		"--sort",
		"css/properties",
	)
	err := m.Run(context.Background(), args, &stdout, &stderr)

	require.NoError(t, err, stderr.String())
	assert.Equal(t, "Done writing 1 properties.\n", stdout.String())
	assert.Contains(t, stderr.String(), "run=")
	assert.Contains(t, stderr.String(), "digest=")

	data, err := os.ReadFile(filepath.Join(m.WorkDir, "out", "css.json"))
	require.NoError(t, err)
	var got struct {
		DateTime   string `json:"DATETIME"`
		Properties map[string]struct {
			Summary string `json:"SUMMARY"`
			URL     string `json:"URL"`
			Values  []struct {
				Value       string `json:"value"`
				Description string `json:"description"`
			} `json:"VALUES"`
		} `json:"PROPERTIES"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "Sun, 09 Mar 2014 12:05:07 GMT", got.DateTime)
	require.Len(t, got.Properties, 1)
	display := got.Properties["css/properties/display"]
	assert.Equal(t, "<p>Sets the <b>display</b> type.</p>", display.Summary)
	assert.Equal(t, "https://docs.example/wiki/css/properties/display", display.URL)
	require.Len(t, display.Values, 2)
	assert.Equal(t, "block", display.Values[0].Value)
	assert.Equal(t, "<p>Block box.</p>", display.Values[0].Description)
	assert.Equal(t, "none", display.Values[1].Value)
}

func TestMain_Run_ReportsFailingScope(t *testing.T) {
	t.Parallel()

	server := newAskServer(t, map[string]string{
		"props:css/properties":  propertiesBody,
		"values:css/properties": valuesBody,
		"props:css/selectors":   `{"query":{"results":[]}}`,
	})
	m := newMain(t)
	var stdout, stderr bytes.Buffer

	args := append(server.queryFlags(), "-o", "css.json", "css/properties", "css/selectors", "css/functions")
	err := m.Run(context.Background(), args, &stdout, &stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), `values query for scope "css/selectors"`)
	assert.Equal(t, cssdocs.ETRANSPORT, cssdocs.ErrorCode(err))
	assert.NoFileExists(t, filepath.Join(m.WorkDir, "css.json"))
	assert.NotContains(t, server.seen(), "props:css/functions")
}

func TestMain_Run_ConfigAndAlias(t *testing.T) {
	t.Parallel()

	server := newAskServer(t, map[string]string{
		"props:css/properties":  propertiesBody,
		"values:css/properties": valuesBody,
	})
	m := newMain(t)
	config := fmt.Sprintf(`
output: default.json
properties_query: %[1]s/props?path={path}
values_query: %[1]s/values?path={path}
aliases:
  props:
    paths: [css/properties]
    output: props.json
`, server.URL)
	configPath := filepath.Join(m.WorkDir, "cssdocs.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(config), 0644))
	var stdout, stderr bytes.Buffer

	err := m.Run(context.Background(), []string{"--config", configPath, "--alias", "props"}, &stdout, &stderr)

	require.NoError(t, err, stderr.String())
	assert.FileExists(t, filepath.Join(m.WorkDir, "props.json"))
	assert.Equal(t, "Done writing 2 properties.\n", stdout.String())
}

func TestMain_Run_FlagsOverrideConfig(t *testing.T) {
	t.Parallel()

	server := newAskServer(t, map[string]string{
		"props:css/properties":  propertiesBody,
		"values:css/properties": valuesBody,
	})
	m := newMain(t)
	configPath := filepath.Join(m.WorkDir, "cssdocs.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("output: from-config.json\nexclude_vendor_prefixed: true\npaths: [css/properties]\n"), 0644))
	var stdout, stderr bytes.Buffer

	args := append(server.queryFlags(), "--config", configPath, "--no-exclude-vendor-prefixed", "-o", "from-flag.txt")
	err := m.Run(context.Background(), args, &stdout, &stderr)

	require.NoError(t, err, stderr.String())
	assert.FileExists(t, filepath.Join(m.WorkDir, "from-flag.txt"))
	assert.NoFileExists(t, filepath.Join(m.WorkDir, "from-config.json"))
	assert.Equal(t, "Done writing 2 properties.\n", stdout.String())
	assert.Contains(t, stderr.String(), "does not have a .json extension")
}

func TestMain_Run_IdenticalRunsProduceIdenticalDigests(t *testing.T) {
	t.Parallel()

	server := newAskServer(t, map[string]string{
		"props:css/properties":  propertiesBody,
		"values:css/properties": valuesBody,
	})

	digest := func() string {
		m := newMain(t)
		var stdout, stderr bytes.Buffer
		args := append(server.queryFlags(), "-o", "css.json", "css/properties")
		require.NoError(t, m.Run(context.Background(), args, &stdout, &stderr))
		for _, field := range strings.Fields(stderr.String()) {
			if strings.HasPrefix(field, "digest=") {
				return field
			}
		}
		t.Fatal("no digest logged")
		return ""
	}

	assert.Equal(t, digest(), digest())
}
