//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"pap/internal/app"
	"pap/internal/types"
	"pap/tests/testutil"
)

const integrationUserAgent = "pap-integration/1.0"

type registryRequest struct {
	Path      string `json:"path"`
	UserAgent string `json:"user_agent"`
}

// registryJar must match JAR in registryMockScript.
var registryJar = bytes.Repeat([]byte("pap integration jar\n"), 2048)

func TestAddAgainstRegistryContainer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers e2e in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startRegistryMock(ctx, t)
	t.Cleanup(cleanup)

	outputDir := t.TempDir()
	service, err := app.NewService(app.Config{
		Registry: app.RegistryConfig{
			BaseURL:    endpoint + "/v2",
			UserAgent:  integrationUserAgent,
			TimeoutSec: 10,
		},
		OutputDir: outputDir,
	})
	require.NoError(t, err)

	result, err := service.Add(ctx, app.AddRequest{ResolveRequest: app.ResolveRequest{
		ProjectID:   "sodium",
		GameVersion: "1.20.1",
		Version:     types.Latest,
	}})
	require.NoError(t, err)
	require.Equal(t, "s1", result.Version.ID)
	require.Equal(t, "fabric", result.Loader)
	require.Equal(t, "s1-1.0.0.jar", result.Artifact.Filename)
	require.Equal(t, int64(len(registryJar)), result.Bytes)
	testutil.RequireFileDigest(t, filepath.Join(outputDir, "s1-1.0.0.jar"), testutil.SHA512Hex(registryJar))

	requests, err := fetchRegistryRequests(endpoint)
	require.NoError(t, err)
	paths := make([]string, 0, len(requests))
	for _, req := range requests {
		require.Equal(t, integrationUserAgent, req.UserAgent, "request %s", req.Path)
		paths = append(paths, req.Path)
	}
	require.Equal(t, []string{
		"/v2/project/sodium",
		"/v2/version/s3",
		"/v2/version/s2",
		"/v2/version/s1",
		"/cdn/s1-1.0.0.jar",
	}, paths)
}

func TestAddHashMismatchAgainstRegistryContainer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping testcontainers e2e in short mode")
	}

	ctx := t.Context()
	endpoint, cleanup := startRegistryMock(ctx, t)
	t.Cleanup(cleanup)

	outputDir := t.TempDir()
	service, err := app.NewService(app.Config{
		Registry:  app.RegistryConfig{BaseURL: endpoint + "/v2", UserAgent: integrationUserAgent},
		OutputDir: outputDir,
	})
	require.NoError(t, err)

	_, err = service.Add(ctx, app.AddRequest{ResolveRequest: app.ResolveRequest{ProjectID: "tampered"}})
	require.Error(t, err)
	require.Equal(t, types.ErrKindHashMismatch, types.KindOf(err))
	require.FileExists(t, filepath.Join(outputDir, "t1-0.1.0.jar"))

	_, err = service.Add(ctx, app.AddRequest{ResolveRequest: app.ResolveRequest{ProjectID: "missing"}})
	require.Error(t, err)
	require.Equal(t, types.ErrKindNone, types.KindOf(err))
}

func startRegistryMock(ctx context.Context, t *testing.T) (string, func()) {
	t.Helper()
	req := testcontainers.ContainerRequest{
		Image:        "python:3.12-alpine",
		ExposedPorts: []string{"8080/tcp"},
		Cmd:          []string{"python", "-c", registryMockScript},
		WaitingFor:   wait.ForListeningPort("8080/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "8080/tcp")
	require.NoError(t, err)

	endpoint := fmt.Sprintf("http://%s:%s", host, port.Port())
	cleanup := func() {
		_ = container.Terminate(ctx)
	}
	return endpoint, cleanup
}

func fetchRegistryRequests(endpoint string) ([]registryRequest, error) {
	resp, err := http.Get(endpoint + "/_requests")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var requests []registryRequest
	if err := json.NewDecoder(resp.Body).Decode(&requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// Artifact URLs are built from the Host header so they resolve through the
// mapped port.
const registryMockScript = `
import hashlib
import json
from http.server import BaseHTTPRequestHandler, ThreadingHTTPServer

JAR = b"pap integration jar\n" * 2048
DIGEST = hashlib.sha512(JAR).hexdigest()
REQUESTS = []

PROJECTS = {
    "sodium": {
        "id": "AANobbMI", "slug": "sodium", "title": "Sodium", "server_side": "optional",
        "loaders": ["fabric"], "game_versions": ["1.20.1", "1.20.4"], "versions": ["s1", "s2", "s3"],
    },
    "tampered": {
        "id": "tampered", "slug": "tampered", "server_side": "required",
        "loaders": ["fabric"], "game_versions": ["1.20.4"], "versions": ["t1"],
    },
}
VERSIONS = {
    "s1": ("1.0.0", ["1.20.1"], DIGEST),
    "s2": ("1.1.0", ["1.20.4"], DIGEST),
    "s3": ("1.2.0", ["1.20.4"], DIGEST),
    "t1": ("0.1.0", ["1.20.4"], "00" * 64),
}

class Handler(BaseHTTPRequestHandler):
    def log_message(self, *args):
        pass

    def send_json(self, status, body):
        data = json.dumps(body).encode()
        self.send_response(status)
        self.send_header("Content-Type", "application/json")
        self.send_header("Content-Length", str(len(data)))
        self.end_headers()
        self.wfile.write(data)

    def do_GET(self):
        if self.path == "/_requests":
            self.send_json(200, REQUESTS)
            return
        REQUESTS.append({"path": self.path, "user_agent": self.headers.get("User-Agent", "")})
        parts = self.path.strip("/").split("/")
        if len(parts) == 3 and parts[:2] == ["v2", "project"] and parts[2] in PROJECTS:
            self.send_json(200, PROJECTS[parts[2]])
            return
        if len(parts) == 3 and parts[:2] == ["v2", "version"] and parts[2] in VERSIONS:
            vid = parts[2]
            number, games, digest = VERSIONS[vid]
            base = "http://" + self.headers["Host"]
            name = vid + "-" + number
            self.send_json(200, {
                "id": vid, "version_number": number, "game_versions": games, "loaders": ["fabric"],
                "files": [
                    {"filename": name + "-sources.zip", "url": base + "/cdn/" + name + "-sources.zip", "hashes": {}},
                    {"filename": name + ".jar", "url": base + "/cdn/" + name + ".jar", "hashes": {"sha512": digest}},
                ],
            })
            return
        if len(parts) == 2 and parts[0] == "cdn" and parts[1].endswith(".jar"):
            self.send_response(200)
            self.send_header("Content-Type", "application/java-archive")
            self.send_header("Content-Length", str(len(JAR)))
            self.end_headers()
            self.wfile.write(JAR)
            return
        self.send_json(404, {"error": "not_found"})

ThreadingHTTPServer(("0.0.0.0", 8080), Handler).serve_forever()
`
