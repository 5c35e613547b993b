package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"pap/internal/ports"
	"pap/internal/shared"
	"pap/internal/types"
)

const DefaultRegistryURL = "https://api.modrinth.com/v2"
const DefaultUserAgent = "pap-cli/dev"
const defaultRegistryTimeout = 60 * time.Second

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 4 * 1024

type RegistryHTTPAdapter struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Client    *http.Client
}

func NewRegistryHTTPAdapter(baseURL string, userAgent string, timeoutSec int) RegistryHTTPAdapter {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultRegistryURL
	}
	userAgent = strings.TrimSpace(userAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	timeout := normalizeRegistryTimeout(timeoutSec)
	return RegistryHTTPAdapter{
		BaseURL:   baseURL,
		UserAgent: userAgent,
		Timeout:   timeout,
		Client:    &http.Client{Timeout: timeout},
	}
}

func (a RegistryHTTPAdapter) Project(ctx context.Context, id string) (types.ProjectDescriptor, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return types.ProjectDescriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("project id is empty")
	}
	var project types.ProjectDescriptor
	endpoint := fmt.Sprintf("%s/project/%s", a.BaseURL, url.PathEscape(trimmed))
	if err := a.getJSON(ctx, endpoint, "project "+trimmed, &project); err != nil {
		return types.ProjectDescriptor{}, err
	}
	if project.ID == "" {
		project.ID = trimmed
	}
	return project, nil
}

func (a RegistryHTTPAdapter) Version(ctx context.Context, id string) (types.VersionDescriptor, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return types.VersionDescriptor{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("version id is empty")
	}
	var version types.VersionDescriptor
	endpoint := fmt.Sprintf("%s/version/%s", a.BaseURL, url.PathEscape(trimmed))
	if err := a.getJSON(ctx, endpoint, "version "+trimmed, &version); err != nil {
		return types.VersionDescriptor{}, err
	}
	if version.ID == "" {
		version.ID = trimmed
	}
	return version, nil
}

func (a RegistryHTTPAdapter) Stream(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("artifact url is empty")
	}
	resp, err := a.do(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, statusError(resp, rawURL, "artifact download failed")
	}
	return resp.Body, nil
}

func (a RegistryHTTPAdapter) getJSON(ctx context.Context, endpoint string, what string, target interface{}) error {
	resp, err := a.do(ctx, endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("registry has no %s", what)).
			WithCause(shared.HTTPStatusError(resp.StatusCode, endpoint))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp, endpoint, fmt.Sprintf("registry request for %s failed", what))
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to decode %s", what)).
			WithCause(err)
	}
	return nil
}

func (a RegistryHTTPAdapter) do(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to create registry request").
			WithCause(err)
	}
	req.Header.Set("User-Agent", a.UserAgent)
	client := a.Client
	if client == nil {
		client = &http.Client{Timeout: normalizeRegistryTimeout(int(a.Timeout / time.Second))}
	}
	log.Ctx(ctx).Debug().Str("url", endpoint).Msg("registry request")
	resp, err := client.Do(req)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("registry request failed").
			WithCause(err)
	}
	return resp, nil
}

func statusError(resp *http.Response, endpoint string, msg string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(msg).
		WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, endpoint, strings.TrimSpace(string(body))))
}

func normalizeRegistryTimeout(value int) time.Duration {
	timeout := time.Duration(value) * time.Second
	if timeout <= 0 {
		return defaultRegistryTimeout
	}
	return timeout
}

var _ ports.RegistryPort = RegistryHTTPAdapter{}
