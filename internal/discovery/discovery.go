// Package discovery lists the backend nodes of a CAV network: the node the
// client is talking to, its known peers, and the prefectures they serve.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/cavworks/cav-cli/pkg/types"
)

// Client fetches server and prefecture descriptors from one CAV node.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logrus.Logger
}

// NewClient creates a discovery client for the given base URL.
func NewClient(baseURL string, log *logrus.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        log,
	}
}

// Network is the combined discovery result: the local node plus every peer
// the node knows about, and the prefecture listing.
type Network struct {
	Local       types.ServerDescriptor
	Servers     []types.ServerDescriptor
	Prefectures []types.Prefecture
}

// FetchLocal returns the descriptor of the node the client is connected to.
func (c *Client) FetchLocal(ctx context.Context) (types.ServerDescriptor, error) {
	var local types.ServerDescriptor
	if err := c.get(ctx, "/api/servers/local", &local); err != nil {
		return types.ServerDescriptor{}, err
	}
	return local, nil
}

// FetchAll returns every server descriptor the node knows about, local
// included.
func (c *Client) FetchAll(ctx context.Context) ([]types.ServerDescriptor, error) {
	var servers []types.ServerDescriptor
	if err := c.get(ctx, "/api/servers", &servers); err != nil {
		return nil, err
	}
	return servers, nil
}

// ListPrefectures returns the prefectures served by the network.
func (c *Client) ListPrefectures(ctx context.Context) ([]types.Prefecture, error) {
	var prefectures []types.Prefecture
	if err := c.get(ctx, "/api/prefectures", &prefectures); err != nil {
		return nil, err
	}
	return prefectures, nil
}

// PrefectureState returns the administrative state of one prefecture.
func (c *Client) PrefectureState(ctx context.Context, id string) (types.PrefectureState, error) {
	var state types.PrefectureState
	path := fmt.Sprintf("/api/prefectures/%s/state", url.PathEscape(id))
	if err := c.get(ctx, path, &state); err != nil {
		return types.PrefectureState{}, err
	}
	return state, nil
}

// Load fetches the local descriptor, the server list, and the prefecture
// listing as a unit. Any failure fails the whole load; a partial network
// view is never returned.
func (c *Client) Load(ctx context.Context) (*Network, error) {
	local, err := c.FetchLocal(ctx)
	if err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}
	servers, err := c.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}
	prefectures, err := c.ListPrefectures(ctx)
	if err != nil {
		return nil, fmt.Errorf("load network: %w", err)
	}
	return &Network{Local: local, Servers: servers, Prefectures: prefectures}, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	c.log.WithField("path", path).Debug("discovery request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("GET %s: %s: %s", path, resp.Status, strings.TrimSpace(string(body)))
	}
	return json.Unmarshal(body, out)
}
