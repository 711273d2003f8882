package network

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"options-observer/src/helpers"
	"options-observer/src/logger"
	"options-observer/src/models"
)

// -----------------------------------------------------------------------------

// AuthNetworkManager performs bearer-token GET requests against the
// upstream quotes provider and translates failures into the error
// taxonomy the request handler maps to HTTP statuses. A single failure
// aborts the call; there is deliberately no retry loop.
type AuthNetworkManager struct {
	Config *models.MConfig
	Client *http.Client
	Logger *logger.Logger
	token  string
}

// -----------------------------------------------------------------------------

func NewAuthNetworkManager(cfg *models.MConfig, log *logger.Logger) *AuthNetworkManager {
	return &AuthNetworkManager{
		Config: cfg,
		Logger: log,
		token:  cfg.APIToken,
		Client: &http.Client{
			Timeout: time.Duration(cfg.Network.RequestTimeout) * time.Second,
		},
	}
}

// -----------------------------------------------------------------------------

// Get performs an authenticated GET request with query parameters.
func (nm *AuthNetworkManager) Get(urlStr string, params map[string]string) ([]byte, error) {
	if nm.token == "" {
		return nil, helpers.NewConfigError("no API token configured")
	}

	reqUrl, err := url.Parse(urlStr)
	if err != nil {
		return nil, helpers.NewTransportError("invalid request url", err)
	}

	q := reqUrl.Query()
	for k, v := range params {
		q.Add(k, v)
	}
	reqUrl.RawQuery = q.Encode()

	req, err := http.NewRequest(http.MethodGet, reqUrl.String(), nil)
	if err != nil {
		return nil, helpers.NewTransportError("building request failed", err)
	}

	req.Header.Set("Authorization", "Bearer "+nm.token)
	req.Header.Set("Accept", "application/json")
	if nm.Config.Network.UserAgent != "" {
		req.Header.Set("User-Agent", nm.Config.Network.UserAgent)
	}

	resp, err := nm.Client.Do(req)
	if err != nil {
		nm.Logger.Error("Request failed: %v", err)
		return nil, helpers.NewTransportError("upstream request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		nm.Logger.Error("Upstream rejected credentials (status 401)")
		return nil, helpers.NewAuthError("API key is invalid or has expired", nil)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		nm.Logger.Error("Bad status %d: %s", resp.StatusCode, string(body))
		return nil, helpers.NewTransportError(fmt.Sprintf("bad status: %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, helpers.NewTransportError("reading response failed", err)
	}

	return body, nil
}
