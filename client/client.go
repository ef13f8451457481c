// This file is part of Dawstream.
//
// Dawstream is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dawstream is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dawstream.  If not, see <https://www.gnu.org/licenses/>.

package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dawstream/dawstream/curated"
	"github.com/dawstream/dawstream/track"
)

// DefaultServer is the address of a server running with the default
// configuration.
const DefaultServer = "http://localhost:3000"

// List of error patterns returned by the package.
const (
	ClientError        = "client: %v"
	UnexpectedResponse = "client: unexpected response from server [%d: %s]"
)

const tracksEndpoint = "/tracks"

// time allowed for a request to the /tracks service
const requestTimeout = 10 * time.Second

// Client represents a connection to a server. Instances of the Client type
// can be used more than once.
type Client struct {
	server *url.URL
	http   *http.Client
}

// NewClient is the preferred method of initialisation of the Client type. The
// server argument is the base URL of the server.
func NewClient(server string) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(server, "/"))
	if err != nil {
		return nil, curated.Errorf(ClientError, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, curated.Errorf(ClientError, fmt.Sprintf("unsupported scheme (%s)", u.Scheme))
	}

	return &Client{
		server: u,
		http:   &http.Client{Timeout: requestTimeout},
	}, nil
}

// Store the track as the server's default track.
func (cl *Client) Store(ctx context.Context, p track.Payload) error {
	data, err := p.Encode()
	if err != nil {
		return curated.Errorf(ClientError, err)
	}

	statusCode, response, err := cl.request(ctx, http.MethodPost, tracksEndpoint, data)
	if err != nil {
		return curated.Errorf(ClientError, err)
	}

	if statusCode != http.StatusOK {
		return curated.Errorf(UnexpectedResponse, statusCode, strings.TrimSpace(string(response)))
	}

	return nil
}

// Restore the server's default track. Returns false if the server has no
// default track.
func (cl *Client) Restore(ctx context.Context) (track.Payload, bool, error) {
	statusCode, response, err := cl.request(ctx, http.MethodGet, tracksEndpoint, nil)
	if err != nil {
		return track.Payload{}, false, curated.Errorf(ClientError, err)
	}

	switch statusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return track.Payload{}, false, nil
	default:
		return track.Payload{}, false, curated.Errorf(UnexpectedResponse, statusCode, strings.TrimSpace(string(response)))
	}

	p, err := track.Decode(response)
	if err != nil {
		return track.Payload{}, false, curated.Errorf(ClientError, err)
	}

	return p, true, nil
}

// endpoint should not contain the server address, it will be added
// automatically.
func (cl *Client) request(ctx context.Context, method string, endpoint string, data []byte) (int, []byte, error) {
	var body io.Reader
	if data != nil {
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, cl.server.JoinPath(endpoint).String(), body)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := cl.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	response, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}

	return resp.StatusCode, response, nil
}
