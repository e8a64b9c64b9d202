package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"f1-route-bot/internal/logger"
	"f1-route-bot/internal/telegram/requests"
)

type (
	Client struct {
		serverAddr string
		token      string

		cl *http.Client
	}

	HttpError struct {
		Url     string
		Code    int
		Message string
	}

	// помилка рівня Bot API (ok=false при HTTP 200 теж можливий)
	ApiError struct {
		Method      string
		ErrorCode   int
		Description string
	}
)

func New(serverAddr, token string) *Client {
	return &Client{
		serverAddr: serverAddr,
		token:      token,

		cl: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				IdleConnTimeout:     30 * time.Second,
				DisableKeepAlives:   false,
				MaxIdleConnsPerHost: 5,
				DisableCompression:  true,
			},
		},
	}
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("Http request failed for %s with code %d and message:\n%s", e.Url, e.Code, e.Message)
}

func (e *ApiError) Error() string {
	return fmt.Sprintf("Bot API call %s failed with code %d: %s", e.Method, e.ErrorCode, e.Description)
}

func (c *Client) Invoke(ctx context.Context, method string, urlParams url.Values, body []byte) (content json.RawMessage, err error) {
	method = strings.Trim(method, "/")
	reqUrl := c.serverAddr + "/bot" + c.token + "/" + method
	if urlParams != nil {
		reqUrl += "?" + urlParams.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqUrl, bytes.NewBuffer(body))
	if err != nil {
		logger.Warning("Error while create request for", method, ":", err)
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	logger.Debug("---> request", method)

	resp, err := c.cl.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	logger.Debug("<--- request", method, "with body", string(bodyBytes))
	if err != nil {
		logger.Warning("Error while read response body", err)
	}

	var apiResp requests.APIResponse
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &HttpError{
				Url:     req.URL.Path,
				Code:    resp.StatusCode,
				Message: string(bodyBytes),
			}
		}
		return nil, err
	}

	if !apiResp.OK {
		return nil, &ApiError{
			Method:      method,
			ErrorCode:   apiResp.ErrorCode,
			Description: apiResp.Description,
		}
	}

	return apiResp.Result, nil
}
