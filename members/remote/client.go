package remote

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/referralhub/casemgmt/scheduled-tasks/common"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/config"
	"github.com/referralhub/casemgmt/scheduled-tasks/members/domain"
)

const (
	tokenPath   = "/token"
	schemaPath  = "/schema/%s"
	recordsPath = "/records/%s"

	retryWaitTime    = 500 * time.Millisecond
	retryMaxWaitTime = 5 * time.Second
)

// Client talks to the remote record store REST API.
type Client struct {
	rest    *resty.Client
	limiter *rate.Limiter
}

func NewClient(creds *config.Credentials, cfg *config.Config) *Client {
	rest := resty.New().
		SetBaseURL(creds.BaseURL).
		SetTimeout(cfg.RequestTimeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(retryWaitTime).
		SetRetryMaxWaitTime(retryMaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if r == nil {
				return false
			}

			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() == http.StatusServiceUnavailable
		}).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetHeader("Accept", "application/json").
		SetHeader("X-Service", common.GAEService).
		SetHeader("X-Version", common.GAEVersion)

	return &Client{
		rest:    rest,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}
}

// PageRequest is one page of a records query. Empty Where and nil Select are omitted.
type PageRequest struct {
	Where      string
	Select     []string
	PageSize   int
	PageNumber int
}

func (r PageRequest) params() map[string]string {
	p := map[string]string{
		"pageSize":   strconv.Itoa(r.PageSize),
		"pageNumber": strconv.Itoa(r.PageNumber),
	}

	if r.Where != "" {
		p["where"] = r.Where
	}

	if len(r.Select) > 0 {
		p["select"] = strings.Join(r.Select, ",")
	}

	return p
}

// GetRecordsPage fetches one page of records of table.
func (c *Client) GetRecordsPage(ctx context.Context, token, table string, req PageRequest) ([]domain.RemoteMemberRecord, error) {
	body, err := c.get(ctx, token, fmt.Sprintf(recordsPath, table), req.params())
	if err != nil {
		return nil, err
	}

	return decodeRecords(body)
}

// ListColumns returns the column names of table. variant selects the
// introspection endpoint: "" for the table schema, or "fields" / "columns".
func (c *Client) ListColumns(ctx context.Context, token, table, variant string) ([]string, error) {
	path := fmt.Sprintf(schemaPath, table)
	if variant != "" {
		path += "/" + variant
	}

	body, err := c.get(ctx, token, path, nil)
	if err != nil {
		return nil, err
	}

	return decodeColumns(body)
}

func (c *Client) get(ctx context.Context, token, path string, params map[string]string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.rest.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, &RequestError{
			Method:     http.MethodGet,
			Path:       path,
			StatusCode: resp.StatusCode(),
			Body:       resp.String(),
		}
	}

	return resp.Body(), nil
}

func decodeRecords(body []byte) ([]domain.RemoteMemberRecord, error) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("decoding records page: %w", err)
	}

	items, ok := unwrapList(v, "Result", "result", "data", "records", "Records")
	if !ok {
		return nil, fmt.Errorf("unexpected records payload of type %T", v)
	}

	records := make([]domain.RemoteMemberRecord, 0, len(items))

	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("records page item %d is a %T, not an object", i, item)
		}

		records = append(records, domain.RemoteMemberRecord(obj))
	}

	return records, nil
}

func decodeColumns(body []byte) ([]string, error) {
	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("decoding schema: %w", err)
	}

	items, ok := unwrapList(v, "fields", "Fields", "columns", "Columns", "Result", "result", "data")
	if !ok {
		return nil, fmt.Errorf("unexpected schema payload of type %T", v)
	}

	columns := make([]string, 0, len(items))

	for _, item := range items {
		switch t := item.(type) {
		case string:
			if t != "" {
				columns = append(columns, t)
			}
		case map[string]interface{}:
			for _, k := range []string{"name", "Name", "field", "fieldName", "columnName", "ColumnName"} {
				if s, ok := t[k].(string); ok && s != "" {
					columns = append(columns, s)
					break
				}
			}
		}
	}

	return columns, nil
}

// unwrapList accepts a bare array or an object that carries the array under one of keys.
func unwrapList(v interface{}, keys ...string) ([]interface{}, bool) {
	switch t := v.(type) {
	case []interface{}:
		return t, true
	case map[string]interface{}:
		for _, k := range keys {
			if inner, ok := t[k]; ok {
				return unwrapList(inner, keys...)
			}
		}
	}

	return nil, false
}
