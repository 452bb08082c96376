package jira

import (
	"fmt"
	"strings"

	"github.com/gi8lino/jirarest/jsonview"
)

// Response is the envelope of one GET request: the raw reply, its parsed JSON
// document (nil unless the reply was JSON) and the client that issued it.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
	Document    *jsonview.Document

	client *Client
}

// NewResponse builds an envelope from a raw reply. The body is parsed only when
// contentType announces JSON; a JSON reply that fails to parse is an error.
func NewResponse(client *Client, statusCode int, contentType string, body []byte) (*Response, error) {
	r := &Response{
		StatusCode:  statusCode,
		ContentType: contentType,
		Body:        body,
		client:      client,
	}
	if !isJSONContentType(contentType) {
		return r, nil
	}

	doc, err := jsonview.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse response (status %d): %w", statusCode, err)
	}
	r.Document = doc
	return r, nil
}

// Client returns the client that issued the request. It may be nil for envelopes
// built outside a Client.
func (r *Response) Client() *Client {
	if r == nil {
		return nil
	}
	return r.client
}

// IsJSON reports whether the reply carried a JSON document.
func (r *Response) IsJSON() bool { return r != nil && r.Document != nil }

// isJSONContentType mirrors the server's "application/json; charset=UTF-8" style headers.
func isJSONContentType(ct string) bool {
	return strings.Contains(strings.ToLower(ct), "application/json")
}
