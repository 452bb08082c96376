package jira

import (
	"strings"

	"github.com/gi8lino/jirarest/jsonview"
)

// object holds what every JIRA view shares: the envelope it wraps and the
// field cache over its document.
type object struct {
	resp   *Response
	fields *jsonview.Fields
}

func newObject(resp *Response) object {
	var doc *jsonview.Document
	if resp != nil {
		doc = resp.Document
	}
	return object{
		resp:   resp,
		fields: jsonview.NewFields(doc),
	}
}

// Response returns the envelope this view was built from.
func (o *object) Response() *Response { return o.resp }

// Client returns the client that produced this view.
func (o *object) Client() *Client { return o.resp.Client() }

// Self returns the REST locator of this entity.
func (o *object) Self() (string, error) {
	return o.fields.String("Self", "self")
}

// ErrorMessages returns the messages JIRA reported for this request.
func (o *object) ErrorMessages() ([]string, error) {
	return o.fields.Strings("ErrorMessages", "errorMessages")
}

// Field reads any string field by object keys, e.g. Field("fields", "status", "name").
// The value is remembered under its dotted path.
func (o *object) Field(path ...string) (string, error) {
	segs := make([]any, len(path))
	for i, p := range path {
		segs[i] = p
	}
	return o.fields.String("field:"+strings.Join(path, "."), segs...)
}

// client returns the origin client or ErrNoClient.
func (o *object) client() (*Client, error) {
	c := o.Client()
	if c == nil {
		return nil, ErrNoClient
	}
	return c, nil
}
