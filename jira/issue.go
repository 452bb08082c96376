package jira

import (
	"context"
	"fmt"

	"github.com/gi8lino/jirarest/jsonview"
)

// Issue is a read-only view over the JSON returned for a JIRA issue.
// Every field is resolved on first access and remembered for the life of the view.
// More fields can be exposed by declaring their path, following the methods below.
type Issue struct {
	object
}

// NewIssue wraps an envelope as an Issue.
func NewIssue(resp *Response) *Issue {
	return &Issue{object: newObject(resp)}
}

// Key returns the issue key, e.g. "JRA-9".
func (i *Issue) Key() (string, error) {
	return i.fields.String("Key", "key")
}

// Summary returns the issue summary.
func (i *Issue) Summary() (string, error) {
	return i.fields.String("Summary", "fields", "summary")
}

// Labels returns the labels assigned to the issue.
func (i *Issue) Labels() ([]string, error) {
	return i.fields.Strings("Labels", "fields", "labels")
}

// Parent returns the key of the parent issue, or "" when there is none.
func (i *Issue) Parent() (string, error) {
	return i.fields.String("Parent", "fields", "parent", "issueKey")
}

// IsSubtask reports whether the issue is a sub-task.
func (i *Issue) IsSubtask() (bool, error) {
	return i.fields.Bool("IsSubtask", "fields", "issuetype", "subtask")
}

// IssueType returns the name of the issue type.
func (i *Issue) IssueType() (string, error) {
	return i.fields.String("IssueType", "fields", "issuetype", "name")
}

// IssueTypeSelf returns the REST locator of the issue type.
func (i *Issue) IssueTypeSelf() (string, error) {
	return i.fields.String("IssueTypeSelf", "fields", "issuetype", "self")
}

// ParentObject fetches the parent issue through the origin client.
// The request is made once; later calls return the same *Issue.
// It returns ErrMissingReference without a request when the issue has no parent.
func (i *Issue) ParentObject(ctx context.Context) (*Issue, error) {
	return jsonview.Memo(i.fields, "ParentObject", func() (*Issue, error) {
		key, err := i.Parent()
		if err != nil {
			return nil, err
		}
		if key == "" {
			return nil, fmt.Errorf("parent issue: %w", ErrMissingReference)
		}
		c, err := i.client()
		if err != nil {
			return nil, err
		}
		return c.GetIssue(ctx, key)
	})
}

// IssueTypeObject fetches the issue type through the origin client, following
// the locator JIRA embeds under fields.issuetype.self.
// The request is made once; later calls return the same *IssueType.
func (i *Issue) IssueTypeObject(ctx context.Context) (*IssueType, error) {
	return jsonview.Memo(i.fields, "IssueTypeObject", func() (*IssueType, error) {
		self, err := i.IssueTypeSelf()
		if err != nil {
			return nil, err
		}
		if self == "" {
			return nil, fmt.Errorf("issue type: %w", ErrMissingReference)
		}
		c, err := i.client()
		if err != nil {
			return nil, err
		}
		return c.GetIssueTypeByResource(ctx, self)
	})
}
