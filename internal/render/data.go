package render

import (
	"context"
	"errors"

	"github.com/gi8lino/jirarest/jira"
)

// IssueData is a flat snapshot of an Issue for templates and JSON output.
type IssueData struct {
	Status        int            `json:"status"`
	Key           string         `json:"key"`
	Self          string         `json:"self,omitempty"`
	Summary       string         `json:"summary"`
	Labels        []string       `json:"labels"`
	Parent        string         `json:"parent,omitempty"`
	IsSubtask     bool           `json:"isSubtask"`
	IssueType     string         `json:"issueType"`
	ErrorMessages []string       `json:"errorMessages,omitempty"`
	ParentIssue   *IssueData     `json:"parentIssue,omitempty"`
	Type          *IssueTypeData `json:"type,omitempty"`
}

// IssueTypeData is a flat snapshot of an IssueType.
type IssueTypeData struct {
	Status        int      `json:"status"`
	Self          string   `json:"self,omitempty"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	IconURL       string   `json:"iconUrl,omitempty"`
	IsSubtask     bool     `json:"isSubtask"`
	ErrorMessages []string `json:"errorMessages,omitempty"`
}

// NewIssueData reads every field of issue. With resolve set, the parent issue and
// the issue type are fetched as well, when the issue references them.
func NewIssueData(ctx context.Context, issue *jira.Issue, resolve bool) (*IssueData, error) {
	d := &IssueData{}
	if r := issue.Response(); r != nil {
		d.Status = r.StatusCode
	}

	var errs []error
	collect := func(err error) { errs = append(errs, err) }

	var err error
	d.Key, err = issue.Key()
	collect(err)
	d.Self, err = issue.Self()
	collect(err)
	d.Summary, err = issue.Summary()
	collect(err)
	d.Labels, err = issue.Labels()
	collect(err)
	d.Parent, err = issue.Parent()
	collect(err)
	d.IsSubtask, err = issue.IsSubtask()
	collect(err)
	d.IssueType, err = issue.IssueType()
	collect(err)
	d.ErrorMessages, err = issue.ErrorMessages()
	collect(err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	if !resolve {
		return d, nil
	}

	if d.Parent != "" {
		parent, err := issue.ParentObject(ctx)
		if err != nil {
			return nil, err
		}
		if d.ParentIssue, err = NewIssueData(ctx, parent, false); err != nil {
			return nil, err
		}
	}

	self, err := issue.IssueTypeSelf()
	if err != nil {
		return nil, err
	}
	if self != "" {
		it, err := issue.IssueTypeObject(ctx)
		if err != nil {
			return nil, err
		}
		if d.Type, err = NewIssueTypeData(it); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// NewIssueTypeData reads every field of an IssueType.
func NewIssueTypeData(it *jira.IssueType) (*IssueTypeData, error) {
	d := &IssueTypeData{}
	if r := it.Response(); r != nil {
		d.Status = r.StatusCode
	}

	var errs []error
	collect := func(err error) { errs = append(errs, err) }

	var err error
	d.Self, err = it.Self()
	collect(err)
	d.Name, err = it.Name()
	collect(err)
	d.Description, err = it.Description()
	collect(err)
	d.IconURL, err = it.IconURL()
	collect(err)
	d.IsSubtask, err = it.IsSubtask()
	collect(err)
	d.ErrorMessages, err = it.ErrorMessages()
	collect(err)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return d, nil
}
