package jira

// IssueType is a read-only view over the JSON returned for a JIRA issue type.
type IssueType struct {
	object
}

// NewIssueType wraps an envelope as an IssueType.
func NewIssueType(resp *Response) *IssueType {
	return &IssueType{object: newObject(resp)}
}

// Name returns the issue type name.
func (t *IssueType) Name() (string, error) {
	return t.fields.String("Name", "name")
}

// Description returns the issue type description.
func (t *IssueType) Description() (string, error) {
	return t.fields.String("Description", "description")
}

// IconURL returns the URL of the issue type icon.
func (t *IssueType) IconURL() (string, error) {
	return t.fields.String("IconURL", "iconUrl")
}

// IsSubtask reports whether issues of this type are sub-tasks.
func (t *IssueType) IsSubtask() (bool, error) {
	return t.fields.Bool("IsSubtask", "subtask")
}
