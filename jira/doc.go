// Package jira is a small read-only client for the JIRA REST API.
//
// A Client performs authenticated GET requests and wraps each reply in a typed
// view (Issue, IssueType). Views read their fields lazily from the reply's JSON
// document and remember each value, so a field is extracted at most once.
// Fields that reference other entities, such as Issue.ParentObject, issue a
// further request through the client that produced the view, also at most once.
//
// Views are not safe for concurrent first access to relational fields and are
// meant to stay with the goroutine that requested them.
package jira
