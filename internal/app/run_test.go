package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/gi8lino/jirarest/internal/app"
	"github.com/gi8lino/jirarest/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Parallel()

	dummyEnv := func(string) string { return "" }

	newServer := func(t *testing.T) *testutils.JiraServer {
		t.Helper()

		return testutils.NewJiraServer(t, map[string]testutils.Reply{
			testutils.APIPath("issue/JRA-25592"): {Body: `{"key":"JRA-25592","fields":{"summary":"X","labels":["security","advisory"],"parent":{"issueKey":"JRA-1"},"issuetype":{"name":"Bug","subtask":false,"self":"issueType/1"}}}`},
			testutils.APIPath("issue/JRA-1"):     {Body: `{"key":"JRA-1","fields":{"summary":"Top"}}`},
			testutils.APIPath("issueType/1"):     {Body: `{"name":"Bug","subtask":false,"description":"A problem."}`},
		})
	}

	t.Run("prints issue as text", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		args := []string{"--server-url=" + srv.URL, "--issue=JRA-25592", "--bearer-token=tok"}

		var out, logs bytes.Buffer
		err := app.Run(context.Background(), "v1", "deadbeef", args, &out, &logs, dummyEnv)
		require.NoError(t, err)

		assert.Equal(t, "JRA-25592 [Bug] X\nlabels: advisory, security\nparent: JRA-1\n", out.String())

		reqs := srv.Requests()
		require.Len(t, reqs, 1)
		assert.Equal(t, "Bearer tok", reqs[0].Header.Get("Authorization"))
		assert.Equal(t, "jirarest/v1", reqs[0].Header.Get("User-Agent"))
	})

	t.Run("resolves relations as json", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		args := []string{"--server-url=" + srv.URL, "--issue=JRA-25592", "--resolve", "--output=json"}

		var out, logs bytes.Buffer
		err := app.Run(context.Background(), "v1", "deadbeef", args, &out, &logs, dummyEnv)
		require.NoError(t, err)

		var got struct {
			Key         string `json:"key"`
			ParentIssue struct {
				Summary string `json:"summary"`
			} `json:"parentIssue"`
			Type struct {
				Description string `json:"description"`
			} `json:"type"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, "JRA-25592", got.Key)
		assert.Equal(t, "Top", got.ParentIssue.Summary)
		assert.Equal(t, "A problem.", got.Type.Description)
	})

	t.Run("issue type from config file with debug logs", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		cfgPath := filepath.Join(t.TempDir(), "jira.yaml")
		testutils.MustWriteFile(t, cfgPath, `
serverURL: `+srv.URL+`
auth:
  basic:
    username: jirarestclientnet
    password: jirarestclientnet
`)
		args := []string{"--config=" + cfgPath, "--issue-type=1", "--debug"}

		var out, logs bytes.Buffer
		err := app.Run(context.Background(), "v1", "deadbeef", args, &out, &logs, dummyEnv)
		require.NoError(t, err)

		assert.Equal(t, "Bug\nA problem.\n", out.String())
		assert.Contains(t, logs.String(), "method=Basic")
		assert.NotContains(t, logs.String(), "amlyYXJlc3RjbGllbnRuZXQ6amlyYXJlc3RjbGllbnRuZXQ=")
		assert.Contains(t, logs.String(), "jira request")
	})

	t.Run("server error messages are printed", func(t *testing.T) {
		t.Parallel()

		srv := newServer(t)
		args := []string{"--server-url=" + srv.URL, "--issue=NOPE-1"}

		var out, logs bytes.Buffer
		err := app.Run(context.Background(), "v1", "deadbeef", args, &out, &logs, dummyEnv)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "error: Issue Does Not Exist")
	})

	t.Run("version flag", func(t *testing.T) {
		t.Parallel()

		var out, logs bytes.Buffer
		err := app.Run(context.Background(), "v1.2.3", "deadbeef", []string{"--version"}, &out, &logs, dummyEnv)
		require.NoError(t, err)
		assert.Contains(t, out.String(), "v1.2.3")
	})

	t.Run("parse error", func(t *testing.T) {
		t.Parallel()

		var out, logs bytes.Buffer
		err := app.Run(context.Background(), "v1", "deadbeef", []string{"--issue=A-1"}, &out, &logs, dummyEnv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing error")
	})

	t.Run("incomplete basic auth", func(t *testing.T) {
		t.Parallel()

		args := []string{"--server-url=https://jira.example.com", "--issue=A-1", "--username=me"}

		var out, logs bytes.Buffer
		err := app.Run(context.Background(), "v1", "deadbeef", args, &out, &logs, dummyEnv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "username and password are required")
	})

	t.Run("invalid config file", func(t *testing.T) {
		t.Parallel()

		args := []string{"--config=" + filepath.Join(t.TempDir(), "missing.yaml"), "--issue=A-1"}

		var out, logs bytes.Buffer
		err := app.Run(context.Background(), "v1", "deadbeef", args, &out, &logs, dummyEnv)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "loading config error")
	})
}
