package authctl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/launcher/internal/server/approval"
	"github.com/dmitrijs2005/launcher/internal/server/auth"
	"github.com/dmitrijs2005/launcher/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "s3cret"

type call struct {
	method, path string
	allow        *bool
}

// fakeAdmin records admin calls after checking the operator token.
type fakeAdmin struct {
	mu    sync.Mutex
	calls []call
}

func (f *fakeAdmin) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if _, err := auth.ParseOperatorToken(token, []byte(secret)); err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{"errorCode": -606, "description": "unauthorized"})
		return
	}

	c := call{method: r.Method, path: r.URL.Path}
	if r.Body != nil {
		var body struct {
			Allow *bool `json:"allow"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		c.allow = body.Allow
	}
	f.mu.Lock()
	f.calls = append(f.calls, c)
	f.mu.Unlock()

	if r.URL.Path == "/admin/auth/pending" {
		_ = json.NewEncoder(w).Encode(PendingList{
			Mode: approval.ModeManual,
			Pending: []approval.PendingRequest{{
				ID:          "req-1",
				App:         models.AppInfo{ID: "maidsafe.net.test", Vendor: "MaidSafe"},
				Permissions: []string{"SAFE_DRIVE_ACCESS"},
				CreatedAt:   time.Now(),
			}},
		})
		return
	}
	if r.URL.Path == "/admin/auth/pending/unknown" {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"errorCode": -612, "description": "not found"})
	}
}

func newFake(t *testing.T) (*fakeAdmin, string) {
	t.Helper()
	f := &fakeAdmin{}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return f, srv.URL
}

func TestRun_Commands(t *testing.T) {
	f, url := newFake(t)

	tests := []struct {
		args  []string
		want  call
		allow bool
	}{
		{args: []string{"approve", "req-1"}, want: call{method: http.MethodPost, path: "/admin/auth/pending/req-1"}, allow: true},
		{args: []string{"deny", "req-1"}, want: call{method: http.MethodPost, path: "/admin/auth/pending/req-1"}, allow: false},
		{args: []string{"allow-all"}, want: call{method: http.MethodPost, path: "/admin/auth/approval"}, allow: true},
		{args: []string{"deny-all"}, want: call{method: http.MethodPost, path: "/admin/auth/approval"}, allow: false},
		{args: []string{"clear"}, want: call{method: http.MethodDelete, path: "/admin/auth/approval"}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			var out bytes.Buffer
			args := append([]string{"-a", url, "-s", secret}, tt.args...)
			require.NoError(t, Run(context.Background(), args, &out))

			f.mu.Lock()
			last := f.calls[len(f.calls)-1]
			f.mu.Unlock()
			assert.Equal(t, tt.want.method, last.method)
			assert.Equal(t, tt.want.path, last.path)
			if tt.want.method == http.MethodPost {
				require.NotNil(t, last.allow)
				assert.Equal(t, tt.allow, *last.allow)
			}
		})
	}
}

func TestRun_Pending(t *testing.T) {
	_, url := newFake(t)
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), []string{"-a", url, "-s", secret, "pending"}, &out))
	assert.Contains(t, out.String(), "mode: manual")
	assert.Contains(t, out.String(), "req-1")
	assert.Contains(t, out.String(), "maidsafe.net.test")
}

func TestRun_ServerError(t *testing.T) {
	_, url := newFake(t)
	var out bytes.Buffer
	err := Run(context.Background(), []string{"-a", url, "-s", secret, "approve", "unknown"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	err = Run(context.Background(), []string{"-a", url, "-s", "wrong", "clear"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, Run(context.Background(), []string{"-s", secret}, &out))
	assert.Error(t, Run(context.Background(), []string{"-s", secret, "frobnicate"}, &out))
	assert.Error(t, Run(context.Background(), []string{"-s", secret, "approve"}, &out))
}

func TestRun_TokenPromptsForSecret(t *testing.T) {
	t.Setenv(secretEnv, "")
	orig := readPassword
	t.Cleanup(func() { readPassword = orig })
	readPassword = func(int) ([]byte, error) { return []byte(secret), nil }

	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), []string{"-o", "alice", "token"}, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	name, err := auth.ParseOperatorToken(lines[len(lines)-1], []byte(secret))
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }
	assert.Error(t, Run(context.Background(), []string{"token"}, &out))
}
