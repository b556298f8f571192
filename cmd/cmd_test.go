package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService is a minimal assessment service with in-memory accounts.
type fakeService struct {
	mu    sync.Mutex
	users map[string]string
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	reply := func(status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}

	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	user, _ := body["username"].(string)

	switch r.URL.Path {
	case "/signup":
		f.users[user], _ = body["password"].(string)
		reply(http.StatusCreated, map[string]string{"message": "Signup successful"})
	case "/login":
		if pw, ok := f.users[user]; !ok || pw != body["password"] {
			reply(http.StatusBadRequest, map[string]string{"message": "Invalid username or password"})
			return
		}
		reply(http.StatusOK, map[string]string{"message": "Login successful"})
	case "/questions":
		reply(http.StatusOK, map[string]any{"questions": []map[string]any{
			{"id": 1, "Question": "What is photosynthesis?"},
			{"id": 2, "Question": "Apply Newton's second law."},
		}})
	case "/submit_answers":
		reply(http.StatusOK, map[string]any{
			"feedback":            "Solid start.",
			"total_score":         62.5,
			"remembering_score":   40,
			"understanding_score": 30,
			"applying_score":      20,
			"average_time_taken":  1200,
		})
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

type harness struct {
	t   *testing.T
	api string
	db  string
}

func newHarness(t *testing.T) *harness {
	srv := httptest.NewServer(&fakeService{users: map[string]string{}})
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	t.Setenv("BLOOMQUIZ_LOG_FILE", filepath.Join(dir, "test.log"))
	t.Setenv("BLOOMQUIZ_DB", "")
	return &harness{t: t, api: srv.URL, db: filepath.Join(dir, "test.db")}
}

// run executes the root command and returns stdout.
func (h *harness) run(stdin string, args ...string) (string, error) {
	var out, errOut bytes.Buffer
	resetFlags(rootCmd)
	rootCmd.SetArgs(append(args, "--api", h.api, "--db", h.db))
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags clears values left on the shared command tree by earlier runs.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestAccountAndQuizFlow(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("pw\npw\n", "signup", "--name", "ada", "--email", "ada@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Signup successful")

	out, err = h.run("", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")

	out, err = h.run("pw\n", "login", "--name", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as ada")

	out, err = h.run("", "whoami")
	require.NoError(t, err)
	assert.Equal(t, "ada\n", out)

	out, err = h.run("\nlight to sugar\nF = ma\n", "quiz")
	require.NoError(t, err)
	assert.Contains(t, out, "Question 1/2")
	assert.Contains(t, out, "answer is required")
	assert.Contains(t, out, "44.4%")
	assert.Contains(t, out, "Solid start.")

	out, err = h.run("", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "62.5")
	assert.Contains(t, out, "1200.0")

	out, err = h.run("", "calls", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "submit_answers")
	assert.Contains(t, out, "fetch_questions")

	_, err = h.run("", "logout")
	require.NoError(t, err)
	out, err = h.run("", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")
}

func TestWrongPasswordFails(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("pw\npw\n", "signup", "--name", "bob", "--email", "bob@example.com")
	require.NoError(t, err)

	_, err = h.run("nope\n", "login", "--name", "bob")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid username or password")

	out, err := h.run("", "calls", "list", "--failed")
	require.NoError(t, err)
	assert.Contains(t, out, "authenticate")
}

func TestAccountFlagsRequired(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("pw\npw\n", "signup", "--name", "ada", "--email", "ada@example.com")
	require.NoError(t, err)

	_, err = h.run("pw\npw\n", "signup", "--name", "eve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "email" not set`)

	_, err = h.run("pw\n", "login")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "name" not set`)
}

func TestSignupPasswordMismatch(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("pw\nother\n", "signup", "--name", "cy", "--email", "cy@example.com")
	require.Error(t, err)

	out, err := h.run("", "calls", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No calls recorded.")
}

func TestQuizWithoutLogin(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "quiz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestInvalidAPIURL(t *testing.T) {
	h := newHarness(t)
	h.api = "ftp://nowhere"

	_, err := h.run("", "whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
