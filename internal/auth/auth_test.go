package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/bloomquiz/internal/api"
	"github.com/abhisek/bloomquiz/internal/session"
)

// fakeService mimics the assessment service's account endpoints.
type fakeService struct {
	mu    sync.Mutex
	users map[string]string
	hits  int
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits++

	var creds api.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	reply := func(status int, msg string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
	}

	switch r.URL.Path {
	case "/signup":
		if _, ok := f.users[creds.Username]; ok {
			reply(http.StatusBadRequest, "Username already exists")
			return
		}
		f.users[creds.Username] = creds.Password
		reply(http.StatusCreated, "Signup successful")
	case "/login":
		if pw, ok := f.users[creds.Username]; !ok || pw != creds.Password {
			reply(http.StatusBadRequest, "Invalid username or password")
			return
		}
		reply(http.StatusOK, "Login successful")
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newFakeClient(t *testing.T) (*fakeService, api.Client) {
	t.Helper()
	svc := &fakeService{users: map[string]string{}}
	srv := httptest.NewServer(svc)
	t.Cleanup(srv.Close)
	c, err := api.NewHTTPClient(srv.URL)
	require.NoError(t, err)
	return svc, c
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		form   Form
		fields []string
	}{
		{"login ok", Form{Mode: ModeLogin, Name: "ada", Password: "pw"}, nil},
		{"login missing password", Form{Mode: ModeLogin, Name: "ada"}, []string{"Password"}},
		{"login blank name", Form{Mode: ModeLogin, Name: "  ", Password: "pw"}, []string{"Name"}},
		{"login ignores email", Form{Mode: ModeLogin, Name: "ada", Password: "pw", Email: "nope"}, nil},
		{"signup ok", Form{Mode: ModeSignup, Name: "ada", Email: "ada@example.com", Password: "pw", ConfirmPassword: "pw"}, nil},
		{"signup bad email", Form{Mode: ModeSignup, Name: "ada", Email: "ada", Password: "pw", ConfirmPassword: "pw"}, []string{"Email"}},
		{"signup all missing", Form{Mode: ModeSignup}, []string{"Name", "Email", "Password", "ConfirmPassword"}},
		{"signup mismatch", Form{Mode: ModeSignup, Name: "ada", Email: "ada@example.com", Password: "pw", ConfirmPassword: "px"}, []string{"ConfirmPassword"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			require.Len(t, ve.Fields, len(tt.fields))
			for _, f := range tt.fields {
				assert.True(t, ve.Has(f), "expected %s to fail", f)
			}
		})
	}
}

func TestValidate_Messages(t *testing.T) {
	err := Form{Mode: ModeSignup, Name: "ada", Email: "ada@example.com", Password: "a", ConfirmPassword: "b"}.Validate()
	assert.EqualError(t, err, MsgPasswordMismatch)

	err = Form{Mode: ModeLogin, Password: "pw"}.Validate()
	assert.EqualError(t, err, "Name is a required field")
}

func TestSubmit_SignupThenLogin(t *testing.T) {
	svc, client := newFakeClient(t)
	sessions := session.NewMemory(session.Session{})
	ctx := context.Background()

	out, err := Submit(ctx, client, sessions, Form{
		Mode: ModeSignup, Name: "ada", Email: "ada@example.com", Password: "pw", ConfirmPassword: "pw",
	})
	require.NoError(t, err)
	assert.Equal(t, NextLogin, out.Next)
	assert.Equal(t, "Signup successful", out.Message)

	s, _ := sessions.Load(ctx)
	assert.False(t, s.Active(), "signup must not write the session")

	out, err = Submit(ctx, client, sessions, Form{Mode: ModeLogin, Name: "ada", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, NextQuiz, out.Next)
	assert.Equal(t, "ada", out.Session.Username)

	s, _ = sessions.Load(ctx)
	assert.Equal(t, "ada", s.Username)
	assert.Equal(t, 2, svc.hits)
}

func TestSubmit_RejectedLoginLeavesSession(t *testing.T) {
	_, client := newFakeClient(t)
	sessions := session.NewMemory(session.Session{Username: "grace"})
	ctx := context.Background()

	_, err := Submit(ctx, client, sessions, Form{Mode: ModeLogin, Name: "ada", Password: "pw"})
	require.Error(t, err)
	assert.Equal(t, "Invalid username or password", api.UserMessage(err))

	s, _ := sessions.Load(ctx)
	assert.Equal(t, "grace", s.Username)
}

func TestSubmit_DuplicateSignupSurfacesServerMessage(t *testing.T) {
	_, client := newFakeClient(t)
	sessions := session.NewMemory(session.Session{})
	form := Form{Mode: ModeSignup, Name: "ada", Email: "a@b.co", Password: "pw", ConfirmPassword: "pw"}

	_, err := Submit(context.Background(), client, sessions, form)
	require.NoError(t, err)
	_, err = Submit(context.Background(), client, sessions, form)
	assert.Equal(t, "Username already exists", api.UserMessage(err))
}

func TestSubmit_InvalidFormSendsNothing(t *testing.T) {
	mock := api.NewMockClient()
	sessions := session.NewMemory(session.Session{})

	_, err := Submit(context.Background(), mock, sessions, Form{Mode: ModeLogin, Name: "ada"})
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Empty(t, mock.Calls)
}

func TestModeToggle(t *testing.T) {
	assert.Equal(t, ModeSignup, ModeLogin.Toggle())
	assert.Equal(t, ModeLogin, ModeSignup.Toggle())
	assert.Equal(t, "Signup", ModeSignup.Label())
}
