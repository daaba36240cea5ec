package tui

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/MKhiriev/go-auth-service/internal/adapter"
	"github.com/MKhiriev/go-auth-service/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── fakes ────────────────────────────────────────────────────────────────────

type fakeServer struct {
	mu    sync.Mutex
	token string

	registerFn func(ctx context.Context, c models.Credentials) (models.UserResponse, error)
	loginFn    func(ctx context.Context, c models.LoginCredentials) (models.LoginResponse, error)
	meFn       func(ctx context.Context) (models.UserResponse, error)
}

func (f *fakeServer) SetToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeServer) Token() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token
}

func (f *fakeServer) Register(ctx context.Context, c models.Credentials) (models.UserResponse, error) {
	return f.registerFn(ctx, c)
}

func (f *fakeServer) Login(ctx context.Context, c models.LoginCredentials) (models.LoginResponse, error) {
	return f.loginFn(ctx, c)
}

func (f *fakeServer) Me(ctx context.Context) (models.UserResponse, error) {
	return f.meFn(ctx)
}

var alice = models.UserResponse{ID: "0190c1f2-0000-7000-8000-000000000001", Username: "alice", Email: "alice@example.com"}

// ── helpers ──────────────────────────────────────────────────────────────────

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyOf(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

// collect runs cmd and flattens batches into the produced messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

func findMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func newTestRoot(server adapter.ServerAdapter, copyFn func(string) error) RootModel {
	ctx := context.Background()
	pages := map[string]tea.Model{
		pageMenu:     NewMenuModel(),
		pageLogin:    NewLoginModel(ctx, server),
		pageRegister: NewRegisterModel(ctx, server),
		pageProfile:  NewProfileModel(ctx, server, copyFn),
	}
	return NewRootModel(pages, pageMenu, models.NewBuildInfo("v1.2.3", "", ""))
}

func update(t *testing.T, r RootModel, msg tea.Msg) (RootModel, tea.Cmd) {
	t.Helper()
	m, cmd := r.Update(msg)
	root, ok := m.(RootModel)
	require.True(t, ok)
	return root, cmd
}

func typeInto(t *testing.T, r RootModel, values ...string) RootModel {
	t.Helper()
	for i, v := range values {
		if i > 0 {
			r, _ = update(t, r, keyOf(tea.KeyTab))
		}
		r, _ = update(t, r, keyRunes(v))
	}
	return r
}

// ── root model ───────────────────────────────────────────────────────────────

func TestRootModel_QuitFromMenu(t *testing.T) {
	r := newTestRoot(&fakeServer{}, nil)

	r, cmd := update(t, r, keyRunes("q"))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, r.quitByUser)
}

func TestRootModel_QLetterIsTypedOnForms(t *testing.T) {
	r := newTestRoot(&fakeServer{}, nil)
	r, _ = update(t, r, NavigateTo{Page: pageLogin})

	r, _ = update(t, r, keyRunes("q"))

	assert.False(t, r.quitByUser)
	login := r.pages[pageLogin].(*LoginModel)
	assert.Equal(t, "q", login.form.value(0))
}

func TestRootModel_CtrlCQuitsAnywhere(t *testing.T) {
	r := newTestRoot(&fakeServer{}, nil)
	r, _ = update(t, r, NavigateTo{Page: pageRegister})

	r, cmd := update(t, r, keyOf(tea.KeyCtrlC))

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.True(t, r.quitByUser)
}

func TestRootModel_BuildInfoOverlay(t *testing.T) {
	r := newTestRoot(&fakeServer{}, nil)

	r, _ = update(t, r, keyRunes("v"))
	assert.True(t, r.showBuildInfo)
	assert.Contains(t, r.View(), "v1.2.3")
	assert.Contains(t, r.View(), "N/A")

	// keys other than esc are swallowed while the overlay is open
	r, cmd := update(t, r, keyOf(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.True(t, r.showBuildInfo)

	r, _ = update(t, r, keyOf(tea.KeyEsc))
	assert.False(t, r.showBuildInfo)
	assert.Contains(t, r.View(), "MAIN MENU")
}

func TestRootModel_Navigate(t *testing.T) {
	r := newTestRoot(&fakeServer{}, nil)

	r, cmd := update(t, r, NavigateTo{Page: "nowhere"})
	assert.Nil(t, cmd)
	assert.True(t, r.isMenuPage())

	r, _ = update(t, r, NavigateTo{Page: pageLogin})
	assert.Contains(t, r.View(), "LOG IN")

	r, cmd = update(t, r, NavigateTo{Page: pageMenu, Payload: Notice("User bob registered")})
	notice, ok := findMsg[Notice](collect(cmd))
	require.True(t, ok)

	r, _ = update(t, r, notice)
	assert.Contains(t, r.View(), "User bob registered")
}

// ── menu ─────────────────────────────────────────────────────────────────────

func TestMenuModel_Select(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want string
	}{
		{name: "first item", keys: nil, want: pageLogin},
		{name: "down once", keys: []tea.KeyMsg{keyOf(tea.KeyDown)}, want: pageRegister},
		{name: "vim down twice", keys: []tea.KeyMsg{keyRunes("j"), keyRunes("j")}, want: pageProfile},
		{name: "down past the end", keys: []tea.KeyMsg{keyOf(tea.KeyDown), keyOf(tea.KeyDown), keyOf(tea.KeyDown), keyOf(tea.KeyDown)}, want: pageProfile},
		{name: "up at the top", keys: []tea.KeyMsg{keyOf(tea.KeyUp)}, want: pageLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMenuModel()
			for _, k := range tt.keys {
				m.Update(k)
			}

			_, cmd := m.Update(keyOf(tea.KeyEnter))
			require.NotNil(t, cmd)
			assert.Equal(t, NavigateTo{Page: tt.want}, cmd())
		})
	}
}

// ── login ────────────────────────────────────────────────────────────────────

func TestLoginModel_RequiresBothFields(t *testing.T) {
	server := &fakeServer{loginFn: func(context.Context, models.LoginCredentials) (models.LoginResponse, error) {
		t.Fatal("login must not be called")
		return models.LoginResponse{}, nil
	}}
	r := newTestRoot(server, nil)
	r, _ = update(t, r, NavigateTo{Page: pageLogin})
	r = typeInto(t, r, "alice@example.com")

	r, cmd := update(t, r, keyOf(tea.KeyEnter))

	assert.Nil(t, cmd)
	assert.Contains(t, r.View(), "Email and password are required")
}

func TestLoginModel_Success(t *testing.T) {
	var got models.LoginCredentials
	server := &fakeServer{}
	server.loginFn = func(_ context.Context, c models.LoginCredentials) (models.LoginResponse, error) {
		got = c
		server.SetToken("jwt-token")
		return models.LoginResponse{Success: true, Token: "jwt-token", User: alice}, nil
	}
	server.meFn = func(context.Context) (models.UserResponse, error) { return alice, nil }

	r := newTestRoot(server, nil)
	r, _ = update(t, r, NavigateTo{Page: pageLogin})
	r = typeInto(t, r, " alice@example.com ", "secret1")

	r, cmd := update(t, r, keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)
	result, ok := cmd().(LoginResult)
	require.True(t, ok)
	require.NoError(t, result.Err)
	assert.Equal(t, models.LoginCredentials{Email: "alice@example.com", Password: "secret1"}, got)

	r, cmd = update(t, r, result)
	require.NotNil(t, cmd)
	nav := cmd().(NavigateTo)
	assert.Equal(t, pageProfile, nav.Page)

	// the profile page fetches the user on open
	r, cmd = update(t, r, nav)
	profile, ok := findMsg[ProfileResult](collect(cmd))
	require.True(t, ok)

	r, _ = update(t, r, profile)
	view := r.View()
	assert.Contains(t, view, "alice@example.com")
	assert.Contains(t, view, alice.ID)

	// the form is cleared for the next visit
	login := r.pages[pageLogin].(*LoginModel)
	assert.Empty(t, login.form.value(0))
	assert.Empty(t, login.form.value(1))
}

func TestLoginModel_ErrorIsShown(t *testing.T) {
	server := &fakeServer{loginFn: func(context.Context, models.LoginCredentials) (models.LoginResponse, error) {
		return models.LoginResponse{}, &adapter.APIError{StatusCode: http.StatusUnauthorized, Title: "Unauthorized", Details: "Invalid credentials"}
	}}
	r := newTestRoot(server, nil)
	r, _ = update(t, r, NavigateTo{Page: pageLogin})
	r = typeInto(t, r, "alice@example.com", "wrong-password")

	r, cmd := update(t, r, keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)

	r, cmd = update(t, r, cmd())
	assert.Nil(t, cmd)
	assert.Contains(t, r.View(), "Invalid credentials")
	assert.Contains(t, r.View(), "LOG IN")
}

func TestLoginModel_EscGoesBack(t *testing.T) {
	r := newTestRoot(&fakeServer{}, nil)
	r, _ = update(t, r, NavigateTo{Page: pageLogin})
	r = typeInto(t, r, "alice")

	_, cmd := update(t, r, keyOf(tea.KeyEsc))

	require.NotNil(t, cmd)
	assert.Equal(t, NavigateTo{Page: pageMenu}, cmd())
	assert.Empty(t, r.pages[pageLogin].(*LoginModel).form.value(0))
}

// ── register ─────────────────────────────────────────────────────────────────

func TestRegisterModel_RequiresSession(t *testing.T) {
	r := newTestRoot(&fakeServer{}, nil)
	r, _ = update(t, r, NavigateTo{Page: pageRegister})
	r = typeInto(t, r, "bob", "bob@example.com", "secret1")

	r, cmd := update(t, r, keyOf(tea.KeyEnter))

	assert.Nil(t, cmd)
	assert.Contains(t, r.View(), "log in first")
}

func TestRegisterModel_RequiresAllFields(t *testing.T) {
	server := &fakeServer{token: "jwt-token"}
	r := newTestRoot(server, nil)
	r, _ = update(t, r, NavigateTo{Page: pageRegister})
	r = typeInto(t, r, "bob", "bob@example.com")

	r, cmd := update(t, r, keyOf(tea.KeyEnter))

	assert.Nil(t, cmd)
	assert.Contains(t, r.View(), "are required")
}

func TestRegisterModel_Success(t *testing.T) {
	var got models.Credentials
	server := &fakeServer{token: "jwt-token"}
	server.registerFn = func(_ context.Context, c models.Credentials) (models.UserResponse, error) {
		got = c
		return models.UserResponse{ID: "id-2", Username: c.Username, Email: c.Email}, nil
	}

	r := newTestRoot(server, nil)
	r, _ = update(t, r, NavigateTo{Page: pageRegister})
	r = typeInto(t, r, "bob", "bob@example.com", "secret1")

	r, cmd := update(t, r, keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Contains(t, r.View(), "[Register...]")

	r, cmd = update(t, r, cmd())
	assert.Equal(t, models.Credentials{Username: "bob", Email: "bob@example.com", Password: "secret1"}, got)
	require.NotNil(t, cmd)

	nav := cmd().(NavigateTo)
	assert.Equal(t, NavigateTo{Page: pageMenu, Payload: Notice("User bob registered")}, nav)

	r, cmd = update(t, r, nav)
	notice, ok := findMsg[Notice](collect(cmd))
	require.True(t, ok)
	r, _ = update(t, r, notice)
	assert.Contains(t, r.View(), "User bob registered")
}

func TestRegisterModel_ConflictIsShown(t *testing.T) {
	server := &fakeServer{token: "jwt-token"}
	server.registerFn = func(context.Context, models.Credentials) (models.UserResponse, error) {
		return models.UserResponse{}, &adapter.APIError{StatusCode: http.StatusConflict, Title: "Conflict", Details: "username already exists"}
	}

	r := newTestRoot(server, nil)
	r, _ = update(t, r, NavigateTo{Page: pageRegister})
	r = typeInto(t, r, "alice", "other@example.com", "secret1")

	r, cmd := update(t, r, keyOf(tea.KeyEnter))
	require.NotNil(t, cmd)
	r, _ = update(t, r, cmd())

	assert.Contains(t, r.View(), "username already exists")
}

func TestRegisterModel_FocusCycles(t *testing.T) {
	m := NewRegisterModel(context.Background(), &fakeServer{})

	m.Update(keyOf(tea.KeyShiftTab))
	assert.Equal(t, 2, m.form.focus)

	m.Update(keyOf(tea.KeyTab))
	assert.Equal(t, 0, m.form.focus)
	assert.True(t, m.form.inputs[0].Focused())
	assert.False(t, m.form.inputs[2].Focused())
}

// ── profile ──────────────────────────────────────────────────────────────────

func TestProfileModel_NotLoggedIn(t *testing.T) {
	m := NewProfileModel(context.Background(), &fakeServer{}, nil)

	cmd := m.Init()

	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Not logged in")
}

func TestProfileModel_FetchError(t *testing.T) {
	server := &fakeServer{token: "jwt-token", meFn: func(context.Context) (models.UserResponse, error) {
		return models.UserResponse{}, &adapter.APIError{StatusCode: http.StatusForbidden, Title: "Forbidden", Details: "Token expired"}
	}}
	m := NewProfileModel(context.Background(), server, nil)

	cmd := m.Init()
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Loading")

	m.Update(cmd())
	assert.Contains(t, m.View(), "Token expired")
	assert.NotContains(t, m.View(), "Loading")
}

func TestProfileModel_Keys(t *testing.T) {
	var calls int
	server := &fakeServer{token: "jwt-token", meFn: func(context.Context) (models.UserResponse, error) {
		calls++
		return alice, nil
	}}

	var copied string
	m := NewProfileModel(context.Background(), server, func(s string) error {
		copied = s
		return nil
	})
	m.Update(m.Init()())

	t.Run("copy token", func(t *testing.T) {
		_, cmd := m.Update(keyRunes("c"))
		require.NotNil(t, cmd)
		m.Update(cmd())

		assert.Equal(t, "jwt-token", copied)
		assert.Contains(t, m.View(), "token copied")
	})

	t.Run("refresh", func(t *testing.T) {
		_, cmd := m.Update(keyRunes("r"))
		require.NotNil(t, cmd)
		m.Update(cmd())

		assert.Equal(t, 2, calls)
		assert.Contains(t, m.View(), "alice")
	})

	t.Run("esc", func(t *testing.T) {
		_, cmd := m.Update(keyOf(tea.KeyEsc))
		require.NotNil(t, cmd)
		assert.Equal(t, NavigateTo{Page: pageMenu}, cmd())
	})
}

func TestProfileModel_CopyFailure(t *testing.T) {
	server := &fakeServer{token: "jwt-token", meFn: func(context.Context) (models.UserResponse, error) { return alice, nil }}
	m := NewProfileModel(context.Background(), server, func(string) error {
		return errors.New("no clipboard utility")
	})

	_, cmd := m.Update(keyRunes("c"))
	require.NotNil(t, cmd)
	m.Update(cmd())

	assert.Contains(t, m.View(), "copy failed: no clipboard utility")
}

// ── helpers ──────────────────────────────────────────────────────────────────

func TestHumanizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "api error with details", err: &adapter.APIError{StatusCode: 409, Title: "Conflict", Details: "email already exists"}, want: "email already exists"},
		{name: "api error without details", err: &adapter.APIError{StatusCode: 500, Title: "Internal Server Error"}, want: "Internal Server Error"},
		{name: "connection refused", err: errors.New("Post \"http://localhost:3000/login\": dial tcp 127.0.0.1:3000: connect: connection refused"), want: "No network or the server is unavailable"},
		{name: "other", err: errors.New("boom"), want: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, humanizeError(tt.err))
		})
	}
}

func TestFitText(t *testing.T) {
	assert.Equal(t, "short", fitText("short", 10))
	assert.Equal(t, "abcdefg...", fitText(strings.Repeat("abcdefghij", 3), 10))
	assert.Equal(t, "ab", fitText("abcdef", 2))
	assert.Equal(t, "abc", fitText("abc", 0))
}
