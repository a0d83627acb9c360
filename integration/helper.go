package integration

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/haiquanvn/aquamon/internal/api"
	"github.com/haiquanvn/aquamon/internal/apitest"
	"github.com/haiquanvn/aquamon/internal/config"
	"github.com/haiquanvn/aquamon/internal/session"
)

// TestEnv wires a fake backend, a real client and a file session store
// together the way the binaries do.
type TestEnv struct {
	Backend *apitest.Server
	Client  *api.Client
	Store   *session.FileStore
	Conf    config.API
	// SessionDir allows reopening the store to check persistence.
	SessionDir string
}

// SetupTestEnv boots the fake backend on an httptest server and hands back
// a client configured against it. Everything is torn down with the test.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	backend := apitest.New()
	server := httptest.NewServer(backend.Handler())
	t.Cleanup(server.Close)

	dir := t.TempDir()
	store, err := session.NewFileStore(dir)
	if err != nil {
		t.Fatalf("Could not create session store: %s", err)
	}

	conf := config.API{
		BaseURL:       server.URL,
		Timeout:       5 * time.Second,
		UploadTimeout: 10 * time.Second,
		BatchTimeout:  10 * time.Second,
	}

	return &TestEnv{
		Backend:    backend,
		Client:     api.New(conf, store),
		Store:      store,
		Conf:       conf,
		SessionDir: dir,
	}
}

// ReopenStore simulates an app restart by building a fresh store over the
// same directory.
func (env *TestEnv) ReopenStore(t *testing.T) *session.FileStore {
	t.Helper()
	store, err := session.NewFileStore(env.SessionDir)
	if err != nil {
		t.Fatalf("Could not reopen session store: %s", err)
	}
	return store
}
