package keycloak

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/codinghaytam/medical-registry-api/internal/config"
)

func testClient(serverURL string) *Client {
	return NewClient(config.KeycloakConfig{
		BaseURL:      serverURL,
		Realm:        "clinic",
		ClientID:     "registry-api",
		ClientSecret: "secret",
		Timeout:      5 * time.Second,
	})
}

func writeToken(w http.ResponseWriter, token string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"access_token": token,
		"expires_in":   300,
	})
}

func TestClient_CreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns_ID_From_Location", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/realms/clinic/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
			writeToken(w, "admin-token")
		})
		mux.HandleFunc("/admin/realms/clinic/users", func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer admin-token" {
				t.Errorf("Unexpected Authorization header %q", got)
			}
			w.Header().Set("Location", r.Host+"/admin/realms/clinic/users/kc-123")
			w.WriteHeader(http.StatusCreated)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		id, err := testClient(server.URL).CreateUser(ctx, UserRepresentation{Username: "hamid", Enabled: true})
		if err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if id != "kc-123" {
			t.Errorf("Expected id kc-123, got %q", id)
		}
	})

	t.Run("Conflict_Maps_To_ErrUserExists", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/realms/clinic/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
			writeToken(w, "admin-token")
		})
		mux.HandleFunc("/admin/realms/clinic/users", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		if _, err := testClient(server.URL).CreateUser(ctx, UserRepresentation{Username: "hamid"}); !errors.Is(err, ErrUserExists) {
			t.Errorf("Expected ErrUserExists, got %v", err)
		}
	})
}

func TestClient_AdminTokenLifecycle(t *testing.T) {
	ctx := context.Background()

	t.Run("Token_Is_Cached_Across_Calls", func(t *testing.T) {
		var tokenFetches int32
		mux := http.NewServeMux()
		mux.HandleFunc("/realms/clinic/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&tokenFetches, 1)
			writeToken(w, "admin-token")
		})
		mux.HandleFunc("/admin/realms/clinic/users/kc-1", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(UserRepresentation{ID: "kc-1"})
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		client := testClient(server.URL)
		for i := 0; i < 3; i++ {
			if _, err := client.GetUserByID(ctx, "kc-1"); err != nil {
				t.Fatalf("GetUserByID failed: %v", err)
			}
		}

		if got := atomic.LoadInt32(&tokenFetches); got != 1 {
			t.Errorf("Expected a single token fetch, got %d", got)
		}
	})

	t.Run("Retries_Once_On_401", func(t *testing.T) {
		var tokenFetches, adminCalls int32
		mux := http.NewServeMux()
		mux.HandleFunc("/realms/clinic/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
			n := atomic.AddInt32(&tokenFetches, 1)
			if n == 1 {
				writeToken(w, "stale-token")
				return
			}
			writeToken(w, "fresh-token")
		})
		mux.HandleFunc("/admin/realms/clinic/users/kc-1", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&adminCalls, 1)
			if r.Header.Get("Authorization") == "Bearer stale-token" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(UserRepresentation{ID: "kc-1"})
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		user, err := testClient(server.URL).GetUserByID(ctx, "kc-1")
		if err != nil {
			t.Fatalf("GetUserByID failed: %v", err)
		}
		if user.ID != "kc-1" {
			t.Errorf("Expected user kc-1, got %q", user.ID)
		}
		if got := atomic.LoadInt32(&adminCalls); got != 2 {
			t.Errorf("Expected exactly one retry, got %d admin calls", got)
		}
		if got := atomic.LoadInt32(&tokenFetches); got != 2 {
			t.Errorf("Expected a fresh token for the retry, got %d fetches", got)
		}
	})

	t.Run("Persistent_401_Is_Not_Retried_Again", func(t *testing.T) {
		var adminCalls int32
		mux := http.NewServeMux()
		mux.HandleFunc("/realms/clinic/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
			writeToken(w, "admin-token")
		})
		mux.HandleFunc("/admin/realms/clinic/users/kc-1", func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&adminCalls, 1)
			w.WriteHeader(http.StatusUnauthorized)
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		if _, err := testClient(server.URL).GetUserByID(ctx, "kc-1"); err == nil {
			t.Fatal("Expected an error on a persistent 401")
		}
		if got := atomic.LoadInt32(&adminCalls); got != 2 {
			t.Errorf("Expected exactly 2 admin calls, got %d", got)
		}
	})
}

func TestClient_FindUserByEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("Exact_Match", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/realms/clinic/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
			writeToken(w, "admin-token")
		})
		mux.HandleFunc("/admin/realms/clinic/users", func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Query().Get("email") != "h.alaoui@clinic.ma" || r.URL.Query().Get("exact") != "true" {
				t.Errorf("Unexpected query %q", r.URL.RawQuery)
			}
			json.NewEncoder(w).Encode([]UserRepresentation{{ID: "kc-9", Email: "h.alaoui@clinic.ma"}})
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		user, err := testClient(server.URL).FindUserByEmail(ctx, "h.alaoui@clinic.ma")
		if err != nil {
			t.Fatalf("FindUserByEmail failed: %v", err)
		}
		if user.ID != "kc-9" {
			t.Errorf("Expected user kc-9, got %q", user.ID)
		}
	})

	t.Run("Empty_Result_Is_Not_Found", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/realms/clinic/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
			writeToken(w, "admin-token")
		})
		mux.HandleFunc("/admin/realms/clinic/users", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]UserRepresentation{})
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		if _, err := testClient(server.URL).FindUserByEmail(ctx, "nobody@clinic.ma"); !errors.Is(err, ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})
}

func TestClient_Login(t *testing.T) {
	ctx := context.Background()

	login := func(status int, body interface{}) (*TokenResponse, error) {
		mux := http.NewServeMux()
		mux.HandleFunc("/realms/clinic/protocol/openid-connect/token", func(w http.ResponseWriter, r *http.Request) {
			if r.FormValue("grant_type") != "password" {
				t.Errorf("Expected the password grant, got %q", r.FormValue("grant_type"))
			}
			w.WriteHeader(status)
			if body != nil {
				json.NewEncoder(w).Encode(body)
			}
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		return testClient(server.URL).Login(ctx, "hamid", "pass123")
	}

	t.Run("Success", func(t *testing.T) {
		tokens, err := login(http.StatusOK, TokenResponse{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresIn:    300,
		})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if tokens.AccessToken != "access" || tokens.RefreshToken != "refresh" {
			t.Error("Expected the token pair from the provider")
		}
	})

	t.Run("Bad_Credentials", func(t *testing.T) {
		if _, err := login(http.StatusUnauthorized, nil); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("Provider_Down", func(t *testing.T) {
		if _, err := login(http.StatusBadGateway, nil); !errors.Is(err, ErrProviderUnavailable) {
			t.Errorf("Expected ErrProviderUnavailable, got %v", err)
		}
	})
}

func TestTokenManager_RefreshBeforeExpiry(t *testing.T) {
	var tokenFetches int32
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokenFetches, 1)
		writeToken(w, "token")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	tm := newTokenManager(server.URL+"/token", "registry-api", "secret", server.Client())

	current := time.Now()
	tm.now = func() time.Time { return current }

	if _, err := tm.Get(context.Background()); err != nil {
		t.Fatalf("Get failed: %v", err)
	}

	// Inside the safety window the cached token is reused.
	current = current.Add(200 * time.Second)
	if _, err := tm.Get(context.Background()); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got := atomic.LoadInt32(&tokenFetches); got != 1 {
		t.Fatalf("Expected the cached token, got %d fetches", got)
	}

	// Within 30s of expiry a refresh is forced even though the token is
	// technically still valid.
	current = current.Add(85 * time.Second)
	if _, err := tm.Get(context.Background()); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got := atomic.LoadInt32(&tokenFetches); got != 2 {
		t.Errorf("Expected a forced refresh near expiry, got %d fetches", got)
	}
}
