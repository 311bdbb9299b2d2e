package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markoswell/optivest/internal/api"
)

func newServer(t *testing.T, routes func(r chi.Router)) (*httptest.Server, *api.Client) {
	t.Helper()

	router := chi.NewRouter()
	routes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return srv, api.New(srv.URL, 5*time.Second)
}

func TestClient_GetDecodesEnvelope(t *testing.T) {
	_, client := newServer(t, func(r chi.Router) {
		r.Get("/api/v1/plans", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"success","data":{"plans":[{"name":"Starter"},{"name":"Pro"}]}}`))
		})
	})

	var out struct {
		Plans []struct {
			Name string `json:"name"`
		} `json:"plans"`
	}

	err := client.Get(context.Background(), "/api/v1/plans", &out)

	require.NoError(t, err)
	require.Len(t, out.Plans, 2)
	assert.Equal(t, "Starter", out.Plans[0].Name)
}

func TestClient_AttachesCredentialsAndRequestID(t *testing.T) {
	var gotAuth, gotReqID string

	_, client := newServer(t, func(r chi.Router) {
		r.Get("/api/v1/users/me", func(w http.ResponseWriter, req *http.Request) {
			gotAuth = req.Header.Get("Authorization")
			gotReqID = req.Header.Get("X-Request-Id")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"success","data":{}}`))
		})
	})

	client.SetToken("token-123")
	require.NoError(t, client.Get(context.Background(), "/api/v1/users/me", nil))

	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.NotEmpty(t, gotReqID)
}

func TestClient_ServerRejectionBecomesError(t *testing.T) {
	_, client := newServer(t, func(r chi.Router) {
		r.Post("/api/v1/users/login", func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status":"fail","message":"Incorrect email or password","errors":[{"field":"password","message":"required"}]}`))
		})
	})

	err := client.Post(context.Background(), "/api/v1/users/login", map[string]string{"email": "x"}, nil)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Incorrect email or password", apiErr.Message)
	assert.Equal(t, "required", apiErr.FieldMessage("password"))
}

func TestClient_UnstructuredFailureGetsGenericMessage(t *testing.T) {
	_, client := newServer(t, func(r chi.Router) {
		r.Get("/api/v1/plans", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream unavailable"))
		})
	})

	err := client.Get(context.Background(), "/api/v1/plans", nil)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Message)
}

func TestClient_PostFormSendsMultipartAttachment(t *testing.T) {
	var (
		gotAmount  string
		gotContent []byte
	)

	_, client := newServer(t, func(r chi.Router) {
		r.Post("/api/v1/users/me/transactions", func(w http.ResponseWriter, req *http.Request) {
			require.NoError(t, req.ParseMultipartForm(1<<20))
			gotAmount = req.FormValue("amount")

			file, _, err := req.FormFile("receipt")
			require.NoError(t, err)
			defer file.Close()

			buf := make([]byte, 16)
			n, _ := file.Read(buf)
			gotContent = buf[:n]

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"status": "success",
				"data":   map[string]any{"transaction": map[string]any{"reference": "TX-1"}},
			})
		})
	})

	var out struct {
		Transaction struct {
			Reference string `json:"reference"`
		} `json:"transaction"`
	}

	err := client.PostForm(context.Background(), "/api/v1/users/me/transactions",
		map[string]string{"amount": "500"},
		&api.Attachment{Field: "receipt", FileName: "proof.png", Content: []byte("png-bytes")},
		&out,
	)

	require.NoError(t, err)
	assert.Equal(t, "500", gotAmount)
	assert.Equal(t, []byte("png-bytes"), gotContent)
	assert.Equal(t, "TX-1", out.Transaction.Reference)
}

func TestClient_DeleteAcceptsNoContent(t *testing.T) {
	_, client := newServer(t, func(r chi.Router) {
		r.Delete("/api/v1/plans/{id}", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	})

	err := client.Delete(context.Background(), "/api/v1/plans/abc")

	assert.NoError(t, err)
}

func TestClient_TransportFailureIsNotAPIError(t *testing.T) {
	srv, client := newServer(t, func(r chi.Router) {})
	srv.Close()

	err := client.Get(context.Background(), "/api/v1/plans", nil)

	require.Error(t, err)

	var apiErr *api.Error
	assert.False(t, errors.As(err, &apiErr))
}
