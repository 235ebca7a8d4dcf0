package dukcapil

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nusabank/onboarding-api/pkg/logger"
)

func newTestClient(baseURL string) *Client {
	return NewClient(baseURL, "/verify-nik", "/check-nik", 2*time.Second, logger.Nop())
}

func TestVerifyIdentity_Valida(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/verify-nik", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "3201234567890001", req["nik"])
		assert.Equal(t, "Budi Santoso", req["namaLengkap"])
		assert.Equal(t, "1995-04-12", req["tanggalLahir"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(VerificationOutcome{
			Valid:   true,
			Message: "Data valid",
			Data: &KTPData{
				FullName:   "BUDI SANTOSO",
				BirthPlace: "BOGOR",
				BirthDate:  "1995-04-12",
				Gender:     "LAKI-LAKI",
				Religion:   "ISLAM",
			},
		})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	out := c.VerifyIdentity(context.Background(), "3201234567890001", "Budi Santoso",
		time.Date(1995, time.April, 12, 0, 0, 0, 0, time.UTC))

	assert.True(t, out.Valid)
	require.NotNil(t, out.Data)
	assert.Equal(t, "BUDI SANTOSO", out.Data.FullName)
}

func TestVerifyIdentity_NoValida(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(VerificationOutcome{Valid: false, Message: "Data tidak cocok"})
	}))
	defer srv.Close()

	out := newTestClient(srv.URL).VerifyIdentity(context.Background(), "3201234567890001", "Otro Nombre",
		time.Date(1995, time.April, 12, 0, 0, 0, 0, time.UTC))

	assert.False(t, out.Valid)
	assert.Equal(t, "Data tidak cocok", out.Message)
	assert.Nil(t, out.Data)
}

// Errores 5xx del servicio se convierten en resultado negativo, nunca en error.
func TestVerifyIdentity_ErrorInterno(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	out := newTestClient(srv.URL).VerifyIdentity(context.Background(), "3201234567890001", "Budi",
		time.Date(1995, time.April, 12, 0, 0, 0, 0, time.UTC))

	assert.False(t, out.Valid)
	assert.Contains(t, out.Message, "error internal")
}

// Servicio inaccesible: resultado negativo con la URL en el mensaje.
func TestVerifyIdentity_Inaccesible(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // cerrado a propósito

	out := newTestClient(srv.URL).VerifyIdentity(context.Background(), "3201234567890001", "Budi",
		time.Date(1995, time.April, 12, 0, 0, 0, 0, time.UTC))

	assert.False(t, out.Valid)
	assert.Contains(t, out.Message, "tidak dapat diakses")
	assert.Contains(t, out.Message, srv.URL)
}

func TestNIKExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/check-nik", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]bool{"exists": req["nik"] == "3201234567890001"})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	assert.True(t, c.NIKExists(context.Background(), "3201234567890001"))
	assert.False(t, c.NIKExists(context.Background(), "3201234567890002"))
}

func TestNIKExists_FalloRetornaFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	assert.False(t, newTestClient(srv.URL).NIKExists(context.Background(), "3201234567890001"))
}

func TestIsHealthy(t *testing.T) {
	status := "OK"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": status})
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	assert.True(t, c.IsHealthy(context.Background()))

	status = "DEGRADED"
	assert.False(t, c.IsHealthy(context.Background()))
}

func TestIsHealthy_ServicioCaido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	assert.False(t, newTestClient(srv.URL).IsHealthy(context.Background()))
}
