package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setMomoTestEnv(t *testing.T, baseURL string) {
	t.Setenv("MOMO_BASE_URL", baseURL)
	t.Setenv("MOMO_API_USER", "api-user")
	t.Setenv("MOMO_API_KEY", "api-key")
	t.Setenv("MOMO_SUBSCRIPTION_KEY", "subscription-key")
	t.Setenv("MOMO_TARGET_ENV", "sandbox")
}

func TestMomoConfigured(t *testing.T) {
	t.Setenv("MOMO_API_USER", "")
	t.Setenv("MOMO_API_KEY", "")
	t.Setenv("MOMO_SUBSCRIPTION_KEY", "")
	assert.False(t, MomoConfigured())

	setMomoTestEnv(t, "http://localhost")
	assert.True(t, MomoConfigured())
}

func TestRequestMomoPayment_Success(t *testing.T) {
	var gotReference string
	var gotBody momoRequestToPayBody

	mux := http.NewServeMux()
	mux.HandleFunc("/collection/token/", func(w http.ResponseWriter, r *http.Request) {
		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "api-user", user)
		json.NewEncoder(w).Encode(momoTokenResponse{AccessToken: "test-token", TokenType: "access_token", ExpiresIn: 3600})
	})
	mux.HandleFunc("/collection/v1_0/requesttopay", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "sandbox", r.Header.Get("X-Target-Environment"))
		gotReference = r.Header.Get("X-Reference-Id")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusAccepted)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()
	setMomoTestEnv(t, srv.URL)

	err := RequestMomoPayment("ref-uuid-1", 35000, "UGX", "order-uuid-1", "256770123456", "LogicTraders purchase")

	assert.NoError(t, err)
	assert.Equal(t, "ref-uuid-1", gotReference)
	assert.Equal(t, "35000.00", gotBody.Amount)
	assert.Equal(t, "UGX", gotBody.Currency)
	assert.Equal(t, "order-uuid-1", gotBody.ExternalID)
	assert.Equal(t, "MSISDN", gotBody.Payer.PartyIDType)
	assert.Equal(t, "256770123456", gotBody.Payer.PartyID)
}

func TestRequestMomoPayment_ProviderRejects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/collection/token/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(momoTokenResponse{AccessToken: "test-token"})
	})
	mux.HandleFunc("/collection/v1_0/requesttopay", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"Duplicated reference id"}`))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()
	setMomoTestEnv(t, srv.URL)

	err := RequestMomoPayment("ref-uuid-1", 35000, "UGX", "order-uuid-1", "256770123456", "note")

	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "requesttopay"))
}

func TestRequestMomoPayment_MissingCredentials(t *testing.T) {
	t.Setenv("MOMO_API_USER", "")
	t.Setenv("MOMO_API_KEY", "")
	t.Setenv("MOMO_SUBSCRIPTION_KEY", "")

	err := RequestMomoPayment("ref-uuid-1", 35000, "UGX", "order-uuid-1", "256770123456", "note")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "credentials")
}

func TestGetMomoTransactionStatus_Successful(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/collection/token/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(momoTokenResponse{AccessToken: "test-token"})
	})
	mux.HandleFunc("/collection/v1_0/requesttopay/ref-uuid-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(MomoTransactionStatus{
			Amount:     "35000.00",
			Currency:   "UGX",
			ExternalID: "order-uuid-1",
			Status:     MomoStatusSuccessful,
		})
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()
	setMomoTestEnv(t, srv.URL)

	status, err := GetMomoTransactionStatus("ref-uuid-1")

	assert.NoError(t, err)
	assert.Equal(t, MomoStatusSuccessful, status.Status)
	assert.Equal(t, "order-uuid-1", status.ExternalID)
}

func TestGetMomoTransactionStatus_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/collection/token/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(momoTokenResponse{AccessToken: "test-token"})
	})
	mux.HandleFunc("/collection/v1_0/requesttopay/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()
	setMomoTestEnv(t, srv.URL)

	status, err := GetMomoTransactionStatus("unknown-ref")

	assert.Nil(t, status)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
