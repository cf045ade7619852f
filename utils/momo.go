package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

// MTN MoMo collection API client. Credentials come from the environment:
// MOMO_API_USER / MOMO_API_KEY authenticate the token call,
// MOMO_SUBSCRIPTION_KEY is the product subscription key.
var (
	momoBaseURLEnv         = "MOMO_BASE_URL"
	momoAPIUserEnv         = "MOMO_API_USER"
	momoAPIKeyEnv          = "MOMO_API_KEY"
	momoSubscriptionKeyEnv = "MOMO_SUBSCRIPTION_KEY"
	momoTargetEnvEnv       = "MOMO_TARGET_ENV"

	momoDefaultBaseURL   = "https://sandbox.momodeveloper.mtn.com"
	momoDefaultTargetEnv = "sandbox"

	momoHTTPClient = &http.Client{Timeout: 30 * time.Second}
)

type momoTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type momoRequestToPayBody struct {
	Amount       string    `json:"amount"`
	Currency     string    `json:"currency"`
	ExternalID   string    `json:"externalId"`
	Payer        momoPayer `json:"payer"`
	PayerMessage string    `json:"payerMessage"`
	PayeeNote    string    `json:"payeeNote"`
}

type momoPayer struct {
	PartyIDType string `json:"partyIdType"`
	PartyID     string `json:"partyId"`
}

// MomoTransactionStatus is the provider-side view of a push payment.
type MomoTransactionStatus struct {
	Amount                 string    `json:"amount"`
	Currency               string    `json:"currency"`
	ExternalID             string    `json:"externalId"`
	Payer                  momoPayer `json:"payer"`
	Status                 string    `json:"status"`
	Reason                 string    `json:"reason,omitempty"`
	FinancialTransactionID string    `json:"financialTransactionId,omitempty"`
}

const (
	MomoStatusPending    = "PENDING"
	MomoStatusSuccessful = "SUCCESSFUL"
	MomoStatusFailed     = "FAILED"
)

func momoBaseURL() string {
	if url := os.Getenv(momoBaseURLEnv); url != "" {
		return url
	}
	return momoDefaultBaseURL
}

func momoTargetEnv() string {
	if env := os.Getenv(momoTargetEnvEnv); env != "" {
		return env
	}
	return momoDefaultTargetEnv
}

// MomoConfigured reports whether the MoMo credentials are present.
func MomoConfigured() bool {
	return os.Getenv(momoAPIUserEnv) != "" &&
		os.Getenv(momoAPIKeyEnv) != "" &&
		os.Getenv(momoSubscriptionKeyEnv) != ""
}

func momoAccessToken() (string, error) {
	req, err := http.NewRequest("POST", momoBaseURL()+"/collection/token/", nil)
	if err != nil {
		return "", fmt.Errorf("error creating token request: %v", err)
	}
	req.SetBasicAuth(os.Getenv(momoAPIUserEnv), os.Getenv(momoAPIKeyEnv))
	req.Header.Set("Ocp-Apim-Subscription-Key", os.Getenv(momoSubscriptionKeyEnv))

	resp, err := momoHTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error requesting MoMo token: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("MoMo token error: status=%d, body=%s", resp.StatusCode, string(body))
	}

	var tokenResp momoTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", fmt.Errorf("error decoding MoMo token response: %v", err)
	}
	if tokenResp.AccessToken == "" {
		return "", fmt.Errorf("empty access token in MoMo response")
	}
	return tokenResp.AccessToken, nil
}

// RequestMomoPayment submits a push payment (requesttopay) for the given
// reference id. The payer sees a confirmation prompt on their phone; the
// call returns as soon as the provider accepts the request.
func RequestMomoPayment(referenceID string, amount float64, currency string, externalID string, msisdn string, note string) error {
	if !MomoConfigured() {
		return fmt.Errorf("MoMo credentials are required in environment variables")
	}

	token, err := momoAccessToken()
	if err != nil {
		return err
	}

	body := momoRequestToPayBody{
		Amount:     strconv.FormatFloat(amount, 'f', 2, 64),
		Currency:   currency,
		ExternalID: externalID,
		Payer: momoPayer{
			PartyIDType: "MSISDN",
			PartyID:     msisdn,
		},
		PayerMessage: note,
		PayeeNote:    note,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("error encoding requesttopay body: %v", err)
	}

	req, err := http.NewRequest("POST", momoBaseURL()+"/collection/v1_0/requesttopay", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("error creating requesttopay request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Reference-Id", referenceID)
	req.Header.Set("X-Target-Environment", momoTargetEnv())
	req.Header.Set("Ocp-Apim-Subscription-Key", os.Getenv(momoSubscriptionKeyEnv))
	req.Header.Set("Content-Type", "application/json")

	resp, err := momoHTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("error calling requesttopay: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("MoMo requesttopay error: status=%d, body=%s", resp.StatusCode, string(respBody))
	}
	return nil
}

// GetMomoTransactionStatus fetches the authoritative status of a push
// payment by its reference id.
func GetMomoTransactionStatus(referenceID string) (*MomoTransactionStatus, error) {
	if !MomoConfigured() {
		return nil, fmt.Errorf("MoMo credentials are required in environment variables")
	}

	token, err := momoAccessToken()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("GET", momoBaseURL()+"/collection/v1_0/requesttopay/"+referenceID, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating status request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Target-Environment", momoTargetEnv())
	req.Header.Set("Ocp-Apim-Subscription-Key", os.Getenv(momoSubscriptionKeyEnv))

	resp, err := momoHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling status endpoint: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("MoMo transaction not found")
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("MoMo status error: status=%d, body=%s", resp.StatusCode, string(respBody))
	}

	var status MomoTransactionStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("error decoding MoMo status response: %v", err)
	}
	return &status, nil
}
