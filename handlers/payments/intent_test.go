package payments

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"logictraders-backend/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestCreatePaymentIntent_NotAuthenticated(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/payments/intent", CreatePaymentIntent)

	body, _ := json.Marshal(map[string]string{"productId": "2f87a1c3-9a77-4f70-a807-6dfbc4d4c6a5"})

	req, _ := http.NewRequest(http.MethodPost, "/payments/intent", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCreatePaymentIntent_MissingProductID(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/payments/intent", func(c *gin.Context) {
		c.Set("user_id", "user-uuid-1")
		CreatePaymentIntent(c)
	})

	req, _ := http.NewRequest(http.MethodPost, "/payments/intent", bytes.NewBuffer([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Contains(t, respBody["error"], "Field validation for 'ProductID' failed")
}

func TestCreatePaymentIntent_ProductInactive(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	// the catalog read filters on is_active, an inactive product behaves
	// like an absent one
	mock.ExpectQuery(`SELECT (.+) FROM "products"`).WillReturnError(gorm.ErrRecordNotFound)

	r := testutils.SetupTestRouter()
	r.POST("/payments/intent", func(c *gin.Context) {
		c.Set("user_id", "user-uuid-1")
		CreatePaymentIntent(c)
	})

	body, _ := json.Marshal(map[string]string{"productId": "2f87a1c3-9a77-4f70-a807-6dfbc4d4c6a5"})

	req, _ := http.NewRequest(http.MethodPost, "/payments/intent", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Product not found", respBody["error"])
	// no order row must have been written
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentIntent_CurrencyMismatch(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	productID := "2f87a1c3-9a77-4f70-a807-6dfbc4d4c6a5"
	now := time.Now()

	productRows := mock.NewRows([]string{"id", "name", "price", "currency", "type", "is_active", "created_at", "updated_at"}).
		AddRow(productID, "Scalping Bot", 199.00, "USD", "bot", true, now, now)
	mock.ExpectQuery(`SELECT (.+) FROM "products"`).WillReturnRows(productRows)

	r := testutils.SetupTestRouter()
	r.POST("/payments/intent", func(c *gin.Context) {
		c.Set("user_id", "user-uuid-1")
		CreatePaymentIntent(c)
	})

	body, _ := json.Marshal(map[string]string{
		"productId": productID,
		"currency":  "EUR",
	})

	req, _ := http.NewRequest(http.MethodPost, "/payments/intent", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "Currency does not match the product currency", respBody["error"])
	// the price cannot be relabeled, no order is written
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentIntent_MatchingCurrencyCaseInsensitive(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	productID := "2f87a1c3-9a77-4f70-a807-6dfbc4d4c6a5"
	now := time.Now()

	productRows := mock.NewRows([]string{"id", "name", "price", "currency", "type", "is_active", "created_at", "updated_at"}).
		AddRow(productID, "Scalping Bot", 199.00, "USD", "bot", true, now, now)
	mock.ExpectQuery(`SELECT (.+) FROM "products"`).WillReturnRows(productRows)

	// "usd" for a USD product passes the currency check and proceeds to
	// the access guard
	accessRows := mock.NewRows([]string{"id", "user_id", "product_id", "is_active"}).
		AddRow("access-uuid-1", "user-uuid-1", productID, true)
	mock.ExpectQuery(`SELECT (.+) FROM "user_access"`).WillReturnRows(accessRows)

	r := testutils.SetupTestRouter()
	r.POST("/payments/intent", func(c *gin.Context) {
		c.Set("user_id", "user-uuid-1")
		CreatePaymentIntent(c)
	})

	body, _ := json.Marshal(map[string]string{
		"productId": productID,
		"currency":  "usd",
	})

	req, _ := http.NewRequest(http.MethodPost, "/payments/intent", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "You already have access to this product", respBody["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentIntent_AlreadyHasAccess(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	productID := "2f87a1c3-9a77-4f70-a807-6dfbc4d4c6a5"
	now := time.Now()

	productRows := mock.NewRows([]string{"id", "name", "price", "currency", "type", "is_active", "created_at", "updated_at"}).
		AddRow(productID, "Scalping Bot", 199.00, "USD", "bot", true, now, now)
	mock.ExpectQuery(`SELECT (.+) FROM "products"`).WillReturnRows(productRows)

	accessRows := mock.NewRows([]string{"id", "user_id", "product_id", "is_active"}).
		AddRow("access-uuid-1", "user-uuid-1", productID, true)
	mock.ExpectQuery(`SELECT (.+) FROM "user_access"`).WillReturnRows(accessRows)

	r := testutils.SetupTestRouter()
	r.POST("/payments/intent", func(c *gin.Context) {
		c.Set("user_id", "user-uuid-1")
		CreatePaymentIntent(c)
	})

	body, _ := json.Marshal(map[string]string{"productId": productID})

	req, _ := http.NewRequest(http.MethodPost, "/payments/intent", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var respBody map[string]string
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Equal(t, "You already have access to this product", respBody["error"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
