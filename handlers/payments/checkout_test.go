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

func TestCreateCheckoutSession_NotAuthenticated(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.POST("/payments/checkout", CreateCheckoutSession)

	body, _ := json.Marshal(map[string]string{"productId": "2f87a1c3-9a77-4f70-a807-6dfbc4d4c6a5"})

	req, _ := http.NewRequest(http.MethodPost, "/payments/checkout", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCreateCheckoutSession_ProductNotFound(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "products"`).WillReturnError(gorm.ErrRecordNotFound)

	r := testutils.SetupTestRouter()
	r.POST("/payments/checkout", func(c *gin.Context) {
		c.Set("user_id", "user-uuid-1")
		CreateCheckoutSession(c)
	})

	body, _ := json.Marshal(map[string]string{"productId": "2f87a1c3-9a77-4f70-a807-6dfbc4d4c6a5"})

	req, _ := http.NewRequest(http.MethodPost, "/payments/checkout", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateCheckoutSession_AlreadyHasAccess(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	productID := "2f87a1c3-9a77-4f70-a807-6dfbc4d4c6a5"
	now := time.Now()

	productRows := mock.NewRows([]string{"id", "name", "price", "currency", "type", "is_active", "created_at", "updated_at"}).
		AddRow(productID, "Swing Signals", 29.99, "USD", "signal", true, now, now)
	mock.ExpectQuery(`SELECT (.+) FROM "products"`).WillReturnRows(productRows)

	accessRows := mock.NewRows([]string{"id", "user_id", "product_id", "is_active"}).
		AddRow("access-uuid-1", "user-uuid-1", productID, true)
	mock.ExpectQuery(`SELECT (.+) FROM "user_access"`).WillReturnRows(accessRows)

	r := testutils.SetupTestRouter()
	r.POST("/payments/checkout", func(c *gin.Context) {
		c.Set("user_id", "user-uuid-1")
		CreateCheckoutSession(c)
	})

	body, _ := json.Marshal(map[string]string{"productId": productID})

	req, _ := http.NewRequest(http.MethodPost, "/payments/checkout", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
