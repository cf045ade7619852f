package access

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"logictraders-backend/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func TestGetMyAccess_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	now := time.Now()
	rows := mock.NewRows([]string{"id", "user_id", "product_id", "product_type", "is_active", "granted_by", "order_id", "created_at", "updated_at"}).
		AddRow("access-uuid-1", "user-uuid-1", "product-uuid-1", "course", true, "payment", "order-uuid-1", now, now).
		AddRow("access-uuid-2", "user-uuid-1", "product-uuid-2", "signal", true, "manual", "", now, now)

	mock.ExpectQuery(`SELECT (.+) FROM "user_access"`).WillReturnRows(rows)

	r := testutils.SetupTestRouter()
	r.GET("/access", func(c *gin.Context) {
		c.Set("user_id", "user-uuid-1")
		GetMyAccess(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/access", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody []map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.Len(t, respBody, 2)
	assert.Equal(t, "product-uuid-1", respBody[0]["productId"])
}

func TestGetMyAccess_NotAuthenticated(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.GET("/access", GetMyAccess)

	req, _ := http.NewRequest(http.MethodGet, "/access", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCheckAccess_HasAccess(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	productID := "2f87a1c3-9a77-4f70-a807-6dfbc4d4c6a5"

	rows := mock.NewRows([]string{"id", "user_id", "product_id", "is_active"}).
		AddRow("access-uuid-1", "user-uuid-1", productID, true)
	mock.ExpectQuery(`SELECT (.+) FROM "user_access"`).WillReturnRows(rows)

	r := testutils.SetupTestRouter()
	r.GET("/access/:productId", func(c *gin.Context) {
		c.Set("user_id", "user-uuid-1")
		CheckAccess(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/access/"+productID, nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]bool
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.True(t, respBody["hasAccess"])
}

func TestCheckAccess_NoAccess(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	productID := "2f87a1c3-9a77-4f70-a807-6dfbc4d4c6a5"

	mock.ExpectQuery(`SELECT (.+) FROM "user_access"`).WillReturnError(gorm.ErrRecordNotFound)

	r := testutils.SetupTestRouter()
	r.GET("/access/:productId", func(c *gin.Context) {
		c.Set("user_id", "user-uuid-1")
		CheckAccess(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/access/"+productID, nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var respBody map[string]bool
	json.Unmarshal(resp.Body.Bytes(), &respBody)
	assert.False(t, respBody["hasAccess"])
}

func TestCheckAccess_DatabaseError(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	productID := "2f87a1c3-9a77-4f70-a807-6dfbc4d4c6a5"

	// a broken connection must not read as "no access"
	mock.ExpectQuery(`SELECT (.+) FROM "user_access"`).WillReturnError(errors.New("connection refused"))

	r := testutils.SetupTestRouter()
	r.GET("/access/:productId", func(c *gin.Context) {
		c.Set("user_id", "user-uuid-1")
		CheckAccess(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/access/"+productID, nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.NotContains(t, resp.Body.String(), "hasAccess")
}

func TestCheckAccess_InvalidProductID(t *testing.T) {
	r := testutils.SetupTestRouter()
	r.GET("/access/:productId", func(c *gin.Context) {
		c.Set("user_id", "user-uuid-1")
		CheckAccess(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/access/not-a-uuid", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
