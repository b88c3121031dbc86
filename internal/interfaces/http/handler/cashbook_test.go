package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/printshop/backend/internal/application/cashbook"
	"github.com/printshop/backend/internal/infrastructure/persistence"
	"github.com/printshop/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newCashbookEngine(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.CashBalanceModel{},
		&models.CashMovementModel{},
	))

	service := cashbook.NewService(
		persistence.NewGormCashBalanceRepository(db),
		persistence.NewGormCashMovementRepository(db),
		persistence.NewUnitOfWork(db),
	)

	engine := gin.New()
	NewCashbookHandler(service).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestCashbookHandler_BalanceLifecycle(t *testing.T) {
	engine := newCashbookEngine(t)

	w := doJSON(t, engine, http.MethodGet, "/api/v1/cashbook/balance", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"cash_amount":"0"`)

	w = doJSON(t, engine, http.MethodPut, "/api/v1/cashbook/balance",
		`{"cash_amount":"500","bank_amount":"1500"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			CashAmount string `json:"cash_amount"`
			BankAmount string `json:"bank_amount"`
			Total      string `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "500", body.Data.CashAmount)
	assert.Equal(t, "1500", body.Data.BankAmount)
	assert.Equal(t, "2000", body.Data.Total)
}

func TestCashbookHandler_Transfer(t *testing.T) {
	engine := newCashbookEngine(t)
	doJSON(t, engine, http.MethodPut, "/api/v1/cashbook/balance",
		`{"cash_amount":"300","bank_amount":"100"}`)

	w := doJSON(t, engine, http.MethodPost, "/api/v1/cashbook/transfers",
		`{"from":"cash","to":"bank","amount":"120"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"cash_amount":"180"`)
	assert.Contains(t, w.Body.String(), `"bank_amount":"220"`)

	t.Run("same account is a business rule violation", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/cashbook/transfers",
			`{"from":"cash","to":"cash","amount":"10"}`)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "SAME_ACCOUNT_TRANSFER")
	})

	t.Run("unknown source fails binding", func(t *testing.T) {
		w := doJSON(t, engine, http.MethodPost, "/api/v1/cashbook/transfers",
			`{"from":"wallet","to":"bank","amount":"10"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "BAD_REQUEST")
	})
}

func TestCashbookHandler_MovementListMeta(t *testing.T) {
	engine := newCashbookEngine(t)
	doJSON(t, engine, http.MethodPut, "/api/v1/cashbook/balance",
		`{"cash_amount":"100","bank_amount":"200"}`)

	w := doJSON(t, engine, http.MethodGet, "/api/v1/cashbook/movements", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Meta struct {
			Total    int64 `json:"total"`
			Page     int   `json:"page"`
			PageSize int   `json:"page_size"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	// seeding writes one initial movement per account
	assert.Equal(t, int64(2), body.Meta.Total)
	assert.Equal(t, 1, body.Meta.Page)
	assert.Equal(t, 20, body.Meta.PageSize)
}

func TestCashbookHandler_Reconciliation(t *testing.T) {
	engine := newCashbookEngine(t)
	doJSON(t, engine, http.MethodPut, "/api/v1/cashbook/balance",
		`{"cash_amount":"100","bank_amount":"200"}`)

	w := doJSON(t, engine, http.MethodGet, "/api/v1/cashbook/reconciliation", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "false")
}
