// internal/utils/pagination_test.go
package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func paramsFromQuery(query string) PaginationParams {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return GetPaginationParams(c)
}

func TestGetPaginationParamsDefaults(t *testing.T) {
	params := paramsFromQuery("")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, "created_at", params.Sort)
	assert.Equal(t, "desc", params.Order)
}

func TestGetPaginationParamsClampsBadValues(t *testing.T) {
	params := paramsFromQuery("page=0&limit=500&order=sideways")

	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, "desc", params.Order)
}

func TestGetPaginationParamsPassesThroughValid(t *testing.T) {
	params := paramsFromQuery("page=3&limit=50&sort=price&order=asc&search=laptop&category=phones")

	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 50, params.Limit)
	assert.Equal(t, "price", params.Sort)
	assert.Equal(t, "asc", params.Order)
	assert.Equal(t, "laptop", params.Search)
	assert.Equal(t, "phones", params.Category)
}

func sortClause(t *testing.T, params PaginationParams, allowed []string) string {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{DryRun: true})
	require.NoError(t, err)

	var rows []map[string]interface{}
	tx := ApplySort(db.Table("products"), params, allowed).Find(&rows)
	return tx.Statement.SQL.String()
}

func TestApplySortHonorsAllowedColumn(t *testing.T) {
	sql := sortClause(t, PaginationParams{Sort: "price", Order: "asc"}, []string{"price", "name"})
	assert.Contains(t, sql, "ORDER BY price asc")
}

func TestApplySortFallsBackForUnknownColumn(t *testing.T) {
	sql := sortClause(t, PaginationParams{Sort: "password_hash", Order: "desc"}, []string{"price", "name"})
	assert.Contains(t, sql, "ORDER BY created_at desc")
}

func TestCreatePaginationResult(t *testing.T) {
	result := CreatePaginationResult([]string{"a", "b"}, 45, PaginationParams{Page: 2, Limit: 20})

	assert.Equal(t, 2, result.Page)
	assert.Equal(t, int64(45), result.Total)
	assert.Equal(t, 3, result.TotalPages)
}
