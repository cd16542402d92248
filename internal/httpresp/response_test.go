package httpresp

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func serve(h gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	h(c)
	return w
}

func TestList_NilBecomesEmpty(t *testing.T) {
	w := serve(func(c *gin.Context) { List[string](c, nil) })
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"total":0}`, w.Body.String())
}

func TestPage(t *testing.T) {
	w := serve(func(c *gin.Context) { Page(c, []int{4, 5}, 2, 2, 5) })
	assert.JSONEq(t, `{"data":[4,5],"page":2,"limit":2,"total":5}`, w.Body.String())
}

func TestCreated(t *testing.T) {
	w := serve(func(c *gin.Context) { Created(c, gin.H{"id": 1}) })
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1}`, w.Body.String())
}
