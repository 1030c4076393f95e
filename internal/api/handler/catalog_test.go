package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogGet_Unauthenticated(t *testing.T) {
	h := NewCatalog()
	rec := httptest.NewRecorder()
	r := newRequest(http.MethodGet, "/catalog", nil)

	h.Get(rec, r)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCatalogGet_Success(t *testing.T) {
	h := NewCatalog()
	rec := httptest.NewRecorder()
	r := withSession(newRequest(http.MethodGet, "/catalog", nil), testSub, "a@b.c")

	h.Get(rec, r)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(rec)

	products, ok := body["products"].([]any)
	require.True(t, ok)
	assert.Len(t, products, 4)

	regions, ok := body["regions"].([]any)
	require.True(t, ok)
	assert.Len(t, regions, 2)

	pricing, ok := body["pricing"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, pricing["us"], 4)
	assert.Len(t, pricing["eu"], 4)
}
