package shoppingcart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/userarea/lib/myauth"
)

func asUser(req *http.Request, username string, roles ...string) *http.Request {
	return req.WithContext(myauth.WithPrincipal(req.Context(), myauth.Principal{Username: username, Roles: roles}))
}

func TestWebService(t *testing.T) {
	c := context.TODO()

	router := func(t *testing.T, f fixture) *mux.Router {
		r := mux.NewRouter()
		require.NoError(t, NewWebService(f.sut).RegisterEndpoints(c, r))
		return r
	}

	t.Run("list applications", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)
		require.NoError(t, f.sut.CheckAndAddApplicationToShoppingCart(c, "alice", trademark(1, "B", "100"), "alice"))
		require.NoError(t, f.sut.CheckAndAddApplicationToShoppingCart(c, "alice", trademark(2, "A", "200"), "alice"))

		// given
		request := asUser(httptest.NewRequest(http.MethodGet, "/api/shoppingcart/applications?sortColumn=NUMBER&ascending=false", nil),
			"alice", myauth.RoleTrademark)
		response := httptest.NewRecorder()

		// when
		router(t, f).ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		search := Search{}
		require.NoError(t, json.Unmarshal(response.Body.Bytes(), &search))
		assert.Equal(t, 2, search.Total)
		assert.Equal(t, "B", search.Items[0].Number)
	})

	t.Run("list without principal", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// given
		request := httptest.NewRequest(http.MethodGet, "/api/shoppingcart/applications", nil)
		response := httptest.NewRecorder()

		// when
		router(t, f).ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusUnauthorized, response.Code)
	})

	t.Run("modify application", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)
		require.NoError(t, f.sut.CheckAndAddApplicationToShoppingCart(c, "alice", trademark(1, "A", "100"), "alice"))

		// given
		f.signatures.EXPECT().DeleteApplication(gomock.Any(), "alice", int64(1)).Return("", nil)
		request := asUser(httptest.NewRequest(http.MethodDelete, "/api/shoppingcart/applications/1?applicationDeleted=true", nil), "alice")
		response := httptest.NewRecorder()

		// when
		router(t, f).ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.JSONEq(t, `{"resumeUrl":""}`, response.Body.String())
	})

	t.Run("modify with invalid id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// given
		request := asUser(httptest.NewRequest(http.MethodDelete, "/api/shoppingcart/applications/abc", nil), "alice")
		response := httptest.NewRecorder()

		// when
		router(t, f).ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusBadRequest, response.Code)
	})

	t.Run("sync application", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		f := setup(t, ctrl)

		// given
		f.applications.EXPECT().GetByID(gomock.Any(), int64(1)).Return(trademark(1, "A", "100"), nil)
		request := asUser(httptest.NewRequest(http.MethodPut, "/api/shoppingcart/applications/1", nil), "alice")
		response := httptest.NewRecorder()

		// when
		router(t, f).ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Len(t, f.items.Items, 1)
	})
}
