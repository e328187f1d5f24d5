package gql

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dfryer1193/photogram/images/application"
	imagedomain "github.com/dfryer1193/photogram/images/domain"
	notifdomain "github.com/dfryer1193/photogram/notifications/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/graphql", Handler(NewSchema(NewResolver(nil, nil, nil, nil))))
	return r
}

func post(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler(t *testing.T) {
	r := newTestEngine()

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "anonymous me",
			body:       `{"query":"{ me { id } }"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"data":{"me":null}}`,
		},
		{
			name:       "anonymous notifications",
			body:       `{"query":"query Mine { notifications(limit: 5) { id } }","operationName":"Mine"}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"data":{"notifications":[]}}`,
		},
		{
			name:       "missing query",
			body:       `{"operationName":"x"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "not json",
			body:       `query { me { id } }`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(r, tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestHandler_ValidationErrors(t *testing.T) {
	w := post(newTestEngine(), `{"query":"{ image { id } }"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"errors"`)
	assert.Contains(t, w.Body.String(), "imageId")
}

func TestResultResolver(t *testing.T) {
	ok := &resultResolver{res: application.Result{OK: true}}
	assert.True(t, ok.Ok())
	assert.Nil(t, ok.Error())

	failed := &resultResolver{res: application.Result{Error: application.MsgImageNotFound}}
	assert.False(t, failed.Ok())
	require.NotNil(t, failed.Error())
	assert.Equal(t, "Image Not Found", *failed.Error())
}

func TestIDsOutsideIntRange(t *testing.T) {
	const tooBig = int64(1) << 40

	img := &imageResolver{img: &imagedomain.Image{ID: 7, CreatorID: tooBig}}
	id, err := img.ID()
	require.NoError(t, err)
	assert.Equal(t, int32(7), id)

	_, err = img.CreatorID()
	assert.ErrorIs(t, err, errIntRange)

	comment := &commentResolver{c: &imagedomain.Comment{ID: tooBig}}
	_, err = comment.ID()
	assert.ErrorIs(t, err, errIntRange)

	n := &notificationResolver{n: &notifdomain.Notification{ImageID: tooBig}}
	imageID, err := n.ImageID()
	assert.Nil(t, imageID)
	assert.ErrorIs(t, err, errIntRange)

	none := &notificationResolver{n: &notifdomain.Notification{}}
	imageID, err = none.ImageID()
	require.NoError(t, err)
	assert.Nil(t, imageID)
}
