package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"qadash/application"
	"qadash/domain/qa"
	"qadash/test/mocks"
)

func newTestPageHandlers(clientRepo *mocks.MockClientRepository) *PageHandlers {
	return NewPageHandlers(
		application.NewClientService(clientRepo),
		nil, nil, nil, nil, nil,
	)
}

func TestPageShell_UsesClientName(t *testing.T) {
	clientRepo := &mocks.MockClientRepository{}
	clientRepo.On("GetByID", mock.Anything, int64(7)).
		Return(&qa.Client{ID: 7, Slug: "acme", Name: "Acme Garments"}, nil)
	h := newTestPageHandlers(clientRepo)

	req := testSessionContext(httptest.NewRequest(http.MethodGet, "/c/acme/feed", nil))

	sh := h.pageShell(req, "Live Feed")

	assert.Equal(t, "Acme Garments", sh.ClientName)
	assert.Equal(t, "acme", sh.ClientSlug)
}

func TestPageShell_ClientLookupFailureFallsBackToSlug(t *testing.T) {
	clientRepo := &mocks.MockClientRepository{}
	clientRepo.On("GetByID", mock.Anything, int64(7)).
		Return(nil, errors.New("database unavailable"))
	h := newTestPageHandlers(clientRepo)

	req := testSessionContext(httptest.NewRequest(http.MethodGet, "/c/acme/feed", nil))

	sh := h.pageShell(req, "Live Feed")

	// The lookup failure is logged and the shell degrades to the slug
	assert.Equal(t, "acme", sh.ClientName)
}
