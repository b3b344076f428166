package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validationf("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFoundf("missing")))
	assert.Equal(t, KindConflict, KindOf(Conflictf("taken")))
	assert.Equal(t, KindForbidden, KindOf(Forbiddenf("no")))
	assert.Equal(t, KindInvalidOperation, KindOf(InvalidOperationf("nope")))
	assert.Equal(t, KindUnknown, KindOf(errors.New("db exploded")))

	// Wrapped errors keep their kind.
	wrapped := fmt.Errorf("creating reservation: %w", Conflictf("taken"))
	assert.Equal(t, KindConflict, KindOf(wrapped))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validationf("bad")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidOperationf("bad")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFoundf("missing")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflictf("taken")))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Forbiddenf("no")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestMessageCarriesDetail(t *testing.T) {
	err := InvalidOperationf("table capacity (%d) is insufficient for party size (%d)", 2, 6)
	assert.Equal(t, "table capacity (2) is insufficient for party size (6)", err.Error())
}
