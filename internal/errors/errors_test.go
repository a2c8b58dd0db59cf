package errors_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	apperrs "github.com/nigelnh/be-intern-assignment/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEConstructor(t *testing.T) {
	got := apperrs.E(
		"something went wrong",
		apperrs.Detail{Field: "email", Error: "is required"},
		http.StatusBadRequest,
	)
	want := &apperrs.Error{
		Err: errors.New("something went wrong"),
		Details: []apperrs.Detail{
			{Field: "email", Error: "is required"},
		},
		Status: http.StatusBadRequest,
	}

	assert.Equal(t, want, got)
}

func TestEDefaultsToServerError(t *testing.T) {
	got := apperrs.E("boom")
	assert.Equal(t, http.StatusInternalServerError, got.Status)
}

func TestTransportShape(t *testing.T) {
	byts, err := json.Marshal(apperrs.E("nope", http.StatusNotFound))
	require.NoError(t, err)

	assert.JSONEq(t, `{"message":"nope","details":null,"status":404}`, string(byts))
}

func TestUnwrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	assert.ErrorIs(t, apperrs.E(sentinel, http.StatusBadRequest), sentinel)
}
