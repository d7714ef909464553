package validation

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type named struct {
	Name string `validate:"notblank"`
}

func TestNotBlank(t *testing.T) {
	v := validator.New()
	require.NoError(t, Register(v))

	assert.NoError(t, v.Struct(named{Name: "Ann"}))
	assert.Error(t, v.Struct(named{Name: "   "}))
	assert.Error(t, v.Struct(named{Name: ""}))
}

func TestRegisterWithGin(t *testing.T) {
	require.NoError(t, RegisterWithGin())
}
