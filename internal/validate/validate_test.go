package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Baud  uint32        `validate:"oneof=300 9600"`
	Delay time.Duration `validate:"gte=0,lte=1s"`
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(sample{Baud: 9600, Delay: 10 * time.Millisecond}))
	assert.Error(t, Struct(sample{Baud: 1234}))
	assert.Error(t, Struct(sample{Baud: 300, Delay: 2 * time.Second}))
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("*.BAS", "required"))
	assert.Error(t, Var("", "required"))
}
