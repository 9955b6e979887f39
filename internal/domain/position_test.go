package domain_test

import (
	"testing"

	"out-of-office/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestPosition_Valid(t *testing.T) {
	assert.True(t, domain.PositionHRManager.Valid())
	assert.True(t, domain.Position("Project Manager").Valid())
	assert.False(t, domain.Position("HR manager").Valid())
	assert.False(t, domain.Position("").Valid())
}
