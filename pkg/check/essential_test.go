package check

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NVIDIA/dqgate/pkg/dataset"
)

func TestEssentialColumns(t *testing.T) {
	tbl := newTable(t, dataset.Schema{
		{Name: "id", Type: dataset.TypeBigInt},
		{Name: "name", Type: dataset.TypeString},
	})

	c, _ := newChecker()
	assert.Empty(t, c.EssentialColumns(tbl, []string{"id", "name"}))
	assert.Empty(t, c.EssentialColumns(tbl, nil))
	assert.Equal(t, []string{"email", "city"}, c.EssentialColumns(tbl, []string{"email", "id", "city", "email"}))
}
