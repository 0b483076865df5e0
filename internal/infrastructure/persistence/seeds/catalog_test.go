package seeds

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/models"
	"github.com/bid-labs/ticketgen/internal/infrastructure/persistence/testdb"
)

const sampleCatalog = `
clients:
  - id: 5
    name: Telcel
    code: tel
  - name: Banco Norte
    code: BNO
    active: false
service_types:
  - id: 3
    name: Estres
    nomenclature: est
projects:
  - id: 12
    client_id: 5
    name: Otro
    code: otr
    service_type_id: 3
    start_date: "2025-01-01"
`

func TestSeedCatalog_IsIdempotent(t *testing.T) {
	gdb := testdb.New(t)

	file, err := DecodeCatalog(strings.NewReader(sampleCatalog))
	require.NoError(t, err)

	result, err := SeedCatalog(gdb, file)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Created: 4}, result)

	result, err = SeedCatalog(gdb, file)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Existing: 4}, result)

	var client models.ClientModel
	require.NoError(t, gdb.First(&client, 5).Error)
	assert.Equal(t, "TEL", client.Code)
	assert.True(t, client.Active)

	var inactive models.ClientModel
	require.NoError(t, gdb.Where("code = ?", "BNO").First(&inactive).Error)
	assert.False(t, inactive.Active)

	var project models.ProjectModel
	require.NoError(t, gdb.First(&project, 12).Error)
	assert.Equal(t, uint(5), project.ClientID)
	require.NotNil(t, project.ServiceTypeID)
	assert.Equal(t, uint(3), *project.ServiceTypeID)
	require.NotNil(t, project.StartDate)
}

func TestSeedCatalog_RejectsInvalidRows(t *testing.T) {
	gdb := testdb.New(t)

	file, err := DecodeCatalog(strings.NewReader("clients:\n  - name: Too Long\n    code: ABCDEFG\n"))
	require.NoError(t, err)

	_, err = SeedCatalog(gdb, file)
	assert.Error(t, err)

	var count int64
	require.NoError(t, gdb.Model(&models.ClientModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDecodeCatalog_UnknownKey(t *testing.T) {
	_, err := DecodeCatalog(strings.NewReader("customers: []\n"))
	assert.Error(t, err)
}
