package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"edr/internal/core/entity"
	"edr/internal/domain/interventions"
	"edr/internal/domain/suppliers"
)

type mockRecord struct {
	entity.Record
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
	Skip string `db:"-" json:"skip"`
}

func TestExtractDBColumns_IncludesEmbeddedRecord(t *testing.T) {
	cols := ExtractDBColumns[mockRecord]()

	expected := []string{"id", "archived", "version", "created_at", "updated_at", "code", "name"}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}
	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "skip")
}

func TestExtractDBColumns_PointerType(t *testing.T) {
	cols := ExtractDBColumns[*mockRecord]()
	assert.Contains(t, cols, "code")
}

func TestExtractDBColumns_DomainEntities(t *testing.T) {
	cols := ExtractDBColumns[*interventions.Intervention]()
	for _, col := range []string{"id", "version", "title", "client", "technician", "status", "priority", "kind", "deadline"} {
		assert.Contains(t, cols, col)
	}
}

func TestStructToMap_FlatAndEmbeddedFields(t *testing.T) {
	rec := mockRecord{
		Record: entity.NewRecord(),
		Code:   "DIS-16A",
		Name:   "Disjoncteur 16A",
		Skip:   "never exported",
	}
	rec.ID = 3
	rec.Version = 2

	m := StructToMap(rec)

	assert.Equal(t, int64(3), m["id"])
	assert.Equal(t, 2, m["version"])
	assert.Equal(t, false, m["archived"])
	assert.Equal(t, "DIS-16A", m["code"])
	assert.Equal(t, "Disjoncteur 16A", m["name"])
	_, skipped := m["skip"]
	assert.False(t, skipped)
}

func TestStructToMap_PointerInput(t *testing.T) {
	s := suppliers.NewSupplier("Rexel Lyon")
	s.ID = 1
	s.Email = "commandes@rexel-lyon.fr"

	m := StructToMap(s)

	assert.Equal(t, "Rexel Lyon", m["name"])
	assert.Equal(t, "commandes@rexel-lyon.fr", m["email"])
	assert.Equal(t, true, m["active"])
}

func TestStructToMap_NonStructReturnsNil(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("text"))
}
