package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDuplicateCode(t *testing.T) {
	b := setupBackend(t)

	tableA := mustCreateTable(t, b, "Table A", "selangor")
	tableB := mustCreateTable(t, b, "Table B", "kl")
	rowA := mustAddRow(t, b, tableA.TableID, "1234")
	mustAddRow(t, b, tableB.TableID, "9999")

	t.Run("code in the same table blocks", func(t *testing.T) {
		report, err := b.CheckDuplicateCode("1234", tableA.TableID, "")
		require.NoError(t, err)
		assert.True(t, report.HasDuplicate)
		assert.True(t, report.SameTable)
		assert.False(t, report.OtherTables)
		assert.Empty(t, report.DuplicateInfo)
	})

	t.Run("code in another table is advisory with join details", func(t *testing.T) {
		report, err := b.CheckDuplicateCode("1234", tableB.TableID, "")
		require.NoError(t, err)
		assert.True(t, report.HasDuplicate)
		assert.False(t, report.SameTable)
		assert.True(t, report.OtherTables)
		require.Len(t, report.DuplicateInfo, 1)
		info := report.DuplicateInfo[0]
		assert.Equal(t, tableA.TableID, info.TableID)
		assert.Equal(t, "Table A", info.TableName)
		assert.Equal(t, "selangor", info.Region)
		assert.Equal(t, "Jalan Ampang", info.Location)
	})

	t.Run("absent code has no duplicate", func(t *testing.T) {
		report, err := b.CheckDuplicateCode("0000", tableA.TableID, "")
		require.NoError(t, err)
		assert.False(t, report.HasDuplicate)
		assert.False(t, report.SameTable)
		assert.False(t, report.OtherTables)
		assert.Empty(t, report.DuplicateInfo)
	})

	t.Run("editing a row excludes its own code", func(t *testing.T) {
		report, err := b.CheckDuplicateCode("1234", tableA.TableID, rowA.RowID)
		require.NoError(t, err)
		assert.False(t, report.HasDuplicate)
	})

	t.Run("exclusion still sees other rows with the code", func(t *testing.T) {
		other := mustAddRow(t, b, tableB.TableID, "1234")

		report, err := b.CheckDuplicateCode("1234", tableA.TableID, rowA.RowID)
		require.NoError(t, err)
		assert.True(t, report.HasDuplicate)
		assert.False(t, report.SameTable)
		assert.True(t, report.OtherTables)

		require.NoError(t, b.DeleteRow(tableB.TableID, other.RowID))
	})

	t.Run("same and other table matches can coexist", func(t *testing.T) {
		mustAddRow(t, b, tableA.TableID, "7777")
		mustAddRow(t, b, tableB.TableID, "7777")

		report, err := b.CheckDuplicateCode("7777", tableA.TableID, "")
		require.NoError(t, err)
		assert.True(t, report.SameTable)
		assert.True(t, report.OtherTables)
		require.Len(t, report.DuplicateInfo, 1)
		assert.Equal(t, tableB.TableID, report.DuplicateInfo[0].TableID)
	})
}
