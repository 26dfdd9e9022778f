package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/suagrafica/portal/internal/models"
	"github.com/suagrafica/portal/internal/testdb"
	"github.com/suagrafica/portal/pkg/hash"
)

func fileOpener(t *testing.T) (Opener, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portal.db")
	return func(ctx context.Context, dsn string) (*gorm.DB, error) {
		return testdb.OpenFile(path)
	}, path
}

func run(t *testing.T, open Opener, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd(open)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func inspect(t *testing.T, path string) *gorm.DB {
	t.Helper()
	db, err := testdb.OpenFile(path)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func TestMigrate(t *testing.T) {
	open, path := fileOpener(t)

	out, err := run(t, open, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "schema up to date")

	db := inspect(t, path)
	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m))
	}
}

func TestSeed_IsIdempotent(t *testing.T) {
	open, path := fileOpener(t)

	out, err := run(t, open, "seed", "--admin-username", "leanttro", "--admin-secret", "12345")
	require.NoError(t, err)
	assert.Contains(t, out, `admin "leanttro" created`)
	assert.Contains(t, out, "test customer created")
	assert.Contains(t, out, "test product created")

	out, err = run(t, open, "seed", "--admin-username", "leanttro", "--admin-secret", "12345")
	require.NoError(t, err)
	assert.Empty(t, out)

	db := inspect(t, path)
	var admins []models.Admin
	require.NoError(t, db.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.True(t, hash.CheckPassword(admins[0].SecretHash, "12345"))

	var customer models.Customer
	require.NoError(t, db.Where("access_code = ?", "CLIENTE123").First(&customer).Error)
	require.NotNil(t, customer.AdminID)
	assert.Equal(t, admins[0].ID, *customer.AdminID)

	var product models.Product
	require.NoError(t, db.Where("code = ?", "ER1458-AZU").First(&product).Error)
	assert.Equal(t, "2.10", product.MinPrice.String())
	assert.Equal(t, 50, product.OrderMultiple)
}

func TestSeed_RequiresSecret(t *testing.T) {
	open, _ := fileOpener(t)
	_, err := run(t, open, "seed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin-secret")
}

func TestAdminCreateAndList(t *testing.T) {
	open, _ := fileOpener(t)
	_, err := run(t, open, "migrate")
	require.NoError(t, err)

	out, err := run(t, open, "admin", "create", "--username", "maria", "--secret", "s3cret")
	require.NoError(t, err)
	assert.Contains(t, out, `admin "maria" created`)

	_, err = run(t, open, "admin", "create", "--username", "MARIA", "--secret", "other")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflict")

	out, err = run(t, open, "admin", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "\tmaria\n")
}
