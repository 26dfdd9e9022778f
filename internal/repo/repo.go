package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/suagrafica/portal/internal/models"
)

var (
	ErrDuplicate        = errors.New("duplicate key")
	ErrInUse            = errors.New("record is referenced")
	ErrMissingReference = errors.New("referenced record does not exist")
	ErrLastAdmin        = errors.New("last admin")
)

type GormRepo struct {
	DB *gorm.DB
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

// isDuplicate also matches on the driver message so that dialects without
// error translation still report uniqueness violations precisely.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

func isForeignKey(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

func translateWrite(err error) error {
	switch {
	case err == nil:
		return nil
	case isDuplicate(err):
		return errors.Join(ErrDuplicate, err)
	case isForeignKey(err):
		return errors.Join(ErrMissingReference, err)
	}
	return err
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
