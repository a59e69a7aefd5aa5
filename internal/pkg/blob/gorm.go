package blob

import (
	"context"
	"errors"
	"fmt"

	"github.com/mx-space/formcraft/internal/database"
	"github.com/mx-space/formcraft/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Gorm stores the blob as a row of the options table.
type Gorm struct {
	db     *gorm.DB
	key    string
	ownsDB bool
}

// NewGorm wraps db. When owns is true Close shuts the pool down.
func NewGorm(db *gorm.DB, key string, owns bool) *Gorm {
	return &Gorm{db: db, key: key, ownsDB: owns}
}

func (g *Gorm) Read(ctx context.Context) (string, error) {
	var row models.OptionModel
	err := g.db.WithContext(ctx).Where("name = ?", g.key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return EmptyCollection, nil
	}
	if err != nil {
		return "", fmt.Errorf("read option %s: %w", g.key, err)
	}
	return row.Value, nil
}

func (g *Gorm) Write(ctx context.Context, value string) error {
	row := models.OptionModel{Name: g.key, Value: value}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("write option %s: %w", g.key, err)
	}
	return nil
}

func (g *Gorm) Close() error {
	if !g.ownsDB {
		return nil
	}
	return database.Close(g.db)
}
