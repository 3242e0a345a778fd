package repository

import (
	"context"
	"errors"

	"github.com/wfunc/monopoly-game/internal/models"
	"gorm.io/gorm"
)

// PropertyRepository 地产仓储接口
type PropertyRepository interface {
	BaseRepository
	CreateBatch(ctx context.Context, properties []*models.Property) error
	Update(ctx context.Context, property *models.Property) error
	FindByGameAndSpace(ctx context.Context, gameID uint, spaceID int) (*models.Property, error)
	FindByGame(ctx context.Context, gameID uint) ([]*models.Property, error)
	FindByOwner(ctx context.Context, gameID, ownerID uint) ([]*models.Property, error)
	SetOwner(ctx context.Context, id uint, ownerID uint) error
}

// propertyRepo 地产仓储实现
type propertyRepo struct {
	*BaseRepo
}

// NewPropertyRepository 创建地产仓储
func NewPropertyRepository(db *gorm.DB) PropertyRepository {
	return &propertyRepo{
		BaseRepo: &BaseRepo{db: db},
	}
}

// CreateBatch 批量创建地产记录（开局时为每个可购买格子建一条）
func (r *propertyRepo) CreateBatch(ctx context.Context, properties []*models.Property) error {
	if len(properties) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(properties).Error
}

// Update 更新地产
func (r *propertyRepo) Update(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Save(property).Error
}

// FindByGameAndSpace 根据对局和格子索引查找地产
func (r *propertyRepo) FindByGameAndSpace(ctx context.Context, gameID uint, spaceID int) (*models.Property, error) {
	var property models.Property
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND space_id = ?", gameID, spaceID).
		First(&property).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("地产不存在")
		}
		return nil, err
	}
	return &property, nil
}

// FindByGame 查找对局的全部地产（按格子索引）
func (r *propertyRepo) FindByGame(ctx context.Context, gameID uint) ([]*models.Property, error) {
	var properties []*models.Property
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("space_id ASC").
		Find(&properties).Error
	return properties, err
}

// FindByOwner 查找玩家在对局中拥有的地产
func (r *propertyRepo) FindByOwner(ctx context.Context, gameID, ownerID uint) ([]*models.Property, error) {
	var properties []*models.Property
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND owner_id = ?", gameID, ownerID).
		Order("space_id ASC").
		Find(&properties).Error
	return properties, err
}

// SetOwner 设置地产所有者
func (r *propertyRepo) SetOwner(ctx context.Context, id uint, ownerID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Property{}).
		Where("id = ?", id).
		Update("owner_id", ownerID).Error
}

// WithTx 使用事务
func (r *propertyRepo) WithTx(tx *gorm.DB) BaseRepository {
	return &propertyRepo{
		BaseRepo: &BaseRepo{db: tx},
	}
}
