package repository

import (
	"context"
	"errors"

	"github.com/wfunc/monopoly-game/internal/models"
	"gorm.io/gorm"
)

// GameRepository 对局仓储接口
type GameRepository interface {
	BaseRepository
	Create(ctx context.Context, game *models.Game) error
	Update(ctx context.Context, game *models.Game) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Game, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*models.Game, error)
	FindByHost(ctx context.Context, hostID uint, pagination *Pagination) ([]*models.Game, error)
	GetByStatus(ctx context.Context, status string) ([]*models.Game, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
}

// gameRepo 对局仓储实现
type gameRepo struct {
	*BaseRepo
}

// NewGameRepository 创建对局仓储
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepo{
		BaseRepo: &BaseRepo{db: db},
	}
}

// Create 创建对局
func (r *gameRepo) Create(ctx context.Context, game *models.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

// Update 更新对局
func (r *gameRepo) Update(ctx context.Context, game *models.Game) error {
	return r.db.WithContext(ctx).Save(game).Error
}

// Delete 删除对局
func (r *gameRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Game{}, id).Error
}

// FindByID 根据ID查找对局
func (r *gameRepo) FindByID(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).First(&game, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("对局不存在")
		}
		return nil, err
	}
	return &game, nil
}

// FindByIDForUpdate 根据ID查找对局并加行锁（须在事务中调用）
func (r *gameRepo) FindByIDForUpdate(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).
		Clauses(forUpdateClause(r.db)...).
		First(&game, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("对局不存在")
		}
		return nil, err
	}
	return &game, nil
}

// FindByHost 查找某主机玩家创建的对局（分页，新的在前）
func (r *gameRepo) FindByHost(ctx context.Context, hostID uint, pagination *Pagination) ([]*models.Game, error) {
	var games []*models.Game
	query := r.db.WithContext(ctx).Model(&models.Game{}).Where("host_id = ?", hostID)

	var total int64
	query.Count(&total)
	pagination.Total = total

	err := query.
		Scopes(Paginate(pagination)).
		Order("created_at DESC").
		Find(&games).Error

	return games, err
}

// GetByStatus 按状态查找对局
func (r *gameRepo) GetByStatus(ctx context.Context, status string) ([]*models.Game, error) {
	var games []*models.Game
	err := r.db.WithContext(ctx).Where("status = ?", status).Find(&games).Error
	return games, err
}

// UpdateStatus 更新对局状态
func (r *gameRepo) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).
		Model(&models.Game{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// WithTx 使用事务
func (r *gameRepo) WithTx(tx *gorm.DB) BaseRepository {
	return &gameRepo{
		BaseRepo: &BaseRepo{db: tx},
	}
}
