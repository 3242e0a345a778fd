package repository

import (
	"context"
	"errors"

	"github.com/wfunc/monopoly-game/internal/models"
	"gorm.io/gorm"
)

// PlayerRepository 玩家仓储接口
type PlayerRepository interface {
	BaseRepository
	Create(ctx context.Context, player *models.Player) error
	CreateBatch(ctx context.Context, players []*models.Player) error
	Update(ctx context.Context, player *models.Player) error
	FindByID(ctx context.Context, id uint) (*models.Player, error)
	FindByGame(ctx context.Context, gameID uint) ([]*models.Player, error)
	FindActiveByGame(ctx context.Context, gameID uint) ([]*models.Player, error)
	UpdateMoney(ctx context.Context, id uint, money int) error
	UpdatePosition(ctx context.Context, id uint, position int) error
}

// playerRepo 玩家仓储实现
type playerRepo struct {
	*BaseRepo
}

// NewPlayerRepository 创建玩家仓储
func NewPlayerRepository(db *gorm.DB) PlayerRepository {
	return &playerRepo{
		BaseRepo: &BaseRepo{db: db},
	}
}

// Create 创建玩家
func (r *playerRepo) Create(ctx context.Context, player *models.Player) error {
	return r.db.WithContext(ctx).Create(player).Error
}

// CreateBatch 批量创建玩家
func (r *playerRepo) CreateBatch(ctx context.Context, players []*models.Player) error {
	if len(players) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(players).Error
}

// Update 更新玩家
func (r *playerRepo) Update(ctx context.Context, player *models.Player) error {
	return r.db.WithContext(ctx).Save(player).Error
}

// FindByID 根据ID查找玩家
func (r *playerRepo) FindByID(ctx context.Context, id uint) (*models.Player, error) {
	var player models.Player
	err := r.db.WithContext(ctx).First(&player, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("玩家不存在")
		}
		return nil, err
	}
	return &player, nil
}

// FindByGame 查找对局的全部玩家（按固定回合顺序）
func (r *playerRepo) FindByGame(ctx context.Context, gameID uint) ([]*models.Player, error) {
	var players []*models.Player
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("turn_order ASC").
		Find(&players).Error
	return players, err
}

// FindActiveByGame 查找对局中未破产的玩家（按固定回合顺序）
func (r *playerRepo) FindActiveByGame(ctx context.Context, gameID uint) ([]*models.Player, error) {
	var players []*models.Player
	err := r.db.WithContext(ctx).
		Where("game_id = ? AND is_bankrupt = ?", gameID, false).
		Order("turn_order ASC").
		Find(&players).Error
	return players, err
}

// UpdateMoney 更新玩家资金
func (r *playerRepo) UpdateMoney(ctx context.Context, id uint, money int) error {
	return r.db.WithContext(ctx).
		Model(&models.Player{}).
		Where("id = ?", id).
		Update("money", money).Error
}

// UpdatePosition 更新玩家位置
func (r *playerRepo) UpdatePosition(ctx context.Context, id uint, position int) error {
	return r.db.WithContext(ctx).
		Model(&models.Player{}).
		Where("id = ?", id).
		Update("position", position).Error
}

// WithTx 使用事务
func (r *playerRepo) WithTx(tx *gorm.DB) BaseRepository {
	return &playerRepo{
		BaseRepo: &BaseRepo{db: tx},
	}
}
