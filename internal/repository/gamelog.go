package repository

import (
	"context"

	"github.com/wfunc/monopoly-game/internal/models"
	"gorm.io/gorm"
)

// GameLogRepository 对局日志仓储接口（只追加）
type GameLogRepository interface {
	BaseRepository
	Create(ctx context.Context, log *models.GameLog) error
	FindByGame(ctx context.Context, gameID uint) ([]*models.GameLog, error)
	FindRecent(ctx context.Context, gameID uint, limit int) ([]*models.GameLog, error)
	CountByGame(ctx context.Context, gameID uint) (int64, error)
}

// gameLogRepo 对局日志仓储实现
type gameLogRepo struct {
	*BaseRepo
}

// NewGameLogRepository 创建对局日志仓储
func NewGameLogRepository(db *gorm.DB) GameLogRepository {
	return &gameLogRepo{
		BaseRepo: &BaseRepo{db: db},
	}
}

// Create 追加一条日志
func (r *gameLogRepo) Create(ctx context.Context, log *models.GameLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// FindByGame 查找对局的全部日志（按时间顺序）
func (r *gameLogRepo) FindByGame(ctx context.Context, gameID uint) ([]*models.GameLog, error) {
	var logs []*models.GameLog
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("id ASC").
		Find(&logs).Error
	return logs, err
}

// FindRecent 查找对局最近的limit条日志（按时间顺序返回）
func (r *gameLogRepo) FindRecent(ctx context.Context, gameID uint, limit int) ([]*models.GameLog, error) {
	var logs []*models.GameLog
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	// 倒序查出后翻转为时间顺序
	for i, j := 0, len(logs)-1; i < j; i, j = i+1, j-1 {
		logs[i], logs[j] = logs[j], logs[i]
	}
	return logs, nil
}

// CountByGame 统计对局日志条数
func (r *gameLogRepo) CountByGame(ctx context.Context, gameID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.GameLog{}).
		Where("game_id = ?", gameID).
		Count(&count).Error
	return count, err
}

// WithTx 使用事务
func (r *gameLogRepo) WithTx(tx *gorm.DB) BaseRepository {
	return &gameLogRepo{
		BaseRepo: &BaseRepo{db: tx},
	}
}
