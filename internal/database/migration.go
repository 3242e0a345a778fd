package database

import (
	"fmt"

	"github.com/wfunc/monopoly-game/internal/logger"
	"github.com/wfunc/monopoly-game/internal/models"
	"go.uber.org/zap"
)

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate() error {
	if DB == nil {
		return fmt.Errorf("数据库未初始化")
	}

	// 定义需要迁移的模型
	migrationModels := []interface{}{
		// 用户相关
		&models.User{},
		&models.UserAuth{},
		&models.UserSession{},

		// 对局相关
		&models.Game{},
		&models.Player{},
		&models.Property{},
		&models.GameLog{},
	}

	logger.Info("开始数据库迁移...")

	// SQLite下迁移期间关闭外键约束，避免重建表时的问题
	if DB.Dialector.Name() == "sqlite" {
		DB.Exec("PRAGMA foreign_keys = OFF")
		defer DB.Exec("PRAGMA foreign_keys = ON")
	}

	for _, model := range migrationModels {
		if err := DB.AutoMigrate(model); err != nil {
			logger.Error("迁移失败",
				zap.String("model", fmt.Sprintf("%T", model)),
				zap.Error(err),
			)
			return err
		}
		logger.Debug("迁移成功", zap.String("model", fmt.Sprintf("%T", model)))
	}

	// 创建索引
	if err := createIndexes(); err != nil {
		return err
	}

	logger.Info("数据库迁移完成")
	return nil
}

// createIndexes 创建数据库索引
func createIndexes() error {
	indexes := []string{
		// 用户表索引
		"CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)",

		// 对局表索引
		"CREATE INDEX IF NOT EXISTS idx_games_status ON games(status)",
		"CREATE INDEX IF NOT EXISTS idx_games_host_id ON games(host_id)",

		// 玩家表索引
		"CREATE INDEX IF NOT EXISTS idx_players_game_id ON players(game_id)",

		// 地产表索引
		"CREATE INDEX IF NOT EXISTS idx_properties_game_id ON properties(game_id)",
		"CREATE INDEX IF NOT EXISTS idx_properties_owner_id ON properties(owner_id)",

		// 对局日志索引
		"CREATE INDEX IF NOT EXISTS idx_game_logs_game_id ON game_logs(game_id)",
		"CREATE INDEX IF NOT EXISTS idx_game_logs_created_at ON game_logs(created_at)",
	}

	for _, idx := range indexes {
		if err := DB.Exec(idx).Error; err != nil {
			logger.Warn("创建索引失败", zap.String("index", idx), zap.Error(err))
		}
	}

	logger.Info("数据库索引创建完成")
	return nil
}

// DropAllTables 删除所有表（仅用于测试环境）
func DropAllTables() error {
	if DB == nil {
		return fmt.Errorf("数据库未初始化")
	}

	var tables []string
	if err := DB.Raw("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'").Scan(&tables).Error; err != nil {
		return err
	}

	for _, table := range tables {
		if err := DB.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)).Error; err != nil {
			logger.Error("删除表失败", zap.String("table", table), zap.Error(err))
			return err
		}
	}

	logger.Info("所有表已删除")
	return nil
}
