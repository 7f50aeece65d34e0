// Package database owns the schema of every persisted model.
package database

import (
	"fmt"

	"github.com/saulo-duarte/chronos-planner/internal/chore"
	"github.com/saulo-duarte/chronos-planner/internal/goal"
	"github.com/saulo-duarte/chronos-planner/internal/habit"
	"github.com/saulo-duarte/chronos-planner/internal/project"
	"github.com/saulo-duarte/chronos-planner/internal/task"
	"github.com/saulo-duarte/chronos-planner/internal/user"
	"gorm.io/gorm"
)

// Models lists the tables in dependency order: parents before children.
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&project.Project{},
		&goal.Goal{},
		&task.Task{},
		&chore.Chore{},
		&habit.Habit{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
